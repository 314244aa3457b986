package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestRecordKeepsBalance 验证逐行记录后 total 与分类之和一致。
func TestRecordKeepsBalance(t *testing.T) {
	var counts LineCounts
	for _, category := range []LineCategory{
		CategorySource,
		CategoryCommentSingle,
		CategoryCommentBlock,
		CategoryCommentMixed,
		CategoryEmpty,
		CategorySource,
	} {
		counts.Record(category)
	}

	assert.Equal(t, int64(6), counts.Total)
	assert.Equal(t, int64(2), counts.Source)
	assert.Equal(t, int64(3), counts.Comment())
	assert.True(t, counts.Balanced())
}

// TestTotalsFieldsCoverAllMetrics 验证扁平映射覆盖全部指标且 comment 为派生值。
func TestTotalsFieldsCoverAllMetrics(t *testing.T) {
	totals := Totals{
		Files: 2,
		LineCounts: LineCounts{
			Total: 10, Source: 4, CommentSingle: 2, CommentBlock: 1, CommentMixed: 1, Empty: 2,
		},
	}

	fields := totals.Fields()
	assert.Len(t, fields, len(CanonicalMetrics))
	assert.Equal(t, int64(4), fields[MetricComment])
	assert.Equal(t, int64(2), fields[MetricFile])
	assert.Equal(t, int64(10), fields[MetricTotal])

	_, ok := totals.Value("lines")
	assert.False(t, ok)
}

// TestAddFileResultCountsFiles 验证每个文件只让 Files 增加 1。
func TestAddFileResultCountsFiles(t *testing.T) {
	var totals Totals
	totals.AddFileResult(FileResult{Path: "a.go", LineCounts: LineCounts{Total: 3, Source: 3}})
	totals.AddFileResult(FileResult{Path: "empty.go"})

	assert.Equal(t, int64(2), totals.Files)
	assert.Equal(t, int64(3), totals.Total)
	assert.True(t, totals.Balanced())
}

func TestMetricNamesOrder(t *testing.T) {
	assert.Equal(t, []string{"total", "source", "comment", "single", "block", "mixed", "empty", "file"}, MetricNames())
	assert.True(t, IsMetric("mixed"))
	assert.False(t, IsMetric("Mixed"))
}
