// Package model 定义 gosloc 的核心数据模型。
// 这些结构会被分类器、流水线、输出层和命令层共同使用。
package model

// LineCategory 表示单个物理行的分类。
// 每个物理行只属于一个分类，total 不是分类而是全部物理行的计数。
type LineCategory int

const (
	// CategorySource 表示纯代码行。
	CategorySource LineCategory = iota
	// CategoryCommentSingle 表示只包含单行注释的行。
	CategoryCommentSingle
	// CategoryCommentBlock 表示只包含块注释（或块注释内部）的行。
	CategoryCommentBlock
	// CategoryCommentMixed 表示同时包含代码与注释的行。
	CategoryCommentMixed
	// CategoryEmpty 表示空行或仅包含空白字符的行。
	CategoryEmpty
)

// String 返回分类对应的指标名。
func (c LineCategory) String() string {
	switch c {
	case CategorySource:
		return MetricSource
	case CategoryCommentSingle:
		return MetricSingle
	case CategoryCommentBlock:
		return MetricBlock
	case CategoryCommentMixed:
		return MetricMixed
	case CategoryEmpty:
		return MetricEmpty
	default:
		return "unknown"
	}
}

// LineCounts 是一组按分类统计的行数。
//
// 注意：
// - Total 表示物理行总数（每行计 1）
// - 混合行只计入 CommentMixed，不会同时计入 Source
// - 恒有 Total == Source + CommentSingle + CommentBlock + CommentMixed + Empty
type LineCounts struct {
	Total         int64
	Source        int64
	CommentSingle int64
	CommentBlock  int64
	CommentMixed  int64
	Empty         int64
}

// Record 按分类记录一个物理行。
func (c *LineCounts) Record(category LineCategory) {
	c.Total++
	switch category {
	case CategorySource:
		c.Source++
	case CategoryCommentSingle:
		c.CommentSingle++
	case CategoryCommentBlock:
		c.CommentBlock++
	case CategoryCommentMixed:
		c.CommentMixed++
	case CategoryEmpty:
		c.Empty++
	}
}

// Add 将另一个统计结果叠加到当前对象。
func (c *LineCounts) Add(other LineCounts) {
	c.Total += other.Total
	c.Source += other.Source
	c.CommentSingle += other.CommentSingle
	c.CommentBlock += other.CommentBlock
	c.CommentMixed += other.CommentMixed
	c.Empty += other.Empty
}

// Comment 返回三类注释行之和。
func (c LineCounts) Comment() int64 {
	return c.CommentSingle + c.CommentBlock + c.CommentMixed
}

// Balanced 校验 total 与各分类之和一致。
func (c LineCounts) Balanced() bool {
	return c.Total == c.Source+c.CommentSingle+c.CommentBlock+c.CommentMixed+c.Empty
}

// FileResult 表示单文件分类结果，创建后不再修改。
type FileResult struct {
	Path     string
	Language string
	Lines    []LineCategory
	LineCounts
}

// Totals 表示多文件聚合结果。
// 在 LineCounts 基础上额外增加 Files 字段，
// 用于表达“本次统计到了多少个有效源码文件”。
type Totals struct {
	Files int64
	LineCounts
}

// AddFileResult 累加一个文件的统计值到总计中。
func (t *Totals) AddFileResult(result FileResult) {
	t.Files++
	t.LineCounts.Add(result.LineCounts)
}

// Value 按指标名读取数值，未知指标返回 false。
func (t Totals) Value(name string) (int64, bool) {
	switch name {
	case MetricTotal:
		return t.Total, true
	case MetricSource:
		return t.Source, true
	case MetricComment:
		return t.Comment(), true
	case MetricSingle:
		return t.CommentSingle, true
	case MetricBlock:
		return t.CommentBlock, true
	case MetricMixed:
		return t.CommentMixed, true
	case MetricEmpty:
		return t.Empty, true
	case MetricFile:
		return t.Files, true
	default:
		return 0, false
	}
}

// Fields 返回全部指标名到数值的扁平映射，JSON 报告直接使用该结果。
func (t Totals) Fields() map[string]int64 {
	fields := make(map[string]int64, len(CanonicalMetrics))
	for _, metric := range CanonicalMetrics {
		value, _ := t.Value(metric.Name)
		fields[metric.Name] = value
	}
	return fields
}

// SourceFile 是进入流水线的输入文件。
type SourceFile struct {
	Path     string
	Contents []byte
}

// ReadError 记录单文件读取失败信息。
// 设计为“错误不阻断全量扫描”，便于大仓库分析时容错。
type ReadError struct {
	Path  string `json:"path"`
	Error string `json:"error"`
}
