package model

// 指标名。JSON 报告的键与 metrics 配置项都使用这些名字。
const (
	MetricTotal   = "total"
	MetricSource  = "source"
	MetricComment = "comment"
	MetricSingle  = "single"
	MetricBlock   = "block"
	MetricMixed   = "mixed"
	MetricEmpty   = "empty"
	MetricFile    = "file"
)

// MetricSpec 描述一个可展示的指标及其控制台标签。
type MetricSpec struct {
	Name  string
	Label string
}

// CanonicalMetrics 是控制台报告的固定展示顺序。
// 用户选择的指标子集总是按该顺序输出，而不是按请求顺序。
var CanonicalMetrics = []MetricSpec{
	{Name: MetricTotal, Label: "physical lines"},
	{Name: MetricSource, Label: "lines of source code"},
	{Name: MetricComment, Label: "total comment"},
	{Name: MetricSingle, Label: "singleline"},
	{Name: MetricBlock, Label: "multiline"},
	{Name: MetricMixed, Label: "mixed"},
	{Name: MetricEmpty, Label: "empty"},
	{Name: MetricFile, Label: "number of files read"},
}

// MetricNames 返回全部指标名（规范顺序）。
func MetricNames() []string {
	names := make([]string, 0, len(CanonicalMetrics))
	for _, metric := range CanonicalMetrics {
		names = append(names, metric.Name)
	}
	return names
}

// IsMetric 判断名字是否为已知指标。
func IsMetric(name string) bool {
	for _, metric := range CanonicalMetrics {
		if metric.Name == name {
			return true
		}
	}
	return false
}
