package report

import (
	"github.com/fatih/color"

	"gosloc/internal/model"
)

// Styler 为控制台报告中的数值加样式，只影响外观。
type Styler interface {
	Style(metric string, value string) string
}

// PlainStyler 原样返回数值。
type PlainStyler struct{}

// Style 实现 Styler。
func (PlainStyler) Style(_ string, value string) string {
	return value
}

// ColorStyler 按指标类别使用终端颜色。
type ColorStyler struct {
	emphasis *color.Color
	comment  *color.Color
	empty    *color.Color
	files    *color.Color
}

// NewColorStyler 创建彩色样式，enabled 为 false 时输出与 PlainStyler 相同。
func NewColorStyler(enabled bool) *ColorStyler {
	styler := &ColorStyler{
		emphasis: color.New(color.FgCyan, color.Bold),
		comment:  color.New(color.FgGreen),
		empty:    color.New(color.Faint),
		files:    color.New(color.FgYellow),
	}

	for _, c := range []*color.Color{styler.emphasis, styler.comment, styler.empty, styler.files} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return styler
}

// Style 实现 Styler。
func (s *ColorStyler) Style(metric string, value string) string {
	switch metric {
	case model.MetricTotal, model.MetricSource:
		return s.emphasis.Sprint(value)
	case model.MetricComment, model.MetricSingle, model.MetricBlock, model.MetricMixed:
		return s.comment.Sprint(value)
	case model.MetricEmpty:
		return s.empty.Sprint(value)
	case model.MetricFile:
		return s.files.Sprint(value)
	default:
		return value
	}
}
