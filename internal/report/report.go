// Package report 提供 gosloc 的输出能力。
// 当前实现支持带边框的控制台文本和扁平 JSON 两种格式。
package report

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"gosloc/internal/model"
)

const (
	labelIndent   = "  "
	labelSep      = " : "
	separatorChar = "-"
)

// Renderer 根据 MetricSpec 把 Totals 渲染成文本或 JSON。
// 渲染只读取 Totals，同一输入多次渲染结果逐字节一致。
type Renderer struct {
	metrics []model.MetricSpec
	styler  Styler
	width   int
}

// NewRenderer 使用规范指标顺序创建渲染器，styler 为 nil 时不加样式。
func NewRenderer(styler Styler) *Renderer {
	return NewRendererWithSpec(model.CanonicalMetrics, styler)
}

// NewRendererWithSpec 使用自定义的指标清单创建渲染器。
func NewRendererWithSpec(metrics []model.MetricSpec, styler Styler) *Renderer {
	if styler == nil {
		styler = PlainStyler{}
	}

	width := len(modeLabel(true))
	for _, metric := range metrics {
		if len(metric.Label) > width {
			width = len(metric.Label)
		}
	}

	return &Renderer{
		metrics: append([]model.MetricSpec(nil), metrics...),
		styler:  styler,
		width:   width,
	}
}

// Text 渲染控制台报告。
//
// 只输出被选中的指标，顺序始终是 MetricSpec 的规范顺序；
// 文件数单独放在空行之后，最后一行标明严格/宽容模式。
func (r *Renderer) Text(totals model.Totals, selected []string, strict bool) string {
	wanted := make(map[string]bool, len(selected))
	for _, name := range selected {
		wanted[name] = true
	}

	separator := strings.Repeat(separatorChar, len(labelIndent)+r.width+len(labelSep)+10)

	var builder strings.Builder
	builder.WriteString(separator)
	builder.WriteString("\n")

	var fileLine string
	for _, metric := range r.metrics {
		if !wanted[metric.Name] {
			continue
		}
		value, ok := totals.Value(metric.Name)
		if !ok {
			continue
		}

		line := r.metricLine(metric, value)
		if metric.Name == model.MetricFile {
			fileLine = line
			continue
		}
		builder.WriteString(line)
	}

	if fileLine != "" {
		builder.WriteString("\n")
		builder.WriteString(fileLine)
	}

	fmt.Fprintf(&builder, "%s%*s\n", labelIndent, r.width, modeLabel(strict))
	builder.WriteString(separator)
	builder.WriteString("\n")

	return builder.String()
}

func (r *Renderer) metricLine(metric model.MetricSpec, value int64) string {
	styled := r.styler.Style(metric.Name, strconv.FormatInt(value, 10))
	return fmt.Sprintf("%s%*s%s%s\n", labelIndent, r.width, metric.Label, labelSep, styled)
}

// JSON 渲染完整 Totals 的扁平映射，不受指标选择影响。
func (r *Renderer) JSON(totals model.Totals) ([]byte, error) {
	content, err := json.MarshalIndent(totals.Fields(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal json: %w", err)
	}
	return append(content, '\n'), nil
}

func modeLabel(strict bool) string {
	if strict {
		return "strict mode"
	}
	return "tolerant mode"
}
