// Package pipeline 把配置解析、逐行分类、累计与渲染串成一次单向流水线。
//
// 文件按到达顺序逐个处理，Totals 只由 Accumulator 在单一消费循环里修改；
// 收到结束信号后流水线冻结，渲染一次并输出唯一的报告产物。
package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"unicode/utf8"

	"gosloc/internal/config"
	"gosloc/internal/languages"
	"gosloc/internal/model"
	"gosloc/internal/report"
)

var (
	// ErrFinalized 表示流水线已经输出报告，不能再接收文件或再次结束。
	ErrFinalized = errors.New("pipeline already finalized")
	// ErrInvalidEncoding 表示文件内容不是合法的 UTF-8。
	ErrInvalidEncoding = errors.New("invalid utf-8 encoding")
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// State 是流水线所处阶段。
type State int

const (
	StateOpen State = iota
	StateProcessing
	StateFinalized
)

func (s State) String() string {
	switch s {
	case StateOpen:
		return "open"
	case StateProcessing:
		return "processing"
	case StateFinalized:
		return "finalized"
	default:
		return "unknown"
	}
}

// Output 汇集流水线结束时需要的外部协作者。
type Output struct {
	// Console 接收 console 模式的文本报告。
	Console io.Writer
	// Artifacts 接收 json 模式的报告文件。
	Artifacts report.ArtifactSink
	// Styler 只影响 console 文本的数值样式，为 nil 时不加样式。
	Styler report.Styler
}

// Pipeline 是一次性的统计流水线，不可并发调用。
type Pipeline struct {
	cfg         config.Config
	registry    *languages.Registry
	output      Output
	logger      *slog.Logger
	accumulator Accumulator
	state       State
}

// New 创建流水线。cfg 需要已经通过 Validate。
func New(cfg config.Config, registry *languages.Registry, output Output, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if output.Styler == nil {
		output.Styler = report.PlainStyler{}
	}
	return &Pipeline{
		cfg:      cfg,
		registry: registry,
		output:   output,
		logger:   logger,
	}
}

// State 返回当前阶段。
func (p *Pipeline) State() State {
	return p.state
}

// Snapshot 返回当前的累计值。取消或出错后它仍是一个合法的部分结果。
func (p *Pipeline) Snapshot() model.Totals {
	return p.accumulator.Totals()
}

// Process 处理一个输入文件：解析配置、分类、累计。
// 严格模式下未知后缀的文件被静默跳过，返回 nil。
func (p *Pipeline) Process(file model.SourceFile) error {
	if p.state == StateFinalized {
		return ErrFinalized
	}

	profile, ok := p.registry.Resolve(file.Path, p.cfg.Strict())
	if !ok {
		p.logger.Debug("skip unrecognized file", "path", file.Path)
		return nil
	}

	contents := bytes.TrimPrefix(file.Contents, utf8BOM)
	if !utf8.Valid(contents) {
		return fmt.Errorf("%s: %w", file.Path, ErrInvalidEncoding)
	}

	result := languages.Classify(file.Path, string(contents), profile)
	p.accumulator.Absorb(result)
	p.state = StateProcessing

	p.logger.Debug("classified file",
		"path", file.Path,
		"language", result.Language,
		"total", result.Total,
		"source", result.Source,
		"comment", result.Comment(),
		"empty", result.Empty,
	)
	return nil
}

// Run 持续消费 files 直到通道关闭，然后结束流水线。
// ctx 取消时立即返回 ctx 的错误，不会输出报告。
func (p *Pipeline) Run(ctx context.Context, files <-chan model.SourceFile) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case file, ok := <-files:
			if !ok {
				return p.Finalize(ctx)
			}
			if err := p.Process(file); err != nil {
				return err
			}
		}
	}
}

// Finalize 冻结累计值，渲染一次并输出唯一的报告产物。
func (p *Pipeline) Finalize(ctx context.Context) error {
	if p.state == StateFinalized {
		return ErrFinalized
	}
	p.state = StateFinalized

	totals := p.accumulator.Totals()
	renderer := report.NewRenderer(p.output.Styler)

	switch p.cfg.ReportType {
	case config.ReportJSON:
		if p.output.Artifacts == nil {
			return fmt.Errorf("%w: no artifact sink for json report", config.ErrMisconfigured)
		}
		content, err := renderer.JSON(totals)
		if err != nil {
			return err
		}
		if err := p.output.Artifacts.Put(ctx, p.cfg.ReportFile, content); err != nil {
			return fmt.Errorf("emit %s: %w", p.cfg.ReportFile, err)
		}
		p.logger.Info("report written", "artifact", p.cfg.ReportFile, "files", totals.Files)
		return nil
	default:
		if p.output.Console == nil {
			return fmt.Errorf("%w: no console writer for console report", config.ErrMisconfigured)
		}
		text := renderer.Text(totals, p.cfg.Metrics, p.cfg.Strict())
		if _, err := io.WriteString(p.output.Console, text); err != nil {
			return fmt.Errorf("write console report: %w", err)
		}
		return nil
	}
}
