package cmd

import (
	"context"
	"errors"
	"io"
	"sync/atomic"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"gosloc/internal/config"
	"gosloc/internal/model"
	"gosloc/internal/pipeline"
	"gosloc/internal/report"
	"gosloc/internal/scanner"
)

// newScanCmd 创建 scan 子命令。
// 示例：
//
//	gosloc scan .
//	gosloc scan ./src ./test --tolerant --metrics total,source
//	gosloc scan ./project --report-type json --report-file out/sloc.json
func newScanCmd(v *viper.Viper) *cobra.Command {
	defaults := config.Default()

	scanCmd := &cobra.Command{
		Use:   "scan [path...]",
		Short: "扫描目录或文件并输出行数统计",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, v)
			if err != nil {
				return err
			}
			return runScan(cmd.Context(), cfg, args, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	flags := scanCmd.Flags()
	flags.Bool(config.KeyTolerant, defaults.Tolerant, "宽容模式：未知后缀按无注释的纯代码统计（默认严格模式直接跳过）")
	flags.StringSlice(config.KeyMetrics, defaults.Metrics, "控制台报告展示的指标")
	flags.String(config.KeyReportType, string(defaults.ReportType), "报告类型: console 或 json")
	flags.String(config.KeyReportFile, defaults.ReportFile, "json 报告文件名")
	flags.String(config.KeyOutputDir, defaults.OutputDir, "json 报告输出目录")
	flags.Int(config.KeyWorkers, defaults.Workers, "并发读取文件的 worker 数量")
	flags.Bool(config.KeyNoIgnore, false, "不读取 .gitignore")
	flags.String(config.KeyColor, defaults.Color, "颜色: auto、always 或 never")
	flags.String(config.KeyS3Endpoint, "", "json 报告上传的 S3 endpoint，为空时写本地目录")
	flags.String(config.KeyS3Bucket, "", "S3 bucket")
	flags.String(config.KeyS3Prefix, "", "S3 对象 key 前缀")
	bindFlags(v, flags,
		config.KeyTolerant,
		config.KeyMetrics,
		config.KeyReportType,
		config.KeyReportFile,
		config.KeyOutputDir,
		config.KeyWorkers,
		config.KeyNoIgnore,
		config.KeyColor,
		config.KeyS3Endpoint,
		config.KeyS3Bucket,
		config.KeyS3Prefix,
	)

	return scanCmd
}

// runScan 把扫描结果接入流水线并输出唯一的报告。
// 目录遍历失败时不输出报告，单个文件读取失败只记日志。
func runScan(ctx context.Context, cfg config.Config, paths []string, stdout io.Writer, stderr io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	registry, err := buildRegistry(cfg.Profiles)
	if err != nil {
		return err
	}

	output := pipeline.Output{
		Console: stdout,
		Styler:  newStyler(cfg.Color, stdout),
	}
	if cfg.ReportType == config.ReportJSON {
		sink, sinkErr := newArtifactSink(cfg)
		if sinkErr != nil {
			return sinkErr
		}
		output.Artifacts = sink
		output.Styler = report.PlainStyler{}
	}

	logger := newLogger(stderr, cfg.Verbose)
	service := scanner.NewService(cfg.Workers,
		scanner.WithIgnoreFiles(!cfg.NoIgnore),
		scanner.WithLogger(logger),
	)
	files, readErrors, walkErrs := service.Stream(ctx, paths)

	var readFailures atomic.Int64
	readDone := make(chan struct{})
	go func() {
		defer close(readDone)
		for range readErrors {
			readFailures.Add(1)
		}
	}()

	// relay 只在遍历成功后关闭，遍历失败时取消流水线，避免输出不完整的报告。
	relay := make(chan model.SourceFile)
	var walkErr error
	relayDone := make(chan struct{})
	go func() {
		defer close(relayDone)
		for file := range files {
			select {
			case relay <- file:
			case <-ctx.Done():
			}
		}
		if err := <-walkErrs; err != nil {
			walkErr = err
			cancel()
			return
		}
		close(relay)
	}()

	p := pipeline.New(cfg, registry, output, logger)
	runErr := p.Run(ctx, relay)
	if runErr != nil {
		cancel()
	}
	<-relayDone
	<-readDone

	// 流水线自身出错时遍历只会收到取消信号，以流水线的错误为准。
	if walkErr != nil && (runErr == nil || errors.Is(runErr, context.Canceled)) {
		return walkErr
	}
	if runErr != nil {
		return runErr
	}

	if failures := readFailures.Load(); failures > 0 {
		logger.Warn("some files could not be read", "count", failures)
	}
	return nil
}
