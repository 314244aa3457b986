package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"gosloc/internal/config"
	"gosloc/internal/languages"
	"gosloc/internal/report"
)

const flagConfig = "config"

// bindFlags 把 flag 绑定到同名 viper 键。
func bindFlags(v *viper.Viper, flags *pflag.FlagSet, keys ...string) {
	for _, key := range keys {
		// 只有 flag 不存在时才会报错，这里的 key 都是刚注册的。
		_ = v.BindPFlag(key, flags.Lookup(key))
	}
}

// loadConfig 读取 --config 指定的文件并合并 flag 与环境变量。
func loadConfig(cmd *cobra.Command, v *viper.Viper) (config.Config, error) {
	configFile, err := cmd.Flags().GetString(flagConfig)
	if err != nil {
		return config.Config{}, err
	}
	return config.Load(v, configFile)
}

// buildRegistry 创建注册中心，配置了 profiles 文件时追加自定义语言。
func buildRegistry(profiles string) (*languages.Registry, error) {
	if profiles == "" {
		return languages.NewRegistry(), nil
	}

	extra, err := languages.LoadProfiles(profiles)
	if err != nil {
		return nil, err
	}
	return languages.NewRegistry(extra...), nil
}

// newLogger 创建写到 stderr 的结构化日志。
func newLogger(writer io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(writer, &slog.HandlerOptions{Level: level}))
}

// newStyler 根据颜色模式选择样式。auto 只在标准输出是终端时启用颜色。
func newStyler(mode string, writer io.Writer) report.Styler {
	switch mode {
	case config.ColorAlways:
		return report.NewColorStyler(true)
	case config.ColorNever:
		return report.PlainStyler{}
	default:
		file, ok := writer.(*os.File)
		if !ok || file != os.Stdout || color.NoColor {
			return report.PlainStyler{}
		}
		return report.NewColorStyler(true)
	}
}

// newArtifactSink 选择 json 报告的输出端：对象存储或本地目录。
func newArtifactSink(cfg config.Config) (report.ArtifactSink, error) {
	if !cfg.S3.Enabled() {
		return report.DirSink{Dir: cfg.OutputDir}, nil
	}

	sink, err := report.NewS3Sink(report.S3Options{
		Endpoint:  cfg.S3.Endpoint,
		Region:    cfg.S3.Region,
		AccessKey: cfg.S3.AccessKey,
		SecretKey: cfg.S3.SecretKey,
		Bucket:    cfg.S3.Bucket,
		Prefix:    cfg.S3.Prefix,
		UseSSL:    cfg.S3.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", config.ErrMisconfigured, err)
	}
	return sink, nil
}
