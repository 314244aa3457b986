// Package config 定义一次统计运行的配置，以及基于 viper 的分层加载。
package config

import (
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"gosloc/internal/model"
)

// ErrMisconfigured 包裹所有配置期发现的报告目标错误。
var ErrMisconfigured = errors.New("invalid configuration")

// ReportType 选择报告的输出目标。
type ReportType string

const (
	ReportConsole ReportType = "console"
	ReportJSON    ReportType = "json"
)

// 颜色模式。
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// DefaultReportFile 是 json 报告的默认文件名。
const DefaultReportFile = "sloc.json"

// viper 配置键，同时也是命令行参数名。
const (
	KeyTolerant   = "tolerant"
	KeyMetrics    = "metrics"
	KeyReportType = "report-type"
	KeyReportFile = "report-file"
	KeyOutputDir  = "output-dir"
	KeyProfiles   = "profiles"
	KeyWorkers    = "workers"
	KeyNoIgnore   = "no-ignore"
	KeyColor      = "color"
	KeyVerbose    = "verbose"

	KeyS3Endpoint  = "s3.endpoint"
	KeyS3Bucket    = "s3.bucket"
	KeyS3Region    = "s3.region"
	KeyS3AccessKey = "s3.access-key"
	KeyS3SecretKey = "s3.secret-key"
	KeyS3UseSSL    = "s3.use-ssl"
	KeyS3Prefix    = "s3.prefix"
)

// EnvPrefix 是环境变量前缀，例如 GOSLOC_REPORT_TYPE。
const EnvPrefix = "GOSLOC"

// Config 是一次运行的全部配置，显式传入流水线，不使用全局状态。
type Config struct {
	Tolerant   bool
	Metrics    []string
	ReportType ReportType
	ReportFile string
	OutputDir  string
	Profiles   string
	Workers    int
	NoIgnore   bool
	Color      string
	Verbose    bool
	S3         S3Config
}

// S3Config 描述 json 报告上传到 S3 兼容对象存储时的参数。
// Endpoint 为空表示写本地目录。
type S3Config struct {
	Endpoint  string
	Bucket    string
	Region    string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Prefix    string
}

// Enabled 表示是否配置了对象存储。
func (c S3Config) Enabled() bool {
	return strings.TrimSpace(c.Endpoint) != ""
}

// Default 返回默认配置。
func Default() Config {
	return Config{
		Metrics:    model.MetricNames(),
		ReportType: ReportConsole,
		ReportFile: DefaultReportFile,
		OutputDir:  ".",
		Workers:    runtime.NumCPU(),
		Color:      ColorAuto,
	}
}

// Strict 表示是否丢弃未知后缀的文件。
func (c Config) Strict() bool {
	return !c.Tolerant
}

// Validate 在配置阶段检查报告目标，错误都包裹 ErrMisconfigured。
func (c Config) Validate() error {
	switch c.ReportType {
	case ReportConsole, ReportJSON:
	default:
		return fmt.Errorf("%w: unsupported report type %q, allowed values: console, json", ErrMisconfigured, c.ReportType)
	}

	if c.ReportType == ReportJSON && strings.TrimSpace(c.ReportFile) == "" {
		return fmt.Errorf("%w: report file is required for json reports", ErrMisconfigured)
	}

	for _, name := range c.Metrics {
		if !model.IsMetric(name) {
			return fmt.Errorf("%w: unknown metric %q, allowed values: %s", ErrMisconfigured, name, strings.Join(model.MetricNames(), ", "))
		}
	}

	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("%w: unsupported color mode %q", ErrMisconfigured, c.Color)
	}

	if c.Workers <= 0 {
		return fmt.Errorf("%w: workers must be greater than 0", ErrMisconfigured)
	}

	if c.S3.Enabled() {
		if strings.TrimSpace(c.S3.Bucket) == "" {
			return fmt.Errorf("%w: s3 bucket is required", ErrMisconfigured)
		}
		if strings.TrimSpace(c.S3.AccessKey) == "" || strings.TrimSpace(c.S3.SecretKey) == "" {
			return fmt.Errorf("%w: s3 access key and secret key are required", ErrMisconfigured)
		}
	}

	return nil
}

// NewViper 创建带默认值和环境变量映射的 viper 实例。
// 每次调用返回独立实例，多次运行之间互不影响。
func NewViper() *viper.Viper {
	defaults := Default()

	v := viper.New()
	v.SetDefault(KeyTolerant, defaults.Tolerant)
	v.SetDefault(KeyMetrics, defaults.Metrics)
	v.SetDefault(KeyReportType, string(defaults.ReportType))
	v.SetDefault(KeyReportFile, defaults.ReportFile)
	v.SetDefault(KeyOutputDir, defaults.OutputDir)
	v.SetDefault(KeyProfiles, "")
	v.SetDefault(KeyWorkers, defaults.Workers)
	v.SetDefault(KeyNoIgnore, false)
	v.SetDefault(KeyColor, defaults.Color)
	v.SetDefault(KeyVerbose, false)
	v.SetDefault(KeyS3Region, "us-east-1")
	v.SetDefault(KeyS3UseSSL, true)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	return v
}

// Load 按 flag > env > 配置文件 > 默认值 的顺序读取配置并校验。
// configFile 为空时不读取配置文件；工作目录下的 .env 会被尽量加载。
func Load(v *viper.Viper, configFile string) (Config, error) {
	if err := readSources(v, configFile); err != nil {
		return Config{}, err
	}

	cfg := Config{
		Tolerant:   v.GetBool(KeyTolerant),
		Metrics:    normalizeMetrics(v.GetStringSlice(KeyMetrics)),
		ReportType: ReportType(strings.ToLower(strings.TrimSpace(v.GetString(KeyReportType)))),
		ReportFile: strings.TrimSpace(v.GetString(KeyReportFile)),
		OutputDir:  strings.TrimSpace(v.GetString(KeyOutputDir)),
		Profiles:   strings.TrimSpace(v.GetString(KeyProfiles)),
		Workers:    v.GetInt(KeyWorkers),
		NoIgnore:   v.GetBool(KeyNoIgnore),
		Color:      strings.ToLower(strings.TrimSpace(v.GetString(KeyColor))),
		Verbose:    v.GetBool(KeyVerbose),
		S3: S3Config{
			Endpoint:  strings.TrimSpace(v.GetString(KeyS3Endpoint)),
			Bucket:    strings.TrimSpace(v.GetString(KeyS3Bucket)),
			Region:    strings.TrimSpace(v.GetString(KeyS3Region)),
			AccessKey: v.GetString(KeyS3AccessKey),
			SecretKey: v.GetString(KeyS3SecretKey),
			UseSSL:    v.GetBool(KeyS3UseSSL),
			Prefix:    strings.Trim(strings.TrimSpace(v.GetString(KeyS3Prefix)), "/"),
		},
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "."
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadProfiles 只读取 profiles 路径，不校验报告相关配置。
// 供不输出报告的命令使用。
func LoadProfiles(v *viper.Viper, configFile string) (string, error) {
	if err := readSources(v, configFile); err != nil {
		return "", err
	}
	return strings.TrimSpace(v.GetString(KeyProfiles)), nil
}

// readSources 加载 .env 与配置文件。
func readSources(v *viper.Viper, configFile string) error {
	_ = godotenv.Load()

	if configFile == "" {
		return nil
	}
	v.SetConfigFile(configFile)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	return nil
}

// normalizeMetrics 兼容逗号分隔的环境变量写法，并去除空白项。
func normalizeMetrics(values []string) []string {
	metrics := make([]string, 0, len(values))
	for _, value := range values {
		for _, item := range strings.Split(value, ",") {
			if item = strings.ToLower(strings.TrimSpace(item)); item != "" {
				metrics = append(metrics, item)
			}
		}
	}
	return metrics
}
