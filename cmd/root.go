// Package cmd 提供 gosloc 的命令行入口与子命令编排。
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"gosloc/internal/config"
)

// Execute 组装根命令并执行。
// version 参数由 main 包注入，便于在 CI/CD 中打包不同版本。
func Execute(version string) error {
	rootCmd := newRootCmd(version, config.NewViper())
	return rootCmd.Execute()
}

// newRootCmd 创建根命令并注册全部子命令。
// v 在一次命令执行内共享，承载 flag/env/配置文件三层配置。
func newRootCmd(version string, v *viper.Viper) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "gosloc",
		Short: "统计源码的物理行、代码行、注释行与空行",
		Long: "gosloc 逐行把源码分类为 source/single/block/mixed/empty，\n" +
			"汇总多个文件的结果，并输出控制台报告或 JSON 报告。",
		SilenceUsage: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.String(flagConfig, "", "配置文件路径（yaml/toml/json）")
	flags.String(config.KeyProfiles, "", "额外语言注释配置的 YAML 文件")
	flags.BoolP(config.KeyVerbose, "v", false, "输出调试日志")
	bindFlags(v, flags, config.KeyProfiles, config.KeyVerbose)

	rootCmd.AddCommand(newVersionCmd(version))
	rootCmd.AddCommand(newLanguageCmd(v))
	rootCmd.AddCommand(newScanCmd(v))

	return rootCmd
}
