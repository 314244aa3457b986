package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"gosloc/internal/config"
	"gosloc/internal/languages"
)

// newLanguageCmd 创建 language 子命令。
// 命令用于展示当前登记的语言、对应后缀以及注释标记，包含 --profiles 追加的语言。
func newLanguageCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "language",
		Short: "展示已登记语言、后缀及注释标记",
		RunE: func(cmd *cobra.Command, _ []string) error {
			configFile, err := cmd.Flags().GetString(flagConfig)
			if err != nil {
				return err
			}
			profiles, err := config.LoadProfiles(v, configFile)
			if err != nil {
				return err
			}
			registry, err := buildRegistry(profiles)
			if err != nil {
				return err
			}

			writer := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)

			if _, err := fmt.Fprintln(writer, "LANGUAGE\tLINE\tBLOCK\tEXTENSIONS\tNOTE"); err != nil {
				return err
			}

			for _, item := range registry.Languages() {
				if _, err := fmt.Fprintf(writer, "%s\t%s\t%s\t%s\t%s\n",
					item.Name,
					orDash(item.LineMarker),
					blockColumn(item.Block),
					strings.Join(item.Extensions, ", "),
					item.Note,
				); err != nil {
					return err
				}
			}

			return writer.Flush()
		},
	}
}

func orDash(value string) string {
	if value == "" {
		return "-"
	}
	return value
}

func blockColumn(block *languages.BlockMarkers) string {
	if block == nil {
		return "-"
	}
	return block.Open + " " + block.Close
}
