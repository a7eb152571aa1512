package cmd

import (
	"fmt"
	"log/slog"

	"github.com/shouni/go-screenshot-studio/internal/config"
	"github.com/shouni/go-screenshot-studio/internal/pipeline"

	"github.com/spf13/cobra"
)

// exportCmd は、全ユニットを一括レンダリングして zip に束ねるサブコマンドなのだ。
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "全ユニットを App Store 提出サイズで zip にエクスポートするのだ。",
	Long: `プロジェクトの全ユニットをユニット順にレンダリングし、
screenshot_1.png, screenshot_2.png, ... の連番で 1 つの zip に保存するのだ。
--lang で表示言語を切り替えれば、言語別の提出セットが作れるのだよ。`,
	RunE: exportCommand,
}

// exportCommand は、export サブコマンドの実行ロジック本体なのだ。
func exportCommand(cmd *cobra.Command, args []string) error {
	if opts.ProjectID == "" {
		return fmt.Errorf("対象プロジェクト（--project）を指定してほしいのだ")
	}

	cfg := config.LoadConfig()
	cfg.Options = opts

	slog.Info("エクスポートモードを起動するのだ！",
		"project", opts.ProjectID,
		"lang", opts.Language,
		"output_file", opts.OutputFile)

	return pipeline.ExecuteExport(cmd.Context(), cfg)
}
