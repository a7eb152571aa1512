package cmd

import (
	"fmt"
	"log/slog"

	"github.com/shouni/go-screenshot-studio/internal/config"
	"github.com/shouni/go-screenshot-studio/internal/pipeline"

	"github.com/spf13/cobra"
)

// renderCmd は、1 ユニットを PNG へ描き出すサブコマンドなのだ。
var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "指定ユニットを 1 枚の PNG にレンダリングするのだ。",
	Long: `プロジェクトから指定ユニットを読み込み、背景・スクリーンショット・テキストを
合成した PNG を保存するのだ。プレビュー確認や単発の書き出しに便利なのだ。`,
	RunE: renderCommand,
}

// renderCommand は、render サブコマンドの実行ロジック本体なのだ。
func renderCommand(cmd *cobra.Command, args []string) error {
	if opts.ProjectID == "" {
		return fmt.Errorf("対象プロジェクト（--project）を指定してほしいのだ")
	}

	// 1. 環境変数から基本設定をロード
	cfg := config.LoadConfig()

	// 2. コマンドライン引数の値を反映
	cfg.Options = opts

	slog.Info("レンダリングモードを起動するのだ！",
		"project", opts.ProjectID,
		"unit", opts.UnitIndex,
		"output_file", opts.OutputFile)

	// 3. パイプライン実行
	return pipeline.ExecuteRender(cmd.Context(), cfg)
}
