package cmd

import (
	"fmt"
	"log/slog"

	"github.com/shouni/go-screenshot-studio/internal/config"
	"github.com/shouni/go-screenshot-studio/internal/pipeline"

	"github.com/spf13/cobra"
)

// translateCmd は、見出しテキストを有効言語すべてへ AI 翻訳するサブコマンドなのだ。
var translateCmd = &cobra.Command{
	Use:   "translate",
	Short: "ユニットの見出しテキストを有効言語すべてへ翻訳するのだ。",
	Long: `指定ユニットの見出し・サブ見出しを Gemini で翻訳し、
プロジェクトの有効言語すべてのテキストマップに書き込むのだ。
翻訳元は --lang（省略時はプロジェクトのアクティブ言語）なのだよ。`,
	PreRunE: preRunAIE,
	RunE:    translateCommand,
}

// translateCommand は、translate サブコマンドの実行ロジック本体なのだ。
func translateCommand(cmd *cobra.Command, args []string) error {
	if opts.ProjectID == "" {
		return fmt.Errorf("対象プロジェクト（--project）を指定してほしいのだ")
	}

	cfg := config.LoadConfig()
	cfg.Options = opts
	cfg.GeminiModel = opts.AIModel

	slog.Info("翻訳モードを起動するのだ！",
		"project", opts.ProjectID,
		"unit", opts.UnitIndex,
		"model", cfg.GeminiModel)

	return pipeline.ExecuteTranslate(cmd.Context(), cfg)
}
