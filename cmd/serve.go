package cmd

import (
	"log/slog"

	"github.com/shouni/go-screenshot-studio/internal/config"
	"github.com/shouni/go-screenshot-studio/internal/pipeline"

	"github.com/spf13/cobra"
)

// serveCmd は、プロジェクト編集・プレビュー・エクスポートの HTTP API を起動するサブコマンドなのだ。
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "HTTP API サーバーを起動するのだ。",
	Long: `プロジェクトの CRUD、画像アップロード、プレビュー PNG、zip エクスポート、
AI 翻訳・背景生成のエンドポイントを提供する API サーバーを起動するのだ。
GEMINI_API_KEY が未設定の場合、AI 系エンドポイントだけが無効になるのだよ。`,
	RunE: serveCommand,
}

// serveCommand は、serve サブコマンドの実行ロジック本体なのだ。
func serveCommand(cmd *cobra.Command, args []string) error {
	cfg := config.LoadConfig()
	cfg.Options = opts

	slog.Info("サーバーモードを起動するのだ！",
		"addr", cfg.ListenAddr,
		"data_dir", cfg.DataDir)

	return pipeline.ExecuteServe(cmd.Context(), cfg)
}
