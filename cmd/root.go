package cmd

import (
	"fmt"
	"os"

	"github.com/shouni/go-screenshot-studio/internal/config"

	"github.com/spf13/cobra"
)

// opts は、各サブコマンドで共有する実行時パラメータなのだ。
var opts config.RenderOptions

var rootCmd = &cobra.Command{
	Use:   "screenshot-studio",
	Short: "App Store 用スクリーンショットを合成・エクスポートするツールなのだ。",
	Long: `スクリーンショット画像に背景・角丸・シャドウ・見出しテキストを重ねて、
App Store 提出サイズの宣伝画像を決定論的に生成するツールなのだ。
プロジェクトは JSON で永続化され、CLI と HTTP API の両方から扱えるのだよ。`,
	SilenceUsage: true,
}

// addAppFlags は、アプリケーション全般に適用されるグローバルフラグを定義するのだ。
func addAppFlags(rootCmd *cobra.Command) {
	// --- プロジェクト指定関連 ---
	rootCmd.PersistentFlags().StringVarP(&opts.ProjectID, "project", "p", "", "対象プロジェクトの ID なのだ。")
	rootCmd.PersistentFlags().IntVarP(&opts.UnitIndex, "unit", "n", 0, "対象ユニットの番号（0 始まり）なのだ。")
	rootCmd.PersistentFlags().StringVarP(&opts.Language, "lang", "l", "", "表示言語コード（en, ja, pt-br など）なのだ。")
	rootCmd.PersistentFlags().StringVarP(&opts.OutputFile, "output-file", "o", "", "保存先のパスなのだ。")

	// --- 出力サイズ関連 ---
	rootCmd.PersistentFlags().StringVarP(&opts.OutputTarget, "target", "t", "", "出力先プリセット名（iphone-6.9 など）なのだ。")
	rootCmd.PersistentFlags().IntVar(&opts.CustomWidth, "width", 0, "カスタム出力の幅（px）なのだ。")
	rootCmd.PersistentFlags().IntVar(&opts.CustomHeight, "height", 0, "カスタム出力の高さ（px）なのだ。")

	// --- AIモデル・挙動設定 ---
	rootCmd.PersistentFlags().StringVar(&opts.AIModel, "model", config.DefaultModel, "翻訳に使用する Gemini モデル名なのだ。")
	rootCmd.PersistentFlags().StringVar(&opts.ImageModel, "image-model", config.DefaultImageModel, "背景生成に使用する Gemini モデル名なのだ。")
	rootCmd.PersistentFlags().DurationVar(&opts.HTTPTimeout, "http-timeout", config.DefaultHTTPTimeout, "Webリクエストのタイムアウトなのだ。")

	// --- 描画制御 ---
	rootCmd.PersistentFlags().Int64Var(&opts.NoiseSeed, "noise-seed", 0, "ノイズ乱数のシード（0 で毎回ランダム）なのだ。")
}

// preRunAIE は、AI を使うコマンドの実行前に APIキーの存在チェックを行うのだ。
func preRunAIE(cmd *cobra.Command, args []string) error {
	if os.Getenv("GEMINI_API_KEY") == "" {
		return fmt.Errorf("エラー: 環境変数 GEMINI_API_KEY が設定されていません。Gemini APIの利用には必須なのだ")
	}
	return nil
}

// Execute は、アプリケーションのメインエントリポイントなのだ。
// main.go から呼び出されて、cobra のコマンドライン解析を開始するのだよ。
func Execute() {
	addAppFlags(rootCmd)
	rootCmd.AddCommand(
		renderCmd,
		exportCmd,
		translateCmd,
		backgroundCmd,
		serveCmd,
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
