package cmd

import (
	"fmt"
	"log/slog"

	"github.com/shouni/go-screenshot-studio/internal/config"
	"github.com/shouni/go-screenshot-studio/internal/pipeline"

	"github.com/spf13/cobra"
)

var (
	bgPrompt string
	bgAspect string
	bgSeed   int64
)

// backgroundCmd は、プロンプトから背景画像を生成してユニットへ適用するサブコマンドなのだ。
var backgroundCmd = &cobra.Command{
	Use:   "background",
	Short: "Gemini で背景画像を生成してユニットに適用するのだ。",
	Long: `プロンプトから背景画像を 1 枚生成し、指定ユニットの背景を画像モードへ
切り替えるのだ。--seed を固定すれば同じ構図を再現しやすくなるのだよ。`,
	PreRunE: preRunAIE,
	RunE:    backgroundCommand,
}

// init は、background コマンド固有のフラグを定義する初期化関数なのだ。
func init() {
	backgroundCmd.Flags().StringVar(&bgPrompt, "prompt", "", "背景画像の生成プロンプトなのだ。")
	backgroundCmd.Flags().StringVar(&bgAspect, "aspect", "9:16", "背景画像のアスペクト比なのだ。")
	backgroundCmd.Flags().Int64Var(&bgSeed, "seed", 0, "画像生成のシード（0 でモデル任せ）なのだ。")
}

// backgroundCommand は、background サブコマンドの実行ロジック本体なのだ。
func backgroundCommand(cmd *cobra.Command, args []string) error {
	if opts.ProjectID == "" {
		return fmt.Errorf("対象プロジェクト（--project）を指定してほしいのだ")
	}
	if bgPrompt == "" {
		return fmt.Errorf("生成プロンプト（--prompt）を指定してほしいのだ")
	}

	cfg := config.LoadConfig()
	cfg.Options = opts
	cfg.GeminiImageModel = opts.ImageModel

	slog.Info("背景生成モードを起動するのだ！",
		"project", opts.ProjectID,
		"unit", opts.UnitIndex,
		"image_model", cfg.GeminiImageModel)

	return pipeline.ExecuteGenerateBackground(cmd.Context(), cfg, bgPrompt, bgAspect, bgSeed)
}
