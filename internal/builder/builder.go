package builder

import (
	"context"
	"fmt"

	"github.com/shouni/go-ai-client/v2/pkg/ai/gemini"
	"google.golang.org/genai"

	"github.com/shouni/go-screenshot-studio/pkg/export"
	"github.com/shouni/go-screenshot-studio/pkg/imagegen"
	"github.com/shouni/go-screenshot-studio/pkg/render"
	"github.com/shouni/go-screenshot-studio/pkg/translate"
)

// BuildCompositor は描画オーケストレーターを構築します。
// --noise-seed が指定されていればノイズ乱数列を固定します。
func BuildCompositor(appCtx *AppContext) *render.Compositor {
	var opts []render.Option
	if appCtx.Options.NoiseSeed != 0 {
		opts = append(opts, render.WithNoiseSeed(appCtx.Options.NoiseSeed))
	}
	return render.NewCompositor(appCtx.Fonts, opts...)
}

// BuildExporter は一括エクスポーターを構築します。
func BuildExporter(appCtx *AppContext) *export.Exporter {
	return export.NewExporter(BuildCompositor(appCtx))
}

// BuildTranslator はテキスト翻訳 Runner を構築します。
func BuildTranslator(appCtx *AppContext) (*translate.Translator, error) {
	if appCtx.aiClient == nil {
		return nil, fmt.Errorf("AIクライアントが初期化されていません（GEMINI_API_KEY を確認してください）")
	}
	model := appCtx.Options.AIModel
	if model == "" {
		model = appCtx.Config.GeminiModel
	}
	return translate.New(translate.NewGeminiModel(appCtx.aiClient, model)), nil
}

// BuildImageGenerator は背景画像生成のファサードを構築します。
func BuildImageGenerator(appCtx *AppContext) (*imagegen.Generator, error) {
	if appCtx.aiClient == nil {
		return nil, fmt.Errorf("AIクライアントが初期化されていません（GEMINI_API_KEY を確認してください）")
	}
	model := appCtx.Options.ImageModel
	if model == "" {
		model = appCtx.Config.GeminiImageModel
	}
	imgGen, err := imagegen.New(appCtx.httpClient, appCtx.aiClient, model)
	if err != nil {
		return nil, fmt.Errorf("GeminiGeneratorの初期化に失敗したのだ: %w", err)
	}
	return imgGen, nil
}

// InitializeAIClient は gemini クライアントを初期化します。
func InitializeAIClient(ctx context.Context, apiKey string) (gemini.GenerativeModel, error) {
	const defaultGeminiTemperature = float32(0.2)
	clientConfig := gemini.Config{
		APIKey:      apiKey,
		Temperature: genai.Ptr(defaultGeminiTemperature),
	}
	aiClient, err := gemini.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("AIクライアントの初期化に失敗しました: %w", err)
	}
	return aiClient, nil
}
