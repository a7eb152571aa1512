// Package imagegen は Gemini による背景画像生成のファサードです。
package imagegen

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	imagedom "github.com/shouni/gemini-image-kit/pkg/domain"
	"github.com/shouni/gemini-image-kit/pkg/generator"
	"github.com/shouni/go-ai-client/v2/pkg/ai/gemini"
	"github.com/shouni/go-http-kit/pkg/httpkit"

	"github.com/shouni/go-screenshot-studio/pkg/domain"
)

// ErrNoImage はモデルが画像以外の応答を返したことを表します。
var ErrNoImage = errors.New("モデルが画像を返しませんでした")

const (
	cacheExpiration = 30 * time.Minute
	cacheCleanup    = 1 * time.Hour
	cacheTTL        = 1 * time.Hour

	// 背景には誌面要素が混入しないよう負のプロンプトを常に添えます。
	backgroundNegativePrompt = "text, watermark, logo, people, hands, ui elements"
)

// Generator は背景用の画像生成をラップします。
type Generator struct {
	imgGen generator.ImageGenerator
}

// New は画像処理コアとジェネレーターを組み立てます。
func New(httpClient httpkit.ClientInterface, aiClient gemini.GenerativeModel, model string) (*Generator, error) {
	imgCache := cache.New(cacheExpiration, cacheCleanup)

	core, err := generator.NewGeminiImageCore(httpClient, imgCache, cacheTTL)
	if err != nil {
		return nil, fmt.Errorf("GeminiImageCoreの初期化に失敗しました: %w", err)
	}

	imgGen, err := generator.NewGeminiGenerator(core, aiClient, model)
	if err != nil {
		return nil, fmt.Errorf("GeminiGeneratorの初期化に失敗しました: %w", err)
	}

	return &Generator{imgGen: imgGen}, nil
}

// Request は背景生成の入力です。Seed が 0 のときはモデル任せになります。
type Request struct {
	Prompt      string
	AspectRatio string
	Seed        int64
}

// GenerateBackground はプロンプトから背景画像を 1 枚生成し、
// 背景設定へそのまま渡せるラスターアセットとして返します。
func (g *Generator) GenerateBackground(ctx context.Context, req Request) (*domain.RasterAsset, int64, error) {
	if strings.TrimSpace(req.Prompt) == "" {
		return nil, 0, fmt.Errorf("生成プロンプトが空です")
	}
	aspect := req.AspectRatio
	if aspect == "" {
		aspect = "9:16"
	}

	slog.Info("背景画像を生成するのだ", "aspect", aspect, "seed", req.Seed)
	resp, err := g.imgGen.GenerateMangaPanel(ctx, imagedom.ImageGenerationRequest{
		Prompt:         req.Prompt,
		NegativePrompt: backgroundNegativePrompt,
		AspectRatio:    aspect,
		Seed:           ptrInt64(req.Seed),
	})
	if err != nil {
		return nil, 0, fmt.Errorf("背景画像の生成に失敗しました: %w", err)
	}
	if resp == nil || len(resp.Data) == 0 || !strings.HasPrefix(resp.MimeType, "image/") {
		return nil, 0, ErrNoImage
	}

	asset, err := domain.NewRasterAsset(resp.Data, "generated_background"+extensionFor(resp.MimeType))
	if err != nil {
		return nil, 0, fmt.Errorf("生成画像のデコードに失敗しました: %w", err)
	}
	return asset, resp.UsedSeed, nil
}

func ptrInt64(v int64) *int64 {
	if v == 0 {
		return nil
	}
	return &v
}

func extensionFor(mimeType string) string {
	preferred := map[string]string{"image/png": ".png", "image/jpeg": ".jpg"}
	if ext, ok := preferred[mimeType]; ok {
		return ext
	}
	return ".png"
}
