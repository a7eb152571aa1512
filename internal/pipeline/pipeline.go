package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/shouni/go-http-kit/pkg/httpkit"

	"github.com/shouni/go-screenshot-studio/internal/builder"
	"github.com/shouni/go-screenshot-studio/internal/config"
	"github.com/shouni/go-screenshot-studio/internal/server"
	"github.com/shouni/go-screenshot-studio/pkg/domain"
	"github.com/shouni/go-screenshot-studio/pkg/imagegen"
	"github.com/shouni/go-screenshot-studio/pkg/preset"
	"github.com/shouni/go-screenshot-studio/pkg/project"
	"github.com/shouni/go-screenshot-studio/pkg/render"
	"github.com/shouni/go-screenshot-studio/pkg/translate"
)

// ExecuteRender は、指定プロジェクトの 1 ユニットを PNG ファイルへ描き出すのだ。
func ExecuteRender(ctx context.Context, cfg *config.Config) error {
	appCtx, err := setupAppContext(ctx, cfg, false)
	if err != nil {
		return err
	}

	p, unit, err := loadUnit(appCtx, cfg.Options.ProjectID, cfg.Options.UnitIndex)
	if err != nil {
		return err
	}
	applyOutputOverrides(p, cfg.Options)

	dims, err := preset.Resolve(p.OutputTarget, p.CustomWidth, p.CustomHeight)
	if err != nil {
		return fmt.Errorf("出力サイズの解決に失敗しました: %w", err)
	}

	compositor := builder.BuildCompositor(appCtx)
	png, err := compositor.RenderPNG(render.Dims{Width: dims.Width, Height: dims.Height}, p, unit)
	if err != nil {
		return fmt.Errorf("レンダリングに失敗したのだ: %w", err)
	}

	outputPath := cfg.Options.OutputFile
	if outputPath == "" {
		outputPath = "screenshot.png"
	}
	if err := os.WriteFile(outputPath, png, 0o644); err != nil {
		return fmt.Errorf("PNG の保存に失敗しました: %w", err)
	}

	slog.Info("レンダリングが完了したのだ！", "path", outputPath, "width", dims.Width, "height", dims.Height)
	return nil
}

// ExecuteExport は、全ユニットを一括レンダリングして zip に保存するのだ。
func ExecuteExport(ctx context.Context, cfg *config.Config) error {
	appCtx, err := setupAppContext(ctx, cfg, false)
	if err != nil {
		return err
	}

	p, err := appCtx.Store.Load(cfg.Options.ProjectID)
	if err != nil {
		return fmt.Errorf("プロジェクトの読み込みに失敗しました: %w", err)
	}
	applyOutputOverrides(p, cfg.Options)
	if cfg.Options.Language != "" {
		p.ActiveLanguage = cfg.Options.Language
	}

	outputPath := cfg.Options.OutputFile
	if outputPath == "" {
		outputPath = fmt.Sprintf("%s_screenshots.zip", p.ID)
	}
	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("zip ファイルの作成に失敗しました: %w", err)
	}
	defer f.Close()

	exporter := builder.BuildExporter(appCtx)
	if err := exporter.WriteZip(f, p); err != nil {
		return fmt.Errorf("エクスポートに失敗したのだ: %w", err)
	}

	slog.Info("エクスポートが完了したのだ！", "path", outputPath, "units", len(p.Units))
	return nil
}

// ExecuteTranslate は、ユニットの見出しテキストを有効言語すべてへ展開するのだ。
func ExecuteTranslate(ctx context.Context, cfg *config.Config) error {
	appCtx, err := setupAppContext(ctx, cfg, true)
	if err != nil {
		return err
	}

	p, unit, err := loadUnit(appCtx, cfg.Options.ProjectID, cfg.Options.UnitIndex)
	if err != nil {
		return err
	}

	source := cfg.Options.Language
	if source == "" {
		source = p.ActiveLanguage
	}

	translator, err := builder.BuildTranslator(appCtx)
	if err != nil {
		return err
	}

	slog.Info("翻訳を開始するのだ...", "source", source, "targets", len(p.EnabledLanguages)-1)
	result, err := translator.Translate(ctx, source,
		unit.Text.Headlines[source], unit.Text.Subheadlines[source], p.EnabledLanguages)
	if err != nil {
		return fmt.Errorf("翻訳に失敗したのだ: %w", err)
	}

	translate.ApplyToUnit(unit, result)
	if err := appCtx.Store.Save(p); err != nil {
		return fmt.Errorf("翻訳結果の保存に失敗しました: %w", err)
	}

	slog.Info("翻訳が完了したのだ！", "languages", len(result.Headlines))
	return nil
}

// ExecuteGenerateBackground は、プロンプトから背景画像を生成してユニットに適用するのだ。
func ExecuteGenerateBackground(ctx context.Context, cfg *config.Config, prompt, aspect string, seed int64) error {
	appCtx, err := setupAppContext(ctx, cfg, true)
	if err != nil {
		return err
	}

	p, unit, err := loadUnit(appCtx, cfg.Options.ProjectID, cfg.Options.UnitIndex)
	if err != nil {
		return err
	}

	imgGen, err := builder.BuildImageGenerator(appCtx)
	if err != nil {
		return err
	}

	asset, usedSeed, err := imgGen.GenerateBackground(ctx, imagegen.Request{
		Prompt:      prompt,
		AspectRatio: aspect,
		Seed:        seed,
	})
	if err != nil {
		return fmt.Errorf("背景生成に失敗したのだ: %w", err)
	}

	unit.Background.Type = domain.BackgroundImage
	unit.Background.Image.Asset = asset
	if err := appCtx.Store.Save(p); err != nil {
		return fmt.Errorf("プロジェクトの保存に失敗しました: %w", err)
	}

	slog.Info("背景画像を適用したのだ！", "filename", asset.Filename, "used_seed", usedSeed)
	return nil
}

// ExecuteServe は HTTP API サーバーを起動するのだ。
// AI クライアントの初期化失敗は警告に留め、編集・描画機能だけで立ち上げる。
func ExecuteServe(ctx context.Context, cfg *config.Config) error {
	appCtx, err := setupAppContext(ctx, cfg, false)
	if err != nil {
		return err
	}

	translator, err := builder.BuildTranslator(appCtx)
	if err != nil {
		slog.Warn("翻訳機能なしで起動するのだ", "error", err)
	}
	imgGen, err := builder.BuildImageGenerator(appCtx)
	if err != nil {
		slog.Warn("画像生成機能なしで起動するのだ", "error", err)
	}

	srv := server.New(cfg, appCtx.Store,
		builder.BuildCompositor(appCtx), builder.BuildExporter(appCtx), translator, imgGen)
	return srv.Run()
}

// setupAppContext は、共有コンポーネントを初期化してアプリケーションコンテキストを返すのだ。
// requireAI が true のときは AI クライアントの初期化失敗を即エラーにする。
func setupAppContext(ctx context.Context, cfg *config.Config, requireAI bool) (*builder.AppContext, error) {
	timeout := cfg.Options.HTTPTimeout
	if timeout <= 0 {
		timeout = config.DefaultHTTPTimeout
	}
	httpClient := httpkit.New(timeout)

	aiClient, err := builder.InitializeAIClient(ctx, cfg.GeminiAPIKey)
	if err != nil {
		if requireAI {
			return nil, fmt.Errorf("failed to create ai client: %w", err)
		}
		slog.Warn("AIクライアントを初期化できなかったのだ", "error", err)
		aiClient = nil
	}

	store := project.OpenStore(cfg.DataDir)
	fonts := render.NewFontRegistry(cfg.FontDir)

	appCtx := builder.NewAppContext(cfg, httpClient, aiClient, store, fonts)
	return &appCtx, nil
}

func loadUnit(appCtx *builder.AppContext, projectID string, index int) (*domain.Project, *domain.ScreenshotUnit, error) {
	p, err := appCtx.Store.Load(projectID)
	if err != nil {
		return nil, nil, fmt.Errorf("プロジェクトの読み込みに失敗しました: %w", err)
	}
	if index < 0 || index >= len(p.Units) {
		return nil, nil, fmt.Errorf("ユニット番号 %d は範囲外です（ユニット数: %d）", index, len(p.Units))
	}
	return p, p.Units[index], nil
}

func applyOutputOverrides(p *domain.Project, opts config.RenderOptions) {
	if opts.OutputTarget != "" {
		p.OutputTarget = opts.OutputTarget
	}
	if opts.CustomWidth > 0 && opts.CustomHeight > 0 {
		p.OutputTarget = preset.Custom
		p.CustomWidth = opts.CustomWidth
		p.CustomHeight = opts.CustomHeight
	}
	if opts.Language != "" {
		p.ActiveLanguage = opts.Language
	}
}
