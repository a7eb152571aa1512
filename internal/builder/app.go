package builder

import (
	"github.com/shouni/go-screenshot-studio/internal/config"

	"github.com/shouni/go-ai-client/v2/pkg/ai/gemini"
	"github.com/shouni/go-http-kit/pkg/httpkit"

	"github.com/shouni/go-screenshot-studio/pkg/project"
	"github.com/shouni/go-screenshot-studio/pkg/render"
)

// AppContext は、アプリケーション実行に必要な共通コンテキストを保持する
// これを各Build関数に渡すことで、依存関係の注入を簡素化します。
type AppContext struct {
	Config     *config.Config          // Configは、環境変数から読み込まれたグローバルな設定です（APIキー、保存先など）。
	Options    config.RenderOptions    // Optionsは、コマンドラインから渡された実行時の設定です（プロジェクトID、出力先など）。
	Store      project.Store           // Storeは、プロジェクトの永続化先です。
	Fonts      *render.FontRegistry    // Fontsは、描画に使う共有フォントレジストリです。
	aiClient   gemini.GenerativeModel  // aiClient はGeminiの通信に使う共通クライアント
	httpClient httpkit.ClientInterface // httpClient は外部APIとの通信に使う共通クライアント
}

// NewAppContext は AppContext の新しいインスタンスを生成する
func NewAppContext(
	cfg *config.Config,
	httpClient httpkit.ClientInterface,
	aiClient gemini.GenerativeModel,
	store project.Store,
	fonts *render.FontRegistry,
) AppContext {
	return AppContext{
		Config:     cfg,
		Options:    cfg.Options,
		aiClient:   aiClient,
		httpClient: httpClient,
		Store:      store,
		Fonts:      fonts,
	}
}
