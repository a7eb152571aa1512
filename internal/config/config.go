package config

import (
	"time"

	"github.com/shouni/go-utils/envutil"
)

// デフォルト値の定義なのだ
const (
	DefaultModel        = "gemini-3-flash-preview"
	DefaultImageModel   = "gemini-3-pro-image-preview"
	DefaultHTTPTimeout  = 30 * time.Second
	DefaultListenAddr   = ":8080"
	DefaultDataDir      = "data/projects"
	DefaultFontDir      = "fonts"
	DefaultOutputTarget = "iphone-6.9"
)

// Config はアプリケーション全体の環境設定（APIキーや保存先）を保持する構造体なのだ。
type Config struct {
	GeminiAPIKey     string
	GeminiModel      string
	GeminiImageModel string

	ListenAddr string
	DataDir    string
	FontDir    string

	Options RenderOptions
}

// LoadConfig は環境変数から設定を読み込み、構造体を返すのだ！
func LoadConfig() *Config {
	return &Config{
		GeminiAPIKey:     envutil.GetEnv("GEMINI_API_KEY", ""),
		GeminiModel:      envutil.GetEnv("GEMINI_MODEL", DefaultModel),
		GeminiImageModel: envutil.GetEnv("IMAGE_GEMINI_MODEL", DefaultImageModel),
		ListenAddr:       envutil.GetEnv("LISTEN_ADDR", DefaultListenAddr),
		DataDir:          envutil.GetEnv("DATA_DIR", DefaultDataDir),
		FontDir:          envutil.GetEnv("FONT_DIR", DefaultFontDir),
	}
}

// RenderOptions は CLI フラグから渡される実行時のパラメータなのだ。
type RenderOptions struct {
	// プロジェクト指定関連
	ProjectID  string // --project
	UnitIndex  int    // --unit
	Language   string // --lang
	OutputFile string // --output-file

	// 出力サイズ関連
	OutputTarget string // --target
	CustomWidth  int    // --width
	CustomHeight int    // --height

	// AI挙動設定
	AIModel    string // --model: テキスト生成用のGeminiモデル
	ImageModel string // --image-model: 画像生成用のGeminiモデル

	// 実行制御
	HTTPTimeout time.Duration // --http-timeout
	NoiseSeed   int64         // --noise-seed: 0 で毎回ランダム
}
