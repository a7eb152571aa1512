package render

import (
	"bytes"
	"fmt"
	"image"
	"log/slog"
	"math/rand"

	"github.com/gogpu/gg"

	"github.com/shouni/go-screenshot-studio/pkg/domain"
	"github.com/shouni/go-screenshot-studio/pkg/lang"
)

// Renderer はユニット 1 枚を合成するインターフェースです。
type Renderer interface {
	RenderUnit(dc *gg.Context, dims Dims, project *domain.Project, unit *domain.ScreenshotUnit) error
}

// Renderer3D は 3D デバイスモックアップの描画器です。Ready が false の間は
// 合成側が 2D パスへフォールバックします。
type Renderer3D interface {
	Ready() bool
	RenderDevice(dc *gg.Context, dims Dims, src image.Image, s *domain.ScreenshotSettings) error
}

// Compositor はレイヤーを固定順で積む合成オーケストレーターです。
// 描画順は 背景 → ノイズ → スクリーンショット → テキスト で固定であり、
// 設定の有無はレイヤーのスキップだけを変えます。
type Compositor struct {
	fonts      *FontRegistry
	renderer3D Renderer3D
	noiseSeed  *int64
}

// Option は Compositor の生成時オプションです。
type Option func(*Compositor)

// WithRenderer3D は 3D パスの描画器を差し込みます。
func WithRenderer3D(r Renderer3D) Option {
	return func(c *Compositor) { c.renderer3D = r }
}

// WithNoiseSeed はノイズ乱数列のシードを固定します。
// 再現性が必要なレンダリングとテストで使います。
func WithNoiseSeed(seed int64) Option {
	return func(c *Compositor) { c.noiseSeed = &seed }
}

// NewCompositor は合成器を構築します。
func NewCompositor(fonts *FontRegistry, opts ...Option) *Compositor {
	c := &Compositor{fonts: fonts}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// RenderUnit は 1 ユニットをサーフェスへ合成します。
//
// スクリーンショットレイヤーの失敗（該当言語の画像なし、デコード不能）は
// レイヤーのスキップに留め、背景とテキストは描き切ります。
func (c *Compositor) RenderUnit(dc *gg.Context, dims Dims, project *domain.Project, unit *domain.ScreenshotUnit) error {
	if unit == nil {
		return fmt.Errorf("合成対象のユニットがありません")
	}

	renderBackground(dc, dims, &unit.Background)

	if unit.Background.Noise.Enabled {
		applyNoise(dc, dims, unit.Background.Noise.IntensityPercent, c.noiseRand())
	}

	c.renderScreenshotLayer(dc, dims, project, unit)
	c.renderText(dc, dims, &unit.Text)
	return nil
}

func (c *Compositor) renderScreenshotLayer(dc *gg.Context, dims Dims, project *domain.Project, unit *domain.ScreenshotUnit) {
	asset := lang.ResolveImage(unit, project.ActiveLanguage, project.EnabledLanguages)
	if asset == nil {
		return
	}

	src, err := asset.Decode()
	if err != nil {
		slog.Warn("スクリーンショットのデコードに失敗したため飛ばすのだ",
			"filename", asset.Filename, "error", err)
		return
	}

	if unit.Screenshot.Use3D && c.renderer3D != nil && c.renderer3D.Ready() {
		err := c.renderer3D.RenderDevice(dc, dims, src, &unit.Screenshot)
		if err == nil {
			return
		}
		slog.Warn("3D レンダリングに失敗したため 2D パスへ切り替えるのだ", "error", err)
	}

	renderScreenshot(dc, dims, src, &unit.Screenshot)
}

// noiseRand はノイズレイヤー用の乱数源を返します。シード未指定なら
// 呼び出しごとに異なる列になります。
func (c *Compositor) noiseRand() *rand.Rand {
	if c.noiseSeed != nil {
		return rand.New(rand.NewSource(*c.noiseSeed))
	}
	return rand.New(rand.NewSource(rand.Int63()))
}

// RenderPNG はユニットを指定寸法で合成し PNG バイト列を返します。
func (c *Compositor) RenderPNG(dims Dims, project *domain.Project, unit *domain.ScreenshotUnit) ([]byte, error) {
	if dims.Width <= 0 || dims.Height <= 0 {
		return nil, fmt.Errorf("出力寸法が不正です: %dx%d", dims.Width, dims.Height)
	}

	dc := gg.NewContext(dims.Width, dims.Height)
	if err := c.RenderUnit(dc, dims, project, unit); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("PNG エンコードに失敗しました: %w", err)
	}
	return buf.Bytes(), nil
}
