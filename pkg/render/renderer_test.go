package render

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"testing"

	"github.com/gogpu/gg"

	"github.com/shouni/go-screenshot-studio/pkg/domain"
)

func testUnit(t *testing.T) (*domain.Project, *domain.ScreenshotUnit) {
	t.Helper()
	p := domain.NewProject("test", "テスト")

	img := image.NewRGBA(image.Rect(0, 0, 40, 80))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i] = 255
		img.Pix[i+3] = 255
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("テスト画像のエンコードに失敗しました: %v", err)
	}
	asset, err := domain.NewRasterAsset(buf.Bytes(), "app_en.png")
	if err != nil {
		t.Fatalf("テストアセットの生成に失敗しました: %v", err)
	}

	unit := p.AddUnit(asset, "en")
	return p, unit
}

func newTestCompositor(opts ...Option) *Compositor {
	return NewCompositor(NewFontRegistry(""), opts...)
}

func TestRenderPNGDeterminism(t *testing.T) {
	dims := Dims{Width: 200, Height: 400}

	t.Run("ノイズ無効なら同一入力はバイト単位で同一出力になること", func(t *testing.T) {
		p, unit := testUnit(t)
		unit.Text.Headlines["en"] = "Hello World"
		c := newTestCompositor()

		first, err := c.RenderPNG(dims, p, unit)
		if err != nil {
			t.Fatalf("1 回目のレンダリングに失敗しました: %v", err)
		}
		second, err := c.RenderPNG(dims, p, unit)
		if err != nil {
			t.Fatalf("2 回目のレンダリングに失敗しました: %v", err)
		}
		if !bytes.Equal(first, second) {
			t.Error("同一入力で出力が一致しませんでした")
		}
	})

	t.Run("シード固定のノイズは再現可能なこと", func(t *testing.T) {
		p, unit := testUnit(t)
		unit.Background.Noise.Enabled = true
		unit.Background.Noise.IntensityPercent = 40

		c := newTestCompositor(WithNoiseSeed(42))
		first, err := c.RenderPNG(dims, p, unit)
		if err != nil {
			t.Fatalf("レンダリングに失敗しました: %v", err)
		}
		second, err := c.RenderPNG(dims, p, unit)
		if err != nil {
			t.Fatalf("レンダリングに失敗しました: %v", err)
		}
		if !bytes.Equal(first, second) {
			t.Error("同一シードで出力が一致しませんでした")
		}
	})

	t.Run("異なるシードは異なる出力になること", func(t *testing.T) {
		p, unit := testUnit(t)
		unit.Background.Noise.Enabled = true
		unit.Background.Noise.IntensityPercent = 40

		a, err := newTestCompositor(WithNoiseSeed(1)).RenderPNG(dims, p, unit)
		if err != nil {
			t.Fatalf("レンダリングに失敗しました: %v", err)
		}
		b, err := newTestCompositor(WithNoiseSeed(2)).RenderPNG(dims, p, unit)
		if err != nil {
			t.Fatalf("レンダリングに失敗しました: %v", err)
		}
		if bytes.Equal(a, b) {
			t.Error("異なるシードで出力が一致しました")
		}
	})
}

func TestRenderGradientAngleWrap(t *testing.T) {
	// 角度の 360 度差は同じ軸を生むため出力が一致すること
	dims := Dims{Width: 200, Height: 400}
	p, unit := testUnit(t)
	unit.LocalizedImages = map[string]*domain.RasterAsset{} // 背景のみ比較する

	unit.Background.Gradient.AngleDegrees = 135
	a, err := newTestCompositor().RenderPNG(dims, p, unit)
	if err != nil {
		t.Fatalf("レンダリングに失敗しました: %v", err)
	}

	unit.Background.Gradient.AngleDegrees = 495
	b, err := newTestCompositor().RenderPNG(dims, p, unit)
	if err != nil {
		t.Fatalf("レンダリングに失敗しました: %v", err)
	}

	if !bytes.Equal(a, b) {
		t.Error("135 度と 495 度の出力が一致しませんでした")
	}
}

func TestRenderGradientStopOrder(t *testing.T) {
	// ストップは配列順ではなく position が正式な位置。逆順で与えても
	// 昇順で与えた場合と同じ出力になること
	dims := Dims{Width: 200, Height: 400}
	p, unit := testUnit(t)
	unit.LocalizedImages = map[string]*domain.RasterAsset{} // 背景のみ比較する

	unit.Background.Gradient.Stops = []domain.GradientStop{
		{Color: "#1a2b3c", Position: 0},
		{Color: "#d4e5f6", Position: 100},
	}
	sorted, err := newTestCompositor().RenderPNG(dims, p, unit)
	if err != nil {
		t.Fatalf("レンダリングに失敗しました: %v", err)
	}

	unit.Background.Gradient.Stops = []domain.GradientStop{
		{Color: "#d4e5f6", Position: 100},
		{Color: "#1a2b3c", Position: 0},
	}
	reversed, err := newTestCompositor().RenderPNG(dims, p, unit)
	if err != nil {
		t.Fatalf("レンダリングに失敗しました: %v", err)
	}

	if !bytes.Equal(sorted, reversed) {
		t.Error("ストップの配列順で出力が変わりました")
	}
}

func TestRenderUnitMissingImage(t *testing.T) {
	// 画像のないユニットでも背景とテキストは描き切れること
	dims := Dims{Width: 200, Height: 400}
	p, unit := testUnit(t)
	unit.LocalizedImages = map[string]*domain.RasterAsset{}
	unit.Text.Headlines["en"] = "No Screenshot"

	data, err := newTestCompositor().RenderPNG(dims, p, unit)
	if err != nil {
		t.Fatalf("画像なしユニットのレンダリングに失敗しました: %v", err)
	}

	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("出力 PNG のデコードに失敗しました: %v", err)
	}
	if img.Bounds().Dx() != dims.Width || img.Bounds().Dy() != dims.Height {
		t.Errorf("出力寸法が不正です: %v", img.Bounds())
	}
}

func TestRenderUnitNilUnit(t *testing.T) {
	p, _ := testUnit(t)
	if _, err := newTestCompositor().RenderPNG(Dims{Width: 10, Height: 10}, p, nil); err == nil {
		t.Error("nil ユニットでエラーが発生しませんでした")
	}
}

func TestRenderPNGInvalidDims(t *testing.T) {
	p, unit := testUnit(t)
	if _, err := newTestCompositor().RenderPNG(Dims{Width: 0, Height: 100}, p, unit); err == nil {
		t.Error("幅 0 でエラーが発生しませんでした")
	}
}

// failing3D は常に失敗する 3D レンダラーです。2D フォールバックの検証用なのだ。
type failing3D struct{}

func (f *failing3D) Ready() bool { return true }
func (f *failing3D) RenderDevice(dc *gg.Context, dims Dims, src image.Image, s *domain.ScreenshotSettings) error {
	return errors.New("デバイスモデルが未ロードです")
}

func TestRenderUnit3DFallback(t *testing.T) {
	// 3D パスの失敗は 2D パスの結果と同じ出力に落ち着くこと
	dims := Dims{Width: 200, Height: 400}

	p, unit := testUnit(t)
	want, err := newTestCompositor().RenderPNG(dims, p, unit)
	if err != nil {
		t.Fatalf("2D レンダリングに失敗しました: %v", err)
	}

	unit.Screenshot.Use3D = true
	got, err := newTestCompositor(WithRenderer3D(&failing3D{})).RenderPNG(dims, p, unit)
	if err != nil {
		t.Fatalf("フォールバックレンダリングに失敗しました: %v", err)
	}

	if !bytes.Equal(want, got) {
		t.Error("3D 失敗時の出力が 2D パスと一致しませんでした")
	}
}
