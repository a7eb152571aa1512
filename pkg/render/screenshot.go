package render

import (
	"image"
	"log/slog"

	"github.com/disintegration/imaging"
	"github.com/gogpu/gg"
	xdraw "golang.org/x/image/draw"

	"github.com/shouni/go-screenshot-studio/pkg/domain"
)

// renderScreenshot は 2D パスのスクリーンショットレイヤーを描画します。
//
// シャドウ → 角丸クリップ → 画像 → フレームの順でフルサイズの
// オフスクリーンレイヤーに描き、最後にレイヤー全体をボックス中心基準の
// 回転＋シアーで本サーフェスへ合成します。シャドウをレイヤー内に描くことで、
// シャドウも画像と同じ変換を受けます（untransformed-shape,
// transformed-context の位置関係）。
func renderScreenshot(dc *gg.Context, dims Dims, src image.Image, s *domain.ScreenshotSettings) {
	bounds := src.Bounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 || s.ScalePercent <= 0 {
		return
	}

	box := placementBox(dims, bounds.Dx(), bounds.Dy(), s)
	radius := cornerRadius(s.CornerRadiusPx, box.W)

	layer := gg.NewContext(dims.Width, dims.Height)

	if s.Shadow != nil && s.Shadow.Enabled && s.Shadow.OpacityPercent > 0 {
		drawShadow(layer, dims, box, radius, s.Shadow)
	}

	// シャドウ状態はここまで。画像自身は追加のシャドウを落とさない。
	layer.DrawRoundedRectangle(box.X, box.Y, box.W, box.H, radius)
	layer.Clip()
	layer.DrawImageEx(gg.ImageBufFromImage(src), gg.DrawImageOptions{
		X:             box.X,
		Y:             box.Y,
		DstWidth:      box.W,
		DstHeight:     box.H,
		Interpolation: gg.InterpBilinear,
		Opacity:       1,
	})
	layer.ResetClip()

	if s.Frame != nil && s.Frame.Enabled && s.Frame.WidthPx > 0 {
		drawFrame(layer, box, radius, s.Frame)
	}

	if isIdentityTransform(s) {
		dc.DrawImage(gg.ImageBufFromImage(layer.Image()), 0, 0)
		return
	}

	cx, cy := box.Center()
	m := layerMatrix(s, cx, cy)
	layerImg := layer.Image()
	transformed := image.NewRGBA(image.Rect(0, 0, dims.Width, dims.Height))
	xdraw.BiLinear.Transform(transformed, m, layerImg, layerImg.Bounds(), xdraw.Over, nil)
	dc.DrawImage(gg.ImageBufFromImage(transformed), 0, 0)
}

// drawShadow はブラー済みのドロップシャドウをレイヤーへ合成します。
// シャドウ形状は画像と同じ角丸矩形をオフセットした位置の塗りつぶしです。
func drawShadow(layer *gg.Context, dims Dims, box PlacedBox, radius float64, sh *domain.ShadowConfig) {
	sc := gg.NewContext(dims.Width, dims.Height)
	sc.SetColor(hexColor(sh.Color, sh.OpacityPercent/100).Color())
	sc.DrawRoundedRectangle(box.X+sh.OffsetX, box.Y+sh.OffsetY, box.W, box.H, radius)
	if err := sc.Fill(); err != nil {
		slog.Warn("シャドウの塗りに失敗したのだ", "error", err)
		return
	}

	shadow := sc.Image()
	if sh.BlurPx > 0 {
		shadow = imaging.Blur(shadow, blurSigma(sh.BlurPx))
	}
	layer.DrawImage(gg.ImageBufFromImage(shadow), 0, 0)
}

// drawFrame はデバイスフレーム風の輪郭線を描きます。
// フレーム幅の半分だけ外側へ張り出し、半径は画像の角丸＋フレーム幅です。
func drawFrame(layer *gg.Context, box PlacedBox, radius float64, fr *domain.FrameConfig) {
	layer.SetColor(hexColor(fr.Color, fr.OpacityPercent/100).Color())
	layer.SetLineWidth(fr.WidthPx)
	layer.DrawRoundedRectangle(
		box.X-fr.WidthPx/2,
		box.Y-fr.WidthPx/2,
		box.W+fr.WidthPx,
		box.H+fr.WidthPx,
		radius+fr.WidthPx,
	)
	if err := layer.Stroke(); err != nil {
		slog.Warn("フレームの描画に失敗したのだ", "error", err)
	}
}
