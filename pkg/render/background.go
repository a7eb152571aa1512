package render

import (
	"log/slog"
	"math"
	"sort"

	"github.com/disintegration/imaging"
	"github.com/gogpu/gg"

	"github.com/shouni/go-screenshot-studio/pkg/domain"
)

// renderBackground は背景レイヤーを描画します。対象サーフェスの変更以外の
// 副作用はありません。
func renderBackground(dc *gg.Context, dims Dims, bg *domain.BackgroundConfig) {
	switch bg.Type {
	case domain.BackgroundSolid:
		dc.ClearWithColor(gg.Hex(bg.Solid))
	case domain.BackgroundImage:
		renderImageBackground(dc, dims, &bg.Image)
	default:
		renderGradient(dc, dims, &bg.Gradient)
	}
}

// renderGradient は角度付き線形グラデーションを描画します。
// 軸の端点はキャンバス中心 ± (cosθ·幅/2, sinθ·高さ/2)。幅と高さを独立に
// 使うため、非正方形キャンバスでは角度の見かけの傾きが伸縮します。
// この式はプレビューとエクスポートのピクセル一致に直結するので変えないこと。
func renderGradient(dc *gg.Context, dims Dims, g *domain.GradientConfig) {
	w := float64(dims.Width)
	h := float64(dims.Height)
	rad := g.AngleDegrees * math.Pi / 180
	cx, cy := w/2, h/2

	x0 := cx - math.Cos(rad)*w/2
	y0 := cy - math.Sin(rad)*h/2
	x1 := cx + math.Cos(rad)*w/2
	y1 := cy + math.Sin(rad)*h/2

	brush := gg.NewLinearGradientBrush(x0, y0, x1, y1)

	// position がストップの正式な位置。配列順は信用せず安定ソートする。
	stops := make([]domain.GradientStop, len(g.Stops))
	copy(stops, g.Stops)
	sort.SliceStable(stops, func(i, j int) bool {
		return stops[i].Position < stops[j].Position
	})
	for _, s := range stops {
		brush.AddColorStop(s.Position/100, gg.Hex(s.Color))
	}

	dc.SetFillBrush(brush)
	dc.DrawRectangle(0, 0, w, h)
	if err := dc.Fill(); err != nil {
		slog.Warn("グラデーションの塗りに失敗したのだ", "error", err)
	}
}

// renderImageBackground は画像背景を描画します。
//   - cover: キャンバス比に合わせて中央クロップしてから全面に引き伸ばす
//   - contain: 黒で塗ってから、アスペクト維持で中央に収める
//
// ブラーは画像描画のみに適用し、レターボックスとオーバーレイには適用しません。
// オーバーレイは画像の後に合成します。
func renderImageBackground(dc *gg.Context, dims Dims, cfg *domain.ImageBackgroundConfig) {
	src, err := cfg.Asset.Decode()
	if err != nil {
		slog.Warn("背景画像が読めないため黒背景にフォールバックするのだ", "error", err)
		dc.ClearWithColor(gg.Hex("#000000"))
		return
	}

	switch cfg.Fit {
	case domain.FitContain:
		dc.ClearWithColor(gg.Hex("#000000"))
		fitted := imaging.Fit(src, dims.Width, dims.Height, imaging.Lanczos)
		if cfg.BlurPx > 0 {
			fitted = imaging.Blur(fitted, blurSigma(cfg.BlurPx))
		}
		x := (float64(dims.Width) - float64(fitted.Bounds().Dx())) / 2
		y := (float64(dims.Height) - float64(fitted.Bounds().Dy())) / 2
		dc.DrawImage(gg.ImageBufFromImage(fitted), x, y)
	default: // cover
		filled := imaging.Fill(src, dims.Width, dims.Height, imaging.Center, imaging.Lanczos)
		if cfg.BlurPx > 0 {
			filled = imaging.Blur(filled, blurSigma(cfg.BlurPx))
		}
		dc.DrawImage(gg.ImageBufFromImage(filled), 0, 0)
	}

	if cfg.OverlayOpacity > 0 {
		dc.SetColor(hexColor(cfg.OverlayColor, cfg.OverlayOpacity/100).Color())
		dc.DrawRectangle(0, 0, float64(dims.Width), float64(dims.Height))
		if err := dc.Fill(); err != nil {
			slog.Warn("オーバーレイの塗りに失敗したのだ", "error", err)
		}
	}
}

// blurSigma はピクセル指定のブラー半径をガウシアンのシグマへ写します。
func blurSigma(blurPx float64) float64 {
	return blurPx / 2
}
