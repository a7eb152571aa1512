package render

import (
	"math"

	"golang.org/x/image/math/f64"

	"github.com/shouni/go-screenshot-studio/pkg/domain"
)

// Dims は描画対象サーフェスのピクセル寸法です。
type Dims struct {
	Width  int
	Height int
}

// PlacedBox はキャンバス上に配置されたスクリーンショットの表示ボックスです。
type PlacedBox struct {
	X, Y, W, H float64
}

// Center はボックスの幾何中心を返します。回転・シアーの基準点です。
func (b PlacedBox) Center() (float64, float64) {
	return b.X + b.W/2, b.Y + b.H/2
}

// placementBox はスクリーンショットの表示ボックスを計算します。
//
// 表示幅はキャンバス幅 × scale% から出発し、アスペクト比維持で高さを導出します。
// その高さがキャンバス高さ × scale% を超える場合は高さ側から再導出します
// （スケール率は制約になる側の寸法を縛る。縦長・横長どちらのソースでも成立）。
//
// X, Y は 0〜100 の係数で、スケール済みボックスを左寄せと右寄せ
// （上寄せと下寄せ）の間で線形補間した位置に置きます。0〜100 の範囲内なら
// ボックスは必ずキャンバス内に収まります。
func placementBox(dims Dims, srcW, srcH int, s *domain.ScreenshotSettings) PlacedBox {
	w := float64(dims.Width)
	h := float64(dims.Height)
	scale := s.ScalePercent / 100

	displayW := w * scale
	displayH := displayW * float64(srcH) / float64(srcW)
	if maxH := h * scale; displayH > maxH {
		displayH = maxH
		displayW = displayH * float64(srcW) / float64(srcH)
	}

	return PlacedBox{
		X: (w - displayW) * s.X / 100,
		Y: (h - displayH) * s.Y / 100,
		W: displayW,
		H: displayH,
	}
}

// cornerRadius は 400px 幅基準の角丸半径を実表示幅へ線形スケールします。
func cornerRadius(radiusPx, displayW float64) float64 {
	return radiusPx * displayW / domain.CornerRadiusReferenceWidth
}

// layerMatrix は、ボックス中心を基準に回転とパースペクティブ近似の
// y シアーを適用するアフィン行列を返します。
// 変換順: 中心へ平行移動 → 回転 → シアー（係数 = perspectiveFactor×0.01 を
// y スキュー成分へ適用）→ 中心から戻す。
func layerMatrix(s *domain.ScreenshotSettings, cx, cy float64) f64.Aff3 {
	rad := s.RotationDegrees * math.Pi / 180
	k := s.PerspectiveFactor * 0.01
	cos, sin := math.Cos(rad), math.Sin(rad)

	// R·Sh, R = [[cos,-sin],[sin,cos]], Sh = [[1,0],[k,1]]
	a00 := cos - sin*k
	a01 := -sin
	a10 := sin + cos*k
	a11 := cos

	return f64.Aff3{
		a00, a01, cx - a00*cx - a01*cy,
		a10, a11, cy - a10*cx - a11*cy,
	}
}

// isIdentityTransform は回転もシアーも無いかどうかを返します。
func isIdentityTransform(s *domain.ScreenshotSettings) bool {
	return s.RotationDegrees == 0 && s.PerspectiveFactor == 0
}
