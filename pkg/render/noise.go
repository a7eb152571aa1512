package render

import (
	"image"
	"math/rand"

	"github.com/gogpu/gg"
)

// noiseMaxDelta は強度 100% のときの 1 チャンネルあたりの最大摂動量です。
const noiseMaxDelta = 50.0

// applyNoise は背景の直後（スクリーンショット・テキストの前）に呼ばれ、
// 各ピクセルへ一様乱数の摂動を加えます。1 ピクセルにつき乱数は 1 回だけ引き、
// 同じ差分を R・G・B に適用します（チャンネル独立ではありません）。
// 結果は [0,255] にクランプされます。
//
// このパスはレンダリングパイプラインで唯一の非決定要素であり、
// テストでは乱数シードの固定か無効化で決定性を回復します。
func applyNoise(dc *gg.Context, dims Dims, intensityPercent float64, rng *rand.Rand) {
	if intensityPercent <= 0 {
		return
	}

	img, ok := dc.Image().(*image.RGBA)
	if !ok {
		return
	}

	amplitude := intensityPercent / 100 * noiseMaxDelta
	for i := 0; i < len(img.Pix); i += 4 {
		delta := (rng.Float64()*2 - 1) * amplitude
		img.Pix[i+0] = clampByte(float64(img.Pix[i+0]) + delta)
		img.Pix[i+1] = clampByte(float64(img.Pix[i+1]) + delta)
		img.Pix[i+2] = clampByte(float64(img.Pix[i+2]) + delta)
	}

	dc.DrawImage(gg.ImageBufFromImage(img), 0, 0)
}

func clampByte(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
