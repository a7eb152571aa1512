package render

import "github.com/gogpu/gg"

// hexColor は "#rrggbb" 形式の色に不透明度（0〜1）を掛けた色を返します。
// 空文字列は白として扱います。
func hexColor(hex string, alpha float64) gg.RGBA {
	if hex == "" {
		hex = "#ffffff"
	}
	c := gg.Hex(hex)
	if alpha < 0 {
		alpha = 0
	}
	if alpha > 1 {
		alpha = 1
	}
	c.A *= alpha
	return c
}
