package render

import (
	"math"
	"testing"

	"github.com/shouni/go-screenshot-studio/pkg/domain"
)

func TestPlacementBox(t *testing.T) {
	dims := Dims{Width: 1000, Height: 2000}

	t.Run("縦長ソースは幅基準でスケールされること", func(t *testing.T) {
		s := &domain.ScreenshotSettings{ScalePercent: 80, X: 50, Y: 50}
		box := placementBox(dims, 500, 1000, s)
		if box.W != 800 {
			t.Errorf("期待値 800, 実際の値 %v", box.W)
		}
		if box.H != 1600 {
			t.Errorf("期待値 1600, 実際の値 %v", box.H)
		}
	})

	t.Run("極端に縦長のソースは高さ側の制約で再計算されること", func(t *testing.T) {
		// 幅基準だと高さがキャンバス × スケール率を超えるケース
		s := &domain.ScreenshotSettings{ScalePercent: 80, X: 50, Y: 50}
		box := placementBox(dims, 100, 1000, s)
		if box.H != 1600 {
			t.Errorf("期待値 1600, 実際の値 %v", box.H)
		}
		if box.W != 160 {
			t.Errorf("期待値 160, 実際の値 %v", box.W)
		}
	})

	t.Run("X と Y が 0〜100 の範囲ならボックスはキャンバス内に収まること", func(t *testing.T) {
		for _, x := range []float64{0, 25, 50, 75, 100} {
			for _, y := range []float64{0, 25, 50, 75, 100} {
				s := &domain.ScreenshotSettings{ScalePercent: 80, X: x, Y: y}
				box := placementBox(dims, 500, 1000, s)
				if box.X < 0 || box.Y < 0 ||
					box.X+box.W > float64(dims.Width)+1e-9 ||
					box.Y+box.H > float64(dims.Height)+1e-9 {
					t.Errorf("X=%v Y=%v でボックスがはみ出しました: %+v", x, y, box)
				}
			}
		}
	})

	t.Run("端の値で左寄せ・右寄せになること", func(t *testing.T) {
		left := placementBox(dims, 500, 1000, &domain.ScreenshotSettings{ScalePercent: 80, X: 0, Y: 0})
		if left.X != 0 || left.Y != 0 {
			t.Errorf("X=0 Y=0 で原点に配置されませんでした: %+v", left)
		}
		right := placementBox(dims, 500, 1000, &domain.ScreenshotSettings{ScalePercent: 80, X: 100, Y: 100})
		if right.X+right.W != float64(dims.Width) || right.Y+right.H != float64(dims.Height) {
			t.Errorf("X=100 Y=100 で右下に配置されませんでした: %+v", right)
		}
	})
}

func TestCornerRadius(t *testing.T) {
	// 基準幅ちょうどでは指定値そのまま、2 倍幅では 2 倍になること
	if got := cornerRadius(24, 400); got != 24 {
		t.Errorf("期待値 24, 実際の値 %v", got)
	}
	if got := cornerRadius(24, 800); got != 48 {
		t.Errorf("期待値 48, 実際の値 %v", got)
	}
	if got := cornerRadius(24, 200); got != 12 {
		t.Errorf("期待値 12, 実際の値 %v", got)
	}
}

func TestLayerMatrix(t *testing.T) {
	t.Run("回転もシアーも無ければ単位行列になること", func(t *testing.T) {
		s := &domain.ScreenshotSettings{}
		if !isIdentityTransform(s) {
			t.Fatal("恒等変換と判定されませんでした")
		}
		m := layerMatrix(s, 100, 200)
		want := [6]float64{1, 0, 0, 0, 1, 0}
		for i, v := range want {
			if math.Abs(m[i]-v) > 1e-12 {
				t.Errorf("要素 %d: 期待値 %v, 実際の値 %v", i, v, m[i])
			}
		}
	})

	t.Run("変換後も中心が不動点であること", func(t *testing.T) {
		s := &domain.ScreenshotSettings{RotationDegrees: -8, PerspectiveFactor: 30}
		cx, cy := 320.0, 480.0
		m := layerMatrix(s, cx, cy)
		gotX := m[0]*cx + m[1]*cy + m[2]
		gotY := m[3]*cx + m[4]*cy + m[5]
		if math.Abs(gotX-cx) > 1e-9 || math.Abs(gotY-cy) > 1e-9 {
			t.Errorf("中心 (%v, %v) が (%v, %v) へ移動しました", cx, cy, gotX, gotY)
		}
	})

	t.Run("回転角 90 度で基底が入れ替わること", func(t *testing.T) {
		s := &domain.ScreenshotSettings{RotationDegrees: 90}
		m := layerMatrix(s, 0, 0)
		// (1, 0) -> (0, 1)
		if math.Abs(m[0]) > 1e-12 || math.Abs(m[3]-1) > 1e-12 {
			t.Errorf("回転行列が不正です: %+v", m)
		}
	})
}
