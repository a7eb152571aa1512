package render

import (
	"math"
	"strings"
	"testing"

	"github.com/shouni/go-screenshot-studio/pkg/domain"
)

// charWidth10 は 1 文字 10px の固定幅測定器です。
func charWidth10(s string) float64 {
	return float64(len(s)) * 10
}

func TestWrapGreedy(t *testing.T) {
	t.Run("予算内の文は折り返さないこと", func(t *testing.T) {
		lines := wrapGreedy("aaa bbb", 100, charWidth10)
		if len(lines) != 1 || lines[0] != "aaa bbb" {
			t.Errorf("期待値 1 行, 実際の値 %v", lines)
		}
	})

	t.Run("予算ちょうどの幅は折り返さないこと", func(t *testing.T) {
		// "aaa bbb" は 7 文字 = 70px
		lines := wrapGreedy("aaa bbb", 70, charWidth10)
		if len(lines) != 1 {
			t.Errorf("境界値で折り返されました: %v", lines)
		}
	})

	t.Run("予算を 1px でも超えたら折り返すこと", func(t *testing.T) {
		lines := wrapGreedy("aaa bbb", 69, charWidth10)
		if len(lines) != 2 || lines[0] != "aaa" || lines[1] != "bbb" {
			t.Errorf("期待値 [aaa bbb], 実際の値 %v", lines)
		}
	})

	t.Run("予算より長い単語はそのまま 1 行になること", func(t *testing.T) {
		lines := wrapGreedy("supercalifragilistic ok", 100, charWidth10)
		if len(lines) != 2 || lines[0] != "supercalifragilistic" {
			t.Errorf("長い単語の扱いが不正です: %v", lines)
		}
	})

	t.Run("空文字列は行なしになること", func(t *testing.T) {
		if lines := wrapGreedy("  ", 100, charWidth10); lines != nil {
			t.Errorf("空入力で行が返されました: %v", lines)
		}
	})
}

func testTextConfig() *domain.TextConfig {
	cfg := domain.DefaultText("en")
	cfg.HeadlineFont.SizePx = 100
	cfg.SubheadlineFont.SizePx = 50
	cfg.LineHeightPercent = 120
	cfg.OffsetYPercent = 10
	cfg.Position = domain.TextTop
	return &cfg
}

func TestComputeTextLayoutTopAnchor(t *testing.T) {
	cfg := testTextConfig()
	dims := Dims{Width: 1000, Height: 2000}

	layout := ComputeTextLayout("one two", "sub", cfg, dims, charWidth10, charWidth10)

	t.Run("先頭行の上端がアンカーに一致すること", func(t *testing.T) {
		// アンカー = 10% × 2000 = 200
		if len(layout.HeadlineLines) != 1 {
			t.Fatalf("期待値 1 行, 実際の値 %d", len(layout.HeadlineLines))
		}
		if layout.HeadlineLines[0].DrawY != 200 {
			t.Errorf("期待値 200, 実際の値 %v", layout.HeadlineLines[0].DrawY)
		}
	})

	t.Run("サブ見出しは見出しサイズと行間ギャップの分だけ下がること", func(t *testing.T) {
		// lineHeight = 120, gap = 20。サブ開始 = 200 + 100 + 20 = 320
		if len(layout.SubheadlineLines) != 1 {
			t.Fatalf("期待値 1 行, 実際の値 %d", len(layout.SubheadlineLines))
		}
		if layout.SubheadlineLines[0].DrawY != 320 {
			t.Errorf("期待値 320, 実際の値 %v", layout.SubheadlineLines[0].DrawY)
		}
	})

	t.Run("複数行の見出しは行送り分ずつ下がること", func(t *testing.T) {
		long := strings.Repeat("word ", 30) // 確実に折り返す長さ
		multi := ComputeTextLayout(long, "", cfg, dims, charWidth10, charWidth10)
		if len(multi.HeadlineLines) < 2 {
			t.Fatalf("折り返しが発生しませんでした: %d 行", len(multi.HeadlineLines))
		}
		step := multi.HeadlineLines[1].DrawY - multi.HeadlineLines[0].DrawY
		if step != 120 {
			t.Errorf("期待値 120, 実際の値 %v", step)
		}
	})
}

func TestComputeTextLayoutBottomAnchor(t *testing.T) {
	cfg := testTextConfig()
	cfg.Position = domain.TextBottom
	dims := Dims{Width: 1000, Height: 2000}

	t.Run("単一行の下端がアンカーに一致すること", func(t *testing.T) {
		// アンカー = (1 - 0.10) × 2000 = 1800
		layout := ComputeTextLayout("one", "", cfg, dims, charWidth10, charWidth10)
		if layout.HeadlineLines[0].DrawY != 1800 {
			t.Errorf("期待値 1800, 実際の値 %v", layout.HeadlineLines[0].DrawY)
		}
	})

	t.Run("複数行は上方向へ伸びて最終行下端がアンカーのままなこと", func(t *testing.T) {
		long := strings.Repeat("word ", 30)
		layout := ComputeTextLayout(long, "", cfg, dims, charWidth10, charWidth10)
		n := len(layout.HeadlineLines)
		if n < 2 {
			t.Fatalf("折り返しが発生しませんでした: %d 行", n)
		}
		last := layout.HeadlineLines[n-1]
		if last.DrawY != 1800 {
			t.Errorf("最終行の下端: 期待値 1800, 実際の値 %v", last.DrawY)
		}
		first := layout.HeadlineLines[0]
		wantFirst := 1800 - float64(n-1)*120
		if math.Abs(first.DrawY-wantFirst) > 1e-9 {
			t.Errorf("先頭行: 期待値 %v, 実際の値 %v", wantFirst, first.DrawY)
		}
	})

	t.Run("サブ見出しはアンカーからギャップ分だけ下がって始まること", func(t *testing.T) {
		layout := ComputeTextLayout("one", "sub", cfg, dims, charWidth10, charWidth10)
		// gap = 20。サブ開始（上端基準）= 1800 + 20 = 1820
		if layout.SubheadlineLines[0].DrawY != 1820 {
			t.Errorf("期待値 1820, 実際の値 %v", layout.SubheadlineLines[0].DrawY)
		}
	})
}

func TestComputeTextLayoutSubheadlineOnly(t *testing.T) {
	cfg := testTextConfig()
	dims := Dims{Width: 1000, Height: 2000}

	t.Run("top モードではサブ見出しがアンカーから始まること", func(t *testing.T) {
		layout := ComputeTextLayout("", "sub only", cfg, dims, charWidth10, charWidth10)
		if len(layout.HeadlineLines) != 0 {
			t.Fatalf("見出しなしのはずが %d 行あります", len(layout.HeadlineLines))
		}
		if layout.SubheadlineLines[0].DrawY != 200 {
			t.Errorf("期待値 200, 実際の値 %v", layout.SubheadlineLines[0].DrawY)
		}
	})

	t.Run("bottom モードではサブ見出し最終行の下端がアンカーへ合うこと", func(t *testing.T) {
		cfg := testTextConfig()
		cfg.Position = domain.TextBottom
		layout := ComputeTextLayout("", "sub only", cfg, dims, charWidth10, charWidth10)
		// サブ 1 行、サイズ 50: 上端 = 1800 - 50 = 1750
		if layout.SubheadlineLines[0].DrawY != 1750 {
			t.Errorf("期待値 1750, 実際の値 %v", layout.SubheadlineLines[0].DrawY)
		}
	})
}

func TestComputeTextLayoutLineWidths(t *testing.T) {
	cfg := testTextConfig()
	dims := Dims{Width: 1000, Height: 2000}

	layout := ComputeTextLayout("hello", "", cfg, dims, charWidth10, charWidth10)
	if layout.HeadlineLines[0].Width != 50 {
		t.Errorf("期待値 50, 実際の値 %v", layout.HeadlineLines[0].Width)
	}
}
