package render

import (
	"log/slog"
	"strings"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"

	"github.com/shouni/go-screenshot-studio/pkg/domain"
)

const (
	// 左右それぞれキャンバス幅の 8% をパディングとして確保する。
	textPaddingFraction = 0.08

	// サブ見出しの行送りは自身のサイズの固定 1.4 倍。
	subheadlineLineSpacing = 1.4

	// 装飾矩形のオフセット（フォントサイズに対する比、行の DrawY 基準）。
	// ベースラインモードごとに符号規約が異なる。top モードでは DrawY が行の
	// 上端、bottom モードでは行の下端を指すため、同じ装飾でも原点が 1 行分
	// ずれる。この規約を崩すとプレビューとエクスポートの一致が壊れる。
	underlineOffsetTopMode    = 1.05
	strikeOffsetTopMode       = 0.55
	underlineOffsetBottomMode = 0.05
	strikeOffsetBottomMode    = -0.45
)

// Line はレイアウト済みの 1 行です。DrawY の意味はベースラインモード依存で、
// top モードでは行の上端、bottom モードでは行の下端の Y 座標です。
type Line struct {
	Text  string
	Width float64
	DrawY float64
}

// TextLayout はテキストブロック全体のレイアウト結果です。
// サブ見出しの行は全体のアンカー方向に関わらず常に top 方向
// （DrawY = 行の上端）で積まれます。
type TextLayout struct {
	HeadlineLines    []Line
	SubheadlineLines []Line
	LineHeight       float64
	Gap              float64
}

// ComputeTextLayout は折り返しと垂直スタッキングを計算します。
// 測定関数を注入する純関数なので、描画なしで検証できます。
//
// 垂直方向の規約:
//   - アンカー Y = top なら offsetY%·高さ、bottom なら (1-offsetY%)·高さ。
//   - top モード: 先頭行の上端がアンカー。以降は lineHeight ずつ下へ。
//   - bottom モード: 最終行の下端がアンカーに一致するよう、先頭行を
//     (行数-1)·lineHeight だけ上へ先行シフトする。
//   - 見出し→サブ見出しの間隔 gap = lineHeight - 見出しサイズ。
//     サブ見出しブロックの開始 Y は最終見出し行の DrawY に対し、
//     top では +見出しサイズ+gap、bottom では +gap。
func ComputeTextLayout(
	headline, subheadline string,
	cfg *domain.TextConfig,
	dims Dims,
	measureHeadline, measureSubheadline func(string) float64,
) TextLayout {
	w := float64(dims.Width)
	h := float64(dims.Height)
	padding := w * textPaddingFraction
	wrapWidth := w - 2*padding

	headSize := cfg.HeadlineFont.SizePx
	lineHeight := cfg.LineHeightPercent / 100 * headSize
	gap := lineHeight - headSize
	subLineHeight := cfg.SubheadlineFont.SizePx * subheadlineLineSpacing

	var anchorY float64
	if cfg.Position == domain.TextBottom {
		anchorY = (1 - cfg.OffsetYPercent/100) * h
	} else {
		anchorY = cfg.OffsetYPercent / 100 * h
	}

	layout := TextLayout{LineHeight: lineHeight, Gap: gap}

	headLines := wrapGreedy(headline, wrapWidth, measureHeadline)
	subLines := wrapGreedy(subheadline, wrapWidth, measureSubheadline)

	var subStart float64
	if cfg.Position == domain.TextBottom {
		firstY := anchorY - float64(len(headLines)-1)*lineHeight
		for i, line := range headLines {
			layout.HeadlineLines = append(layout.HeadlineLines, Line{
				Text:  line,
				Width: measureHeadline(line),
				DrawY: firstY + float64(i)*lineHeight,
			})
		}
		if len(headLines) > 0 {
			subStart = anchorY + gap
		} else {
			// 見出しなし: サブ見出しブロック自体の最終行下端をアンカーへ
			subStart = anchorY - cfg.SubheadlineFont.SizePx - float64(len(subLines)-1)*subLineHeight
		}
	} else {
		for i, line := range headLines {
			layout.HeadlineLines = append(layout.HeadlineLines, Line{
				Text:  line,
				Width: measureHeadline(line),
				DrawY: anchorY + float64(i)*lineHeight,
			})
		}
		if len(headLines) > 0 {
			subStart = anchorY + float64(len(headLines)-1)*lineHeight + headSize + gap
		} else {
			subStart = anchorY
		}
	}

	for i, line := range subLines {
		layout.SubheadlineLines = append(layout.SubheadlineLines, Line{
			Text:  line,
			Width: measureSubheadline(line),
			DrawY: subStart + float64(i)*subLineHeight,
		})
	}

	return layout
}

// wrapGreedy は貪欲な単語折り返しです。測定幅が budget 以下の間は行へ足し、
// 超えた時点で行を確定して溢れた単語から次の行を始めます。budget より長い
// 単一の単語は切り詰めずそのまま 1 行になります。
// ちょうど budget に等しい幅は折り返しません。
func wrapGreedy(s string, budget float64, measure func(string) float64) []string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	current := words[0]
	for _, word := range words[1:] {
		candidate := current + " " + word
		if measure(candidate) > budget {
			lines = append(lines, current)
			current = word
		} else {
			current = candidate
		}
	}
	return append(lines, current)
}

// renderText はテキストレイヤーを描画します。見出しとサブ見出しの両方が
// 空に解決される場合は何もしません。各行は水平センタリングされます。
func (c *Compositor) renderText(dc *gg.Context, dims Dims, cfg *domain.TextConfig) {
	headline := cfg.Headline()
	subheadline := cfg.Subheadline()
	if headline == "" && subheadline == "" {
		return
	}

	headFace, err := c.fonts.Face(cfg.HeadlineFont)
	if err != nil {
		slog.Warn("見出しフォントの解決に失敗したのだ", "family", cfg.HeadlineFont.Family, "error", err)
		return
	}
	subFace, err := c.fonts.Face(cfg.SubheadlineFont)
	if err != nil {
		slog.Warn("サブ見出しフォントの解決に失敗したのだ", "family", cfg.SubheadlineFont.Family, "error", err)
		return
	}

	measure := func(face text.Face) func(string) float64 {
		return func(s string) float64 {
			return text.MeasureText(s, face)
		}
	}

	layout := ComputeTextLayout(headline, subheadline, cfg, dims, measure(headFace), measure(subFace))

	bottomMode := cfg.Position == domain.TextBottom
	headColor := hexColor(cfg.HeadlineFont.Color, 1)
	subColor := hexColor(cfg.SubheadlineFont.Color, cfg.SubheadlineOpacity/100)

	dc.SetFont(headFace)
	dc.SetColor(headColor.Color())
	headMetrics := headFace.Metrics()
	for _, line := range layout.HeadlineLines {
		x := (float64(dims.Width) - line.Width) / 2
		baseline := line.DrawY + headMetrics.Ascent
		if bottomMode {
			baseline = line.DrawY - headMetrics.Descent
		}
		dc.DrawString(line.Text, x, baseline)
		drawDecorations(dc, line, cfg.HeadlineFont, headColor, x, bottomMode)
	}

	// サブ見出しブロックは全体のアンカー方向に関わらず top 方向で描く。
	dc.SetFont(subFace)
	dc.SetColor(subColor.Color())
	subMetrics := subFace.Metrics()
	for _, line := range layout.SubheadlineLines {
		x := (float64(dims.Width) - line.Width) / 2
		dc.DrawString(line.Text, x, line.DrawY+subMetrics.Ascent)
		drawDecorations(dc, line, cfg.SubheadlineFont, subColor, x, false)
	}
}

// drawDecorations は下線・取り消し線をフォント機能ではなく塗り矩形として
// 描きます。太さは max(2, 0.05·フォントサイズ) ピクセルです。
func drawDecorations(dc *gg.Context, line Line, style domain.FontStyle, col gg.RGBA, x float64, bottomMode bool) {
	if !style.Underline && !style.Strikethrough {
		return
	}

	thickness := style.SizePx * 0.05
	if thickness < 2 {
		thickness = 2
	}

	underlineOffset := underlineOffsetTopMode
	strikeOffset := strikeOffsetTopMode
	if bottomMode {
		underlineOffset = underlineOffsetBottomMode
		strikeOffset = strikeOffsetBottomMode
	}

	dc.SetColor(col.Color())
	if style.Underline {
		dc.DrawRectangle(x, line.DrawY+style.SizePx*underlineOffset, line.Width, thickness)
		if err := dc.Fill(); err != nil {
			slog.Warn("下線の描画に失敗したのだ", "error", err)
		}
	}
	if style.Strikethrough {
		dc.DrawRectangle(x, line.DrawY+style.SizePx*strikeOffset, line.Width, thickness)
		if err := dc.Fill(); err != nil {
			slog.Warn("取り消し線の描画に失敗したのだ", "error", err)
		}
	}
}
