package domain

// TextPosition はテキストブロックの垂直アンカー方向です。
type TextPosition string

const (
	TextTop    TextPosition = "top"
	TextBottom TextPosition = "bottom"
)

// FontStyle は見出し・サブ見出しそれぞれのタイポグラフィ設定です。
// Family はフォントレジストリ上の参照名で、埋め込みフォールバックを持ちます。
type FontStyle struct {
	Family        string  `json:"family"`
	SizePx        float64 `json:"size_px"`
	Weight        int     `json:"weight"`
	Italic        bool    `json:"italic"`
	Underline     bool    `json:"underline"`
	Strikethrough bool    `json:"strikethrough"`
	Color         string  `json:"color"`
}

// TextConfig はユニットごとのテキスト設定です。
// Headlines / Subheadlines は言語コードをキーとするローカライズ済み文字列マップで、
// Current*Lang が表示・編集対象のエントリを指します。
//
// LegacyHeadline / LegacySubheadline は旧スキーマ（非ローカライズの単数フィールド）で、
// ロード時のマイグレーションで Headlines へ畳み込まれた後は空になります。
// 描画コードはレガシーフィールドを一切参照しません。
type TextConfig struct {
	HeadlineEnabled    bool `json:"headline_enabled"`
	SubheadlineEnabled bool `json:"subheadline_enabled"`

	Headlines    map[string]string `json:"headlines"`
	Subheadlines map[string]string `json:"subheadlines"`

	CurrentHeadlineLang    string `json:"current_headline_lang"`
	CurrentSubheadlineLang string `json:"current_subheadline_lang"`

	HeadlineFont       FontStyle `json:"headline_font"`
	SubheadlineFont    FontStyle `json:"subheadline_font"`
	SubheadlineOpacity float64   `json:"subheadline_opacity"` // 0〜100、サブ見出しのみ

	Position          TextPosition `json:"position"`
	OffsetYPercent    float64      `json:"offset_y_percent"`
	LineHeightPercent float64      `json:"line_height_percent"` // 見出しのみ。サブ見出しは固定 1.4 倍

	LegacyHeadline    string `json:"headline,omitempty"`
	LegacySubheadline string `json:"subheadline,omitempty"`
}

// Headline は現在の表示言語に対応する見出し文字列を返します。
// 見出しが無効な場合は空文字列を返します。
func (t *TextConfig) Headline() string {
	if !t.HeadlineEnabled {
		return ""
	}
	return t.Headlines[t.CurrentHeadlineLang]
}

// Subheadline は現在の表示言語に対応するサブ見出し文字列を返します。
func (t *TextConfig) Subheadline() string {
	if !t.SubheadlineEnabled {
		return ""
	}
	return t.Subheadlines[t.CurrentSubheadlineLang]
}

// DefaultText は新規ユニットに与える既定のテキスト設定を返します。
func DefaultText(lang string) TextConfig {
	return TextConfig{
		HeadlineEnabled:        true,
		SubheadlineEnabled:     false,
		Headlines:              map[string]string{},
		Subheadlines:           map[string]string{},
		CurrentHeadlineLang:    lang,
		CurrentSubheadlineLang: lang,
		HeadlineFont: FontStyle{
			Family: "go",
			SizePx: 96,
			Weight: 700,
			Color:  "#ffffff",
		},
		SubheadlineFont: FontStyle{
			Family: "go",
			SizePx: 48,
			Weight: 400,
			Color:  "#ffffff",
		},
		SubheadlineOpacity: 80,
		Position:           TextTop,
		OffsetYPercent:     8,
		LineHeightPercent:  120,
	}
}
