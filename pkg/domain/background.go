package domain

// BackgroundType は背景の描画方式を表します。
type BackgroundType string

const (
	BackgroundGradient BackgroundType = "gradient"
	BackgroundSolid    BackgroundType = "solid"
	BackgroundImage    BackgroundType = "image"
)

// ImageFit は背景画像のスケーリング戦略です。
// cover はキャンバス比に合わせて中央クロップ、contain は黒帯レターボックスになります。
type ImageFit string

const (
	FitCover   ImageFit = "cover"
	FitContain ImageFit = "contain"
)

// GradientStop は線形グラデーション上の一点です。
// Position は 0〜100 のパーセント位置で、配列順ではなくこの値が正式な位置となります。
type GradientStop struct {
	Color    string  `json:"color"`
	Position float64 `json:"position"`
}

// GradientConfig は角度付き線形グラデーションの設定です。
type GradientConfig struct {
	AngleDegrees float64        `json:"angle_degrees"`
	Stops        []GradientStop `json:"stops"`
}

// ImageBackgroundConfig は画像背景の設定です。
// ブラー値は画像描画のみに適用され、レターボックスやオーバーレイには及びません。
type ImageBackgroundConfig struct {
	Asset          *RasterAsset `json:"asset,omitempty"`
	Fit            ImageFit     `json:"fit"`
	BlurPx         float64      `json:"blur_px"`
	OverlayColor   string       `json:"overlay_color"`
	OverlayOpacity float64      `json:"overlay_opacity"` // 0〜100
}

// NoiseConfig は背景の上に乗せる手続きノイズの設定です。
type NoiseConfig struct {
	Enabled          bool    `json:"enabled"`
	IntensityPercent float64 `json:"intensity_percent"`
}

// BackgroundConfig はユニットごとに独立した背景設定の全体です。
type BackgroundConfig struct {
	Type     BackgroundType        `json:"type"`
	Gradient GradientConfig        `json:"gradient"`
	Solid    string                `json:"solid"`
	Image    ImageBackgroundConfig `json:"image"`
	Noise    NoiseConfig           `json:"noise"`
}

// DefaultBackground は新規ユニットに与える既定の背景設定を返します。
func DefaultBackground() BackgroundConfig {
	return BackgroundConfig{
		Type: BackgroundGradient,
		Gradient: GradientConfig{
			AngleDegrees: 135,
			Stops: []GradientStop{
				{Color: "#667eea", Position: 0},
				{Color: "#764ba2", Position: 100},
			},
		},
		Solid: "#1a1a2e",
		Image: ImageBackgroundConfig{
			Fit:            FitCover,
			OverlayColor:   "#000000",
			OverlayOpacity: 0,
		},
		Noise: NoiseConfig{Enabled: false, IntensityPercent: 10},
	}
}
