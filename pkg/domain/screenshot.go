package domain

// ShadowConfig はスクリーンショットのドロップシャドウ設定です。
type ShadowConfig struct {
	Enabled        bool    `json:"enabled"`
	Color          string  `json:"color"`
	BlurPx         float64 `json:"blur_px"`
	OpacityPercent float64 `json:"opacity_percent"`
	OffsetX        float64 `json:"offset_x"`
	OffsetY        float64 `json:"offset_y"`
}

// FrameConfig はデバイスフレーム風の輪郭線の設定です。
type FrameConfig struct {
	Enabled        bool    `json:"enabled"`
	Color          string  `json:"color"`
	WidthPx        float64 `json:"width_px"`
	OpacityPercent float64 `json:"opacity_percent"`
}

// Rotation3D は 3D 描画パス用の各軸回転角です。
type Rotation3D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// CornerRadiusReferenceWidth は角丸半径の基準となる表示幅（px）です。
// 実際の半径は表示幅に対して線形にスケールします。
const CornerRadiusReferenceWidth = 400.0

// ScreenshotSettings はスクリーンショット配置のジオメトリと装飾の設定です。
//   - ScalePercent: キャンバス幅に対する画像幅のパーセント。
//     縦横どちらかが制約になる場合は収まる側に合わせて再計算されます。
//   - X, Y: 0〜100。スケール済みボックスを左寄せ〜右寄せ（上寄せ〜下寄せ）の間で
//     補間する係数であり、中心座標ではない点に注意なのだ。
//
// Shadow と Frame はポインタで保持し、未設定のままのユニットでは nil になります。
type ScreenshotSettings struct {
	ScalePercent      float64 `json:"scale_percent"`
	X                 float64 `json:"x"`
	Y                 float64 `json:"y"`
	RotationDegrees   float64 `json:"rotation_degrees"`
	PerspectiveFactor float64 `json:"perspective_factor"`
	CornerRadiusPx    float64 `json:"corner_radius_px"`

	Shadow *ShadowConfig `json:"shadow,omitempty"`
	Frame  *FrameConfig  `json:"frame,omitempty"`

	// 3D 描画パス。Use3D が真のとき、2D パスの代わりに外部の 3D レンダラーへ
	// ディスパッチされます。
	Use3D      bool        `json:"use_3d"`
	Device3D   string      `json:"device_3d,omitempty"`
	Rotation3D *Rotation3D `json:"rotation_3d,omitempty"`
}

// DefaultScreenshotSettings は新規ユニットに与える既定の配置設定を返します。
func DefaultScreenshotSettings() ScreenshotSettings {
	return ScreenshotSettings{
		ScalePercent:   80,
		X:              50,
		Y:              50,
		CornerRadiusPx: 24,
		Shadow: &ShadowConfig{
			Enabled:        true,
			Color:          "#000000",
			BlurPx:         40,
			OpacityPercent: 35,
			OffsetX:        0,
			OffsetY:        12,
		},
		Frame: &FrameConfig{
			Enabled:        false,
			Color:          "#1f1f1f",
			WidthPx:        12,
			OpacityPercent: 100,
		},
	}
}
