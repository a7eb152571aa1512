package domain

// 各設定型の明示的なクローン関数群。
// プレーンなフィールドは値コピーし、デコード済みラスターを抱える *RasterAsset は
// ポインタ共有のままにします（アセットはデコード後は不変のため共有が安全で、
// シリアライズ経由の復元ダンスを避けられるのだ）。

// CloneBackground は背景設定のディープコピーを返します。
func CloneBackground(src BackgroundConfig) BackgroundConfig {
	dst := src
	if src.Gradient.Stops != nil {
		dst.Gradient.Stops = make([]GradientStop, len(src.Gradient.Stops))
		copy(dst.Gradient.Stops, src.Gradient.Stops)
	}
	// Image.Asset はラスターハンドルの共有で良い
	return dst
}

// CloneScreenshotSettings は配置設定のディープコピーを返します。
func CloneScreenshotSettings(src ScreenshotSettings) ScreenshotSettings {
	dst := src
	if src.Shadow != nil {
		shadow := *src.Shadow
		dst.Shadow = &shadow
	}
	if src.Frame != nil {
		frame := *src.Frame
		dst.Frame = &frame
	}
	if src.Rotation3D != nil {
		rot := *src.Rotation3D
		dst.Rotation3D = &rot
	}
	return dst
}

// CloneText はテキスト設定のディープコピーを返します。言語マップも複製します。
func CloneText(src TextConfig) TextConfig {
	dst := src
	dst.Headlines = cloneStringMap(src.Headlines)
	dst.Subheadlines = cloneStringMap(src.Subheadlines)
	return dst
}

// Clone はユニット全体のディープコピーを返します。
// LocalizedImages のマップ自体は新規に割り当て、アセットは参照共有します。
func (u *ScreenshotUnit) Clone() *ScreenshotUnit {
	images := make(map[string]*RasterAsset, len(u.LocalizedImages))
	for k, v := range u.LocalizedImages {
		images[k] = v
	}
	return &ScreenshotUnit{
		LocalizedImages: images,
		Background:      CloneBackground(u.Background),
		Screenshot:      CloneScreenshotSettings(u.Screenshot),
		Text:            CloneText(u.Text),
	}
}

func cloneStringMap(src map[string]string) map[string]string {
	dst := make(map[string]string, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
