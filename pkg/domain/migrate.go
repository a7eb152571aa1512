package domain

import "log/slog"

// Migrate は、ロード直後のプロジェクトを現行スキーマへ一度だけ引き上げます。
// レンダリングコードに旧フィールドのフォールバック分岐を散らさないための、
// 唯一のマイグレーションポイントなのだ。
//
// v1 -> v2 の変換内容:
//   - 単一画像フィールド image を localized_images[アクティブ言語] へ移す
//   - 非ローカライズの headline/subheadline 文字列を言語マップへ畳み込む
//   - 言語リスト・表示言語・マップの欠損を補完する
func (p *Project) Migrate() {
	if len(p.EnabledLanguages) == 0 {
		p.EnabledLanguages = []string{DefaultLanguage}
	}
	if p.ActiveLanguage == "" {
		p.ActiveLanguage = p.EnabledLanguages[0]
	}

	if p.SchemaVersion < CurrentSchemaVersion {
		slog.Info("プロジェクトのスキーマを移行するのだ",
			"project", p.ID, "from", p.SchemaVersion, "to", CurrentSchemaVersion)
	}

	for _, unit := range p.Units {
		migrateUnit(unit, p.ActiveLanguage)
	}
	migrateText(&p.Defaults.Text, p.ActiveLanguage)

	p.SchemaVersion = CurrentSchemaVersion
}

func migrateUnit(u *ScreenshotUnit, lang string) {
	if u.LocalizedImages == nil {
		u.LocalizedImages = map[string]*RasterAsset{}
	}
	// レガシー単一画像はアクティブ言語のエントリになる。移行後のユニットは
	// 少なくとも 1 言語分のエントリを持つ。
	if u.LegacyImage != nil {
		if len(u.LocalizedImages) == 0 {
			u.LocalizedImages[lang] = u.LegacyImage
		}
		u.LegacyImage = nil
	}
	migrateText(&u.Text, lang)
}

func migrateText(t *TextConfig, lang string) {
	if t.Headlines == nil {
		t.Headlines = map[string]string{}
	}
	if t.Subheadlines == nil {
		t.Subheadlines = map[string]string{}
	}
	if t.LegacyHeadline != "" {
		if _, ok := t.Headlines[lang]; !ok {
			t.Headlines[lang] = t.LegacyHeadline
		}
		t.LegacyHeadline = ""
	}
	if t.LegacySubheadline != "" {
		if _, ok := t.Subheadlines[lang]; !ok {
			t.Subheadlines[lang] = t.LegacySubheadline
		}
		t.LegacySubheadline = ""
	}
	if t.CurrentHeadlineLang == "" {
		t.CurrentHeadlineLang = lang
	}
	if t.CurrentSubheadlineLang == "" {
		t.CurrentSubheadlineLang = lang
	}
}
