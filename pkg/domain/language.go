package domain

import (
	"fmt"
	"slices"
)

// AddLanguage は言語をプロジェクトの有効言語リストへ追加します。
// 既に存在する場合は何もしません。
func (p *Project) AddLanguage(lang string) {
	if lang == "" || slices.Contains(p.EnabledLanguages, lang) {
		return
	}
	p.EnabledLanguages = append(p.EnabledLanguages, lang)
}

// RemoveLanguage は言語をプロジェクトから取り除きます。
// 最後の 1 言語の削除は拒否します。削除された言語のエントリは全ユニットの
// 言語マップと既定設定から除去され、その言語を表示していた箇所は
// 残った先頭の言語へ付け替えられます。
func (p *Project) RemoveLanguage(lang string) error {
	idx := slices.Index(p.EnabledLanguages, lang)
	if idx < 0 {
		return fmt.Errorf("言語 '%s' は有効化されていません", lang)
	}
	if len(p.EnabledLanguages) == 1 {
		return fmt.Errorf("最後の言語 '%s' は削除できません", lang)
	}

	p.EnabledLanguages = slices.Delete(p.EnabledLanguages, idx, idx+1)
	fallback := p.EnabledLanguages[0]

	if p.ActiveLanguage == lang {
		p.ActiveLanguage = fallback
	}

	purge := func(t *TextConfig) {
		delete(t.Headlines, lang)
		delete(t.Subheadlines, lang)
		if t.CurrentHeadlineLang == lang {
			t.CurrentHeadlineLang = fallback
		}
		if t.CurrentSubheadlineLang == lang {
			t.CurrentSubheadlineLang = fallback
		}
	}

	for _, unit := range p.Units {
		delete(unit.LocalizedImages, lang)
		purge(&unit.Text)
	}
	purge(&p.Defaults.Text)

	return nil
}
