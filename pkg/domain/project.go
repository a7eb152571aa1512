package domain

import (
	"fmt"
)

// CurrentSchemaVersion は永続化レコードのスキーマ世代です。
// v1: 単一画像 + 非ローカライズの headline/subheadline 文字列
// v2: localized_images マップ + 言語別テキストマップ
const CurrentSchemaVersion = 2

// DefaultLanguage は言語が一つも設定されていないときのフォールバックです。
const DefaultLanguage = "en"

// ScreenshotUnit は 1 枚のスクリーンショットと、それに紐づく独立した
// 背景・配置・テキスト設定の組です。Project 内の位置（インデックス）が
// エクスポート順を決めます。
type ScreenshotUnit struct {
	LocalizedImages map[string]*RasterAsset `json:"localized_images"`

	Background BackgroundConfig   `json:"background"`
	Screenshot ScreenshotSettings `json:"screenshot_settings"`
	Text       TextConfig         `json:"text"`

	// 旧スキーマの単一画像フィールド。マイグレーション後は nil になります。
	LegacyImage *RasterAsset `json:"image,omitempty"`
}

// Defaults はプロジェクト既定の設定群です。新規ユニットはここからの
// ディープコピーで初期化されます。
type Defaults struct {
	Background BackgroundConfig   `json:"background"`
	Screenshot ScreenshotSettings `json:"screenshot_settings"`
	Text       TextConfig         `json:"text"`
}

// Project はスクリーンショットユニットの名前付きコレクションと
// グローバル設定の全体です。ID をキーとして丸ごと永続化されます。
type Project struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	SchemaVersion int    `json:"schema_version"`

	Units         []*ScreenshotUnit `json:"units"`
	SelectedIndex int               `json:"selected_index"`

	OutputTarget string `json:"output_target"`
	CustomWidth  int    `json:"custom_width"`
	CustomHeight int    `json:"custom_height"`

	ActiveLanguage   string   `json:"active_language"`
	EnabledLanguages []string `json:"enabled_languages"`

	Defaults Defaults `json:"defaults"`
}

// NewProject は既定設定で初期化された空のプロジェクトを生成します。
func NewProject(id, name string) *Project {
	return &Project{
		ID:               id,
		Name:             name,
		SchemaVersion:    CurrentSchemaVersion,
		SelectedIndex:    -1,
		OutputTarget:     "custom",
		CustomWidth:      1290,
		CustomHeight:     2796,
		ActiveLanguage:   DefaultLanguage,
		EnabledLanguages: []string{DefaultLanguage},
		Defaults: Defaults{
			Background: DefaultBackground(),
			Screenshot: DefaultScreenshotSettings(),
			Text:       DefaultText(DefaultLanguage),
		},
	}
}

// SelectedUnit は現在選択中のユニットを返します。選択がなければ nil です。
func (p *Project) SelectedUnit() *ScreenshotUnit {
	if p.SelectedIndex < 0 || p.SelectedIndex >= len(p.Units) {
		return nil
	}
	return p.Units[p.SelectedIndex]
}

// AddUnit は既定設定のディープコピーから新しいユニットを作り、末尾に追加します。
// 設定オブジェクトの共有による別ユニットへの波及（エイリアシング）を防ぐため、
// 必ずクローンを経由するのだ。
func (p *Project) AddUnit(asset *RasterAsset, lang string) *ScreenshotUnit {
	if lang == "" {
		lang = p.ActiveLanguage
	}
	unit := &ScreenshotUnit{
		LocalizedImages: map[string]*RasterAsset{},
		Background:      CloneBackground(p.Defaults.Background),
		Screenshot:      CloneScreenshotSettings(p.Defaults.Screenshot),
		Text:            CloneText(p.Defaults.Text),
	}
	if asset != nil {
		unit.LocalizedImages[lang] = asset
	}
	unit.Text.CurrentHeadlineLang = p.ActiveLanguage
	unit.Text.CurrentSubheadlineLang = p.ActiveLanguage
	p.Units = append(p.Units, unit)
	if p.SelectedIndex < 0 {
		p.SelectedIndex = len(p.Units) - 1
	}
	return unit
}

// RemoveUnit は指定位置のユニットを取り除きます。
func (p *Project) RemoveUnit(index int) error {
	if index < 0 || index >= len(p.Units) {
		return fmt.Errorf("ユニット番号 %d は範囲外です", index)
	}
	p.Units = append(p.Units[:index], p.Units[index+1:]...)
	if p.SelectedIndex >= len(p.Units) {
		p.SelectedIndex = len(p.Units) - 1
	}
	return nil
}

// MoveUnit はユニットを from から to へ並べ替えます。
// インデックス位置はエクスポート順とプレビューの隣接関係を定めるため、
// 並べ替えは位置の付け替えのみで設定には触れません。
func (p *Project) MoveUnit(from, to int) error {
	if from < 0 || from >= len(p.Units) || to < 0 || to >= len(p.Units) {
		return fmt.Errorf("並べ替え位置 (%d -> %d) が範囲外です", from, to)
	}
	unit := p.Units[from]
	p.Units = append(p.Units[:from], p.Units[from+1:]...)
	rest := append([]*ScreenshotUnit{}, p.Units[to:]...)
	p.Units = append(append(p.Units[:to:to], unit), rest...)
	return nil
}
