package project

import (
	"github.com/shouni/go-screenshot-studio/pkg/domain"
)

// Resolver はプロジェクトの選択状態を踏まえた設定解決と編集の窓口です。
// 読み取りは「選択中ユニットの設定、選択がなければプロジェクト既定」へ
// 一貫して解決されます。編集系は選択中ユニットがないとき黙って無視します
// （編集先が存在しない状態は正常系です）。
type Resolver struct {
	project *domain.Project
}

// NewResolver は指定プロジェクトに束縛された Resolver を返します。
func NewResolver(p *domain.Project) *Resolver {
	return &Resolver{project: p}
}

// Project は束縛中のプロジェクトを返します。
func (r *Resolver) Project() *domain.Project {
	return r.project
}

// ActiveUnit は選択中のユニットを返します。なければ nil です。
func (r *Resolver) ActiveUnit() *domain.ScreenshotUnit {
	if r.project == nil {
		return nil
	}
	return r.project.SelectedUnit()
}

// Background は表示・編集対象の背景設定を返します。
// プロジェクト未束縛なら nil です。
func (r *Resolver) Background() *domain.BackgroundConfig {
	if u := r.ActiveUnit(); u != nil {
		return &u.Background
	}
	if r.project == nil {
		return nil
	}
	return &r.project.Defaults.Background
}

// Screenshot は表示・編集対象の配置設定を返します。
// プロジェクト未束縛なら nil です。
func (r *Resolver) Screenshot() *domain.ScreenshotSettings {
	if u := r.ActiveUnit(); u != nil {
		return &u.Screenshot
	}
	if r.project == nil {
		return nil
	}
	return &r.project.Defaults.Screenshot
}

// Text は表示・編集対象のテキスト設定を返します。
// プロジェクト未束縛なら nil です。
func (r *Resolver) Text() *domain.TextConfig {
	if u := r.ActiveUnit(); u != nil {
		return &u.Text
	}
	if r.project == nil {
		return nil
	}
	return &r.project.Defaults.Text
}

// UpdateBackground は選択中ユニットの背景設定を差し替えます。
func (r *Resolver) UpdateBackground(bg domain.BackgroundConfig) {
	if u := r.ActiveUnit(); u != nil {
		u.Background = domain.CloneBackground(bg)
	}
}

// UpdateScreenshot は選択中ユニットの配置設定を差し替えます。
func (r *Resolver) UpdateScreenshot(s domain.ScreenshotSettings) {
	if u := r.ActiveUnit(); u != nil {
		u.Screenshot = domain.CloneScreenshotSettings(s)
	}
}

// UpdateText は選択中ユニットのテキスト設定を差し替えます。
func (r *Resolver) UpdateText(t domain.TextConfig) {
	if u := r.ActiveUnit(); u != nil {
		u.Text = domain.CloneText(t)
	}
}

// SetShadow はシャドウ設定を差し替えます。未初期化なら構造体を作ります。
func (r *Resolver) SetShadow(sh domain.ShadowConfig) {
	u := r.ActiveUnit()
	if u == nil {
		return
	}
	if u.Screenshot.Shadow == nil {
		u.Screenshot.Shadow = &domain.ShadowConfig{}
	}
	*u.Screenshot.Shadow = sh
}

// SetFrame はフレーム設定を差し替えます。未初期化なら構造体を作ります。
func (r *Resolver) SetFrame(fr domain.FrameConfig) {
	u := r.ActiveUnit()
	if u == nil {
		return
	}
	if u.Screenshot.Frame == nil {
		u.Screenshot.Frame = &domain.FrameConfig{}
	}
	*u.Screenshot.Frame = fr
}

// ApplyDefaultsToAll はプロジェクト既定を全ユニットへディープコピーで
// 展開します。画像は各ユニットのものを保持します。
func (r *Resolver) ApplyDefaultsToAll() {
	if r.project == nil {
		return
	}
	for _, u := range r.project.Units {
		u.Background = domain.CloneBackground(r.project.Defaults.Background)
		u.Screenshot = domain.CloneScreenshotSettings(r.project.Defaults.Screenshot)

		text := domain.CloneText(r.project.Defaults.Text)
		// ローカライズ済みテキストはユニット固有の内容なので既定で潰さない
		text.Headlines = u.Text.Headlines
		text.Subheadlines = u.Text.Subheadlines
		text.CurrentHeadlineLang = u.Text.CurrentHeadlineLang
		text.CurrentSubheadlineLang = u.Text.CurrentSubheadlineLang
		u.Text = text
	}
}

// SaveAsDefaults は選択中ユニットの設定をプロジェクト既定へ書き戻します。
func (r *Resolver) SaveAsDefaults() {
	u := r.ActiveUnit()
	if u == nil {
		return
	}
	r.project.Defaults.Background = domain.CloneBackground(u.Background)
	r.project.Defaults.Screenshot = domain.CloneScreenshotSettings(u.Screenshot)
	r.project.Defaults.Text = domain.CloneText(u.Text)
}
