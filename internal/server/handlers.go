package server

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/shouni/go-screenshot-studio/pkg/domain"
	"github.com/shouni/go-screenshot-studio/pkg/imagegen"
	"github.com/shouni/go-screenshot-studio/pkg/lang"
	"github.com/shouni/go-screenshot-studio/pkg/preset"
	"github.com/shouni/go-screenshot-studio/pkg/project"
	"github.com/shouni/go-screenshot-studio/pkg/render"
	"github.com/shouni/go-screenshot-studio/pkg/translate"
)

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) listPresets(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"presets": preset.Names()})
}

func (s *Server) listProjects(c *gin.Context) {
	ids, err := s.store.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"projects": ids})
}

func (s *Server) createProject(c *gin.Context) {
	var req struct {
		ID   string `json:"id" binding:"required"`
		Name string `json:"name"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Name == "" {
		req.Name = req.ID
	}

	p := domain.NewProject(req.ID, req.Name)
	if err := s.store.Save(p); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (s *Server) getProject(c *gin.Context) {
	p, ok := s.loadProject(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, p)
}

// saveProject はクライアント側の編集結果を丸ごと受け取って永続化します。
// パスの ID をボディより優先します。
func (s *Server) saveProject(c *gin.Context) {
	p := &domain.Project{}
	if err := c.BindJSON(p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	p.ID = c.Param("id")
	p.Migrate()

	if err := s.store.Save(p); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"saved": p.ID})
}

func (s *Server) deleteProject(c *gin.Context) {
	if err := s.store.Delete(c.Param("id")); err != nil {
		s.writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": c.Param("id")})
}

// uploadScreenshots は multipart でスクリーンショット画像を受け取ります。
// ファイル名の言語サフィックスで格納先の言語を決め、ベース名が既存ユニットの
// 画像と一致すればそのユニットの該当言語スロットへ差し替え、一致しなければ
// 新しいユニットを末尾に作ります。
func (s *Server) uploadScreenshots(c *gin.Context) {
	p, ok := s.loadProject(c)
	if !ok {
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	files := form.File["files"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ファイルが添付されていません"})
		return
	}

	type uploadResult struct {
		Filename string `json:"filename"`
		Language string `json:"language"`
		Unit     int    `json:"unit"`
		Replaced bool   `json:"replaced"`
	}
	var results []uploadResult

	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("%s を開けません: %v", fh.Filename, err)})
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("%s の読み込みに失敗しました: %v", fh.Filename, err)})
			return
		}

		asset, err := domain.NewRasterAsset(data, fh.Filename)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("%s は画像として読めません: %v", fh.Filename, err)})
			return
		}

		code := lang.DetectFromFilename(fh.Filename)
		p.AddLanguage(code)

		if idx := lang.MatchUnit(p.Units, fh.Filename); idx >= 0 {
			p.Units[idx].LocalizedImages[code] = asset
			results = append(results, uploadResult{fh.Filename, code, idx, true})
			slog.Info("既存ユニットの画像を差し替えたのだ", "filename", fh.Filename, "lang", code, "unit", idx)
			continue
		}

		p.AddUnit(asset, code)
		results = append(results, uploadResult{fh.Filename, code, len(p.Units) - 1, false})
		slog.Info("新しいユニットを追加したのだ", "filename", fh.Filename, "lang", code, "unit", len(p.Units)-1)
	}

	if err := s.store.Save(p); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": results})
}

func (s *Server) removeUnit(c *gin.Context) {
	p, ok := s.loadProject(c)
	if !ok {
		return
	}
	idx, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ユニット番号が不正です"})
		return
	}
	if err := p.RemoveUnit(idx); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := s.store.Save(p); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"units": len(p.Units)})
}

func (s *Server) moveUnit(c *gin.Context) {
	p, ok := s.loadProject(c)
	if !ok {
		return
	}
	from, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ユニット番号が不正です"})
		return
	}
	var req struct {
		To int `json:"to"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := p.MoveUnit(from, req.To); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := s.store.Save(p); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"moved": gin.H{"from": from, "to": req.To}})
}

// getSettings は選択中ユニット（なければプロジェクト既定）の設定を返します。
func (s *Server) getSettings(c *gin.Context) {
	p, ok := s.loadProject(c)
	if !ok {
		return
	}
	r := project.NewResolver(p)
	c.JSON(http.StatusOK, gin.H{
		"unit":       p.SelectedIndex,
		"background": r.Background(),
		"screenshot": r.Screenshot(),
		"text":       r.Text(),
	})
}

// updateSettings は選択中ユニットの設定を部分更新します。body に含まれた
// セクションだけを差し替えます。unit を指定すると選択を切り替えてから
// 適用します。
func (s *Server) updateSettings(c *gin.Context) {
	p, ok := s.loadProject(c)
	if !ok {
		return
	}
	var req struct {
		Unit       *int                       `json:"unit"`
		Background *domain.BackgroundConfig   `json:"background"`
		Screenshot *domain.ScreenshotSettings `json:"screenshot"`
		Text       *domain.TextConfig         `json:"text"`
		Shadow     *domain.ShadowConfig       `json:"shadow"`
		Frame      *domain.FrameConfig        `json:"frame"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Unit != nil {
		if *req.Unit < 0 || *req.Unit >= len(p.Units) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "ユニット番号が不正です"})
			return
		}
		p.SelectedIndex = *req.Unit
	}

	r := project.NewResolver(p)
	if r.ActiveUnit() == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "編集対象のユニットがありません"})
		return
	}
	if req.Background != nil {
		r.UpdateBackground(*req.Background)
	}
	if req.Screenshot != nil {
		r.UpdateScreenshot(*req.Screenshot)
	}
	if req.Text != nil {
		r.UpdateText(*req.Text)
	}
	if req.Shadow != nil {
		r.SetShadow(*req.Shadow)
	}
	if req.Frame != nil {
		r.SetFrame(*req.Frame)
	}

	if err := s.store.Save(p); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"unit":       p.SelectedIndex,
		"background": r.Background(),
		"screenshot": r.Screenshot(),
		"text":       r.Text(),
	})
}

// saveDefaults は選択中ユニットの設定をプロジェクト既定へ書き戻します。
func (s *Server) saveDefaults(c *gin.Context) {
	p, ok := s.loadProject(c)
	if !ok {
		return
	}
	r := project.NewResolver(p)
	if r.ActiveUnit() == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "既定の元になるユニットがありません"})
		return
	}
	r.SaveAsDefaults()
	if err := s.store.Save(p); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"saved": p.ID})
}

// applyDefaults はプロジェクト既定を全ユニットへ展開します。
func (s *Server) applyDefaults(c *gin.Context) {
	p, ok := s.loadProject(c)
	if !ok {
		return
	}
	project.NewResolver(p).ApplyDefaultsToAll()
	if err := s.store.Save(p); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"applied": len(p.Units)})
}

func (s *Server) addLanguage(c *gin.Context) {
	p, ok := s.loadProject(c)
	if !ok {
		return
	}
	var req struct {
		Language string `json:"language" binding:"required"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !lang.IsKnown(req.Language) {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("言語コード '%s' は認識できません", req.Language)})
		return
	}
	p.AddLanguage(req.Language)
	if err := s.store.Save(p); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"languages": p.EnabledLanguages})
}

func (s *Server) removeLanguage(c *gin.Context) {
	p, ok := s.loadProject(c)
	if !ok {
		return
	}
	if err := p.RemoveLanguage(c.Param("lang")); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := s.store.Save(p); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"languages": p.EnabledLanguages})
}

// previewUnit は指定ユニットを PNG でレンダリングして返します。
// ?unit= 省略時は選択中ユニット、?w= ?h= 省略時はプロジェクトの出力寸法です。
func (s *Server) previewUnit(c *gin.Context) {
	p, ok := s.loadProject(c)
	if !ok {
		return
	}

	unit := p.SelectedUnit()
	if q := c.Query("unit"); q != "" {
		idx, err := strconv.Atoi(q)
		if err != nil || idx < 0 || idx >= len(p.Units) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "ユニット番号が不正です"})
			return
		}
		unit = p.Units[idx]
	}
	if unit == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "プレビュー対象のユニットがありません"})
		return
	}

	if q := c.Query("lang"); q != "" {
		p.ActiveLanguage = q
	}

	dims, err := preset.Resolve(p.OutputTarget, p.CustomWidth, p.CustomHeight)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if w, werr := strconv.Atoi(c.Query("w")); werr == nil && w > 0 {
		if h, herr := strconv.Atoi(c.Query("h")); herr == nil && h > 0 {
			dims = preset.Dims{Width: w, Height: h}
		}
	}

	png, err := s.compositor.RenderPNG(render.Dims{Width: dims.Width, Height: dims.Height}, p, unit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}

// exportZip は全ユニットのレンダリング結果を zip でストリーム配信します。
func (s *Server) exportZip(c *gin.Context) {
	p, ok := s.loadProject(c)
	if !ok {
		return
	}
	if q := c.Query("lang"); q != "" {
		p.ActiveLanguage = q
	}

	filename := fmt.Sprintf("%s_screenshots.zip", p.ID)
	c.Header("Content-Type", "application/zip")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))

	if err := s.exporter.WriteZip(c.Writer, p); err != nil {
		// ヘッダー送信後はエラーレスポンスへ切り替えられないのでログのみ
		slog.Error("エクスポートに失敗したのだ", "project", p.ID, "error", err)
		c.Abort()
	}
}

// translateUnit は指定ユニットの見出しテキストを有効言語すべてへ展開します。
func (s *Server) translateUnit(c *gin.Context) {
	if s.translator == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "翻訳機能は無効です（GEMINI_API_KEY を設定してください）"})
		return
	}
	p, ok := s.loadProject(c)
	if !ok {
		return
	}

	var req struct {
		Unit       int    `json:"unit"`
		SourceLang string `json:"source_lang"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Unit < 0 || req.Unit >= len(p.Units) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ユニット番号が不正です"})
		return
	}
	unit := p.Units[req.Unit]

	source := req.SourceLang
	if source == "" {
		source = p.ActiveLanguage
	}

	result, err := s.translator.Translate(
		c.Request.Context(),
		source,
		unit.Text.Headlines[source],
		unit.Text.Subheadlines[source],
		p.EnabledLanguages,
	)
	if err != nil {
		status := http.StatusBadGateway
		if errors.Is(err, translate.ErrEmptySource) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	translate.ApplyToUnit(unit, result)
	if err := s.store.Save(p); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"headlines":    unit.Text.Headlines,
		"subheadlines": unit.Text.Subheadlines,
	})
}

// generateBackground はプロンプトから背景画像を生成し、指定ユニットの
// 背景を画像モードへ切り替えます。
func (s *Server) generateBackground(c *gin.Context) {
	if s.imageGen == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "画像生成機能は無効です（GEMINI_API_KEY を設定してください）"})
		return
	}
	p, ok := s.loadProject(c)
	if !ok {
		return
	}

	var req struct {
		Unit        int    `json:"unit"`
		Prompt      string `json:"prompt" binding:"required"`
		AspectRatio string `json:"aspect_ratio"`
		Seed        int64  `json:"seed"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Unit < 0 || req.Unit >= len(p.Units) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ユニット番号が不正です"})
		return
	}
	unit := p.Units[req.Unit]

	asset, usedSeed, err := s.imageGen.GenerateBackground(c.Request.Context(), imagegen.Request{
		Prompt:      req.Prompt,
		AspectRatio: req.AspectRatio,
		Seed:        req.Seed,
	})
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	unit.Background.Type = domain.BackgroundImage
	unit.Background.Image.Asset = asset
	if err := s.store.Save(p); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"filename": asset.Filename, "used_seed": usedSeed})
}

func (s *Server) loadProject(c *gin.Context) (*domain.Project, bool) {
	p, err := s.store.Load(c.Param("id"))
	if err != nil {
		s.writeStoreError(c, err)
		return nil, false
	}
	return p, true
}

func (s *Server) writeStoreError(c *gin.Context, err error) {
	if errors.Is(err, project.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
