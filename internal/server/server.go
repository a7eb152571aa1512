// Package server はプロジェクト編集・プレビュー・エクスポートの HTTP API を提供します。
package server

import (
	"fmt"
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/shouni/go-screenshot-studio/internal/config"
	"github.com/shouni/go-screenshot-studio/pkg/export"
	"github.com/shouni/go-screenshot-studio/pkg/imagegen"
	"github.com/shouni/go-screenshot-studio/pkg/project"
	"github.com/shouni/go-screenshot-studio/pkg/render"
	"github.com/shouni/go-screenshot-studio/pkg/translate"
)

// Server は API ハンドラー群と依存をまとめます。
// translator / imageGen は API キー未設定時に nil のまま起動し、
// 該当エンドポイントだけが 503 を返します。
type Server struct {
	cfg        *config.Config
	store      project.Store
	compositor *render.Compositor
	exporter   *export.Exporter
	translator *translate.Translator
	imageGen   *imagegen.Generator
}

// New は Server を構築します。
func New(
	cfg *config.Config,
	store project.Store,
	compositor *render.Compositor,
	exporter *export.Exporter,
	translator *translate.Translator,
	imageGen *imagegen.Generator,
) *Server {
	return &Server{
		cfg:        cfg,
		store:      store,
		compositor: compositor,
		exporter:   exporter,
		translator: translator,
		imageGen:   imageGen,
	}
}

// Run はルーティングを登録して待ち受けを開始します。
func (s *Server) Run() error {
	engine := gin.Default()
	s.registerRoutes(engine)

	slog.Info("APIサーバーを起動するのだ", "addr", s.cfg.ListenAddr)
	if err := engine.Run(s.cfg.ListenAddr); err != nil {
		return fmt.Errorf("サーバーの起動に失敗しました: %w", err)
	}
	return nil
}

func (s *Server) registerRoutes(r *gin.Engine) {
	api := r.Group("/api")
	{
		api.GET("/health", s.health)
		api.GET("/presets", s.listPresets)

		api.GET("/projects", s.listProjects)
		api.POST("/projects", s.createProject)
		api.GET("/projects/:id", s.getProject)
		api.PUT("/projects/:id", s.saveProject)
		api.DELETE("/projects/:id", s.deleteProject)

		api.POST("/projects/:id/units", s.uploadScreenshots)
		api.DELETE("/projects/:id/units/:index", s.removeUnit)
		api.POST("/projects/:id/units/:index/move", s.moveUnit)

		api.GET("/projects/:id/settings", s.getSettings)
		api.PUT("/projects/:id/settings", s.updateSettings)
		api.POST("/projects/:id/defaults/save", s.saveDefaults)
		api.POST("/projects/:id/defaults/apply", s.applyDefaults)

		api.POST("/projects/:id/languages", s.addLanguage)
		api.DELETE("/projects/:id/languages/:lang", s.removeLanguage)

		api.GET("/projects/:id/preview", s.previewUnit)
		api.GET("/projects/:id/export", s.exportZip)

		api.POST("/projects/:id/translate", s.translateUnit)
		api.POST("/projects/:id/background/generate", s.generateBackground)
	}
}
