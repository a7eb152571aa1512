// Package export は全ユニットの一括レンダリングと zip 梱包を担います。
package export

import (
	"archive/zip"
	"fmt"
	"io"
	"log/slog"

	"github.com/shouni/go-utils/urlpath"

	"github.com/shouni/go-screenshot-studio/pkg/domain"
	"github.com/shouni/go-screenshot-studio/pkg/preset"
	"github.com/shouni/go-screenshot-studio/pkg/render"
)

// baseEntryName は zip エントリ名の基底です。GenerateIndexedPath で
// 1 始まりの連番が拡張子の前に挟まります。
const baseEntryName = "screenshot.png"

// PNGRenderer は 1 ユニットを PNG バイト列へ描き出すインターフェースです。
type PNGRenderer interface {
	RenderPNG(dims render.Dims, p *domain.Project, unit *domain.ScreenshotUnit) ([]byte, error)
}

// Exporter はプロジェクトのユニット列を PNG へ描き出し zip に束ねます。
type Exporter struct {
	renderer PNGRenderer
}

// NewExporter はエクスポーターを構築します。
func NewExporter(renderer PNGRenderer) *Exporter {
	return &Exporter{renderer: renderer}
}

// WriteZip はプロジェクトの全ユニットをユニット順に現在の出力寸法で
// レンダリングし、zip アーカイブとして w へ書き込みます。
//
// エントリ名は screenshot_1.png, screenshot_2.png, ... の 1 始まり連番で、
// ユニットのインデックス順と一致します。レンダリングは 1 ユニットずつ
// 逐次実行します。大きな出力面を同時に複数持つとメモリが跳ねるためです。
func (e *Exporter) WriteZip(w io.Writer, p *domain.Project) error {
	if len(p.Units) == 0 {
		return fmt.Errorf("エクスポート対象のユニットがありません")
	}

	dims, err := preset.Resolve(p.OutputTarget, p.CustomWidth, p.CustomHeight)
	if err != nil {
		return fmt.Errorf("出力サイズの解決に失敗しました: %w", err)
	}

	zw := zip.NewWriter(w)
	for i, unit := range p.Units {
		name, err := urlpath.GenerateIndexedPath(baseEntryName, i+1)
		if err != nil {
			zw.Close()
			return fmt.Errorf("zip エントリ名の生成に失敗しました: %w", err)
		}
		slog.Info("ユニットをレンダリングするのだ",
			"index", i+1, "total", len(p.Units), "entry", name,
			"width", dims.Width, "height", dims.Height)

		png, err := e.renderer.RenderPNG(render.Dims{Width: dims.Width, Height: dims.Height}, p, unit)
		if err != nil {
			zw.Close()
			return fmt.Errorf("ユニット %d のレンダリングに失敗しました: %w", i+1, err)
		}

		entry, err := zw.Create(name)
		if err != nil {
			zw.Close()
			return fmt.Errorf("zip エントリ %s の作成に失敗しました: %w", name, err)
		}
		if _, err := entry.Write(png); err != nil {
			zw.Close()
			return fmt.Errorf("zip エントリ %s の書き込みに失敗しました: %w", name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("zip のクローズに失敗しました: %w", err)
	}
	return nil
}
