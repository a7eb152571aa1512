package render

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/sync/singleflight"

	"github.com/shouni/go-screenshot-studio/pkg/domain"
)

// boldWeightThreshold 以上のウェイトはボールド書体にマップします。
const boldWeightThreshold = 600

// FontRegistry はフォントファミリー参照名から描画用フェイスを解決します。
// dir 配下の TTF/OTF を優先し、見つからないファミリーは埋め込みの
// Go フォントへフォールバックします。パース済みソースはキャッシュされ、
// 同一ファミリーの同時ロードは singleflight で一本化されます。
type FontRegistry struct {
	dir string

	mu      sync.RWMutex
	sources map[string]*text.FontSource
	group   singleflight.Group
}

// NewFontRegistry は、カスタムフォント検索ディレクトリを指す
// レジストリを生成します。dir は空でも構いません（埋め込みのみ）。
func NewFontRegistry(dir string) *FontRegistry {
	return &FontRegistry{
		dir:     dir,
		sources: make(map[string]*text.FontSource),
	}
}

// Face はタイポグラフィ設定に対応するフェイスを返します。
func (r *FontRegistry) Face(style domain.FontStyle) (text.Face, error) {
	source, err := r.source(style.Family, style.Weight, style.Italic)
	if err != nil {
		return nil, err
	}
	return source.Face(style.SizePx), nil
}

// source はファミリーとバリアントに対応するパース済みフォントを返します。
func (r *FontRegistry) source(family string, weight int, italic bool) (*text.FontSource, error) {
	key := fmt.Sprintf("%s|%t|%t", family, weight >= boldWeightThreshold, italic)

	r.mu.RLock()
	src, ok := r.sources[key]
	r.mu.RUnlock()
	if ok {
		return src, nil
	}

	val, err, _ := r.group.Do(key, func() (interface{}, error) {
		r.mu.RLock()
		if existing, ok := r.sources[key]; ok {
			r.mu.RUnlock()
			return existing, nil
		}
		r.mu.RUnlock()

		loaded, err := r.load(family, weight >= boldWeightThreshold, italic)
		if err != nil {
			return nil, err
		}

		r.mu.Lock()
		r.sources[key] = loaded
		r.mu.Unlock()
		return loaded, nil
	})
	if err != nil {
		return nil, err
	}
	return val.(*text.FontSource), nil
}

func (r *FontRegistry) load(family string, bold, italic bool) (*text.FontSource, error) {
	if r.dir != "" && family != "" {
		for _, ext := range []string{".ttf", ".otf"} {
			path := filepath.Join(r.dir, family+ext)
			data, err := os.ReadFile(path)
			if err != nil {
				continue
			}
			src, err := text.NewFontSource(data)
			if err != nil {
				slog.Warn("カスタムフォントのパースに失敗したため埋め込みフォントを使うのだ",
					"family", family, "path", path, "error", err)
				break
			}
			return src, nil
		}
	}

	src, err := text.NewFontSource(builtinFont(bold, italic))
	if err != nil {
		return nil, fmt.Errorf("埋め込みフォントのパースに失敗しました: %w", err)
	}
	return src, nil
}

func builtinFont(bold, italic bool) []byte {
	switch {
	case bold && italic:
		return gobolditalic.TTF
	case bold:
		return gobold.TTF
	case italic:
		return goitalic.TTF
	default:
		return goregular.TTF
	}
}
