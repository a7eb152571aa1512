package domain

import (
	"bytes"
	"fmt"
	"image"
	"sync"

	// 読み込み対応フォーマットの登録
	_ "image/jpeg"
	_ "image/png"
)

// RasterAsset は、アップロードされた画像のエンコード済みバイト列と、
// デコード済みラスターを保持するアセットです。
// Data は JSON 保存時に base64 として永続化され、decoded は再デコードで復元されます。
// 一度デコードされたラスターは不変として扱うため、クローン間でポインタを共有しても安全なのだ。
type RasterAsset struct {
	Data     []byte `json:"data"`
	Filename string `json:"filename,omitempty"`

	mu      sync.Mutex
	decoded image.Image
}

// NewRasterAsset は、エンコード済みバイト列からアセットを生成します。
// この時点でデコードを試み、読めないデータは即座に拒否するのだ。
func NewRasterAsset(data []byte, filename string) (*RasterAsset, error) {
	a := &RasterAsset{Data: data, Filename: filename}
	if _, err := a.Decode(); err != nil {
		return nil, fmt.Errorf("画像ファイル '%s' をデコードできませんでした: %w", filename, err)
	}
	return a, nil
}

// Decode は、保持しているバイト列をデコードしてラスターを返します。
// 結果はキャッシュされ、二回目以降はデコード処理をスキップします。
func (a *RasterAsset) Decode() (image.Image, error) {
	if a == nil {
		return nil, fmt.Errorf("アセットが存在しません")
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.decoded != nil {
		return a.decoded, nil
	}

	img, _, err := image.Decode(bytes.NewReader(a.Data))
	if err != nil {
		return nil, fmt.Errorf("ラスターのデコードに失敗しました: %w", err)
	}
	a.decoded = img
	return img, nil
}

// Bounds は、デコード済みラスターのピクセル寸法を返します。未デコードならデコードします。
func (a *RasterAsset) Bounds() (width, height int, err error) {
	img, err := a.Decode()
	if err != nil {
		return 0, 0, err
	}
	b := img.Bounds()
	return b.Dx(), b.Dy(), nil
}
