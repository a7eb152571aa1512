// Package preset は、出力先デバイスプリセット名からピクセル寸法への
// 静的マッピングを提供します。
package preset

import (
	"fmt"
	"sort"
)

// Dims は出力ラスターのピクセル寸法です。
type Dims struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Custom はプリセット表を迂回して明示的な幅・高さを使う出力先名です。
const Custom = "custom"

// devices は App Store 提出サイズのプリセット表です。
var devices = map[string]Dims{
	"iphone-6.9":    {1290, 2796},
	"iphone-6.7":    {1290, 2796},
	"iphone-6.5":    {1242, 2688},
	"iphone-5.5":    {1242, 2208},
	"ipad-pro-12.9": {2048, 2732},
	"ipad-pro-13":   {2064, 2752},
	"mac":           {2880, 1800},
	"apple-tv":      {3840, 2160},
	"apple-watch":   {410, 502},
}

// Resolve は出力先名を寸法へ解決します。Custom の場合は引数の
// customWidth/customHeight をそのまま使います。
func Resolve(target string, customWidth, customHeight int) (Dims, error) {
	if target == Custom || target == "" {
		if customWidth <= 0 || customHeight <= 0 {
			return Dims{}, fmt.Errorf("カスタム出力サイズ %dx%d が不正です", customWidth, customHeight)
		}
		return Dims{Width: customWidth, Height: customHeight}, nil
	}
	d, ok := devices[target]
	if !ok {
		return Dims{}, fmt.Errorf("出力先プリセット '%s' は存在しません", target)
	}
	return d, nil
}

// Names は利用可能なプリセット名の一覧をソート済みで返します。
func Names() []string {
	names := make([]string, 0, len(devices))
	for name := range devices {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
