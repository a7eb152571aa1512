// Package lang は、App Store 提出で使われる言語コードの検出と、
// ユニット内ローカライズ画像の解決を担当します。
package lang

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/shouni/go-screenshot-studio/pkg/domain"
)

// Known は認識対象の言語コード一覧です。App Store Connect のロケール群に
// 準じます。地域付きコード（pt-br 等）はベースコード（pt）より優先して
// マッチさせる必要があるため、検出時は長いコードから試します。
var Known = []string{
	"ar", "ca", "cs", "da", "de", "el", "en", "en-au", "en-ca", "en-gb",
	"es", "es-mx", "fi", "fr", "fr-ca", "he", "hi", "hr", "hu", "id",
	"it", "ja", "ko", "ms", "nl", "no", "pl", "pt", "pt-br", "pt-pt",
	"ro", "ru", "sk", "sv", "th", "tr", "uk", "vi", "zh-hans", "zh-hant",
}

// byLengthDesc は Known を長いコード優先で並べたものです。
var byLengthDesc = func() []string {
	codes := append([]string{}, Known...)
	sort.SliceStable(codes, func(i, j int) bool {
		return len(codes[i]) > len(codes[j])
	})
	return codes
}()

// IsKnown はコードが認識対象かどうかを返します。大文字小文字は区別しません。
func IsKnown(code string) bool {
	code = strings.ToLower(code)
	for _, c := range Known {
		if c == code {
			return true
		}
	}
	return false
}

// DetectFromFilename はファイル名の拡張子前のサフィックスから言語コードを
// 検出します。サフィックスは `_` または `-` 区切りで、長いコードから
// 照合するため "app_pt-br.png" は "pt" ではなく "pt-br" になります。
// 一致しない場合は既定の "en" を返します。
func DetectFromFilename(name string) string {
	code, _ := splitLangSuffix(name)
	return code
}

// BaseName は検出された言語サフィックスと拡張子を取り除いたベース名を
// 返します。インポート時の言語提案と、既存ユニットへの「差し替え/新規」
// マッチングの両方がこの一つの規則を共有します。
func BaseName(name string) string {
	_, base := splitLangSuffix(name)
	return base
}

func splitLangSuffix(name string) (code, base string) {
	stem := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	lower := strings.ToLower(stem)

	for _, c := range byLengthDesc {
		for _, sep := range []string{"_", "-"} {
			if strings.HasSuffix(lower, sep+c) {
				return c, stem[:len(stem)-len(c)-1]
			}
		}
	}
	return domain.DefaultLanguage, stem
}

// ResolveImage は、ユニットの言語マップから lang に対応するアセットを
// 返します。フォールバック順:
//  1. lang の完全一致
//  2. enabled の並び順で最初に見つかったアセット
//  3. マップ中の任意のアセット（順序未規定）
//  4. nil（画像なし状態）
func ResolveImage(unit *domain.ScreenshotUnit, lang string, enabled []string) *domain.RasterAsset {
	if unit == nil {
		return nil
	}
	if asset, ok := unit.LocalizedImages[lang]; ok && asset != nil {
		return asset
	}
	for _, code := range enabled {
		if asset, ok := unit.LocalizedImages[code]; ok && asset != nil {
			return asset
		}
	}
	for _, asset := range unit.LocalizedImages {
		if asset != nil {
			return asset
		}
	}
	return nil
}

// MatchUnit は、アップロードされたファイル名のベース名と一致する既存画像を
// 持つユニットの位置を返します。見つからなければ -1 です。
// 「差し替えか新規か」の提示はこの結果に基づきます。
func MatchUnit(units []*domain.ScreenshotUnit, filename string) int {
	base := BaseName(filename)
	for i, unit := range units {
		for _, asset := range unit.LocalizedImages {
			if asset != nil && asset.Filename != "" && BaseName(asset.Filename) == base {
				return i
			}
		}
	}
	return -1
}
