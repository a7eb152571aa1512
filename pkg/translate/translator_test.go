package translate

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/shouni/go-screenshot-studio/pkg/domain"
)

// fakeModel はプロンプト中の翻訳先言語を抜き出して決め打ちの JSON を返します。
type fakeModel struct {
	mu       sync.Mutex
	prompts  []string
	response func(prompt string) (string, error)
}

func (f *fakeModel) Generate(ctx context.Context, prompt string) (string, error) {
	f.mu.Lock()
	f.prompts = append(f.prompts, prompt)
	f.mu.Unlock()
	return f.response(prompt)
}

func targetLangOf(prompt string) string {
	// プロンプト内の "from en to XX." から翻訳先を抜き出す
	const marker = " to "
	idx := strings.Index(prompt, marker)
	if idx < 0 {
		return ""
	}
	rest := prompt[idx+len(marker):]
	return strings.TrimSuffix(strings.Fields(rest)[0], ".")
}

func TestTranslate(t *testing.T) {
	model := &fakeModel{
		response: func(prompt string) (string, error) {
			lang := targetLangOf(prompt)
			return fmt.Sprintf("```json\n{\"headline\": \"見出し-%s\", \"subheadline\": \"補足-%s\"}\n```", lang, lang), nil
		},
	}
	tr := New(model)

	result, err := tr.Translate(context.Background(), "en", "Hello", "World", []string{"en", "ja", "fr"})
	if err != nil {
		t.Fatalf("翻訳に失敗しました: %v", err)
	}

	t.Run("翻訳元はそのまま結果に含まれること", func(t *testing.T) {
		if result.Headlines["en"] != "Hello" || result.Subheadlines["en"] != "World" {
			t.Errorf("翻訳元が保持されていません: %+v", result)
		}
	})

	t.Run("各翻訳先が応答で埋まること", func(t *testing.T) {
		for _, lang := range []string{"ja", "fr"} {
			if result.Headlines[lang] != "見出し-"+lang {
				t.Errorf("%s の見出し: 実際の値 %q", lang, result.Headlines[lang])
			}
			if result.Subheadlines[lang] != "補足-"+lang {
				t.Errorf("%s の補足: 実際の値 %q", lang, result.Subheadlines[lang])
			}
		}
	})

	t.Run("翻訳元と同じ言語へはリクエストしないこと", func(t *testing.T) {
		if len(model.prompts) != 2 {
			t.Errorf("期待値 2 リクエスト, 実際の値 %d", len(model.prompts))
		}
		for _, p := range model.prompts {
			if targetLangOf(p) == "en" {
				t.Error("翻訳元言語へのリクエストが送信されました")
			}
		}
	})
}

func TestTranslateErrors(t *testing.T) {
	t.Run("翻訳元が両方空なら ErrEmptySource になること", func(t *testing.T) {
		tr := New(&fakeModel{response: func(string) (string, error) { return "{}", nil }})
		if _, err := tr.Translate(context.Background(), "en", "", "", []string{"ja"}); !errors.Is(err, ErrEmptySource) {
			t.Errorf("期待値 ErrEmptySource, 実際の値 %v", err)
		}
	})

	t.Run("JSON を含まない応答は ErrMalformedResponse になること", func(t *testing.T) {
		tr := New(&fakeModel{response: func(string) (string, error) {
			return "すみません、翻訳できませんでした。", nil
		}})
		_, err := tr.Translate(context.Background(), "en", "Hello", "", []string{"ja"})
		if !errors.Is(err, ErrMalformedResponse) {
			t.Errorf("期待値 ErrMalformedResponse, 実際の値 %v", err)
		}
	})

	t.Run("1 言語でも失敗すれば全体がエラーになること", func(t *testing.T) {
		tr := New(&fakeModel{response: func(prompt string) (string, error) {
			if targetLangOf(prompt) == "fr" {
				return "", errors.New("レート上限です")
			}
			return `{"headline": "ok", "subheadline": ""}`, nil
		}})
		if _, err := tr.Translate(context.Background(), "en", "Hello", "", []string{"ja", "fr"}); err == nil {
			t.Error("部分失敗でエラーが発生しませんでした")
		}
	})
}

func TestParseResponse(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want translationPayload
	}{
		{
			name: "コードフェンス付き",
			raw:  "```json\n{\"headline\": \"A\", \"subheadline\": \"B\"}\n```",
			want: translationPayload{Headline: "A", Subheadline: "B"},
		},
		{
			name: "言語指定なしフェンス",
			raw:  "```\n{\"headline\": \"A\", \"subheadline\": \"\"}\n```",
			want: translationPayload{Headline: "A"},
		},
		{
			name: "前置き付きの裸 JSON",
			raw:  "こちらが翻訳結果です: {\"headline\": \"A\", \"subheadline\": \"B\"} 以上です。",
			want: translationPayload{Headline: "A", Subheadline: "B"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseResponse(tt.raw)
			if err != nil {
				t.Fatalf("パースに失敗しました: %v", err)
			}
			if got != tt.want {
				t.Errorf("期待値 %+v, 実際の値 %+v", tt.want, got)
			}
		})
	}
}

func TestApplyToUnit(t *testing.T) {
	unit := &domain.ScreenshotUnit{}
	result := &Result{
		Headlines:    map[string]string{"en": "Hello", "ja": "こんにちは"},
		Subheadlines: map[string]string{"en": "World", "ja": "世界"},
	}

	ApplyToUnit(unit, result)

	t.Run("nil マップでも書き込めること", func(t *testing.T) {
		if unit.Text.Headlines["ja"] != "こんにちは" || unit.Text.Subheadlines["ja"] != "世界" {
			t.Errorf("翻訳結果が反映されていません: %+v", unit.Text)
		}
	})

	t.Run("既存エントリは上書きされること", func(t *testing.T) {
		ApplyToUnit(unit, &Result{
			Headlines:    map[string]string{"ja": "改訂版"},
			Subheadlines: map[string]string{},
		})
		if unit.Text.Headlines["ja"] != "改訂版" {
			t.Errorf("上書きされていません: %q", unit.Text.Headlines["ja"])
		}
		if unit.Text.Headlines["en"] != "Hello" {
			t.Error("無関係な言語が消えました")
		}
	})
}
