// Package translate は見出しテキストの多言語展開を Gemini で行います。
package translate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"sync"
	"text/template"
	"time"

	"github.com/shouni/go-ai-client/v2/pkg/ai/gemini"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/shouni/go-screenshot-studio/pkg/domain"
)

// ErrMalformedResponse は AI 応答から翻訳 JSON を取り出せなかったことを表します。
var ErrMalformedResponse = errors.New("AI応答の形式が不正です")

// ErrEmptySource は翻訳元テキストが両方とも空であることを表します。
var ErrEmptySource = errors.New("翻訳元のテキストが空です")

var jsonBlockRegex = regexp.MustCompile("(?s)```(?:json)?\\s*(.*\\S)\\s*```")

// プロンプトはマーケティング文としての自然さを優先させ、出力を JSON のみに
// 制約します。キー名はパーサー側の構造体タグと一致させること。
var promptTemplate = template.Must(template.New("translate").Parse(
	`You are a professional app store localization specialist.
Translate the following app screenshot marketing text from {{.SourceLang}} to {{.TargetLang}}.
Keep the tone punchy and suitable for an app store listing. Preserve line breaks.

Headline: {{.Headline}}
Subheadline: {{.Subheadline}}

Respond with ONLY a JSON object in this exact format:
{"headline": "...", "subheadline": "..."}
If a field is empty in the source, return an empty string for it.`))

type promptData struct {
	SourceLang  string
	TargetLang  string
	Headline    string
	Subheadline string
}

// TextModel はテキスト生成モデルの最小インターフェースです。
type TextModel interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GeminiModel は gemini クライアントを TextModel へ適合させます。
type GeminiModel struct {
	client  gemini.GenerativeModel
	modelID string
}

// NewGeminiModel はモデル ID を束縛したアダプタを返します。
func NewGeminiModel(client gemini.GenerativeModel, modelID string) *GeminiModel {
	return &GeminiModel{client: client, modelID: modelID}
}

func (g *GeminiModel) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.GenerateContent(ctx, prompt, g.modelID)
	if err != nil {
		return "", fmt.Errorf("Gemini API の呼び出しに失敗しました: %w", err)
	}
	return resp.Text, nil
}

// 既定のレート制御。言語ごとのリクエストを 1 秒間隔に均します。
const (
	defaultRateInterval = time.Second
	defaultRateBurst    = 2
)

// Translator は 1 ユニット分のテキストを複数言語へ並列展開します。
type Translator struct {
	model   TextModel
	limiter *rate.Limiter
}

// New は既定のレートリミッター付きで Translator を構築します。
func New(model TextModel) *Translator {
	return &Translator{
		model:   model,
		limiter: rate.NewLimiter(rate.Every(defaultRateInterval), defaultRateBurst),
	}
}

// Result は言語コードをキーとする翻訳結果です。
type Result struct {
	Headlines    map[string]string
	Subheadlines map[string]string
}

type translationPayload struct {
	Headline    string `json:"headline"`
	Subheadline string `json:"subheadline"`
}

// Translate は翻訳元テキストを targetLangs の各言語へ展開します。
// 言語単位で並列実行し、どれか 1 言語でも失敗すれば全体をエラーとします
// （部分適用でプロジェクトの言語間整合が崩れるのを避けるため）。
// sourceLang と同じ言語はスキップし、元の文字列をそのまま載せます。
func (t *Translator) Translate(ctx context.Context, sourceLang, headline, subheadline string, targetLangs []string) (*Result, error) {
	if headline == "" && subheadline == "" {
		return nil, ErrEmptySource
	}

	result := &Result{
		Headlines:    map[string]string{sourceLang: headline},
		Subheadlines: map[string]string{sourceLang: subheadline},
	}

	var mu sync.Mutex
	eg, egCtx := errgroup.WithContext(ctx)

	for _, target := range targetLangs {
		if target == sourceLang {
			continue
		}
		eg.Go(func() error {
			if err := t.limiter.Wait(egCtx); err != nil {
				return err
			}

			slog.Info("翻訳リクエストを送信するのだ", "source", sourceLang, "target", target)
			payload, err := t.translateOne(egCtx, sourceLang, target, headline, subheadline)
			if err != nil {
				return fmt.Errorf("%s への翻訳に失敗しました: %w", target, err)
			}

			mu.Lock()
			result.Headlines[target] = payload.Headline
			result.Subheadlines[target] = payload.Subheadline
			mu.Unlock()
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}

func (t *Translator) translateOne(ctx context.Context, sourceLang, targetLang, headline, subheadline string) (translationPayload, error) {
	var sb strings.Builder
	err := promptTemplate.Execute(&sb, promptData{
		SourceLang:  sourceLang,
		TargetLang:  targetLang,
		Headline:    headline,
		Subheadline: subheadline,
	})
	if err != nil {
		return translationPayload{}, fmt.Errorf("プロンプト生成に失敗: %w", err)
	}

	raw, err := t.model.Generate(ctx, sb.String())
	if err != nil {
		return translationPayload{}, err
	}
	return parseResponse(raw)
}

// parseResponse はコードフェンスや前置きを剥がして翻訳 JSON を取り出します。
func parseResponse(raw string) (translationPayload, error) {
	raw = strings.TrimSpace(raw)
	var rawJSON string

	matches := jsonBlockRegex.FindStringSubmatch(raw)
	if len(matches) > 1 {
		rawJSON = matches[1]
	} else {
		first := strings.Index(raw, "{")
		last := strings.LastIndex(raw, "}")
		if first != -1 && last > first {
			rawJSON = raw[first : last+1]
		} else {
			rawJSON = raw
		}
	}

	var payload translationPayload
	if err := json.Unmarshal([]byte(rawJSON), &payload); err != nil {
		return translationPayload{}, fmt.Errorf("%w (応答抜粋: %q): %v", ErrMalformedResponse, truncateString(raw, 200), err)
	}
	return payload, nil
}

// ApplyToUnit は翻訳結果をユニットのテキストマップへ書き込みます。
// 既存の手入力エントリも翻訳結果で上書きします。
func ApplyToUnit(unit *domain.ScreenshotUnit, result *Result) {
	if unit.Text.Headlines == nil {
		unit.Text.Headlines = map[string]string{}
	}
	if unit.Text.Subheadlines == nil {
		unit.Text.Subheadlines = map[string]string{}
	}
	for lang, s := range result.Headlines {
		unit.Text.Headlines[lang] = s
	}
	for lang, s := range result.Subheadlines {
		unit.Text.Subheadlines[lang] = s
	}
}

func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
