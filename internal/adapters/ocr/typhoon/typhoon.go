// Package typhoon recognizes text with a vision-language OCR model served
// behind an OpenAI-compatible chat completions API.
package typhoon

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"strings"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/sashabaranov/go-openai"

	"github.com/cp25sy5-modjot/ocr-service/internal/domain"
	"github.com/cp25sy5-modjot/ocr-service/internal/imaging"
	"github.com/cp25sy5-modjot/ocr-service/internal/ports"
)

type Factory struct {
	client *openai.Client
	opts   Options
}

func NewFactory(opts Options) (*Factory, error) {
	if opts.BaseURL == "" {
		return nil, errors.New("typhoon: base url is required")
	}
	if opts.Params.Model == "" {
		opts.Params = DefaultParams()
	}

	cfg := openai.DefaultConfig(opts.APIKey)
	cfg.BaseURL = strings.TrimRight(opts.BaseURL, "/")
	httpClient := cleanhttp.DefaultPooledClient()
	httpClient.Timeout = opts.Timeout
	cfg.HTTPClient = httpClient

	return &Factory{
		client: openai.NewClientWithConfig(cfg),
		opts:   opts,
	}, nil
}

func (f *Factory) Name() string { return "typhoon" }

// NewEngine is cheap: the model lives on the server, the engine only carries
// the language-specific prompt.
func (f *Factory) NewEngine(ctx context.Context, lang domain.Language) (ports.Engine, error) {
	return &Engine{
		client: f.client,
		opts:   f.opts,
		lang:   lang,
		prompt: buildPrompt(lang),
	}, nil
}

type Engine struct {
	client *openai.Client
	opts   Options
	lang   domain.Language
	prompt string
}

func (e *Engine) Name() string              { return "typhoon" }
func (e *Engine) Language() domain.Language { return e.lang }
func (e *Engine) Concurrent() bool          { return true }
func (e *Engine) Close() error              { return nil }

func (e *Engine) Recognize(ctx context.Context, img image.Image) (domain.EngineResult, error) {
	data, err := imaging.EncodePNG(imaging.Downscale(img, e.opts.MaxSide))
	if err != nil {
		return domain.EngineResult{}, err
	}

	resp, err := e.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       e.opts.Params.Model,
		MaxTokens:   e.opts.Params.MaxTokens,
		Temperature: e.opts.Params.Temperature,
		TopP:        e.opts.Params.TopP,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{Type: openai.ChatMessagePartTypeText, Text: e.prompt},
					{
						Type: openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{
							URL:    "data:image/png;base64," + base64.StdEncoding.EncodeToString(data),
							Detail: openai.ImageURLDetailHigh,
						},
					},
				},
			},
		},
	})
	if err != nil {
		return domain.EngineResult{}, fmt.Errorf("typhoon chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return domain.EmptyResult(), nil
	}
	return parseContent(resp.Choices[0].Message.Content), nil
}

func buildPrompt(lang domain.Language) string {
	name, ok := languageNames[lang.String()]
	if !ok {
		name = lang.String()
	}
	return fmt.Sprintf(`Extract all text visible in this image. The text is written in %s.
Return plain text only, one detected line of text per output line, in natural reading order.
No markdown, no commentary, no translation. If there is no text, return nothing.`, name)
}

// parseContent splits the model reply into lines, dropping code fences the
// model sometimes wraps its answer in.
func parseContent(content string) domain.EngineResult {
	content = strings.TrimSpace(content)
	if content == "" {
		return domain.EmptyResult()
	}
	var texts []string
	for _, l := range strings.Split(content, "\n") {
		if strings.HasPrefix(strings.TrimSpace(l), "```") {
			continue
		}
		texts = append(texts, l)
	}
	return domain.Structured(texts, nil)
}
