package agent

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/resumeforge/resumeforge/internal/apperr"
)

// OpenAILLM implements LLMClient over the openai-go chat completions API.
// A custom BaseURL makes it work against any OpenAI-compatible endpoint.
type OpenAILLM struct {
	model       string
	temperature float64
	opts        []option.RequestOption
}

// NewOpenAILLM builds a client from settings.
func NewOpenAILLM(cfg LLMSettings) (*OpenAILLM, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("llm: api key is required")
	}
	if cfg.Model == "" {
		return nil, errors.New("llm: model is required")
	}
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	return &OpenAILLM{model: cfg.Model, temperature: cfg.Temperature, opts: opts}, nil
}

// Complete sends the prompt and returns the raw completion text. Transport
// failures are classified into the apperr upstream sentinels.
func (o *OpenAILLM) Complete(ctx context.Context, prompt Prompt) (string, error) {
	client := openai.NewClient(o.opts...)

	msgs := make([]openai.ChatCompletionMessageParamUnion, 0, len(prompt.History)+2)
	if prompt.System != "" {
		msgs = append(msgs, openai.SystemMessage(prompt.System))
	}
	for _, h := range prompt.History {
		switch h.Role {
		case "assistant":
			msgs = append(msgs, openai.ChatCompletionMessageParamOfAssistant(h.Content))
		default:
			msgs = append(msgs, openai.UserMessage(h.Content))
		}
	}
	msgs = append(msgs, openai.UserMessage(prompt.User))

	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(o.model),
		Messages: msgs,
	}
	if o.temperature > 0 {
		params.Temperature = openai.Float(o.temperature)
	}

	resp, err := client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", classify(err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: empty choices", apperr.ErrUpstreamUnavailable)
	}
	return resp.Choices[0].Message.Content, nil
}

// classify maps API errors onto the upstream failure taxonomy.
func classify(err error) error {
	var apierr *openai.Error
	if errors.As(err, &apierr) {
		switch apierr.StatusCode {
		case 401, 403:
			return fmt.Errorf("%w: %v", apperr.ErrUpstreamAuth, err)
		case 429:
			return fmt.Errorf("%w: %v", apperr.ErrUpstreamRateLimited, err)
		}
	}
	return fmt.Errorf("%w: %v", apperr.ErrUpstreamUnavailable, err)
}
