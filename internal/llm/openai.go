package llm

import (
	"context"
	"errors"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// OpenAIModel is a Model backed by the Chat Completions API, grounded on
// ai/extensions/models/openai's api.go client-construction pattern
// (openai.NewClient(opts...) then client.Chat.Completions.New).
type OpenAIModel struct {
	client openai.Client
	model  string
}

// NewOpenAIModel builds an OpenAIModel for the given chat model name. apiKey
// may be empty to fall back to the SDK's default environment lookup.
func NewOpenAIModel(apiKey, modelName string, extraOpts ...option.RequestOption) (*OpenAIModel, error) {
	if modelName == "" {
		return nil, errors.New("llm: model name is required")
	}

	opts := make([]option.RequestOption, 0, len(extraOpts)+1)
	if apiKey != "" {
		opts = append(opts, option.WithAPIKey(apiKey))
	}
	opts = append(opts, extraOpts...)

	return &OpenAIModel{
		client: openai.NewClient(opts...),
		model:  modelName,
	}, nil
}

func (m *OpenAIModel) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := m.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: m.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("llm: empty completion")
	}
	return resp.Choices[0].Message.Content, nil
}
