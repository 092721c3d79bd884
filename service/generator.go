package service

import (
	"context"
	"errors"

	"github.com/openai/openai-go"

	"gochat/model"
)

const systemPrompt = "You are a helpful assistant chatbot."

// Fixed sampling settings for every generation call.
const (
	genTemperature = 0.7
	genMaxTokens   = 500
)

// OpenAIGenerator is the production Generator: one blocking, non-streaming
// chat-completion call per turn.
type OpenAIGenerator struct {
	client    *openai.Client
	modelName string
}

func NewOpenAIGenerator(client *openai.Client, modelName string) *OpenAIGenerator {
	return &OpenAIGenerator{client: client, modelName: modelName}
}

func (g *OpenAIGenerator) Generate(ctx context.Context, turns []model.Turn) (string, error) {
	params := openai.ChatCompletionNewParams{
		Messages:    openai.F([]openai.ChatCompletionMessageParamUnion{}),
		Model:       openai.F(g.modelName),
		Temperature: openai.F(genTemperature),
		MaxTokens:   openai.F(int64(genMaxTokens)),
	}

	messages := append([]model.Turn{{Role: "system", Content: systemPrompt}}, turns...)
	for _, message := range messages {
		var content any = message.Content
		params.Messages.Value = append(params.Messages.Value, openai.ChatCompletionMessageParam{
			Role:    openai.F(openai.ChatCompletionMessageParamRole(message.Role)),
			Content: openai.F(content),
		})
	}

	completion, err := g.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", err
	}
	if len(completion.Choices) == 0 {
		return "", errors.New("no completion choices returned")
	}
	return completion.Choices[0].Message.Content, nil
}
