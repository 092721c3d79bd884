package platform

import (
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// NewLLMClient builds the chat-completion client. An empty base URL keeps the
// library default endpoint.
func NewLLMClient(baseURL, apiKey string) *openai.Client {
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	return openai.NewClient(opts...)
}
