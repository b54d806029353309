package claude

import (
	"context"
	"fmt"

	anthropic "github.com/liushuangls/go-anthropic/v2"

	"github.com/obeidat/fahs/internal/ai"
)

// Adapter implements ai.Assistant against the Anthropic Messages API.
type Adapter struct {
	client *anthropic.Client
	model  anthropic.Model
}

// New creates an Anthropic-backed assistant. Extra options are forwarded to
// the client (tests use this to point at a local server).
func New(apiKey, model string, opts ...anthropic.ClientOption) *Adapter {
	return &Adapter{
		client: anthropic.NewClient(apiKey, opts...),
		model:  anthropic.Model(model),
	}
}

// 1024 tokens comfortably covers a multi-paragraph summary; defect
// descriptions are one or two sentences.
const maxTokens = 1024

func (a *Adapter) SummarizeFindings(ctx context.Context, findings []ai.FailedFinding) (string, error) {
	resp, err := a.client.CreateMessages(ctx, anthropic.MessagesRequest{
		Model:     a.model,
		MaxTokens: maxTokens,
		Messages: []anthropic.Message{
			anthropic.NewUserTextMessage(ai.SummaryPrompt(findings)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to call claude: %w", err)
	}
	return firstText(resp)
}

func (a *Adapter) DescribeDefect(ctx context.Context, image []byte, mimeType, point string) (string, error) {
	resp, err := a.client.CreateMessages(ctx, anthropic.MessagesRequest{
		Model:     a.model,
		MaxTokens: maxTokens,
		Messages: []anthropic.Message{
			{
				Role: anthropic.RoleUser,
				Content: []anthropic.MessageContent{
					anthropic.NewImageMessageContent(
						anthropic.NewMessageContentSource(
							anthropic.MessagesContentSourceTypeBase64, mimeType, image)),
					anthropic.NewTextMessageContent(ai.DescribePrompt(point)),
				},
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to call claude: %w", err)
	}
	return firstText(resp)
}

func firstText(resp anthropic.MessagesResponse) (string, error) {
	for _, content := range resp.Content {
		if t := content.GetText(); t != "" {
			return ai.Clean(t), nil
		}
	}
	return "", fmt.Errorf("claude returned no text content")
}
