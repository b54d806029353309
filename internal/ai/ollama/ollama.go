package ollama

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/obeidat/fahs/internal/ai"
)

// Adapter implements ai.Assistant against a local Ollama instance.
type Adapter struct {
	host   string
	model  string
	client *http.Client
}

func New(host, model string) *Adapter {
	return &Adapter{
		host:   host,
		model:  model,
		client: &http.Client{},
	}
}

func (a *Adapter) SummarizeFindings(ctx context.Context, findings []ai.FailedFinding) (string, error) {
	return a.generate(ctx, ai.SummaryPrompt(findings), nil)
}

func (a *Adapter) DescribeDefect(ctx context.Context, image []byte, mimeType, point string) (string, error) {
	encoded := base64.StdEncoding.EncodeToString(image)
	return a.generate(ctx, ai.DescribePrompt(point), []string{encoded})
}

func (a *Adapter) generate(ctx context.Context, prompt string, images []string) (string, error) {
	reqBody := map[string]any{
		"model":  a.model,
		"prompt": prompt,
		"stream": false,
	}
	if len(images) > 0 {
		reqBody["images"] = images
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.host+"/api/generate", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to call ollama: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			slog.Error("failed to close ollama response body", "error", err)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		errBody, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("ollama returned status %d: %s", resp.StatusCode, errBody)
	}

	var respBody struct {
		Response string `json:"response"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&respBody); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	return ai.Clean(respBody.Response), nil
}
