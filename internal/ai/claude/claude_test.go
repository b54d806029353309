package claude

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	anthropic "github.com/liushuangls/go-anthropic/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obeidat/fahs/internal/ai"
)

func fakeAnthropic(t *testing.T, text string, capture *map[string]any) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if capture != nil {
			require.NoError(t, json.NewDecoder(r.Body).Decode(capture))
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":    "msg_test",
			"type":  "message",
			"role":  "assistant",
			"model": "claude-3-5-haiku-latest",
			"content": []map[string]any{
				{"type": "text", "text": text},
			},
		})
	}))
}

func TestSummarizeFindings(t *testing.T) {
	var req map[string]any
	srv := fakeAnthropic(t, "Here is the summary:\nPlumbing defects dominate this unit.", &req)
	defer srv.Close()

	a := New("test-key", "claude-3-5-haiku-latest", anthropic.WithBaseURL(srv.URL))
	out, err := a.SummarizeFindings(context.Background(), []ai.FailedFinding{
		{Area: "Kitchen", Category: "Plumbing", Point: "Sink", Comments: "Leak"},
	})
	require.NoError(t, err)

	// Preamble line stripped by ai.Clean.
	assert.Equal(t, "Plumbing defects dominate this unit.", out)
	assert.Equal(t, "claude-3-5-haiku-latest", req["model"])
}

func TestDescribeDefectSendsImageBlock(t *testing.T) {
	var req map[string]any
	srv := fakeAnthropic(t, "Corroded trap joint visible under the sink.", &req)
	defer srv.Close()

	a := New("test-key", "claude-3-5-haiku-latest", anthropic.WithBaseURL(srv.URL))
	out, err := a.DescribeDefect(context.Background(), []byte{0xFF, 0xD8, 0xFF}, "image/jpeg", "Sink")
	require.NoError(t, err)
	assert.Equal(t, "Corroded trap joint visible under the sink.", out)

	messages, ok := req["messages"].([]any)
	require.True(t, ok)
	require.Len(t, messages, 1)
	content := messages[0].(map[string]any)["content"].([]any)
	require.Len(t, content, 2)
	assert.Equal(t, "image", content[0].(map[string]any)["type"])
	assert.Equal(t, "text", content[1].(map[string]any)["type"])
}

func TestErrorPropagates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"type":  "error",
			"error": map[string]string{"type": "api_error", "message": "overloaded"},
		})
	}))
	defer srv.Close()

	a := New("test-key", "claude-3-5-haiku-latest", anthropic.WithBaseURL(srv.URL))
	_, err := a.SummarizeFindings(context.Background(), nil)
	assert.Error(t, err)
}
