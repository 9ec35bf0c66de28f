package openairesp_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bigimanishi-bit/tarot-app-sub000/internal/adapters/llm/openairesp"
	"github.com/bigimanishi-bit/tarot-app-sub000/internal/domain"
	"github.com/bigimanishi-bit/tarot-app-sub000/internal/ports"
)

func testMessages() []ports.Message {
	return []ports.Message{
		{Role: ports.RoleSystem, Content: "あなたは鑑定士です。"},
		{Role: ports.RoleUser, Content: "現状：愚者\n課題：死神\n助言：星"},
	}
}

func TestComplete_FlatOutputText(t *testing.T) {
	var gotReq map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/responses", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &gotReq)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"output_text": "静かな一日になりそうです。",
		})
	}))
	defer srv.Close()

	client := openairesp.NewClient(srv.Client(), "test-key", srv.URL, "test-model", slog.Default())

	text, err := client.Complete(context.Background(), testMessages())
	require.NoError(t, err)
	assert.Equal(t, "静かな一日になりそうです。", text)

	assert.Equal(t, "test-model", gotReq["model"])
	input, ok := gotReq["input"].([]any)
	require.True(t, ok)
	require.Len(t, input, 2)
	first, _ := input[0].(map[string]any)
	assert.Equal(t, "system", first["role"])
}

func TestComplete_NestedOutputFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"output": []map[string]any{
				{
					"type": "message",
					"content": []map[string]any{
						{"type": "output_text", "text": "流れは穏やかです。"},
					},
				},
			},
		})
	}))
	defer srv.Close()

	client := openairesp.NewClient(srv.Client(), "key", srv.URL, "model", slog.Default())

	text, err := client.Complete(context.Background(), testMessages())
	require.NoError(t, err)
	assert.Equal(t, "流れは穏やかです。", text)
}

func TestComplete_FlatShapePreferredOverNested(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"output_text": "flat",
			"output": []map[string]any{
				{"type": "message", "content": []map[string]any{{"type": "output_text", "text": "nested"}}},
			},
		})
	}))
	defer srv.Close()

	client := openairesp.NewClient(srv.Client(), "key", srv.URL, "model", slog.Default())

	text, err := client.Complete(context.Background(), testMessages())
	require.NoError(t, err)
	assert.Equal(t, "flat", text)
}

func TestComplete_UpstreamStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"message":"boom"}}`))
	}))
	defer srv.Close()

	client := openairesp.NewClient(srv.Client(), "key", srv.URL, "model", slog.Default())

	_, err := client.Complete(context.Background(), testMessages())
	assert.ErrorIs(t, err, domain.ErrUpstreamLLM)
}

func TestComplete_ErrorField(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"error":{"message":"quota exceeded"}}`))
	}))
	defer srv.Close()

	client := openairesp.NewClient(srv.Client(), "key", srv.URL, "model", slog.Default())

	_, err := client.Complete(context.Background(), testMessages())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUpstreamLLM)
	assert.Contains(t, err.Error(), "quota exceeded")
}

func TestComplete_NoUsableText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"output_text":"","output":[]}`))
	}))
	defer srv.Close()

	client := openairesp.NewClient(srv.Client(), "key", srv.URL, "model", slog.Default())

	_, err := client.Complete(context.Background(), testMessages())
	assert.ErrorIs(t, err, domain.ErrEmptyCompletion)
}
