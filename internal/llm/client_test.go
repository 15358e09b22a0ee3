package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClientNormalizesURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"http://localhost:11434", "http://localhost:11434"},
		{"http://localhost:11434/", "http://localhost:11434"},
		{"http://localhost:11434/v1", "http://localhost:11434"},
		{"http://localhost:11434/v1/", "http://localhost:11434"},
		{"http://localhost:11434/v1/chat/completions", "http://localhost:11434"},
	}

	for _, tt := range tests {
		c := NewClient(tt.in, "m", time.Second)
		assert.Equal(t, tt.want, c.baseURL, "input %q", tt.in)
	}
}

func TestNewClientDefaults(t *testing.T) {
	t.Setenv("OLLAMA_HOST", "")
	c := NewClient("", "m", 0)

	assert.Equal(t, defaultBaseURL, c.baseURL)
	assert.Equal(t, 120*time.Second, c.Timeout())
}

func TestNewClientOllamaHostEnv(t *testing.T) {
	t.Setenv("OLLAMA_HOST", "http://10.0.0.2:11434/")
	c := NewClient("", "m", time.Second)

	assert.Equal(t, "http://10.0.0.2:11434", c.baseURL)
}

func TestGenerate(t *testing.T) {
	var gotPath string
	var gotReq chatRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": "feat: do the thing"}},
			},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "qwen2.5-coder", time.Second)
	out, err := c.Generate(context.Background(), "the prompt")

	require.NoError(t, err)
	assert.Equal(t, "feat: do the thing", out)
	assert.Equal(t, "/v1/chat/completions", gotPath)
	assert.Equal(t, "qwen2.5-coder", gotReq.Model)
	assert.False(t, gotReq.Stream)
	require.Len(t, gotReq.Messages, 1)
	assert.Equal(t, "user", gotReq.Messages[0].Role)
	assert.Equal(t, "the prompt", gotReq.Messages[0].Content)
}

func TestGenerateStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": "model not found"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "missing", time.Second)
	_, err := c.Generate(context.Background(), "p")

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
}

func TestGenerateUnreachable(t *testing.T) {
	c := NewClient("http://127.0.0.1:1", "m", 200*time.Millisecond)
	_, err := c.Generate(context.Background(), "p")

	var unreachable *UnreachableError
	require.ErrorAs(t, err, &unreachable)
}

func TestGenerateEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "m", time.Second)
	_, err := c.Generate(context.Background(), "p")

	assert.Error(t, err)
}

func TestPing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/models", r.URL.Path)
		w.Write([]byte(`{"data": []}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "m", time.Second)
	assert.NoError(t, c.Ping(context.Background()))
}

func TestPingDown(t *testing.T) {
	c := NewClient("http://127.0.0.1:1", "m", 200*time.Millisecond)
	assert.Error(t, c.Ping(context.Background()))
}
