package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devcoach/devcoach/internal/config"
)

func clientFor(t *testing.T, srv *httptest.Server) *Client {
	t.Helper()
	u, err := url.Parse(srv.URL)
	require.NoError(t, err)
	port, err := strconv.Atoi(u.Port())
	require.NoError(t, err)
	return New(config.ResolvedLLM{
		Host:      u.Hostname(),
		Port:      port,
		Model:     "test-model",
		TimeoutMS: 5000,
	})
}

func TestPing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/tags", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"models": []map[string]string{
				{"name": "deepseek-coder:6.7b"},
				{"name": "llama3:8b"},
			},
		})
	}))
	defer srv.Close()

	models, err := clientFor(t, srv).Ping(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"deepseek-coder:6.7b", "llama3:8b"}, models)
}

func TestPingUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	_, err := clientFor(t, srv).Ping(context.Background())
	assert.ErrorContains(t, err, "unreachable")
}

func TestGenerate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/generate", r.URL.Path)

		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "test-model", req["model"])
		assert.Equal(t, "hello", req["prompt"])
		assert.Equal(t, false, req["stream"])

		json.NewEncoder(w).Encode(map[string]string{"response": `{"user_stories": []}`})
	}))
	defer srv.Close()

	out, err := clientFor(t, srv).Generate(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, `{"user_stories": []}`, out)
}

func TestGenerateServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"model 'test-model' not found"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := clientFor(t, srv).Generate(context.Background(), "hello")
	require.Error(t, err)
	assert.ErrorContains(t, err, "HTTP 404")
	assert.ErrorContains(t, err, "not found")
}

func TestChat(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chat", r.URL.Path)

		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		msgs := req["messages"].([]any)
		require.Len(t, msgs, 1)
		assert.Equal(t, "user", msgs[0].(map[string]any)["role"])

		json.NewEncoder(w).Encode(map[string]any{
			"message": map[string]string{"role": "assistant", "content": "hi there"},
		})
	}))
	defer srv.Close()

	out, err := clientFor(t, srv).Chat(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, "hi there", out)
}

func TestChatMissingMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{})
	}))
	defer srv.Close()

	_, err := clientFor(t, srv).Chat(context.Background(), "hello")
	assert.ErrorContains(t, err, "no message")
}
