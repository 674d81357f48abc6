// Package llm talks to a local Ollama server over its REST API.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/xid"

	"github.com/devcoach/devcoach/internal/config"
	"github.com/devcoach/devcoach/internal/logger"
)

// TranscriptDir is where prompt/response transcripts are written when
// transcript logging is enabled.
const TranscriptDir = ".devcoach/logs"

// Client is an Ollama API client bound to a resolved model configuration.
type Client struct {
	cfg         config.ResolvedLLM
	httpClient  *http.Client
	transcripts bool
}

// New creates a client for the given resolved configuration.
func New(cfg config.ResolvedLLM) *Client {
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout(),
		},
	}
}

// WithTranscripts enables writing each prompt and response pair to a file
// under .devcoach/logs/.
func (c *Client) WithTranscripts() *Client {
	c.transcripts = true
	return c
}

// Model returns the configured model name.
func (c *Client) Model() string {
	return c.cfg.Model
}

// BaseURL returns the server base URL.
func (c *Client) BaseURL() string {
	return c.cfg.BaseURL()
}

type tagsResponse struct {
	Models []struct {
		Name string `json:"name"`
	} `json:"models"`
}

// Ping checks connectivity and returns the model names the server has
// available.
func (c *Client) Ping(ctx context.Context) ([]string, error) {
	url := c.cfg.BaseURL() + "/api/tags"
	logger.Debug("pinging ollama at %s", url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ollama unreachable at %s: %w", c.cfg.BaseURL(), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, httpError(resp)
	}

	var tags tagsResponse
	if err := json.NewDecoder(resp.Body).Decode(&tags); err != nil {
		return nil, fmt.Errorf("decode /api/tags response: %w", err)
	}

	names := make([]string, 0, len(tags.Models))
	for _, m := range tags.Models {
		names = append(names, m.Name)
	}
	return names, nil
}

type generateRequest struct {
	Model   string          `json:"model"`
	Prompt  string          `json:"prompt"`
	Stream  bool            `json:"stream"`
	Options generateOptions `json:"options"`
}

type generateOptions struct {
	Temperature float64 `json:"temperature"`
	TopP        float64 `json:"top_p"`
}

type generateResponse struct {
	Response string `json:"response"`
}

// Generate sends a prompt to /api/generate and returns the full response
// text. Streaming is disabled so the answer arrives as one document.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	logger.Info("generating with model %s (%d byte prompt)", c.cfg.Model, len(prompt))

	body, err := json.Marshal(generateRequest{
		Model:  c.cfg.Model,
		Prompt: prompt,
		Stream: false,
		Options: generateOptions{
			Temperature: 0.7,
			TopP:        0.9,
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshal generate request: %w", err)
	}

	resp, err := c.post(ctx, "/api/generate", body)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", httpError(resp)
	}

	var result generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decode /api/generate response: %w", err)
	}

	c.writeTranscript("generate", prompt, result.Response)
	return result.Response, nil
}

// Message is a single chat turn.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
	Stream   bool      `json:"stream"`
}

type chatResponse struct {
	Message *Message `json:"message"`
}

// Chat sends a single user message to /api/chat and returns the assistant
// reply content.
func (c *Client) Chat(ctx context.Context, prompt string) (string, error) {
	logger.Info("chatting with model %s (%d byte prompt)", c.cfg.Model, len(prompt))

	body, err := json.Marshal(chatRequest{
		Model:    c.cfg.Model,
		Messages: []Message{{Role: "user", Content: prompt}},
		Stream:   false,
	})
	if err != nil {
		return "", fmt.Errorf("marshal chat request: %w", err)
	}

	resp, err := c.post(ctx, "/api/chat", body)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", httpError(resp)
	}

	var result chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decode /api/chat response: %w", err)
	}
	if result.Message == nil {
		return "", fmt.Errorf("ollama chat response contained no message")
	}

	c.writeTranscript("chat", prompt, result.Message.Content)
	return result.Message.Content, nil
}

func (c *Client) post(ctx context.Context, path string, body []byte) (*http.Response, error) {
	url := c.cfg.BaseURL() + path
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to %s failed: %w", url, err)
	}
	return resp, nil
}

// httpError reads a snippet of the error body so model-not-found and
// similar server errors stay actionable.
func httpError(resp *http.Response) error {
	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	text := strings.TrimSpace(string(snippet))
	if text == "" {
		return fmt.Errorf("ollama returned HTTP %d", resp.StatusCode)
	}
	return fmt.Errorf("ollama returned HTTP %d: %s", resp.StatusCode, text)
}

// writeTranscript persists the prompt/response pair for later inspection.
// Failures are logged and otherwise ignored.
func (c *Client) writeTranscript(kind, prompt, response string) {
	if !c.transcripts {
		return
	}
	if err := os.MkdirAll(TranscriptDir, 0o755); err != nil {
		logger.Warn("create transcript dir: %v", err)
		return
	}
	path := filepath.Join(TranscriptDir, fmt.Sprintf("%s-%s.md", kind, xid.New().String()))
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "# %s (%s)\n\n## Prompt\n\n%s\n\n## Response\n\n%s\n", kind, c.cfg.Model, prompt, response)
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		logger.Warn("write transcript %s: %v", path, err)
	}
}
