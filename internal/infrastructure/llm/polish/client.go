package polish

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mkuznet/shop-assistant/internal/infrastructure/resilience"
)

// Client rephrases drafted replies through an Ollama-compatible generate
// endpoint. Polishing is best effort: callers keep the draft when any call
// fails.
type Client struct {
	baseURL    string
	model      string
	httpClient *http.Client
	executor   *resilience.Executor
}

func New(baseURL, model string, executor *resilience.Executor) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		model:      model,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		executor:   executor,
	}
}

func (c *Client) Polish(ctx context.Context, question, draft string) (string, error) {
	prompt := buildPolishPrompt(question, draft)

	var polished string
	call := func(ctx context.Context) error {
		out, err := c.generate(ctx, prompt)
		if err != nil {
			return err
		}
		polished = out
		return nil
	}

	var err error
	if c.executor != nil {
		err = c.executor.Execute(ctx, "llm.polish", call, classifyPolishError)
	} else {
		err = call(ctx)
	}
	if err != nil {
		return "", wrapTemporaryIfNeeded("llm polish", err)
	}
	if polished == "" {
		return draft, nil
	}
	return polished, nil
}

func buildPolishPrompt(question, draft string) string {
	return fmt.Sprintf(`You are a polite customer support assistant for an online electronics store.
Rewrite the draft reply so it directly answers the customer, in at most three sentences.
Keep every fact, number and product name from the draft. Do not invent information.
Return only the rewritten reply, no preamble.

Customer message: %s

Draft reply: %s`, question, draft)
}

func (c *Client) generate(ctx context.Context, prompt string) (string, error) {
	reqBody := map[string]any{
		"model":  c.model,
		"prompt": prompt,
		"stream": false,
	}
	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal generate request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create generate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("generate request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return "", &HTTPStatusError{
			Operation:  "generate",
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       string(raw),
		}
	}

	var response struct {
		Response string `json:"response"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return "", fmt.Errorf("decode generate response: %w", err)
	}
	return strings.TrimSpace(response.Response), nil
}
