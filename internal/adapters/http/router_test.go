package httpadapter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mkuznet/shop-assistant/internal/config"
	"github.com/mkuznet/shop-assistant/internal/core/domain"
)

type chatFake struct {
	reply domain.Reply
	err   error
}

func (f chatFake) Handle(context.Context, string) (domain.Reply, error) {
	return f.reply, f.err
}

type queueFake struct {
	published []string
	err       error
}

func (f *queueFake) PublishRetrainRequested(_ context.Context, jobID string) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, jobID)
	return nil
}

func (f *queueFake) SubscribeRetrainRequested(context.Context, func(context.Context, string) error) error {
	return nil
}

type reloaderFake struct {
	err   error
	calls int
}

func (f *reloaderFake) Reload(context.Context) error {
	f.calls++
	return f.err
}

func newTestHandler(cfg config.Config) http.Handler {
	return newTestRouter(cfg).Handler()
}

func newTestRouter(cfg config.Config) *Router {
	return NewRouter(
		cfg,
		chatFake{reply: domain.Reply{Text: "Hi there!", Intent: domain.IntentGreeting}},
		&queueFake{},
		&reloaderFake{},
	)
}

func postJSON(t *testing.T, handler http.Handler, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)
	return res
}

func TestHealthz(t *testing.T) {
	handler := newTestHandler(config.Config{})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}
	if res.Header().Get("X-Request-Id") == "" {
		t.Fatalf("expected request id header")
	}
}

func TestChatReturnsReplyAndIntent(t *testing.T) {
	handler := newTestHandler(config.Config{})

	res := postJSON(t, handler, "/v1/chat", map[string]string{"message": "hello"})
	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}

	var resp map[string]string
	if err := json.NewDecoder(res.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["reply"] != "Hi there!" {
		t.Fatalf("unexpected reply %q", resp["reply"])
	}
	if resp["intent"] != "greeting" {
		t.Fatalf("unexpected intent %q", resp["intent"])
	}
}

func TestChatEmptyMessageReturns400(t *testing.T) {
	handler := newTestHandler(config.Config{})

	res := postJSON(t, handler, "/v1/chat", map[string]string{"message": "  "})
	if res.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.Code)
	}
}

func TestChatMapsInvalidInputTo400(t *testing.T) {
	handler := NewRouter(
		config.Config{},
		chatFake{err: domain.WrapError(domain.ErrInvalidInput, "handle", errors.New("bad utterance"))},
		&queueFake{},
		&reloaderFake{},
	).Handler()

	res := postJSON(t, handler, "/v1/chat", map[string]string{"message": "x"})
	if res.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.Code)
	}
}

func TestChatRejectsGet(t *testing.T) {
	handler := newTestHandler(config.Config{})

	req := httptest.NewRequest(http.MethodGet, "/v1/chat", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)
	if res.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", res.Code)
	}
}

func TestRetrainPublishesJob(t *testing.T) {
	queue := &queueFake{}
	handler := NewRouter(config.Config{}, chatFake{}, queue, &reloaderFake{}).Handler()

	res := postJSON(t, handler, "/v1/admin/retrain", map[string]string{})
	if res.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d", res.Code)
	}
	if len(queue.published) != 1 {
		t.Fatalf("expected 1 published job, got %d", len(queue.published))
	}

	var resp map[string]string
	if err := json.NewDecoder(res.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["job_id"] != queue.published[0] {
		t.Fatalf("job id mismatch: %q vs %q", resp["job_id"], queue.published[0])
	}
}

func TestRetrainQueueFailureMapsTemporaryTo503(t *testing.T) {
	queue := &queueFake{err: domain.WrapError(domain.ErrTemporary, "nats publish", errors.New("no servers"))}
	handler := NewRouter(config.Config{}, chatFake{}, queue, &reloaderFake{}).Handler()

	res := postJSON(t, handler, "/v1/admin/retrain", map[string]string{})
	if res.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", res.Code)
	}
}

func TestReloadSwapsModel(t *testing.T) {
	reloader := &reloaderFake{}
	handler := NewRouter(config.Config{}, chatFake{}, &queueFake{}, reloader).Handler()

	res := postJSON(t, handler, "/v1/admin/reload", map[string]string{})
	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}
	if reloader.calls != 1 {
		t.Fatalf("expected 1 reload call, got %d", reloader.calls)
	}
}

func TestReloadMissingArtifactReturns503(t *testing.T) {
	reloader := &reloaderFake{err: domain.WrapError(domain.ErrDataUnavailable, "open model artifact", errors.New("no such file"))}
	handler := NewRouter(config.Config{}, chatFake{}, &queueFake{}, reloader).Handler()

	res := postJSON(t, handler, "/v1/admin/reload", map[string]string{})
	if res.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", res.Code)
	}
}
