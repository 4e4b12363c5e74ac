package httpadapter

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mkuznet/shop-assistant/internal/config"
	"github.com/mkuznet/shop-assistant/internal/core/ports"
	"github.com/mkuznet/shop-assistant/internal/observability/metrics"
)

type Router struct {
	cfg      config.Config
	chat     ports.ConversationService
	queue    ports.MessageQueue
	reloader ports.ModelReloader
	metrics  *metrics.HTTPServerMetrics
}

func NewRouter(
	cfg config.Config,
	chat ports.ConversationService,
	queue ports.MessageQueue,
	reloader ports.ModelReloader,
) *Router {
	return &Router{
		cfg:      cfg,
		chat:     chat,
		queue:    queue,
		reloader: reloader,
	}
}

// WithMetrics attaches the Prometheus registry: enables /metrics and the
// request/chat instrumentation.
func (rt *Router) WithMetrics(m *metrics.HTTPServerMetrics) *Router {
	rt.metrics = m
	return rt
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", rt.healthz)
	mux.HandleFunc("/v1/chat", rt.postChat)
	mux.HandleFunc("/v1/admin/retrain", rt.postRetrain)
	mux.HandleFunc("/v1/admin/reload", rt.postReload)
	if rt.metrics != nil {
		mux.Handle("/metrics", rt.metrics.Handler())
	}

	var handler http.Handler = mux
	if rt.metrics != nil {
		handler = rt.metrics.Middleware("api", handler)
	}
	if rt.cfg.APIMaxInFlight > 0 {
		handler = backpressureMiddleware(handler, rt.cfg.APIMaxInFlight, 100*time.Millisecond)
	}
	if rt.cfg.APIRateLimitRPS > 0 {
		handler = rateLimitMiddleware(handler, rt.cfg.APIRateLimitRPS, rt.cfg.APIRateLimitBurst)
	}
	return requestIDMiddleware(accessLogMiddleware(handler))
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (rt *Router) postChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	var req struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "message is required"})
		return
	}

	start := time.Now()
	reply, err := rt.chat.Handle(r.Context(), req.Message)
	if err != nil {
		writeJSON(w, mapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
		return
	}
	if rt.metrics != nil {
		rt.metrics.RecordChatReply("api", string(reply.Intent), time.Since(start))
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"reply":  reply.Text,
		"intent": string(reply.Intent),
	})
}

func (rt *Router) postRetrain(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}
	if rt.queue == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "retrain queue is not configured"})
		return
	}

	jobID := uuid.NewString()
	if err := rt.queue.PublishRetrainRequested(r.Context(), jobID); err != nil {
		writeJSON(w, mapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
		return
	}
	if rt.metrics != nil {
		rt.metrics.RecordRetrainRequested("api")
	}

	writeJSON(w, http.StatusAccepted, map[string]string{"job_id": jobID})
}

func (rt *Router) postReload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}
	if rt.reloader == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "model reloader is not configured"})
		return
	}

	if err := rt.reloader.Reload(r.Context()); err != nil {
		writeJSON(w, mapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "reloaded"})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
