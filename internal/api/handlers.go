// Package api exposes the conversational backend over HTTP.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/adecos/ads-copilot/internal/agent"
	"github.com/adecos/ads-copilot/internal/pkg/httputil"
	"github.com/adecos/ads-copilot/internal/pkg/logger"
)

// genericApology is returned when a strategy dependency failed and no
// strategy-local fallback applied. The caller still receives a valid
// Response shape with HTTP 200.
const genericApology = "Xin lỗi, đã có lỗi xảy ra khi xử lý yêu cầu của bạn. Bạn thử lại sau nhé."

// ChatService is the conversational surface the handlers depend on.
type ChatService interface {
	Respond(ctx context.Context, messages []agent.Message) (agent.Response, error)
	Research(ctx context.Context, niche string) agent.Response
}

// Handlers holds the HTTP handlers for the chat API.
type Handlers struct {
	copilot ChatService
}

// NewHandlers creates the handler set.
func NewHandlers(copilot ChatService) *Handlers {
	return &Handlers{copilot: copilot}
}

// HealthCheck reports service liveness.
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	httputil.OK(w, map[string]string{
		"status":  "ok",
		"service": "ads-copilot",
	})
}

type chatRequest struct {
	Messages []agent.Message `json:"messages"`
}

type researchRequest struct {
	Niche string `json:"niche"`
}

// Chat handles POST /api/chat: one conversation in, one Response out.
func (h *Handlers) Chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if !httputil.Decode(w, r, &req) {
		return
	}
	if len(req.Messages) == 0 {
		httputil.BadRequest(w, "messages must not be empty")
		return
	}

	h.respond(w, r, req.Messages, "application/json")
}

// ChatStream handles POST /api/chat/stream. The transport is declared
// stream-capable but the contract is a single buffered JSON object, so
// only the content type differs from Chat.
func (h *Handlers) ChatStream(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if !httputil.Decode(w, r, &req) {
		return
	}
	if len(req.Messages) == 0 {
		httputil.BadRequest(w, "messages must not be empty")
		return
	}

	h.respond(w, r, req.Messages, "application/x-ndjson")
}

// ResearchStream handles POST /api/research/stream: direct program
// research for a niche, bypassing intent classification.
func (h *Handlers) ResearchStream(w http.ResponseWriter, r *http.Request) {
	var req researchRequest
	if !httputil.Decode(w, r, &req) {
		return
	}
	if req.Niche == "" {
		httputil.BadRequest(w, "niche must not be empty")
		return
	}

	resp := h.copilot.Research(r.Context(), req.Niche)
	writeResponse(w, resp, "application/x-ndjson")
}

func (h *Handlers) respond(w http.ResponseWriter, r *http.Request, messages []agent.Message, contentType string) {
	requestID := uuid.New().String()

	resp, err := h.copilot.Respond(r.Context(), messages)
	if err != nil {
		// The outermost invariant: the caller always gets a valid
		// Response shape, never an HTTP error, for strategy failures.
		logger.Error("chat request failed", "request_id", requestID, "error", err)
		resp = agent.TextResponse(genericApology)
	}

	logger.Info("chat request complete", "request_id", requestID, "type", string(resp.Type))
	writeResponse(w, resp, contentType)
}

func writeResponse(w http.ResponseWriter, resp agent.Response, contentType string) {
	if contentType == "application/json" {
		httputil.OK(w, resp)
		return
	}
	// Stream endpoints keep the ndjson content type for frontend
	// compatibility, but emit exactly one JSON object.
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logger.Error("response encode failed", "error", err)
	}
}
