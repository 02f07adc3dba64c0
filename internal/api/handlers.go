package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/Pollis22/JIE-Mastery-Tutor-V2-sub001/internal/auth"
	"github.com/Pollis22/JIE-Mastery-Tutor-V2-sub001/internal/config"
	"github.com/Pollis22/JIE-Mastery-Tutor-V2-sub001/internal/events"
	"github.com/Pollis22/JIE-Mastery-Tutor-V2-sub001/internal/pipeline"
)

type Handlers struct {
	cfg config.Config
	mgr *pipeline.Manager
	ev  *events.Store
}

func NewHandlers(cfg config.Config, mgr *pipeline.Manager, ev *events.Store) *Handlers {
	return &Handlers{cfg: cfg, mgr: mgr, ev: ev}
}

func (h *Handlers) HandleCreateSession(w http.ResponseWriter, r *http.Request) {
	id := uuid.New().String()
	h.mgr.StartSession(id)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"session_id": id,
	})
}

func (h *Handlers) HandleEndSession(w http.ResponseWriter, r *http.Request, id string) {
	if !h.mgr.Has(id) {
		http.NotFound(w, r)
		return
	}
	h.mgr.EndSession(id)

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"ok": true})
}

func (h *Handlers) HandleListEvents(w http.ResponseWriter, r *http.Request, id string) {
	if !h.mgr.Has(id) {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"session_id": id,
		"events":     h.ev.List(id),
	})
}

// HandleMintPipelineToken issues a short-lived bearer token the pipeline
// presents when opening its websocket for the session.
func (h *Handlers) HandleMintPipelineToken(w http.ResponseWriter, r *http.Request, id string) {
	if !h.mgr.Has(id) {
		http.NotFound(w, r)
		return
	}
	if h.cfg.Pipeline.TokenSecret == "" {
		http.Error(w, "pipeline auth not configured", http.StatusBadRequest)
		return
	}
	exp := time.Now().Add(time.Hour).Unix()
	token := auth.GeneratePipelineToken(h.cfg.Pipeline.TokenSecret, id, exp)

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"token": token,
		"exp":   exp,
	})
}
