// Package wsgateway exposes the echo core to the hosting voice pipeline over
// a websocket: timing/text events in, verdicts out, one connection per
// session, events applied strictly in arrival order.
package wsgateway

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	ws "nhooyr.io/websocket"

	"github.com/Pollis22/JIE-Mastery-Tutor-V2-sub001/internal/auth"
	"github.com/Pollis22/JIE-Mastery-Tutor-V2-sub001/internal/config"
	"github.com/Pollis22/JIE-Mastery-Tutor-V2-sub001/internal/events"
	"github.com/Pollis22/JIE-Mastery-Tutor-V2-sub001/internal/pipeline"
)

// EventMessage is one pipeline event. Text carries the tutor utterance or the
// recognized transcript, depending on Type.
type EventMessage struct {
	Type string `json:"type"` // playback_start | playback_end | agent_utterance | transcript_final | vad_start
	TsMs int64  `json:"ts_ms,omitempty"`
	Text string `json:"text,omitempty"`
}

// VerdictMessage answers the two verdict-bearing events.
type VerdictMessage struct {
	Type             string  `json:"type"` // echo_verdict | barge_in_verdict
	SessionID        string  `json:"session_id"`
	IsEcho           bool    `json:"is_echo"`
	Allowed          bool    `json:"allowed"`
	Similarity       float64 `json:"similarity,omitempty"`
	MatchedUtterance string  `json:"matched_utterance,omitempty"`
	DeltaMs          int64   `json:"delta_ms,omitempty"`
	Reason           string  `json:"reason"`
}

type Server struct {
	Cfg config.Config
	Mgr *pipeline.Manager
	Ev  *events.Store
	Reg *Registry
}

func NewServer(cfg config.Config, mgr *pipeline.Manager, ev *events.Store, reg *Registry) *Server {
	return &Server{Cfg: cfg, Mgr: mgr, Ev: ev, Reg: reg}
}

func (s *Server) HandlePipelineWS(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	sessionID := q.Get("session_id")
	if sessionID == "" {
		http.Error(w, "missing session_id", http.StatusBadRequest)
		return
	}
	if !s.Mgr.Has(sessionID) {
		http.Error(w, "unknown session", http.StatusNotFound)
		return
	}
	authz := r.Header.Get("Authorization")
	if !strings.HasPrefix(authz, "Bearer ") {
		http.Error(w, "missing bearer token", http.StatusUnauthorized)
		return
	}
	token := strings.TrimPrefix(authz, "Bearer ")
	if s.Cfg.Pipeline.TokenSecret == "" {
		http.Error(w, "pipeline auth not configured", http.StatusUnauthorized)
		return
	}
	if _, _, err := auth.ValidatePipelineToken(s.Cfg.Pipeline.TokenSecret, token, sessionID, time.Now(), s.Cfg.Pipeline.TokenSkewSecs); err != nil {
		http.Error(w, "invalid token", http.StatusUnauthorized)
		return
	}

	c, err := ws.Accept(w, r, nil)
	if err != nil {
		log.Printf("[wsgateway] accept: %v", err)
		return
	}
	if s.Reg.Replace(sessionID, c) {
		s.Ev.Append(sessionID, "pipeline_replaced", nil)
	}
	s.Ev.Append(sessionID, "pipeline_connected", nil)

	ctx := r.Context()
	for {
		typ, data, err := c.Read(ctx)
		if err != nil {
			break
		}
		if typ != ws.MessageText && typ != ws.MessageBinary {
			continue
		}
		var msg EventMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			s.Ev.Append(sessionID, "pipeline_msg_invalid", map[string]any{"error": err.Error()})
			continue
		}
		s.dispatch(ctx, c, sessionID, msg)
	}
	_ = c.Close(ws.StatusNormalClosure, "done")
	s.Reg.Remove(sessionID)
	s.Ev.Append(sessionID, "pipeline_disconnected", nil)
}

// dispatch applies one event in arrival order and replies with a verdict for
// the two verdict-bearing event types.
func (s *Server) dispatch(ctx context.Context, c *ws.Conn, sessionID string, msg EventMessage) {
	switch msg.Type {
	case "playback_start":
		s.Mgr.OnPlaybackStart(sessionID)

	case "playback_end":
		s.Mgr.OnPlaybackEnd(sessionID)

	case "agent_utterance":
		s.Mgr.OnAgentUtteranceText(sessionID, msg.Text)

	case "transcript_final":
		res := s.Mgr.OnRecognizedTranscript(sessionID, msg.Text)
		s.reply(ctx, c, VerdictMessage{
			Type:             "echo_verdict",
			SessionID:        sessionID,
			IsEcho:           res.IsEcho,
			Allowed:          !res.IsEcho,
			Similarity:       res.Similarity,
			MatchedUtterance: res.MatchedUtterance,
			DeltaMs:          res.DeltaMs,
			Reason:           res.Reason,
		})

	case "vad_start":
		res := s.Mgr.OnVoiceActivityEdge(sessionID)
		s.reply(ctx, c, VerdictMessage{
			Type:      "barge_in_verdict",
			SessionID: sessionID,
			Allowed:   res.Allowed,
			Reason:    res.Reason,
		})

	default:
		s.Ev.Append(sessionID, "pipeline_msg_unknown", map[string]any{"type": msg.Type})
	}
}

func (s *Server) reply(ctx context.Context, c *ws.Conn, v VerdictMessage) {
	b, _ := json.Marshal(v)
	if err := c.Write(ctx, ws.MessageText, b); err != nil {
		log.Printf("[wsgateway] write verdict sid=%s: %v", v.SessionID, err)
	}
}
