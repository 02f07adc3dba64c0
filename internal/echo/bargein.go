package echo

import (
	"fmt"
	"time"
)

// Barge-in verdict reasons.
const (
	ReasonTutorPlaying  = "tutor_playing_barge_in_allowed"
	ReasonNoGuardActive = "no_guard_active"
)

// BargeInResult is the arbiter's verdict for one voice-activity edge.
type BargeInResult struct {
	Allowed bool
	Reason  string
}

// ShouldAllowBargeIn decides whether a detected start of user speech may
// interrupt the tutor. While the tutor is actively speaking any genuine voice
// activity is an interruption request and passes through; only the tail guard
// after playback suppresses edges, to absorb residual acoustic/buffer echo.
func (f *Filter) ShouldAllowBargeIn(st *SessionState, now time.Time) BargeInResult {
	if !f.cfg.Enabled {
		return BargeInResult{Allowed: true, Reason: ReasonDisabled}
	}
	if st.playbackActive {
		return BargeInResult{Allowed: true, Reason: ReasonTutorPlaying}
	}
	if f.IsTailGuardActive(st, now) {
		remaining := st.tailGuardUntil.Sub(now).Milliseconds()
		return BargeInResult{
			Allowed: false,
			Reason:  fmt.Sprintf("tail_guard_active_%dms_remaining", remaining),
		}
	}
	return BargeInResult{Allowed: true, Reason: ReasonNoGuardActive}
}

// ResetState clears all tracked utterances, playback flags and the tail
// guard. Called on session start and session end so nothing leaks across
// sessions. Idempotent.
func (f *Filter) ResetState(st *SessionState) {
	st.utterances = nil
	st.playbackActive = false
	st.lastPlaybackEnd = time.Time{}
	st.tailGuardActive = false
	st.tailGuardUntil = time.Time{}
}
