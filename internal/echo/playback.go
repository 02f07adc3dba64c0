package echo

import "time"

// MarkPlaybackStart flags the tutor as actively speaking. Idempotent.
func (f *Filter) MarkPlaybackStart(st *SessionState) {
	st.playbackActive = true
}

// MarkPlaybackEnd flags playback as finished at now, stamps the end time on
// the most recently tracked utterance (the single mutation an utterance ever
// receives), and arms the tail guard when the filter is enabled.
func (f *Filter) MarkPlaybackEnd(st *SessionState, now time.Time) {
	st.playbackActive = false
	st.lastPlaybackEnd = now
	if len(st.utterances) > 0 && st.utterances[0].endedAt.IsZero() {
		st.utterances[0].endedAt = now
	}
	if f.cfg.Enabled {
		st.tailGuardActive = true
		st.tailGuardUntil = now.Add(f.cfg.TailGuard)
	}
}

// IsTailGuardActive reports whether the post-speech suppression window is
// still open at now. Expiry is lazy: a plain timestamp comparison on access,
// never a scheduled timer.
func (f *Filter) IsTailGuardActive(st *SessionState, now time.Time) bool {
	if !f.cfg.Enabled || !st.tailGuardActive {
		return false
	}
	if !now.Before(st.tailGuardUntil) {
		st.tailGuardActive = false
		return false
	}
	return true
}
