package echo

import "time"

// Config is the process-wide filter configuration. It is loaded once at
// startup and never reconfigured at runtime.
type Config struct {
	Enabled             bool
	TailGuard           time.Duration
	SimilarityThreshold float64
	EchoWindow          time.Duration
	MaxTracked          int
	Debug               bool
}

// TutorUtterance is one spoken tutor turn. endedAt is zero while the turn is
// still being spoken and is set exactly once, when playback for it finishes.
type TutorUtterance struct {
	Raw        string
	Normalized string
	endedAt    time.Time
}

// SessionState is owned by exactly one conversation session. The hosting
// pipeline must apply a session's events from a single goroutine at a time;
// states of different sessions share nothing and need no synchronization.
type SessionState struct {
	utterances      []*TutorUtterance // most recent first, capped at MaxTracked
	playbackActive  bool
	lastPlaybackEnd time.Time
	tailGuardActive bool
	tailGuardUntil  time.Time
}

// NewSessionState returns a fresh, empty state.
func NewSessionState() *SessionState { return &SessionState{} }

// TrackedCount reports how many tutor utterances are currently tracked.
func (st *SessionState) TrackedCount() int { return len(st.utterances) }

// playbackPhase tags where a candidate utterance sits relative to playback.
// The justEnded variant covers the race where the transcript arrives after
// playback stopped but before the end timestamp landed on the utterance.
type playbackPhase int

const (
	phasePlaying playbackPhase = iota
	phaseJustEnded
	phaseEnded
)

func (st *SessionState) phaseOf(u *TutorUtterance) playbackPhase {
	if !u.endedAt.IsZero() {
		return phaseEnded
	}
	if st.playbackActive {
		return phasePlaying
	}
	return phaseJustEnded
}
