package echo

import (
	"testing"
	"time"
)

func TestMarkPlaybackStartIdempotent(t *testing.T) {
	f := NewFilter(testConfig())
	st := NewSessionState()

	f.MarkPlaybackStart(st)
	f.MarkPlaybackStart(st)
	if !st.playbackActive {
		t.Error("playback should be active")
	}
}

func TestMarkPlaybackEndStampsNewestUtterance(t *testing.T) {
	f := NewFilter(testConfig())
	st := NewSessionState()
	now := time.Now()

	f.RecordUtterance(st, "first turn")
	f.MarkPlaybackStart(st)
	f.MarkPlaybackEnd(st, now)

	if st.playbackActive {
		t.Error("playback should be inactive after end")
	}
	if !st.lastPlaybackEnd.Equal(now) {
		t.Errorf("lastPlaybackEnd = %v, want %v", st.lastPlaybackEnd, now)
	}
	if !st.utterances[0].endedAt.Equal(now) {
		t.Errorf("utterance end = %v, want %v", st.utterances[0].endedAt, now)
	}

	// A second end event must not overwrite the stamp.
	later := now.Add(time.Second)
	f.MarkPlaybackEnd(st, later)
	if !st.utterances[0].endedAt.Equal(now) {
		t.Error("utterance end timestamp was overwritten")
	}
}

func TestMarkPlaybackEndWithoutUtterance(t *testing.T) {
	f := NewFilter(testConfig())
	st := NewSessionState()

	// Must be a defined no-crash path even if nothing was tracked.
	f.MarkPlaybackEnd(st, time.Now())
	if st.playbackActive {
		t.Error("playback should be inactive")
	}
}

func TestTailGuardLazyExpiry(t *testing.T) {
	f := NewFilter(testConfig())
	st := NewSessionState()
	t0 := time.Now()

	f.MarkPlaybackEnd(st, t0)
	if !f.IsTailGuardActive(st, t0.Add(300*time.Millisecond)) {
		t.Error("guard should be active at 300ms")
	}
	if f.IsTailGuardActive(st, t0.Add(700*time.Millisecond)) {
		t.Error("guard should have expired at exactly 700ms")
	}
	if st.tailGuardActive {
		t.Error("expiry check should clear the active flag")
	}
	// Expired stays expired, even for an earlier probe time.
	if f.IsTailGuardActive(st, t0.Add(100*time.Millisecond)) {
		t.Error("guard should stay cleared once expired")
	}
}

func TestTailGuardDisabled(t *testing.T) {
	cfg := testConfig()
	cfg.Enabled = false
	f := NewFilter(cfg)
	st := NewSessionState()
	t0 := time.Now()

	f.MarkPlaybackEnd(st, t0)
	if st.tailGuardActive {
		t.Error("disabled filter must not arm the tail guard")
	}
	if f.IsTailGuardActive(st, t0) {
		t.Error("guard should never be active when disabled")
	}
}

func TestTailGuardExpiryNeverBeforeLastEnd(t *testing.T) {
	f := NewFilter(testConfig())
	st := NewSessionState()
	t0 := time.Now()

	f.MarkPlaybackEnd(st, t0)
	if st.tailGuardUntil.Before(st.lastPlaybackEnd) {
		t.Error("tail guard expiry must be at or after last playback end")
	}
}
