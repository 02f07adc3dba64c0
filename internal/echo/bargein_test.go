package echo

import (
	"testing"
	"time"
)

func TestBargeInAllowedWhilePlaying(t *testing.T) {
	f := NewFilter(testConfig())
	st := NewSessionState()

	f.MarkPlaybackStart(st)
	res := f.ShouldAllowBargeIn(st, time.Now())
	if !res.Allowed {
		t.Fatalf("voice activity during playback is an interruption request: %+v", res)
	}
	if res.Reason != ReasonTutorPlaying {
		t.Errorf("reason = %q, want %q", res.Reason, ReasonTutorPlaying)
	}
}

func TestTailGuardScenario(t *testing.T) {
	f := NewFilter(testConfig())
	st := NewSessionState()
	t0 := time.Now()

	f.MarkPlaybackStart(st)
	f.MarkPlaybackEnd(st, t0)

	res := f.ShouldAllowBargeIn(st, t0.Add(300*time.Millisecond))
	if res.Allowed {
		t.Fatalf("barge-in must be blocked inside the tail guard: %+v", res)
	}
	if res.Reason != "tail_guard_active_400ms_remaining" {
		t.Errorf("reason = %q, want remaining milliseconds in reason", res.Reason)
	}

	res = f.ShouldAllowBargeIn(st, t0.Add(800*time.Millisecond))
	if !res.Allowed {
		t.Fatalf("barge-in must be allowed after the guard expires: %+v", res)
	}
	if res.Reason != ReasonNoGuardActive {
		t.Errorf("reason = %q, want %q", res.Reason, ReasonNoGuardActive)
	}
}

func TestBargeInDisabledAlwaysAllowed(t *testing.T) {
	cfg := testConfig()
	cfg.Enabled = false
	f := NewFilter(cfg)
	st := NewSessionState()

	f.MarkPlaybackStart(st)
	f.MarkPlaybackEnd(st, time.Now())
	res := f.ShouldAllowBargeIn(st, time.Now())
	if !res.Allowed || res.Reason != ReasonDisabled {
		t.Errorf("disabled filter must always allow barge-in: %+v", res)
	}
}

func TestResetCompleteness(t *testing.T) {
	f := NewFilter(testConfig())
	st := NewSessionState()
	t0 := time.Now()

	f.RecordUtterance(st, "something to track")
	f.MarkPlaybackStart(st)
	f.MarkPlaybackEnd(st, t0)

	f.ResetState(st)

	if st.TrackedCount() != 0 {
		t.Errorf("tracked list not cleared: %d", st.TrackedCount())
	}
	if st.playbackActive {
		t.Error("playbackActive not cleared")
	}
	if st.tailGuardActive {
		t.Error("tailGuardActive not cleared")
	}
	if !st.lastPlaybackEnd.IsZero() || !st.tailGuardUntil.IsZero() {
		t.Error("timestamps not cleared")
	}

	// Idempotent, and identical to a fresh state for every verdict.
	f.ResetState(st)
	if res := f.CheckForEcho(st, "something to track", t0.Add(time.Millisecond)); res.IsEcho {
		t.Errorf("reset state must not remember utterances: %+v", res)
	}
	if res := f.ShouldAllowBargeIn(st, t0.Add(time.Millisecond)); !res.Allowed {
		t.Errorf("reset state must allow barge-in: %+v", res)
	}
}
