package events

import "testing"

func TestAppendAndList(t *testing.T) {
	st := NewStore()
	st.Append("s1", "playback_start", nil)
	st.Append("s1", "echo_discarded", map[string]any{"similarity": 0.97})
	st.Append("s2", "playback_start", nil)

	got := st.List("s1")
	if len(got) != 2 {
		t.Fatalf("expected 2 events, got %d", len(got))
	}
	if got[0].Type != "playback_start" || got[1].Type != "echo_discarded" {
		t.Fatalf("unexpected event order: %v, %v", got[0].Type, got[1].Type)
	}
	if got[0].ID == "" || got[0].SessionID != "s1" {
		t.Fatalf("event not stamped: %+v", got[0])
	}
}

func TestAppendCapsPerSession(t *testing.T) {
	st := NewStore()
	for i := 0; i < 250; i++ {
		st.Append("s1", "tick", nil)
	}
	got := st.List("s1")
	if len(got) != 200 {
		t.Fatalf("expected cap of 200 events, got %d", len(got))
	}
	if got[len(got)-1].Type != "events_truncated" {
		t.Fatalf("expected truncation warning last, got %q", got[len(got)-1].Type)
	}
}

func TestDrop(t *testing.T) {
	st := NewStore()
	st.Append("s1", "tick", nil)
	st.Drop("s1")
	if got := st.List("s1"); len(got) != 0 {
		t.Fatalf("expected empty journal after drop, got %d", len(got))
	}
}
