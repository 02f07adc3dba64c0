// Package echo decides, from event timing and text similarity alone, whether
// user-side signals in a tutoring session are genuine or artifacts of the
// tutor hearing its own synthesized speech.
package echo

// DefaultMaxTracked is the tracked-utterance capacity used when the
// configured value is missing or non-positive.
const DefaultMaxTracked = 3

// Filter applies the echo and barge-in policy to per-session state. The
// filter itself is immutable and safe to share across sessions.
type Filter struct {
	cfg Config
}

// NewFilter builds a filter from the startup configuration.
func NewFilter(cfg Config) *Filter {
	if cfg.MaxTracked <= 0 {
		cfg.MaxTracked = DefaultMaxTracked
	}
	return &Filter{cfg: cfg}
}

// Config returns the effective configuration.
func (f *Filter) Config() Config { return f.cfg }

// RecordUtterance tracks the text of a tutor turn before it is spoken. No-op
// when the filter is disabled or the text normalizes to nothing. The newest
// utterance goes to the front; the oldest falls off past capacity.
func (f *Filter) RecordUtterance(st *SessionState, text string) {
	if !f.cfg.Enabled {
		return
	}
	norm := Normalize(text)
	if norm == "" {
		return
	}
	u := &TutorUtterance{Raw: text, Normalized: norm}
	st.utterances = append([]*TutorUtterance{u}, st.utterances...)
	if len(st.utterances) > f.cfg.MaxTracked {
		st.utterances = st.utterances[:f.cfg.MaxTracked]
	}
}
