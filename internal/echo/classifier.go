package echo

import (
	"log"
	"time"
	"unicode/utf8"
)

// Echo verdict reasons.
const (
	ReasonDisabled        = "disabled"
	ReasonTooShort        = "too_short"
	ReasonSimilarityMatch = "similarity_match"
	ReasonNoMatch         = "no_match"
)

const (
	// echoCandidateDepth bounds how many tracked utterances the classifier
	// compares against. Intentionally smaller than the tracker capacity:
	// echoes of older turns are acoustically implausible, while the extra
	// history stays available for diagnostics.
	echoCandidateDepth = 2

	// minTranscriptRunes guards against recognition noise fragments that
	// would otherwise score spuriously high.
	minTranscriptRunes = 3

	matchedPreviewRunes = 100
)

// EchoCheckResult is the classifier's verdict for one finalized transcript.
type EchoCheckResult struct {
	IsEcho           bool
	Similarity       float64
	MatchedUtterance string
	DeltaMs          int64
	Reason           string
}

// CheckForEcho classifies a finalized transcript against the most recently
// tracked tutor utterances. Window expiry takes priority over content match:
// a transcript identical to a turn that finished more than EchoWindow ago is
// never flagged, since the user may legitimately repeat the tutor's words.
func (f *Filter) CheckForEcho(st *SessionState, transcript string, now time.Time) EchoCheckResult {
	if !f.cfg.Enabled {
		return EchoCheckResult{Reason: ReasonDisabled}
	}
	norm := Normalize(transcript)
	if utf8.RuneCountInString(norm) < minTranscriptRunes {
		return EchoCheckResult{Reason: ReasonTooShort}
	}

	windowMs := f.cfg.EchoWindow.Milliseconds()
	for i, u := range st.utterances {
		if i >= echoCandidateDepth {
			break
		}
		deltaMs, ok := candidateDelta(st, u, now)
		if !ok || deltaMs > windowMs {
			continue
		}
		score := CombinedSimilarity(norm, u.Normalized)
		if f.cfg.Debug {
			log.Printf("[echo] candidate idx=%d delta=%dms score=%.3f threshold=%.2f", i, deltaMs, score, f.cfg.SimilarityThreshold)
		}
		if score >= f.cfg.SimilarityThreshold {
			return EchoCheckResult{
				IsEcho:           true,
				Similarity:       score,
				MatchedUtterance: preview(u.Raw),
				DeltaMs:          deltaMs,
				Reason:           ReasonSimilarityMatch,
			}
		}
	}
	return EchoCheckResult{Reason: ReasonNoMatch}
}

// candidateDelta resolves the elapsed time between the candidate's playback
// end and now. An utterance that is still playing matches at delta 0; one
// caught in the end-event race falls back to the session-level last playback
// end, or is skipped when none is known.
func candidateDelta(st *SessionState, u *TutorUtterance, now time.Time) (int64, bool) {
	switch st.phaseOf(u) {
	case phasePlaying:
		return 0, true
	case phaseJustEnded:
		if st.lastPlaybackEnd.IsZero() {
			return 0, false
		}
		return now.Sub(st.lastPlaybackEnd).Milliseconds(), true
	default:
		return now.Sub(u.endedAt).Milliseconds(), true
	}
}

func preview(s string) string {
	r := []rune(s)
	if len(r) <= matchedPreviewRunes {
		return s
	}
	return string(r[:matchedPreviewRunes])
}
