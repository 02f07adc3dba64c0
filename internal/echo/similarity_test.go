package echo

import "testing"

func TestNormalize(t *testing.T) {
	cases := map[string]string{
		"Let's practice multiplication tables!": "let s practice multiplication tables",
		"  HELLO,   world?? ":                   "hello world",
		"...":                                   "",
		"":                                      "",
		"3 x 4 = 12":                            "3 x 4 12",
	}
	for in, want := range cases {
		if got := Normalize(in); got != want {
			t.Errorf("Normalize(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{"Let's GO!", "plain text", "", "??!", "a  b\tc"}
	for _, in := range inputs {
		once := Normalize(in)
		if twice := Normalize(once); twice != once {
			t.Errorf("Normalize not idempotent for %q: %q vs %q", in, once, twice)
		}
	}
}

func TestTokenSetSimilarity(t *testing.T) {
	if got := TokenSetSimilarity("", ""); got != 1 {
		t.Errorf("both empty should be 1, got %f", got)
	}
	if got := TokenSetSimilarity("hello", ""); got != 0 {
		t.Errorf("one empty should be 0, got %f", got)
	}
	if got := TokenSetSimilarity("the cat sat", "sat the cat"); got != 1 {
		t.Errorf("reordering should not matter, got %f", got)
	}
	// {a,b,c} vs {b,c,d}: intersection 2, union 4
	if got := TokenSetSimilarity("a b c", "b c d"); got != 0.5 {
		t.Errorf("expected 0.5, got %f", got)
	}
}

func TestEditDistanceRatio(t *testing.T) {
	if got := EditDistanceRatio("same", "same"); got != 1 {
		t.Errorf("equal strings should be 1, got %f", got)
	}
	if got := EditDistanceRatio("", "nonempty"); got != 0 {
		t.Errorf("one empty should be 0, got %f", got)
	}
	// kitten -> sitting is 3 edits, longest length 7
	want := 1 - 3.0/7.0
	if got := EditDistanceRatio("kitten", "sitting"); got != want {
		t.Errorf("expected %f, got %f", want, got)
	}
}

func TestCombinedSimilaritySymmetricReflexive(t *testing.T) {
	pairs := [][2]string{
		{"let's practice tables", "lets practice the tables"},
		{"hello there", "goodbye now"},
		{"one two three", "three two one"},
	}
	for _, p := range pairs {
		ab := CombinedSimilarity(p[0], p[1])
		ba := CombinedSimilarity(p[1], p[0])
		if ab != ba {
			t.Errorf("not symmetric for %q/%q: %f vs %f", p[0], p[1], ab, ba)
		}
	}
	for _, x := range []string{"practice", "let's try division", "7 times 8"} {
		if got := CombinedSimilarity(x, x); got != 1 {
			t.Errorf("not reflexive for %q: %f", x, got)
		}
	}
}

func TestCombinedSimilarityToleratesMisrecognition(t *testing.T) {
	// A one-character recognition slip should still score near 1.
	got := CombinedSimilarity("let's practice multiplication tables", "let's practice multiplication table")
	if got < 0.9 {
		t.Errorf("expected high similarity for near-identical text, got %f", got)
	}
}
