package match

import (
	"math"
	"testing"
)

func TestNormalize(t *testing.T) {
	testCases := map[string]string{
		"  Give me   AIRCRAFT details!! ": "give me aircraft details",
		"what's\tthe\nweather?":           "whats the weather",
		"":                                "",
		"¿¡":                              "",
	}

	for input, expected := range testCases {
		if got := Normalize(input); got != expected {
			t.Fatalf("Normalize(%q): expected %q, got %q", input, expected, got)
		}
	}
}

func TestMatchesWordOverlap(t *testing.T) {
	if !Matches("give me a detailed aircraft report please", "give me aircraft details") {
		t.Fatalf("expected word overlap match")
	}
}

func TestMatchesSubstring(t *testing.T) {
	if !Matches("hey, how many planes are up there?", "how many planes") {
		t.Fatalf("expected substring match")
	}
}

func TestMatchesSimilarity(t *testing.T) {
	if !Matches("plains nearby", "planes nearby") {
		t.Fatalf("expected similarity match for misheard phrase")
	}
}

func TestDoesNotMatchUnrelatedPhrase(t *testing.T) {
	commands := []string{
		"give me aircraft details", "detailed aircraft report", "full detailed aircraft report",
		"open aircraft", "open flight radar", "show aircraft map",
		"planes nearby", "how many aircraft", "how many planes",
	}

	for _, phrase := range []string{"banana", "what's the weather in Paris tomorrow"} {
		if MatchesAny(phrase, commands...) {
			t.Fatalf("expected %q not to match any command", phrase)
		}
	}
}

func TestEmptyCommandNeverMatches(t *testing.T) {
	if Matches("anything", "!!!") {
		t.Fatalf("expected empty command not to match")
	}
}

func TestRatio(t *testing.T) {
	testCases := []struct {
		a, b     string
		expected float64
	}{
		{"abcd", "bcde", 0.75},
		{"", "", 1},
		{"abc", "", 0},
		{"planes nearby", "planes nearby", 1},
	}

	for _, tc := range testCases {
		if got := Ratio(tc.a, tc.b); math.Abs(got-tc.expected) > 1e-9 {
			t.Fatalf("Ratio(%q, %q): expected %v, got %v", tc.a, tc.b, tc.expected, got)
		}
	}
}
