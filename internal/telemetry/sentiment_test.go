package telemetry

import (
	"math"
	"testing"
)

func TestSentimentScore_AveragesMatchedTokens(t *testing.T) {
	// "stressed" (-0.8) and "help" (-0.2) match; "need" does not.
	got := SentimentScore("I am stressed and need help")
	want := (-0.8 + -0.2) / 2
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestSentimentScore_NoMatchesIsNeutral(t *testing.T) {
	if got := SentimentScore("quarterly revenue projections"); got != 0.0 {
		t.Fatalf("expected exactly 0.0, got %v", got)
	}
	if got := SentimentScore(""); got != 0.0 {
		t.Fatalf("expected exactly 0.0 for empty text, got %v", got)
	}
}

func TestSentimentScore_CaseAndPunctuationInsensitive(t *testing.T) {
	a := SentimentScore("Thanks, great!")
	b := SentimentScore("thanks great")
	if math.Abs(a-b) > 1e-9 {
		t.Fatalf("expected %v == %v", a, b)
	}
	if a <= 0 {
		t.Fatalf("expected positive sentiment, got %v", a)
	}
}

func TestSentimentScore_Bounded(t *testing.T) {
	for _, text := range []string{
		"hate hate hate bad angry",
		"happy great thanks",
		"ok",
		"urgent immediately stressed suspicious",
	} {
		s := SentimentScore(text)
		if s < -1 || s > 1 {
			t.Fatalf("sentiment out of bounds for %q: %v", text, s)
		}
	}
}
