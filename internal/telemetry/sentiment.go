package telemetry

import "strings"

// lexicon maps lowercase tokens to signed polarity. Tokens absent from the
// lexicon carry no signal. Keep these values stable; scoring behavior and
// recorded sentiment depend on them.
var lexicon = map[string]float64{
	"bad":         -1,
	"angry":       -1,
	"hate":        -1,
	"suspicious":  -1,
	"concern":     -0.5,
	"sorry":       -0.3,
	"help":        -0.2,
	"thanks":      0.5,
	"great":       0.7,
	"ok":          0.1,
	"urgent":      -0.5,
	"immediately": -0.4,
	"stressed":    -0.8,
	"happy":       0.8,
}

const tokenPunctuation = ".,!?;:"

// SentimentScore averages lexicon polarity over the tokens of text that
// appear in the lexicon (case-insensitive, surrounding punctuation stripped).
// Text with no matching tokens scores exactly 0.0: neutral, not an error.
// The result is clamped to [-1, 1].
func SentimentScore(text string) float64 {
	var sum float64
	var matched int
	for _, w := range strings.Fields(text) {
		w = strings.ToLower(strings.Trim(w, tokenPunctuation))
		if p, ok := lexicon[w]; ok {
			sum += p
			matched++
		}
	}
	if matched == 0 {
		return 0.0
	}

	s := sum / float64(matched)
	if s < -1 {
		return -1
	}
	if s > 1 {
		return 1
	}
	return s
}
