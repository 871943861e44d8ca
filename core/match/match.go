// Package match implements the fuzzy matching used by fixed-vocabulary
// fast paths.
//
// Transcriptions are noisy, so a phrase counts as a command when any of the
// following holds for the normalized texts:
//
//   - the command is a substring of the phrase,
//   - at least [Matcher.WordThreshold] of the command's words occur in the
//     phrase,
//   - the Ratcliff/Obershelp similarity of the two texts is at least
//     [Matcher.SimilarityThreshold].
package match

import (
	"strings"
	"unicode"
)

const (
	DefaultWordThreshold       = 0.6
	DefaultSimilarityThreshold = 0.6
)

type Matcher struct {
	WordThreshold       float64
	SimilarityThreshold float64
}

var Default = Matcher{
	WordThreshold:       DefaultWordThreshold,
	SimilarityThreshold: DefaultSimilarityThreshold,
}

func Matches(phrase, command string) bool { return Default.Matches(phrase, command) }

func MatchesAny(phrase string, commands ...string) bool {
	return Default.MatchesAny(phrase, commands...)
}

func (m Matcher) Matches(phrase, command string) bool {
	phrase = Normalize(phrase)
	command = Normalize(command)
	if command == "" {
		return false
	}

	if strings.Contains(phrase, command) {
		return true
	}

	if WordOverlap(phrase, command) >= m.WordThreshold {
		return true
	}

	return Ratio(phrase, command) >= m.SimilarityThreshold
}

func (m Matcher) MatchesAny(phrase string, commands ...string) bool {
	for _, command := range commands {
		if m.Matches(phrase, command) {
			return true
		}
	}
	return false
}

// Normalize lower-cases text, removes everything outside [a-z0-9 ] and
// collapses whitespace.
func Normalize(text string) string {
	var b strings.Builder
	b.Grow(len(text))

	pendingSpace := false
	for _, r := range strings.ToLower(text) {
		switch {
		case unicode.IsSpace(r):
			pendingSpace = b.Len() > 0
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			if pendingSpace {
				b.WriteByte(' ')
				pendingSpace = false
			}
			b.WriteRune(r)
		}
	}

	return b.String()
}

// WordOverlap returns the share of distinct command words that also occur
// in phrase. Both texts are expected to be normalized.
func WordOverlap(phrase, command string) float64 {
	commandWords := wordSet(command)
	if len(commandWords) == 0 {
		return 0
	}

	phraseWords := wordSet(phrase)
	shared := 0
	for word := range commandWords {
		if _, ok := phraseWords[word]; ok {
			shared++
		}
	}

	return float64(shared) / float64(len(commandWords))
}

func wordSet(text string) map[string]struct{} {
	words := map[string]struct{}{}
	for _, word := range strings.Fields(text) {
		words[word] = struct{}{}
	}
	return words
}
