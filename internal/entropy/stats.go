package entropy

import (
	"regexp"
	"strings"
)

// AmbiguityMarkers are hedging phrases. Matching is case-insensitive and
// each marker counts once however often it appears.
var AmbiguityMarkers = []string{
	"maybe",
	"kind of",
	"sort of",
	"i think",
	"perhaps",
	"probably",
	"??",
	"...",
}

// StructureMarkers signal that the text is already organised.
var StructureMarkers = []string{":", "-", "1.", "##"}

// ConfusionWords are admissions that the author is lost.
var ConfusionWords = []string{"unclear", "confused"}

var (
	whitespacePattern = regexp.MustCompile(`\s+`)
	sentencePattern   = regexp.MustCompile(`[.!?]+`)
	labelPattern      = regexp.MustCompile(`\w+:`)
)

// Stats are the surface statistics the score is computed from.
type Stats struct {
	Words            int  `json:"words"`
	Sentences        int  `json:"sentences"`
	AmbiguityMarkers int  `json:"ambiguityMarkers"`
	Labels           int  `json:"labels"`
	HasStructure     bool `json:"hasStructure"`
	Confusion        bool `json:"confusion"`
}

// Measure computes Stats for text.
//
// Words are the pieces left after splitting on whitespace runs, so leading or
// trailing whitespace adds an empty piece and the empty string counts as one
// word. Sentences are the non-blank pieces between runs of '.', '!' and '?'.
// Labels counts "word:" patterns.
func Measure(text string) Stats {
	lower := strings.ToLower(text)

	s := Stats{
		Words:     len(whitespacePattern.Split(text, -1)),
		Labels:    len(labelPattern.FindAllStringIndex(text, -1)),
		Confusion: containsAny(lower, ConfusionWords),
	}

	for _, piece := range sentencePattern.Split(text, -1) {
		if strings.TrimSpace(piece) != "" {
			s.Sentences++
		}
	}

	for _, m := range AmbiguityMarkers {
		if strings.Contains(lower, m) {
			s.AmbiguityMarkers++
		}
	}

	s.HasStructure = containsAny(text, StructureMarkers)
	return s
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
