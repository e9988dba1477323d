// Package entropy scores how unstructured a piece of text is.
//
// Entropy here is a heuristic, not an information-theoretic quantity: a score
// of 0 means the text is clear and actionable, 1 means it is chaotic. The
// score is built from surface statistics (see Measure) and a fixed, ordered
// rule table (see Rules). Every call is independent and the package holds no
// mutable state, so Classify is safe for concurrent use.
package entropy

import (
	"fmt"
	"math"
	"regexp"
	"strings"
)

// Level is the coarse bucket derived from a score.
type Level string

const (
	LevelChaos      Level = "chaos"
	LevelTurbulence Level = "turbulence"
	LevelStructure  Level = "structure"
	LevelClarity    Level = "clarity"
)

// Report is the result of classifying a piece of text.
type Report struct {
	Level           Level     `json:"entropyLevel"`
	Score           float64   `json:"score"`
	Issues          []string  `json:"issues"`
	Recommendations []string  `json:"recommendations"`
	Structure       Structure `json:"structureExtracted"`
}

// Structure holds the structural elements pulled from raw text.
// A nil slice means nothing of that kind was found.
type Structure struct {
	Entities []string `json:"entities,omitempty"`
	Actions  []string `json:"actions,omitempty"`
}

// Classify scores input and builds a full report. The context argument is
// caller metadata and does not influence the result.
func Classify(input, context string) Report {
	stats := Measure(input)
	score := Score(stats)

	return Report{
		Level:           LevelFor(score),
		Score:           round2(score),
		Issues:          Issues(stats),
		Recommendations: Recommendations(score, stats),
		Structure: Structure{
			Entities: ExtractEntities(input),
			Actions:  ExtractActions(input),
		},
	}
}

// Issue messages.
const (
	IssueNoStructure = "No clear structural markers"
	IssueNoSentences = "No complete sentences found"
	IssueNone        = "No major structural issues"
)

// Recommendation messages.
const (
	RecommendSteps       = "Break into numbered steps or bullet points"
	RecommendDefineTerms = "Define key terms explicitly"
	RecommendConstraints = "State assumptions and constraints"
	RecommendHedging     = "Replace hedging language with specific data or probabilities"
	RecommendCoreObject  = "Extract core question or objective"
	RecommendKeepClarity = "Input is well-structured - maintain this clarity"
)

// RemediationThreshold is the score above which the standard remediations
// are recommended.
const RemediationThreshold = 0.5

// LengthLimit is the word count above which text is reported as too long.
const LengthLimit = 300

// Issues lists the problems found in the measured text, in a fixed order.
// The result always has at least one entry.
func Issues(s Stats) []string {
	var issues []string
	if s.AmbiguityMarkers > 0 {
		issues = append(issues, fmt.Sprintf("%d ambiguity markers detected", s.AmbiguityMarkers))
	}
	if !s.HasStructure {
		issues = append(issues, IssueNoStructure)
	}
	if s.Words > LengthLimit {
		issues = append(issues, fmt.Sprintf("Excessive length (%d words)", s.Words))
	}
	if s.Sentences == 0 {
		issues = append(issues, IssueNoSentences)
	}
	if len(issues) == 0 {
		issues = append(issues, IssueNone)
	}
	return issues
}

// Recommendations suggests remediations for a clamped, unrounded score.
// The result always has at least one entry.
func Recommendations(score float64, s Stats) []string {
	var recs []string
	if score > RemediationThreshold {
		recs = append(recs, RecommendSteps, RecommendDefineTerms, RecommendConstraints)
	}
	if s.AmbiguityMarkers > 0 {
		recs = append(recs, RecommendHedging)
	}
	if s.Words > LengthLimit {
		recs = append(recs, RecommendCoreObject)
	}
	if len(recs) == 0 {
		recs = append(recs, RecommendKeepClarity)
	}
	return recs
}

// Extraction limits.
const (
	MaxEntities = 10
	MaxActions  = 5
)

// ActionStems are the task verbs recognised by ExtractActions. Any suffix is
// accepted ("implementing", "fixes").
var ActionStems = []string{
	"create", "build", "implement", "analyze", "fix",
	"solve", "define", "extract", "transform", "reduce",
}

var (
	entityPattern = regexp.MustCompile(`\b[A-Z][a-z]+(?:\s+[A-Z][a-z]+)*\b`)
	actionPattern = regexp.MustCompile(`(?i)\b(?:` + strings.Join(ActionStems, "|") + `)\w*\b`)
)

// ExtractEntities returns runs of capitalised words in first-seen order,
// deduplicated and capped at MaxEntities.
func ExtractEntities(text string) []string {
	return firstUnique(entityPattern.FindAllString(text, -1), MaxEntities)
}

// ExtractActions returns words built on one of ActionStems, deduplicated as
// written, capped at MaxActions and then lowercased.
func ExtractActions(text string) []string {
	actions := firstUnique(actionPattern.FindAllString(text, -1), MaxActions)
	for i, a := range actions {
		actions[i] = strings.ToLower(a)
	}
	return actions
}

// firstUnique drops repeats while keeping order, stopping at limit entries.
func firstUnique(items []string, limit int) []string {
	if len(items) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, min(len(items), limit))
	for _, item := range items {
		if seen[item] {
			continue
		}
		seen[item] = true
		out = append(out, item)
		if len(out) == limit {
			break
		}
	}
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
