package entropy

// BaseScore is the starting point before any rule fires.
const BaseScore = 0.5

// Rule weights and triggers.
const (
	NoSentencesPenalty = 0.3

	RamblingPenalty      = 0.2
	RamblingMinWords     = 200
	RamblingMaxSentences = 5

	AmbiguityPenalty      = 0.15
	AmbiguityMinMarkers   = 3
	AmbiguityMarkerCap    = 5
	UnstructuredPenalty   = 0.2
	UnstructuredMinWords  = 100
	ConfusionPenalty      = 0.15
	StructureBonus        = 0.2
	ConciseBonus          = 0.1
	ConciseMinSentences   = 3
	ConciseMaxWordsPerSen = 20
	LabelBonus            = 0.1
	LabelMinCount         = 3
)

// Level thresholds. Each is an exclusive lower bound; anything at or below
// StructureThreshold is clarity.
const (
	ChaosThreshold      = 0.7
	TurbulenceThreshold = 0.4
	StructureThreshold  = 0.2
)

// Rule is one score adjustment. Rules are independent: every rule whose
// condition holds contributes its delta.
type Rule struct {
	Name  string
	Delta func(Stats) float64
	When  func(Stats) bool
}

// Adjustment records a rule that fired.
type Adjustment struct {
	Rule  string  `json:"rule"`
	Delta float64 `json:"delta"`
}

// Rules is the ordered rule table. Penalties come first, then bonuses.
var Rules = []Rule{
	{
		Name:  "no-sentences",
		When:  func(s Stats) bool { return s.Sentences == 0 },
		Delta: fixed(NoSentencesPenalty),
	},
	{
		Name:  "rambling",
		When:  func(s Stats) bool { return s.Words > RamblingMinWords && s.Sentences < RamblingMaxSentences },
		Delta: fixed(RamblingPenalty),
	},
	{
		Name: "ambiguity",
		When: func(s Stats) bool { return s.AmbiguityMarkers > AmbiguityMinMarkers },
		Delta: func(s Stats) float64 {
			return AmbiguityPenalty * float64(min(s.AmbiguityMarkers, AmbiguityMarkerCap))
		},
	},
	{
		Name:  "unstructured",
		When:  func(s Stats) bool { return !s.HasStructure && s.Words > UnstructuredMinWords },
		Delta: fixed(UnstructuredPenalty),
	},
	{
		Name:  "confusion",
		When:  func(s Stats) bool { return s.Confusion },
		Delta: fixed(ConfusionPenalty),
	},
	{
		Name:  "structure",
		When:  func(s Stats) bool { return s.HasStructure },
		Delta: fixed(-StructureBonus),
	},
	{
		Name: "concise-sentences",
		When: func(s Stats) bool {
			return s.Sentences > ConciseMinSentences &&
				float64(s.Words)/float64(s.Sentences) < ConciseMaxWordsPerSen
		},
		Delta: fixed(-ConciseBonus),
	},
	{
		Name:  "labels",
		When:  func(s Stats) bool { return s.Labels >= LabelMinCount },
		Delta: fixed(-LabelBonus),
	},
}

func fixed(d float64) func(Stats) float64 {
	return func(Stats) float64 { return d }
}

// Adjustments returns the rules that fire for s, in table order.
func Adjustments(s Stats) []Adjustment {
	var out []Adjustment
	for _, r := range Rules {
		if r.When(s) {
			out = append(out, Adjustment{Rule: r.Name, Delta: r.Delta(s)})
		}
	}
	return out
}

// Score applies every firing rule to BaseScore and clamps the result to
// [0, 1]. The raw sum may leave the range before clamping; it is not
// renormalised.
func Score(s Stats) float64 {
	score := BaseScore
	for _, a := range Adjustments(s) {
		score += a.Delta
	}
	return clamp(score)
}

// LevelFor maps a score to its level.
func LevelFor(score float64) Level {
	switch {
	case score > ChaosThreshold:
		return LevelChaos
	case score > TurbulenceThreshold:
		return LevelTurbulence
	case score > StructureThreshold:
		return LevelStructure
	default:
		return LevelClarity
	}
}

func clamp(v float64) float64 {
	return max(0, min(1, v))
}
