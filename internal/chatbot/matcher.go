package chatbot

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// Thresholds of the match tiers. Changing them changes which questions reach
// the remote model.
const (
	ExactConfidence     = 1.0
	KeywordConfidence   = 0.9
	SimilarityThreshold = 0.65
	AcceptThreshold     = 0.7
)

// MatchKind which tier produced a match.
type MatchKind int

const (
	MatchNone MatchKind = iota
	MatchExact
	MatchKeyword
	MatchFuzzy
)

func (k MatchKind) String() string {
	switch k {
	case MatchExact:
		return "exact"
	case MatchKeyword:
		return "keyword"
	case MatchFuzzy:
		return "fuzzy"
	default:
		return "none"
	}
}

// Match outcome of FAQ.Match. The zero value is "no match".
type Match struct {
	Kind       MatchKind
	Question   string
	Answer     string
	Category   string
	Confidence float64
}

// Accepted reports whether the answer is good enough to return without the
// remote model.
func (m Match) Accepted() bool {
	return m.Kind != MatchNone && m.Confidence > AcceptThreshold
}

// Hedged accepted answers below keyword confidence get a clarification hint.
func (m Match) Hedged() bool {
	return m.Accepted() && m.Confidence < KeywordConfidence
}

// Match runs the three tiers in strict order: exact question, keyword
// substring (first hit in FAQ order wins), then the most similar question
// scoring above SimilarityThreshold.
func (f *FAQ) Match(query string) Match {
	q := strings.ToLower(strings.TrimSpace(query))

	var result Match
	f.each(func(category string, e FAQEntry) bool {
		if q == e.Question {
			result = Match{Kind: MatchExact, Question: e.Question, Answer: e.Answer, Category: category, Confidence: ExactConfidence}
			return false
		}
		return true
	})
	if result.Kind != MatchNone {
		return result
	}

	f.each(func(category string, e FAQEntry) bool {
		for _, kw := range e.Keywords {
			if strings.Contains(q, kw) {
				result = Match{Kind: MatchKeyword, Question: e.Question, Answer: e.Answer, Category: category, Confidence: KeywordConfidence}
				return false
			}
		}
		return true
	})
	if result.Kind != MatchNone {
		return result
	}

	qChars := strings.Split(q, "")
	best := 0.0
	f.each(func(category string, e FAQEntry) bool {
		score := similarity(qChars, e.Question)
		if score > best && score > SimilarityThreshold {
			best = score
			result = Match{Kind: MatchFuzzy, Question: e.Question, Answer: e.Answer, Category: category, Confidence: score}
		}
		return true
	})
	return result
}

// similarity Ratcliff/Obershelp ratio over characters, in [0, 1].
func similarity(query []string, question string) float64 {
	m := difflib.NewMatcher(query, strings.Split(question, ""))
	return m.Ratio()
}

// Similarity exposes the ratio used by the fuzzy tier.
func Similarity(a, b string) float64 {
	return similarity(strings.Split(a, ""), b)
}
