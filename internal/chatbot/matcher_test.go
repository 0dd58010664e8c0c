package chatbot

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchExactForEveryQuestion(t *testing.T) {
	faq := DefaultFAQ()
	for _, cat := range faq.Categories() {
		for _, e := range cat.Entries {
			m := faq.Match("  " + strings.ToUpper(e.Question) + " ")
			assert.Equal(t, MatchExact, m.Kind, e.Question)
			assert.Equal(t, 1.0, m.Confidence)
			assert.Equal(t, e.Answer, m.Answer)
			assert.Equal(t, cat.Name, m.Category)
		}
	}
}

func TestMatchPlatformOverview(t *testing.T) {
	m := DefaultFAQ().Match("what is food pulse")
	assert.Equal(t, MatchExact, m.Kind)
	assert.Equal(t, "platform_overview", m.Category)
	assert.Equal(t, 1.0, m.Confidence)
	assert.True(t, strings.HasPrefix(m.Answer, "Food Pulse is a platform"))
	assert.True(t, m.Accepted())
	assert.False(t, m.Hedged())
}

func TestMatchKeyword(t *testing.T) {
	faq := DefaultFAQ()

	m := faq.Match("Is there any fee involved?")
	assert.Equal(t, MatchKeyword, m.Kind)
	assert.Equal(t, 0.9, m.Confidence)
	assert.Equal(t, "restaurant_operations", m.Category)
	assert.Equal(t, "is there a cost for restaurants", m.Question)

	// close to the full question, still keyword confidence
	m = faq.Match("how does food pulse work process")
	assert.Equal(t, MatchKeyword, m.Kind)
	assert.Equal(t, 0.9, m.Confidence)
	assert.Equal(t, "how does food pulse work", m.Question)
}

func TestMatchKeywordFirstInOrderWins(t *testing.T) {
	// "purpose" belongs to both "what is food pulse" and "mission and vision"
	m := DefaultFAQ().Match("our purpose here")
	assert.Equal(t, MatchKeyword, m.Kind)
	assert.Equal(t, "what is food pulse", m.Question)
}

func TestMatchFuzzy(t *testing.T) {
	faq := DefaultFAQ()
	q := "how to register as a restaurnt"
	m := faq.Match(q)
	require.Equal(t, MatchFuzzy, m.Kind)
	assert.Equal(t, "how to register as a restaurant", m.Question)
	assert.Equal(t, "registration", m.Category)
	assert.InDelta(t, Similarity(q, m.Question), m.Confidence, 1e-9)
	assert.True(t, m.Accepted())
}

func TestMatchFuzzyThresholds(t *testing.T) {
	faq, err := ParseFAQ([]byte(`
- category: letters
  entries: [{question: abcdefghij, answer: letters}]
`))
	require.NoError(t, err)

	m := faq.Match("abcdefghxy")
	assert.Equal(t, MatchFuzzy, m.Kind)
	assert.InDelta(t, 0.8, m.Confidence, 1e-9)
	assert.True(t, m.Accepted())
	assert.True(t, m.Hedged())

	m = faq.Match("abcdefgxyz")
	assert.Equal(t, MatchFuzzy, m.Kind)
	assert.InDelta(t, 0.7, m.Confidence, 1e-9)
	assert.False(t, m.Accepted())

	m = faq.Match("abcdefxyzw")
	assert.Equal(t, MatchNone, m.Kind)
	assert.Zero(t, m.Confidence)
	assert.Empty(t, m.Answer)
	assert.Empty(t, m.Category)
}

func TestMatchFuzzyNeverAtOrBelowThreshold(t *testing.T) {
	faq := DefaultFAQ()
	queries := []string{
		"how can ngo request donation",
		"who handles pickups",
		"food safty guidelins",
		"environmental impacts",
		"what are benefit for restaurant",
		"random words about nothing",
		"x",
	}
	for _, q := range queries {
		m := faq.Match(q)
		if m.Kind == MatchFuzzy {
			assert.Greater(t, m.Confidence, SimilarityThreshold, q)
		}
		if m.Kind == MatchNone {
			assert.Zero(t, m.Confidence, q)
		}
	}
}

func TestMatchNone(t *testing.T) {
	m := DefaultFAQ().Match("qqqq zzzz")
	assert.Equal(t, MatchNone, m.Kind)
	assert.False(t, m.Accepted())
	assert.Equal(t, "none", m.Kind.String())
}

func TestSimilarity(t *testing.T) {
	assert.Equal(t, 1.0, Similarity("abc", "abc"))
	assert.Equal(t, 0.0, Similarity("abc", "xyz"))
	assert.InDelta(t, 0.75, Similarity("abcd", "bcde"), 1e-9)
}
