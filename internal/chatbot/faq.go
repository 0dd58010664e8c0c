package chatbot

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed faq.yaml
var defaultFAQData []byte

// FAQEntry a canonical question with its answer and trigger keywords.
type FAQEntry struct {
	Question string   `yaml:"question"`
	Answer   string   `yaml:"answer"`
	Keywords []string `yaml:"keywords"`
}

// FAQCategory keeps its entries in declaration order.
type FAQCategory struct {
	Name    string     `yaml:"category"`
	Entries []FAQEntry `yaml:"entries"`
}

// FAQ immutable, ordered question/answer store. Safe for concurrent use
// because nothing mutates it after parsing.
type FAQ struct {
	categories []FAQCategory
}

// ParseFAQ parses and validates YAML FAQ data. Question keys are stored
// lowercased and must be unique across categories.
func ParseFAQ(data []byte) (*FAQ, error) {
	var categories []FAQCategory
	if err := yaml.Unmarshal(data, &categories); err != nil {
		return nil, fmt.Errorf("failed to parse faq: %w", err)
	}
	if len(categories) == 0 {
		return nil, errors.New("faq has no categories")
	}

	seen := make(map[string]string)
	for ci := range categories {
		cat := &categories[ci]
		if strings.TrimSpace(cat.Name) == "" {
			return nil, fmt.Errorf("faq category %d has no name", ci)
		}
		for ei := range cat.Entries {
			e := &cat.Entries[ei]
			e.Question = strings.ToLower(strings.TrimSpace(e.Question))
			if e.Question == "" || strings.TrimSpace(e.Answer) == "" {
				return nil, fmt.Errorf("faq category %s: entry %d needs a question and an answer", cat.Name, ei)
			}
			if other, dup := seen[e.Question]; dup {
				return nil, fmt.Errorf("faq question %q defined in both %s and %s", e.Question, other, cat.Name)
			}
			seen[e.Question] = cat.Name

			for ki, kw := range e.Keywords {
				kw = strings.ToLower(kw)
				if strings.TrimSpace(kw) == "" {
					return nil, fmt.Errorf("faq question %q has an empty keyword", e.Question)
				}
				e.Keywords[ki] = kw
			}
		}
	}
	return &FAQ{categories: categories}, nil
}

// DefaultFAQ the built-in Food Pulse FAQ.
func DefaultFAQ() *FAQ {
	faq, err := ParseFAQ(defaultFAQData)
	if err != nil {
		panic(fmt.Sprintf("embedded faq is invalid: %v", err))
	}
	return faq
}

// LoadFAQ reads an FAQ file; an empty path yields the built-in FAQ.
func LoadFAQ(path string) (*FAQ, error) {
	if path == "" {
		return DefaultFAQ(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read faq file: %w", err)
	}
	return ParseFAQ(data)
}

// Categories returns a copy of the categories in match order.
func (f *FAQ) Categories() []FAQCategory {
	out := make([]FAQCategory, len(f.categories))
	for i, c := range f.categories {
		out[i] = FAQCategory{Name: c.Name, Entries: append([]FAQEntry(nil), c.Entries...)}
	}
	return out
}

// Len number of questions.
func (f *FAQ) Len() int {
	n := 0
	for _, c := range f.categories {
		n += len(c.Entries)
	}
	return n
}

// each visits entries in match order until fn returns false.
func (f *FAQ) each(fn func(category string, e FAQEntry) bool) {
	for _, c := range f.categories {
		for _, e := range c.Entries {
			if !fn(c.Name, e) {
				return
			}
		}
	}
}
