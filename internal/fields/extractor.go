// Package fields pulls contact details, skills, experience and education out
// of the plain text of a résumé.
package fields

import (
	"github.com/a3tai/resume-extractor/internal/nlp"
)

// Fields holds everything extracted from one document's text
type Fields struct {
	Name       string
	Email      string
	Phone      string
	Skills     []string
	Experience []string
	Education  []string
}

// Extractor runs the regex extractors and a single NLP pass over text
type Extractor struct {
	analyzer nlp.Analyzer
	skills   SkillStrategy
	phone    PhoneNormalizer
}

// Option configures an Extractor
type Option func(*Extractor)

// WithAnalyzer replaces the default prose analyzer
func WithAnalyzer(a nlp.Analyzer) Option {
	return func(e *Extractor) {
		e.analyzer = a
	}
}

// WithSkillStrategy replaces the default noun strategy
func WithSkillStrategy(s SkillStrategy) Option {
	return func(e *Extractor) {
		e.skills = s
	}
}

// WithCountryCode enables phone normalization for a calling code
func WithCountryCode(code string) Option {
	return func(e *Extractor) {
		e.phone = PhoneNormalizer{CountryCode: code}
	}
}

// NewExtractor creates an extractor with the prose analyzer, noun skills and
// no phone normalization unless overridden
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{
		analyzer: nlp.NewProseAnalyzer(),
		skills:   NounSkills{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract returns the fields found in text. When the NLP pass fails the
// regex fields are still returned, with empty lists, alongside the error.
func (e *Extractor) Extract(text string) (*Fields, error) {
	f := &Fields{
		Name:       ExtractName(text),
		Email:      ExtractEmail(text),
		Phone:      e.phone.Normalize(ExtractPhone(text)),
		Skills:     []string{},
		Experience: []string{},
		Education:  []string{},
	}

	analysis, err := e.analyzer.Analyze(text)
	if err != nil {
		return f, err
	}

	f.Skills = e.skills.Skills(analysis)
	f.Experience = ExtractExperience(analysis.Sentences)
	f.Education = ExtractEducation(analysis.Sentences)
	return f, nil
}
