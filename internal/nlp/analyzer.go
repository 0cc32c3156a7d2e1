// Package nlp wraps the part-of-speech tagger and sentence segmenter used by
// the field extractors.
package nlp

import (
	"fmt"
	"strings"

	"github.com/jdkato/prose/v2"
)

// Token is a word with its Penn Treebank part-of-speech tag
type Token struct {
	Text string `json:"text"`
	Tag  string `json:"tag"`
}

// Analysis is the result of running the pipeline once over a document
type Analysis struct {
	Text      string   `json:"text"`
	Tokens    []Token  `json:"tokens"`
	Sentences []string `json:"sentences"`
}

// Analyzer tags and segments text
type Analyzer interface {
	Analyze(text string) (*Analysis, error)
}

// ProseAnalyzer implements Analyzer with github.com/jdkato/prose/v2.
// Named-entity extraction is disabled since no extractor uses it.
type ProseAnalyzer struct{}

// NewProseAnalyzer creates a prose backed analyzer
func NewProseAnalyzer() *ProseAnalyzer {
	return &ProseAnalyzer{}
}

// Analyze implements Analyzer
func (p *ProseAnalyzer) Analyze(text string) (*Analysis, error) {
	if strings.TrimSpace(text) == "" {
		return &Analysis{Text: text}, nil
	}

	doc, err := prose.NewDocument(text, prose.WithExtraction(false))
	if err != nil {
		return nil, fmt.Errorf("nlp pipeline failed: %w", err)
	}

	proseTokens := doc.Tokens()
	tokens := make([]Token, 0, len(proseTokens))
	for _, tok := range proseTokens {
		tokens = append(tokens, Token{Text: tok.Text, Tag: tok.Tag})
	}

	proseSentences := doc.Sentences()
	sentences := make([]string, 0, len(proseSentences))
	for _, sent := range proseSentences {
		if s := strings.TrimSpace(sent.Text); s != "" {
			sentences = append(sentences, s)
		}
	}

	return &Analysis{Text: text, Tokens: tokens, Sentences: sentences}, nil
}

// IsCommonNoun reports whether a Penn Treebank tag marks a common noun.
// Proper nouns (NNP, NNPS) are excluded.
func IsCommonNoun(tag string) bool {
	return tag == "NN" || tag == "NNS"
}
