package fields

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/a3tai/resume-extractor/internal/nlp"
	"github.com/a3tai/resume-extractor/internal/record"
)

type fakeAnalyzer struct {
	analysis *nlp.Analysis
	err      error
	calls    int
}

func (f *fakeAnalyzer) Analyze(text string) (*nlp.Analysis, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	a := *f.analysis
	a.Text = text
	return &a, nil
}

func TestExtractor_Extract(t *testing.T) {
	analyzer := &fakeAnalyzer{analysis: &nlp.Analysis{
		Tokens: []nlp.Token{{Text: "engineer", Tag: "NN"}, {Text: "John", Tag: "NNP"}},
		Sentences: []string{
			"John Smith is a software engineer.",
			"Two years of experience with Go.",
			"BS from the state university.",
		},
	}}
	e := NewExtractor(WithAnalyzer(analyzer), WithCountryCode("92"))

	text := "John Smith is a software engineer. Two years of experience with Go. " +
		"BS from the state university. john@example.com 0300-1234567"
	f, err := e.Extract(text)
	require.NoError(t, err)

	assert.Equal(t, 1, analyzer.calls)
	assert.Equal(t, "John Smith", f.Name)
	assert.Equal(t, "john@example.com", f.Email)
	assert.Equal(t, "923001234567", f.Phone)
	assert.Equal(t, []string{"engineer"}, f.Skills)
	assert.Equal(t, []string{"Two years of experience with Go."}, f.Experience)
	assert.Equal(t, []string{"BS from the state university."}, f.Education)
}

func TestExtractor_AnalyzerFailure(t *testing.T) {
	e := NewExtractor(WithAnalyzer(&fakeAnalyzer{err: errors.New("tagger crashed")}))

	f, err := e.Extract("Jane Doe jane@example.com")
	require.Error(t, err)
	require.NotNil(t, f)
	assert.Equal(t, "Jane Doe", f.Name)
	assert.Equal(t, "jane@example.com", f.Email)
	assert.Equal(t, record.NotFound, f.Phone)
	assert.Empty(t, f.Skills)
	assert.Empty(t, f.Experience)
}

func TestExtractor_WithProse(t *testing.T) {
	e := NewExtractor(WithSkillStrategy(NewTaxonomySkills([]string{"Python"})))

	f, err := e.Extract("Alice Walker is a data analyst. She has experience with Python. She studied at the university.")
	require.NoError(t, err)

	assert.Equal(t, "Alice Walker", f.Name)
	assert.Equal(t, []string{"Python"}, f.Skills)
	assert.Equal(t, []string{"She has experience with Python."}, f.Experience)
	assert.Equal(t, []string{"She studied at the university."}, f.Education)
}
