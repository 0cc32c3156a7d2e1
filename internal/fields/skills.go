package fields

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/a3tai/resume-extractor/internal/nlp"
)

// Strategy names accepted by NewSkillStrategy
const (
	StrategyNouns    = "nouns"
	StrategyTaxonomy = "taxonomy"
)

// SkillStrategy turns an analyzed document into a skills list
type SkillStrategy interface {
	Skills(analysis *nlp.Analysis) []string
}

// NounSkills reports every distinct common noun in the document
type NounSkills struct{}

// Skills returns the sorted set of common noun tokens
func (NounSkills) Skills(analysis *nlp.Analysis) []string {
	if analysis == nil {
		return []string{}
	}

	seen := make(map[string]struct{})
	for _, tok := range analysis.Tokens {
		if nlp.IsCommonNoun(tok.Tag) {
			seen[tok.Text] = struct{}{}
		}
	}

	out := make([]string, 0, len(seen))
	for s := range seen {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// DefaultTaxonomy is used when no skills file is configured
var DefaultTaxonomy = []string{
	"Go", "Golang", "Python", "Java", "JavaScript", "TypeScript", "C++", "C#", "Ruby", "PHP",
	"Rust", "Kotlin", "Swift", "SQL", "PostgreSQL", "MySQL", "MongoDB", "Redis",
	"React", "Angular", "Vue", "Node.js", "Django", "Flask", "Spring",
	"Docker", "Kubernetes", "AWS", "Azure", "GCP", "Terraform", "Linux", "Git",
	"Machine Learning", "Deep Learning", "Data Analysis", "TensorFlow", "PyTorch",
	"Excel", "Communication", "Leadership", "Project Management",
}

// TaxonomySkills matches a fixed keyword list against the document text
type TaxonomySkills struct {
	keywords []string
}

type taxonomyFile struct {
	Skills []string `yaml:"skills"`
}

// NewTaxonomySkills builds a strategy over keywords. Empty entries are ignored.
func NewTaxonomySkills(keywords []string) *TaxonomySkills {
	kept := make([]string, 0, len(keywords))
	for _, k := range keywords {
		if k = strings.TrimSpace(k); k != "" {
			kept = append(kept, k)
		}
	}
	return &TaxonomySkills{keywords: kept}
}

// LoadTaxonomy reads a YAML file of the form `skills: [Go, SQL]`
func LoadTaxonomy(path string) (*TaxonomySkills, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read skills file: %w", err)
	}

	var f taxonomyFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse skills file %s: %w", path, err)
	}
	if len(f.Skills) == 0 {
		return nil, fmt.Errorf("skills file %s lists no skills", path)
	}
	return NewTaxonomySkills(f.Skills), nil
}

// Skills returns the keywords found in the document, in taxonomy order
func (t *TaxonomySkills) Skills(analysis *nlp.Analysis) []string {
	out := []string{}
	if analysis == nil || analysis.Text == "" {
		return out
	}

	text := strings.ToLower(analysis.Text)
	for _, k := range t.keywords {
		if containsWord(text, strings.ToLower(k)) {
			out = append(out, k)
		}
	}
	return out
}

// containsWord reports whether word occurs in text without a letter or
// digit directly before or after it
func containsWord(text, word string) bool {
	for start := 0; start < len(text); {
		i := strings.Index(text[start:], word)
		if i < 0 {
			return false
		}
		i += start
		end := i + len(word)

		before, _ := utf8.DecodeLastRuneInString(text[:i])
		after, _ := utf8.DecodeRuneInString(text[end:])
		if (i == 0 || !isWordRune(before)) && (end == len(text) || !isWordRune(after)) {
			return true
		}
		_, size := utf8.DecodeRuneInString(text[i:])
		start = i + size
	}
	return false
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// NewSkillStrategy resolves a strategy name. skillsFile only applies to the
// taxonomy strategy; when empty the built-in list is used.
func NewSkillStrategy(name, skillsFile string) (SkillStrategy, error) {
	switch name {
	case StrategyNouns, "":
		return NounSkills{}, nil
	case StrategyTaxonomy:
		if skillsFile == "" {
			return NewTaxonomySkills(DefaultTaxonomy), nil
		}
		return LoadTaxonomy(skillsFile)
	default:
		return nil, fmt.Errorf("unknown skills strategy: %s", name)
	}
}
