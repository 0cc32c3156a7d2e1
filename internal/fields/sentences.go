package fields

import (
	"regexp"
	"strings"
)

var educationPattern = regexp.MustCompile(`(?i)\b(degree|university|college|education|studied|fsc|bs)\b`)

// ExtractExperience keeps sentences mentioning experience or internships
func ExtractExperience(sentences []string) []string {
	out := []string{}
	for _, s := range sentences {
		lower := strings.ToLower(s)
		if strings.Contains(lower, "experience") || strings.Contains(lower, "intern") {
			out = append(out, s)
		}
	}
	return out
}

// ExtractEducation keeps sentences with an education keyword
func ExtractEducation(sentences []string) []string {
	out := []string{}
	for _, s := range sentences {
		if educationPattern.MatchString(s) {
			out = append(out, s)
		}
	}
	return out
}
