package fields

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/a3tai/resume-extractor/internal/record"
)

var (
	namePattern  = regexp.MustCompile(`[A-Z][a-z]+(?:\s[A-Z][a-z]+)+`)
	emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	phonePattern = regexp.MustCompile(`\+?\d{1,3}[-.\s]?(?:\(?\d{1,4}?\)?[-.\s]?)?\d{1,4}[-.\s]?\d{1,4}[-.\s]?\d{1,9}`)
)

// ExtractName returns the first run of two or more capitalized words.
// Headings such as "Curriculum Vitae" match as well.
func ExtractName(text string) string {
	return firstMatch(namePattern, text)
}

// ExtractEmail returns the first email address in text
func ExtractEmail(text string) string {
	return firstMatch(emailPattern, text)
}

// ExtractPhone returns the first phone-like digit sequence in text
func ExtractPhone(text string) string {
	return firstMatch(phonePattern, text)
}

func firstMatch(re *regexp.Regexp, text string) string {
	if m := re.FindString(text); m != "" {
		return m
	}
	return record.NotFound
}

// PhoneNormalizer rewrites phone numbers into international digit form for
// a single country calling code. The zero value leaves numbers untouched.
type PhoneNormalizer struct {
	CountryCode string
}

// Normalize applies the rule to phone. Sentinel values pass through.
func (n PhoneNormalizer) Normalize(phone string) string {
	if n.CountryCode == "" || phone == record.NotFound || phone == record.ExtractionFailed {
		return phone
	}

	digits := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, phone)
	if digits == "" {
		return phone
	}

	if strings.HasPrefix(digits, n.CountryCode) {
		return digits
	}
	return n.CountryCode + strings.TrimPrefix(digits, "0")
}
