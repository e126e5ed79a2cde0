package tlaudit

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ZaguanLabs/tlaudit/exceptions"
)

// Class is the outcome of classifying a raw string.
type Class int

const (
	// ClassCandidate is readable text that may need translation.
	ClassCandidate Class = iota
	// ClassNonTranslatable is a structural literal: color, number, boolean, URL, font list...
	ClassNonTranslatable
	// ClassUnreadable has no letters or looks like an internal identifier.
	ClassUnreadable
)

func (c Class) String() string {
	switch c {
	case ClassCandidate:
		return "candidate"
	case ClassNonTranslatable:
		return "non-translatable"
	case ClassUnreadable:
		return "unreadable"
	default:
		return "unknown"
	}
}

// nonTranslatablePatterns are matched against the de-quoted value.
var nonTranslatablePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^#[0-9a-fA-F]{3,8}$`),
	regexp.MustCompile(`^rgba?\(`),
	regexp.MustCompile(`^-?\p{Nd}+(\.\p{Nd}+)?[DL]?$`),
	regexp.MustCompile(`(?i)^(true|false)$`),
	regexp.MustCompile(`^datetime'.*'$`),
	regexp.MustCompile(`^null$`),
	regexp.MustCompile(`^https?://`),
	regexp.MustCompile(`^[\p{Nd}\s\v\p{Zs}.,;:/%+\-–—=<>()]+$`),
}

var fontPattern = regexp.MustCompile(`(?i)(serif|sans-serif|mono|wf_|segoe|helvetica|arial|calibri|cambria|verdana|tahoma|trebuchet|georgia|consolas|courier)`)

// StripQuotes trims whitespace and removes one matching pair of surrounding
// single or double quotes.
func StripQuotes(text string) string {
	s := strings.TrimSpace(text)
	if len(s) >= 2 && s[0] == s[len(s)-1] && (s[0] == '\'' || s[0] == '"') {
		return s[1 : len(s)-1]
	}
	return s
}

// IsNonTranslatable reports whether raw is a structural literal that never
// needs translation.
func IsNonTranslatable(raw string) bool {
	clean := StripQuotes(raw)
	if utf8.RuneCountInString(clean) < 2 {
		return true
	}
	for _, p := range nonTranslatablePatterns {
		if p.MatchString(clean) {
			return true
		}
	}
	// A font name alone is not enough: prose may mention "Arial".
	if fontPattern.MatchString(clean) && strings.ContainsAny(clean, ",'") {
		return true
	}
	return false
}

// IsReadable reports whether raw contains letters and does not look like an
// internal identifier (leading underscore, no spaces).
func IsReadable(raw string) bool {
	clean := StripQuotes(raw)
	if strings.IndexFunc(clean, unicode.IsLetter) < 0 {
		return false
	}
	if strings.HasPrefix(clean, "_") && !strings.Contains(clean, " ") {
		return false
	}
	return true
}

// HasTargetChars reports whether text contains any diagnostic character of
// the profile.
func HasTargetChars(text string, p Profile) bool {
	return strings.ContainsAny(text, p.Chars)
}

// Classify applies the non-translatable check first, then readability.
func Classify(raw string) Class {
	if IsNonTranslatable(raw) {
		return ClassNonTranslatable
	}
	if !IsReadable(raw) {
		return ClassUnreadable
	}
	return ClassCandidate
}

// Classifier decides whether a candidate is reportable for one target
// language and allow-list.
type Classifier struct {
	profile   Profile
	knownGood exceptions.Set
}

// NewClassifier creates a classifier. knownGood may be nil.
func NewClassifier(profile Profile, knownGood exceptions.Set) *Classifier {
	return &Classifier{profile: profile, knownGood: knownGood}
}

// Profile returns the target language profile.
func (c *Classifier) Profile() Profile {
	return c.profile
}

// Reportable reports whether text is a candidate that is not already in the
// target language and not allow-listed.
func (c *Classifier) Reportable(text string) bool {
	return c.reportable(text, text)
}

// Literal de-quotes a literal expression value and reports whether the
// result is reportable. The structural checks see the raw value, the
// language checks see the de-quoted text that ends up in the report.
func (c *Classifier) Literal(raw string) (string, bool) {
	clean := StripQuotes(raw)
	return clean, c.reportable(raw, clean)
}

func (c *Classifier) reportable(raw, clean string) bool {
	if clean == "" || IsNonTranslatable(raw) || !IsReadable(clean) {
		return false
	}
	if HasTargetChars(clean, c.profile) {
		return false
	}
	return !c.knownGood.Has(clean)
}
