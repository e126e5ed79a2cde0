package tlaudit

import "strings"

// DefaultLanguage is used when a requested tag matches no known profile.
const DefaultLanguage = "sv-SE"

// Profile describes a target language by the characters that only appear in
// properly localized text.
type Profile struct {
	Tag   string // BCP-47 style tag, e.g. "sv-SE"
	Chars string // Diagnostic characters, upper and lower case
}

// profiles is ordered; prefix resolution picks the first match.
var profiles = []Profile{
	{Tag: "sv-SE", Chars: "åäöÅÄÖ"},
	{Tag: "nb-NO", Chars: "æøåÆØÅ"},
	{Tag: "da-DK", Chars: "æøåÆØÅ"},
	{Tag: "de-DE", Chars: "äöüßÄÖÜ"},
	{Tag: "fr-FR", Chars: "éèêëàâùûçîïôÉÈÊËÀÂÙÛÇÎÏÔ"},
	{Tag: "es-ES", Chars: "ñáéíóúüÑÁÉÍÓÚÜ"},
	{Tag: "pt-BR", Chars: "ãõáéíóúâêôçÃÕÁÉÍÓÚÂÊÔÇ"},
	{Tag: "it-IT", Chars: "àèéìòùÀÈÉÌÒÙ"},
	{Tag: "pl-PL", Chars: "ąćęłńóśźżĄĆĘŁŃÓŚŹŻ"},
	{Tag: "fi-FI", Chars: "äöÄÖ"},
}

var profilesByTag = func() map[string]Profile {
	m := make(map[string]Profile, len(profiles))
	for _, p := range profiles {
		m[p.Tag] = p
	}
	return m
}()

// LanguageNames maps supported tags to human-readable names.
var LanguageNames = map[string]string{
	"sv-SE": "Swedish (Sweden)",
	"nb-NO": "Norwegian Bokmål (Norway)",
	"da-DK": "Danish (Denmark)",
	"de-DE": "German (Germany)",
	"fr-FR": "French (France)",
	"es-ES": "Spanish (Spain)",
	"pt-BR": "Portuguese (Brazil)",
	"it-IT": "Italian (Italy)",
	"pl-PL": "Polish (Poland)",
	"fi-FI": "Finnish (Finland)",
}

// SupportedLanguages returns the supported tags in resolution order.
func SupportedLanguages() []string {
	tags := make([]string, len(profiles))
	for i, p := range profiles {
		tags[i] = p.Tag
	}
	return tags
}

// ResolveProfile returns the profile for a language tag.
// Exact tags win, then the first supported tag starting with the input
// (so "fr" resolves to "fr-FR"), and finally the default profile.
func ResolveProfile(tag string) Profile {
	tag = NormalizeLocale(strings.TrimSpace(tag))
	if p, ok := profilesByTag[tag]; ok {
		return p
	}
	if tag != "" {
		for _, p := range profiles {
			if strings.HasPrefix(p.Tag, tag) {
				return p
			}
		}
	}
	return profilesByTag[DefaultLanguage]
}

// GetLanguageName returns the human-readable name for a tag.
// Falls back to the tag itself if not found.
func GetLanguageName(tag string) string {
	if name, ok := LanguageNames[NormalizeLocale(tag)]; ok {
		return name
	}
	return tag
}

// NormalizeLocale converts a locale code to tag form (e.g., "sv_SE" → "sv-SE").
func NormalizeLocale(tag string) string {
	return strings.ReplaceAll(tag, "_", "-")
}
