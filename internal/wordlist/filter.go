package wordlist

import (
	"strings"
	"unicode"
)

// FilterFunc returns true when a word should be kept.
type FilterFunc func(string) bool

// FilterForLang returns the filter applied to a language's word list.
// Every language drops words the input decoder cannot produce as plain
// characters; English is further limited to lowercase ASCII letters.
func FilterForLang(lang string) FilterFunc {
	if strings.EqualFold(lang, "en") || lang == "" {
		return lowerASCII
	}
	return typeable
}

func lowerASCII(word string) bool {
	if word == "" {
		return false
	}
	for i := 0; i < len(word); i++ {
		if word[i] < 'a' || word[i] > 'z' {
			return false
		}
	}
	return true
}

// typeable rejects empty words and words holding spaces, control runes or
// invalid UTF-8.
func typeable(word string) bool {
	if word == "" {
		return false
	}
	for _, r := range word {
		if r == unicode.ReplacementChar || unicode.IsSpace(r) || unicode.IsControl(r) {
			return false
		}
	}
	return true
}
