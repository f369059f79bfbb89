package search

import (
	"strings"
	"unicode"
)

// Words ignored when checking whether a verse quotes the query. Includes the
// archaic pronouns and auxiliaries common in older translations.
var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "be": true, "is": true, "are": true,
	"was": true, "to": true, "of": true, "and": true, "in": true, "that": true,
	"have": true, "it": true, "for": true, "not": true, "on": true, "with": true,
	"as": true, "you": true, "do": true, "at": true, "this": true, "but": true,
	"by": true, "from": true, "unto": true, "thee": true, "thou": true,
	"thy": true, "thine": true, "ye": true, "shall": true, "he": true, "his": true,
	"hath": true, "art": true, "o": true,
}

// apostrophes seen in source texts, straight and typographic.
const apostrophes = "'‘’"

// isWordRune keeps letters, digits and apostrophes. Everything else, including
// pilcrows, editorial brackets and hyphens in compound names, separates words.
func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || strings.ContainsRune(apostrophes, r)
}

// normalizeWord lowercases a token and drops surrounding and possessive apostrophes,
// so "LORD's" and "lord" compare equal.
func normalizeWord(word string) string {
	word = strings.ToLower(strings.Trim(word, apostrophes))
	for _, suffix := range []string{"'s", "’s"} {
		word = strings.TrimSuffix(word, suffix)
	}
	return strings.Trim(word, apostrophes)
}

// tokenizeAndFilter splits verse text into lowercase words without stop words.
func tokenizeAndFilter(text string) []string {
	words := strings.FieldsFunc(text, func(r rune) bool { return !isWordRune(r) })
	filtered := make([]string, 0, len(words))

	for _, word := range words {
		cleaned := normalizeWord(word)
		if cleaned != "" && !stopWords[cleaned] {
			filtered = append(filtered, cleaned)
		}
	}

	return filtered
}

// containsAllQueryWords reports whether every significant query word occurs in the verse.
func containsAllQueryWords(verse, query string) bool {
	queryWords := tokenizeAndFilter(query)
	if len(queryWords) == 0 {
		return false
	}

	verseWords := make(map[string]bool)
	for _, word := range tokenizeAndFilter(verse) {
		verseWords[word] = true
	}

	for _, word := range queryWords {
		if !verseWords[word] {
			return false
		}
	}
	return true
}
