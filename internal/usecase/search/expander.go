package search

import (
	"regexp"
	"strings"
)

// synonymEntry maps a domain keyword to synonym phrases. The table is scanned
// in order and only the first matching key produces a variant, so expansion
// yields at most one substitution variant per query, never a cross product.
type synonymEntry struct {
	key     string
	phrases []string
}

var synonymTable = []synonymEntry{
	{"rag", []string{"retrieval augmented generation"}},
	{"llm", []string{"large language model"}},
	{"embedding", []string{"vector representation"}},
	{"chunk", []string{"document segment"}},
	{"rerank", []string{"rescore"}},
	{"bm25", []string{"keyword relevance scoring"}},
	{"semantic search", []string{"meaning based retrieval"}},
	{"context window", []string{"prompt length limit"}},
}

// stopWords is the fixed English stop-word list for the keyword variant.
var stopWords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "but": {},
	"is": {}, "are": {}, "was": {}, "were": {}, "be": {}, "been": {},
	"what": {}, "which": {}, "who": {}, "how": {}, "when": {}, "where": {}, "why": {},
	"do": {}, "does": {}, "did": {}, "can": {}, "could": {}, "should": {}, "would": {},
	"i": {}, "you": {}, "it": {}, "this": {}, "that": {}, "these": {}, "those": {},
	"of": {}, "in": {}, "on": {}, "for": {}, "to": {}, "with": {}, "about": {},
	"as": {}, "at": {}, "by": {}, "from": {}, "into": {}, "me": {}, "my": {},
	"please": {}, "tell": {},
}

// Expand generates query variants to widen recall. The returned set always
// contains the original query first, followed by at most one synonym
// substitution variant and at most one stop-word-stripped keyword variant,
// de-duplicated.
func Expand(query string) []string {
	variants := []string{query}
	lowered := strings.ToLower(query)

	for _, entry := range synonymTable {
		if !strings.Contains(lowered, entry.key) {
			continue
		}
		re := regexp.MustCompile("(?i)" + regexp.QuoteMeta(entry.key))
		v := re.ReplaceAllString(query, entry.phrases[0])
		variants = appendUnique(variants, v)
		break
	}

	if stripped := stripStopWords(query); stripped != query && len(stripped) > 3 {
		variants = appendUnique(variants, stripped)
	}

	return variants
}

// stripStopWords removes stop words and words of length <= 2, keeping the
// remaining words in their original order and casing.
func stripStopWords(query string) string {
	var kept []string
	for _, word := range strings.Fields(query) {
		bare := strings.ToLower(strings.Trim(word, ".,!?;:'\""))
		if len(bare) <= 2 {
			continue
		}
		if _, stop := stopWords[bare]; stop {
			continue
		}
		kept = append(kept, word)
	}
	return strings.Join(kept, " ")
}

func appendUnique(variants []string, v string) []string {
	for _, existing := range variants {
		if existing == v {
			return variants
		}
	}
	return append(variants, v)
}
