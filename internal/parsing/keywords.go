package parsing

import (
	"sort"
)

// DefaultKeywordLimit is the number of keywords taken from a job description.
const DefaultKeywordLimit = 15

// minKeywordLength excludes short tokens; only words longer than this count.
const minKeywordLength = 3

// stopWords are common words that never count as keywords.
var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "and": true, "or": true, "but": true,
	"in": true, "on": true, "at": true, "to": true, "for": true, "of": true,
	"with": true, "by": true,
	"about": true, "also": true, "been": true, "being": true, "both": true,
	"could": true, "does": true, "each": true, "from": true, "have": true,
	"into": true, "more": true, "most": true, "must": true, "other": true,
	"over": true, "should": true, "some": true, "such": true, "than": true,
	"that": true, "their": true, "them": true, "then": true, "there": true,
	"these": true, "they": true, "this": true, "those": true, "through": true,
	"very": true, "were": true, "what": true, "when": true, "where": true,
	"which": true, "while": true, "will": true, "within": true, "would": true,
	"your": true, "ours": true, "across": true, "including": true,
}

// IsStopWord reports whether word is excluded from keyword extraction.
func IsStopWord(word string) bool {
	return stopWords[word]
}

// ExtractKeywords returns the most frequent significant words of text, most
// frequent first. Words tied on frequency keep their first-appearance order.
func ExtractKeywords(text string, limit int) []string {
	if limit <= 0 {
		limit = DefaultKeywordLimit
	}

	frequency := make(map[string]int)
	var order []string
	for _, word := range Tokenize(text) {
		if len(word) <= minKeywordLength || IsStopWord(word) {
			continue
		}
		if frequency[word] == 0 {
			order = append(order, word)
		}
		frequency[word]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return frequency[order[i]] > frequency[order[j]]
	})

	if len(order) > limit {
		order = order[:limit]
	}
	return order
}
