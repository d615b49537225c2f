// Package textproc holds the pure text utilities of the quiz pipeline:
// extractive summarization, keyword frequency ranking, and the context
// gate that decides between document and keyword question generation.
package textproc

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"
)

// sentenceBoundary splits on terminal punctuation followed by whitespace.
// Of the two historical policies (literal ". " versus a punctuation
// regex), the regex is the documented choice: it also breaks on "!" and
// "?" and tolerates arbitrary whitespace after the terminator.
var sentenceBoundary = regexp.MustCompile(`([.!?])\s+`)

// nonAlphanumeric matches every character outside [a-z0-9 ] after
// lowercasing
var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9 ]`)

// Stopwords is the fixed set of common words excluded from keyword
// frequency counting.
var Stopwords = map[string]struct{}{
	"the": {}, "is": {}, "and": {}, "in": {}, "of": {}, "to": {}, "a": {},
	"on": {}, "for": {}, "as": {}, "by": {}, "with": {}, "an": {}, "it": {},
	"this": {}, "that": {}, "are": {}, "be": {}, "or": {}, "from": {},
	"at": {}, "was": {}, "were": {}, "you": {}, "your": {},
}

// Summarize returns the first maxSentences sentence units of text,
// joined. Purely extractive: no scoring, no redundancy elimination. With
// fewer units than maxSentences the whole text comes back unchanged.
func Summarize(text string, maxSentences int) string {
	if maxSentences <= 0 {
		return ""
	}

	var sentences []string
	last := 0
	for _, loc := range sentenceBoundary.FindAllStringSubmatchIndex(text, -1) {
		// loc[3] is the end of the punctuation group; keep the terminator
		// with its sentence
		sentences = append(sentences, text[last:loc[3]])
		last = loc[1]
		if len(sentences) == maxSentences {
			return strings.Join(sentences, " ")
		}
	}
	if last < len(text) {
		sentences = append(sentences, text[last:])
	}
	return strings.Join(sentences, " ")
}

// ExtractKeywords ranks the significant words of text by descending
// frequency and returns at most maxKeywords of them, lowercased and
// distinct. Tokens in Stopwords or of length <= 3 are discarded. Ties in
// frequency break by first occurrence in the text, which makes the
// ranking deterministic.
func ExtractKeywords(text string, maxKeywords int) []string {
	if maxKeywords <= 0 {
		return nil
	}

	normalized := nonAlphanumeric.ReplaceAllString(strings.ToLower(text), " ")

	freq := make(map[string]int)
	firstSeen := make(map[string]int)
	for i, w := range strings.Fields(normalized) {
		if len(w) <= 3 {
			continue
		}
		if _, stop := Stopwords[w]; stop {
			continue
		}
		if _, seen := freq[w]; !seen {
			firstSeen[w] = i
		}
		freq[w]++
	}

	keywords := make([]string, 0, len(freq))
	for w := range freq {
		keywords = append(keywords, w)
	}
	sort.Slice(keywords, func(i, j int) bool {
		if freq[keywords[i]] != freq[keywords[j]] {
			return freq[keywords[i]] > freq[keywords[j]]
		}
		return firstSeen[keywords[i]] < firstSeen[keywords[j]]
	})

	if len(keywords) > maxKeywords {
		keywords = keywords[:maxKeywords]
	}
	return keywords
}

// HasEnoughContext reports whether the trimmed text meets the minimum
// length to generate questions directly from the document. Length is
// counted in characters, not bytes, so non-ASCII material is not
// inflated. Exactly minLength characters is enough.
func HasEnoughContext(text string, minLength int) bool {
	return utf8.RuneCountInString(strings.TrimSpace(text)) >= minLength
}
