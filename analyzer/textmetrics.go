package analyzer

import (
	"regexp"
	"sort"
	"strings"
)

var (
	nonWordRe    = regexp.MustCompile(`[^\p{L}\p{N}_\s-]`)
	whitespaceRe = regexp.MustCompile(`\s+`)
	sentenceRe   = regexp.MustCompile(`[.!?]+`)
)

// stopwords are excluded from keyword counting, together with tokens of
// length <= 2. Includes the bare hyphen and empty tokens that survive
// normalization.
var stopwords = map[string]struct{}{}

func init() {
	for _, w := range []string{
		"a", "an", "the", "and", "or", "but", "is", "in", "it", "of",
		"to", "on", "for", "with", "as", "by", "at", "this", "that",
		"i", "you", "he", "she", "we", "they", "be", "are", "was",
		"were", "has", "have", "had", "do", "does", "did", "will",
		"shall", "should", "can", "could", "may", "might", "must",
		"not", "no", "so", "if", "me", "my", "your", "our", "its",
		"-", "",
	} {
		stopwords[w] = struct{}{}
	}
}

// normalizeText lowercases, strips everything except word characters,
// whitespace and hyphens, and collapses whitespace runs to single spaces.
func normalizeText(text string) string {
	text = strings.ToLower(text)
	text = nonWordRe.ReplaceAllString(text, "")
	text = whitespaceRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// tokenize splits normalized text on whitespace.
func tokenize(text string) []string {
	return strings.Fields(text)
}

// filterStopwords drops stop words and very short tokens.
func filterStopwords(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if _, stop := stopwords[tok]; stop {
			continue
		}
		if len(tok) <= 2 {
			continue
		}
		out = append(out, tok)
	}
	return out
}

// orderedCounter counts strings while remembering first-occurrence order,
// so "most common" queries break count ties deterministically.
type orderedCounter struct {
	counts map[string]int
	order  []string
}

func newOrderedCounter() *orderedCounter {
	return &orderedCounter{counts: make(map[string]int)}
}

func (c *orderedCounter) add(key string) {
	if _, seen := c.counts[key]; !seen {
		c.order = append(c.order, key)
	}
	c.counts[key]++
}

func (c *orderedCounter) count(key string) int {
	return c.counts[key]
}

func (c *orderedCounter) len() int {
	return len(c.counts)
}

// mostCommon returns up to n (key, count) pairs ordered by count
// descending, ties broken by first occurrence.
func (c *orderedCounter) mostCommon(n int) []AnchorCount {
	entries := make([]AnchorCount, 0, len(c.order))
	for _, key := range c.order {
		entries = append(entries, AnchorCount{Text: key, Count: c.counts[key]})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})
	if n >= 0 && len(entries) > n {
		entries = entries[:n]
	}
	return entries
}

// topTerms ranks filtered tokens by frequency. Density is the share of the
// term among all filtered tokens, in percent. Returns nil for no tokens.
func topTerms(tokens []string, k int) []Keyword {
	if len(tokens) == 0 {
		return nil
	}
	counter := newOrderedCounter()
	for _, tok := range tokens {
		counter.add(tok)
	}
	total := len(tokens)
	ranked := counter.mostCommon(k)
	keywords := make([]Keyword, 0, len(ranked))
	for _, entry := range ranked {
		keywords = append(keywords, Keyword{
			Term:    entry.Text,
			Count:   entry.Count,
			Density: float64(entry.Count) / float64(total) * 100,
		})
	}
	return keywords
}

// fleschReadingEase computes the Flesch Reading Ease score for text.
// Higher is easier; 60+ reads as plain English. Only meaningful with a
// reasonable amount of text, which the caller enforces.
func fleschReadingEase(text string) (float64, bool) {
	words := strings.Fields(text)
	if len(words) == 0 {
		return 0, false
	}

	sentences := 0
	for _, part := range sentenceRe.Split(text, -1) {
		if strings.TrimSpace(part) != "" {
			sentences++
		}
	}
	if sentences == 0 {
		sentences = 1
	}

	syllables := 0
	for _, w := range words {
		syllables += countSyllables(w)
	}

	wordsPerSentence := float64(len(words)) / float64(sentences)
	syllablesPerWord := float64(syllables) / float64(len(words))
	return 206.835 - 1.015*wordsPerSentence - 84.6*syllablesPerWord, true
}

// countSyllables estimates syllables as vowel groups, with the usual
// silent-e adjustment. Never returns less than 1.
func countSyllables(word string) int {
	word = strings.TrimFunc(strings.ToLower(word), func(r rune) bool {
		return r < 'a' || r > 'z'
	})
	count := 0
	prevVowel := false
	for _, r := range word {
		vowel := strings.ContainsRune("aeiouy", r)
		if vowel && !prevVowel {
			count++
		}
		prevVowel = vowel
	}
	if strings.HasSuffix(word, "e") && count > 1 {
		count--
	}
	if count < 1 {
		count = 1
	}
	return count
}
