// Package tokenizer cuts hanzi text into lexicon words for training.
// Segmentation walks a DAG of candidate cuts up to a configurable look
// ahead depth and picks the winner by a filter cascade: greatest
// cumulative length, greatest average word length, smallest word-length
// variance, largest single-character frequency sum. Stretches with no
// lexical cover become non-lexical tokens.
package tokenizer

import (
	"errors"
	"math"
	"unicode/utf8"

	"github.com/qwwqe/pyime/entities/corpus"
	"github.com/qwwqe/pyime/lexicon"
)

type Tokenizer interface {
	Tokenize(text string, lex lexicon.Lexicon) ([]corpus.Word, error)
}

type Options struct {
	// MaxDepth bounds how many words ahead the segmenter looks when
	// comparing candidate cuts. Zero means the default of 3.
	MaxDepth int
}

const defaultMaxDepth = 3

type dagTokenizer struct {
	maxDepth int
}

func NewTokenizer(options *Options) Tokenizer {
	maxDepth := defaultMaxDepth
	if options != nil && options.MaxDepth > 0 {
		maxDepth = options.MaxDepth
	}
	return &dagTokenizer{maxDepth: maxDepth}
}

// chain is one candidate segmentation prefix, linked newest to oldest.
// The root of a chain has depth 0 and carries only the start offset.
type chain struct {
	word   string
	freq   int
	depth  int
	runes  int // runes in this word
	total  int // cumulative runes along the chain
	offset int // text offset after this word
	prev   *chain
}

func (t *dagTokenizer) Tokenize(text string, lex lexicon.Lexicon) ([]corpus.Word, error) {
	if !utf8.ValidString(text) {
		return nil, errors.New("tokenizer: invalid UTF-8 sequence")
	}

	var words []corpus.Word
	offset := 0
	for offset < len(text) {
		root := &chain{offset: offset}
		heads, failure := extend(text, root, lex)

		// No lexical word starts here. Clump the prefix-viable run into
		// one non-lexical token and move past it.
		if len(heads) == 0 {
			if failure == offset {
				break
			}
			words = append(words, corpus.Word{Word: text[offset:failure]})
			offset = failure
			continue
		}

		best := t.search(text, heads, lex)
		best = filterByAverageLength(best)
		best = filterByLengthVariance(best)
		best = filterBySingleCharFrequency(best)

		chosen := best[0]
		offset = chosen.offset
		tail := len(words)
		for i := 0; i < chosen.depth; i++ {
			words = append(words, corpus.Word{})
		}
		for i, c := tail+chosen.depth-1, chosen; c != nil && c.depth > 0; i, c = i-1, c.prev {
			words[i] = corpus.Word{Word: c.word, Lexical: true}
		}
	}

	return words, nil
}

// search explores chains breadth first up to the depth bound and keeps
// those covering the most runes.
func (t *dagTokenizer) search(text string, heads []*chain, lex lexicon.Lexicon) []*chain {
	var best []*chain
	queue := heads
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]

		if len(best) == 0 || c.total > best[0].total {
			best = []*chain{c}
		} else if c.total == best[0].total {
			best = append(best, c)
		}

		if c.depth < t.maxDepth {
			next, _ := extend(text, c, lex)
			queue = append(queue, next...)
		}
	}
	return best
}

// extend returns a chain for every lexicon word starting where c ends,
// plus the offset at which the walk stopped for good.
func extend(text string, c *chain, lex lexicon.Lexicon) ([]*chain, int) {
	var found []*chain
	base := c.offset
	width := 0
	runes := 0
	for base+width < len(text) {
		_, w := utf8.DecodeRuneInString(text[base+width:])
		if w == 0 {
			break
		}
		width += w
		runes++
		word := text[base : base+width]
		freq, isPrefix, exists := lex.GetLexemeFrequency(word)
		if exists {
			found = append(found, &chain{
				word:   word,
				freq:   freq,
				depth:  c.depth + 1,
				runes:  runes,
				total:  c.total + runes,
				offset: base + width,
				prev:   c,
			})
		}

		if !exists && !isPrefix {
			break
		}
	}

	return found, base + width
}

func filterByAverageLength(candidates []*chain) []*chain {
	var kept []*chain
	greatest := -1.0
	for _, c := range candidates {
		mean := float64(c.total) / float64(c.depth)
		if len(kept) == 0 || mean > greatest {
			kept = []*chain{c}
			greatest = mean
		} else if mean == greatest {
			kept = append(kept, c)
		}
	}
	return kept
}

func filterByLengthVariance(candidates []*chain) []*chain {
	var kept []*chain
	least := math.MaxFloat64
	for _, c := range candidates {
		mean := float64(c.total) / float64(c.depth)
		sum := 0.0
		for s := c; s != nil && s.depth > 0; s = s.prev {
			d := float64(s.runes) - mean
			sum += d * d
		}
		variance := sum / float64(c.depth)

		if len(kept) == 0 || variance < least {
			kept = []*chain{c}
			least = variance
		} else if variance == least {
			kept = append(kept, c)
		}
	}
	return kept
}

func filterBySingleCharFrequency(candidates []*chain) []*chain {
	var kept []*chain
	greatest := -1
	for _, c := range candidates {
		sum := 0
		for s := c; s != nil && s.depth > 0; s = s.prev {
			if s.runes == 1 {
				sum += s.freq
			}
		}

		if len(kept) == 0 || sum > greatest {
			kept = []*chain{c}
			greatest = sum
		} else if sum == greatest {
			kept = append(kept, c)
		}
	}
	return kept
}

// Sentences groups consecutive lexical words, splitting at every
// non-lexical token. Training feeds each group to the history model as
// one sentence.
func Sentences(words []corpus.Word) [][]string {
	var sentences [][]string
	var current []string
	for _, w := range words {
		if w.Lexical {
			current = append(current, w.Word)
			continue
		}
		if len(current) > 0 {
			sentences = append(sentences, current)
			current = nil
		}
	}
	if len(current) > 0 {
		sentences = append(sentences, current)
	}
	return sentences
}
