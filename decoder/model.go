// Package decoder turns a segmentation graph into ranked sentence
// candidates. It walks the graph with a dictionary that proposes words
// per span and a language model that prices each word in context,
// keeping the cheapest hypotheses per model state.
package decoder

import (
	"github.com/qwwqe/pyime/pinyin"
)

// InvalidWordIndex marks a word with no entry in the scoring model's
// vocabulary.
const InvalidWordIndex = -1

// State is an opaque language model context token. Values must be
// comparable so hypotheses sharing a context can be recombined.
type State any

// A LanguageModel prices words in context during the lattice search.
// Costs are log-domain and lower is better.
type LanguageModel interface {
	// Start returns the context at the beginning of input.
	Start() State

	// Cost returns the price of word appearing in the context held
	// by state.
	Cost(state State, index int, word string) float64

	// NextState returns the context after consuming word.
	NextState(state State, index int, word string) State

	// IsUnknown reports whether the word falls outside the model's
	// vocabulary.
	IsUnknown(index int, word string) bool
}

// A Match is one dictionary word covering a span of the segmentation
// graph.
type Match struct {
	// Word is the candidate text.
	Word string

	// Index is the word's dictionary index, or InvalidWordIndex.
	Index int

	// Path holds the cut positions the word spans, starting with the
	// span's first position.
	Path []int

	// Encoded is the binary form of the syllables consumed, two bytes
	// per syllable.
	Encoded []byte

	// Cost is a structural penalty added on top of the model cost,
	// such as the surcharge for fuzzy readings.
	Cost float64
}

// A Dictionary proposes words for spans of a segmentation graph.
type Dictionary interface {
	// Lookup returns every word matching a span that begins with
	// edge. Implementations see through boundary edges.
	Lookup(g *pinyin.SegmentGraph, edge *pinyin.Edge) []Match
}
