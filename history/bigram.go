// Package history implements a self-adapting bigram language model
// over the sentences a user has accepted. Observations land in a
// bounded recent pool; sentences evicted from it are folded into an
// unbounded long-term pool whose counts are decay-weighted during
// scoring, so old habits stay present but never outvote fresh ones.
package history

import (
	"io"
	"math"
)

const (
	// recentBound is the number of sentences the recent pool retains
	// before evicting into the long-term pool.
	recentBound = 8192

	// decay discounts long-term counts relative to recent ones.
	decay = 0.05

	// defaultUnknownScore is returned for transitions with no
	// supporting observations at all.
	defaultUnknownScore = -5
)

// A Bigram scores word-to-word transitions from accumulated input
// history and learns online from every accepted sentence.
type Bigram interface {
	// Add records a sentence, incrementing unigram counts for each
	// word and bigram counts for each adjacent pair. Empty sentences
	// are ignored.
	Add(sentence []string)

	// Score returns a log10 probability estimate for cur following
	// prev. Certain transitions score 0 and unseen ones score the
	// unknown constant; everything else is negative.
	Score(prev, cur string) float64

	// UnigramFreq returns the decay-weighted observation count of a
	// word across both pools.
	UnigramFreq(word string) float64

	// BigramFreq returns the decay-weighted observation count of the
	// adjacent pair across both pools.
	BigramFreq(prev, cur string) float64

	// IsUnknown reports whether the word has never been observed.
	// The empty word is always unknown.
	IsUnknown(word string) bool

	// SetUnknown overrides the score returned for unseen transitions.
	SetUnknown(score float64)

	// Save writes the model to w in its binary form.
	Save(w io.Writer) error

	// Load replaces the model's state with one read from r. On error
	// the existing state is left untouched.
	Load(r io.Reader) error

	// Clear resets both pools to empty.
	Clear()
}

type bigram struct {
	recent  recentPool
	final   finalPool
	unknown float64
}

// NewBigram returns an empty history model.
func NewBigram() Bigram {
	return newBigram(recentBound)
}

func newBigram(bound int) *bigram {
	return &bigram{
		recent:  newRecentPool(bound),
		final:   newFinalPool(),
		unknown: defaultUnknownScore,
	}
}

func (b *bigram) Add(sentence []string) {
	if len(sentence) == 0 {
		return
	}
	for b.recent.full() {
		b.final.absorb(b.recent.evict())
	}
	b.recent.insert(sentence)
}

// Score interpolates the bigram-conditional estimate with the unigram
// marginal. This is a fixed-weight approximation, not a discounted
// n-gram model; it only has to rank a handful of user phrases.
func (b *bigram) Score(prev, cur string) float64 {
	uf0 := b.UnigramFreq(prev)
	bf := b.BigramFreq(prev, cur)
	uf1 := b.UnigramFreq(cur)

	// The 0.5 terms keep the divisors nonzero.
	pr := 0.68*bf/(uf0+0.5) + 0.32*uf1/(b.weightedSize()+0.5)
	if pr >= 1 {
		return 0
	}
	if pr == 0 {
		return b.unknown
	}
	return math.Log10(pr)
}

func (b *bigram) UnigramFreq(word string) float64 {
	return float64(b.recent.unigramFreq(word)) + decay*float64(b.final.unigramFreq(word))
}

func (b *bigram) BigramFreq(prev, cur string) float64 {
	return float64(b.recent.bigramFreq(prev, cur)) + decay*float64(b.final.bigramFreq(prev, cur))
}

func (b *bigram) weightedSize() float64 {
	return float64(b.recent.size()) + decay*float64(b.final.size())
}

func (b *bigram) IsUnknown(word string) bool {
	return word == "" || b.UnigramFreq(word) == 0
}

func (b *bigram) SetUnknown(score float64) {
	b.unknown = score
}

func (b *bigram) Clear() {
	b.recent.clear()
	b.final.clear()
}
