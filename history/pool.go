package history

import (
	"github.com/qwwqe/pyime/lexicon"
)

const bigramSeparator = "|"

// pool aggregates unigram and bigram observation counts. Bigram keys
// are the two words joined by bigramSeparator.
type pool struct {
	unigrams *lexicon.Trie[int32]
	bigrams  *lexicon.Trie[int32]
}

func newPool() pool {
	return pool{
		unigrams: lexicon.NewTrie[int32](),
		bigrams:  lexicon.NewTrie[int32](),
	}
}

// add counts every word and every adjacent pair in the sentence.
func (p *pool) add(sentence []string) {
	for i, word := range sentence {
		incCount(p.unigrams, word)
		if i+1 < len(sentence) {
			incCount(p.bigrams, bigramKey(word, sentence[i+1]))
		}
	}
}

// remove undoes one previous add of the sentence.
func (p *pool) remove(sentence []string) {
	for i, word := range sentence {
		decCount(p.unigrams, word)
		if i+1 < len(sentence) {
			decCount(p.bigrams, bigramKey(word, sentence[i+1]))
		}
	}
}

func (p *pool) unigramFreq(word string) int32 {
	count, _ := p.unigrams.Get(word)
	return count
}

func (p *pool) bigramFreq(prev, cur string) int32 {
	count, _ := p.bigrams.Get(bigramKey(prev, cur))
	return count
}

func (p *pool) clear() {
	p.unigrams = lexicon.NewTrie[int32]()
	p.bigrams = lexicon.NewTrie[int32]()
}

func bigramKey(prev, cur string) string {
	return prev + bigramSeparator + cur
}

func incCount(counts *lexicon.Trie[int32], key string) {
	count, _ := counts.Get(key)
	counts.Put(key, count+1)
}

// decCount decrements the entry at key, deleting it once it reaches
// zero. Counts never go negative and no zero-count entry is kept.
func decCount(counts *lexicon.Trie[int32], key string) {
	count, exists := counts.Get(key)
	if !exists {
		return
	}
	if count <= 1 {
		counts.Delete(key)
		return
	}
	counts.Put(key, count-1)
}

// recentPool retains the most recent sentences verbatim, oldest first,
// so an evicted sentence's counts can be subtracted again.
type recentPool struct {
	pool
	bound     int
	sentences [][]string
}

func newRecentPool(bound int) recentPool {
	return recentPool{pool: newPool(), bound: bound}
}

// full reports whether the next insert must evict first.
func (p *recentPool) full() bool {
	return len(p.sentences) >= p.bound
}

// insert counts the sentence and retains a copy of it.
func (p *recentPool) insert(sentence []string) {
	retained := make([]string, len(sentence))
	copy(retained, sentence)
	p.pool.add(retained)
	p.sentences = append(p.sentences, retained)
}

// evict removes the oldest sentence, subtracts its counts and returns
// it for the long-term pool to absorb.
func (p *recentPool) evict() []string {
	oldest := p.sentences[0]
	p.sentences[0] = nil
	p.sentences = p.sentences[1:]
	p.pool.remove(oldest)
	return oldest
}

func (p *recentPool) size() int {
	return len(p.sentences)
}

func (p *recentPool) clear() {
	p.pool.clear()
	p.sentences = nil
}

// finalPool aggregates evicted sentences as bare counts. tally records
// how many sentences it has absorbed.
type finalPool struct {
	pool
	tally int
}

func newFinalPool() finalPool {
	return finalPool{pool: newPool()}
}

func (p *finalPool) absorb(sentence []string) {
	p.pool.add(sentence)
	p.tally++
}

func (p *finalPool) size() int {
	return p.tally
}

func (p *finalPool) clear() {
	p.pool.clear()
	p.tally = 0
}
