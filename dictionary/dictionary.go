// Package dictionary provides the word table consulted during lattice
// decoding. Words are keyed by their encoded pinyin, so one trie walk
// over a span's syllable codes surfaces every word it could spell,
// fuzzy readings included.
package dictionary

import (
	"fmt"
	"sort"

	"github.com/qwwqe/pyime/decoder"
	"github.com/qwwqe/pyime/lexicon"
	"github.com/qwwqe/pyime/pinyin"
)

// fuzzyPenalty is the structural cost added per syllable matched
// through a fuzzy reading rather than its exact spelling.
const fuzzyPenalty = 3

type entry struct {
	word      string
	index     int
	frequency int
}

// Dictionary maps encoded pinyin keys to candidate words.
type Dictionary struct {
	entries   *lexicon.Trie[[]entry]
	nextIndex int
	size      int
}

func New() *Dictionary {
	return &Dictionary{entries: lexicon.NewTrie[[]entry]()}
}

// AddWord registers word under the full pinyin spelling in text, which
// must segment unambiguously. Re-adding a word under the same spelling
// updates its frequency.
func (d *Dictionary) AddWord(word string, text string, frequency int) error {
	encoded, err := pinyin.EncodeFullPinyin(text)
	if err != nil {
		return err
	}
	d.add(word, string(encoded), frequency)
	return nil
}

// AddEncoded registers word under an already encoded pinyin key, as
// persisted user phrases are stored.
func (d *Dictionary) AddEncoded(word string, encoded []byte, frequency int) error {
	if len(encoded) == 0 || len(encoded)%2 != 0 {
		return fmt.Errorf("%w: key length %d", pinyin.ErrInvalidSyllable, len(encoded))
	}
	for i := 0; i < len(encoded); i += 2 {
		if _, err := pinyin.SyllableFromCode(pinyin.Code{encoded[i], encoded[i+1]}); err != nil {
			return err
		}
	}
	d.add(word, string(encoded), frequency)
	return nil
}

func (d *Dictionary) add(word, key string, frequency int) {
	entries, _ := d.entries.Get(key)
	for i := range entries {
		if entries[i].word == word {
			entries[i].frequency = frequency
			sortEntries(entries)
			d.entries.Put(key, entries)
			return
		}
	}
	entries = append(entries, entry{word: word, index: d.nextIndex, frequency: frequency})
	d.nextIndex++
	d.size++
	sortEntries(entries)
	d.entries.Put(key, entries)
}

// sortEntries keeps the most frequent words first so equally priced
// hypotheses surface in a useful order.
func sortEntries(entries []entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].frequency > entries[j].frequency
	})
}

// NumEntries returns the number of registered words.
func (d *Dictionary) NumEntries() int {
	return d.size
}

// Lookup returns every word whose encoded pinyin matches a span of
// consecutive edges beginning at edge, plus a fallback match exposing
// the first spanned syllable's typed text, so input stays decodable
// with an empty dictionary. Boundary edges are crossed without
// consuming a syllable, and a boundary directly after a matched span
// is absorbed into the match's path.
func (d *Dictionary) Lookup(g *pinyin.SegmentGraph, edge *pinyin.Edge) []decoder.Match {
	var matches []decoder.Match
	start := edge.Start().Index()
	d.walk(d.entries.Root(), edge, []int{start}, nil, 0, true, &matches)
	return matches
}

func (d *Dictionary) walk(c lexicon.Cursor[[]entry], edge *pinyin.Edge, path []int, encoded []byte, penalty float64, first bool, out *[]decoder.Match) {
	if edge.Boundary() {
		crossed := appendPath(path, edge.End().Index())
		for _, next := range edge.End().Nexts() {
			d.walk(c, next, crossed, encoded, penalty, first, out)
		}
		return
	}

	spanned := appendPath(path, edge.End().Index())
	emitPath := absorbBoundary(spanned, edge.End())

	if first {
		reading := edge.Readings()[0]
		code := reading.Syllable.Code()
		cost := 0.0
		if reading.Fuzzy {
			cost = fuzzyPenalty
		}
		*out = append(*out, decoder.Match{
			Word:    edge.Text(),
			Index:   decoder.InvalidWordIndex,
			Path:    emitPath,
			Encoded: code[:],
			Cost:    cost,
		})
	}

	for _, reading := range edge.Readings() {
		code := reading.Syllable.Code()
		c1, ok := c.Step(code[0])
		if !ok {
			continue
		}
		c2, ok := c1.Step(code[1])
		if !ok {
			continue
		}
		cost := penalty
		if reading.Fuzzy {
			cost += fuzzyPenalty
		}
		key := append(append([]byte(nil), encoded...), code[0], code[1])

		if entries, exists := c2.Value(); exists {
			for _, e := range entries {
				*out = append(*out, decoder.Match{
					Word:    e.word,
					Index:   e.index,
					Path:    emitPath,
					Encoded: key,
					Cost:    cost,
				})
			}
		}
		if !c2.HasChildren() {
			continue
		}
		for _, next := range edge.End().Nexts() {
			d.walk(c2, next, spanned, key, cost, false, out)
		}
	}
}

// absorbBoundary extends an emitted path through a trailing boundary
// edge, so words before an apostrophe cover it.
func absorbBoundary(path []int, n *pinyin.Node) []int {
	for len(n.Nexts()) == 1 && n.Nexts()[0].Boundary() {
		n = n.Nexts()[0].End()
		path = appendPath(path, n.Index())
	}
	return path
}

func appendPath(path []int, position int) []int {
	extended := make([]int, len(path), len(path)+1)
	copy(extended, path)
	return append(extended, position)
}
