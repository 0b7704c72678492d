package decoder

import (
	"github.com/qwwqe/pyime/pinyin"
)

// defaultBeamWidth bounds how many hypotheses survive per cut position
// regardless of how many model states are in play.
const defaultBeamWidth = 20

// Decoder searches a segmentation graph for the cheapest sentence
// hypotheses under a dictionary and a language model.
type Decoder struct {
	dict  Dictionary
	model LanguageModel
}

func New(dict Dictionary, model LanguageModel) *Decoder {
	return &Decoder{dict: dict, model: model}
}

// Decode returns up to nbest sentence candidates for the graph,
// cheapest first. The graph must be connected and well formed; Decode
// panics otherwise, since a malformed graph is a builder defect rather
// than bad user input.
func (d *Decoder) Decode(g *pinyin.SegmentGraph, nbest int) []Sentence {
	if !g.CheckGraph() {
		panic("decoder: malformed segmentation graph")
	}
	if nbest < 1 {
		nbest = 1
	}
	beam := defaultBeamWidth
	if beam < nbest {
		beam = nbest
	}

	only := g.SinglePath()
	lat := newLattice(g.Len())
	lat.add(&LatticeNode{
		Index: InvalidWordIndex,
		Path:  []int{0},
		State: d.model.Start(),
	})

	// Cut positions ascend along every edge, so walking them in order
	// visits each bucket only after it is complete.
	for position := 0; position < g.Len(); position++ {
		hyps := lat.prune(position, nbest, beam)
		if len(hyps) == 0 {
			continue
		}
		node := g.Node(position)
		if node == nil {
			continue
		}
		for _, edge := range node.Nexts() {
			for _, m := range d.dict.Lookup(g, edge) {
				if !d.keep(m, only) {
					continue
				}
				d.extend(lat, hyps, m)
			}
		}
	}

	final := lat.prune(g.Len(), nbest, beam)
	if len(final) > nbest {
		final = final[:nbest]
	}
	sentences := make([]Sentence, 0, len(final))
	for _, n := range final {
		sentences = append(sentences, newSentence(n))
	}
	return sentences
}

func (d *Decoder) extend(lat *lattice, hyps []*LatticeNode, m Match) {
	for _, h := range hyps {
		lat.add(&LatticeNode{
			Word:    m.Word,
			Index:   m.Index,
			Path:    m.Path,
			Encoded: m.Encoded,
			State:   d.model.NextState(h.State, m.Index, m.Word),
			Cost:    h.Cost + d.model.Cost(h.State, m.Index, m.Word) + m.Cost,
			Prev:    h,
		})
	}
}

// keep applies the node creation policy. Unknown single-syllable words
// breed in the middle of the lattice without ever becoming candidates,
// so they are dropped unless they start the input or lie on the
// input's only complete reading.
func (d *Decoder) keep(m Match, only []int) bool {
	if !d.model.IsUnknown(m.Index, m.Word) {
		return true
	}
	if len(m.Encoded) != 2 {
		return true
	}
	if m.Path[0] == 0 {
		return true
	}
	return onPath(m.Path, only)
}

// onPath reports whether every position of sub appears in path. Both
// slices ascend.
func onPath(sub, path []int) bool {
	if path == nil {
		return false
	}
	i := 0
	for _, p := range sub {
		for i < len(path) && path[i] < p {
			i++
		}
		if i >= len(path) || path[i] != p {
			return false
		}
	}
	return true
}
