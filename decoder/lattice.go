package decoder

import (
	"sort"
	"strings"
)

// LatticeNode is one scored word hypothesis over a span of the graph.
// Nodes chain backward through Prev to the start of input, so any node
// reconstructs its whole sentence prefix.
type LatticeNode struct {
	// Word is the hypothesized text.
	Word string

	// Index is the word's dictionary index, or InvalidWordIndex.
	Index int

	// Path holds the cut positions the word spans.
	Path []int

	// Encoded is the binary form of the syllables consumed.
	Encoded []byte

	// State is the model context after consuming the word.
	State State

	// Cost is the accumulated cost from the start of input.
	Cost float64

	// Prev is the hypothesis this one extends, nil only on the
	// start-of-input node.
	Prev *LatticeNode
}

// End returns the last cut position the node covers.
func (n *LatticeNode) End() int {
	return n.Path[len(n.Path)-1]
}

// Sentence is one decoded candidate: a word sequence with its total
// cost.
type Sentence struct {
	Nodes []*LatticeNode
	Cost  float64
}

// Words returns the sentence's word texts in order.
func (s Sentence) Words() []string {
	words := make([]string, len(s.Nodes))
	for i, n := range s.Nodes {
		words[i] = n.Word
	}
	return words
}

func (s Sentence) String() string {
	var b strings.Builder
	for _, n := range s.Nodes {
		b.WriteString(n.Word)
	}
	return b.String()
}

func newSentence(end *LatticeNode) Sentence {
	var nodes []*LatticeNode
	for n := end; n != nil && n.Prev != nil; n = n.Prev {
		nodes = append(nodes, n)
	}
	for i, j := 0, len(nodes)-1; i < j; i, j = i+1, j-1 {
		nodes[i], nodes[j] = nodes[j], nodes[i]
	}
	return Sentence{Nodes: nodes, Cost: end.Cost}
}

// lattice buckets hypotheses by the cut position they end on.
type lattice struct {
	buckets [][]*LatticeNode
}

func newLattice(length int) *lattice {
	return &lattice{buckets: make([][]*LatticeNode, length+1)}
}

func (l *lattice) add(n *LatticeNode) {
	end := n.End()
	l.buckets[end] = append(l.buckets[end], n)
}

// prune sorts the bucket at position by cost, keeps at most nbest
// hypotheses per model state and at most beam in total, and returns
// what survives. Ties keep their insertion order.
func (l *lattice) prune(position, nbest, beam int) []*LatticeNode {
	nodes := l.buckets[position]
	if len(nodes) > 1 {
		sort.SliceStable(nodes, func(i, j int) bool {
			return nodes[i].Cost < nodes[j].Cost
		})
		perState := make(map[State]int, len(nodes))
		kept := nodes[:0]
		for _, n := range nodes {
			if len(kept) >= beam {
				break
			}
			if perState[n.State] >= nbest {
				continue
			}
			perState[n.State]++
			kept = append(kept, n)
		}
		nodes = kept
	}
	l.buckets[position] = nodes
	return nodes
}
