package pinyin

// SegmentGraph is a DAG of candidate cut positions over one input
// string. Nodes sit at byte offsets 0..len(input); edges carry the
// syllable readings of the substring they span. Position 0 is the
// start node and position len(input) the end node.
type SegmentGraph struct {
	text  string
	nodes []*Node
}

// Node is one cut position of a segment graph.
type Node struct {
	index int
	nexts []*Edge
}

// Edge spans the substring between two cut positions.
type Edge struct {
	start, end *Node
	text       string
	readings   []Reading
}

func newSegmentGraph(text string) *SegmentGraph {
	g := &SegmentGraph{
		text:  text,
		nodes: make([]*Node, len(text)+1),
	}
	g.nodeAt(0)
	g.nodeAt(len(text))
	return g
}

func (g *SegmentGraph) nodeAt(i int) *Node {
	if g.nodes[i] == nil {
		g.nodes[i] = &Node{index: i}
	}
	return g.nodes[i]
}

// Text returns the input string the graph describes.
func (g *SegmentGraph) Text() string { return g.text }

// Len returns the input length in bytes, which is also the end node's
// position.
func (g *SegmentGraph) Len() int { return len(g.text) }

// Start returns the node at position 0.
func (g *SegmentGraph) Start() *Node { return g.nodes[0] }

// End returns the node at the input's final position.
func (g *SegmentGraph) End() *Node { return g.nodes[len(g.text)] }

// Node returns the node at a cut position, or nil when no syllable
// boundary falls there.
func (g *SegmentGraph) Node(i int) *Node {
	if i < 0 || i >= len(g.nodes) {
		return nil
	}
	return g.nodes[i]
}

// Index returns the node's cut position.
func (n *Node) Index() int { return n.index }

// Nexts returns the node's outgoing edges, longest span first for
// parsed graphs.
func (n *Node) Nexts() []*Edge { return n.nexts }

// Start returns the edge's origin node.
func (e *Edge) Start() *Node { return e.start }

// End returns the edge's destination node.
func (e *Edge) End() *Node { return e.end }

// Text returns the substring the edge spans.
func (e *Edge) Text() string { return e.text }

// Readings returns the syllable interpretations of the edge's span.
func (e *Edge) Readings() []Reading { return e.readings }

// Boundary reports whether the edge is an explicit apostrophe cut,
// which carries no readings.
func (e *Edge) Boundary() bool { return len(e.readings) == 0 }

func (g *SegmentGraph) addEdge(s, e int, text string, readings []Reading) {
	if s >= e {
		panic("pinyin: segment graph edge must advance")
	}
	from := g.nodeAt(s)
	to := g.nodeAt(e)
	for _, existing := range from.nexts {
		if existing.end == to {
			for _, r := range readings {
				if !containsReading(existing.readings, r.Syllable) {
					existing.readings = append(existing.readings, r)
				}
			}
			return
		}
	}
	from.nexts = append(from.nexts, &Edge{start: from, end: to, text: text, readings: readings})
}

// DFSCallback receives each complete start-to-end path as cut
// positions, both endpoints included. The path slice is reused between
// invocations; copy it if retained. Returning false prunes the
// remaining sibling edges at the branch that produced the path, and
// traversal resumes one level up.
type DFSCallback func(g *SegmentGraph, path []int) bool

// DFS enumerates complete paths depth first, following each node's
// edges in order.
func (g *SegmentGraph) DFS(cb DFSCallback) {
	path := make([]int, 1, len(g.nodes))
	path[0] = 0
	g.dfsFrom(g.Start(), path, cb)
}

func (g *SegmentGraph) dfsFrom(n *Node, path []int, cb DFSCallback) bool {
	if n.index == len(g.text) {
		return cb(g, path)
	}
	for _, e := range n.nexts {
		if !g.dfsFrom(e.end, append(path, e.end.index), cb) {
			break
		}
	}
	return true
}

// CheckGraph reports whether the graph is well formed: every edge
// advances, and at least one path joins the start node to the end
// node.
func (g *SegmentGraph) CheckGraph() bool {
	for i, n := range g.nodes {
		if n == nil {
			continue
		}
		for _, e := range n.nexts {
			if e.end.index <= i {
				return false
			}
		}
	}

	reachable := make([]bool, len(g.nodes))
	reachable[0] = true
	for i, n := range g.nodes {
		if n == nil || !reachable[i] {
			continue
		}
		for _, e := range n.nexts {
			reachable[e.end.index] = true
		}
	}
	return reachable[len(g.text)]
}

// SinglePath returns the cut positions of the only start-to-end path
// when the graph admits exactly one, otherwise nil. Edges that dead-end
// before the end node do not count against uniqueness.
func (g *SegmentGraph) SinglePath() []int {
	reachesEnd := make([]bool, len(g.nodes))
	reachesEnd[len(g.text)] = true
	for i := len(g.nodes) - 2; i >= 0; i-- {
		n := g.nodes[i]
		if n == nil {
			continue
		}
		for _, e := range n.nexts {
			if reachesEnd[e.end.index] {
				reachesEnd[i] = true
				break
			}
		}
	}
	if !reachesEnd[0] {
		return nil
	}

	path := []int{0}
	n := g.Start()
	for n.index < len(g.text) {
		var next *Node
		for _, e := range n.nexts {
			if !reachesEnd[e.end.index] {
				continue
			}
			if next != nil {
				return nil
			}
			next = e.end
		}
		n = next
		path = append(path, n.index)
	}
	return path
}

// Merge rebuilds g to describe other's input, which must have been
// parsed with the same fuzzy flags. Nodes at positions present in both
// graphs keep their identity, and edges lying entirely inside the
// shared prefix of the two inputs are kept rather than replaced. The
// other graph must not be used afterward.
func (g *SegmentGraph) Merge(other *SegmentGraph) {
	shared := 0
	for shared < len(g.text) && shared < len(other.text) && g.text[shared] == other.text[shared] {
		shared++
	}

	old := g.nodes
	g.text = other.text
	g.nodes = make([]*Node, len(other.text)+1)
	for i, on := range other.nodes {
		if on == nil {
			continue
		}
		if i < len(old) && old[i] != nil {
			g.nodes[i] = old[i]
		} else {
			g.nodes[i] = &Node{index: i}
		}
	}

	for i, on := range other.nodes {
		if on == nil {
			continue
		}
		n := g.nodes[i]
		var oldNexts []*Edge
		if i < len(old) && old[i] != nil {
			oldNexts = old[i].nexts
		}
		nexts := make([]*Edge, 0, len(on.nexts))
		for _, oe := range on.nexts {
			to := g.nodes[oe.end.index]
			if oe.end.index <= shared {
				if kept := findEdge(oldNexts, to); kept != nil {
					nexts = append(nexts, kept)
					continue
				}
			}
			nexts = append(nexts, &Edge{start: n, end: to, text: oe.text, readings: oe.readings})
		}
		n.nexts = nexts
	}
}

func findEdge(edges []*Edge, to *Node) *Edge {
	for _, e := range edges {
		if e.end == to {
			return e
		}
	}
	return nil
}
