package pinyin

import (
	"fmt"
	"testing"
)

func collectPaths(g *SegmentGraph) []string {
	paths := []string{}
	g.DFS(func(_ *SegmentGraph, path []int) bool {
		paths = append(paths, fmt.Sprint(path))
		return true
	})
	return paths
}

func TestParsePaths(t *testing.T) {
	g := Parse("nihao", FuzzyNone)
	if !g.CheckGraph() {
		t.Fatal("Parse(\"nihao\", FuzzyNone).CheckGraph() = false; want true")
	}

	got := collectPaths(g)
	want := []string{
		"[0 2 5]",
		"[0 2 4 5]",
		"[0 2 3 5]",
		"[0 2 3 4 5]",
	}
	if len(got) != len(want) {
		t.Fatalf("Parse(\"nihao\") paths = %v; want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Parse(\"nihao\") path[%d] = %s; want %s", i, got[i], want[i])
		}
	}
}

func TestParseGreedyFirstEdge(t *testing.T) {
	g := Parse("xian", FuzzyNone)
	nexts := g.Start().Nexts()
	if len(nexts) != 4 {
		t.Fatalf("Parse(\"xian\") start edge count = %d; want 4", len(nexts))
	}
	if text := nexts[0].Text(); text != "xian" {
		t.Errorf("Parse(\"xian\") first start edge = %q; want \"xian\"", text)
	}
	if text := nexts[len(nexts)-1].Text(); text != "x" {
		t.Errorf("Parse(\"xian\") last start edge = %q; want \"x\"", text)
	}
}

func TestParseApostropheBoundary(t *testing.T) {
	g := Parse("xi'an", FuzzyNone)
	if !g.CheckGraph() {
		t.Fatal("Parse(\"xi'an\").CheckGraph() = false; want true")
	}

	node := g.Node(2)
	if node == nil || len(node.Nexts()) != 1 {
		t.Fatal("Parse(\"xi'an\") has no single boundary edge at position 2")
	}
	edge := node.Nexts()[0]
	if !edge.Boundary() {
		t.Error("Parse(\"xi'an\") edge at position 2 is not a boundary")
	}
	if edge.End().Index() != 3 {
		t.Errorf("Parse(\"xi'an\") boundary edge ends at %d; want 3", edge.End().Index())
	}

	got := collectPaths(g)
	want := []string{
		"[0 2 3 5]",
		"[0 2 3 4 5]",
	}
	if len(got) != len(want) {
		t.Fatalf("Parse(\"xi'an\") paths = %v; want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Parse(\"xi'an\") path[%d] = %s; want %s", i, got[i], want[i])
		}
	}
}

func TestParseDisconnected(t *testing.T) {
	g := Parse("nfi", FuzzyNone)
	if g.CheckGraph() {
		t.Error("Parse(\"nfi\").CheckGraph() = true; want false")
	}
	if paths := collectPaths(g); len(paths) != 0 {
		t.Errorf("Parse(\"nfi\") paths = %v; want none", paths)
	}
}

func TestParseEmpty(t *testing.T) {
	g := Parse("", FuzzyNone)
	if !g.CheckGraph() {
		t.Error("Parse(\"\").CheckGraph() = false; want true")
	}
	got := collectPaths(g)
	if len(got) != 1 || got[0] != "[0]" {
		t.Errorf("Parse(\"\") paths = %v; want [[0]]", got)
	}
}

func TestDFSPrunesSiblings(t *testing.T) {
	g := Parse("tanan", FuzzyNone)

	all := collectPaths(g)
	if len(all) != 12 {
		t.Fatalf("Parse(\"tanan\") visits %d paths; want 12", len(all))
	}

	// A false return abandons the remaining sibling cuts at the branch
	// that completed, but the rest of the graph is still explored.
	pruned := []string{}
	g.DFS(func(_ *SegmentGraph, path []int) bool {
		pruned = append(pruned, fmt.Sprint(path))
		return false
	})
	want := []string{
		"[0 3 5]",
		"[0 2 5]",
		"[0 1 3 5]",
		"[0 1 2 5]",
	}
	if len(pruned) != len(want) {
		t.Fatalf("pruned DFS over \"tanan\" = %v; want %v", pruned, want)
	}
	for i := range want {
		if pruned[i] != want[i] {
			t.Errorf("pruned DFS path[%d] = %s; want %s", i, pruned[i], want[i])
		}
	}
}

func TestSinglePath(t *testing.T) {
	g := Parse("zhong", FuzzyNone)
	if got := g.SinglePath(); got != nil {
		t.Errorf("Parse(\"zhong\").SinglePath() = %v; want nil", got)
	}

	g = Parse("z", FuzzyNone)
	got := g.SinglePath()
	if fmt.Sprint(got) != "[0 1]" {
		t.Errorf("Parse(\"z\").SinglePath() = %v; want [0 1]", got)
	}

	// "min" and "m" both dead-end before the last byte, so the only
	// complete reading is mi'nv even though the start node branches.
	g = Parse("minv", FuzzyNone)
	got = g.SinglePath()
	if fmt.Sprint(got) != "[0 2 4]" {
		t.Errorf("Parse(\"minv\").SinglePath() = %v; want [0 2 4]", got)
	}

	g = Parse("nfi", FuzzyNone)
	if got := g.SinglePath(); got != nil {
		t.Errorf("Parse(\"nfi\").SinglePath() = %v; want nil", got)
	}
}

func TestMergeMatchesFreshParse(t *testing.T) {
	inputs := []string{"z", "zn", "zng", "zn", "z", ""}

	g := Parse("", FuzzyNone)
	for _, input := range inputs {
		g.Merge(Parse(input, FuzzyNone))

		want := collectPaths(Parse(input, FuzzyNone))
		got := collectPaths(g)
		if len(got) != len(want) {
			t.Fatalf("after Merge to %q paths = %v; want %v", input, got, want)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("after Merge to %q path[%d] = %s; want %s", input, i, got[i], want[i])
			}
		}
		if g.Text() != input {
			t.Errorf("after Merge to %q Text() = %q", input, g.Text())
		}
	}
}

func TestMergeReusesNodes(t *testing.T) {
	g := Parse("ni", FuzzyNone)
	start := g.Start()
	mid := g.Node(1)

	g.Merge(Parse("nihao", FuzzyNone))
	if g.Start() != start {
		t.Error("Merge replaced the start node")
	}
	if g.Node(1) != mid {
		t.Error("Merge replaced a node inside the shared prefix")
	}
	if !g.CheckGraph() {
		t.Error("merged graph fails CheckGraph()")
	}
}

func BenchmarkParse(b *testing.B) {
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Parse("zhongguorenmin", FuzzyNone)
	}
}
