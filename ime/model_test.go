package ime

import (
	"math"
	"testing"

	"github.com/qwwqe/pyime/decoder"
	"github.com/qwwqe/pyime/entities/languages"
	"github.com/qwwqe/pyime/history"
	"github.com/qwwqe/pyime/lexicon"
)

func TestUnigramModelCost(t *testing.T) {
	lex := lexicon.NewLexicon("test", languages.ZH_CN)
	if err := lex.AddLexeme("你", 100); err != nil {
		t.Fatal(err)
	}

	m := NewUnigramModel(lex)

	// A word carrying the whole frequency mass costs nothing.
	if got := m.Cost(m.Start(), 0, "你"); got != 0 {
		t.Errorf("Cost(你) = %v, want 0", got)
	}

	if err := lex.AddLexeme("好", 300); err != nil {
		t.Fatal(err)
	}

	want := -math.Log10(100.5 / 400.5)
	if got := m.Cost(m.Start(), 0, "你"); math.Abs(got-want) > 1e-12 {
		t.Errorf("Cost(你) = %v, want %v", got, want)
	}

	want = -math.Log10(0.5 / 400.5)
	if got := m.Cost(m.Start(), decoder.InvalidWordIndex, "目"); math.Abs(got-want) > 1e-12 {
		t.Errorf("Cost(目) = %v, want %v", got, want)
	}
}

func TestUnigramModelIsUnknown(t *testing.T) {
	lex := lexicon.NewLexicon("test", languages.ZH_CN)
	if err := lex.AddLexeme("你", 100); err != nil {
		t.Fatal(err)
	}

	m := NewUnigramModel(lex)

	if m.IsUnknown(decoder.InvalidWordIndex, "你") {
		t.Errorf("IsUnknown(你) = true, want false")
	}
	if !m.IsUnknown(decoder.InvalidWordIndex, "目") {
		t.Errorf("IsUnknown(目) = false, want true")
	}
	// Dictionary-backed words count as known whatever the lexicon says.
	if m.IsUnknown(3, "目") {
		t.Errorf("IsUnknown(3, 目) = true, want false")
	}
}

func TestInterpolatedModelCost(t *testing.T) {
	lex := lexicon.NewLexicon("test", languages.ZH_CN)
	if err := lex.AddLexemes([]string{"你", "好"}, []int{100, 300}); err != nil {
		t.Fatal(err)
	}
	base := NewUnigramModel(lex)
	hist := history.NewBigram()

	m := NewInterpolatedModel(base, hist, 0.2)
	start := m.Start()

	// With empty history every word scores the unknown constant.
	want := 0.8*base.Cost(base.Start(), 0, "你") + 1
	if got := m.Cost(start, 0, "你"); math.Abs(got-want) > 1e-12 {
		t.Errorf("Cost(你) = %v, want %v", got, want)
	}

	hist.Add([]string{"你", "好"})

	want = 0.8*base.Cost(base.Start(), 0, "你") - 0.2*hist.Score("", "你")
	if got := m.Cost(start, 0, "你"); math.Abs(got-want) > 1e-12 {
		t.Errorf("Cost(你) after Add = %v, want %v", got, want)
	}

	// The state token carries the previous word into the bigram score.
	after := m.NextState(start, 0, "你")
	want = 0.8*base.Cost(base.Start(), 1, "好") - 0.2*hist.Score("你", "好")
	if got := m.Cost(after, 1, "好"); math.Abs(got-want) > 1e-12 {
		t.Errorf("Cost(好|你) = %v, want %v", got, want)
	}
	if hist.Score("你", "好") <= hist.Score("", "好") {
		t.Errorf("Score(你, 好) = %v, want above Score(\"\", 好) = %v",
			hist.Score("你", "好"), hist.Score("", "好"))
	}
}

func TestInterpolatedModelIsUnknown(t *testing.T) {
	lex := lexicon.NewLexicon("test", languages.ZH_CN)
	hist := history.NewBigram()
	m := NewInterpolatedModel(NewUnigramModel(lex), hist, 0.2)

	if !m.IsUnknown(decoder.InvalidWordIndex, "目") {
		t.Errorf("IsUnknown(目) = false, want true")
	}

	hist.Add([]string{"目"})
	if m.IsUnknown(decoder.InvalidWordIndex, "目") {
		t.Errorf("IsUnknown(目) after Add = true, want false")
	}
}

func TestInterpolatedStateComparable(t *testing.T) {
	lex := lexicon.NewLexicon("test", languages.ZH_CN)
	m := NewInterpolatedModel(NewUnigramModel(lex), history.NewBigram(), 0.2)

	s1 := m.NextState(m.Start(), 0, "你")
	s2 := m.NextState(m.Start(), 0, "你")
	if s1 != s2 {
		t.Errorf("NextState() tokens for the same transition differ: %v vs %v", s1, s2)
	}
}
