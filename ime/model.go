package ime

import (
	"math"

	"github.com/qwwqe/pyime/decoder"
	"github.com/qwwqe/pyime/history"
	"github.com/qwwqe/pyime/lexicon"
)

// unigramModel scores words by their lexicon frequency alone. It carries
// no context, so its state is a constant.
type unigramModel struct {
	lexicon lexicon.Lexicon
}

// NewUnigramModel builds a context-free language model over a lexicon's
// frequency counts.
func NewUnigramModel(lex lexicon.Lexicon) decoder.LanguageModel {
	return &unigramModel{lexicon: lex}
}

func (m *unigramModel) Start() decoder.State {
	return ""
}

func (m *unigramModel) Cost(_ decoder.State, _ int, word string) float64 {
	frequency, _, exists := m.lexicon.GetLexemeFrequency(word)
	if !exists || frequency < 0 {
		frequency = 0
	}
	pr := (float64(frequency) + 0.5) / (float64(m.lexicon.TotalFrequency()) + 0.5)
	if pr >= 1 {
		return 0
	}
	return -math.Log10(pr)
}

func (m *unigramModel) NextState(state decoder.State, _ int, _ string) decoder.State {
	return state
}

func (m *unigramModel) IsUnknown(index int, word string) bool {
	if index != decoder.InvalidWordIndex {
		return false
	}
	_, _, exists := m.lexicon.GetLexemeFrequency(word)
	return !exists
}

// interpolatedState pairs the wrapped model's state with the previous
// word, which the history bigram conditions on.
type interpolatedState struct {
	prev string
	base decoder.State
}

type interpolatedModel struct {
	base    decoder.LanguageModel
	history history.Bigram
	weight  float64
}

// NewInterpolatedModel blends a base language model with a history
// bigram model: cost = (1-weight)·base cost − weight·history score. A
// word either model has seen counts as known.
func NewInterpolatedModel(base decoder.LanguageModel, hist history.Bigram, weight float64) decoder.LanguageModel {
	return &interpolatedModel{base: base, history: hist, weight: weight}
}

func (m *interpolatedModel) Start() decoder.State {
	return interpolatedState{base: m.base.Start()}
}

func (m *interpolatedModel) Cost(state decoder.State, index int, word string) float64 {
	s := state.(interpolatedState)
	return (1-m.weight)*m.base.Cost(s.base, index, word) - m.weight*m.history.Score(s.prev, word)
}

func (m *interpolatedModel) NextState(state decoder.State, index int, word string) decoder.State {
	s := state.(interpolatedState)
	return interpolatedState{prev: word, base: m.base.NextState(s.base, index, word)}
}

func (m *interpolatedModel) IsUnknown(index int, word string) bool {
	return m.base.IsUnknown(index, word) && m.history.IsUnknown(word)
}
