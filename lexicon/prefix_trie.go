package lexicon

// PrefixTrie stores lexeme frequencies with prefix awareness, which
// the tokenizer uses to cut dictionary walks short.
type PrefixTrie interface {
	AddLexeme(string, int)
	AddLexemes([]string, []int)
	// GetFrequency returns the frequency recorded for the lexeme (-1
	// when absent), whether the lexeme prefixes longer entries, and
	// whether the lexeme itself is present.
	GetFrequency(string) (int, bool, bool)
	NumEntries() int
	// TotalFrequency returns the sum of every entry's frequency.
	TotalFrequency() int
}

type prefixTrie struct {
	trie  *Trie[int]
	total int
}

func NewPrefixTrie() PrefixTrie {
	return &prefixTrie{trie: NewTrie[int]()}
}

func (t *prefixTrie) AddLexeme(lexeme string, frequency int) {
	if len(lexeme) == 0 {
		return
	}
	previous, _ := t.trie.Get(lexeme)
	t.total += frequency - previous
	t.trie.Put(lexeme, frequency)
}

func (t *prefixTrie) AddLexemes(lexemes []string, frequencies []int) {
	for i, lexeme := range lexemes {
		if i >= len(frequencies) {
			break
		}
		t.AddLexeme(lexeme, frequencies[i])
	}
}

func (t *prefixTrie) GetFrequency(lexeme string) (frequency int, isPrefix bool, exists bool) {
	cursor := t.trie.Root()
	ok := true
	for i := 0; i < len(lexeme) && ok; i++ {
		cursor, ok = cursor.Step(lexeme[i])
	}
	if !ok {
		return -1, false, false
	}
	value, exists := cursor.Value()
	if !exists || len(lexeme) == 0 {
		return -1, cursor.HasChildren(), false
	}
	return value, cursor.HasChildren(), true
}

func (t *prefixTrie) NumEntries() int {
	return t.trie.Len()
}

func (t *prefixTrie) TotalFrequency() int {
	return t.total
}
