package lexicon

import (
	"github.com/qwwqe/pyime/repository"
)

type zhLexicon struct {
	name       string
	language   string
	prefixTrie PrefixTrie
	repository repository.Repository
}

// NewLexicon creates an in-memory lexicon. Attach a repository with
// LoadRepository to persist entries and pull in existing ones.
func NewLexicon(name string, language string) Lexicon {
	return &zhLexicon{
		name:       name,
		language:   language,
		prefixTrie: NewPrefixTrie(),
	}
}

func (l *zhLexicon) AddLexeme(lexeme string, frequency int) error {
	if l.repository != nil {
		if err := l.repository.AddLexeme(l.name, l.language, lexeme, frequency); err != nil {
			return err
		}
	}
	l.prefixTrie.AddLexeme(lexeme, frequency)
	return nil
}

func (l *zhLexicon) AddLexemes(lexemes []string, frequencies []int) error {
	if l.repository != nil {
		if err := l.repository.AddLexemes(l.name, l.language, lexemes, frequencies); err != nil {
			return err
		}
	}
	l.prefixTrie.AddLexemes(lexemes, frequencies)
	return nil
}

func (l *zhLexicon) GetLexemeFrequency(lexeme string) (frequency int, isPrefix bool, exists bool) {
	return l.prefixTrie.GetFrequency(lexeme)
}

func (l *zhLexicon) LoadRepository(repo repository.Repository) error {
	l.repository = repo
	lexemes, frequencies, err := l.repository.GetLexemes(l.name, l.language)
	if err != nil || len(lexemes) == 0 {
		return err
	}

	l.prefixTrie.AddLexemes(lexemes, frequencies)
	return nil
}

func (l *zhLexicon) NumEntries() int {
	return l.prefixTrie.NumEntries()
}

func (l *zhLexicon) TotalFrequency() int {
	return l.prefixTrie.TotalFrequency()
}
