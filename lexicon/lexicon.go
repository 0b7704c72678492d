package lexicon

import (
	"github.com/qwwqe/pyime/repository"
)

// Lexicon is a frequency dictionary over words of one language.
type Lexicon interface {
	AddLexeme(lexeme string, frequency int) error
	AddLexemes(lexemes []string, frequencies []int) error
	GetLexemeFrequency(lexeme string) (frequency int, isPrefix bool, exists bool)
	// LoadRepository registers a repository with the lexicon and pulls
	// its persisted entries into memory. Lexica without a repository
	// work purely in memory.
	LoadRepository(repo repository.Repository) error
	NumEntries() int
	TotalFrequency() int
}
