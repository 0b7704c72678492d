package corpus

// Corpus is a named collection of tokenized words.
type Corpus struct {
	Name     string
	Language string
	Words    []*Word
}

// Word is a single tokenizer output unit. Lexical is false for
// punctuation and other non-lexical runs.
type Word struct {
	Word    string
	Lexical bool
}

// Document is one fetched source text, as stored by the repository.
type Document struct {
	Id        int
	Title     string
	Date      string
	Author    string
	Abstract  string
	Body      string
	Tags      []string
	CanonName string
	Uri       string
	Language  string
}
