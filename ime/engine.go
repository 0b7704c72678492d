// Package ime assembles the decoding pieces into an input method
// engine: an Engine owns the dictionary, lexicon, language models and
// parse cache, and hands out editing Contexts over them. Engines and
// their Contexts are not safe for concurrent use without external
// synchronization.
package ime

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/qwwqe/pyime/decoder"
	"github.com/qwwqe/pyime/dictionary"
	"github.com/qwwqe/pyime/entities/languages"
	"github.com/qwwqe/pyime/history"
	"github.com/qwwqe/pyime/lexicon"
	"github.com/qwwqe/pyime/pinyin"
	"github.com/qwwqe/pyime/repository"
)

const (
	defaultNBest         = 5
	defaultCacheSize     = 128
	defaultHistoryWeight = 0.2
	defaultLexiconName   = "Simplified Chinese Comprehensive"
)

type Options struct {
	// LexiconName and Language identify the lexicon rows loaded from a
	// repository.
	LexiconName string
	Language    string

	FuzzyFlags pinyin.FuzzyFlags

	// NBest is the number of candidate sentences a decode returns.
	NBest int

	// HistoryWeight is the interpolation weight of the history bigram
	// against the lexicon unigram model. Zero means the default of 0.2.
	HistoryWeight float64

	// CacheSize bounds the parse cache in entries.
	CacheSize int
}

type cacheKey struct {
	text  string
	flags pinyin.FuzzyFlags
}

type Engine struct {
	dict    *dictionary.Dictionary
	lexicon lexicon.Lexicon
	history history.Bigram
	decoder *decoder.Decoder
	cache   *lru.Cache[cacheKey, *pinyin.SegmentGraph]
	repo    repository.Repository
	options Options
}

func NewEngine(options Options) *Engine {
	if options.LexiconName == "" {
		options.LexiconName = defaultLexiconName
	}
	if options.Language == "" {
		options.Language = languages.ZH_CN
	}
	if options.NBest < 1 {
		options.NBest = defaultNBest
	}
	if options.HistoryWeight <= 0 {
		options.HistoryWeight = defaultHistoryWeight
	}
	if options.CacheSize < 1 {
		options.CacheSize = defaultCacheSize
	}

	dict := dictionary.New()
	lex := lexicon.NewLexicon(options.LexiconName, options.Language)
	hist := history.NewBigram()
	model := NewInterpolatedModel(NewUnigramModel(lex), hist, options.HistoryWeight)
	cache, _ := lru.New[cacheKey, *pinyin.SegmentGraph](options.CacheSize)

	return &Engine{
		dict:    dict,
		lexicon: lex,
		history: hist,
		decoder: decoder.New(dict, model),
		cache:   cache,
		options: options,
	}
}

// AddWord registers a word under its full pinyin spelling in both the
// dictionary and the lexicon.
func (e *Engine) AddWord(word, text string, frequency int) error {
	if err := e.dict.AddWord(word, text, frequency); err != nil {
		return err
	}
	return e.lexicon.AddLexeme(word, frequency)
}

// LoadWordList reads entries from r, one per line, as whitespace-separated
// fields of word, full pinyin and an optional frequency. Blank lines and
// lines starting with # are skipped.
func (e *Engine) LoadWordList(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		fields := strings.Fields(text)
		if len(fields) < 2 {
			return fmt.Errorf("ime: line %d: want word and pinyin, got %q", line, text)
		}

		frequency := 0
		if len(fields) > 2 {
			f, err := strconv.Atoi(fields[2])
			if err != nil {
				return fmt.Errorf("ime: line %d: frequency: %w", line, err)
			}
			frequency = f
		}

		if err := e.AddWord(fields[0], fields[1], frequency); err != nil {
			return fmt.Errorf("ime: line %d: %w", line, err)
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("ime: %w", err)
	}

	return nil
}

// LoadRepository pulls the engine's lexicon rows and every learned user
// phrase out of the repository, and keeps it attached so learning
// persists new phrases back.
func (e *Engine) LoadRepository(repo repository.Repository) error {
	if err := e.lexicon.LoadRepository(repo); err != nil {
		return err
	}
	if err := e.dict.LoadRepository(repo); err != nil {
		return err
	}
	e.repo = repo
	return nil
}

// LoadHistory restores the history bigram model from its binary form.
func (e *Engine) LoadHistory(r io.Reader) error {
	return e.history.Load(r)
}

// SaveHistory writes the history bigram model in its binary form.
func (e *Engine) SaveHistory(w io.Writer) error {
	return e.history.Save(w)
}

// Decode parses text and returns up to NBest candidate sentences,
// cheapest first.
func (e *Engine) Decode(text string) ([]decoder.Sentence, error) {
	g := e.parse(text)
	if !g.CheckGraph() {
		return nil, fmt.Errorf("%w: %q", pinyin.ErrNoSegmentation, text)
	}
	return e.decoder.Decode(g, e.options.NBest), nil
}

// parse returns the cached segmentation graph for text, building and
// caching it on a miss. Cached graphs are shared, so callers must not
// merge them.
func (e *Engine) parse(text string) *pinyin.SegmentGraph {
	key := cacheKey{text: text, flags: e.options.FuzzyFlags}
	if g, ok := e.cache.Get(key); ok {
		return g
	}
	g := pinyin.Parse(text, e.options.FuzzyFlags)
	e.cache.Add(key, g)
	return g
}
