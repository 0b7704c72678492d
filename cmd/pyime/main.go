package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"runtime"
	"runtime/pprof"
	"strconv"
	"strings"
	"time"

	"github.com/qwwqe/pyime/entities/languages"
	f "github.com/qwwqe/pyime/fetcher"
	"github.com/qwwqe/pyime/history"
	"github.com/qwwqe/pyime/ime"
	l "github.com/qwwqe/pyime/lexicon"
	r "github.com/qwwqe/pyime/repository"
	t "github.com/qwwqe/pyime/tokenizer"
)

type FetchOptionSet struct {
	Fetcher    f.Fetcher
	InitialSet f.FetchOptions
	UpdateSet  f.FetchOptions
}

var fetchOptionSets = []FetchOptionSet{
	{
		Fetcher: f.NewArticleFetcher(f.People),
		InitialSet: f.FetchOptions{
			MaxDepth:    5,
			Async:       true,
			Parallelism: 4,
		},
		UpdateSet: f.FetchOptions{
			AfterTime:   time.Now().Add(-7 * 24 * time.Hour),
			MaxDepth:    3,
			Async:       true,
			Parallelism: 4,
		},
	},

	{
		Fetcher: f.NewArticleFetcher(f.Xinhua),
		InitialSet: f.FetchOptions{
			MaxDepth:    5,
			Async:       true,
			Parallelism: 4,
		},
		UpdateSet: f.FetchOptions{
			AfterTime:   time.Now().Add(-7 * 24 * time.Hour),
			MaxDepth:    3,
			Async:       true,
			Parallelism: 4,
		},
	},
}

var usage = `Usage: pyime <command> [arguments]

  fetch [initial|update]          crawl configured sites into the repository
  poplex <lexicon file>           seed the lexicon table from a frequency list
  train <history file>            train the history model from fetched documents
  decode <wordlist|repo> [history file]
                                  decode pinyin read from stdin
`

var lexiconName = "Simplified Chinese Comprehensive"
var lexiconLang = languages.ZH_CN

var cpuProfile = "cpuprofile"
var memProfile = "memprofile"

func main() {
	if len(os.Args) == 1 {
		fmt.Print(usage)
		os.Exit(0)
	}

	profiling := os.Getenv("PYIME_PROFILE") != ""
	if profiling {
		cpuProfileF, err := os.Create(cpuProfile)
		if err != nil {
			log.Fatal("could not create CPU profile: ", err)
		}
		defer cpuProfileF.Close()
		if err := pprof.StartCPUProfile(cpuProfileF); err != nil {
			log.Fatal("could not start CPU profile: ", err)
		}
		defer pprof.StopCPUProfile()
	}

	switch os.Args[1] {
	case "fetch":
		repo := mustRepository()

		mode := "update"
		if len(os.Args) > 2 {
			mode = os.Args[2]
		}

		for _, fOpts := range fetchOptionSets {
			fOpts.Fetcher.SetFetcherOptions(&f.FetcherOptions{
				Repository: repo,
			})

			var fetchOpts f.FetchOptions
			switch mode {
			case "update":
				fetchOpts = fOpts.UpdateSet
			case "initial":
				fetchOpts = fOpts.InitialSet
			default:
				log.Fatalf("unknown fetch mode %q", mode)
			}

			if err := fOpts.Fetcher.Fetch(fetchOpts); err != nil {
				log.Fatal(err)
			}
		}
	case "poplex":
		if len(os.Args) < 3 {
			fmt.Print(usage)
			os.Exit(1)
		}

		repo := mustRepository()

		lexicon := l.NewLexicon(lexiconName, lexiconLang)
		if err := lexicon.LoadRepository(repo); err != nil {
			log.Fatal(err)
		}

		if lexicon.NumEntries() == 0 {
			file, err := os.Open(os.Args[2])
			if err != nil {
				log.Fatal(err)
			}

			lexemes, frequencies := readFrequencyList(file)
			file.Close()

			if err := lexicon.AddLexemes(lexemes, frequencies); err != nil {
				log.Fatal(err)
			}
		}

		fmt.Printf("Lexicon %q has %d entries.\n", lexiconName, lexicon.NumEntries())
	case "train":
		if len(os.Args) < 3 {
			fmt.Print(usage)
			os.Exit(1)
		}

		repo := mustRepository()

		lexicon := l.NewLexicon(lexiconName, lexiconLang)
		if err := lexicon.LoadRepository(repo); err != nil {
			log.Fatal(err)
		}
		if lexicon.NumEntries() == 0 {
			log.Fatal("lexicon is empty; run poplex first")
		}

		documents, err := repo.GetDocuments(lexiconLang, 0)
		if err != nil {
			log.Fatal(err)
		}

		tokenizer := t.NewTokenizer(&t.Options{MaxDepth: 3})
		model := history.NewBigram()

		sentences := 0
		for _, document := range documents {
			words, err := tokenizer.Tokenize(document.Body, lexicon)
			if err != nil {
				log.Printf("tokenizing %s: %v", document.Uri, err)
				continue
			}

			for _, sentence := range t.Sentences(words) {
				model.Add(sentence)
				sentences++
			}
		}

		file, err := os.Create(os.Args[2])
		if err != nil {
			log.Fatal(err)
		}
		if err := model.Save(file); err != nil {
			log.Fatal(err)
		}
		if err := file.Close(); err != nil {
			log.Fatal(err)
		}

		fmt.Printf("Trained on %d sentences from %d documents.\n", sentences, len(documents))
	case "decode":
		if len(os.Args) < 3 {
			fmt.Print(usage)
			os.Exit(1)
		}

		engine := ime.NewEngine(ime.Options{})

		if os.Args[2] == "repo" {
			repo := mustRepository()
			if err := engine.LoadRepository(repo); err != nil {
				log.Fatal(err)
			}
		} else {
			file, err := os.Open(os.Args[2])
			if err != nil {
				log.Fatal(err)
			}
			if err := engine.LoadWordList(file); err != nil {
				log.Fatal(err)
			}
			file.Close()
		}

		if len(os.Args) > 3 {
			file, err := os.Open(os.Args[3])
			if err != nil {
				log.Fatal(err)
			}
			if err := engine.LoadHistory(file); err != nil {
				log.Fatal(err)
			}
			file.Close()
		}

		scanner := bufio.NewScanner(os.Stdin)
		fmt.Print("> ")
		for scanner.Scan() {
			text := strings.TrimSpace(scanner.Text())
			if text != "" {
				sentences, err := engine.Decode(text)
				if err != nil {
					fmt.Println(err)
				}
				for i, sentence := range sentences {
					fmt.Printf("%d. %s  (%.4f)\n", i+1, sentence.String(), sentence.Cost)
				}
			}
			fmt.Print("> ")
		}
		if err := scanner.Err(); err != nil {
			log.Fatal(err)
		}
	default:
		fmt.Print(usage)
		os.Exit(1)
	}

	if profiling {
		memProfileF, err := os.Create(memProfile)
		if err != nil {
			log.Fatal("could not create memory profile: ", err)
		}
		defer memProfileF.Close()
		runtime.GC() // get up-to-date statistics
		if err := pprof.WriteHeapProfile(memProfileF); err != nil {
			log.Fatal("could not write memory profile: ", err)
		}
	}
}

func mustRepository() r.Repository {
	repo, err := r.GetRepository(r.RepositoryOptions{
		RestoreRequestHistory: false,
		EnableCookies:         true,
		EnableLogging:         true,
	})
	if err != nil {
		log.Fatal(err)
	}
	return repo
}

// readFrequencyList scans lines of whitespace-separated lexeme and
// frequency pairs, skipping blanks, comments and malformed lines.
func readFrequencyList(file *os.File) ([]string, []int) {
	lexemes := make([]string, 0)
	frequencies := make([]int, 0)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		fields := strings.Fields(text)
		if len(fields) != 2 {
			continue
		}
		frequency, err := strconv.Atoi(fields[1])
		if err != nil {
			continue
		}

		lexemes = append(lexemes, fields[0])
		frequencies = append(frequencies, frequency)
	}

	return lexemes, frequencies
}
