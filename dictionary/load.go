package dictionary

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/qwwqe/pyime/repository"
)

// LoadWordList reads entries from r, one per line, as whitespace-separated
// fields of word, full pinyin and an optional frequency. Pinyin may carry
// apostrophes between syllables ("xi'an"). Blank lines and lines starting
// with # are skipped.
func (d *Dictionary) LoadWordList(r io.Reader) error {
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
			return fmt.Errorf("dictionary: line %d: want word and pinyin, got %q", line, text)
		}

		frequency := 0
		if len(fields) > 2 {
			f, err := strconv.Atoi(fields[2])
			if err != nil {
				return fmt.Errorf("dictionary: line %d: frequency: %w", line, err)
			}
			frequency = f
		}

		if err := d.AddWord(fields[0], fields[1], frequency); err != nil {
			return fmt.Errorf("dictionary: line %d: %w", line, err)
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("dictionary: %w", err)
	}

	return nil
}

// LoadRepository pulls every persisted user phrase into the dictionary.
func (d *Dictionary) LoadRepository(repo repository.Repository) error {
	phrases, err := repo.GetUserPhrases()
	if err != nil {
		return err
	}

	for _, p := range phrases {
		if err := d.AddEncoded(p.Word, p.Pinyin, p.Frequency); err != nil {
			return fmt.Errorf("dictionary: phrase %q: %w", p.Word, err)
		}
	}

	return nil
}
