package history

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/qwwqe/pyime/lexicon"
)

// Binary layout, all integers big-endian u32: the retained sentence
// count, each retained sentence newest first as a word count followed
// by length-prefixed UTF-8 words, then the long-term pool's tally and
// its unigram and bigram tables. Each table is an entry count followed
// by length-prefixed keys and their counts in lexicographic key order,
// so identical models always serialize to identical bytes.

func (b *bigram) Save(w io.Writer) error {
	if err := writeU32(w, uint32(len(b.recent.sentences))); err != nil {
		return fmt.Errorf("history: sentence count: %w", err)
	}
	for i := len(b.recent.sentences) - 1; i >= 0; i-- {
		if err := writeSentence(w, b.recent.sentences[i]); err != nil {
			return err
		}
	}
	if err := writeU32(w, uint32(b.final.tally)); err != nil {
		return fmt.Errorf("history: tally: %w", err)
	}
	if err := writeCounts(w, b.final.unigrams); err != nil {
		return err
	}
	return writeCounts(w, b.final.bigrams)
}

func (b *bigram) Load(r io.Reader) error {
	fresh := newBigram(b.recent.bound)
	fresh.unknown = b.unknown

	count, err := readU32(r)
	if err != nil {
		return fmt.Errorf("history: sentence count: %w", err)
	}
	sentences := make([][]string, 0, count)
	for i := uint32(0); i < count; i++ {
		sentence, err := readSentence(r)
		if err != nil {
			return err
		}
		sentences = append(sentences, sentence)
	}
	// Sentences are stored newest first; replay them oldest first so
	// eviction order survives a round trip.
	for i := len(sentences) - 1; i >= 0; i-- {
		fresh.Add(sentences[i])
	}

	tally, err := readU32(r)
	if err != nil {
		return fmt.Errorf("history: tally: %w", err)
	}
	fresh.final.clear()
	fresh.final.tally = int(tally)
	if err := readCounts(r, fresh.final.unigrams); err != nil {
		return err
	}
	if err := readCounts(r, fresh.final.bigrams); err != nil {
		return err
	}

	*b = *fresh
	return nil
}

func writeSentence(w io.Writer, sentence []string) error {
	if err := writeU32(w, uint32(len(sentence))); err != nil {
		return fmt.Errorf("history: sentence size: %w", err)
	}
	for _, word := range sentence {
		if err := writeString(w, word); err != nil {
			return fmt.Errorf("history: word: %w", err)
		}
	}
	return nil
}

func readSentence(r io.Reader) ([]string, error) {
	size, err := readU32(r)
	if err != nil {
		return nil, fmt.Errorf("history: sentence size: %w", err)
	}
	sentence := make([]string, 0, size)
	for i := uint32(0); i < size; i++ {
		word, err := readString(r)
		if err != nil {
			return nil, err
		}
		sentence = append(sentence, word)
	}
	return sentence, nil
}

func writeCounts(w io.Writer, counts *lexicon.Trie[int32]) error {
	if err := writeU32(w, uint32(counts.Len())); err != nil {
		return fmt.Errorf("history: count table size: %w", err)
	}
	var werr error
	counts.Walk(func(key string, count int32) {
		if werr != nil {
			return
		}
		if werr = writeString(w, key); werr != nil {
			return
		}
		werr = writeU32(w, uint32(count))
	})
	if werr != nil {
		return fmt.Errorf("history: count table: %w", werr)
	}
	return nil
}

func readCounts(r io.Reader, counts *lexicon.Trie[int32]) error {
	entries, err := readU32(r)
	if err != nil {
		return fmt.Errorf("history: count table size: %w", err)
	}
	for i := uint32(0); i < entries; i++ {
		key, err := readString(r)
		if err != nil {
			return err
		}
		count, err := readU32(r)
		if err != nil {
			return fmt.Errorf("history: count: %w", err)
		}
		counts.Put(key, int32(count))
	}
	return nil
}

func writeString(w io.Writer, s string) error {
	if err := writeU32(w, uint32(len(s))); err != nil {
		return err
	}
	_, err := io.WriteString(w, s)
	return err
}

func readString(r io.Reader) (string, error) {
	length, err := readU32(r)
	if err != nil {
		return "", fmt.Errorf("history: string length: %w", err)
	}
	buf := make([]byte, length)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", fmt.Errorf("history: string: %w", err)
	}
	return string(buf), nil
}

func writeU32(w io.Writer, v uint32) error {
	return binary.Write(w, binary.BigEndian, v)
}

func readU32(r io.Reader) (uint32, error) {
	var v uint32
	if err := binary.Read(r, binary.BigEndian, &v); err != nil {
		return 0, err
	}
	return v, nil
}
