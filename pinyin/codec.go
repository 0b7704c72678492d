package pinyin

import (
	"errors"
	"fmt"
	"strings"
)

// Code is the fixed-width binary form of a syllable: one initial byte
// followed by one final byte. Real values start at 1; a zero final
// byte marks a partial syllable.
type Code [2]byte

var (
	// ErrInvalidSyllable reports a code outside the enumerated
	// initial/final ranges.
	ErrInvalidSyllable = errors.New("pinyin: invalid syllable code")

	// ErrNoSegmentation reports input that no full-coverage syllable
	// path explains.
	ErrNoSegmentation = errors.New("pinyin: no full syllable segmentation")
)

// Code returns the binary form of the syllable.
func (s Syllable) Code() Code {
	return Code{byte(s.Initial), byte(s.Final)}
}

// SyllableFromCode recovers a syllable from its binary form. The
// round trip through Code is exact for every syllable the table
// enumerates.
func SyllableFromCode(c Code) (Syllable, error) {
	s := Syllable{Initial: Initial(c[0]), Final: Final(c[1])}
	if !s.Valid() {
		return Syllable{}, fmt.Errorf("%w: 0x%02x%02x", ErrInvalidSyllable, c[0], c[1])
	}
	return s, nil
}

// EncodeFullPinyin converts typed pinyin to its binary code sequence.
// The text is segmented with no fuzzy rules and must be covered end to
// end by syllables; among competing cuts the first path found wins,
// which is the greedy longest-syllable one. Apostrophe boundaries are
// honored but occupy no codes.
func EncodeFullPinyin(text string) ([]byte, error) {
	g := Parse(text, FuzzyNone)

	var path []int
	g.DFS(func(_ *SegmentGraph, p []int) bool {
		if path == nil {
			path = make([]int, len(p))
			copy(path, p)
		}
		return false
	})
	if path == nil {
		return nil, fmt.Errorf("%w: %q", ErrNoSegmentation, text)
	}

	encoded := make([]byte, 0, (len(path)-1)*2)
	for i := 0; i+1 < len(path); i++ {
		edge := findEdge(g.Node(path[i]).Nexts(), g.Node(path[i+1]))
		if edge == nil {
			panic("pinyin: segment path without edge")
		}
		if edge.Boundary() {
			continue
		}
		code := edge.readings[0].Syllable.Code()
		encoded = append(encoded, code[0], code[1])
	}
	if len(encoded) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrNoSegmentation, text)
	}
	return encoded, nil
}

// DecodeFullPinyin renders a code sequence back to typed pinyin.
// Syllables are joined with an apostrophe so the result reparses to
// the same boundaries.
func DecodeFullPinyin(data []byte) (string, error) {
	if len(data)%2 != 0 {
		return "", fmt.Errorf("%w: odd code sequence length %d", ErrInvalidSyllable, len(data))
	}
	var b strings.Builder
	for i := 0; i < len(data); i += 2 {
		s, err := SyllableFromCode(Code{data[i], data[i+1]})
		if err != nil {
			return "", err
		}
		if i > 0 {
			b.WriteByte('\'')
		}
		b.WriteString(s.String())
	}
	return b.String(), nil
}
