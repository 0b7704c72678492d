package pinyin

import (
	"math/bits"
	"sort"
	"strings"
)

// maxSyllableLength bounds the typed length of any syllable spelling,
// fuzzy variants included ("zhuang", "zhuagn").
const maxSyllableLength = 6

// finalsByInitial enumerates, per initial, the finals it combines with
// in standard full pinyin. The typed form of every syllable is the
// initial's spelling followed by the final's spelling, so the whole
// inventory is generated from this matrix.
var finalsByInitial = []struct {
	initial Initial
	finals  []Final
}{
	{InitialB, []Final{FinalA, FinalAI, FinalAN, FinalANG, FinalAO, FinalEI, FinalEN, FinalENG, FinalI, FinalIAN, FinalIAO, FinalIE, FinalIN, FinalING, FinalO, FinalU}},
	{InitialP, []Final{FinalA, FinalAI, FinalAN, FinalANG, FinalAO, FinalEI, FinalEN, FinalENG, FinalI, FinalIAN, FinalIAO, FinalIE, FinalIN, FinalING, FinalO, FinalOU, FinalU}},
	{InitialM, []Final{FinalA, FinalAI, FinalAN, FinalANG, FinalAO, FinalE, FinalEI, FinalEN, FinalENG, FinalI, FinalIAN, FinalIAO, FinalIE, FinalIN, FinalING, FinalIU, FinalO, FinalOU, FinalU}},
	{InitialF, []Final{FinalA, FinalAN, FinalANG, FinalEI, FinalEN, FinalENG, FinalO, FinalOU, FinalU}},
	{InitialD, []Final{FinalA, FinalAI, FinalAN, FinalANG, FinalAO, FinalE, FinalEI, FinalEN, FinalENG, FinalI, FinalIA, FinalIAN, FinalIAO, FinalIE, FinalING, FinalIU, FinalONG, FinalOU, FinalU, FinalUAN, FinalUI, FinalUN, FinalUO}},
	{InitialT, []Final{FinalA, FinalAI, FinalAN, FinalANG, FinalAO, FinalE, FinalENG, FinalI, FinalIAN, FinalIAO, FinalIE, FinalING, FinalONG, FinalOU, FinalU, FinalUAN, FinalUI, FinalUN, FinalUO}},
	{InitialN, []Final{FinalA, FinalAI, FinalAN, FinalANG, FinalAO, FinalE, FinalEI, FinalEN, FinalENG, FinalI, FinalIAN, FinalIANG, FinalIAO, FinalIE, FinalIN, FinalING, FinalIU, FinalONG, FinalOU, FinalU, FinalUAN, FinalUO, FinalV, FinalVE}},
	{InitialL, []Final{FinalA, FinalAI, FinalAN, FinalANG, FinalAO, FinalE, FinalEI, FinalENG, FinalI, FinalIA, FinalIAN, FinalIANG, FinalIAO, FinalIE, FinalIN, FinalING, FinalIU, FinalO, FinalONG, FinalOU, FinalU, FinalUAN, FinalUN, FinalUO, FinalV, FinalVE}},
	{InitialG, []Final{FinalA, FinalAI, FinalAN, FinalANG, FinalAO, FinalE, FinalEI, FinalEN, FinalENG, FinalONG, FinalOU, FinalU, FinalUA, FinalUAI, FinalUAN, FinalUANG, FinalUI, FinalUN, FinalUO}},
	{InitialK, []Final{FinalA, FinalAI, FinalAN, FinalANG, FinalAO, FinalE, FinalEI, FinalEN, FinalENG, FinalONG, FinalOU, FinalU, FinalUA, FinalUAI, FinalUAN, FinalUANG, FinalUI, FinalUN, FinalUO}},
	{InitialH, []Final{FinalA, FinalAI, FinalAN, FinalANG, FinalAO, FinalE, FinalEI, FinalEN, FinalENG, FinalONG, FinalOU, FinalU, FinalUA, FinalUAI, FinalUAN, FinalUANG, FinalUI, FinalUN, FinalUO}},
	{InitialJ, []Final{FinalI, FinalIA, FinalIAN, FinalIANG, FinalIAO, FinalIE, FinalIN, FinalING, FinalIONG, FinalIU, FinalU, FinalUAN, FinalUE, FinalUN}},
	{InitialQ, []Final{FinalI, FinalIA, FinalIAN, FinalIANG, FinalIAO, FinalIE, FinalIN, FinalING, FinalIONG, FinalIU, FinalU, FinalUAN, FinalUE, FinalUN}},
	{InitialX, []Final{FinalI, FinalIA, FinalIAN, FinalIANG, FinalIAO, FinalIE, FinalIN, FinalING, FinalIONG, FinalIU, FinalU, FinalUAN, FinalUE, FinalUN}},
	{InitialZH, []Final{FinalA, FinalAI, FinalAN, FinalANG, FinalAO, FinalE, FinalEI, FinalEN, FinalENG, FinalI, FinalONG, FinalOU, FinalU, FinalUA, FinalUAI, FinalUAN, FinalUANG, FinalUI, FinalUN, FinalUO}},
	{InitialCH, []Final{FinalA, FinalAI, FinalAN, FinalANG, FinalAO, FinalE, FinalEN, FinalENG, FinalI, FinalONG, FinalOU, FinalU, FinalUA, FinalUAI, FinalUAN, FinalUANG, FinalUI, FinalUN, FinalUO}},
	{InitialSH, []Final{FinalA, FinalAI, FinalAN, FinalANG, FinalAO, FinalE, FinalEI, FinalEN, FinalENG, FinalI, FinalOU, FinalU, FinalUA, FinalUAI, FinalUAN, FinalUANG, FinalUI, FinalUN, FinalUO}},
	{InitialR, []Final{FinalAN, FinalANG, FinalAO, FinalE, FinalEN, FinalENG, FinalI, FinalONG, FinalOU, FinalU, FinalUAN, FinalUI, FinalUN, FinalUO}},
	{InitialZ, []Final{FinalA, FinalAI, FinalAN, FinalANG, FinalAO, FinalE, FinalEI, FinalEN, FinalENG, FinalI, FinalONG, FinalOU, FinalU, FinalUAN, FinalUI, FinalUN, FinalUO}},
	{InitialC, []Final{FinalA, FinalAI, FinalAN, FinalANG, FinalAO, FinalE, FinalEN, FinalENG, FinalI, FinalONG, FinalOU, FinalU, FinalUAN, FinalUI, FinalUN, FinalUO}},
	{InitialS, []Final{FinalA, FinalAI, FinalAN, FinalANG, FinalAO, FinalE, FinalEN, FinalENG, FinalI, FinalONG, FinalOU, FinalU, FinalUAN, FinalUI, FinalUN, FinalUO}},
	{InitialY, []Final{FinalA, FinalAN, FinalANG, FinalAO, FinalE, FinalI, FinalIN, FinalING, FinalONG, FinalOU, FinalU, FinalUAN, FinalUE, FinalUN}},
	{InitialW, []Final{FinalA, FinalAI, FinalAN, FinalANG, FinalEI, FinalEN, FinalENG, FinalO, FinalU}},
	{InitialZero, []Final{FinalA, FinalAI, FinalAN, FinalANG, FinalAO, FinalE, FinalEI, FinalEN, FinalENG, FinalER, FinalO, FinalOU}},
}

type tableEntry struct {
	syllable Syllable
	// Flags that must all be enabled before this spelling is readable
	// as the syllable. Zero for exact spellings.
	fuzzy FuzzyFlags
}

var (
	syllableIndex = map[string][]tableEntry{}
	syllables     []Syllable
)

func init() {
	for _, row := range finalsByInitial {
		for _, f := range row.finals {
			s := Syllable{row.initial, f}
			syllables = append(syllables, s)
			addTableEntry(s.String(), s, FuzzyNone)
		}
	}
	// A typed initial on its own is a valid partial syllable.
	for i := InitialB; i < InitialZero; i++ {
		addTableEntry(i.String(), Syllable{i, FinalNone}, FuzzyNone)
	}
	for _, s := range syllables {
		expandFuzzySpellings(s)
	}
	// Readings of a spelling are ordered by how many interchange rules
	// they lean on, so the exact reading always comes first.
	for _, entries := range syllableIndex {
		sort.SliceStable(entries, func(i, j int) bool {
			return bits.OnesCount32(uint32(entries[i].fuzzy)) < bits.OnesCount32(uint32(entries[j].fuzzy))
		})
	}
}

func addTableEntry(text string, s Syllable, flags FuzzyFlags) {
	entries := syllableIndex[text]
	for i, e := range entries {
		if e.syllable == s {
			if bits.OnesCount32(uint32(flags)) < bits.OnesCount32(uint32(e.fuzzy)) {
				entries[i].fuzzy = flags
			}
			return
		}
	}
	syllableIndex[text] = append(entries, tableEntry{syllable: s, fuzzy: flags})
}

// expandFuzzySpellings registers, for one valid syllable, every
// variant spelling reachable by swapping its initial or final through
// an interchange rule, gated on the rules used. Typing "cuang" with
// the c/ch rule enabled reads as chuang this way even though cuang
// itself spells nothing.
func expandFuzzySpellings(s Syllable) {
	type spelledInitial struct {
		initial Initial
		flag    FuzzyFlags
	}
	inits := []spelledInitial{{s.Initial, FuzzyNone}}
	for _, r := range fuzzyInitials {
		switch s.Initial {
		case r.a:
			inits = append(inits, spelledInitial{r.b, r.flag})
		case r.b:
			inits = append(inits, spelledInitial{r.a, r.flag})
		}
	}

	type spelledFinal struct {
		final Final
		flag  FuzzyFlags
	}
	fins := []spelledFinal{{s.Final, FuzzyNone}}
	for _, r := range fuzzyFinals {
		switch s.Final {
		case r.a:
			fins = append(fins, spelledFinal{r.b, r.flag})
		case r.b:
			fins = append(fins, spelledFinal{r.a, r.flag})
		}
	}

	for _, i := range inits {
		for _, f := range fins {
			flags := i.flag | f.flag
			if flags == FuzzyNone {
				continue
			}
			addTableEntry(i.initial.String()+f.final.String(), s, flags)
		}
	}
}

// Syllables returns every valid (initial, final) pair in table order.
func Syllables() []Syllable {
	out := make([]Syllable, len(syllables))
	copy(out, syllables)
	return out
}

// StringToSyllables returns the syllable readings of text under the
// given fuzzy flags: the exact spelling's readings, variant readings
// whose interchange rules are all enabled, and initial-only partials.
// The result is empty when text spells nothing.
func StringToSyllables(text string, flags FuzzyFlags) []Reading {
	readings := appendReadings(nil, text, flags, false)
	if flags.Has(FuzzyNgGn) && strings.HasSuffix(text, "gn") {
		readings = appendReadings(readings, text[:len(text)-2]+"ng", flags, true)
	}
	return readings
}

func appendReadings(dst []Reading, text string, flags FuzzyFlags, rewritten bool) []Reading {
	for _, e := range syllableIndex[text] {
		if e.fuzzy&^flags != 0 {
			continue
		}
		if containsReading(dst, e.syllable) {
			continue
		}
		dst = append(dst, Reading{
			Syllable: e.syllable,
			Fuzzy:    rewritten || e.fuzzy != FuzzyNone,
		})
	}
	return dst
}

func containsReading(rs []Reading, s Syllable) bool {
	for _, r := range rs {
		if r.Syllable == s {
			return true
		}
	}
	return false
}
