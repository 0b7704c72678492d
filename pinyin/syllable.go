// Package pinyin implements the syllable inventory, the segmentation
// graph and the binary codec for full pinyin input.
package pinyin

// Initial is the consonant half of a syllable. InitialZero marks
// syllables spelled with a bare final, such as "an" or "er".
type Initial byte

const (
	InitialInvalid Initial = iota
	InitialB
	InitialP
	InitialM
	InitialF
	InitialD
	InitialT
	InitialN
	InitialL
	InitialG
	InitialK
	InitialH
	InitialJ
	InitialQ
	InitialX
	InitialZH
	InitialCH
	InitialSH
	InitialR
	InitialZ
	InitialC
	InitialS
	InitialY
	InitialW
	InitialZero
)

var initialText = [...]string{
	"",
	"b", "p", "m", "f",
	"d", "t", "n", "l",
	"g", "k", "h",
	"j", "q", "x",
	"zh", "ch", "sh", "r",
	"z", "c", "s",
	"y", "w",
	"",
}

func (i Initial) String() string {
	if int(i) >= len(initialText) {
		return ""
	}
	return initialText[i]
}

func (i Initial) valid() bool {
	return i > InitialInvalid && i <= InitialZero
}

// Final is the vowel half of a syllable. FinalNone marks a partial
// syllable: an initial typed on its own, awaiting its final.
type Final byte

const (
	FinalNone Final = iota
	FinalA
	FinalAI
	FinalAN
	FinalANG
	FinalAO
	FinalE
	FinalEI
	FinalEN
	FinalENG
	FinalER
	FinalI
	FinalIA
	FinalIAN
	FinalIANG
	FinalIAO
	FinalIE
	FinalIN
	FinalING
	FinalIONG
	FinalIU
	FinalO
	FinalONG
	FinalOU
	FinalU
	FinalUA
	FinalUAI
	FinalUAN
	FinalUANG
	FinalUE
	FinalUI
	FinalUN
	FinalUO
	FinalV
	FinalVE
)

var finalText = [...]string{
	"",
	"a", "ai", "an", "ang", "ao",
	"e", "ei", "en", "eng", "er",
	"i", "ia", "ian", "iang", "iao", "ie", "in", "ing", "iong", "iu",
	"o", "ong", "ou",
	"u", "ua", "uai", "uan", "uang", "ue", "ui", "un", "uo",
	"v", "ve",
}

func (f Final) String() string {
	if int(f) >= len(finalText) {
		return ""
	}
	return finalText[f]
}

func (f Final) valid() bool {
	return f <= FinalVE
}

// Syllable is an immutable (initial, final) pair. A syllable with
// FinalNone is a partial syllable.
type Syllable struct {
	Initial Initial
	Final   Final
}

// String returns the typed form of the syllable: the initial's
// spelling followed by the final's spelling.
func (s Syllable) String() string {
	return s.Initial.String() + s.Final.String()
}

// Partial reports whether the syllable is an initial typed on its own.
func (s Syllable) Partial() bool {
	return s.Final == FinalNone
}

// Valid reports whether both halves lie in the enumerated range and
// the pair spells something: the zero initial with no final does not.
func (s Syllable) Valid() bool {
	if !s.Initial.valid() || !s.Final.valid() {
		return false
	}
	return !(s.Initial == InitialZero && s.Final == FinalNone)
}

// Reading is one syllable interpretation of a matched substring. Fuzzy
// readings come from interchange rules rather than exact spelling.
type Reading struct {
	Syllable Syllable
	Fuzzy    bool
}
