package pinyin

// FuzzyFlags is a set of phonetic interchange rules. Each flag lets a
// spelled syllable be read with the interchanged initial or final as
// well as its exact one; flags compose with bitwise OR.
type FuzzyFlags uint32

const (
	FuzzyAnAng FuzzyFlags = 1 << iota
	FuzzyEnEng
	FuzzyIanIang
	FuzzyInIng
	FuzzyUOu
	FuzzyUanUang
	FuzzyVeUe
	FuzzyCCh
	FuzzyFH
	FuzzyLN
	FuzzySSh
	FuzzyZZh
	// FuzzyNgGn rewrites a trailing "gn" to "ng" before matching, for
	// transposed back-nasal typos such as "niagn".
	FuzzyNgGn
)

const FuzzyNone FuzzyFlags = 0

// Has reports whether every flag in other is enabled in f.
func (f FuzzyFlags) Has(other FuzzyFlags) bool {
	return f&other == other
}

var fuzzyInitials = []struct {
	flag FuzzyFlags
	a, b Initial
}{
	{FuzzyCCh, InitialC, InitialCH},
	{FuzzyFH, InitialF, InitialH},
	{FuzzyLN, InitialL, InitialN},
	{FuzzySSh, InitialS, InitialSH},
	{FuzzyZZh, InitialZ, InitialZH},
}

var fuzzyFinals = []struct {
	flag FuzzyFlags
	a, b Final
}{
	{FuzzyAnAng, FinalAN, FinalANG},
	{FuzzyEnEng, FinalEN, FinalENG},
	{FuzzyIanIang, FinalIAN, FinalIANG},
	{FuzzyInIng, FinalIN, FinalING},
	{FuzzyUOu, FinalU, FinalOU},
	{FuzzyUanUang, FinalUAN, FinalUANG},
	{FuzzyVeUe, FinalVE, FinalUE},
}
