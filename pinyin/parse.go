package pinyin

// Parse segments raw full pinyin input into a graph of candidate
// syllable cuts under the given fuzzy flags. Input text is never
// rejected: unrecognizable stretches simply produce no edges, which
// can leave the graph disconnected, so callers check CheckGraph before
// decoding.
func Parse(text string, flags FuzzyFlags) *SegmentGraph {
	g := newSegmentGraph(text)
	reached := make([]bool, len(text)+1)
	reached[0] = true

	for pos := 0; pos < len(text); pos++ {
		if !reached[pos] {
			continue
		}

		if text[pos] == '\'' {
			// A run of apostrophes is an explicit boundary: one
			// unconditional cut carrying no readings. Matching never
			// crosses it.
			end := pos + 1
			for end < len(text) && text[end] == '\'' {
				end++
			}
			g.addEdge(pos, end, text[pos:end], nil)
			reached[end] = true
			continue
		}

		limit := pos
		for limit < len(text) && limit-pos < maxSyllableLength && text[limit] != '\'' {
			limit++
		}
		for end := limit; end > pos; end-- {
			seg := text[pos:end]
			readings := StringToSyllables(seg, flags)
			if len(readings) == 0 {
				continue
			}
			g.addEdge(pos, end, seg, readings)
			reached[end] = true
		}
	}

	return g
}
