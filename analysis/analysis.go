package analysis

import (
	"sort"

	"ugeforge/parse"
	"ugeforge/transform"
)

type NoteRange struct {
	Low   int
	High  int
	Count int
}

type SongAnalysis struct {
	// ReachablePositions are the sequence positions kept after stride cleanup.
	ReachablePositions []int
	PatternUsage       map[int]int
	InstrumentFreq     [3]map[int]int
	UsedInstruments    [3][]int
	UnusedInstruments  [3][]int
	EffectUsage        map[int]int
	NoteRanges         [parse.ChannelCount]NoteRange
	EmptyChannels      []int
	DuplicatePositions int // positions whose pattern was already placed earlier
	DroppedEffects     int

	channelInstruments [parse.ChannelCount]bool
}

func Analyze(song *parse.Song, stride int) SongAnalysis {
	a := SongAnalysis{
		PatternUsage: make(map[int]int),
		EffectUsage:  make(map[int]int),
	}
	for t := range a.InstrumentFreq {
		a.InstrumentFreq[t] = make(map[int]int)
	}
	for ch := range a.NoteRanges {
		a.NoteRanges[ch] = NoteRange{Low: -1, High: -1}
	}

	a.ReachablePositions = reachablePositions(len(song.Sequence), stride)

	for _, pos := range a.ReachablePositions {
		idx := song.Sequence[pos]
		if a.PatternUsage[idx] > 0 {
			a.DuplicatePositions++
		}
		a.PatternUsage[idx]++
	}

	for idx := range a.PatternUsage {
		if idx < 0 || idx >= len(song.Patterns) {
			continue
		}
		analyzePattern(&a, song.Patterns[idx], a.PatternUsage[idx])
	}

	for t := range a.InstrumentFreq {
		a.UsedInstruments[t] = sortedKeys(a.InstrumentFreq[t])
		for i := 0; i < song.InstrumentCount(parse.InstrumentType(t)); i++ {
			if a.InstrumentFreq[t][i] == 0 {
				a.UnusedInstruments[t] = append(a.UnusedInstruments[t], i)
			}
		}
	}

	for ch, nr := range a.NoteRanges {
		if nr.Count == 0 && !a.channelInstruments[ch] {
			a.EmptyChannels = append(a.EmptyChannels, ch)
		}
	}

	return a
}

func reachablePositions(n, stride int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	return transform.CleanSequence(idx, stride)
}

// analyzePattern counts each cell once per placement of the pattern.
func analyzePattern(a *SongAnalysis, pat parse.Pattern, weight int) {
	for row := 0; row < parse.PatternRows; row++ {
		for ch := 0; ch < parse.ChannelCount; ch++ {
			c := pat[row][ch]
			if c.HasNote() {
				nr := &a.NoteRanges[ch]
				if nr.Count == 0 || c.Note < nr.Low {
					nr.Low = c.Note
				}
				if nr.Count == 0 || c.Note > nr.High {
					nr.High = c.Note
				}
				nr.Count += weight
			}
			if c.HasInstrument() {
				t := parse.ChannelInstrumentType(ch)
				a.InstrumentFreq[t][c.Instrument] += weight
				a.channelInstruments[ch] = true
			}
			if c.HasEffect() {
				a.EffectUsage[c.EffectCode] += weight
				a.DroppedEffects += weight
			}
		}
	}
}

func sortedKeys(m map[int]int) []int {
	keys := make([]int, 0, len(m))
	for k, v := range m {
		if v > 0 {
			keys = append(keys, k)
		}
	}
	sort.Ints(keys)
	return keys
}
