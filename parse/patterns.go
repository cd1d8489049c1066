package parse

// rawCell is a pattern cell as stored on disk, before instrument resolution.
type rawCell struct {
	note        int
	instrument  int
	effectCode  int
	effectParam int
}

type rawPattern [PatternRows]rawCell

func readPattern(r *reader, lay layout) rawPattern {
	var pat rawPattern
	for row := range pat {
		pat[row].note = r.int("cell note")
		pat[row].instrument = r.int("cell instrument")
		if lay.cellUnused {
			r.skip(4, "cell unused")
		}
		pat[row].effectCode = r.int("cell effect code")
		pat[row].effectParam = r.uint8("cell effect param")
	}
	return pat
}

// rawPatternTable holds patterns by on-disk id. Ids may be sparse.
type rawPatternTable map[int]*rawPattern

// place stores a pattern under id. v5 files from some hUGETracker builds
// repeat ids; with appendOnClash the later pattern goes after the highest id.
func (t rawPatternTable) place(id int, pat rawPattern, appendOnClash bool) {
	if _, exists := t[id]; exists && appendOnClash {
		id = t.nextID()
	}
	t[id] = &pat
}

func (t rawPatternTable) nextID() int {
	next := 0
	for id := range t {
		if id >= next {
			next = id + 1
		}
	}
	return next
}

func resolveCell(raw rawCell, ch int, mapping InstrumentMapping) PatternCell {
	cell := EmptyCell
	if raw.note != NoteNone {
		cell.Note = raw.note
	}
	if raw.instrument != 0 {
		if idx, ok := mapping.Resolve(ch, raw.instrument); ok {
			cell.Instrument = idx
		}
	}
	if raw.effectCode != 0 || raw.effectParam != 0 {
		cell.EffectCode = raw.effectCode
		cell.EffectParam = raw.effectParam
	}
	return cell
}

// buildPattern assembles the four-channel pattern for one order position.
// Channels whose order entry has no stored pattern contribute empty cells.
func buildPattern(table rawPatternTable, orders [ChannelCount][]int, pos int, mapping InstrumentMapping) Pattern {
	pat := EmptyPattern()
	for ch := 0; ch < ChannelCount; ch++ {
		if pos >= len(orders[ch]) {
			continue
		}
		src, ok := table[orders[ch][pos]]
		if !ok {
			continue
		}
		for row := 0; row < PatternRows; row++ {
			pat[row][ch] = resolveCell(src[row], ch, mapping)
		}
	}
	return pat
}

// addDeduplicated appends pat to the song unless an identical pattern already
// exists, and records the sequence entry either way.
func (s *Song) addDeduplicated(pat Pattern) {
	for idx := range s.Patterns {
		if s.Patterns[idx] == pat {
			s.Sequence = append(s.Sequence, idx)
			return
		}
	}
	s.Sequence = append(s.Sequence, len(s.Patterns))
	s.Patterns = append(s.Patterns, pat)
}
