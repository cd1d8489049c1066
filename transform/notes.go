package transform

import "fmt"

const (
	// noteRangeAlignment moves source note 0 (C) onto the C of the spectrum,
	// which starts at D#.
	noteRangeAlignment = 9
	octave             = 12
)

var noteNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// noteTable is the target's note spectrum from highest to lowest, the order
// the sound editor lists it in.
var noteTable = buildNoteTable(2, 3, 8)

func buildNoteTable(lowOctave, lowNote, highOctave int) []string {
	var asc []string
	for o := lowOctave; o <= highOctave; o++ {
		for n := 0; n < len(noteNames); n++ {
			if o == lowOctave && n < lowNote {
				continue
			}
			asc = append(asc, fmt.Sprintf("%s%d", noteNames[n], o))
		}
	}
	desc := make([]string, len(asc))
	for i, name := range asc {
		desc[len(asc)-1-i] = name
	}
	return desc
}

// NoteLabel converts a source note code to a spectrum label, one octave
// down and clamped to the spectrum.
func NoteLabel(note int) string {
	idx := clamp(note+noteRangeAlignment-octave, 0, len(noteTable)-1)
	return noteTable[len(noteTable)-1-idx]
}
