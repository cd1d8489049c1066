package transform

import (
	"ugeforge/parse"
	"ugeforge/sound"
)

// convertChannel converts one channel of a source pattern. Rows with neither
// a note nor an instrument produce no event. Effects are not converted.
func convertChannel(pat parse.Pattern, src, ch int, instruments []ConvertedInstrument, duration int) ConvertedPattern {
	out := ConvertedPattern{
		Source:  src,
		Channel: ch,
		Events:  make(map[int]sound.Event),
	}
	for row := 0; row < parse.PatternRows; row++ {
		cell := pat[row][ch]
		if !cell.HasNote() && !cell.HasInstrument() {
			continue
		}
		var ev sound.Event
		if cell.HasNote() {
			ev.Note = NoteLabel(cell.Note)
			ev.Duration = duration
		}
		if cell.HasInstrument() && cell.Instrument < len(instruments) {
			ev.Instrument = instruments[cell.Instrument].ID
		}
		if ev.IsEmpty() {
			continue
		}
		out.Events[row] = ev
	}
	return out
}

func convertPatterns(song *parse.Song, lists [parse.ChannelCount][]ConvertedInstrument, duration int) [parse.ChannelCount]map[int]ConvertedPattern {
	var out [parse.ChannelCount]map[int]ConvertedPattern
	for ch := range out {
		out[ch] = make(map[int]ConvertedPattern)
		for idx, pat := range song.Patterns {
			conv := convertChannel(pat, idx, ch, lists[ch], duration)
			if len(conv.Events) > 0 {
				out[ch][idx] = conv
			}
		}
	}
	return out
}
