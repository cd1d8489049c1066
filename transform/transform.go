package transform

import "ugeforge/parse"

// Transform converts a loaded song into per-channel engine instruments,
// patterns and sequences. Only Options.NewID introduces nondeterminism.
func Transform(song *parse.Song, opts Options) TransformedSong {
	opts = opts.withDefaults()

	result := TransformedSong{
		Name:            song.Name,
		Artist:          song.Artist,
		Comment:         song.Comment,
		Speed:           song.TicksPerRow,
		CleanedSequence: CleanSequence(song.Sequence, opts.SequenceStride),
	}

	lists := convertInstruments(song, opts.NewID)
	patterns := convertPatterns(song, lists, opts.NoteDuration)

	for ch := 0; ch < parse.ChannelCount; ch++ {
		result.Channels[ch] = Channel{
			Instruments: lists[ch],
			Patterns:    patterns[ch],
			Sequence:    placeSequence(result.CleanedSequence, patterns[ch]),
		}
	}
	return result
}
