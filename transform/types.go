package transform

import (
	"ugeforge/parse"
	"ugeforge/sound"
)

type Options struct {
	NewID          sound.IDGenerator
	SequenceStride int
	NoteDuration   int
}

func DefaultOptions() Options {
	return Options{
		NewID:          sound.RandomIDs(),
		SequenceStride: 4,
		NoteDuration:   sound.DefaultNoteDuration,
	}
}

func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.NewID == nil {
		o.NewID = def.NewID
	}
	if o.SequenceStride <= 0 {
		o.SequenceStride = def.SequenceStride
	}
	if o.NoteDuration <= 0 {
		o.NoteDuration = def.NoteDuration
	}
	return o
}

type ConvertedInstrument struct {
	ID     string
	Source int
	Config sound.InstrumentConfig
}

// ConvertedPattern is one channel of one source pattern.
type ConvertedPattern struct {
	Source  int
	Channel int
	Events  map[int]sound.Event
}

// FirstNoteInstrument returns the instrument of the lowest-step note event.
// It reports false when there is no note or the first note has no instrument.
func (p ConvertedPattern) FirstNoteInstrument() (string, bool) {
	first := -1
	id := ""
	for step, ev := range p.Events {
		if ev.Note == "" {
			continue
		}
		if first < 0 || step < first {
			first = step
			id = ev.Instrument
		}
	}
	return id, id != ""
}

type Channel struct {
	Instruments []ConvertedInstrument
	// Patterns holds the converted non-empty channel patterns by source pattern index.
	Patterns map[int]ConvertedPattern
	// Sequence maps absolute steps to source pattern indices.
	Sequence map[int]int
}

type TransformedSong struct {
	Name    string
	Artist  string
	Comment string
	Speed   int

	CleanedSequence []int
	Channels        [parse.ChannelCount]Channel
}
