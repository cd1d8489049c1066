package encode

import (
	"fmt"
	"sort"

	"ugeforge/parse"
	"ugeforge/sound"
	"ugeforge/transform"
)

type trackSlot struct {
	channel int
	typ     sound.TrackType
}

// trackOrder lists the source channels in the engine's channel order.
// The second duty channel lands on a wave channel and keeps the wave type.
var trackOrder = []trackSlot{
	{parse.ChannelDuty2, sound.TrackWave},
	{parse.ChannelWave, sound.TrackWave},
	{parse.ChannelDuty1, sound.TrackSweepMod},
	{parse.ChannelNoise, sound.TrackNoise},
}

var channelNames = [parse.ChannelCount]string{"Duty 1", "Duty 2", "Wave", "Noise"}

// Encode assembles the final sound data: pattern ids, track order, default
// instruments and the dictionaries of referenced patterns and instruments.
func Encode(ts transform.TransformedSong, newID sound.IDGenerator) sound.SoundData {
	if newID == nil {
		newID = sound.RandomIDs()
	}

	sd := sound.SoundData{
		Name:        ts.Name,
		Author:      ts.Artist,
		Comment:     ts.Comment,
		Speed:       ts.Speed,
		Tracks:      []sound.TrackConfig{},
		Patterns:    make(map[string]sound.PatternConfig),
		Instruments: make(map[string]sound.InstrumentConfig),
	}

	for _, slot := range trackOrder {
		ch := ts.Channels[slot.channel]
		if len(ch.Sequence) == 0 {
			continue
		}

		track := sound.TrackConfig{
			Type:       slot.typ,
			Instrument: DefaultInstrument(ch),
			Sequence:   make(map[int]string),
		}

		patternIDs := make(map[int]string)
		for _, step := range sortedSteps(ch.Sequence) {
			src := ch.Sequence[step]
			id, ok := patternIDs[src]
			if !ok {
				id = newID()
				patternIDs[src] = id
				sd.Patterns[id] = sound.PatternConfig{
					Name:   fmt.Sprintf("%s %d", channelNames[slot.channel], src),
					Type:   slot.typ,
					Size:   sound.ConvertedPatternSize,
					Events: ElideInstrument(ch.Patterns[src].Events, track.Instrument),
				}
			}
			track.Sequence[step] = id
		}

		addInstruments(sd.Instruments, ch.Instruments, track, sd.Patterns)
		sd.Tracks = append(sd.Tracks, track)
	}

	sd.Size = SongSize(sd.Tracks)
	return sd
}

// DefaultInstrument picks the instrument of the first note in the track's
// first placed pattern, falling back to the first instrument of the channel.
func DefaultInstrument(ch transform.Channel) string {
	steps := sortedSteps(ch.Sequence)
	if len(steps) > 0 {
		if id, ok := ch.Patterns[ch.Sequence[steps[0]]].FirstNoteInstrument(); ok {
			return id
		}
	}
	if len(ch.Instruments) > 0 {
		return ch.Instruments[0].ID
	}
	return ""
}

// ElideInstrument copies events, dropping instrument references equal to the
// track default. Events left without content are dropped.
func ElideInstrument(events map[int]sound.Event, defaultID string) map[int]sound.Event {
	out := make(map[int]sound.Event, len(events))
	for step, ev := range events {
		if defaultID != "" && ev.Instrument == defaultID {
			ev.Instrument = ""
		}
		if ev.IsEmpty() {
			continue
		}
		out[step] = ev
	}
	return out
}

// addInstruments copies the channel instruments the track references into dict.
func addInstruments(dict map[string]sound.InstrumentConfig, list []transform.ConvertedInstrument, track sound.TrackConfig, patterns map[string]sound.PatternConfig) {
	used := map[string]bool{}
	if track.Instrument != "" {
		used[track.Instrument] = true
	}
	for _, id := range track.Sequence {
		for _, ev := range patterns[id].Events {
			if ev.Instrument != "" {
				used[ev.Instrument] = true
			}
		}
	}
	for _, inst := range list {
		if used[inst.ID] {
			dict[inst.ID] = inst.Config
		}
	}
}

// SongSize is the end of the longest track in steps.
func SongSize(tracks []sound.TrackConfig) int {
	size := 0
	for _, t := range tracks {
		last := t.LastStep()
		if last < 0 {
			continue
		}
		if end := last + sound.ConvertedPatternSize; end > size {
			size = end
		}
	}
	return size
}

func sortedSteps(seq map[int]int) []int {
	steps := make([]int, 0, len(seq))
	for step := range seq {
		steps = append(steps, step)
	}
	sort.Ints(steps)
	return steps
}
