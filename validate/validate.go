package validate

import (
	"fmt"
	"sort"
	"strings"

	"ugeforge/sound"
)

// Check verifies the invariants of converted sound data and returns an error
// listing every violation.
func Check(sd sound.SoundData) error {
	var problems []string
	add := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	for i, track := range sd.Tracks {
		if track.Instrument != "" {
			if _, ok := sd.Instruments[track.Instrument]; !ok {
				add("track %d: default instrument %s missing", i, track.Instrument)
			}
		}
		for step, id := range track.Sequence {
			pat, ok := sd.Patterns[id]
			if !ok {
				add("track %d step %d: pattern %s missing", i, step, id)
				continue
			}
			if step%sound.ConvertedPatternSize != 0 {
				add("track %d: step %d not on a pattern boundary", i, step)
			}
			if end := step + pat.Size; end > sd.Size {
				add("track %d: pattern %s ends at %d past song size %d", i, id, end, sd.Size)
			}
			for evStep, ev := range pat.Events {
				if ev.Instrument != "" && ev.Instrument == track.Instrument {
					add("pattern %s step %d: repeats track default instrument", id, evStep)
				}
			}
		}
	}

	for id, pat := range sd.Patterns {
		for step, ev := range pat.Events {
			if step < 0 || step >= pat.Size {
				add("pattern %s: event step %d outside size %d", id, step, pat.Size)
			}
			if ev.Instrument != "" {
				if _, ok := sd.Instruments[ev.Instrument]; !ok {
					add("pattern %s step %d: instrument %s missing", id, step, ev.Instrument)
				}
			}
			if ev.Note != "" && ev.Duration <= 0 {
				add("pattern %s step %d: note without duration", id, step)
			}
		}
	}

	for id, inst := range sd.Instruments {
		for i, s := range inst.Waveform {
			if s < 0 || s > sound.MaxSampleValue {
				add("instrument %s: sample %d = %d out of range", id, i, s)
			}
		}
		if env := inst.Envelope; env.StepTime < sound.EnvelopeStepTimeMin || env.StepTime > sound.EnvelopeStepTimeMax {
			add("instrument %s: envelope step time %d out of range", id, env.StepTime)
		}
		if sw := inst.SweepMod; sw.Shift < sound.SweepShiftMin || sw.Shift > sound.SweepShiftMax {
			add("instrument %s: sweep shift %d out of range", id, sw.Shift)
		}
	}

	if len(problems) == 0 {
		return nil
	}
	sort.Strings(problems)
	return fmt.Errorf("%d problems:\n  %s", len(problems), strings.Join(problems, "\n  "))
}
