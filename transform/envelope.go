package transform

import (
	"math"

	"ugeforge/sound"
)

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// envelopeStepTime rebuilds a step time from the signed sweep change. The
// loader stored 8-n (negated for decay), so both signs map back to 1..8.
func envelopeStepTime(change int) int {
	n := change
	if change <= 0 {
		n = change + 8
	}
	return clamp((n+1)/2-1, sound.EnvelopeStepTimeMin, sound.EnvelopeStepTimeMax)
}

func convertEnvelope(initialVolume, change int) sound.EnvelopeConfig {
	dir := sound.EnvelopeDecay
	if change > 0 {
		dir = sound.EnvelopeGrow
	}
	return sound.EnvelopeConfig{
		Enabled:      change != 0,
		Direction:    dir,
		InitialValue: clamp(initialVolume, 0, sound.MaxVolume),
		StepTime:     envelopeStepTime(change),
	}
}

// noiseVolume compensates for the louder noise channel of the target hardware.
func noiseVolume(v int) int {
	return int(math.Round(float64(v) * 0.9))
}

var waveVolumes = [4]int{0, 15, 7, 3}

func waveEnvelope(level int) sound.EnvelopeConfig {
	return sound.EnvelopeConfig{
		InitialValue: waveVolumes[level&3],
	}
}
