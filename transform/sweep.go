package transform

import "ugeforge/sound"

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// convertSweep maps a duty instrument's frequency sweep. The source has no
// sweep clock setting, so the 7.68ms clock is always used.
func convertSweep(sweepTime, shift int) sound.SweepModConfig {
	dir := sound.SweepDown
	if shift > 0 {
		dir = sound.SweepUp
	}
	return sound.SweepModConfig{
		Enabled:   shift != 0,
		Function:  sound.FunctionSweep,
		Frequency: sound.SweepFrequency7680us,
		Interval:  sweepTime,
		Direction: dir,
		Shift:     clamp(abs(shift)-1, sound.SweepShiftMin, sound.SweepShiftMax),
	}
}
