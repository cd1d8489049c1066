package transform

import (
	"ugeforge/parse"
	"ugeforge/sound"
)

// ConvertSample rescales a 4-bit sample to the 6-bit range, keeping 0 silent.
func ConvertSample(s int) int {
	if s <= 0 {
		return 0
	}
	return (s+1)*4 - 1
}

func ConvertWaveform(wave [parse.WaveSize]byte) [sound.WaveformSize]int {
	var out [sound.WaveformSize]int
	for i, s := range wave {
		out[i] = ConvertSample(int(s & 0x0F))
	}
	return out
}

var dutyHighSamples = [4]int{4, 8, 16, 24}

// pulseWaveform synthesizes the square wave a duty channel would play.
func pulseWaveform(duty int) [sound.WaveformSize]int {
	var out [sound.WaveformSize]int
	high := dutyHighSamples[duty&3]
	for i := 0; i < high; i++ {
		out[sound.WaveformSize-high+i] = sound.MaxSampleValue
	}
	return out
}
