package transform

import (
	"fmt"
	"math"

	"ugeforge/parse"
	"ugeforge/sound"
)

const intervalUnit = 0.00384

// convertInterval turns a length counter (1/256 s per tick) into the
// target's auto-off interval, (value+1) * 3.84ms.
func convertInterval(enabled bool, length int) sound.IntervalConfig {
	if !enabled {
		return sound.IntervalConfig{}
	}
	seconds := float64(length) / 256
	value := int(math.Round(seconds/intervalUnit)) - 1
	return sound.IntervalConfig{
		Enabled: true,
		Value:   clamp(value, sound.IntervalMin, sound.IntervalMax),
	}
}

// tapPeriods lists the sequence length of each noise tap position.
var tapPeriods = [8]int{32767, 1953, 254, 217, 73, 63, 42, 28}

func noiseTap(bits int) int {
	period := 1<<bits - 1
	best := 0
	for tap, p := range tapPeriods {
		if abs(p-period) < abs(tapPeriods[best]-period) {
			best = tap
		}
	}
	return best
}

func fullVolume() sound.StereoVolume {
	return sound.StereoVolume{Left: sound.MaxVolume, Right: sound.MaxVolume}
}

func instrumentName(name string, kind parse.InstrumentType, index int) string {
	if name != "" {
		return name
	}
	return fmt.Sprintf("%s %d", kind, index+1)
}

func convertDutyInstrument(inst parse.DutyInstrument) sound.InstrumentConfig {
	return sound.InstrumentConfig{
		Name:     instrumentName(inst.Name, parse.InstrumentDuty, inst.Index),
		Type:     sound.TrackSweepMod,
		Waveform: pulseWaveform(inst.DutyCycle),
		Volume:   fullVolume(),
		Envelope: convertEnvelope(inst.InitialVolume, inst.VolumeSweepChange),
		Interval: convertInterval(inst.LengthEnabled, inst.Length),
		SweepMod: convertSweep(inst.FreqSweepTime, inst.FreqSweepShift),
	}
}

func convertWaveInstrument(inst parse.WaveInstrument, waves [parse.WaveCount][parse.WaveSize]byte) sound.InstrumentConfig {
	cfg := sound.InstrumentConfig{
		Name:     instrumentName(inst.Name, parse.InstrumentWave, inst.Index),
		Type:     sound.TrackWave,
		Volume:   fullVolume(),
		Envelope: waveEnvelope(inst.Volume),
		Interval: convertInterval(inst.LengthEnabled, inst.Length),
	}
	if inst.WaveIndex >= 0 && inst.WaveIndex < parse.WaveCount {
		cfg.Waveform = ConvertWaveform(waves[inst.WaveIndex])
	}
	return cfg
}

func convertNoiseInstrument(inst parse.NoiseInstrument) sound.InstrumentConfig {
	return sound.InstrumentConfig{
		Name:     instrumentName(inst.Name, parse.InstrumentNoise, inst.Index),
		Type:     sound.TrackNoise,
		Volume:   fullVolume(),
		Envelope: convertEnvelope(noiseVolume(inst.InitialVolume), inst.VolumeSweepChange),
		Interval: convertInterval(inst.LengthEnabled, inst.Length),
		Tap:      noiseTap(inst.BitCount),
	}
}

// convertInstruments builds the per-channel instrument lists. Both duty
// channels share one list.
func convertInstruments(song *parse.Song, newID sound.IDGenerator) [parse.ChannelCount][]ConvertedInstrument {
	var lists [parse.ChannelCount][]ConvertedInstrument

	duty := make([]ConvertedInstrument, 0, len(song.DutyInstruments))
	for _, inst := range song.DutyInstruments {
		duty = append(duty, ConvertedInstrument{ID: newID(), Source: inst.Index, Config: convertDutyInstrument(inst)})
	}
	lists[parse.ChannelDuty1] = duty
	lists[parse.ChannelDuty2] = duty

	for _, inst := range song.WaveInstruments {
		lists[parse.ChannelWave] = append(lists[parse.ChannelWave],
			ConvertedInstrument{ID: newID(), Source: inst.Index, Config: convertWaveInstrument(inst, song.Waves)})
	}
	for _, inst := range song.NoiseInstruments {
		lists[parse.ChannelNoise] = append(lists[parse.ChannelNoise],
			ConvertedInstrument{ID: newID(), Source: inst.Index, Config: convertNoiseInstrument(inst)})
	}
	return lists
}
