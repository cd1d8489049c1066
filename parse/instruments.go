package parse

const noiseMacroSize = 6

// rawInstrument holds every field of an instrument slot; the type tag decides
// which of them end up in the derived instrument.
type rawInstrument struct {
	typ               uint32
	name              string
	length            int
	lengthEnabled     bool
	initialVolume     int
	volumeSweepChange int
	freqSweepTime     int
	freqSweepShift    int
	duty              int
	waveOutputLevel   int
	waveIndex         int
	counterStep       int
	dividingRatio     int
	subpatternEnabled bool
	subpattern        Subpattern
	noiseMacro        []int
}

func readInstrument(r *reader, lay layout) rawInstrument {
	inst := rawInstrument{subpattern: emptySubpattern()}

	inst.typ = r.uint32("instrument type")
	inst.name = r.text("instrument name")
	inst.length = r.int("instrument length")
	inst.lengthEnabled = r.bool("instrument length enabled")
	inst.initialVolume = r.uint8("initial volume")
	if inst.initialVolume > 15 {
		inst.initialVolume = 15
	}

	volumeDirection := r.uint32("volume direction")
	sweep := r.uint8("volume sweep amount")
	if sweep != 0 {
		sweep = 8 - sweep
	}
	if volumeDirection != 0 {
		sweep = -sweep
	}
	inst.volumeSweepChange = sweep

	inst.freqSweepTime = r.int("frequency sweep time")
	freqDirection := r.uint32("frequency sweep direction")
	inst.freqSweepShift = r.int("frequency sweep shift")
	if freqDirection != 0 {
		inst.freqSweepShift = -inst.freqSweepShift
	}

	inst.duty = r.uint8("duty cycle")
	inst.waveOutputLevel = r.int("wave output level")
	inst.waveIndex = r.int("wave index")

	if lay.subpatterns {
		inst.counterStep = r.int("noise counter step")
		inst.subpatternEnabled = r.bool("subpattern enabled")
		inst.subpattern = readSubpattern(r)
		return inst
	}

	if lay.legacyNoise {
		r.skip(4, "shift clock frequency")
		inst.counterStep = r.int("noise counter step")
		inst.dividingRatio = r.int("noise dividing ratio")
	}
	if lay.noiseMacro {
		inst.noiseMacro = make([]int, noiseMacroSize)
		for i := range inst.noiseMacro {
			inst.noiseMacro[i] = r.int8("noise macro")
		}
	}
	return inst
}

func readSubpattern(r *reader) Subpattern {
	var sub Subpattern
	for i := range sub {
		note := r.int("subpattern note")
		r.skip(4, "subpattern unused")
		sub[i].Jump = r.int("subpattern jump")
		sub[i].EffectCode = r.int("subpattern effect code")
		sub[i].EffectParam = r.uint8("subpattern effect param")
		if note == NoteNone {
			sub[i].Note = NoNote
		} else {
			sub[i].Note = note
		}
	}
	return sub
}

// lengthFor converts a stored length counter into ticks for a counter of the given size.
func (inst rawInstrument) lengthFor(counter int) int {
	if !inst.lengthEnabled {
		return 0
	}
	return counter - inst.length
}

func (inst rawInstrument) dutyInstrument() DutyInstrument {
	return DutyInstrument{
		Name:              inst.name,
		LengthEnabled:     inst.lengthEnabled,
		Length:            inst.lengthFor(64),
		InitialVolume:     inst.initialVolume,
		VolumeSweepChange: inst.volumeSweepChange,
		DutyCycle:         inst.duty,
		FreqSweepTime:     inst.freqSweepTime,
		FreqSweepShift:    inst.freqSweepShift,
		SubpatternEnabled: inst.subpatternEnabled,
		Subpattern:        inst.subpattern,
	}
}

func (inst rawInstrument) waveInstrument() WaveInstrument {
	return WaveInstrument{
		Name:              inst.name,
		LengthEnabled:     inst.lengthEnabled,
		Length:            inst.lengthFor(256),
		Volume:            inst.waveOutputLevel,
		WaveIndex:         inst.waveIndex,
		SubpatternEnabled: inst.subpatternEnabled,
		Subpattern:        inst.subpattern,
	}
}

func (inst rawInstrument) noiseInstrument() NoiseInstrument {
	bits := 15
	if inst.counterStep != 0 {
		bits = 7
	}
	return NoiseInstrument{
		Name:              inst.name,
		LengthEnabled:     inst.lengthEnabled,
		Length:            inst.lengthFor(64),
		InitialVolume:     inst.initialVolume,
		VolumeSweepChange: inst.volumeSweepChange,
		BitCount:          bits,
		DividingRatio:     inst.dividingRatio,
		SubpatternEnabled: inst.subpatternEnabled,
		Subpattern:        inst.subpattern,
	}
}

func hasNoiseMacro(macro []int) bool {
	for _, v := range macro {
		if v != 0 {
			return true
		}
	}
	return false
}

// migrateNoiseMacro turns a pre-v6 noise macro into the equivalent subpattern.
// The last macro step holds by jumping onto itself.
func migrateNoiseMacro(inst *NoiseInstrument, macro []int, ticksPerRow int) {
	inst.SubpatternEnabled = true
	for i, v := range macro {
		inst.Subpattern[i].Note = v + 36
	}
	wrap := min(ticksPerRow, 7)
	if wrap < 1 {
		return
	}
	inst.Subpattern[wrap-1].Jump = wrap
}
