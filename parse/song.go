package parse

const (
	PatternRows  = 64
	ChannelCount = 4
	WaveCount    = 16
	WaveSize     = 32

	SubpatternRows = 64

	// NoteNone is the on-disk "no note" code for pattern cells and subpattern rows.
	NoteNone = 90

	NoNote       = -1
	NoInstrument = -1
	NoEffect     = -1
)

const (
	ChannelDuty1 = iota
	ChannelDuty2
	ChannelWave
	ChannelNoise
)

type InstrumentType int

const (
	InstrumentDuty InstrumentType = iota
	InstrumentWave
	InstrumentNoise
)

func (t InstrumentType) String() string {
	switch t {
	case InstrumentDuty:
		return "duty"
	case InstrumentWave:
		return "wave"
	case InstrumentNoise:
		return "noise"
	}
	return "unknown"
}

// ChannelInstrumentType returns the instrument table a hardware channel draws from.
func ChannelInstrumentType(ch int) InstrumentType {
	switch ch {
	case ChannelWave:
		return InstrumentWave
	case ChannelNoise:
		return InstrumentNoise
	}
	return InstrumentDuty
}

type PatternCell struct {
	Note        int
	Instrument  int
	EffectCode  int
	EffectParam int
}

var EmptyCell = PatternCell{
	Note:        NoNote,
	Instrument:  NoInstrument,
	EffectCode:  NoEffect,
	EffectParam: NoEffect,
}

func (c PatternCell) HasNote() bool       { return c.Note != NoNote }
func (c PatternCell) HasInstrument() bool { return c.Instrument != NoInstrument }
func (c PatternCell) HasEffect() bool     { return c.EffectCode != NoEffect }

type Row [ChannelCount]PatternCell

type Pattern [PatternRows]Row

func EmptyPattern() Pattern {
	var p Pattern
	for row := range p {
		for ch := range p[row] {
			p[row][ch] = EmptyCell
		}
	}
	return p
}

type SubpatternRow struct {
	Note        int
	Jump        int
	EffectCode  int
	EffectParam int
}

type Subpattern [SubpatternRows]SubpatternRow

func emptySubpattern() Subpattern {
	var s Subpattern
	for i := range s {
		s[i].Note = NoNote
	}
	return s
}

type DutyInstrument struct {
	Index             int
	Name              string
	LengthEnabled     bool
	Length            int
	InitialVolume     int
	VolumeSweepChange int
	DutyCycle         int
	FreqSweepTime     int
	FreqSweepShift    int
	SubpatternEnabled bool
	Subpattern        Subpattern
}

type WaveInstrument struct {
	Index             int
	Name              string
	LengthEnabled     bool
	Length            int
	Volume            int
	WaveIndex         int
	SubpatternEnabled bool
	Subpattern        Subpattern
}

type NoiseInstrument struct {
	Index             int
	Name              string
	LengthEnabled     bool
	Length            int
	InitialVolume     int
	VolumeSweepChange int
	BitCount          int
	DividingRatio     int
	SubpatternEnabled bool
	Subpattern        Subpattern
}

// InstrumentMapping resolves the 1-based instrument numbers stored in pattern
// cells to indices into the per-type instrument lists.
type InstrumentMapping [3]map[int]int

func newInstrumentMapping() InstrumentMapping {
	return InstrumentMapping{
		make(map[int]int),
		make(map[int]int),
		make(map[int]int),
	}
}

func (m InstrumentMapping) Resolve(ch int, raw int) (int, bool) {
	table := m[ChannelInstrumentType(ch)]
	if table == nil {
		return 0, false
	}
	idx, ok := table[raw]
	return idx, ok
}

type Song struct {
	Version int
	Name    string
	Artist  string
	Comment string

	DutyInstruments  []DutyInstrument
	WaveInstruments  []WaveInstrument
	NoiseInstruments []NoiseInstrument
	Mapping          InstrumentMapping

	Waves [WaveCount][WaveSize]byte

	TicksPerRow  int
	TimerEnabled bool
	TimerDivider int

	Patterns []Pattern
	Sequence []int
}

func (s *Song) addDutyInstrument(slot int, inst DutyInstrument) {
	inst.Index = len(s.DutyInstruments)
	s.Mapping[InstrumentDuty][slot%15+1] = inst.Index
	s.DutyInstruments = append(s.DutyInstruments, inst)
}

func (s *Song) addWaveInstrument(slot int, inst WaveInstrument) {
	inst.Index = len(s.WaveInstruments)
	s.Mapping[InstrumentWave][slot%15+1] = inst.Index
	s.WaveInstruments = append(s.WaveInstruments, inst)
}

func (s *Song) addNoiseInstrument(slot int, inst NoiseInstrument) {
	inst.Index = len(s.NoiseInstruments)
	s.Mapping[InstrumentNoise][slot%15+1] = inst.Index
	s.NoiseInstruments = append(s.NoiseInstruments, inst)
}

func (s *Song) InstrumentCount(t InstrumentType) int {
	switch t {
	case InstrumentDuty:
		return len(s.DutyInstruments)
	case InstrumentWave:
		return len(s.WaveInstruments)
	case InstrumentNoise:
		return len(s.NoiseInstruments)
	}
	return 0
}
