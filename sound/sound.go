// Package sound holds the engine-side sound data model produced by the
// converter and read by the sound editor.
package sound

const (
	// ConvertedPatternSize is the length of one converted pattern in steps.
	// A source row maps to one step.
	ConvertedPatternSize = 64

	DefaultNoteDuration = 50

	WaveformSize   = 32
	MaxSampleValue = 63
	MaxVolume      = 15

	EnvelopeStepTimeMin = 0
	EnvelopeStepTimeMax = 7
	SweepShiftMin       = 0
	SweepShiftMax       = 7
	IntervalMin         = 0
	IntervalMax         = 31
)

type TrackType string

const (
	TrackWave     TrackType = "wave"
	TrackSweepMod TrackType = "sweepMod"
	TrackNoise    TrackType = "noise"
)

type EnvelopeDirection int

const (
	EnvelopeDecay EnvelopeDirection = iota
	EnvelopeGrow
)

type SweepDirection int

const (
	SweepDown SweepDirection = iota
	SweepUp
)

type SweepModFunction int

const (
	FunctionSweep SweepModFunction = iota
	FunctionModulation
)

// SweepFrequency7680us selects the 7.68ms sweep clock.
const SweepFrequency7680us = 1

type Event struct {
	Note       string `json:"note,omitempty" yaml:"note,omitempty"`
	Duration   int    `json:"duration,omitempty" yaml:"duration,omitempty"`
	Instrument string `json:"instrument,omitempty" yaml:"instrument,omitempty"`
}

func (e Event) IsEmpty() bool {
	return e == Event{}
}

type PatternConfig struct {
	Name   string        `json:"name" yaml:"name"`
	Type   TrackType     `json:"type" yaml:"type"`
	Size   int           `json:"size" yaml:"size"`
	Events map[int]Event `json:"events" yaml:"events"`
}

type TrackConfig struct {
	Type       TrackType      `json:"type" yaml:"type"`
	Instrument string         `json:"instrument" yaml:"instrument"`
	Sequence   map[int]string `json:"sequence" yaml:"sequence"`
}

// LastStep returns the highest sequence step, or -1 for an empty sequence.
func (t TrackConfig) LastStep() int {
	last := -1
	for step := range t.Sequence {
		if step > last {
			last = step
		}
	}
	return last
}

type StereoVolume struct {
	Left  int `json:"left" yaml:"left"`
	Right int `json:"right" yaml:"right"`
}

type EnvelopeConfig struct {
	Enabled      bool              `json:"enabled" yaml:"enabled"`
	Repeat       bool              `json:"repeat" yaml:"repeat"`
	Direction    EnvelopeDirection `json:"direction" yaml:"direction"`
	InitialValue int               `json:"initialValue" yaml:"initialValue"`
	StepTime     int               `json:"stepTime" yaml:"stepTime"`
}

type IntervalConfig struct {
	Enabled bool `json:"enabled" yaml:"enabled"`
	Value   int  `json:"value" yaml:"value"`
}

type SweepModConfig struct {
	Enabled   bool             `json:"enabled" yaml:"enabled"`
	Repeat    bool             `json:"repeat" yaml:"repeat"`
	Function  SweepModFunction `json:"function" yaml:"function"`
	Frequency int              `json:"frequency" yaml:"frequency"`
	Interval  int              `json:"interval" yaml:"interval"`
	Direction SweepDirection   `json:"direction" yaml:"direction"`
	Shift     int              `json:"shift" yaml:"shift"`
}

type InstrumentConfig struct {
	Name     string            `json:"name" yaml:"name"`
	Type     TrackType         `json:"type" yaml:"type"`
	Waveform [WaveformSize]int `json:"waveform" yaml:"waveform,flow"`
	Volume   StereoVolume      `json:"volume" yaml:"volume"`
	Envelope EnvelopeConfig    `json:"envelope" yaml:"envelope"`
	Interval IntervalConfig    `json:"interval" yaml:"interval"`
	SweepMod SweepModConfig    `json:"sweepMod" yaml:"sweepMod"`
	Tap      int               `json:"tap" yaml:"tap"`
}

type SoundData struct {
	Name        string                      `json:"name" yaml:"name"`
	Author      string                      `json:"author" yaml:"author"`
	Comment     string                      `json:"comment" yaml:"comment"`
	Speed       int                         `json:"speed" yaml:"speed"`
	Size        int                         `json:"size" yaml:"size"`
	Tracks      []TrackConfig               `json:"tracks" yaml:"tracks"`
	Patterns    map[string]PatternConfig    `json:"patterns" yaml:"patterns"`
	Instruments map[string]InstrumentConfig `json:"instruments" yaml:"instruments"`
}
