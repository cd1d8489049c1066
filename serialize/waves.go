package serialize

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/pkg/errors"

	"ugeforge/sound"
)

const (
	waveBitDepth    = 16
	waveChannels    = 1
	wavePCM         = 1
	DefaultCycles   = 256
	DefaultWaveRate = 44100
)

type WaveOptions struct {
	SampleRate int
	// Cycles is how many times the 32-sample table is repeated.
	Cycles int
}

func (o WaveOptions) withDefaults() WaveOptions {
	if o.SampleRate <= 0 {
		o.SampleRate = DefaultWaveRate
	}
	if o.Cycles <= 0 {
		o.Cycles = DefaultCycles
	}
	return o
}

// sample16 centres a 0-63 sample on zero and scales it to 16 bits.
func sample16(s int) int {
	return (2*s - sound.MaxSampleValue) * 520
}

// WaveformBuffer renders a waveform table as repeated cycles of 16-bit PCM.
func WaveformBuffer(wave [sound.WaveformSize]int, opts WaveOptions) *audio.IntBuffer {
	opts = opts.withDefaults()
	data := make([]int, 0, len(wave)*opts.Cycles)
	for c := 0; c < opts.Cycles; c++ {
		for _, s := range wave {
			data = append(data, sample16(s))
		}
	}
	return &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: waveChannels, SampleRate: opts.SampleRate},
		Data:           data,
		SourceBitDepth: waveBitDepth,
	}
}

func WriteWaveform(path string, wave [sound.WaveformSize]int, opts WaveOptions) error {
	opts = opts.withDefaults()
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create %s", path)
	}
	enc := wav.NewEncoder(f, opts.SampleRate, waveBitDepth, waveChannels, wavePCM)
	if err := enc.Write(WaveformBuffer(wave, opts)); err != nil {
		f.Close()
		return errors.Wrapf(err, "encode %s", path)
	}
	if err := enc.Close(); err != nil {
		f.Close()
		return errors.Wrapf(err, "finish %s", path)
	}
	return errors.Wrapf(f.Close(), "close %s", path)
}

// WriteWaveforms exports one WAV per instrument with a non-silent waveform
// and returns the written paths in instrument id order.
func WriteWaveforms(dir string, sd sound.SoundData, opts WaveOptions) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrapf(err, "create %s", dir)
	}

	ids := make([]string, 0, len(sd.Instruments))
	for id := range sd.Instruments {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var paths []string
	for _, id := range ids {
		inst := sd.Instruments[id]
		if silent(inst.Waveform) {
			continue
		}
		path := filepath.Join(dir, waveFileName(inst.Name, id))
		if err := WriteWaveform(path, inst.Waveform, opts); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// ReadWaveform decodes a WAV file back into PCM frames.
func ReadWaveform(path string) (*audio.IntBuffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("%s: not a valid wav file", path)
	}
	buf, err := dec.FullPCMBuffer()
	return buf, errors.Wrapf(err, "decode %s", path)
}

func silent(wave [sound.WaveformSize]int) bool {
	for _, s := range wave {
		if s != 0 {
			return false
		}
	}
	return true
}

func waveFileName(name, id string) string {
	clean := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_' {
			return r
		}
		return '_'
	}, strings.TrimSpace(name))
	if clean == "" {
		clean = "instrument"
	}
	if len(id) > 8 {
		id = id[:8]
	}
	return fmt.Sprintf("%s-%s.wav", clean, id)
}
