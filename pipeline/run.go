package pipeline

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"

	"ugeforge/analysis"
	"ugeforge/encode"
	"ugeforge/parse"
	"ugeforge/sound"
	"ugeforge/transform"
	"ugeforge/validate"
)

const SourceExt = ".uge"

type Result struct {
	Source   string
	Song     *parse.Song
	Analysis analysis.SongAnalysis
	Sound    sound.SoundData
	Output   string
	Waves    []string
}

// ConvertBytes runs loader, converter and assembler over one file image and
// checks the result.
func ConvertBytes(raw []byte, opts transform.Options) (sound.SoundData, error) {
	_, sd, err := convert(raw, opts)
	return sd, err
}

func convert(raw []byte, opts transform.Options) (*parse.Song, sound.SoundData, error) {
	song, err := parse.Load(raw)
	if err != nil {
		return nil, sound.SoundData{}, err
	}
	if opts.NewID == nil {
		opts.NewID = sound.RandomIDs()
	}
	ts := transform.Transform(song, opts)
	sd := encode.Encode(ts, opts.NewID)
	if err := validate.Check(sd); err != nil {
		return song, sound.SoundData{}, errors.Wrap(err, "verify")
	}
	return song, sd, nil
}

// Runner converts files with one config and logs progress to Out. It is safe
// for concurrent use by batch workers.
type Runner struct {
	Config   *Config
	Out      io.Writer
	Debounce time.Duration

	mu sync.Mutex
}

func NewRunner(cfg *Config, out io.Writer) *Runner {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if out == nil {
		out = io.Discard
	}
	return &Runner{Config: cfg, Out: out, Debounce: 500 * time.Millisecond}
}

func (r *Runner) logf(format string, args ...interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintf(r.Out, format, args...)
}

// Inspect loads and analyzes a file without converting it.
func (r *Runner) Inspect(path string) (*Result, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	song, err := parse.Load(raw)
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", path)
	}
	return &Result{
		Source:   path,
		Song:     song,
		Analysis: analysis.Analyze(song, r.Config.SequenceStride),
	}, nil
}

// ConvertFile converts one file and writes its outputs below the configured
// output directory, named after the file.
func (r *Runner) ConvertFile(path string) (*Result, error) {
	return r.convertFile(path, baseName(path))
}

func (r *Runner) convertFile(path, outBase string) (*Result, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	r.logf("Converting: %s (%d bytes)\n", path, len(raw))

	song, sd, err := convert(raw, r.Config.TransformOptions())
	if err != nil {
		return nil, errors.Wrapf(err, "convert %s", path)
	}
	res := &Result{
		Source:   path,
		Song:     song,
		Analysis: analysis.Analyze(song, r.Config.SequenceStride),
		Sound:    sd,
	}
	r.logf("  Version: %d, Instruments: %d/%d/%d, Patterns: %d\n",
		song.Version, len(song.DutyInstruments), len(song.WaveInstruments),
		len(song.NoiseInstruments), len(song.Patterns))
	r.logf("  Positions: %d (from %d), Dropped effects: %d\n",
		len(res.Analysis.ReachablePositions), len(song.Sequence), res.Analysis.DroppedEffects)
	r.logf("  Tracks: %d, Patterns: %d, Instruments: %d, Size: %d\n",
		len(sd.Tracks), len(sd.Patterns), len(sd.Instruments), sd.Size)

	if err := r.writeOutputs(res, outBase); err != nil {
		return nil, err
	}
	return res, nil
}

func baseName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func isSource(path string) bool {
	return strings.EqualFold(filepath.Ext(path), SourceExt)
}
