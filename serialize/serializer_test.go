package serialize

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"ugeforge/sound"
)

func sample() sound.SoundData {
	var wave [sound.WaveformSize]int
	for i := range wave {
		wave[i] = i * 2
	}
	return sound.SoundData{
		Name:  "song",
		Speed: 6,
		Size:  64,
		Tracks: []sound.TrackConfig{{
			Type:       sound.TrackSweepMod,
			Instrument: "inst-1",
			Sequence:   map[int]string{0: "pat-1"},
		}},
		Patterns: map[string]sound.PatternConfig{
			"pat-1": {Name: "Duty 1 0", Type: sound.TrackSweepMod, Size: 64, Events: map[int]sound.Event{
				0: {Note: "C4", Duration: 50},
				4: {Instrument: "inst-2"},
			}},
		},
		Instruments: map[string]sound.InstrumentConfig{
			"inst-1": {Name: "lead", Waveform: wave, Volume: sound.StereoVolume{Left: 15, Right: 15}},
			"inst-2": {Name: "quiet"},
		},
	}
}

func TestParseFormat(t *testing.T) {
	tests := map[string]Format{"json": FormatJSON, "YAML": FormatYAML, "yml": FormatYAML}
	for in, want := range tests {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Error("expected error for xml")
	}
}

func TestWriteJSONOmitsEmptyEventFields(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, sample()); err != nil {
		t.Fatal(err)
	}
	var raw map[string]any
	if err := json.Unmarshal(buf.Bytes(), &raw); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	events := raw["patterns"].(map[string]any)["pat-1"].(map[string]any)["events"].(map[string]any)
	first := events["0"].(map[string]any)
	if _, ok := first["instrument"]; ok {
		t.Errorf("elided instrument was written: %v", first)
	}
	if first["note"] != "C4" || first["duration"] != float64(50) {
		t.Errorf("got %v", first)
	}
}

func TestWriteFileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	sd := sample()
	for _, f := range []Format{FormatJSON, FormatYAML} {
		t.Run(string(f), func(t *testing.T) {
			path, err := WriteFile(filepath.Join(dir, "out"), "song", sd, f)
			if err != nil {
				t.Fatal(err)
			}
			if !strings.HasSuffix(path, f.Extension()) {
				t.Errorf("got path %s", path)
			}
			got, err := ReadFile(path)
			if err != nil {
				t.Fatal(err)
			}
			if !reflect.DeepEqual(got, sd) {
				t.Errorf("round trip mismatch:\ngot  %+v\nwant %+v", got, sd)
			}
		})
	}
}

func TestWriteWaveforms(t *testing.T) {
	dir := t.TempDir()
	sd := sample()
	paths, err := WriteWaveforms(dir, sd, WaveOptions{SampleRate: 22050, Cycles: 4})
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) != 1 {
		t.Fatalf("got %v, want only the non-silent instrument", paths)
	}
	if filepath.Base(paths[0]) != "lead-inst-1.wav" {
		t.Errorf("got file name %s", filepath.Base(paths[0]))
	}

	buf, err := ReadWaveform(paths[0])
	if err != nil {
		t.Fatal(err)
	}
	if buf.Format.SampleRate != 22050 || buf.Format.NumChannels != 1 {
		t.Errorf("got format %+v", buf.Format)
	}
	if len(buf.Data) != 4*sound.WaveformSize {
		t.Fatalf("got %d frames", len(buf.Data))
	}
	wave := sd.Instruments["inst-1"].Waveform
	for i, v := range buf.Data {
		if want := sample16(wave[i%sound.WaveformSize]); v != want {
			t.Fatalf("frame %d: got %d, want %d", i, v, want)
		}
	}
}

func TestReadWaveformRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.wav")
	if err := os.WriteFile(path, []byte("not a wav file at all"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadWaveform(path); err == nil {
		t.Error("expected error")
	}
}

func TestSample16Range(t *testing.T) {
	if sample16(0) != -32760 || sample16(sound.MaxSampleValue) != 32760 {
		t.Errorf("got %d..%d", sample16(0), sample16(sound.MaxSampleValue))
	}
}
