package pipeline

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"ugeforge/parse"
	"ugeforge/parse/ugetest"
	"ugeforge/serialize"
	"ugeforge/transform"
)

func songBytes() []byte {
	f := ugetest.NewFile(6)
	f.Name = "tune"
	f.Instruments[0] = ugetest.Instrument{Type: 0, Name: "lead", InitialVolume: 12, Duty: 2}
	a := ugetest.NewPattern(0)
	a.Cells[0] = ugetest.Cell{Note: 24, Instrument: 1}
	a.Cells[16] = ugetest.Cell{Note: 28}
	b := ugetest.NewPattern(1)
	f.Patterns = []ugetest.Pattern{a, b}
	f.Orders = [4][]int{{0, 1, 1, 1}, {1, 1, 1, 1}, {1, 1, 1, 1}, {1, 1, 1, 1}}
	return f.Bytes()
}

func writeSong(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, songBytes(), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func testRunner(t *testing.T) (*Runner, *bytes.Buffer) {
	cfg := DefaultConfig()
	cfg.OutputDir = filepath.Join(t.TempDir(), "out")
	cfg.DeterministicIDs = true
	var log bytes.Buffer
	return NewRunner(cfg, &log), &log
}

func TestConvertBytes(t *testing.T) {
	sd, err := ConvertBytes(songBytes(), transform.Options{})
	if err != nil {
		t.Fatal(err)
	}
	if sd.Name != "tune" || len(sd.Tracks) != 1 || len(sd.Instruments) != 1 {
		t.Errorf("got %+v", sd)
	}
}

func TestConvertBytesRejectsBadVersion(t *testing.T) {
	raw := songBytes()
	raw[0] = 7
	_, err := ConvertBytes(raw, transform.Options{})
	var verr *parse.FormatVersionError
	if !errors.As(err, &verr) || verr.Version != 7 {
		t.Errorf("got %v, want FormatVersionError", err)
	}
}

func TestConvertFile(t *testing.T) {
	r, log := testRunner(t)
	r.Config.ExportWaves = true
	path := writeSong(t, t.TempDir(), "tune.uge")

	res, err := r.ConvertFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(r.Config.OutputDir, "tune.sound.json"); res.Output != want {
		t.Errorf("got output %s, want %s", res.Output, want)
	}
	sd, err := serialize.ReadFile(res.Output)
	if err != nil {
		t.Fatal(err)
	}
	if sd.Size != res.Sound.Size || len(sd.Patterns) != len(res.Sound.Patterns) {
		t.Errorf("written file differs from result")
	}
	if len(res.Waves) != 1 {
		t.Errorf("got waves %v, want the pulse of the duty instrument", res.Waves)
	}
	for _, want := range []string{"Converting:", "Tracks: 1", "Output:"} {
		if !strings.Contains(log.String(), want) {
			t.Errorf("log missing %q:\n%s", want, log.String())
		}
	}
}

func TestConvertFileWrapsErrors(t *testing.T) {
	r, _ := testRunner(t)
	path := filepath.Join(t.TempDir(), "short.uge")
	if err := os.WriteFile(path, []byte{6, 0, 0, 0}, 0644); err != nil {
		t.Fatal(err)
	}
	_, err := r.ConvertFile(path)
	if err == nil || !strings.Contains(err.Error(), path) {
		t.Fatalf("got %v, want error naming the file", err)
	}
	if !errors.Is(err, parse.ErrFormat) {
		t.Errorf("wrapped error lost its cause: %v", err)
	}
}

func TestInspect(t *testing.T) {
	r, _ := testRunner(t)
	res, err := r.Inspect(writeSong(t, t.TempDir(), "tune.uge"))
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Analysis.ReachablePositions) != 1 || res.Output != "" {
		t.Errorf("got %+v", res.Analysis)
	}
}

func TestRunBatch(t *testing.T) {
	r, log := testRunner(t)
	r.Config.Workers = 2
	dir := t.TempDir()
	for _, name := range []string{"a.uge", "b.uge", "c.UGE"} {
		writeSong(t, dir, name)
	}
	bad := filepath.Join(dir, "d.uge")
	if err := os.WriteFile(bad, []byte{9, 0, 0, 0}, 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), nil, 0644); err != nil {
		t.Fatal(err)
	}

	paths, err := CollectSources([]string{dir})
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) != 4 {
		t.Fatalf("got sources %v", paths)
	}

	results, err := r.RunBatch(context.Background(), paths)
	var batchErr *BatchError
	if !errors.As(err, &batchErr) {
		t.Fatalf("got %v, want BatchError", err)
	}
	if len(batchErr.Failed) != 1 || batchErr.Failed[bad] == nil {
		t.Errorf("got failures %v", batchErr.Failed)
	}
	converted := 0
	for _, res := range results {
		if res != nil {
			converted++
		}
	}
	if converted != 3 {
		t.Errorf("got %d results, want 3", converted)
	}
	if !strings.Contains(log.String(), "Converted 3 of 4") {
		t.Errorf("log:\n%s", log.String())
	}
}

func TestWatch(t *testing.T) {
	r, _ := testRunner(t)
	r.Debounce = 20 * time.Millisecond
	dir := t.TempDir()
	writeSong(t, dir, "before.uge")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	seen := make(chan string, 8)
	errc := make(chan error, 1)
	go func() {
		errc <- r.Watch(ctx, dir, func(res *Result) { seen <- filepath.Base(res.Source) })
	}()

	wait := func(name string) {
		t.Helper()
		deadline := time.After(5 * time.Second)
		for {
			select {
			case got := <-seen:
				if got == name {
					return
				}
			case <-deadline:
				t.Fatalf("%s was not converted", name)
			}
		}
	}
	wait("before.uge")
	writeSong(t, dir, "after.uge")
	wait("after.uge")

	cancel()
	if err := <-errc; err != nil {
		t.Errorf("Watch returned %v", err)
	}
	if _, err := os.Stat(filepath.Join(r.Config.OutputDir, "after.sound.json")); err != nil {
		t.Error(err)
	}
}

func TestRunBatchKeepsClashingNamesApart(t *testing.T) {
	r, _ := testRunner(t)
	dir := t.TempDir()
	var paths []string
	for _, sub := range []string{"a", "b"} {
		if err := os.MkdirAll(filepath.Join(dir, sub), 0755); err != nil {
			t.Fatal(err)
		}
		paths = append(paths, writeSong(t, filepath.Join(dir, sub), "x.uge"))
	}
	paths = append(paths, writeSong(t, dir, "solo.uge"))

	results, err := r.RunBatch(context.Background(), paths)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"a_x.sound.json", "b_x.sound.json", "solo.sound.json"}
	for i, res := range results {
		if got := filepath.Base(res.Output); got != want[i] {
			t.Errorf("%s: got output %s, want %s", paths[i], got, want[i])
		}
		if _, err := os.Stat(res.Output); err != nil {
			t.Error(err)
		}
	}
}

func TestOutputBases(t *testing.T) {
	tests := []struct {
		paths []string
		want  []string
	}{
		{[]string{"songs/one.uge", "two.uge"}, []string{"one", "two"}},
		{[]string{"a/x.uge", "b/x.uge"}, []string{"a_x", "b_x"}},
		{[]string{"lib/a/x.uge", "lib/b/c/x.uge", "y.uge"}, []string{"a_x", "b_c_x", "y"}},
	}
	for _, tt := range tests {
		got := outputBases(tt.paths)
		for i := range tt.want {
			if got[i] != tt.want[i] {
				t.Errorf("outputBases(%v) = %v, want %v", tt.paths, got, tt.want)
				break
			}
		}
	}
}
