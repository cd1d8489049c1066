package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"ugeforge/parse"
	"ugeforge/parse/ugetest"
	"ugeforge/pipeline"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func writeSong(t *testing.T, dir string) string {
	t.Helper()
	f := ugetest.NewFile(6)
	f.Name = "demo"
	f.Instruments[0] = ugetest.Instrument{Type: 0, Name: "lead", InitialVolume: 9, Duty: 1}
	a := ugetest.NewPattern(0)
	a.Cells[0] = ugetest.Cell{Note: 24, Instrument: 1}
	a.Cells[1] = ugetest.Cell{Note: ugetest.NoteNone, EffectCode: 0xC, EffectParam: 3}
	f.Patterns = []ugetest.Pattern{a, ugetest.NewPattern(1)}
	f.Orders = [4][]int{{0}, {1}, {1}, {1}}
	path := filepath.Join(dir, "demo.uge")
	if err := os.WriteFile(path, f.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestConfigCommands(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), pipeline.ConfigFileName)

	out, err := run(t, "config", "set", "format", "yaml", "--config", cfgPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Set format = yaml") {
		t.Errorf("got %q", out)
	}
	out, err = run(t, "config", "get", "format", "--config", cfgPath)
	if err != nil || strings.TrimSpace(out) != "format = yaml" {
		t.Errorf("got %q, %v", out, err)
	}
	if _, err := run(t, "config", "set", "workers", "none", "--config", cfgPath); err == nil {
		t.Error("expected error for non-numeric workers")
	}
}

func TestConvertCommand(t *testing.T) {
	dir := t.TempDir()
	src := writeSong(t, dir)
	outDir := filepath.Join(dir, "out")

	out, err := run(t, "convert", src, "--out", outDir, "--format", "yaml", "--deterministic",
		"--config", filepath.Join(dir, "missing.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Converting:") {
		t.Errorf("got %q", out)
	}
	if _, err := os.Stat(filepath.Join(outDir, "demo.sound.yaml")); err != nil {
		t.Error(err)
	}
}

func TestRenderInfo(t *testing.T) {
	r := pipeline.NewRunner(pipeline.DefaultConfig(), nil)
	res, err := r.Inspect(writeSong(t, t.TempDir()))
	if err != nil {
		t.Fatal(err)
	}
	text := renderInfo(res)
	for _, want := range []string{"demo", "Duty 1", "1 notes", "C4..C4", "Effects dropped: C x1"} {
		if !strings.Contains(text, want) {
			t.Errorf("info missing %q:\n%s", want, text)
		}
	}
	if got := strings.Count(text, "empty"); got != parse.ChannelCount-1 {
		t.Errorf("got %d empty channels in:\n%s", got, text)
	}
}

func TestEffectSummary(t *testing.T) {
	if got := effectSummary(map[int]int{0xA: 2, 4: 1}); got != "4 x1, A x2" {
		t.Errorf("got %q", got)
	}
}
