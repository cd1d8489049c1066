package pipeline

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"ugeforge/serialize"
)

func (r *Runner) writeOutputs(res *Result, base string) error {
	path, err := serialize.WriteFile(r.Config.OutputDir, base, res.Sound, r.Config.OutputFormat())
	if err != nil {
		return errors.Wrapf(err, "write %s", res.Source)
	}
	res.Output = path
	r.logf("  Output: %s\n", path)

	if !r.Config.ExportWaves {
		return nil
	}
	waves, err := r.ExportWaves(res, filepath.Join(r.Config.OutputDir, base+"-waves"))
	if err != nil {
		return err
	}
	res.Waves = waves
	return nil
}

// ExportWaves writes the instrument waveforms of a converted result to dir.
func (r *Runner) ExportWaves(res *Result, dir string) ([]string, error) {
	paths, err := serialize.WriteWaveforms(dir, res.Sound, serialize.WaveOptions{SampleRate: r.Config.WaveSampleRate})
	if err != nil {
		return paths, errors.Wrapf(err, "export waves for %s", res.Source)
	}
	r.logf("  Waveforms: %d in %s\n", len(paths), dir)
	return paths, nil
}

// outputBases names the outputs of a batch. Sources sharing a file name keep
// their directories below the common parent, joined with underscores.
func outputBases(paths []string) []string {
	bases := make([]string, len(paths))
	seen := make(map[string]int)
	for i, p := range paths {
		bases[i] = baseName(p)
		seen[bases[i]]++
	}

	var clashing []string
	for i, p := range paths {
		if seen[bases[i]] > 1 {
			clashing = append(clashing, p)
		}
	}
	if len(clashing) == 0 {
		return bases
	}

	root := commonDir(clashing)
	for i, p := range paths {
		if seen[bases[i]] < 2 {
			continue
		}
		rel, err := filepath.Rel(root, p)
		if err != nil || strings.HasPrefix(rel, "..") {
			bases[i] = fmt.Sprintf("%s-%d", bases[i], i+1)
			continue
		}
		rel = strings.TrimSuffix(rel, filepath.Ext(rel))
		bases[i] = strings.ReplaceAll(rel, string(filepath.Separator), "_")
	}
	return bases
}

func commonDir(paths []string) string {
	dir := filepath.Dir(filepath.Clean(paths[0]))
	for {
		inside := true
		for _, p := range paths {
			rel, err := filepath.Rel(dir, p)
			if err != nil || strings.HasPrefix(rel, "..") {
				inside = false
				break
			}
		}
		if inside || dir == filepath.Dir(dir) {
			return dir
		}
		dir = filepath.Dir(dir)
	}
}
