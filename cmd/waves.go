package cmd

import (
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"ugeforge/pipeline"
	"ugeforge/serialize"
)

var wavesCmd = &cobra.Command{
	Use:   "waves [file.uge | file.sound.json | file.sound.yaml]",
	Short: "Export instrument waveforms as looped WAV files",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := newRunner(cmd)
		if err != nil {
			return err
		}
		src := args[0]

		var res *pipeline.Result
		if strings.EqualFold(filepath.Ext(src), pipeline.SourceExt) {
			r.Config.ExportWaves = false
			if res, err = r.ConvertFile(src); err != nil {
				return err
			}
		} else {
			sd, err := serialize.ReadFile(src)
			if err != nil {
				return err
			}
			res = &pipeline.Result{Source: src, Sound: sd}
		}

		base := filepath.Base(src)
		base = base[:strings.Index(base+".", ".")]
		_, err = r.ExportWaves(res, filepath.Join(r.Config.OutputDir, base+"-waves"))
		return err
	},
}
