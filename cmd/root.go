package cmd

import (
	"github.com/spf13/cobra"

	"ugeforge/pipeline"
)

var (
	configPath    string
	outputDir     string
	format        string
	stride        int
	deterministic bool
	exportWaves   bool
	workers       int
)

var rootCmd = &cobra.Command{
	Use:   "ugeforge",
	Short: "Convert hUGETracker songs into engine sound data",
	Long: `ugeforge reads Game Boy tracker songs (.uge, format versions 0-6) and
converts them into the sound data model of the engine: wave, sweep/modulation
and noise tracks with their patterns and instruments.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() error {
	return rootCmd.Execute()
}

// loadConfig reads the config file and applies the flags the user set.
func loadConfig(cmd *cobra.Command) (*pipeline.Config, error) {
	cfg, err := pipeline.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	flags := cmd.Flags()
	if flags.Changed("out") {
		cfg.OutputDir = outputDir
	}
	if flags.Changed("format") {
		if err := cfg.Set("format", format); err != nil {
			return nil, err
		}
	}
	if flags.Changed("stride") {
		cfg.SequenceStride = stride
	}
	if flags.Changed("deterministic") {
		cfg.DeterministicIDs = deterministic
	}
	if flags.Changed("waves") {
		cfg.ExportWaves = exportWaves
	}
	if flags.Changed("workers") {
		cfg.Workers = workers
	}
	return cfg, cfg.Validate()
}

func newRunner(cmd *cobra.Command) (*pipeline.Runner, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cfg, cmd.OutOrStdout()), nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", pipeline.ConfigFileName, "Config file")
	rootCmd.PersistentFlags().StringVarP(&outputDir, "out", "o", "", "Output directory")
	rootCmd.PersistentFlags().StringVarP(&format, "format", "f", "", "Output format (json or yaml)")
	rootCmd.PersistentFlags().IntVar(&stride, "stride", 4, "Keep every n-th sequence position")
	rootCmd.PersistentFlags().BoolVar(&deterministic, "deterministic", false, "Use sequential ids instead of random ones")
	rootCmd.PersistentFlags().BoolVar(&exportWaves, "waves", false, "Also export instrument waveforms as WAV")
	rootCmd.PersistentFlags().IntVarP(&workers, "workers", "j", 4, "Parallel conversions for batch mode")

	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(wavesCmd)
	rootCmd.AddCommand(configCmd)
}
