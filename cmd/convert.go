package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"ugeforge/pipeline"
)

var convertCmd = &cobra.Command{
	Use:   "convert [file.uge]",
	Short: "Convert one song",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := newRunner(cmd)
		if err != nil {
			return err
		}
		_, err = r.ConvertFile(args[0])
		return err
	},
}

var batchCmd = &cobra.Command{
	Use:   "batch [files or directories...]",
	Short: "Convert several songs in parallel",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := newRunner(cmd)
		if err != nil {
			return err
		}
		paths, err := pipeline.CollectSources(args)
		if err != nil {
			return err
		}
		_, err = r.RunBatch(cmd.Context(), paths)
		return err
	},
}

var watchCmd = &cobra.Command{
	Use:   "watch [directory]",
	Short: "Convert songs as they are saved into a directory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := newRunner(cmd)
		if err != nil {
			return err
		}
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		return r.Watch(ctx, args[0], nil)
	},
}
