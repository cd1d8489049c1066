package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"ugeforge/pipeline"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage ugeforge configuration",
	Long:  `Get and set values in the ugeforge.yaml config file`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := pipeline.LoadConfig(configPath)
		if err != nil {
			return err
		}
		for _, key := range pipeline.Keys() {
			value, _ := cfg.Get(key)
			fmt.Fprintf(cmd.OutOrStdout(), "%s = %v\n", key, value)
		}
		return nil
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Get a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := pipeline.LoadConfig(configPath)
		if err != nil {
			return err
		}
		value, err := cfg.Get(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s = %v\n", args[0], value)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]
		cfg, err := pipeline.LoadConfig(configPath)
		if err != nil {
			return err
		}
		if err := cfg.Set(key, value); err != nil {
			return err
		}
		if err := cfg.Save(configPath); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", key, value)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
}
