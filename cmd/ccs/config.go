package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"ccs/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage CCS configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default .ccs/config.json",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.DefaultConfig()
		if err := cfg.Save("."); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Wrote .ccs/config.json")
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			return err
		}
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	rootCmd.AddCommand(configCmd)
}
