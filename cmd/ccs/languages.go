package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"ccs/internal/lang"
	"ccs/internal/logging"
)

var languagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "List supported languages and their file extensions",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := logging.NewLogger(logging.Config{
			Format: logging.HumanFormat,
			Level:  logging.WarnLevel,
		})
		registry := lang.Builtin(logger)

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "LANGUAGE\tEXTENSIONS")
		for _, def := range registry.Languages() {
			fmt.Fprintf(tw, "%s\t%s\n", def.Name, strings.Join(def.Extensions, ", "))
		}
		return tw.Flush()
	},
}

func init() {
	rootCmd.AddCommand(languagesCmd)
}
