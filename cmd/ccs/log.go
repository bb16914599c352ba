package main

import (
	"bufio"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"ccs/internal/config"
)

var (
	logFollow bool
	logLines  int
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "View CCS logs",
	Long: `View CCS operation logs.

Logs are written when a log file is configured, either via the
logging.file field in .ccs/config.json or the CCS_LOG_FILE env var.

Examples:
  ccs log              # Show last 50 lines
  ccs log -n 100       # Show last 100 lines
  ccs log -f           # Follow log output (tail -f)`,
	RunE: runLog,
}

func init() {
	logCmd.Flags().BoolVarP(&logFollow, "follow", "f", false, "Follow log output")
	logCmd.Flags().IntVarP(&logLines, "lines", "n", 50, "Number of lines to show")
	rootCmd.AddCommand(logCmd)
}

func runLog(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return err
	}

	logPath := logFilePath(cfg)
	if logPath == "" {
		logPath = ".ccs/ccs.log"
	}

	if _, err := os.Stat(logPath); os.IsNotExist(err) {
		fmt.Fprintf(cmd.OutOrStdout(), "No logs found at %s\n\n", logPath)
		fmt.Fprintln(cmd.OutOrStdout(), "Enable log-file output with:")
		fmt.Fprintln(cmd.OutOrStdout(), `  "logging": {"file": ".ccs/ccs.log"} in .ccs/config.json`)
		fmt.Fprintln(cmd.OutOrStdout(), "  or CCS_LOG_FILE=.ccs/ccs.log ccs <command>")
		return nil
	}

	if logFollow {
		return followLogFile(logPath)
	}
	return showLogLines(cmd, logPath, logLines)
}

func showLogLines(cmd *cobra.Command, path string, n int) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	var lines []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
		if len(lines) > n {
			lines = lines[1:]
		}
	}
	for _, line := range lines {
		fmt.Fprintln(cmd.OutOrStdout(), line)
	}
	return scanner.Err()
}

func followLogFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	// Start at the end; only new entries are shown.
	_, _ = file.Seek(0, 2)

	fmt.Printf("Following %s (Ctrl+C to stop)\n\n", path)

	reader := bufio.NewReader(file)
	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			time.Sleep(100 * time.Millisecond)
			continue
		}
		fmt.Print(line)
	}
}
