package main

import (
	"errors"
	"os"

	"ccs/internal/cerrors"
	"ccs/internal/logging"
)

func main() {
	logger := logging.NewLogger(logging.Config{
		Format: logging.HumanFormat,
		Level:  logging.InfoLevel,
	})

	if err := rootCmd.Execute(); err != nil {
		logger.Error("Command execution failed", map[string]interface{}{
			"error": err.Error(),
		})

		var ccsErr *cerrors.CcsError
		if errors.As(err, &ccsErr) {
			for _, fix := range cerrors.GetSuggestedFixes(ccsErr.Code) {
				logger.Info("Suggested fix: "+fix.Description, map[string]interface{}{
					"command": fix.Command,
				})
			}
		}
		os.Exit(1)
	}
}
