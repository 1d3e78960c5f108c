package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/unitask/unitask-api/cmd/insight/commands"
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "unitask-insight",
		Short: "Offline AI Insights tool for UniTask",
		Long:  "CLI tool that runs the task-priority training pipeline on a CSV dataset without the HTTP server",
	}

	rootCmd.AddCommand(commands.NewAnalyzeCmd())
	rootCmd.AddCommand(commands.NewPredictCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
