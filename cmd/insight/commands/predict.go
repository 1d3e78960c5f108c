package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewPredictCmd creates the predict command
func NewPredictCmd() *cobra.Command {
	var csvPath string
	var description string
	var trials int
	var seed int64

	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Train on a CSV dataset and predict the priority of one description",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, err := newInsightService(trials, seed)
			if err != nil {
				return err
			}

			rows, err := readRows(csvPath)
			if err != nil {
				return err
			}

			analysis, err := svc.Analyze(cmd.Context(), rows)
			if err != nil {
				return fmt.Errorf("analysis failed: %w", err)
			}

			prediction, err := svc.Predict(cmd.Context(), analysis, description)
			if err != nil {
				return fmt.Errorf("prediction failed: %w", err)
			}

			return printJSON(prediction)
		},
	}

	cmd.Flags().StringVar(&csvPath, "csv", "", "Path to the training CSV (required)")
	cmd.Flags().StringVar(&description, "description", "", "Task description to classify (required)")
	cmd.Flags().IntVar(&trials, "trials", 0, "Hyperparameter search trials (default 10)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Random seed for the search (default time-based)")
	_ = cmd.MarkFlagRequired("csv")
	_ = cmd.MarkFlagRequired("description")

	return cmd
}
