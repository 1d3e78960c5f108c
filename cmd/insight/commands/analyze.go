package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/unitask/unitask-api/internal/config"
	"github.com/unitask/unitask-api/internal/embedding"
	"github.com/unitask/unitask-api/internal/insights"
	"github.com/unitask/unitask-api/internal/logger"
	"github.com/unitask/unitask-api/internal/models"
	"go.uber.org/zap"
)

// NewAnalyzeCmd creates the analyze command
func NewAnalyzeCmd() *cobra.Command {
	var csvPath string
	var trials int
	var seed int64

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Train on a CSV dataset and print the classification report",
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

			return printJSON(map[string]any{
				"rows_used":         len(analysis.Rows),
				"classes":           analysis.Encoder.Classes(),
				"report":            analysis.Report,
				"confusion_matrix":  analysis.Confusion,
				"baseline_accuracy": analysis.BaselineAccuracy,
			})
		},
	}

	cmd.Flags().StringVar(&csvPath, "csv", "", "Path to the training CSV (required)")
	cmd.Flags().IntVar(&trials, "trials", 0, "Hyperparameter search trials (default 10)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Random seed for the search (default time-based)")
	_ = cmd.MarkFlagRequired("csv")

	return cmd
}

// newInsightService builds an insights service from environment config
func newInsightService(trials int, seed int64) (*insights.Service, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if cfg.OpenAIKey == "" {
		return nil, nil, fmt.Errorf("OPENAI_API_KEY is required")
	}

	zapLogger, err := logger.NewDevelopmentLogger(cfg.ServerDebugMode)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	provider := embedding.NewCache(embedding.NewOpenAIProviderWithLogger(
		cfg.OpenAIKey,
		cfg.EmbedBaseURL,
		cfg.EmbedModel,
		cfg.EmbedDimensions,
		zapLogger,
		cfg.ServerDebugMode,
	), zapLogger)

	var opts []insights.Option
	if trials > 0 {
		opts = append(opts, insights.WithTrials(trials))
	}
	if seed != 0 {
		opts = append(opts, insights.WithTuneSeed(seed))
	}

	return insights.NewService(provider, zapLogger, opts...), zapLogger, nil
}

func readRows(csvPath string) ([]models.TrainingRow, error) {
	f, err := os.Open(csvPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	rows, err := insights.ParseTrainingCSV(f)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
