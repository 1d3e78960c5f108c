// Package insights orchestrates the AI Insights pipeline: CSV ingestion,
// preprocessing, embedding, training of the baseline and tuned classifiers,
// held-out evaluation, and single-example prediction.
package insights

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/unitask/unitask-api/internal/embedding"
	"github.com/unitask/unitask-api/internal/ml"
	"github.com/unitask/unitask-api/internal/models"
	"github.com/unitask/unitask-api/internal/textproc"
	"go.uber.org/zap"
)

// ErrNoUsableRows is returned when an upload contains no row with all
// required fields present.
var ErrNoUsableRows = errors.New("no usable rows in uploaded dataset")

// Analysis holds the fitted artifacts of one AI Insights invocation. An
// analysis lives until the next upload replaces it; nothing is persisted.
type Analysis struct {
	Rows             []models.TrainingRow
	Encoder          *ml.LabelEncoder
	Baseline         *ml.LogisticRegression
	Tuned            *ml.GradientBoost
	Report           *ml.Report
	Confusion        [][]int
	BaselineAccuracy float64
	CreatedAt        time.Time
}

// Prediction is a single-example prediction with an assignee
// recommendation derived from the analyzed dataset.
type Prediction struct {
	Priority        string `json:"predicted_priority"`
	RecommendedUser string `json:"recommended_user"`
}

// Service runs the insights pipeline
type Service struct {
	provider embedding.Provider
	logger   *zap.Logger
	trials   int
	tuneSeed int64
}

// Option configures a Service
type Option func(*Service)

// WithTrials overrides the hyperparameter search budget
func WithTrials(trials int) Option {
	return func(s *Service) { s.trials = trials }
}

// WithTuneSeed fixes the random seed of the hyperparameter search
func WithTuneSeed(seed int64) Option {
	return func(s *Service) { s.tuneSeed = seed }
}

// NewService creates an insights service. provider may be nil, in which
// case every analysis fails with ErrNoProvider.
func NewService(provider embedding.Provider, logger *zap.Logger, opts ...Option) *Service {
	s := &Service{
		provider: provider,
		logger:   logger,
		trials:   ml.DefaultTuneTrials,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Analyze runs the full pipeline over the uploaded rows: normalize
// descriptions, embed, encode labels, split, fit the baseline, tune and
// refit the boosted model, and evaluate it on the held-out fold. Blocks
// until training completes.
func (s *Service) Analyze(ctx context.Context, rows []models.TrainingRow) (*Analysis, error) {
	if s.provider == nil {
		return nil, embedding.ErrNoProvider
	}
	if len(rows) == 0 {
		return nil, ErrNoUsableRows
	}

	start := time.Now()

	texts := make([]string, len(rows))
	priorities := make([]string, len(rows))
	for i, row := range rows {
		texts[i] = textproc.Normalize(row.Description)
		priorities[i] = row.Priority
	}

	X, err := s.provider.Embed(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("failed to embed descriptions: %w", err)
	}

	encoder := ml.NewLabelEncoder(priorities)
	y, err := encoder.Transform(priorities)
	if err != nil {
		return nil, fmt.Errorf("failed to encode priorities: %w", err)
	}

	split, err := ml.StratifiedSplit(X, y, ml.DefaultTestFraction, ml.DefaultSplitSeed)
	if err != nil {
		return nil, fmt.Errorf("failed to split dataset: %w", err)
	}

	baseline := ml.NewLogisticRegression()
	if err := baseline.Fit(split.XTrain, split.YTrain, encoder.NumClasses()); err != nil {
		return nil, fmt.Errorf("failed to train baseline classifier: %w", err)
	}

	seed := s.tuneSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	tuned, err := ml.TuneBoost(split.XTrain, split.YTrain, encoder.NumClasses(), s.trials, seed, s.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to tune boosted classifier: %w", err)
	}

	yPred := tuned.Predict(split.XTest)
	report := ml.ClassificationReport(split.YTest, yPred, encoder.Classes())
	confusion := ml.ConfusionMatrix(split.YTest, yPred, encoder.NumClasses())
	baselineAcc := ml.Accuracy(split.YTest, baseline.Predict(split.XTest))

	if s.logger != nil {
		s.logger.Info("analysis_completed",
			zap.Int("rows", len(rows)),
			zap.Int("classes", encoder.NumClasses()),
			zap.Int("test_rows", len(split.YTest)),
			zap.Float64("tuned_accuracy", report.Accuracy),
			zap.Float64("baseline_accuracy", baselineAcc),
			zap.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
	}

	return &Analysis{
		Rows:             rows,
		Encoder:          encoder,
		Baseline:         baseline,
		Tuned:            tuned,
		Report:           report,
		Confusion:        confusion,
		BaselineAccuracy: baselineAcc,
		CreatedAt:        time.Now().UTC(),
	}, nil
}

// Predict classifies one new description with the tuned model and
// recommends the least-loaded user from the analyzed dataset.
func (s *Service) Predict(ctx context.Context, analysis *Analysis, description string) (*Prediction, error) {
	if s.provider == nil {
		return nil, embedding.ErrNoProvider
	}
	if analysis == nil {
		return nil, errors.New("no analysis available")
	}

	vec, err := s.provider.Embed(ctx, []string{textproc.Normalize(description)})
	if err != nil {
		return nil, fmt.Errorf("failed to embed description: %w", err)
	}

	code := analysis.Tuned.Predict(vec)[0]
	label, err := analysis.Encoder.Inverse(code)
	if err != nil {
		return nil, fmt.Errorf("failed to decode prediction: %w", err)
	}

	return &Prediction{
		Priority:        label,
		RecommendedUser: RecommendAssignee(analysis.Rows),
	}, nil
}
