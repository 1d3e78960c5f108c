package ml

import (
	"fmt"
	"math/rand"

	"go.uber.org/zap"
)

// Fixed search space for the tuned classifier
const (
	// DefaultTuneTrials is the fixed search budget
	DefaultTuneTrials = 10

	tuneMinEstimators = 50
	tuneMaxEstimators = 200
	tuneMinDepth      = 2
	tuneMaxDepth      = 10
	tuneMinLearnRate  = 0.01
	tuneMaxLearnRate  = 0.3
)

// TuneBoost runs a fixed-budget random search over the boost hyperparameter
// space and refits a final model with the best-found parameters on the full
// training split. Trials are scored by training-set accuracy.
func TuneBoost(X [][]float64, y []int, numClasses, trials int, seed int64, logger *zap.Logger) (*GradientBoost, error) {
	if trials <= 0 {
		trials = DefaultTuneTrials
	}

	rng := rand.New(rand.NewSource(seed))
	var best BoostParams
	bestScore := -1.0

	for trial := 0; trial < trials; trial++ {
		params := BoostParams{
			NEstimators:  tuneMinEstimators + rng.Intn(tuneMaxEstimators-tuneMinEstimators+1),
			MaxDepth:     tuneMinDepth + rng.Intn(tuneMaxDepth-tuneMinDepth+1),
			LearningRate: tuneMinLearnRate + rng.Float64()*(tuneMaxLearnRate-tuneMinLearnRate),
		}

		candidate := NewGradientBoost(params)
		if err := candidate.Fit(X, y, numClasses); err != nil {
			return nil, fmt.Errorf("tuning trial %d failed: %w", trial, err)
		}
		score := Accuracy(y, candidate.Predict(X))

		if logger != nil {
			logger.Debug("tuning_trial_completed",
				zap.Int("trial", trial),
				zap.Int("n_estimators", params.NEstimators),
				zap.Int("max_depth", params.MaxDepth),
				zap.Float64("learning_rate", params.LearningRate),
				zap.Float64("train_accuracy", score),
			)
		}

		if score > bestScore {
			bestScore = score
			best = params
		}
	}

	final := NewGradientBoost(best)
	if err := final.Fit(X, y, numClasses); err != nil {
		return nil, fmt.Errorf("final refit failed: %w", err)
	}

	if logger != nil {
		logger.Info("tuning_completed",
			zap.Int("trials", trials),
			zap.Int("best_n_estimators", best.NEstimators),
			zap.Int("best_max_depth", best.MaxDepth),
			zap.Float64("best_learning_rate", best.LearningRate),
			zap.Float64("best_train_accuracy", bestScore),
		)
	}

	return final, nil
}
