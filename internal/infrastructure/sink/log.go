// Package sink provides DecisionSink implementations for the OR-pattern
// decision log: a structured-log sink and an HTTP analytics sink.
package sink

import (
	"context"

	"go.uber.org/zap"

	"github.com/pantrylens/backend/internal/domain"
)

// LogSink writes decisions to the structured log. It is the default sink and
// never fails.
type LogSink struct {
	logger *zap.Logger
}

// NewLogSink creates a sink over the given logger.
func NewLogSink(logger *zap.Logger) *LogSink {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogSink{logger: logger}
}

// Record logs one decision.
func (s *LogSink) Record(ctx context.Context, d domain.OrPatternDecision) error {
	s.logger.Info("or-pattern decision",
		zap.String("id", d.ID),
		zap.String("recipe_id", d.RecipeID),
		zap.String("option_a", d.OptionA.Text),
		zap.Bool("option_a_found", d.OptionA.Found),
		zap.String("option_b", d.OptionB.Text),
		zap.Bool("option_b_found", d.OptionB.Found),
		zap.Bool("is_equivalent", d.IsEquivalent),
		zap.Float64("confidence", d.Confidence),
		zap.String("reason", d.Reason))
	return nil
}
