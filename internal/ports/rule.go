package ports

import (
	"context"
	"time"

	"github.com/baditaflorin/go_jp_formatter/internal/core/domain"
)

// Rule defines a single text rewrite stage.
type Rule interface {
	Name() domain.RuleName
	Apply(text string) string
}

// TextFormatter defines the interface for running the enabled stages over a text.
type TextFormatter interface {
	Format(ctx context.Context, text string, opts domain.Options) domain.Result
}

// MetricsRecorder receives timing data from the formatting pipeline.
type MetricsRecorder interface {
	ObserveStage(name domain.RuleName, elapsed time.Duration)
	ObserveFormat(inputRunes int, changed bool, elapsed time.Duration)
}
