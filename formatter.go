// Package jpformatter normalizes Japanese prose with a fixed set of
// independently toggleable typographic rules:
//
//   - full-width Latin letters and digits to half-width
//   - half-width !?() to full-width
//   - dropping 、。. right before a closing bracket
//   - a full-width space after runs of !?！？
//   - padding odd runs of … and ― to even length
//   - a full-width space at the start of each line
//
// The rules always run in that order. Format is the pure entry point; New
// builds a Formatter that adds logging, metrics and diagnostics around it.
package jpformatter

import (
	"context"
	"sync"

	"github.com/baditaflorin/go_jp_formatter/internal/adapters/logger"
	"github.com/baditaflorin/go_jp_formatter/internal/core/domain"
	"github.com/baditaflorin/go_jp_formatter/internal/core/pipeline"
	"github.com/baditaflorin/go_jp_formatter/internal/ports"
	"github.com/baditaflorin/go_jp_formatter/internal/warmup"
	"github.com/baditaflorin/l"
)

// Options holds one flag per rule. The zero value leaves text unchanged.
type Options = domain.Options

// Result holds the outcome of Formatter.Format.
type Result = domain.Result

// RuleName identifies one rule.
type RuleName = domain.RuleName

// Rule names, in the order the rules run.
const (
	ConvertFullWidthToHalfWidth  = domain.ConvertFullWidthToHalfWidth
	ConvertHalfWidthToFullWidth  = domain.ConvertHalfWidthToFullWidth
	RemovePunctuationAfterQuotes = domain.RemovePunctuationAfterQuotes
	InsertSpaceAfterExclamations = domain.InsertSpaceAfterExclamations
	EnsureEvenPunctuationCount   = domain.EnsureEvenPunctuationCount
	InsertSpaceAtLineStart       = domain.InsertSpaceAtLineStart
)

// ErrUnknownRule is returned by ParseRules for names that match no rule.
var ErrUnknownRule = domain.ErrUnknownRule

// Format applies every rule enabled in opts to text and returns the result.
// It is safe for concurrent use and never fails.
func Format(text string, opts Options) string {
	return pipeline.Run(text, opts)
}

// AllOptions returns Options with every rule enabled.
func AllOptions() Options {
	return domain.AllOptions()
}

// Rules returns the rule names in the order they run.
func Rules() []RuleName {
	return pipeline.Names()
}

// ParseRules builds Options from a comma-separated list of rule names.
func ParseRules(list string) (Options, error) {
	return domain.ParseRules(list)
}

// Formatter runs the rules with logging and metrics.
type Formatter struct {
	pipeline *pipeline.Pipeline
	logger   ports.Logger
	warmOnce sync.Once
}

// FormatterOption defines a functional option for configuring a Formatter.
type FormatterOption func(*formatterConfig)

type formatterConfig struct {
	Logger       ports.Logger
	Metrics      ports.MetricsRecorder
	WarmUp       bool
	WarmUpConfig warmup.WarmupConfig
}

// WithLogger sets a custom logger.
func WithLogger(lg l.Logger) FormatterOption {
	return func(cfg *formatterConfig) {
		cfg.Logger = logger.FromExisting(lg)
	}
}

// WithPortsLogger sets a logger implementing the internal logging port.
func WithPortsLogger(lg ports.Logger) FormatterOption {
	return func(cfg *formatterConfig) {
		cfg.Logger = lg
	}
}

// WithQuietLogger discards all log output.
func WithQuietLogger() FormatterOption {
	return func(cfg *formatterConfig) {
		cfg.Logger = logger.NewNopLogger()
	}
}

// WithMetrics records stage timings with m.
func WithMetrics(m ports.MetricsRecorder) FormatterOption {
	return func(cfg *formatterConfig) {
		cfg.Metrics = m
	}
}

// WithWarmUp enables warm-up on construction.
func WithWarmUp(enable bool) FormatterOption {
	return func(cfg *formatterConfig) {
		cfg.WarmUp = enable
	}
}

// WithWarmUpConfig sets a custom warm-up configuration.
func WithWarmUpConfig(config warmup.WarmupConfig) FormatterOption {
	return func(cfg *formatterConfig) {
		cfg.WarmUpConfig = config
		cfg.WarmUp = true
	}
}

// New creates a new Formatter. If no logger is provided, a default logger
// writing to stdout is created.
func New(opts ...FormatterOption) (*Formatter, error) {
	config := &formatterConfig{
		WarmUpConfig: warmup.DefaultWarmupConfig(),
	}
	for _, opt := range opts {
		opt(config)
	}

	if config.Logger == nil {
		var err error
		config.Logger, err = createDefaultLogger()
		if err != nil {
			return nil, err
		}
	}

	f := &Formatter{
		pipeline: pipeline.New(config.Logger, config.Metrics),
		logger:   config.Logger,
	}

	if config.WarmUp {
		f.WarmUp(context.Background(), config.WarmUpConfig)
	}
	return f, nil
}

// Format applies every rule enabled in opts and reports what happened.
func (f *Formatter) Format(ctx context.Context, text string, opts Options) Result {
	return f.pipeline.Format(ctx, text, opts)
}

// WarmUp exercises the rules so later calls run on warm caches and pools.
// Warm-up traffic runs on a detached pipeline, so it never reaches the
// configured metrics recorder or logger. Only the first call does any work.
func (f *Formatter) WarmUp(ctx context.Context, config warmup.WarmupConfig) {
	ran := false
	f.warmOnce.Do(func() {
		mgr := warmup.NewManager(f.logger, config)
		mgr.RegisterRules(pipeline.Rules()...)
		mgr.RegisterFormatter(pipeline.New(logger.NewNopLogger(), nil))
		mgr.WarmUp(ctx)
		ran = true
	})
	if !ran {
		f.logger.Debug("System already warmed up, skipping")
	}
}

// Close releases the logger.
func (f *Formatter) Close() error {
	return f.logger.Close()
}
