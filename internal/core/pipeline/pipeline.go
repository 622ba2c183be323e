// Package pipeline composes the rewrite stages in their fixed order.
package pipeline

import (
	"context"
	"time"
	"unicode/utf8"

	"github.com/baditaflorin/go_jp_formatter/internal/core/domain"
	"github.com/baditaflorin/go_jp_formatter/internal/core/rules"
	"github.com/baditaflorin/go_jp_formatter/internal/ports"
)

// stage pairs a rewrite function with the flag that switches it on.
type stage struct {
	name    domain.RuleName
	enabled func(domain.Options) bool
	apply   func(string) string
}

func (s stage) Name() domain.RuleName    { return s.name }
func (s stage) Apply(text string) string { return s.apply(text) }

// stages is the declared order. It is never reordered at runtime.
var stages = [...]stage{
	{
		name:    domain.ConvertFullWidthToHalfWidth,
		enabled: func(o domain.Options) bool { return o.ConvertFullWidthToHalfWidth },
		apply:   rules.FullWidthToHalfWidth,
	},
	{
		name:    domain.ConvertHalfWidthToFullWidth,
		enabled: func(o domain.Options) bool { return o.ConvertHalfWidthToFullWidth },
		apply:   rules.HalfWidthToFullWidth,
	},
	{
		name:    domain.RemovePunctuationAfterQuotes,
		enabled: func(o domain.Options) bool { return o.RemovePunctuationAfterQuotes },
		apply:   rules.RemovePunctuationAfterQuotes,
	},
	{
		name:    domain.InsertSpaceAfterExclamations,
		enabled: func(o domain.Options) bool { return o.InsertSpaceAfterExclamations },
		apply:   rules.InsertSpaceAfterExclamations,
	},
	{
		name:    domain.EnsureEvenPunctuationCount,
		enabled: func(o domain.Options) bool { return o.EnsureEvenPunctuationCount },
		apply:   rules.EnsureEvenPunctuationCount,
	},
	{
		name:    domain.InsertSpaceAtLineStart,
		enabled: func(o domain.Options) bool { return o.InsertSpaceAtLineStart },
		apply:   rules.InsertSpaceAtLineStart,
	},
}

// Rules returns the stages in the order they run.
func Rules() []ports.Rule {
	out := make([]ports.Rule, 0, len(stages))
	for _, s := range stages {
		out = append(out, s)
	}
	return out
}

// Names returns the stage names in the order they run.
func Names() []domain.RuleName {
	out := make([]domain.RuleName, 0, len(stages))
	for _, s := range stages {
		out = append(out, s.name)
	}
	return out
}

// Enabled lists the names of the stages opts switches on, in run order.
func Enabled(opts domain.Options) []domain.RuleName {
	var out []domain.RuleName
	for _, s := range stages {
		if s.enabled(opts) {
			out = append(out, s.name)
		}
	}
	return out
}

// Run threads text through every enabled stage. It has no side effects.
func Run(text string, opts domain.Options) string {
	for _, s := range stages {
		if s.enabled(opts) {
			text = s.apply(text)
		}
	}
	return text
}

// Pipeline runs the stages with logging and metrics around them.
type Pipeline struct {
	logger  ports.Logger
	metrics ports.MetricsRecorder
}

// New creates a pipeline. A nil recorder disables metrics.
func New(logger ports.Logger, metrics ports.MetricsRecorder) *Pipeline {
	if metrics == nil {
		metrics = nopRecorder{}
	}
	return &Pipeline{
		logger:  logger,
		metrics: metrics,
	}
}

// Format applies the enabled stages to text.
//
// The context is only consulted between stages. When it is done the result
// carries the text as produced by the last completed stage and
// Details["error"] is set.
func (p *Pipeline) Format(ctx context.Context, text string, opts domain.Options) domain.Result {
	start := time.Now()
	details := make(map[string]interface{})
	inputLength := utf8.RuneCountInString(text)

	p.logger.Debug("Starting formatting",
		"input_length", inputLength,
		"options", opts,
	)

	out := text
	applied := make([]domain.RuleName, 0, len(stages))
	for _, s := range stages {
		if !s.enabled(opts) {
			continue
		}

		select {
		case <-ctx.Done():
			p.logger.Error("Formatting cancelled", "error", ctx.Err(), "stage", s.name)
			details["error"] = "formatting cancelled"
			details["cancelled_before"] = string(s.name)
			return p.result(text, out, inputLength, applied, details, start)
		default:
		}

		stageStart := time.Now()
		out = s.apply(out)
		elapsed := time.Since(stageStart)
		p.metrics.ObserveStage(s.name, elapsed)
		applied = append(applied, s.name)

		p.logger.Debug("Applied stage",
			"stage", s.name,
			"duration", elapsed,
		)
	}

	res := p.result(text, out, inputLength, applied, details, start)
	p.logger.Info("Formatted text",
		"stages", len(applied),
		"input_length", res.InputLength,
		"output_length", res.OutputLength,
		"changed", res.Changed,
		"duration", res.Elapsed,
	)
	return res
}

func (p *Pipeline) result(in, out string, inputLength int, applied []domain.RuleName, details map[string]interface{}, start time.Time) domain.Result {
	elapsed := time.Since(start)
	changed := in != out
	p.metrics.ObserveFormat(inputLength, changed, elapsed)

	outputLength := inputLength
	if changed {
		outputLength = utf8.RuneCountInString(out)
	}
	details["input_length"] = inputLength
	details["output_length"] = outputLength
	details["stages"] = len(applied)

	return domain.Result{
		Text:         out,
		Applied:      applied,
		InputLength:  inputLength,
		OutputLength: outputLength,
		Changed:      changed,
		Elapsed:      elapsed,
		Details:      details,
	}
}

type nopRecorder struct{}

func (nopRecorder) ObserveStage(domain.RuleName, time.Duration) {}
func (nopRecorder) ObserveFormat(int, bool, time.Duration)      {}
