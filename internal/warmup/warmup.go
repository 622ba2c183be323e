package warmup

import (
	"context"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/baditaflorin/go_jp_formatter/internal/core/domain"
	"github.com/baditaflorin/go_jp_formatter/internal/ports"
)

// WarmupConfig defines configuration for warming up the system
type WarmupConfig struct {
	// Number of concurrent warmup routines to run
	Concurrency int
	// Number of iterations per routine
	Iterations int
	// Sample text size for warmup, in code points
	SampleTextSize int
	// Warmup duration (0 means no time limit)
	Duration time.Duration
	// Whether to perform GC after warmup
	ForceGC bool
}

// DefaultWarmupConfig returns the default warmup configuration
func DefaultWarmupConfig() WarmupConfig {
	return WarmupConfig{
		Concurrency:    runtime.NumCPU(),
		Iterations:     200,
		SampleTextSize: 2000,
		Duration:       5 * time.Second,
		ForceGC:        true,
	}
}

// Manager handles system warmup operations
type Manager struct {
	logger     ports.Logger
	formatters []ports.TextFormatter
	rules      []ports.Rule
	config     WarmupConfig
}

// NewManager creates a new warmup manager
func NewManager(logger ports.Logger, config WarmupConfig) *Manager {
	if config.Concurrency <= 0 {
		config.Concurrency = 1
	}
	return &Manager{
		logger: logger,
		config: config,
	}
}

// RegisterFormatter adds a formatter to be warmed up
func (wm *Manager) RegisterFormatter(f ports.TextFormatter) {
	wm.formatters = append(wm.formatters, f)
}

// RegisterRules adds individual stages to be warmed up
func (wm *Manager) RegisterRules(rules ...ports.Rule) {
	wm.rules = append(wm.rules, rules...)
}

// WarmUp runs the warmup process for all registered components
func (wm *Manager) WarmUp(ctx context.Context) {
	startTime := time.Now()
	wm.logger.Info("Starting system warmup",
		"components", len(wm.formatters)+len(wm.rules),
		"concurrency", wm.config.Concurrency,
		"iterations", wm.config.Iterations,
	)

	var cancel context.CancelFunc
	if wm.config.Duration > 0 {
		ctx, cancel = context.WithTimeout(ctx, wm.config.Duration)
		defer cancel()
	}

	sample := SampleText(wm.config.SampleTextSize)

	if len(wm.rules) > 0 {
		wm.logger.Debug("Warming up rules", "count", len(wm.rules))
		wm.run(ctx, func(int) {
			for _, r := range wm.rules {
				_ = r.Apply(sample)
			}
		})
	}

	if len(wm.formatters) > 0 {
		wm.logger.Debug("Warming up formatters", "count", len(wm.formatters))
		all := domain.AllOptions()
		wm.run(ctx, func(j int) {
			opts := all
			// Alternate with a lighter option set so both paths get exercised.
			if j%2 == 1 {
				opts = domain.Options{InsertSpaceAtLineStart: true}
			}
			for _, f := range wm.formatters {
				_ = f.Format(ctx, sample, opts)
			}
		})
	}

	if wm.config.ForceGC {
		wm.logger.Debug("Forcing garbage collection after warmup")
		runtime.GC()
	}

	wm.logger.Info("System warmup completed",
		"duration", time.Since(startTime),
	)
}

// run executes work Iterations times on each of Concurrency goroutines.
func (wm *Manager) run(ctx context.Context, work func(iteration int)) {
	var wg sync.WaitGroup
	for i := 0; i < wm.config.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < wm.config.Iterations; j++ {
				select {
				case <-ctx.Done():
					return
				default:
				}
				work(j)
			}
		}()
	}
	wg.Wait()
}

// sampleLines touch every stage at least once.
var sampleLines = []string{
	"「こんにちは！今日はいい天気ですね。」と誰かが話しかけてくる。",
	"「お元気ですか！？」あなたの好きなことは何ですか？",
	"こちらは最近忙しい日々が続いていますが、元気です！",
	"日本語のテキスト生成は、面白いですね。貴方も何か、良さそうなサンプルを作ってみませんか？",
	"では、また今度お会いしましょう！…そう言うと彼は、さっさと去って行った。",
	"ＡＢＣ１２３の値は(約)―で、Really?と聞かれた。",
}

// SampleText builds Japanese prose of exactly size code points.
func SampleText(size int) string {
	if size <= 0 {
		return ""
	}

	var sb strings.Builder
	count := 0
	for i := 0; count < size; i++ {
		line := sampleLines[i%len(sampleLines)] + "\n"
		for _, r := range line {
			if count == size {
				break
			}
			sb.WriteRune(r)
			count++
		}
	}
	return sb.String()
}
