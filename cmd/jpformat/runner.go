package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"golang.org/x/sync/errgroup"

	jpformatter "github.com/baditaflorin/go_jp_formatter"
)

type runner struct {
	formatter *jpformatter.Formatter
	opts      jpformatter.Options
	inPlace   bool
	check     bool
	jobs      int
	stdout    io.Writer
	report    *reporter
}

func (r *runner) runStdin(ctx context.Context, stdin io.Reader) error {
	if ctx == nil {
		ctx = context.Background()
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return fmt.Errorf("failed to read stdin: %w", err)
	}

	res := r.formatter.Format(ctx, string(data), r.opts)
	if msg, failed := res.Details["error"].(string); failed {
		return fmt.Errorf("<stdin>: %s", msg)
	}
	r.report.summary("<stdin>", res)
	if r.check {
		if res.Changed {
			return errWouldChange
		}
		return nil
	}
	_, err = io.WriteString(r.stdout, res.Text)
	return err
}

// runFiles formats every path with at most jobs files in flight. Output for
// stdout mode is written in argument order.
func (r *runner) runFiles(ctx context.Context, paths []string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	jobs := r.jobs
	if jobs <= 0 {
		jobs = 1
	}

	results := make([]jpformatter.Result, len(paths))
	var (
		mu      sync.Mutex
		changed []string
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(paths)))
	for i, path := range paths {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			text, err := readAll(path)
			if err != nil {
				return err
			}
			res := r.formatter.Format(gctx, text, r.opts)
			if msg, failed := res.Details["error"].(string); failed {
				return fmt.Errorf("%s: %s", path, msg)
			}
			results[i] = res
			r.report.summary(path, res)

			if !res.Changed {
				return nil
			}
			mu.Lock()
			changed = append(changed, path)
			mu.Unlock()

			if r.inPlace && !r.check {
				return writeFile(path, res.Text)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if r.check {
		for _, path := range paths {
			if contains(changed, path) {
				fmt.Fprintln(r.stdout, path)
			}
		}
		if len(changed) > 0 {
			return errWouldChange
		}
		return nil
	}
	if r.inPlace {
		return nil
	}
	for _, res := range results {
		if _, err := io.WriteString(r.stdout, res.Text); err != nil {
			return err
		}
	}
	return nil
}

// writeFile replaces path's content, keeping its permissions.
func writeFile(path, text string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(text), info.Mode().Perm()); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
