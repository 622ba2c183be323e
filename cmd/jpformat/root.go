package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	jpformatter "github.com/baditaflorin/go_jp_formatter"
	"github.com/baditaflorin/go_jp_formatter/internal/adapters/logger"
	"github.com/baditaflorin/go_jp_formatter/internal/adapters/profile"
)

// errWouldChange is returned by --check when some input is not formatted.
var errWouldChange = errors.New("some inputs are not formatted")

type cliOptions struct {
	rules     string
	all       bool
	profile   string
	inPlace   bool
	check     bool
	jobs      int
	verbose   bool
	logOutput bool
	flags     map[jpformatter.RuleName]*bool
}

func newRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	o := &cliOptions{flags: make(map[jpformatter.RuleName]*bool)}

	cmd := &cobra.Command{
		Use:   "jpformat [files...]",
		Short: "Normalize Japanese prose typography",
		Long: `jpformat applies typographic rules to Japanese text: width conversion,
punctuation cleanup inside brackets, spacing after !?, even runs of … and ―,
and paragraph indentation. Text is read from the named files or from stdin.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := o.resolve()
			if err != nil {
				return err
			}

			var f *jpformatter.Formatter
			if o.logOutput {
				lg, err := logger.NewCustomStdLogger(logger.DefaultConfig(stderr))
				if err != nil {
					return err
				}
				f, err = jpformatter.New(jpformatter.WithPortsLogger(lg))
				if err != nil {
					return err
				}
			} else {
				f, err = jpformatter.New(jpformatter.WithQuietLogger())
				if err != nil {
					return err
				}
			}
			defer f.Close()

			r := &runner{
				formatter: f,
				opts:      opts,
				inPlace:   o.inPlace,
				check:     o.check,
				jobs:      o.jobs,
				stdout:    stdout,
				report:    newReporter(stderr, o.verbose),
			}
			if len(args) == 0 {
				if o.inPlace {
					return errors.New("--in-place needs file arguments")
				}
				return r.runStdin(cmd.Context(), stdin)
			}
			return r.runFiles(cmd.Context(), args)
		},
	}

	fl := cmd.Flags()
	fl.StringVar(&o.rules, "rules", "", "Comma-separated rule names to enable (\"all\" for every rule)")
	fl.BoolVarP(&o.all, "all", "a", false, "Enable every rule")
	fl.StringVarP(&o.profile, "profile", "p", "", "Profile file (YAML, TOML or JSON) with rule flags")
	fl.BoolVarP(&o.inPlace, "in-place", "w", false, "Write results back to the input files")
	fl.BoolVarP(&o.check, "check", "c", false, "Only report inputs that would change; exit non-zero if any")
	fl.IntVarP(&o.jobs, "jobs", "j", runtime.GOMAXPROCS(0), "Number of files formatted concurrently")
	fl.BoolVarP(&o.verbose, "verbose", "v", false, "Print a summary for every input to stderr")
	fl.BoolVar(&o.logOutput, "log", false, "Write structured logs to stderr")
	for _, name := range jpformatter.Rules() {
		o.flags[name] = fl.Bool(flagName(name), false, "Enable the "+string(name)+" rule")
	}

	cmd.AddCommand(newRulesCmd(stdout))
	return cmd
}

// resolve merges the profile, --rules, --all and the per-rule flags.
func (o *cliOptions) resolve() (jpformatter.Options, error) {
	var opts jpformatter.Options
	if o.profile != "" {
		loaded, err := profile.Load(o.profile)
		if err != nil {
			return opts, err
		}
		opts = loaded
	}
	if o.rules != "" {
		named, err := jpformatter.ParseRules(o.rules)
		if err != nil {
			return opts, err
		}
		opts = profile.Merge(opts, named)
	}
	if o.all {
		opts = jpformatter.AllOptions()
	}
	for name, set := range o.flags {
		if *set {
			if err := opts.Enable(name); err != nil {
				return opts, err
			}
		}
	}
	return opts, nil
}

func newRulesCmd(stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "List the rules in the order they run",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for i, name := range jpformatter.Rules() {
				if _, err := fmt.Fprintf(stdout, "%d. %s (--%s)\n", i+1, name, flagName(name)); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

// flagName turns convertFullWidthToHalfWidth into convert-full-width-to-half-width.
func flagName(name jpformatter.RuleName) string {
	var sb strings.Builder
	for i, r := range string(name) {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				sb.WriteByte('-')
			}
			r += 'a' - 'A'
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

func readAll(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}
