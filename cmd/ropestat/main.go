// Package main is the entry point for ropestat, which loads text into a
// rope-backed buffer and reports on its shape.
package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/petelliott/pi2/internal/config"
	"github.com/petelliott/pi2/internal/engine/rope"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

type options struct {
	configPath string
	logLevel   string
	lines      string
	rebalance  bool
}

func newRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "ropestat [file]",
		Short: "Inspect text as a rope",
		Long: `ropestat loads text into a rope-backed buffer and reports its size and
tree shape, or prints a range of its lines.

Reads standard input when no file is given.`,
		Example: `  ropestat notes.txt
  ropestat --lines 10:20 main.go
  ropestat -c ropestat.toml --rebalance < big.log`,
		Args:          cobra.MaximumNArgs(1),
		Version:       fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return inspect(opts, args, stdin, stdout, stderr)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "Path to configuration file")
	flags.StringVar(&opts.logLevel, "log-level", "", "Log level override (debug, info, warn, error)")
	flags.StringVar(&opts.lines, "lines", "", "Print the given lines, as START:END (END exclusive, either may be empty)")
	flags.BoolVar(&opts.rebalance, "rebalance", false, "Rebalance the rope before reporting")

	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	return cmd
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cmd := newRootCmd(stdin, stdout, stderr)
	// A nil slice would make cobra fall back to os.Args.
	cmd.SetArgs(append([]string{}, args...))
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func inspect(opts options, files []string, stdin io.Reader, stdout, stderr io.Writer) error {
	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return err
	}
	if opts.logLevel != "" {
		cfg.Logging.Level = opts.logLevel
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	input := stdin
	if len(files) == 1 {
		f, err := os.Open(files[0])
		if err != nil {
			return errors.Wrap(err, "open input")
		}
		defer f.Close()
		input = f
	}

	data, err := io.ReadAll(input)
	if err != nil {
		return errors.Wrap(err, "read input")
	}

	buf := cfg.NewBuffer(string(data), stderr)
	r := buf.Rope()
	if opts.rebalance {
		r = r.Rebalance()
	}

	if opts.lines != "" {
		rg, err := parseLineRange(opts.lines, r.LineCount())
		if err != nil {
			return err
		}
		_, err = r.LineSlice(rg).WriteTo(stdout)
		return errors.Wrap(err, "write lines")
	}

	fmt.Fprintf(stdout, "bytes:  %d\n", r.Len())
	fmt.Fprintf(stdout, "lines:  %d\n", r.LineCount())
	fmt.Fprintf(stdout, "leaves: %d\n", r.LeafCount())
	fmt.Fprintf(stdout, "depth:  %d\n", r.Depth())
	return nil
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading config")
	}
	return config.Parse(path, data)
}

// parseLineRange parses START:END into a line range. Either side may be
// omitted. Indices past the last line are rejected.
func parseLineRange(s string, lineCount uint32) (rope.Range, error) {
	lo, hi, ok := strings.Cut(s, ":")
	if !ok {
		return rope.Range{}, errors.Errorf("line range %q: want START:END", s)
	}

	bound := func(v string) (uint64, bool, error) {
		if v == "" {
			return 0, false, nil
		}
		n, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return 0, false, errors.Wrapf(err, "line range %q", s)
		}
		if n > uint64(lineCount) {
			return 0, false, errors.Errorf("line range %q: only %d lines", s, lineCount)
		}
		return n, true, nil
	}

	start, hasStart, err := bound(lo)
	if err != nil {
		return rope.Range{}, err
	}
	end, hasEnd, err := bound(hi)
	if err != nil {
		return rope.Range{}, err
	}

	switch {
	case hasStart && hasEnd:
		if start > end {
			return rope.Range{}, errors.Errorf("line range %q: start after end", s)
		}
		return rope.Span(start, end), nil
	case hasStart:
		return rope.From(start), nil
	case hasEnd:
		return rope.To(end), nil
	default:
		return rope.Full(), nil
	}
}
