// File: pkg/feed/feed.go
package feed

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Arguments holds the fixed settings of a feed run.
type Arguments struct {
	Root   string // Directory the relative paths are resolved against.
	Output string // Destination of the joined blob when writing is requested.
	Budget int    // Downstream input budget in characters.
}

// Feeder drives the Reader over a path list and reports the result.
type Feeder struct {
	args   Arguments
	reader *Reader
	out    io.Writer
	logger *zap.Logger
}

// NewFeeder creates a Feeder that prints the feed and statistics to out.
// Zero-valued arguments fall back to the defaults.
func NewFeeder(args Arguments, reader *Reader, out io.Writer, logger *zap.Logger) *Feeder {
	if logger == nil {
		logger = zap.NewNop()
	}
	if reader == nil {
		reader = NewReader(nil, logger)
	}
	if out == nil {
		out = os.Stdout
	}
	if args.Root == "" {
		args.Root = "./"
	}
	if args.Output == "" {
		args.Output = DefaultOutput
	}
	if args.Budget <= 0 {
		args.Budget = DefaultBudget
	}
	return &Feeder{args: args, reader: reader, out: out, logger: logger}
}

// Run reads every path in order, prints the feed, optionally writes it to the
// output file and prints size statistics. Only an output write failure is
// returned as an error.
func (f *Feeder) Run(paths []string, opts RunOptions) (*Report, error) {
	startTime := time.Now()
	f.logger.Info("Starting feed",
		zap.String("root", f.args.Root),
		zap.Int("pathCount", len(paths)),
		zap.Bool("writeToFile", opts.WriteToFile),
		zap.Bool("perFile", opts.PerFile))

	results := make([]ReadResult, 0, len(paths))
	texts := make([]string, 0, len(paths))
	for _, rel := range paths {
		res := f.reader.Read(f.resolve(rel), true, true)
		results = append(results, res)
		texts = append(texts, res.Text)
	}

	fmt.Fprintln(f.out, StartDelimiter)

	joined := strings.Join(texts, Separator)
	if opts.PerFile {
		for _, text := range texts {
			fmt.Fprintln(f.out, text)
		}
	} else {
		fmt.Fprintln(f.out, joined)
	}

	report := newReport(results, joined, f.args.Budget)

	if opts.WriteToFile {
		if err := WriteOutput(f.args.Output, joined, f.logger); err != nil {
			return report, fmt.Errorf("failed to write feed output: %w", err)
		}
	}

	fmt.Fprintf(f.out, "%s\n\n", EndDelimiter)
	report.Print(f.out)

	f.logger.Info("Feed completed",
		zap.Int("originalLength", report.OriginalLength),
		zap.Int("minifiedLength", report.MinifiedLength),
		zap.Int("missingFiles", len(report.Missing())),
		zap.Duration("elapsed", time.Since(startTime)))
	return report, nil
}

// resolve joins a relative path onto the root. Absolute paths pass through.
func (f *Feeder) resolve(rel string) string {
	if filepath.IsAbs(rel) {
		return rel
	}
	return filepath.Join(f.args.Root, rel)
}
