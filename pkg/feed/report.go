// File: pkg/feed/report.go
package feed

import (
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/fatih/color"
)

// Report holds the result of one feed run.
type Report struct {
	Results        []ReadResult // One entry per requested path, in list order.
	Joined         string       // Texts joined with Separator.
	OriginalLength int          // Sum of raw lengths of every file that was read.
	MinifiedLength int          // Character count of Joined.
	Budget         int          // Downstream budget used for the fit estimate.
}

func newReport(results []ReadResult, joined string, budget int) *Report {
	original := 0
	for _, res := range results {
		original += res.RawLength
	}
	return &Report{
		Results:        results,
		Joined:         joined,
		OriginalLength: original,
		MinifiedLength: utf8.RuneCountInString(joined),
		Budget:         budget,
	}
}

// Empty reports whether no file contributed any characters.
func (r *Report) Empty() bool {
	return r.OriginalLength == 0
}

// Ratio is the minified length as a fraction of the original length. It is
// zero for an empty report.
func (r *Report) Ratio() float64 {
	if r.Empty() {
		return 0
	}
	return float64(r.MinifiedLength) / float64(r.OriginalLength)
}

// BudgetFit estimates how many characters of original source fit the budget
// at this run's density. ok is false when the ratio is zero.
func (r *Report) BudgetFit() (fit float64, ok bool) {
	ratio := r.Ratio()
	if ratio == 0 {
		return 0, false
	}
	return float64(r.Budget) / ratio, true
}

// Missing lists the paths that could not be read.
func (r *Report) Missing() []string {
	var missing []string
	for _, res := range r.Results {
		if res.Status == StatusMissing {
			missing = append(missing, res.Path)
		}
	}
	return missing
}

// Print writes the size statistics to w.
func (r *Report) Print(w io.Writer) {
	label := color.New(color.FgCyan, color.Bold)

	if r.Empty() {
		color.New(color.FgYellow).Fprintln(w, "Input was empty: no statistics to report.")
		return
	}

	label.Fprint(w, "Original length: ")
	fmt.Fprintln(w, r.OriginalLength)
	label.Fprint(w, "Minified length: ")
	fmt.Fprintln(w, r.MinifiedLength)
	fmt.Fprintf(w, "%.2f%% of original size\n", 100*r.Ratio())

	if fit, ok := r.BudgetFit(); ok {
		fmt.Fprintf(w, "%.0f characters of source fit a %d-character budget\n", fit, r.Budget)
	} else {
		fmt.Fprintln(w, "Budget estimate unavailable: minified output is empty")
	}

	if missing := r.Missing(); len(missing) > 0 {
		color.New(color.FgYellow).Fprintf(w, "Missing files: %d\n", len(missing))
	}
}
