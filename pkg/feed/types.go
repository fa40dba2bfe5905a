// File: pkg/feed/types.go
package feed

// ReadStatus tells a file that was read apart from one that could not be opened.
type ReadStatus int

const (
	StatusRead    ReadStatus = iota // File was read; Text may still be empty.
	StatusMissing                   // File could not be opened; Text is empty.
)

// String returns a short label for logs.
func (s ReadStatus) String() string {
	switch s {
	case StatusRead:
		return "read"
	case StatusMissing:
		return "missing"
	default:
		return "unknown"
	}
}

// ReadResult represents the outcome of reading a single path.
type ReadResult struct {
	Path      string     // Path as handed to the reader.
	Text      string     // Minified and/or header-annotated content.
	RawLength int        // Character count of the content before any transform.
	Status    ReadStatus // Whether the file was read or treated as missing.
	Err       error      // Underlying error when Status is StatusMissing.
}

// RunOptions selects how a feed run presents and persists its output.
type RunOptions struct {
	WriteToFile bool // Write the joined blob to the output file.
	PerFile     bool // Print each file's text separately instead of the joined blob.
}

// Constants
const (
	Separator      = "\n\n"             // Placed between consecutive file texts.
	StartDelimiter = "-= START FEED =-" // Printed before the feed body.
	EndDelimiter   = "-= END FEED =-"   // Printed after the feed body.
	HeaderPrefix   = "// "              // Comment marker for the injected path line.
	DefaultBudget  = 40000              // Downstream input budget in characters.
	DefaultOutput  = "Paste2Perplexity.txt"
)
