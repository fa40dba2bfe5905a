// File: pkg/feed/reader.go
package feed

import (
	"os"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
)

// newlines folds CRLF and lone CR line endings into LF.
var newlines = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// Reader loads single files and turns them into feed entries.
type Reader struct {
	minifier *Minifier
	logger   *zap.Logger
}

// NewReader returns a Reader that minifies with m. A nil m falls back to the
// default rule table and a nil logger to a no-op one.
func NewReader(m *Minifier, logger *zap.Logger) *Reader {
	if m == nil {
		m = NewMinifier(DefaultOptions())
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Reader{minifier: m, logger: logger}
}

// Read loads path and optionally minifies it and prefixes a "// <path>" line.
// A file that cannot be opened is not an error: it comes back as StatusMissing
// with empty text and zero raw length. Line endings are normalized to "\n"
// before the raw length is measured.
func (r *Reader) Read(path string, applyMinification, addPathHeader bool) ReadResult {
	r.logger.Debug("Reading file", zap.String("path", path))

	data, err := os.ReadFile(path)
	if err != nil {
		r.logger.Warn("Path does not exist", zap.String("path", path), zap.Error(err))
		return ReadResult{Path: path, Status: StatusMissing, Err: err}
	}

	content := newlines.Replace(string(data))
	rawLength := utf8.RuneCountInString(content)

	if applyMinification {
		content = r.minifier.Minify(content)
	}
	if addPathHeader {
		content = HeaderPrefix + path + "\n" + content
	}

	r.logger.Info("Read file",
		zap.String("path", path),
		zap.Int("rawLength", rawLength),
		zap.Int("length", utf8.RuneCountInString(content)))

	return ReadResult{
		Path:      path,
		Text:      content,
		RawLength: rawLength,
		Status:    StatusRead,
	}
}
