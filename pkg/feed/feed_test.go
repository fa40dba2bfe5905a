package feed

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newTestFeeder(t *testing.T, root string, logger *zap.Logger) (*Feeder, *bytes.Buffer, string) {
	t.Helper()
	if logger == nil {
		logger = zap.NewNop()
	}
	out := &bytes.Buffer{}
	output := filepath.Join(t.TempDir(), "feed.txt")
	f := NewFeeder(Arguments{Root: root, Output: output}, NewReader(nil, logger), out, logger)
	return f, out, output
}

func TestFeeder_MissingFileScenario(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.txt", "foo,\n    bar")
	core, logs := observer.New(zapcore.WarnLevel)
	f, _, _ := newTestFeeder(t, root, zap.New(core))

	report, err := f.Run([]string{"a.txt", "b.txt"}, RunOptions{})
	require.NoError(t, err)

	header := HeaderPrefix + filepath.Join(root, "a.txt") + "\n"
	assert.Equal(t, header+"foo,bar"+Separator, report.Joined)
	assert.Equal(t, len("foo,\n    bar"), report.OriginalLength)
	assert.Equal(t, []string{filepath.Join(root, "b.txt")}, report.Missing())

	entries := logs.FilterMessage("Path does not exist").All()
	require.Len(t, entries, 1)
	assert.Contains(t, entries[0].ContextMap()["path"], "b.txt")
}

func TestFeeder_OriginalLengthIsSumOfRawLengths(t *testing.T) {
	root := t.TempDir()
	contents := map[string]string{
		"client/src/App.jsx": "const App = () => {\n  return <div />;\n};\n",
		"server/index.js":    "// start\napp.listen(3000);\n",
		"notes.txt":          "plain, text\n",
	}
	var paths []string
	want := 0
	for name, content := range contents {
		writeFile(t, root, name, content)
		paths = append(paths, name)
		want += utf8.RuneCountInString(content)
	}
	f, _, _ := newTestFeeder(t, root, nil)

	report, err := f.Run(paths, RunOptions{})
	require.NoError(t, err)

	assert.Equal(t, want, report.OriginalLength)
	assert.Empty(t, report.Missing())
}

func TestFeeder_JoinedIsOrderedHeaderAnnotatedTexts(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "one.js", "a = 1;\n")
	writeFile(t, root, "two.js", "b = 2;\n")
	f, _, _ := newTestFeeder(t, root, nil)
	m := NewMinifier(DefaultOptions())

	paths := []string{"two.js", "one.js", "two.js"}
	report, err := f.Run(paths, RunOptions{})
	require.NoError(t, err)

	var want []string
	for _, p := range paths {
		full := filepath.Join(root, p)
		data, err := os.ReadFile(full)
		require.NoError(t, err)
		want = append(want, HeaderPrefix+full+"\n"+m.Minify(string(data)))
	}
	assert.Equal(t, strings.Join(want, "\n\n"), report.Joined)
	assert.Len(t, report.Results, 3)
}

func TestFeeder_OnlyMissingFilesReportsEmpty(t *testing.T) {
	f, out, _ := newTestFeeder(t, t.TempDir(), nil)

	report, err := f.Run([]string{"nope.js", "gone.js"}, RunOptions{})
	require.NoError(t, err)

	assert.True(t, report.Empty())
	assert.Equal(t, 0.0, report.Ratio())
	assert.Equal(t, "\n\n", report.Joined)
	assert.Contains(t, out.String(), "Input was empty")
	assert.NotContains(t, out.String(), "% of original size")
}

func TestFeeder_EmptyPathList(t *testing.T) {
	f, out, _ := newTestFeeder(t, t.TempDir(), nil)

	report, err := f.Run(nil, RunOptions{})
	require.NoError(t, err)

	assert.True(t, report.Empty())
	assert.Equal(t, "", report.Joined)
	assert.Contains(t, out.String(), "Input was empty")
}

func TestFeeder_WriteToFileMatchesPrintedBlob(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.js", "let x = {\n  a: 1,\n};\n")
	writeFile(t, root, "b.js", "call(x); // go\n")
	f, out, output := newTestFeeder(t, root, nil)

	report, err := f.Run([]string{"a.js", "b.js"}, RunOptions{WriteToFile: true})
	require.NoError(t, err)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, report.Joined, string(data))

	wantPrinted := StartDelimiter + "\n" + report.Joined + "\n" + EndDelimiter + "\n\n"
	assert.True(t, strings.HasPrefix(out.String(), wantPrinted), "printed output:\n%s", out.String())
}

func TestFeeder_WriteOverwritesExistingFile(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.js", "x")
	f, _, output := newTestFeeder(t, root, nil)
	require.NoError(t, os.WriteFile(output, []byte(strings.Repeat("stale ", 100)), 0o644))

	report, err := f.Run([]string{"a.js"}, RunOptions{WriteToFile: true})
	require.NoError(t, err)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, report.Joined, string(data))
}

func TestFeeder_NoWriteLeavesNoFile(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.js", "x")
	f, _, output := newTestFeeder(t, root, nil)

	_, err := f.Run([]string{"a.js"}, RunOptions{WriteToFile: false})
	require.NoError(t, err)

	_, statErr := os.Stat(output)
	assert.True(t, os.IsNotExist(statErr))
}

func TestFeeder_WriteFailureIsReturned(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.js", "x")
	out := &bytes.Buffer{}
	badOutput := filepath.Join(root, "no-such-dir", "feed.txt")
	f := NewFeeder(Arguments{Root: root, Output: badOutput}, nil, out, nil)

	report, err := f.Run([]string{"a.js"}, RunOptions{WriteToFile: true})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to write feed output")
	require.NotNil(t, report)
	assert.NotContains(t, out.String(), EndDelimiter)
}

func TestFeeder_PerFilePrinting(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.js", "a")
	writeFile(t, root, "b.js", "b")
	f, out, _ := newTestFeeder(t, root, nil)

	report, err := f.Run([]string{"a.js", "b.js"}, RunOptions{PerFile: true})
	require.NoError(t, err)

	first := HeaderPrefix + filepath.Join(root, "a.js") + "\na"
	second := HeaderPrefix + filepath.Join(root, "b.js") + "\nb"
	wantPrinted := StartDelimiter + "\n" + first + "\n" + second + "\n" + EndDelimiter + "\n\n"
	assert.True(t, strings.HasPrefix(out.String(), wantPrinted), "printed output:\n%s", out.String())
	assert.Equal(t, first+"\n\n"+second, report.Joined)
}

func TestFeeder_StatisticsOutput(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.js", "x = 1;\n")
	f, out, _ := newTestFeeder(t, root, nil)

	report, err := f.Run([]string{"a.js"}, RunOptions{})
	require.NoError(t, err)

	fit, ok := report.BudgetFit()
	require.True(t, ok)
	printed := out.String()
	assert.Contains(t, printed, fmt.Sprintf("Original length: %d\n", report.OriginalLength))
	assert.Contains(t, printed, fmt.Sprintf("Minified length: %d\n", report.MinifiedLength))
	assert.Contains(t, printed, fmt.Sprintf("%.2f%% of original size\n", 100*report.Ratio()))
	assert.Contains(t, printed, fmt.Sprintf("%.0f characters of source fit a %d-character budget", fit, DefaultBudget))
}

func TestNewFeeder_Defaults(t *testing.T) {
	f := NewFeeder(Arguments{}, nil, nil, nil)

	assert.Equal(t, "./", f.args.Root)
	assert.Equal(t, DefaultOutput, f.args.Output)
	assert.Equal(t, DefaultBudget, f.args.Budget)
	assert.Equal(t, "client/x.js", f.resolve("client/x.js"))
}

func TestFeeder_ResolveKeepsAbsolutePaths(t *testing.T) {
	abs := filepath.Join(t.TempDir(), "x.js")
	f := NewFeeder(Arguments{Root: "somewhere"}, nil, &bytes.Buffer{}, nil)

	assert.Equal(t, abs, f.resolve(abs))
	assert.Equal(t, filepath.Join("somewhere", "y.js"), f.resolve("y.js"))
}

func TestFeeder_CRLFFilesMatchTheirLFForm(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "server/models/Admin.js", "module.exports = (sequelize) => {\r\n  // model\r\n  return Admin;\r\n};\r\n")
	writeFile(t, root, "lf/Admin.js", "module.exports = (sequelize) => {\n  // model\n  return Admin;\n};\n")
	f, _, _ := newTestFeeder(t, root, nil)

	crlf, err := f.Run([]string{"server/models/Admin.js"}, RunOptions{})
	require.NoError(t, err)
	lf, err := f.Run([]string{"lf/Admin.js"}, RunOptions{})
	require.NoError(t, err)

	assert.Equal(t, lf.OriginalLength, crlf.OriginalLength)
	assert.Equal(t, lf.MinifiedLength-len("lf/Admin.js"), crlf.MinifiedLength-len("server/models/Admin.js"))
	assert.NotContains(t, crlf.Joined, "\r")
	assert.True(t, strings.HasSuffix(crlf.Joined, "\nmodule.exports=(sequelize)=>{return Admin;};"), "joined: %q", crlf.Joined)
}
