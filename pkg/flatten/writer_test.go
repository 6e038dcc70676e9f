package flatten

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocWriterBlockFormat(t *testing.T) {
	var buf bytes.Buffer
	doc := NewDocWriter(&buf)

	require.NoError(t, doc.WriteBlock(FileResult{RelPath: "a.txt", Content: []byte("hello")}))
	require.NoError(t, doc.Flush())

	assert.Equal(t, "=== a.txt ===\nhello\n\n", buf.String())
}

func TestDocWriterNewlineTerminatedContent(t *testing.T) {
	var buf bytes.Buffer
	doc := NewDocWriter(&buf)

	require.NoError(t, doc.WriteBlock(FileResult{RelPath: "a.txt", Content: []byte("hello\n")}))
	require.NoError(t, doc.Flush())

	// No extra newline is added before the blank separator line.
	assert.Equal(t, "=== a.txt ===\nhello\n\n", buf.String())
}

func TestDocWriterUnreadableBlock(t *testing.T) {
	var buf bytes.Buffer
	doc := NewDocWriter(&buf)

	require.NoError(t, doc.WriteBlock(FileResult{
		RelPath: "secret.txt",
		Err:     errors.New("permission denied"),
	}))
	require.NoError(t, doc.Flush())

	assert.Equal(t, "=== secret.txt ===\n[unreadable: permission denied]\n\n", buf.String())

	files, unreadable, _ := doc.Stats()
	assert.Equal(t, 1, files)
	assert.Equal(t, 1, unreadable)
}

func TestDocWriterHeaderAndFooter(t *testing.T) {
	var buf bytes.Buffer
	doc := NewDocWriter(&buf)

	require.NoError(t, doc.WriteHeader("myrepo"))
	require.NoError(t, doc.WriteBlock(FileResult{RelPath: "a", Content: []byte("x")}))
	require.NoError(t, doc.WriteFooter())

	assert.Equal(t, "=== gitget: myrepo ===\n\n=== a ===\nx\n\n=== 1 files, 0 unreadable ===\n", buf.String())
}

func TestDocWriterEmptyDocument(t *testing.T) {
	var buf bytes.Buffer
	doc := NewDocWriter(&buf)

	require.NoError(t, doc.WriteHeader("empty"))
	require.NoError(t, doc.WriteFooter())

	assert.Equal(t, "=== gitget: empty ===\n\n=== 0 files, 0 unreadable ===\n", buf.String())
}

func TestDocWriterCountsBinaries(t *testing.T) {
	var buf bytes.Buffer
	doc := NewDocWriter(&buf)

	require.NoError(t, doc.WriteBlock(FileResult{RelPath: "bin", Content: []byte("[binary file skipped (4 bytes)]"), Binary: true}))

	_, _, binaries := doc.Stats()
	assert.Equal(t, 1, binaries)
}
