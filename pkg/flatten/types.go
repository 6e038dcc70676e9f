// File: pkg/flatten/types.go
package flatten

import (
	"context"
	"fmt"

	"gitget/pkg/ignore"
)

// BinaryMode selects how binary files are represented in the output document.
type BinaryMode string

const (
	// BinarySkip emits the file's block with a short note instead of content.
	BinarySkip BinaryMode = "skip"
	// BinaryRaw includes binary content verbatim.
	BinaryRaw BinaryMode = "raw"
	// BinaryBase64 includes binary content base64-encoded.
	BinaryBase64 BinaryMode = "base64"
)

// ParseBinaryMode validates a --binary flag value.
func ParseBinaryMode(s string) (BinaryMode, error) {
	switch BinaryMode(s) {
	case BinarySkip, BinaryRaw, BinaryBase64:
		return BinaryMode(s), nil
	}
	return "", fmt.Errorf("invalid binary mode %q (want skip, raw or base64)", s)
}

// FileTask identifies one regular file discovered by the walker. Index is
// assigned in enumeration order and is the sole ordering key for output
// assembly. Tasks are immutable once created.
type FileTask struct {
	Index   int
	RelPath string // slash-separated, relative to the root
	AbsPath string
}

// FileResult is produced by exactly one reader per FileTask. A per-file read
// failure sets Err and leaves Content nil; it never aborts the run.
type FileResult struct {
	Index   int
	RelPath string
	Content []byte
	Err     error
	Binary  bool
}

// ReadFunc turns a FileTask into its FileResult. The default implementation
// reads from disk; tests inject their own to control completion order.
type ReadFunc func(ctx context.Context, task FileTask) FileResult

// Config holds the options for one flatten run.
type Config struct {
	Root          string          // directory to flatten
	Output        string          // output document path
	Tree          string          // optional tree structure output path
	Label         string          // document title; defaults to the root's base name
	Rules         *ignore.Ruleset // exclusion rules; nil means exclude nothing
	Extensions    []string        // optional extension filter (with dot); empty = all
	Workers       int             // reader pool size; <=0 means runtime.NumCPU()
	BufferLimit   int             // max in-flight-or-pending results; <=0 means DefaultBufferLimit
	MaxFileSizeKB int             // skip files larger than this; <=0 means no limit
	BinaryMode    BinaryMode      // empty means BinarySkip
	Read          ReadFunc        // nil means read from disk
}

// Stats summarizes a completed run.
type Stats struct {
	Files      int // blocks written
	Unreadable int // blocks flagged with a per-file error
	Binaries   int // blocks detected as binary
	MaxPending int // high-water mark of buffered out-of-order results
}

// DefaultBufferLimit bounds how many results may be dispatched but not yet
// written, capping peak memory at O(limit × average file size).
const DefaultBufferLimit = 64
