// File: pkg/flatten/reader.go
package flatten

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// defaultRead builds the disk-backed ReadFunc for a run. Per-file failures
// are captured in the result, never returned: the run must survive a file
// vanishing or losing permissions between enumeration and read.
func defaultRead(mode BinaryMode) ReadFunc {
	if mode == "" {
		mode = BinarySkip
	}
	return func(ctx context.Context, task FileTask) FileResult {
		if err := ctx.Err(); err != nil {
			return FileResult{Index: task.Index, RelPath: task.RelPath, Err: err}
		}

		content, err := os.ReadFile(task.AbsPath)
		if err != nil {
			return FileResult{Index: task.Index, RelPath: task.RelPath, Err: readReason(err)}
		}

		res := FileResult{Index: task.Index, RelPath: task.RelPath, Content: content}
		if looksBinary(content) {
			res.Binary = true
			switch mode {
			case BinaryRaw:
				// verbatim
			case BinaryBase64:
				encoded := make([]byte, base64.StdEncoding.EncodedLen(len(content)))
				base64.StdEncoding.Encode(encoded, content)
				res.Content = encoded
			default:
				res.Content = []byte(fmt.Sprintf("[binary file skipped (%d bytes)]", len(content)))
			}
		}
		return res
	}
}

// readReason strips the path from a read error so the inline note stays
// stable across runs against different clone directories.
func readReason(err error) error {
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return pathErr.Err
	}
	return err
}

// looksBinary reports whether content is likely binary: a null byte in the
// first 512 bytes, or more than 30% non-printable characters there.
func looksBinary(content []byte) bool {
	probe := content
	if len(probe) > 512 {
		probe = probe[:512]
	}
	if len(probe) == 0 {
		return false
	}
	if bytes.IndexByte(probe, 0) >= 0 {
		return true
	}

	nonPrintable := 0
	for _, b := range probe {
		if !isPrintable(b) {
			nonPrintable++
		}
	}
	return float64(nonPrintable)/float64(len(probe)) > 0.3
}

// isPrintable checks if a byte represents a printable ASCII character.
func isPrintable(b byte) bool {
	return (b >= 32 && b <= 126) || b == '\n' || b == '\r' || b == '\t'
}
