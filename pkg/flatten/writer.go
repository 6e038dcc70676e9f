// File: pkg/flatten/writer.go
package flatten

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
)

// DocWriter assembles the output document: one delimited block per file, in
// the order blocks are handed to it, with a header and a summary footer.
// Each block is released to the underlying writer immediately; the document
// is never held in memory as a whole.
type DocWriter struct {
	w          *bufio.Writer
	files      int
	unreadable int
	binaries   int
}

// NewDocWriter wraps the output target in a buffered writer.
func NewDocWriter(out io.Writer) *DocWriter {
	return &DocWriter{w: bufio.NewWriter(out)}
}

// WriteHeader emits the document title line.
func (d *DocWriter) WriteHeader(label string) error {
	if _, err := fmt.Fprintf(d.w, "=== gitget: %s ===\n\n", label); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	return nil
}

// WriteBlock emits one file's delimited block:
//
//	=== <relative_path> ===
//	<content>
//
// followed by a blank line. Content that does not end in a newline gets one,
// keeping the format byte-deterministic. An unreadable file's block carries
// an inline note in place of content.
func (d *DocWriter) WriteBlock(res FileResult) error {
	if _, err := fmt.Fprintf(d.w, "=== %s ===\n", res.RelPath); err != nil {
		return fmt.Errorf("write delimiter for %s: %w", res.RelPath, err)
	}

	content := res.Content
	if res.Err != nil {
		content = []byte(fmt.Sprintf("[unreadable: %v]", res.Err))
		d.unreadable++
	}
	if res.Binary {
		d.binaries++
	}

	if _, err := d.w.Write(content); err != nil {
		return fmt.Errorf("write content for %s: %w", res.RelPath, err)
	}
	if !bytes.HasSuffix(content, []byte("\n")) {
		if err := d.w.WriteByte('\n'); err != nil {
			return fmt.Errorf("write content for %s: %w", res.RelPath, err)
		}
	}
	if err := d.w.WriteByte('\n'); err != nil {
		return fmt.Errorf("write separator for %s: %w", res.RelPath, err)
	}

	d.files++
	return nil
}

// WriteFooter emits the summary line and flushes all buffered output.
func (d *DocWriter) WriteFooter() error {
	if _, err := fmt.Fprintf(d.w, "=== %d files, %d unreadable ===\n", d.files, d.unreadable); err != nil {
		return fmt.Errorf("write footer: %w", err)
	}
	if err := d.w.Flush(); err != nil {
		return fmt.Errorf("flush output: %w", err)
	}
	return nil
}

// Flush forces buffered output to the underlying writer without a footer,
// used on error paths so the partial document on disk is as complete as the
// run got.
func (d *DocWriter) Flush() error {
	return d.w.Flush()
}

// Stats reports the block counters accumulated so far.
func (d *DocWriter) Stats() (files, unreadable, binaries int) {
	return d.files, d.unreadable, d.binaries
}
