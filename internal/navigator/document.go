package navigator

import (
	"bufio"
	"io"
	"strings"

	"f3os/internal/errors"
)

// Document is a file read from the tree, split into lines without their
// terminators.
type Document struct {
	Name       string
	Lines      []string
	Restricted bool
	// sentinel is the index of the sentinel line, -1 when absent
	sentinel int
}

// ParseDocument splits r into lines and detects the restriction tag and the
// sentinel marker.
func ParseDocument(name string, r io.Reader) (*Document, error) {
	d := &Document{Name: name, sentinel: -1}
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		d.Lines = append(d.Lines, strings.TrimRight(scanner.Text(), "\r"))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if len(d.Lines) == 0 || !strings.Contains(d.Lines[0], RestrictionTag) {
		return d, nil
	}
	d.Restricted = true
	for i, line := range d.Lines[1:] {
		if line == Sentinel {
			d.sentinel = i + 1
			break
		}
	}
	return d, nil
}

// HasSentinel reports whether a restricted document carries the marker line
func (d *Document) HasSentinel() bool {
	return d.sentinel >= 0
}

// Visible returns what a plain read may show: everything for unrestricted
// files, the lines after the sentinel otherwise. A restricted file without a
// sentinel is access denied.
func (d *Document) Visible() ([]string, error) {
	switch {
	case !d.Restricted:
		return d.Lines, nil
	case d.HasSentinel():
		return d.Lines[d.sentinel+1:], nil
	}
	return nil, errors.NewFileError("access denied", d.Name, errors.FileAccessDenied, nil)
}

// Gated returns the content the bypass reveals: every line after the tag
// line except the sentinel itself, so the part a plain read hides is included.
func (d *Document) Gated() []string {
	if !d.Restricted {
		return d.Lines
	}
	if !d.HasSentinel() {
		return d.Lines[1:]
	}
	out := make([]string, 0, len(d.Lines)-2)
	out = append(out, d.Lines[1:d.sentinel]...)
	return append(out, d.Lines[d.sentinel+1:]...)
}
