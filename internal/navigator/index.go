package navigator

import (
	"bufio"
	"io"
	"sort"
	"strings"

	"github.com/gobwas/glob"
)

// Listing is the parsed content of a directory index file
type Listing struct {
	Dirs  []string
	Files []string
}

// ParseIndex reads a dirfile. Lines starting with DirMarker name child
// directories, every other non-empty line names a file. Both partitions come
// back sorted.
func ParseIndex(r io.Reader) (Listing, error) {
	var l Listing
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, DirMarker) {
			if name := strings.TrimSpace(line[len(DirMarker):]); name != "" {
				l.Dirs = append(l.Dirs, name)
			}
			continue
		}
		if name := strings.TrimSpace(line); name != "" {
			l.Files = append(l.Files, name)
		}
	}
	if err := scanner.Err(); err != nil {
		return Listing{}, err
	}

	sort.Strings(l.Dirs)
	sort.Strings(l.Files)
	return l, nil
}

// Lines renders directories (with their marker) before files
func (l Listing) Lines() []string {
	out := make([]string, 0, len(l.Dirs)+len(l.Files))
	for _, d := range l.Dirs {
		out = append(out, DirMarker+d)
	}
	return append(out, l.Files...)
}

// HasDir reports whether name is listed as a sub-directory
func (l Listing) HasDir(name string) bool {
	i := sort.SearchStrings(l.Dirs, name)
	return i < len(l.Dirs) && l.Dirs[i] == name
}

// Without drops every entry matching one of the patterns
func (l Listing) Without(patterns []glob.Glob) Listing {
	if len(patterns) == 0 {
		return l
	}
	return Listing{
		Dirs:  filterOut(l.Dirs, patterns),
		Files: filterOut(l.Files, patterns),
	}
}

func filterOut(names []string, patterns []glob.Glob) []string {
	var out []string
	for _, name := range names {
		hidden := false
		for _, p := range patterns {
			if p.Match(name) {
				hidden = true
				break
			}
		}
		if !hidden {
			out = append(out, name)
		}
	}
	return out
}
