// Package navigator keeps the current-directory cursor of a session and reads
// directory indexes and documents from a sandboxed tree.
//
// The tree is any fs.FS. Paths handed to it are always relative to its root,
// so the cursor cannot leave the sandbox.
package navigator

import (
	"io/fs"
	"path"
	"strings"

	"f3os/internal/errors"
	"f3os/internal/log"

	"github.com/gobwas/glob"
)

const (
	// IndexFile lists the entries of a directory, one per line
	IndexFile = "dirfile"
	// DirMarker prefixes sub-directory lines in an index file
	DirMarker = "> "
	// RestrictionTag on the first line of a file marks it as gated
	RestrictionTag = "hack_lvl"
	// Sentinel is the exact line after which a gated file is readable
	Sentinel = "<-<without_hack>->"
	// ParentToken moves the cursor one level up
	ParentToken = ".."
)

// Navigator is the cursor over the tree. It is not safe for concurrent use.
type Navigator struct {
	fsys   fs.FS
	cwd    []string
	hidden []glob.Glob
}

// Option configures a Navigator
type Option func(*Navigator) error

// WithHidden drops listing entries matching any of the glob patterns
func WithHidden(patterns ...string) Option {
	return func(n *Navigator) error {
		for _, p := range patterns {
			g, err := glob.Compile(p)
			if err != nil {
				return errors.NewConfigError("invalid hidden pattern", p, errors.InvalidConfig, err)
			}
			n.hidden = append(n.hidden, g)
		}
		return nil
	}
}

// New creates a navigator positioned at the root of fsys
func New(fsys fs.FS, opts ...Option) (*Navigator, error) {
	n := &Navigator{fsys: fsys}
	for _, opt := range opts {
		if err := opt(n); err != nil {
			return nil, err
		}
	}
	return n, nil
}

// Cwd returns the cursor as an absolute, slash separated path
func (n *Navigator) Cwd() string {
	return "/" + strings.Join(n.cwd, "/")
}

// AtRoot reports whether the cursor is at the root
func (n *Navigator) AtRoot() bool {
	return len(n.cwd) == 0
}

// Up pops one segment. It is a no-op at the root and reports whether the
// cursor moved.
func (n *Navigator) Up() bool {
	if n.AtRoot() {
		return false
	}
	n.cwd = n.cwd[:len(n.cwd)-1]
	log.LogWithFields(log.F("cwd", n.Cwd())).Debug("moved up")
	return true
}

// Enter descends into a sub-directory of the current directory
func (n *Navigator) Enter(name string) error {
	if !validName(name) {
		return errors.NewFileError("invalid directory name", name, errors.InvalidPath, nil)
	}

	target := n.rel(name)
	info, err := fs.Stat(n.fsys, target)
	if err != nil {
		return errors.NewFileError("no such directory", target, errors.DirectoryCorrupted, err)
	}
	if !info.IsDir() {
		return errors.NewFileError("not a directory", target, errors.DirectoryCorrupted, nil)
	}

	n.cwd = append(n.cwd, name)
	log.LogWithFields(log.F("cwd", n.Cwd())).Debug("entered directory")
	return nil
}

// List parses the index file of the current directory
func (n *Navigator) List() (Listing, error) {
	index := n.rel(IndexFile)
	f, err := n.fsys.Open(index)
	if err != nil {
		return Listing{}, errors.NewFileError("missing directory index", index, errors.DirectoryCorrupted, err)
	}
	defer f.Close()

	listing, err := ParseIndex(f)
	if err != nil {
		return Listing{}, errors.NewFileError("unreadable directory index", index, errors.DirectoryCorrupted, err)
	}
	return listing.Without(n.hidden), nil
}

// Read opens a file relative to the current directory
func (n *Navigator) Read(name string) (*Document, error) {
	if name == "" || name == "." || !fs.ValidPath(name) {
		return nil, errors.NewFileError("invalid file name", name, errors.InvalidPath, nil)
	}
	target := n.rel(name)

	f, err := n.fsys.Open(target)
	if err != nil {
		return nil, errors.NewFileError("cannot open file", target, errors.FileNotFound, err)
	}
	defer f.Close()

	if info, err := f.Stat(); err != nil || info.IsDir() {
		return nil, errors.NewFileError("not a regular file", target, errors.FileNotFound, err)
	}

	doc, err := ParseDocument(target, f)
	if err != nil {
		return nil, errors.NewFileError("cannot read file", target, errors.FileNotFound, err)
	}
	return doc, nil
}

func (n *Navigator) rel(name string) string {
	if n.AtRoot() {
		return name
	}
	return path.Join(path.Join(n.cwd...), name)
}

func validName(name string) bool {
	return name != "" && name != "." && name != ParentToken && !strings.ContainsAny(name, `/\`)
}
