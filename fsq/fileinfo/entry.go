// Package fileinfo extracts the raw metadata behind every queryable
// attribute: lstat data, EXIF blocks, image headers, audio tags, extended
// attributes and content checksums.
package fileinfo

import (
	"io/fs"
	"path/filepath"
	"time"
)

// Entry is a directory entry visited by the walker.
type Entry struct {
	Path     string
	DirEntry fs.DirEntry
}

// NewEntry wraps a walked path. d may be nil for roots passed on the command line.
func NewEntry(path string, d fs.DirEntry) *Entry {
	return &Entry{Path: path, DirEntry: d}
}

// Name returns the base name of the entry.
func (e *Entry) Name() string {
	if e.DirEntry != nil {
		return e.DirEntry.Name()
	}
	return filepath.Base(e.Path)
}

// Info is a pre-extracted record for rows that have no file of their own on
// disk, such as archive members.
type Info struct {
	Name     string
	Path     string
	Size     uint64
	Mode     fs.FileMode
	Modified time.Time
	IsDir    bool
}
