// Package dirscan reads a single directory listing once and answers
// membership questions about it.
//
// A Contents value is immutable after Read returns, so one listing can be
// shared by every prompt module evaluated in the same render pass.
package dirscan

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// batchSize is how many entries are read between deadline checks.
const batchSize = 64

// Contents is the listing of one directory. Only names are kept; nested
// directories are not descended into.
type Contents struct {
	files      map[string]struct{}
	folders    map[string]struct{}
	extensions map[string]struct{}
	// Truncated is true when the deadline expired before the listing finished.
	Truncated bool
}

// Read lists dir. When timeout is positive and expires mid-listing, the
// entries read so far are kept and Truncated is set. An error is returned
// only when the directory cannot be opened at all.
func Read(dir string, timeout time.Duration) (*Contents, error) {
	f, err := os.Open(dir)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	c := &Contents{
		files:      make(map[string]struct{}),
		folders:    make(map[string]struct{}),
		extensions: make(map[string]struct{}),
	}

	var deadline time.Time
	if timeout > 0 {
		deadline = time.Now().Add(timeout)
	}

	for {
		entries, err := f.ReadDir(batchSize)
		for _, entry := range entries {
			c.add(dir, entry)
		}
		if errors.Is(err, io.EOF) || (err == nil && len(entries) == 0) {
			return c, nil
		}
		if err != nil {
			// Partial listings are still useful to a prompt.
			c.Truncated = true
			return c, nil
		}
		if !deadline.IsZero() && time.Now().After(deadline) {
			c.Truncated = true
			return c, nil
		}
	}
}

// FromNames builds Contents without touching the filesystem. Names ending in
// a slash are folders.
func FromNames(names ...string) *Contents {
	c := &Contents{
		files:      make(map[string]struct{}),
		folders:    make(map[string]struct{}),
		extensions: make(map[string]struct{}),
	}
	for _, name := range names {
		if folder, ok := strings.CutSuffix(name, "/"); ok {
			c.folders[folder] = struct{}{}
			continue
		}
		c.addFile(name)
	}
	return c
}

func (c *Contents) add(dir string, entry os.DirEntry) {
	isDir := entry.IsDir()
	if entry.Type()&os.ModeSymlink != 0 {
		if info, err := os.Stat(filepath.Join(dir, entry.Name())); err == nil {
			isDir = info.IsDir()
		}
	}
	if isDir {
		c.folders[entry.Name()] = struct{}{}
		return
	}
	c.addFile(entry.Name())
}

func (c *Contents) addFile(name string) {
	c.files[name] = struct{}{}
	if ext, ok := Extension(name); ok {
		c.extensions[ext] = struct{}{}
	}
}

// Extension returns the text after the final dot of name. Dotfiles without a
// further dot, like ".perl-version", have no extension.
func Extension(name string) (string, bool) {
	i := strings.LastIndexByte(name, '.')
	if i <= 0 || i == len(name)-1 {
		return "", false
	}
	return name[i+1:], true
}

// HasAnyFile reports whether any of names is a file in the listing.
func (c *Contents) HasAnyFile(names ...string) bool {
	if c == nil {
		return false
	}
	return hasAny(c.files, names)
}

// HasAnyExtension reports whether any file carries one of exts. Extensions
// are given without the leading dot.
func (c *Contents) HasAnyExtension(exts ...string) bool {
	if c == nil {
		return false
	}
	return hasAny(c.extensions, exts)
}

// HasAnyFolder reports whether any of names is a folder in the listing.
func (c *Contents) HasAnyFolder(names ...string) bool {
	if c == nil {
		return false
	}
	return hasAny(c.folders, names)
}

// Len is the number of entries in the listing.
func (c *Contents) Len() int {
	if c == nil {
		return 0
	}
	return len(c.files) + len(c.folders)
}

func hasAny(set map[string]struct{}, keys []string) bool {
	for _, k := range keys {
		if _, ok := set[k]; ok {
			return true
		}
	}
	return false
}
