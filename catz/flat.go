package catz

import (
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Flat is a directory that export files are written to.
type Flat struct {
	path string
}

func NewFlatWithRoot(root string) *Flat {
	root = filepath.Clean(root)
	if !filepath.IsAbs(root) {
		root, _ = filepath.Abs(root)
	}
	return &Flat{path: root}
}

func (f *Flat) MkdirAll() error {
	return os.MkdirAll(f.path, 0770)
}

func (f *Flat) Path() string {
	return f.path
}

// Create creates the named file in the directory; see Create.
func (f *Flat) Create(name string) (io.WriteCloser, error) {
	return Create(filepath.Join(f.path, name))
}

// SwapExt returns the base name of path with its extension replaced by ext.
// A trailing .gz is treated as part of the extension.
func SwapExt(path, ext string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, ".gz")
	return strings.TrimSuffix(base, filepath.Ext(base)) + ext
}
