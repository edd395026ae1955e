// Package catz writes and reads the gzip-compressed files that exports
// and batch conversions produce.
package catz

import (
	"bufio"
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/rotblauer/catpace/params"
)

type GZFileWriter struct {
	f      *os.File
	gzw    *gzip.Writer
	locked bool
	closed bool

	GZFileWriterConfig
}

type GZFileWriterConfig struct {
	CompressionLevel int
	Flag             int
	FilePerm         os.FileMode
	DirPerm          os.FileMode
}

// DefaultGZFileWriterConfig truncates existing files; each export is written whole.
func DefaultGZFileWriterConfig() *GZFileWriterConfig {
	return &GZFileWriterConfig{
		CompressionLevel: params.DefaultGZipCompressionLevel,
		Flag:             os.O_WRONLY | os.O_TRUNC | os.O_CREATE,
		FilePerm:         0660,
		DirPerm:          0770,
	}
}

func NewGZFileWriter(path string, config *GZFileWriterConfig) (*GZFileWriter, error) {
	if config == nil {
		config = DefaultGZFileWriterConfig()
	}
	if err := os.MkdirAll(filepath.Dir(path), config.DirPerm); err != nil {
		return nil, err
	}
	fi, err := os.OpenFile(path, config.Flag, config.FilePerm)
	if err != nil {
		return nil, err
	}
	gzw, err := gzip.NewWriterLevel(fi, config.CompressionLevel)
	if err != nil {
		_ = fi.Close()
		return nil, err
	}
	return &GZFileWriter{
		f:                  fi,
		gzw:                gzw,
		GZFileWriterConfig: *config,
	}, nil
}

func (g *GZFileWriter) Write(p []byte) (int, error) {
	g.lock()
	return g.gzw.Write(p)
}

// lock locks the file for exclusive access.
// The lock will be invalidated if and when the file is closed.
func (g *GZFileWriter) lock() {
	if g.locked || g.closed || g.f == nil {
		return
	}
	_ = syscall.Flock(int(g.f.Fd()), syscall.LOCK_EX)
	g.locked = true
}

func (g *GZFileWriter) unlock() {
	if !g.locked || g.closed || g.f == nil {
		return
	}
	_ = syscall.Flock(int(g.f.Fd()), syscall.LOCK_UN)
	g.locked = false
}

func (g *GZFileWriter) Close() error {
	if g.closed {
		return nil
	}
	defer func() {
		g.closed = true
	}()
	defer g.unlock()
	if err := g.gzw.Close(); err != nil {
		_ = g.f.Close()
		return err
	}
	return g.f.Close()
}

func (g *GZFileWriter) Path() string {
	return g.f.Name()
}

type GZFileReader struct {
	f      *os.File
	gzr    *gzip.Reader
	closed bool
}

func NewGZFileReader(path string) (*GZFileReader, error) {
	fi, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	gzr, err := gzip.NewReader(fi)
	if err != nil {
		_ = fi.Close()
		return nil, err
	}
	return &GZFileReader{f: fi, gzr: gzr}, nil
}

// Read satisfies the io.Reader interface.
func (g *GZFileReader) Read(p []byte) (int, error) {
	return g.gzr.Read(p)
}

// Close closes the gzip reader and the file.
func (g *GZFileReader) Close() error {
	if g.closed {
		return nil
	}
	g.closed = true
	if err := g.gzr.Close(); err != nil {
		_ = g.f.Close()
		return err
	}
	return g.f.Close()
}

func (g *GZFileReader) LineCount() (int, error) {
	count := 0
	scanner := bufio.NewScanner(g.gzr)
	for scanner.Scan() {
		count++
	}
	return count, scanner.Err()
}

// Open opens path for reading, transparently decompressing it if it ends in .gz.
func Open(path string) (io.ReadCloser, error) {
	if strings.HasSuffix(path, ".gz") {
		return NewGZFileReader(path)
	}
	return os.Open(path)
}

// Create creates path for writing, compressing it if it ends in .gz.
// Missing parent directories are created.
func Create(path string) (io.WriteCloser, error) {
	if strings.HasSuffix(path, ".gz") {
		return NewGZFileWriter(path, nil)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0770); err != nil {
		return nil, err
	}
	return os.Create(path)
}
