package app

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/rotblauer/catpace/catz"
	"github.com/rotblauer/catpace/export"
	"github.com/rotblauer/catpace/stream"
)

// ConvertFile writes the points of the GPX file at in as CSV to out.
// out is gzip-compressed when it ends in .gz.
func (j *Job) ConvertFile(ctx context.Context, in, out string) error {
	raw, err := ReadFile(in)
	if err != nil {
		return err
	}
	_, path, err := j.Read(ctx, raw)
	if err != nil {
		return fmt.Errorf("%s: %w", in, err)
	}
	w, err := catz.Create(out)
	if err != nil {
		return err
	}
	if err := export.WriteCSV(w, path); err != nil {
		_ = w.Close()
		return err
	}
	return w.Close()
}

type Conversion struct {
	In  string
	Out string
	Err error
}

// ConvertAll converts every file to CSV next to it, or into outDir when set,
// over workers goroutines. Results arrive in completion order.
func (j *Job) ConvertAll(ctx context.Context, files []string, outDir string, workers int) <-chan Conversion {
	var flat *catz.Flat
	if outDir != "" {
		flat = catz.NewFlatWithRoot(outDir)
	}
	convert := func(in string) Conversion {
		dir := filepath.Dir(in)
		if flat != nil {
			dir = flat.Path()
		}
		c := Conversion{In: in, Out: filepath.Join(dir, catz.SwapExt(in, ".csv"))}
		c.Err = j.ConvertFile(ctx, c.In, c.Out)
		if c.Err != nil {
			j.logger.Warn("Convert failed", "file", in, "error", c.Err)
		} else {
			j.logger.Info("Converted", "file", in, "out", c.Out)
		}
		return c
	}
	return stream.Concurrent(ctx, workers, convert, stream.Slice(ctx, files))
}

// ReadFile reads a GPX file, decompressing it if it ends in .gz.
func ReadFile(name string) ([]byte, error) {
	rc, err := catz.Open(name)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}
