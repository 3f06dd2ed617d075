package stitch

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Reader populates a pattern from a stream. Readers call only the public
// append, thread and metadata operations of Pattern. A truncated or corrupt
// stream ends the read early with the records decoded so far; the pattern
// stays structurally valid.
type Reader interface {
	Read(r io.Reader, p *Pattern) error
}

// Writer serializes a pattern that has already been normalized against the
// writer's Capabilities.
type Writer interface {
	Write(w io.Writer, p *Pattern) error
	Capabilities() Capabilities
}

// Capabilities is what a writer declares about its target.
type Capabilities struct {
	// Settings are the constraints normalization enforces before Write.
	Settings Settings

	// Normalize reports whether WritePattern should normalize at all.
	// Writers that store the model verbatim leave it false.
	Normalize bool

	// Text reports whether the format is a text format.
	Text bool
}

// ReadPattern reads a new pattern from r with rd.
func ReadPattern(r io.Reader, rd Reader) (*Pattern, error) {
	p := NewPattern()
	if err := rd.Read(r, p); err != nil {
		return p, err
	}
	return p, nil
}

// WritePattern normalizes p against the writer's capabilities with opts
// layered on top, then writes the result. p is not modified.
func WritePattern(w io.Writer, p *Pattern, wr Writer, opts ...Option) error {
	caps := wr.Capabilities()
	out := p
	if caps.Normalize {
		var err error
		out, err = Normalize(p, caps.Settings.With(opts...))
		if err != nil {
			return err
		}
	}
	return wr.Write(w, out)
}

// ReadFile reads the pattern stored at path with the format registered for
// its extension.
func ReadFile(path string) (*Pattern, error) {
	f, err := LookupFormat(filepath.Ext(path))
	if err != nil {
		return nil, err
	}
	if f.Reader == nil {
		return nil, fmt.Errorf("%w: %s cannot read", ErrNotSupported, f.Name)
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	p, err := ReadPattern(file, f.Reader)
	if err != nil {
		return nil, fmt.Errorf("stitch: read %s: %w", path, err)
	}
	return p, nil
}

// WriteFile writes p to path with the format registered for its extension.
func WriteFile(path string, p *Pattern, opts ...Option) (err error) {
	f, err := LookupFormat(filepath.Ext(path))
	if err != nil {
		return err
	}
	if f.Writer == nil {
		return fmt.Errorf("%w: %s cannot write", ErrNotSupported, f.Name)
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := file.Close(); err == nil {
			err = cerr
		}
	}()
	if err := WritePattern(file, p, f.Writer, opts...); err != nil {
		return fmt.Errorf("stitch: write %s: %w", path, err)
	}
	return nil
}
