package codec

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ivlev/asciimator/internal/animation"
)

// ErrIO marks a failure of the underlying storage. It is never retried.
var ErrIO = errors.New("storage failure")

// FileError records the operation and path of a failed save or load.
type FileError struct {
	Op   string
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// FormatForPath picks the format from the file extension, falling back to
// fallback for unknown extensions.
func FormatForPath(path string, fallback Format) Format {
	if f, ok := formatFromExt(path); ok {
		return f
	}
	return fallback
}

func formatFromExt(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return JSON, true
	case ".yaml", ".yml":
		return YAML, true
	default:
		return "", false
	}
}

// Save writes the full state of a to path in a single write.
func Save(path string, a *animation.Animation, fallback Format) error {
	data, err := Encode(a, FormatForPath(path, fallback))
	if err != nil {
		return &FileError{Op: "save", Path: path, Err: err}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return &FileError{Op: "save", Path: path, Err: fmt.Errorf("%w: %w", ErrIO, err)}
	}
	return nil
}

// Load reads path in a single read and reconstructs the animation. Files
// without a known extension are decoded in the format their content shows,
// so whatever Save wrote under any fallback reads back.
func Load(path string) (*animation.Animation, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &FileError{Op: "load", Path: path, Err: fmt.Errorf("%w: %w", ErrIO, err)}
	}
	format, ok := formatFromExt(path)
	if !ok {
		format = Sniff(data)
	}
	a, err := Decode(data, format)
	if err != nil {
		return nil, &FileError{Op: "load", Path: path, Err: err}
	}
	return a, nil
}
