package loader

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// TOMLLoader decodes TOML files onto a configuration value.
type TOMLLoader struct {
	fs   FileSystem
	path string
}

// NewTOMLLoader creates a new TOML loader for the given path.
func NewTOMLLoader(path string) *TOMLLoader {
	return &TOMLLoader{
		fs:   DefaultFS(),
		path: path,
	}
}

// NewTOMLLoaderWithFS creates a TOML loader with a custom file system.
func NewTOMLLoaderWithFS(fsys FileSystem, path string) *TOMLLoader {
	return &TOMLLoader{
		fs:   fsys,
		path: path,
	}
}

// Path returns the configured path.
func (l *TOMLLoader) Path() string {
	return l.path
}

// LoadInto decodes the configured file onto v. It reports false, with no
// error, if the file doesn't exist.
func (l *TOMLLoader) LoadInto(v any) (bool, error) {
	data, err := l.fs.ReadFile(l.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("reading config file %s: %w", l.path, err)
	}

	return true, decode(l.path, data, v)
}

// LoadFromReader decodes TOML from r onto v.
func (l *TOMLLoader) LoadFromReader(r io.Reader, v any) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}

	return decode("<reader>", data, v)
}

// decode rejects keys that have no matching field.
func decode(source string, data []byte, v any) error {
	dec := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		perr := &ParseError{
			Path:    source,
			Message: err.Error(),
			Err:     err,
		}

		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			perr.Line, perr.Column = derr.Position()
		}
		var serr *toml.StrictMissingError
		if errors.As(err, &serr) && len(serr.Errors) > 0 {
			first := &serr.Errors[0]
			perr.Message = "unknown key " + strings.Join(first.Key(), ".")
			perr.Line, perr.Column = first.Position()
		}
		return perr
	}
	return nil
}

// Encode writes v as TOML.
func Encode(w io.Writer, v any) error {
	enc := toml.NewEncoder(w)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return nil
}

// ParseError represents an error while parsing a configuration file.
type ParseError struct {
	Path    string
	Line    int
	Column  int
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Line > 0 && e.Column > 0 {
		return fmt.Sprintf("parse error in %s at line %d, column %d: %s", e.Path, e.Line, e.Column, e.Message)
	}
	if e.Line > 0 {
		return fmt.Sprintf("parse error in %s at line %d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error in %s: %s", e.Path, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
