package dataset

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyTable indicates a source file with a header but no rows.
var ErrEmptyTable = errors.New("dataset has no rows")

// LoadError indicates the source file is missing or could not be parsed.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	if e == nil {
		return "load failed"
	}
	return fmt.Sprintf("load %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// SchemaError lists required columns absent from the source file.
type SchemaError struct {
	Path    string
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s: missing required columns: %s", e.Path, strings.Join(e.Missing, ", "))
}
