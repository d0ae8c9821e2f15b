package report

import (
	"errors"
	"fmt"
	"io/fs"
)

// Kind classifies a write failure.
type Kind int

const (
	// KindSerialization is a failure to build or encode the workbook.
	KindSerialization Kind = iota
	// KindPermission is a failure caused by missing access rights.
	KindPermission
	// KindDisk is any other I/O failure while writing the file.
	KindDisk
)

func (k Kind) String() string {
	switch k {
	case KindPermission:
		return "permission denied"
	case KindDisk:
		return "disk error"
	default:
		return "serialization error"
	}
}

// WriteError reports a failure to produce the output workbook.
type WriteError struct {
	Kind Kind
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("writing report %q (%s): %v", e.Path, e.Kind, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// classify wraps an I/O error into a WriteError with a permission or disk kind.
func classify(path string, err error) *WriteError {
	kind := KindDisk
	if errors.Is(err, fs.ErrPermission) {
		kind = KindPermission
	}

	return &WriteError{Kind: kind, Path: path, Err: err}
}

// serialization wraps a workbook construction error.
func serialization(path string, err error) *WriteError {
	return &WriteError{Kind: KindSerialization, Path: path, Err: err}
}
