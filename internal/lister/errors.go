package lister

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when the target directory does not exist.
	ErrNotFound = errors.New("directory not found")
	// ErrNotDirectory is returned when the target path is not a directory.
	ErrNotDirectory = errors.New("not a directory")
)

// ConfigError reports an unusable target directory.
type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("target %q: %v", e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}
