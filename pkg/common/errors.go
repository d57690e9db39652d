package common

import (
	"errors"
	"fmt"
)

// ErrUploadsFailed signals that one or more uploads failed after the run
// completed. It is not fatal; the CLI maps it to a distinct exit code.
var ErrUploadsFailed = errors.New("one or more uploads failed")

// ConfigError reports a configuration file that is missing, unreadable or
// not valid INI.
type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("configuration error: %s: %v", e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

func NewConfigError(path string, err error) error {
	return &ConfigError{Path: path, Err: err}
}

// MissingFieldError reports a required key absent from a provider section.
type MissingFieldError struct {
	Section string
	Field   string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("configuration error: missing required key %q in section [%s]", e.Field, e.Section)
}

func NewMissingFieldError(section, field string) error {
	return &MissingFieldError{Section: section, Field: field}
}

// DirectoryError reports a source directory that does not exist or is not
// a directory.
type DirectoryError struct {
	Path string
	Err  error
}

func (e *DirectoryError) Error() string {
	return fmt.Sprintf("directory error: %s: %v", e.Path, e.Err)
}

func (e *DirectoryError) Unwrap() error {
	return e.Err
}

func NewDirectoryError(path string, err error) error {
	return &DirectoryError{Path: path, Err: err}
}

// IsFatal reports whether err aborts the run before any upload is attempted.
func IsFatal(err error) bool {
	var cfgErr *ConfigError
	var fieldErr *MissingFieldError
	var dirErr *DirectoryError

	return errors.As(err, &cfgErr) || errors.As(err, &fieldErr) || errors.As(err, &dirErr)
}
