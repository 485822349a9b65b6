// Package errors provides the error types shared by the f3os packages.
// Every user-facing failure carries a Kind so the dispatcher can map it to a
// localized message instead of surfacing the raw error.
package errors

import (
	"errors"
	"fmt"
)

// Standard errors package errors that we re-export for convenience
var (
	// Unwrap unwraps an error to access the underlying error
	Unwrap = errors.Unwrap
	// Is reports whether any error in err's chain matches target
	Is = errors.Is
	// As finds the first error in err's chain that matches target
	As = errors.As
)

// ErrorKind represents the kind of error
type ErrorKind int

// Error kinds
const (
	Unknown ErrorKind = iota
	// Navigator error kinds
	FileNotFound
	FileAccessDenied
	InvalidPath
	DirectoryCorrupted
	// Config error kinds
	InvalidConfig
	InvalidColor
	ReadOnlySetting
	// Command error kinds
	UnknownCommand
)

var kindNames = map[ErrorKind]string{
	Unknown:            "unknown",
	FileNotFound:       "file not found",
	FileAccessDenied:   "access denied",
	InvalidPath:        "invalid path",
	DirectoryCorrupted: "directory corrupted",
	InvalidConfig:      "invalid config",
	InvalidColor:       "invalid color",
	ReadOnlySetting:    "read-only setting",
	UnknownCommand:     "unknown command",
}

// String returns a short human readable name for the kind
func (k ErrorKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Common error constants for frequently occurring errors
var (
	ErrFileNotFound       = NewFileError("file not found", "", FileNotFound, nil)
	ErrAccessDenied       = NewFileError("access denied", "", FileAccessDenied, nil)
	ErrInvalidPath        = NewFileError("invalid path", "", InvalidPath, nil)
	ErrDirectoryCorrupted = NewFileError("directory corrupted", "", DirectoryCorrupted, nil)
	ErrInvalidConfig      = NewConfigError("invalid configuration", "", InvalidConfig, nil)
)

// ApplicationError is the base error type for all application errors
type ApplicationError struct {
	msg  string
	err  error
	kind ErrorKind
}

// Error returns the error message
func (e *ApplicationError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.err)
	}
	return e.msg
}

// Unwrap returns the wrapped error
func (e *ApplicationError) Unwrap() error {
	return e.err
}

// Kind returns the kind of error
func (e *ApplicationError) Kind() ErrorKind {
	return e.kind
}

// Is matches any application error of the same kind, so the sentinel values
// above work with errors.Is regardless of path or param.
func (e *ApplicationError) Is(target error) bool {
	k, ok := target.(interface{ Kind() ErrorKind })
	return ok && e.kind != Unknown && k.Kind() == e.kind
}

// FileError represents errors raised while navigating the sandboxed tree
type FileError struct {
	ApplicationError
	path string
}

// NewFileError creates a new file error
func NewFileError(msg string, path string, kind ErrorKind, err error) *FileError {
	return &FileError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: kind,
		},
		path: path,
	}
}

// Error returns the file error message
func (e *FileError) Error() string {
	if e.path != "" {
		if e.err != nil {
			return fmt.Sprintf("%s: %s: %v", e.msg, e.path, e.err)
		}
		return fmt.Sprintf("%s: %s", e.msg, e.path)
	}
	return e.ApplicationError.Error()
}

// Path returns the file path associated with the error
func (e *FileError) Path() string {
	return e.path
}

// ConfigError represents errors related to configuration
type ConfigError struct {
	ApplicationError
	param string
}

// NewConfigError creates a new configuration error
func NewConfigError(msg string, param string, kind ErrorKind, err error) *ConfigError {
	return &ConfigError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: kind,
		},
		param: param,
	}
}

// Error returns the config error message
func (e *ConfigError) Error() string {
	if e.param != "" {
		if e.err != nil {
			return fmt.Sprintf("%s: %s: %v", e.msg, e.param, e.err)
		}
		return fmt.Sprintf("%s: %s", e.msg, e.param)
	}
	return e.ApplicationError.Error()
}

// Param returns the configuration parameter associated with the error
func (e *ConfigError) Param() string {
	return e.param
}

// CommandError represents a verb the dispatcher could not resolve
type CommandError struct {
	ApplicationError
	verb string
}

// NewCommandError creates a new command error
func NewCommandError(msg string, verb string, kind ErrorKind) *CommandError {
	return &CommandError{
		ApplicationError: ApplicationError{
			msg:  msg,
			kind: kind,
		},
		verb: verb,
	}
}

// Error returns the command error message
func (e *CommandError) Error() string {
	if e.verb != "" {
		return fmt.Sprintf("%s: %s", e.msg, e.verb)
	}
	return e.ApplicationError.Error()
}

// Verb returns the verb that failed to resolve
func (e *CommandError) Verb() string {
	return e.verb
}

// New creates a new error with a message
func New(msg string) error {
	return &ApplicationError{
		msg:  msg,
		kind: Unknown,
	}
}

// Newf creates a new error with a formatted message
func Newf(format string, args ...interface{}) error {
	return &ApplicationError{
		msg:  fmt.Sprintf(format, args...),
		kind: Unknown,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return &ApplicationError{
		msg:  msg,
		err:  err,
		kind: Unknown,
	}
}

// Wrapf wraps an existing error with additional formatted context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &ApplicationError{
		msg:  fmt.Sprintf(format, args...),
		err:  err,
		kind: Unknown,
	}
}

// KindOf returns the kind of the first kinded error in err's chain
func KindOf(err error) ErrorKind {
	for err != nil {
		if k, ok := err.(interface{ Kind() ErrorKind }); ok && k.Kind() != Unknown {
			return k.Kind()
		}
		err = errors.Unwrap(err)
	}
	return Unknown
}
