package errors

import (
	"errors"
	"fmt"
)

// DirectoryNotFoundError reports a missing or unreadable root directory.
// It is a fatal precondition: no writes happen after it is raised.
type DirectoryNotFoundError struct {
	Path string
	Err  error
}

func (e *DirectoryNotFoundError) Error() string {
	return fmt.Sprintf("directory %q not found", e.Path)
}

func (e *DirectoryNotFoundError) Unwrap() error { return e.Err }

// NewDirectoryNotFound creates a DirectoryNotFoundError for the given path.
func NewDirectoryNotFound(path string, err error) error {
	return &DirectoryNotFoundError{Path: path, Err: err}
}

// FileNotFoundError reports a required file that does not exist or cannot be read.
type FileNotFoundError struct {
	Path string
	Err  error
}

func (e *FileNotFoundError) Error() string {
	return fmt.Sprintf("file %q not found", e.Path)
}

func (e *FileNotFoundError) Unwrap() error { return e.Err }

// NewFileNotFound creates a FileNotFoundError for the given path.
func NewFileNotFound(path string, err error) error {
	return &FileNotFoundError{Path: path, Err: err}
}

// InvalidConfigurationError reports a caller contract violation, e.g. merging
// baselines built for different impact levels.
type InvalidConfigurationError struct {
	Reason string
}

func (e *InvalidConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s", e.Reason)
}

// NewInvalidConfiguration creates an InvalidConfigurationError with the given reason.
func NewInvalidConfiguration(format string, args ...interface{}) error {
	return &InvalidConfigurationError{Reason: fmt.Sprintf(format, args...)}
}

// MissingArgumentError reports a required CLI argument or flag that was not provided.
type MissingArgumentError struct {
	Name string
}

func (e *MissingArgumentError) Error() string {
	return fmt.Sprintf("the %q flag must be specified", e.Name)
}

// NewMissingArgument creates a MissingArgumentError for the given flag name.
func NewMissingArgument(name string) error {
	return &MissingArgumentError{Name: name}
}

// CommandError wraps an error that occurred during command execution,
// carrying the process exit code the command should terminate with.
type CommandError struct {
	ExitCode int
	Err      error
}

func (e *CommandError) Error() string { return e.Err.Error() }

func (e *CommandError) Unwrap() error { return e.Err }

// NewCommandError creates a new CommandError with the given exit code.
func NewCommandError(err error, code int) *CommandError {
	return &CommandError{ExitCode: code, Err: err}
}

// ExitCode extracts the exit code from an error chain. It returns 0 for nil,
// the embedded code for a CommandError, and 1 for anything else.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var cmdErr *CommandError
	if errors.As(err, &cmdErr) {
		return cmdErr.ExitCode
	}
	return 1
}
