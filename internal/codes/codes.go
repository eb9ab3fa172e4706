package codes

import "errors"

// Process exit codes
const (
	Success            = 0
	GeneralFailure     = 1
	ConfigError        = 2
	AssembleFailed     = 3
	RenameFailed       = 4
	PropertyReadFailed = 5
	HistoryFailed      = 6
)

// ErrorCodes maps andromeda exit codes to their descriptions
var ErrorCodes = map[int]string{
	Success:            "Success",
	GeneralFailure:     "General failure",
	ConfigError:        "Invalid configuration or project file",
	AssembleFailed:     "Assemble task failed",
	RenameFailed:       "APK rename failed",
	PropertyReadFailed: "Property could not be read",
	HistoryFailed:      "Rename history unavailable",
}

// IsSuccess returns true if the exit code indicates success
func IsSuccess(code int) bool {
	return code == Success
}

// GetErrorMessage returns the error message for a given exit code, or a generic message if unknown
func GetErrorMessage(code int) string {
	if msg, ok := ErrorCodes[code]; ok {
		return msg
	}

	return "Unknown error"
}

// ExitError carries the exit code the process should end with
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// Wrap attaches an exit code to err. A nil err stays nil. An error that
// already carries a code keeps it.
func Wrap(code int, err error) error {
	if err == nil {
		return nil
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return err
	}

	return &ExitError{Code: code, Err: err}
}

// ExitCode returns the code attached to err, GeneralFailure for any other
// error and Success for nil
func ExitCode(err error) int {
	if err == nil {
		return Success
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	return GeneralFailure
}
