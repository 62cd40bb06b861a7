// internal/interchange/errors.go
package interchange

import "errors"

// FormatError reports a parsed file that does not match the expected shape.
// It is localized to the affected unit and never aborts sibling units.
type FormatError struct {
	Msg string
}

func (e *FormatError) Error() string {
	return e.Msg
}

func IsFormatError(err error) bool {
	var fe *FormatError
	return errors.As(err, &fe)
}

// ErrNoSelection is returned when an export or restore is requested with no
// collections selected.
var ErrNoSelection = errors.New("no collections selected")
