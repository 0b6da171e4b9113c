package textformat

import (
	"errors"
	"fmt"
)

// ErrFormat marks input that does not follow the text layout.
var ErrFormat = errors.New("malformed metagraph text")

// LineError reports a layout problem at a significant line. Line is 1-based
// and counts only non-blank, non-comment lines; 0 means the whole input.
type LineError struct {
	Line int
	Msg  string
}

func (e *LineError) Error() string {
	if e.Line == 0 {
		return e.Msg
	}
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

// Unwrap makes every LineError match ErrFormat.
func (e *LineError) Unwrap() error { return ErrFormat }
