package indicator

import (
	"fmt"
	"strings"
)

// MissingColumnsError reports source columns absent from the input frame.
// It lists every missing column so the caller can fix them all at once.
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("frame is missing required columns: %s", strings.Join(e.Columns, ", "))
}

// ArityError reports a multi-valued parameter tuple of the wrong length
// (MACD and STOCH take exactly 3 values, BBANDS exactly 4).
type ArityError struct {
	Indicator string
	Want      int
	Got       int
}

func (e *ArityError) Error() string {
	return fmt.Sprintf("%s: expected %d parameters, got %d", e.Indicator, e.Want, e.Got)
}

// UnknownIndicatorError reports names with no registered computator.
type UnknownIndicatorError struct {
	Names []string
}

func (e *UnknownIndicatorError) Error() string {
	return fmt.Sprintf("unknown indicators: %s", strings.Join(e.Names, ", "))
}
