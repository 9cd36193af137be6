package ledger

import (
	"errors"

	"github.com/Tiliavir/work-time-tracker/internal/timecalc"
)

var (
	// ErrInvalidRange is returned when an end time is not after its start time.
	ErrInvalidRange = timecalc.ErrInvalidRange
	// ErrDuplicateClockIn is returned when today already has a clock-in.
	ErrDuplicateClockIn = errors.New("already clocked in today")
	// ErrDuplicateClockOut is returned when today already has a clock-out.
	ErrDuplicateClockOut = errors.New("already clocked out today")
	// ErrNotClockedIn is returned on clock-out without a clock-in.
	ErrNotClockedIn = errors.New("not clocked in yet today")
)

// ImportParseError reports an import file that could not be turned into
// records. The ledger is left unchanged when it is returned.
type ImportParseError struct {
	Err error
}

func (e *ImportParseError) Error() string {
	return "import failed: " + e.Err.Error()
}

func (e *ImportParseError) Unwrap() error { return e.Err }
