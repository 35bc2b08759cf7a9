package timestamp

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidTimestamp is returned (wrapped) for every input that cannot be parsed into a point in time.
var ErrInvalidTimestamp = errors.New("invalid timestamp")

type inputLayout struct {
	layout string

	// absolute layouts carry their own offset (or are UTC by definition, like date-only inputs)
	absolute bool
}

// Inputs are tried in this order. Fractional seconds are accepted after the seconds field even
// though the layouts do not mention them, time.Parse handles that for us.
var inputLayouts = []inputLayout{
	{"2006-01-02T15:04:05Z07:00", true},
	{"2006-01-02T15:04Z07:00", true},
	{"2006-01-02 15:04:05Z07:00", true},
	{"2006-01-02 15:04Z07:00", true},
	{"2006-01-02T15:04:05", false},
	{"2006-01-02T15:04", false},
	{"2006-01-02 15:04:05", false},
	{"2006-01-02 15:04", false},
	{"2006-01-02", true},
}

// Parse parses an ISO 8601 timestamp and returns it in the given location.
//
// Timestamps carrying an offset (or "Z") are converted into loc. Timestamps without an offset are
// read as wall clock time in loc. Date-only timestamps are UTC midnight, converted into loc. A nil
// loc means UTC.
func Parse(ts string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}

	value := strings.TrimSpace(ts)
	if value == "" {
		return time.Time{}, fmt.Errorf("%w: empty input", ErrInvalidTimestamp)
	}

	for _, l := range inputLayouts {
		var (
			t   time.Time
			err error
		)

		if l.absolute {
			t, err = time.Parse(l.layout, value)
		} else {
			t, err = time.ParseInLocation(l.layout, value, loc)
		}

		if err == nil {
			return t.In(loc), nil
		}
	}

	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimestamp, ts)
}
