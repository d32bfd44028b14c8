// Package clock holds the time-of-day value used by attendance check-in/out
// and schedule start/end times.
package clock

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

var ErrInvalidTime = errors.New("invalid time of day")

// TimeOfDay is a wall-clock time with second precision.
type TimeOfDay struct {
	seconds int
}

// New builds a TimeOfDay, rejecting out of range components.
func New(hour, minute, second int) (TimeOfDay, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 || second < 0 || second > 59 {
		return TimeOfDay{}, ErrInvalidTime
	}
	return TimeOfDay{seconds: hour*3600 + minute*60 + second}, nil
}

// Parse accepts "HH:MM" or "HH:MM:SS".
func Parse(raw string) (TimeOfDay, error) {
	parts := strings.Split(strings.TrimSpace(raw), ":")
	switch len(parts) {
	case 2:
		parts = append(parts, "0")
	case 3:
	default:
		return TimeOfDay{}, fmt.Errorf("%w: %q", ErrInvalidTime, raw)
	}

	var nums [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return TimeOfDay{}, fmt.Errorf("%w: %q", ErrInvalidTime, raw)
		}
		nums[i] = n
	}
	t, err := New(nums[0], nums[1], nums[2])
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("%w: %q", ErrInvalidTime, raw)
	}
	return t, nil
}

// ParseHM accepts only "HH:MM".
func ParseHM(raw string) (TimeOfDay, error) {
	if strings.Count(raw, ":") != 1 {
		return TimeOfDay{}, fmt.Errorf("%w: %q", ErrInvalidTime, raw)
	}
	return Parse(raw)
}

func (t TimeOfDay) Hour() int   { return t.seconds / 3600 }
func (t TimeOfDay) Minute() int { return t.seconds % 3600 / 60 }
func (t TimeOfDay) Second() int { return t.seconds % 60 }

// Before reports whether t is strictly earlier than u.
func (t TimeOfDay) Before(u TimeOfDay) bool {
	return t.seconds < u.seconds
}

// String formats as HH:MM, the wire format of every response.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

// Duration returns the offset from midnight.
func (t TimeOfDay) Duration() time.Duration {
	return time.Duration(t.seconds) * time.Second
}

// PgTime converts a nullable time of day to its pgx representation.
func PgTime(t *TimeOfDay) pgtype.Time {
	if t == nil {
		return pgtype.Time{}
	}
	return pgtype.Time{Microseconds: t.Duration().Microseconds(), Valid: true}
}

// FromPgTime converts a scanned TIME column, returning nil for NULL.
func FromPgTime(v pgtype.Time) *TimeOfDay {
	if !v.Valid {
		return nil
	}
	t := TimeOfDay{seconds: int(v.Microseconds / 1_000_000)}
	return &t
}

// Format renders a nullable time of day, returning nil for nil.
func Format(t *TimeOfDay) *string {
	if t == nil {
		return nil
	}
	s := t.String()
	return &s
}
