package booking

import (
	"math"
	"time"

	"github.com/AshifurNahid/driving-school-api/internal/httperr"
)

// ParseTimeOfDay accepts "15:04" or "15:04:05".
func ParseTimeOfDay(s string) (time.Time, error) {
	if t, err := time.Parse("15:04:05", s); err == nil {
		return t, nil
	}
	t, err := time.Parse("15:04", s)
	if err != nil {
		return time.Time{}, httperr.ErrBusiness("invalid_time")
	}
	return t, nil
}

// NormalizeTimeOfDay returns the canonical "15:04:05" form.
func NormalizeTimeOfDay(s string) (string, error) {
	t, err := ParseTimeOfDay(s)
	if err != nil {
		return "", err
	}
	return t.Format("15:04:05"), nil
}

// ComputeHours returns (end - start) in hours, rounded to 2 decimal places.
// A 90 minute slot yields 1.5, a 75 minute one 1.25.
func ComputeHours(start, end string) (float64, error) {
	st, err := ParseTimeOfDay(start)
	if err != nil {
		return 0, err
	}
	et, err := ParseTimeOfDay(end)
	if err != nil {
		return 0, err
	}

	d := et.Sub(st)
	if d <= 0 {
		return 0, httperr.ErrBusiness("invalid_time_range")
	}

	return math.Round(d.Hours()*100) / 100, nil
}
