package report

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// DefaultSpan is the range shown when the filter is left empty: the last 7
// days, today included.
const DefaultSpan = 7

var ErrInvalidRange = errors.New("invalid date range")

type DateRange struct {
	From time.Time
	To   time.Time
}

func (r DateRange) FromString() string { return r.From.Format(dateLayout) }
func (r DateRange) ToString() string   { return r.To.Format(dateLayout) }

// ParseDateRange reads YYYY-MM-DD bounds. A missing "to" is today, a missing
// "from" is DefaultSpan-1 days before "to".
func ParseDateRange(from, to string, now time.Time) (DateRange, error) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	r := DateRange{To: today}

	if s := strings.TrimSpace(to); s != "" {
		t, err := time.Parse(dateLayout, s)
		if err != nil {
			return DateRange{}, fmt.Errorf("%w: to %q", ErrInvalidRange, to)
		}
		r.To = t
	}
	r.From = r.To.AddDate(0, 0, -(DefaultSpan - 1))
	if s := strings.TrimSpace(from); s != "" {
		t, err := time.Parse(dateLayout, s)
		if err != nil {
			return DateRange{}, fmt.Errorf("%w: from %q", ErrInvalidRange, from)
		}
		r.From = t
	}

	if r.From.After(r.To) {
		return DateRange{}, fmt.Errorf("%w: %s is after %s", ErrInvalidRange, r.FromString(), r.ToString())
	}
	return r, nil
}

// Filename names an export, e.g. tracker_2026-10-01_2026-10-07.xlsx.
func (r DateRange) Filename(prefix string) string {
	return fmt.Sprintf("%s_%s_%s.xlsx", prefix, r.FromString(), r.ToString())
}
