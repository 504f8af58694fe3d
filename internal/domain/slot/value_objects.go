package slot

import (
	"strings"
	"time"
	"unicode/utf8"

	"slot-swapper/internal/pkg/errs"
)

const (
	MinDuration    = 15 * time.Minute
	MaxDuration    = 24 * time.Hour
	MaxTitleLength = 255
)

type TimeRange struct {
	start time.Time
	end   time.Time
}

func NewTimeRange(start, end time.Time) (TimeRange, error) {
	if start.IsZero() || end.IsZero() {
		return TimeRange{}, errs.Wrap(errs.ErrInvalidTimeRange, "start and end are required")
	}
	if !start.Before(end) {
		return TimeRange{}, errs.Wrap(errs.ErrInvalidTimeRange, "start must be before end")
	}
	d := end.Sub(start)
	if d < MinDuration {
		return TimeRange{}, errs.Wrap(errs.ErrInvalidTimeRange, "slot must be at least 15 minutes")
	}
	if d > MaxDuration {
		return TimeRange{}, errs.Wrap(errs.ErrInvalidTimeRange, "slot cannot exceed 24 hours")
	}
	return TimeRange{start: start, end: end}, nil
}

func (r TimeRange) Start() time.Time        { return r.start }
func (r TimeRange) End() time.Time          { return r.end }
func (r TimeRange) Duration() time.Duration { return r.end.Sub(r.start) }

// Overlaps treats ranges as half-open, so back-to-back slots do not collide.
func (r TimeRange) Overlaps(other TimeRange) bool {
	return r.start.Before(other.end) && other.start.Before(r.end)
}

type Title struct {
	value string
}

func NewTitle(s string) (Title, error) {
	t := strings.TrimSpace(s)
	if t == "" {
		return Title{}, errs.Wrap(errs.ErrInvalidInput, "title is required")
	}
	if utf8.RuneCountInString(t) > MaxTitleLength {
		return Title{}, errs.Wrap(errs.ErrInvalidInput, "title exceeds maximum length")
	}
	return Title{value: t}, nil
}

func (t Title) String() string { return t.value }
