package slot

import (
	"fmt"
	"time"

	"slot-swapper/internal/pkg/errs"

	"github.com/google/uuid"
)

type Conflict struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

// OverlapError lists the owner's slots that collide with a proposed range.
type OverlapError struct {
	Conflicts []Conflict
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("slot overlaps %d existing slot(s)", len(e.Conflicts))
}

func (e *OverlapError) Unwrap() error { return errs.ErrSlotOverlap }

func (e *OverlapError) Detail() any {
	return map[string]any{
		"message":   "Time slot overlaps with existing events",
		"conflicts": e.Conflicts,
	}
}

// CheckOverlap fails when any of existing overlaps tr, ignoring the slot with id skip.
func CheckOverlap(tr TimeRange, existing []*Slot, skip uuid.UUID) error {
	var conflicts []Conflict
	for _, s := range existing {
		if s.id == skip {
			continue
		}
		if tr.Overlaps(s.timeRange) {
			conflicts = append(conflicts, Conflict{
				ID:        s.id,
				Title:     s.Title(),
				StartTime: s.StartTime(),
				EndTime:   s.EndTime(),
			})
		}
	}
	if len(conflicts) > 0 {
		return &OverlapError{Conflicts: conflicts}
	}
	return nil
}
