package builder

import (
	"time"

	"slot-swapper/internal/domain/slot"
	"slot-swapper/internal/usecase/commands"

	"github.com/google/uuid"
)

type SlotBuilder struct {
	OwnerID   uuid.UUID
	Title     string
	StartTime time.Time
	EndTime   time.Time
	Status    *string
	Now       time.Time
}

func NewSlotBuilder() *SlotBuilder {
	start := time.Date(2030, 1, 7, 9, 0, 0, 0, time.UTC)
	return &SlotBuilder{
		OwnerID:   uuid.New(),
		Title:     "Team standup",
		StartTime: start,
		EndTime:   start.Add(time.Hour),
		Now:       time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (b *SlotBuilder) With(mutate func(*SlotBuilder)) *SlotBuilder {
	mutate(b)
	return b
}

func (b *SlotBuilder) BuildDomain() (*slot.Slot, error) {
	return slot.NewSlot(b.OwnerID, b.Title, b.StartTime, b.EndTime, b.Now)
}

func (b *SlotBuilder) BuildCreateInput() commands.CreateSlotInput {
	return commands.CreateSlotInput{
		Title:     b.Title,
		StartTime: b.StartTime,
		EndTime:   b.EndTime,
		Status:    b.Status,
	}
}

// Fluent builder methods
func (b *SlotBuilder) WithOwner(id uuid.UUID) *SlotBuilder {
	b.OwnerID = id
	return b
}

func (b *SlotBuilder) WithTitle(title string) *SlotBuilder {
	b.Title = title
	return b
}

// WithWindow sets the start time and keeps the slot d long.
func (b *SlotBuilder) WithWindow(start time.Time, d time.Duration) *SlotBuilder {
	b.StartTime = start
	b.EndTime = start.Add(d)
	return b
}

func (b *SlotBuilder) AsSwappable() *SlotBuilder {
	s := slot.StatusSwappable.String()
	b.Status = &s
	return b
}
