package response

import (
	"time"

	"slot-swapper/internal/domain/slot"
	"slot-swapper/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type SlotResponse struct {
	ID        uuid.UUID `json:"id"`
	OwnerID   uuid.UUID `json:"owner_id"`
	OwnerName string    `json:"owner_name,omitempty"`
	Title     string    `json:"title"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type SlotStatsResponse struct {
	TotalEvents     int            `json:"total_events"`
	StatusBreakdown map[string]int `json:"status_breakdown"`
	UpcomingEvents  int            `json:"upcoming_events"`
}

func FromSlot(s *slot.Slot) SlotResponse {
	return SlotResponse{
		ID:        s.ID(),
		OwnerID:   s.OwnerID(),
		Title:     s.Title(),
		StartTime: s.StartTime(),
		EndTime:   s.EndTime(),
		Status:    s.Status().String(),
		CreatedAt: s.CreatedAt(),
		UpdatedAt: s.UpdatedAt(),
	}
}

func FromSlotViews(views []*queries.SlotView) ([]SlotResponse, error) {
	out := make([]SlotResponse, 0, len(views))
	if err := copier.Copy(&out, views); err != nil {
		return nil, err
	}
	return out, nil
}

func FromSlotStats(s *queries.SlotStats) (SlotStatsResponse, error) {
	var out SlotStatsResponse
	if err := copier.Copy(&out, s); err != nil {
		return SlotStatsResponse{}, err
	}
	return out, nil
}
