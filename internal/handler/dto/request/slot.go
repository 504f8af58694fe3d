package request

import (
	"time"

	"slot-swapper/internal/usecase/commands"
	"slot-swapper/internal/usecase/queries"
)

type CreateSlotRequest struct {
	Title     string    `json:"title" binding:"required"`
	StartTime time.Time `json:"start_time" binding:"required"`
	EndTime   time.Time `json:"end_time" binding:"required"`
	Status    *string   `json:"status,omitempty"`
}

func (r CreateSlotRequest) ToInput() commands.CreateSlotInput {
	return commands.CreateSlotInput{
		Title:     r.Title,
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
		Status:    r.Status,
	}
}

// UpdateSlotRequest is a partial update; omitted fields are left unchanged.
type UpdateSlotRequest struct {
	Title     *string    `json:"title,omitempty"`
	StartTime *time.Time `json:"start_time,omitempty"`
	EndTime   *time.Time `json:"end_time,omitempty"`
	Status    *string    `json:"status,omitempty"`
}

func (r UpdateSlotRequest) ToInput() commands.UpdateSlotInput {
	return commands.UpdateSlotInput{
		Title:     r.Title,
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
		Status:    r.Status,
	}
}

type ListSlotsQuery struct {
	Status    string     `form:"status"`
	StartDate *time.Time `form:"start_date" time_format:"2006-01-02T15:04:05Z07:00"`
	EndDate   *time.Time `form:"end_date" time_format:"2006-01-02T15:04:05Z07:00"`
	Search    string     `form:"search"`
}

func (q ListSlotsQuery) ToFilter() queries.SlotFilter {
	return queries.SlotFilter{
		Status:    q.Status,
		StartFrom: q.StartDate,
		EndBefore: q.EndDate,
		Search:    q.Search,
	}
}
