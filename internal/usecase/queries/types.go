package queries

import (
	"time"

	"github.com/google/uuid"
)

// SlotView represents read-optimized slot data
type SlotView struct {
	ID        uuid.UUID `json:"id"`
	OwnerID   uuid.UUID `json:"owner_id"`
	OwnerName string    `json:"owner_name"`
	Title     string    `json:"title"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type SlotSummary struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Status    string    `json:"status"`
}

type UserSummary struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

// SwapRequestView is a request joined with both parties and both slots.
// MySlot is always the requester's offered slot.
type SwapRequestView struct {
	ID               uuid.UUID   `json:"id"`
	Requester        UserSummary `json:"requester"`
	Responder        UserSummary `json:"responder"`
	MySlot           SlotSummary `json:"my_slot"`
	TheirSlot        SlotSummary `json:"their_slot"`
	Status           string      `json:"status"`
	ResolutionReason *string     `json:"resolution_reason,omitempty"`
	CreatedAt        time.Time   `json:"created_at"`
	ResolvedAt       *time.Time  `json:"resolved_at,omitempty"`
}

// SwapRequestLists splits a user's requests by direction. Incoming items are
// re-oriented so MySlot is the viewer's own slot.
type SwapRequestLists struct {
	Incoming []*SwapRequestView `json:"incoming"`
	Outgoing []*SwapRequestView `json:"outgoing"`
}

type SlotStats struct {
	TotalEvents     int            `json:"total_events"`
	StatusBreakdown map[string]int `json:"status_breakdown"`
	UpcomingEvents  int            `json:"upcoming_events"`
}

// UserView represents read-optimized user data
type UserView struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}
