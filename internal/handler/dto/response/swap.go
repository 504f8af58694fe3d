package response

import (
	"time"

	"slot-swapper/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type PartyResponse struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

type SlotSummaryResponse struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Status    string    `json:"status"`
}

type SwapRequestResponse struct {
	ID               uuid.UUID           `json:"id"`
	Requester        PartyResponse       `json:"requester"`
	Responder        PartyResponse       `json:"responder"`
	MySlot           SlotSummaryResponse `json:"my_slot"`
	TheirSlot        SlotSummaryResponse `json:"their_slot"`
	Status           string              `json:"status"`
	ResolutionReason *string             `json:"resolution_reason,omitempty"`
	CreatedAt        time.Time           `json:"created_at"`
	ResolvedAt       *time.Time          `json:"resolved_at,omitempty"`
}

type SwapRequestListsResponse struct {
	Incoming []SwapRequestResponse `json:"incoming"`
	Outgoing []SwapRequestResponse `json:"outgoing"`
}

func FromSwapRequestView(v *queries.SwapRequestView) (SwapRequestResponse, error) {
	var out SwapRequestResponse
	if err := copier.Copy(&out, v); err != nil {
		return SwapRequestResponse{}, err
	}
	return out, nil
}

func FromSwapRequestLists(l *queries.SwapRequestLists) (SwapRequestListsResponse, error) {
	out := SwapRequestListsResponse{
		Incoming: make([]SwapRequestResponse, 0, len(l.Incoming)),
		Outgoing: make([]SwapRequestResponse, 0, len(l.Outgoing)),
	}
	if err := copier.Copy(&out.Incoming, l.Incoming); err != nil {
		return SwapRequestListsResponse{}, err
	}
	if err := copier.Copy(&out.Outgoing, l.Outgoing); err != nil {
		return SwapRequestListsResponse{}, err
	}
	return out, nil
}
