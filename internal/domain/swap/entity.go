package swap

import (
	"time"

	"slot-swapper/internal/pkg/errs"

	"github.com/google/uuid"
)

// Request is a proposed one-for-one exchange of two slots.
type Request struct {
	id          uuid.UUID
	requesterID uuid.UUID
	responderID uuid.UUID
	mySlotID    uuid.UUID
	theirSlotID uuid.UUID
	status      Status
	reason      Reason
	createdAt   time.Time
	resolvedAt  *time.Time
}

func NewRequest(requesterID, responderID, mySlotID, theirSlotID uuid.UUID, now time.Time) (*Request, error) {
	if requesterID == responderID {
		return nil, errs.ErrSelfSwap
	}
	if mySlotID == theirSlotID {
		return nil, errs.Wrap(errs.ErrInvalidInput, "slots must be distinct")
	}
	id, err := uuid.NewV7()
	if err != nil {
		return nil, errs.Wrap(err, "failed to generate swap request id")
	}
	return &Request{
		id:          id,
		requesterID: requesterID,
		responderID: responderID,
		mySlotID:    mySlotID,
		theirSlotID: theirSlotID,
		status:      StatusPending,
		createdAt:   now,
	}, nil
}

func Reconstruct(id, requesterID, responderID, mySlotID, theirSlotID uuid.UUID, status Status, reason Reason, createdAt time.Time, resolvedAt *time.Time) *Request {
	return &Request{
		id:          id,
		requesterID: requesterID,
		responderID: responderID,
		mySlotID:    mySlotID,
		theirSlotID: theirSlotID,
		status:      status,
		reason:      reason,
		createdAt:   createdAt,
		resolvedAt:  resolvedAt,
	}
}

func (r *Request) ID() uuid.UUID          { return r.id }
func (r *Request) RequesterID() uuid.UUID { return r.requesterID }
func (r *Request) ResponderID() uuid.UUID { return r.responderID }
func (r *Request) MySlotID() uuid.UUID    { return r.mySlotID }
func (r *Request) TheirSlotID() uuid.UUID { return r.theirSlotID }
func (r *Request) Status() Status         { return r.status }
func (r *Request) Reason() Reason         { return r.reason }
func (r *Request) CreatedAt() time.Time   { return r.createdAt }
func (r *Request) ResolvedAt() *time.Time { return r.resolvedAt }
func (r *Request) IsPending() bool        { return r.status == StatusPending }

// SlotIDs returns both referenced slots, my slot first.
func (r *Request) SlotIDs() [2]uuid.UUID {
	return [2]uuid.UUID{r.mySlotID, r.theirSlotID}
}

// References reports whether slotID is one of the two exchanged slots.
func (r *Request) References(slotID uuid.UUID) bool {
	return r.mySlotID == slotID || r.theirSlotID == slotID
}

// Resolve moves a pending request to the terminal status implied by reason.
func (r *Request) Resolve(reason Reason, at time.Time) error {
	if !r.IsPending() {
		return errs.ErrAlreadyResolved
	}
	r.status = reason.Outcome()
	r.reason = reason
	r.resolvedAt = &at
	return nil
}
