package shared

import (
	"context"
	"time"

	"slot-swapper/internal/domain/slot"
	"slot-swapper/internal/domain/swap"
	"slot-swapper/internal/domain/user"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within runs fn in a single write transaction. Either every write made
	// through tx is committed or none is.
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

type Tx interface {
	Slots() SlotRepository
	SwapRequests() SwapRequestRepository
	Users() UserRepository
}

type SlotRepository interface {
	Create(ctx context.Context, s *slot.Slot) error
	FindByID(ctx context.Context, id uuid.UUID) (*slot.Slot, error)
	// FindByIDForUpdate loads the slot and holds it until the transaction ends.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*slot.Slot, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*slot.Slot, error)
	// UpdateDetails writes title and time range only while s.OwnerID() still
	// owns the slot and it is not SWAP_PENDING.
	UpdateDetails(ctx context.Context, s *slot.Slot) (bool, error)
	// DeleteUnlocked removes the slot only while ownerID still owns it and it
	// is not SWAP_PENDING.
	DeleteUnlocked(ctx context.Context, id, ownerID uuid.UUID) (bool, error)
	// CompareAndSetStatus sets next only if the current status equals expected.
	CompareAndSetStatus(ctx context.Context, id uuid.UUID, expected, next slot.Status, at time.Time) (bool, error)
	// TransferOwnership sets owner to to only if the current owner equals from.
	TransferOwnership(ctx context.Context, id, from, to uuid.UUID, at time.Time) (bool, error)
}

type SwapRequestRepository interface {
	Create(ctx context.Context, r *swap.Request) error
	// FindByIDForUpdate loads the request and holds it until the transaction ends.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*swap.Request, error)
	// Resolve persists r's terminal state only if the stored row is still PENDING.
	Resolve(ctx context.Context, r *swap.Request) (bool, error)
	ListPendingBySlots(ctx context.Context, slotIDs []uuid.UUID, excludeID uuid.UUID) ([]*swap.Request, error)
	ListPendingCreatedBefore(ctx context.Context, before time.Time, limit int) ([]*swap.Request, error)
}

type UserRepository interface {
	Create(ctx context.Context, u *user.User) error
	FindByEmail(ctx context.Context, email string) (*user.User, error)
}
