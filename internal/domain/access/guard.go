package access

import (
	"slot-swapper/internal/pkg/errs"

	"github.com/google/uuid"
)

// Owned is anything with a single owning user.
type Owned interface {
	OwnerID() uuid.UUID
}

// AuthorizeOwner fails with an authorization error unless actorID owns entity.
func AuthorizeOwner(entity Owned, actorID uuid.UUID) error {
	if entity == nil || entity.OwnerID() != actorID {
		return errs.ErrNotOwner
	}
	return nil
}

// AuthorizeNotOwner fails when actorID owns entity; used to block self-swaps.
func AuthorizeNotOwner(entity Owned, actorID uuid.UUID) error {
	if entity != nil && entity.OwnerID() == actorID {
		return errs.ErrSelfSwap
	}
	return nil
}
