//go:build e2e

package e2e

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"slot-swapper/internal/domain/slot"
	"slot-swapper/internal/domain/swap"
	"slot-swapper/internal/infra/uow"
	"slot-swapper/internal/pkg/clock"
	"slot-swapper/internal/pkg/errs"
	"slot-swapper/internal/testutil/dbtest"
	"slot-swapper/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

// CoordinatorSuite drives the swap commands against Postgres directly, for
// states and timings the HTTP surface cannot reach.
type CoordinatorSuite struct {
	SharedSuite
	clock *clock.MockClock
	slots commands.SlotCommands
	swaps commands.SwapCommands
	day   int
}

func TestCoordinatorSuite(t *testing.T) {
	suite.Run(t, new(CoordinatorSuite))
}

func (s *CoordinatorSuite) SetupTest() {
	s.SharedSuite.SetupTest()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	unit := uow.NewPostgresUoW(s.pool, logger)
	s.clock = clock.NewMockClock(time.Date(2030, 6, 1, 8, 0, 0, 0, time.UTC))
	s.slots = commands.NewSlotCommands(unit, s.clock)
	s.swaps = commands.NewSwapCommands(unit, s.clock, logger)
	s.day = 0
}

func (s *CoordinatorSuite) offer(owner uuid.UUID) uuid.UUID {
	s.day++
	start := time.Date(2030, 7, 1, 9, 0, 0, 0, time.UTC).AddDate(0, 0, s.day)
	swappable := slot.StatusSwappable.String()
	created, err := s.slots.Create(context.Background(), owner, commands.CreateSlotInput{
		Title:     "Shift",
		StartTime: start,
		EndTime:   start.Add(time.Hour),
		Status:    &swappable,
	})
	s.Require().NoError(err)
	return created.ID()
}

func (s *CoordinatorSuite) requireSlot(id, owner uuid.UUID, status slot.Status) {
	gotOwner, gotStatus := dbtest.SlotState(s.T(), s.pool, id)
	s.Equal(owner, gotOwner, "owner of slot %s", id)
	s.Equal(status, gotStatus, "status of slot %s", id)
}

func (s *CoordinatorSuite) TestAcceptCascadesToOtherPendingRequests() {
	ctx := context.Background()
	alice := dbtest.CreateUser(s.T(), s.pool, "Alice")
	bob := dbtest.CreateUser(s.T(), s.pool, "Bob")
	carol := dbtest.CreateUser(s.T(), s.pool, "Carol")
	aSlot, bSlot := s.offer(alice), s.offer(bob)

	req, err := s.swaps.RequestSwap(ctx, alice, aSlot, bSlot)
	s.Require().NoError(err)

	// Carol's request on Bob's slot cannot be made through the commands
	// while Bob's slot is locked, so it is written by hand.
	cSlot := dbtest.CreateSlot(s.T(), s.pool, carol, "Carol", time.Date(2030, 9, 1, 9, 0, 0, 0, time.UTC), slot.StatusSwapPending)
	stale := dbtest.CreatePendingRequest(s.T(), s.pool, carol, bob, cSlot, bSlot, s.clock.Now())

	_, err = s.swaps.Respond(ctx, req.ID(), bob, true)
	s.Require().NoError(err)

	status, reason := dbtest.RequestState(s.T(), s.pool, stale)
	s.Equal(swap.StatusRejected, status)
	s.Equal(string(swap.ReasonSlotUnavailable), reason)
	s.requireSlot(cSlot, carol, slot.StatusSwappable)
	s.requireSlot(aSlot, bob, slot.StatusBusy)
	s.requireSlot(bSlot, alice, slot.StatusBusy)
}

func (s *CoordinatorSuite) TestCancelThenRespond() {
	ctx := context.Background()
	alice := dbtest.CreateUser(s.T(), s.pool, "Alice")
	bob := dbtest.CreateUser(s.T(), s.pool, "Bob")
	aSlot, bSlot := s.offer(alice), s.offer(bob)

	req, err := s.swaps.RequestSwap(ctx, alice, aSlot, bSlot)
	s.Require().NoError(err)

	_, err = s.swaps.Cancel(ctx, req.ID(), bob)
	s.ErrorIs(err, errs.ErrNotOwner)

	_, err = s.swaps.Cancel(ctx, req.ID(), alice)
	s.Require().NoError(err)
	status, reason := dbtest.RequestState(s.T(), s.pool, req.ID())
	s.Equal(swap.StatusRejected, status)
	s.Equal(string(swap.ReasonCancelled), reason)
	s.requireSlot(aSlot, alice, slot.StatusSwappable)
	s.requireSlot(bSlot, bob, slot.StatusSwappable)

	_, err = s.swaps.Respond(ctx, req.ID(), bob, true)
	s.ErrorIs(err, errs.ErrAlreadyResolved)
	s.requireSlot(aSlot, alice, slot.StatusSwappable)
}

func (s *CoordinatorSuite) TestExpireStale() {
	ctx := context.Background()
	alice := dbtest.CreateUser(s.T(), s.pool, "Alice")
	bob := dbtest.CreateUser(s.T(), s.pool, "Bob")
	old, err := s.swaps.RequestSwap(ctx, alice, s.offer(alice), s.offer(bob))
	s.Require().NoError(err)

	s.clock.Add(2 * time.Hour)
	fresh, err := s.swaps.RequestSwap(ctx, alice, s.offer(alice), s.offer(bob))
	s.Require().NoError(err)

	n, err := s.swaps.ExpireStale(ctx, time.Hour)
	s.Require().NoError(err)
	s.Equal(1, n)

	status, reason := dbtest.RequestState(s.T(), s.pool, old.ID())
	s.Equal(swap.StatusRejected, status)
	s.Equal(string(swap.ReasonExpired), reason)
	s.requireSlot(old.MySlotID(), alice, slot.StatusSwappable)

	status, _ = dbtest.RequestState(s.T(), s.pool, fresh.ID())
	s.Equal(swap.StatusPending, status)
}

func (s *CoordinatorSuite) TestBusySlotIsNotRetryable() {
	ctx := context.Background()
	alice := dbtest.CreateUser(s.T(), s.pool, "Alice")
	bob := dbtest.CreateUser(s.T(), s.pool, "Bob")
	busy := dbtest.CreateSlot(s.T(), s.pool, bob, "Private", time.Date(2030, 9, 2, 9, 0, 0, 0, time.UTC), slot.StatusBusy)

	_, err := s.swaps.RequestSwap(ctx, alice, s.offer(alice), busy)
	s.ErrorIs(err, errs.ErrSlotNotOffered)
	s.False(errs.IsRetryable(err))
}

func (s *CoordinatorSuite) TestStaleOwnerCannotDelete() {
	ctx := context.Background()
	alice := dbtest.CreateUser(s.T(), s.pool, "Alice")
	bob := dbtest.CreateUser(s.T(), s.pool, "Bob")
	aSlot, bSlot := s.offer(alice), s.offer(bob)

	req, err := s.swaps.RequestSwap(ctx, alice, aSlot, bSlot)
	s.Require().NoError(err)
	_, err = s.swaps.Respond(ctx, req.ID(), bob, true)
	s.Require().NoError(err)

	s.ErrorIs(s.slots.Delete(ctx, aSlot, alice), errs.ErrNotOwner)
	_, err = s.slots.Update(ctx, aSlot, alice, commands.UpdateSlotInput{})
	s.ErrorIs(err, errs.ErrNotOwner)
	s.requireSlot(aSlot, bob, slot.StatusBusy)
}
