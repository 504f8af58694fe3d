package commands_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"slot-swapper/internal/domain/slot"
	"slot-swapper/internal/domain/swap"
	"slot-swapper/internal/infra/memstore"
	"slot-swapper/internal/pkg/clock"
	"slot-swapper/internal/testutil/builder"
	"slot-swapper/internal/usecase/commands"
	"slot-swapper/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2030, 1, 1, 8, 0, 0, 0, time.UTC)

type fixture struct {
	store *memstore.Store
	uow   *memstore.UnitOfWork
	clock *clock.MockClock
	slots commands.SlotCommands
	swaps commands.SwapCommands
	day   int
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memstore.NewStore()
	uow := memstore.NewUnitOfWork(store)
	clk := clock.NewMockClock(epoch)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return &fixture{
		store: store,
		uow:   uow,
		clock: clk,
		slots: commands.NewSlotCommands(uow, clk),
		swaps: commands.NewSwapCommands(uow, clk, logger),
	}
}

func (f *fixture) user(t *testing.T, name string) uuid.UUID {
	t.Helper()
	u, err := builder.NewUserBuilder().WithName(name).WithEmail(uuid.NewString() + "@example.com").BuildDomain()
	require.NoError(t, err)
	require.NoError(t, f.uow.Within(context.Background(), func(ctx context.Context, tx shared.Tx) error {
		return tx.Users().Create(ctx, u)
	}))
	return u.ID()
}

// slot creates a slot for owner on a fresh day so fixtures never overlap.
func (f *fixture) slot(t *testing.T, owner uuid.UUID, swappable bool) uuid.UUID {
	t.Helper()
	f.day++
	b := builder.NewSlotBuilder().WithOwner(owner).WithWindow(epoch.AddDate(0, 0, f.day), time.Hour)
	if swappable {
		b.AsSwappable()
	}
	s, err := f.slots.Create(context.Background(), owner, b.BuildCreateInput())
	require.NoError(t, err)
	return s.ID()
}

func (f *fixture) loadSlot(t *testing.T, id uuid.UUID) *slot.Slot {
	t.Helper()
	var s *slot.Slot
	require.NoError(t, f.uow.Within(context.Background(), func(ctx context.Context, tx shared.Tx) error {
		var err error
		s, err = tx.Slots().FindByID(ctx, id)
		return err
	}))
	return s
}

func (f *fixture) loadRequest(t *testing.T, id uuid.UUID) *swap.Request {
	t.Helper()
	var r *swap.Request
	require.NoError(t, f.uow.Within(context.Background(), func(ctx context.Context, tx shared.Tx) error {
		var err error
		r, err = tx.SwapRequests().FindByIDForUpdate(ctx, id)
		return err
	}))
	return r
}

func (f *fixture) requireSlot(t *testing.T, id uuid.UUID, owner uuid.UUID, status slot.Status) {
	t.Helper()
	s := f.loadSlot(t, id)
	require.Equal(t, owner, s.OwnerID(), "owner of slot %s", id)
	require.Equal(t, status.String(), s.Status().String(), "status of slot %s", id)
}
