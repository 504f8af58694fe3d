//go:build e2e

package uow

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"slot-swapper/internal/domain/slot"
	"slot-swapper/internal/infra/repository"
	"slot-swapper/internal/pkg/errs"
	"slot-swapper/internal/testutil/dbtest"
	"slot-swapper/internal/usecase/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var start = time.Date(2031, 4, 1, 9, 0, 0, 0, time.UTC)

func TestPostgresUoW_LockWaitTimesOutAsSlotUnavailable(t *testing.T) {
	ctx := context.Background()
	pool, _ := dbtest.NewDatabase(t)
	owner := dbtest.CreateUser(t, pool, "Alice")
	id := dbtest.CreateSlot(t, pool, owner, "Contended", start, slot.StatusSwappable)

	holder, err := pool.Begin(ctx)
	require.NoError(t, err)
	defer func() { _ = holder.Rollback(ctx) }()
	_, err = repository.NewSlotRepository(holder).FindByIDForUpdate(ctx, id)
	require.NoError(t, err)

	u := NewPostgresUoW(pool, slog.New(slog.NewTextHandler(io.Discard, nil)))
	u.lockTimeout = 200 * time.Millisecond

	began := time.Now()
	err = u.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		_, err := tx.Slots().CompareAndSetStatus(ctx, id, slot.StatusSwappable, slot.StatusSwapPending, start)
		return err
	})
	require.ErrorIs(t, err, errs.ErrSlotUnavailable)
	assert.True(t, errs.IsRetryable(err))
	assert.Less(t, time.Since(began), 2*time.Second, "a lock timeout is not retried")

	require.NoError(t, holder.Rollback(ctx))
	_, status := dbtest.SlotState(t, pool, id)
	assert.Equal(t, slot.StatusSwappable, status)
}

func TestPostgresUoW_RollsBackOnError(t *testing.T) {
	ctx := context.Background()
	pool, _ := dbtest.NewDatabase(t)
	owner := dbtest.CreateUser(t, pool, "Alice")
	id := dbtest.CreateSlot(t, pool, owner, "Draft", start, slot.StatusBusy)

	boom := errs.New("boom")
	u := NewPostgresUoW(pool, nil)
	err := u.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		ok, err := tx.Slots().CompareAndSetStatus(ctx, id, slot.StatusBusy, slot.StatusSwappable, start)
		require.NoError(t, err)
		require.True(t, ok)
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, status := dbtest.SlotState(t, pool, id)
	assert.Equal(t, slot.StatusBusy, status)
}
