//go:build e2e

package repository_test

import (
	"context"
	"testing"
	"time"

	"slot-swapper/internal/domain/slot"
	"slot-swapper/internal/domain/swap"
	"slot-swapper/internal/infra"
	"slot-swapper/internal/infra/repository"
	"slot-swapper/internal/testutil/dbtest"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type requestFixture struct {
	alice, bob, carol uuid.UUID
	aSlot, bSlot      uuid.UUID
	cSlot, cOther     uuid.UUID
}

func newRequestFixture(t *testing.T, pool *pgxpool.Pool) requestFixture {
	t.Helper()
	f := requestFixture{
		alice: dbtest.CreateUser(t, pool, "Alice"),
		bob:   dbtest.CreateUser(t, pool, "Bob"),
		carol: dbtest.CreateUser(t, pool, "Carol"),
	}
	f.aSlot = dbtest.CreateSlot(t, pool, f.alice, "Alice", day, slot.StatusSwapPending)
	f.bSlot = dbtest.CreateSlot(t, pool, f.bob, "Bob", day, slot.StatusSwapPending)
	f.cSlot = dbtest.CreateSlot(t, pool, f.carol, "Carol", day, slot.StatusSwapPending)
	f.cOther = dbtest.CreateSlot(t, pool, f.carol, "Carol later", day.Add(24*time.Hour), slot.StatusSwappable)
	return f
}

func TestSwapRequestRepository_CreateAndResolve(t *testing.T) {
	ctx := context.Background()
	pool, _ := dbtest.NewDatabase(t)
	repo := repository.NewSwapRequestRepository(pool)
	f := newRequestFixture(t, pool)

	req, err := swap.NewRequest(f.alice, f.bob, f.aSlot, f.bSlot, day)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, req))

	got, err := repo.FindByIDForUpdate(ctx, req.ID())
	require.NoError(t, err)
	assert.True(t, got.IsPending())
	assert.Nil(t, got.ResolvedAt())
	assert.Equal(t, f.bob, got.ResponderID())

	require.NoError(t, got.Resolve(swap.ReasonCancelled, day.Add(time.Minute)))
	ok, err := repo.Resolve(ctx, got)
	require.NoError(t, err)
	require.True(t, ok)

	status, reason := dbtest.RequestState(t, pool, req.ID())
	assert.Equal(t, swap.StatusRejected, status)
	assert.Equal(t, string(swap.ReasonCancelled), reason)

	again, err := repo.FindByIDForUpdate(ctx, req.ID())
	require.NoError(t, err)
	require.NotNil(t, again.ResolvedAt())
	assert.True(t, day.Add(time.Minute).Equal(*again.ResolvedAt()))

	// A second resolution must not overwrite the first.
	late := swap.Reconstruct(req.ID(), f.alice, f.bob, f.aSlot, f.bSlot, swap.StatusAccepted, swap.ReasonAccepted, day, nil)
	ok, err = repo.Resolve(ctx, late)
	require.NoError(t, err)
	assert.False(t, ok)
	status, _ = dbtest.RequestState(t, pool, req.ID())
	assert.Equal(t, swap.StatusRejected, status)

	_, err = repo.FindByIDForUpdate(ctx, uuid.New())
	assert.True(t, infra.IsKind(err, infra.KindNotFound))
}

func TestSwapRequestRepository_ListPendingBySlots(t *testing.T) {
	ctx := context.Background()
	pool, _ := dbtest.NewDatabase(t)
	repo := repository.NewSwapRequestRepository(pool)
	f := newRequestFixture(t, pool)

	accepted := dbtest.CreatePendingRequest(t, pool, f.alice, f.bob, f.aSlot, f.bSlot, day)
	onTheirSlot := dbtest.CreatePendingRequest(t, pool, f.carol, f.bob, f.cSlot, f.bSlot, day.Add(time.Minute))
	onMySlot := dbtest.CreatePendingRequest(t, pool, f.carol, f.alice, f.cOther, f.aSlot, day.Add(2*time.Minute))
	unrelated := dbtest.CreatePendingRequest(t, pool, f.carol, f.bob, f.cOther, dbtest.CreateSlot(t, pool, f.bob, "Bob later", day.Add(72*time.Hour), slot.StatusSwappable), day)
	resolved := dbtest.CreatePendingRequest(t, pool, f.carol, f.bob, f.cSlot, f.bSlot, day)
	_, err := pool.Exec(ctx, `UPDATE swap_requests SET status = 'REJECTED', resolution_reason = 'rejected' WHERE id = $1`, resolved)
	require.NoError(t, err)

	tx, err := pool.Begin(ctx)
	require.NoError(t, err)
	defer func() { _ = tx.Rollback(ctx) }()

	got, err := repository.NewSwapRequestRepository(tx).ListPendingBySlots(ctx, []uuid.UUID{f.aSlot, f.bSlot}, accepted)
	require.NoError(t, err)

	ids := make([]uuid.UUID, 0, len(got))
	for _, r := range got {
		ids = append(ids, r.ID())
	}
	assert.Equal(t, []uuid.UUID{onTheirSlot, onMySlot}, ids, "ordered by creation, excluding the accepted request")
	assert.NotContains(t, ids, unrelated)

	none, err := repo.ListPendingBySlots(ctx, []uuid.UUID{uuid.New()}, uuid.Nil)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestSwapRequestRepository_ListPendingCreatedBefore(t *testing.T) {
	ctx := context.Background()
	pool, _ := dbtest.NewDatabase(t)
	repo := repository.NewSwapRequestRepository(pool)
	f := newRequestFixture(t, pool)

	oldest := dbtest.CreatePendingRequest(t, pool, f.alice, f.bob, f.aSlot, f.bSlot, day.Add(-3*time.Hour))
	older := dbtest.CreatePendingRequest(t, pool, f.carol, f.bob, f.cSlot, f.bSlot, day.Add(-2*time.Hour))
	dbtest.CreatePendingRequest(t, pool, f.carol, f.alice, f.cOther, f.aSlot, day)

	got, err := repo.ListPendingCreatedBefore(ctx, day.Add(-time.Hour), 10)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, oldest, got[0].ID())
	assert.Equal(t, older, got[1].ID())

	limited, err := repo.ListPendingCreatedBefore(ctx, day.Add(time.Hour), 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, oldest, limited[0].ID())
}
