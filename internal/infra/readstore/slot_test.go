//go:build e2e

package readstore_test

import (
	"context"
	"testing"
	"time"

	"slot-swapper/internal/domain/slot"
	"slot-swapper/internal/infra/readstore"
	"slot-swapper/internal/testutil/dbtest"
	"slot-swapper/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var day = time.Date(2031, 3, 2, 9, 0, 0, 0, time.UTC)

func titles(views []*queries.SlotView) []string {
	out := make([]string, 0, len(views))
	for _, v := range views {
		out = append(out, v.Title)
	}
	return out
}

func TestSlotReadStore_ListByOwnerFilters(t *testing.T) {
	ctx := context.Background()
	pool, _ := dbtest.NewDatabase(t)
	store := readstore.NewSlotReadStore(pool)
	alice := dbtest.CreateUser(t, pool, "Alice")
	bob := dbtest.CreateUser(t, pool, "Bob")

	dbtest.CreateSlot(t, pool, alice, "Team sync", day, slot.StatusBusy)
	dbtest.CreateSlot(t, pool, alice, "100% focus", day.Add(24*time.Hour), slot.StatusSwappable)
	dbtest.CreateSlot(t, pool, alice, "1000 focus", day.Add(48*time.Hour), slot.StatusSwappable)
	dbtest.CreateSlot(t, pool, alice, "on_call rota", day.Add(72*time.Hour), slot.StatusBusy)
	dbtest.CreateSlot(t, pool, alice, "on-call backup", day.Add(96*time.Hour), slot.StatusSwapPending)
	dbtest.CreateSlot(t, pool, bob, "Team sync", day, slot.StatusBusy)

	from := day.Add(24 * time.Hour)
	before := day.Add(73 * time.Hour)

	cases := []struct {
		name   string
		filter queries.SlotFilter
		want   []string
	}{
		{name: "no filter lists every own slot in start order", want: []string{"Team sync", "100% focus", "1000 focus", "on_call rota", "on-call backup"}},
		{name: "status", filter: queries.SlotFilter{Status: "SWAPPABLE"}, want: []string{"100% focus", "1000 focus"}},
		{name: "start from is inclusive", filter: queries.SlotFilter{StartFrom: &from}, want: []string{"100% focus", "1000 focus", "on_call rota", "on-call backup"}},
		{name: "end before is inclusive", filter: queries.SlotFilter{EndBefore: &before}, want: []string{"Team sync", "100% focus", "1000 focus", "on_call rota"}},
		{name: "search is case-insensitive", filter: queries.SlotFilter{Search: "SYNC"}, want: []string{"Team sync"}},
		{name: "percent is literal", filter: queries.SlotFilter{Search: "0% f"}, want: []string{"100% focus"}},
		{name: "underscore is literal", filter: queries.SlotFilter{Search: "on_call"}, want: []string{"on_call rota"}},
		{name: "filters combine", filter: queries.SlotFilter{Status: "SWAPPABLE", StartFrom: &before}, want: []string{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := store.ListByOwner(ctx, alice, tc.filter)
			require.NoError(t, err)
			assert.Equal(t, tc.want, titles(got))
			for _, v := range got {
				assert.Equal(t, "Alice", v.OwnerName)
			}
		})
	}
}

func TestSlotReadStore_ListSwappable(t *testing.T) {
	ctx := context.Background()
	pool, _ := dbtest.NewDatabase(t)
	store := readstore.NewSlotReadStore(pool)
	alice := dbtest.CreateUser(t, pool, "Alice")
	bob := dbtest.CreateUser(t, pool, "Bob")
	carol := dbtest.CreateUser(t, pool, "Carol")

	dbtest.CreateSlot(t, pool, alice, "Alice offer", day, slot.StatusSwappable)
	dbtest.CreateSlot(t, pool, bob, "Bob later", day.Add(24*time.Hour), slot.StatusSwappable)
	dbtest.CreateSlot(t, pool, carol, "Carol first", day, slot.StatusSwappable)
	dbtest.CreateSlot(t, pool, bob, "Bob busy", day, slot.StatusBusy)
	dbtest.CreateSlot(t, pool, carol, "Carol locked", day, slot.StatusSwapPending)

	got, err := store.ListSwappable(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, []string{"Carol first", "Bob later"}, titles(got))
}

func TestSlotReadStore_Counts(t *testing.T) {
	ctx := context.Background()
	pool, _ := dbtest.NewDatabase(t)
	store := readstore.NewSlotReadStore(pool)
	alice := dbtest.CreateUser(t, pool, "Alice")

	dbtest.CreateSlot(t, pool, alice, "One", day, slot.StatusBusy)
	dbtest.CreateSlot(t, pool, alice, "Two", day.Add(24*time.Hour), slot.StatusBusy)
	dbtest.CreateSlot(t, pool, alice, "Three", day.Add(48*time.Hour), slot.StatusSwappable)

	counts, err := store.CountByStatus(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"BUSY": 2, "SWAPPABLE": 1}, counts)

	upcoming, err := store.CountStartingAfter(ctx, alice, day)
	require.NoError(t, err)
	assert.Equal(t, 2, upcoming)

	empty, err := store.CountByStatus(ctx, uuid.New())
	require.NoError(t, err)
	assert.Empty(t, empty)
}
