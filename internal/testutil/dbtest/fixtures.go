//go:build e2e

package dbtest

import (
	"context"
	"testing"
	"time"

	"slot-swapper/internal/domain/slot"
	"slot-swapper/internal/domain/swap"
	"slot-swapper/internal/infra/db"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// any valid bcrypt hash; fixtures never log in
const passwordHash = "$2a$10$7EqJtq98hPqEX7fNZaFWoOhi5BWX4Z1fZ6HEWdK6v/dLPRtN.5rXu"

func CreateUser(t *testing.T, dbtx db.DBTX, name string) uuid.UUID {
	t.Helper()
	id := uuid.New()
	_, err := dbtx.Exec(context.Background(),
		`INSERT INTO users (id, name, email, password_hash) VALUES ($1, $2, $3, $4)`,
		id, name, id.String()+"@example.com", passwordHash)
	require.NoError(t, err)
	return id
}

func CreateSlot(t *testing.T, dbtx db.DBTX, ownerID uuid.UUID, title string, start time.Time, status slot.Status) uuid.UUID {
	t.Helper()
	id := uuid.New()
	_, err := dbtx.Exec(context.Background(),
		`INSERT INTO slots (id, owner_id, title, start_time, end_time, status) VALUES ($1, $2, $3, $4, $5, $6)`,
		id, ownerID, title, start, start.Add(time.Hour), status.String())
	require.NoError(t, err)
	return id
}

// CreatePendingRequest inserts a PENDING request without touching slot
// status, so tests can build states the commands never produce.
func CreatePendingRequest(t *testing.T, dbtx db.DBTX, requesterID, responderID, mySlotID, theirSlotID uuid.UUID, createdAt time.Time) uuid.UUID {
	t.Helper()
	id := uuid.New()
	_, err := dbtx.Exec(context.Background(),
		`INSERT INTO swap_requests (id, requester_id, responder_id, my_slot_id, their_slot_id, status, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		id, requesterID, responderID, mySlotID, theirSlotID, swap.StatusPending.String(), createdAt)
	require.NoError(t, err)
	return id
}

func SlotState(t *testing.T, dbtx db.DBTX, id uuid.UUID) (uuid.UUID, slot.Status) {
	t.Helper()
	var (
		owner  uuid.UUID
		status string
	)
	require.NoError(t, dbtx.QueryRow(context.Background(),
		`SELECT owner_id, status FROM slots WHERE id = $1`, id).Scan(&owner, &status))
	s, err := slot.ParseStatus(status)
	require.NoError(t, err)
	return owner, s
}

func RequestState(t *testing.T, dbtx db.DBTX, id uuid.UUID) (swap.Status, string) {
	t.Helper()
	var (
		status string
		reason *string
	)
	require.NoError(t, dbtx.QueryRow(context.Background(),
		`SELECT status, resolution_reason FROM swap_requests WHERE id = $1`, id).Scan(&status, &reason))
	s, err := swap.ParseStatus(status)
	require.NoError(t, err)
	if reason == nil {
		return s, ""
	}
	return s, *reason
}
