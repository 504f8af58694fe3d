package uow

import (
	"errors"
	"testing"
	"time"

	"slot-swapper/internal/infra"
	"slot-swapper/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestErrorClassification(t *testing.T) {
	pgErr := func(code string) error { return &pgconn.PgError{Code: code} }

	cases := []struct {
		name        string
		err         error
		retryable   bool
		lockTimeout bool
	}{
		{name: "serialization failure", err: pgErr(pgErrCodeSerializationFailure), retryable: true},
		{name: "deadlock", err: pgErr(pgErrCodeDeadlockDetected), retryable: true},
		{name: "deadlock wrapped by a repository", err: infra.WrapRepoErr(nil, infra.KindDBFailure, "update slot", pgErr(pgErrCodeDeadlockDetected)), retryable: true},
		{name: "lock timeout", err: errs.Wrap(pgErr(pgErrCodeLockNotAvailable), "lock slot"), lockTimeout: true},
		{name: "unique violation", err: pgErr("23505")},
		{name: "domain error", err: errs.ErrSlotUnavailable},
		{name: "plain error", err: errors.New("boom")},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.retryable, isRetryableError(tc.err))
			assert.Equal(t, tc.lockTimeout, isLockTimeout(tc.err))
		})
	}
}

func TestCalculateBackoff(t *testing.T) {
	for attempt := range maxRetries {
		base := time.Duration(1<<attempt) * backoffBase
		for range 20 {
			got := calculateBackoff(attempt, backoffBase)
			assert.GreaterOrEqual(t, got, base)
			assert.Less(t, got, base+base/5+time.Nanosecond)
		}
	}
}
