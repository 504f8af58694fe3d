package uow

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"slot-swapper/internal/infra/db"
	"slot-swapper/internal/infra/repository"
	"slot-swapper/internal/pkg/errs"
	"slot-swapper/internal/usecase/shared"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	pgErrCodeSerializationFailure = "40001"
	pgErrCodeDeadlockDetected     = "40P01"
	pgErrCodeLockNotAvailable     = "55P03"

	maxRetries  = 3
	backoffBase = 50 * time.Millisecond

	// DefaultLockTimeout bounds how long a statement waits for a row lock
	// held by another swap before giving up.
	DefaultLockTimeout = 2 * time.Second
)

var (
	errTransactionBegin   = errs.New("failed to begin transaction")
	errTransactionCommit  = errs.New("failed to commit transaction")
	errMaxRetriesExceeded = errs.New("transaction failed after max retries")
)

type PostgresUoW struct {
	pool        *pgxpool.Pool
	logger      *slog.Logger
	lockTimeout time.Duration
}

func NewPostgresUoW(pool *pgxpool.Pool, logger *slog.Logger) *PostgresUoW {
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresUoW{
		pool:        pool,
		logger:      logger,
		lockTimeout: DefaultLockTimeout,
	}
}

// Within runs fn under READ COMMITTED. That is enough here: every status or
// owner change is a conditional UPDATE and the swap request row is read FOR
// UPDATE. Deadlocks and serialization failures are retried with backoff; a
// lock wait that exceeds the timeout surfaces as ErrSlotUnavailable.
func (u *PostgresUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	for attempt := 0; ; attempt++ {
		err := u.attempt(ctx, fn)
		switch {
		case err == nil:
			return nil
		case isLockTimeout(err):
			u.logger.Info("gave up waiting for a row lock", "timeout", u.lockTimeout.String())
			return errs.Wrap(errs.ErrSlotUnavailable, "lock wait timed out")
		case !isRetryableError(err):
			return err
		case attempt == maxRetries:
			u.logger.Error("transaction failed after max retries",
				"attempts", attempt+1,
				"error", err.Error())
			return errs.Mark(err, errMaxRetriesExceeded)
		}

		wait := calculateBackoff(attempt, backoffBase)
		u.logger.Warn("retrying transaction due to retryable error",
			"attempt", attempt+1,
			"wait_ms", wait.Milliseconds(),
			"error", err.Error())

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
}

// attempt runs one transaction. Rollback happens here rather than in a
// deferred call inside the retry loop so connections go back to the pool
// before the next try.
func (u *PostgresUoW) attempt(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	pgxTx, err := u.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return errs.Mark(err, errTransactionBegin)
	}

	err = u.setLockTimeout(ctx, pgxTx)
	if err == nil {
		err = fn(ctx, &pgTx{dbtx: pgxTx})
	}
	if err == nil {
		if err = pgxTx.Commit(ctx); err == nil {
			return nil
		}
		err = errs.Mark(err, errTransactionCommit)
	}

	if rollbackErr := pgxTx.Rollback(ctx); rollbackErr != nil && !errors.Is(rollbackErr, pgx.ErrTxClosed) {
		u.logger.Warn("rollback failed", "error", rollbackErr.Error())
	}
	return err
}

func (u *PostgresUoW) setLockTimeout(ctx context.Context, tx pgx.Tx) error {
	if u.lockTimeout <= 0 {
		return nil
	}
	// SET does not take bind parameters.
	_, err := tx.Exec(ctx, fmt.Sprintf("SET LOCAL lock_timeout = %d", u.lockTimeout.Milliseconds()))
	return err
}

func calculateBackoff(attempt int, base time.Duration) time.Duration {
	waitTime := time.Duration(1<<attempt) * base
	jitter := cryptoRandInt63n(int64(waitTime / 5))
	return waitTime + time.Duration(jitter)
}

func cryptoRandInt63n(n int64) int64 {
	if n <= 0 {
		return 0
	}
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0
	}
	uval := binary.BigEndian.Uint64(buf[:]) & 0x7FFFFFFFFFFFFFFF
	// #nosec G115 -- masked to 63 bits above
	return int64(uval) % n
}

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

func isRetryableError(err error) bool {
	switch pgCode(err) {
	case pgErrCodeSerializationFailure, pgErrCodeDeadlockDetected:
		return true
	default:
		return false
	}
}

func isLockTimeout(err error) bool {
	return pgCode(err) == pgErrCodeLockNotAvailable
}

type pgTx struct {
	dbtx db.DBTX

	slotRepo    shared.SlotRepository
	requestRepo shared.SwapRequestRepository
	userRepo    shared.UserRepository
}

func (t *pgTx) Slots() shared.SlotRepository {
	if t.slotRepo == nil {
		t.slotRepo = repository.NewSlotRepository(t.dbtx)
	}
	return t.slotRepo
}

func (t *pgTx) SwapRequests() shared.SwapRequestRepository {
	if t.requestRepo == nil {
		t.requestRepo = repository.NewSwapRequestRepository(t.dbtx)
	}
	return t.requestRepo
}

func (t *pgTx) Users() shared.UserRepository {
	if t.userRepo == nil {
		t.userRepo = repository.NewUserRepository(t.dbtx)
	}
	return t.userRepo
}
