package components

import (
	"log/slog"

	"slot-swapper/internal/infra/memstore"
	"slot-swapper/internal/infra/readstore"
	"slot-swapper/internal/infra/uow"
	"slot-swapper/internal/pkg/config"
	"slot-swapper/internal/usecase/queries"
	"slot-swapper/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

// PoolOpener connects to PostgreSQL on demand.
type PoolOpener func() (*pgxpool.Pool, error)

type Persistence struct {
	fx.Out

	UnitOfWork       shared.UnitOfWork
	SlotReadStore    queries.SlotReadStore
	SwapRequestStore queries.SwapRequestReadStore
	UserReadStore    queries.UserReadStore
}

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		NewPersistence,
	),
)

func NewPersistence(cfg config.Config, open PoolOpener, logger *slog.Logger) (Persistence, error) {
	if cfg.DB.Driver == config.DriverMemory {
		logger.Warn("using in-memory storage; data is lost on restart")
		store := memstore.NewStore()
		return Persistence{
			UnitOfWork:       memstore.NewUnitOfWork(store),
			SlotReadStore:    memstore.NewSlotReadStore(store),
			SwapRequestStore: memstore.NewSwapRequestReadStore(store),
			UserReadStore:    memstore.NewUserReadStore(store),
		}, nil
	}

	pool, err := open()
	if err != nil {
		return Persistence{}, err
	}
	return Persistence{
		UnitOfWork:       uow.NewPostgresUoW(pool, logger),
		SlotReadStore:    readstore.NewSlotReadStore(pool),
		SwapRequestStore: readstore.NewSwapRequestReadStore(pool),
		UserReadStore:    readstore.NewUserReadStore(pool),
	}, nil
}
