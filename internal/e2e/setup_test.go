//go:build e2e

package e2e

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"slot-swapper/cmd/bootstrap"
	"slot-swapper/cmd/bootstrap/components"
	"slot-swapper/internal/pkg/config"
	"slot-swapper/internal/testutil/dbtest"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/fx"
)

// SharedSuite gives every test its own database on a shared container.
type SharedSuite struct {
	suite.Suite
	pool   *pgxpool.Pool
	router *gin.Engine
	cfg    config.Config
}

func (s *SharedSuite) SetupTest() {
	s.pool, s.router, s.cfg = setupE2EEnvironment(s.T())
}

func setupE2EEnvironment(t *testing.T) (*pgxpool.Pool, *gin.Engine, config.Config) {
	gin.SetMode(gin.TestMode)
	pool, dbConfig := dbtest.NewDatabase(t)

	router, cfg, app := buildE2EApp(t, pool, dbConfig)

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := app.Stop(ctx); err != nil {
			slog.Warn("failed to stop fx app", "error", err.Error())
		}
	})

	return pool, router, cfg
}

// buildE2EApp wires the production modules against the prepared pool. The
// scheduler is left out so tests control expiry themselves.
func buildE2EApp(t *testing.T, pool *pgxpool.Pool, dbConfig config.DBConfig) (*gin.Engine, config.Config, *fx.App) {
	var router *gin.Engine
	var cfg config.Config

	testDBModule := fx.Module("testdb",
		fx.Provide(func() components.PoolOpener {
			return func() (*pgxpool.Pool, error) { return pool, nil }
		}),
	)

	testConfigModule := fx.Module("testconfig",
		fx.Provide(func() config.Config {
			return createTestConfig(dbConfig)
		}),
	)

	app := fx.New(
		testDBModule,
		testConfigModule,
		fx.Provide(func() *gin.Engine { return gin.New() }),
		bootstrap.LoggerModule,
		bootstrap.JWTModule,
		components.PersistenceModule,
		components.UseCaseModule,
		components.HandlerModule,

		fx.Populate(&router, &cfg),

		fx.NopLogger,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	require.NoError(t, app.Start(ctx), "failed to start fx app")
	require.NotNil(t, router, "router was not populated")

	return router, cfg, app
}

func createTestConfig(dbConfig config.DBConfig) config.Config {
	testConfig := config.NewTestConfig()
	testConfig.DB = dbConfig
	return testConfig
}
