package routes

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/bscf-core/virtual-accounts/internal/account"
	"github.com/bscf-core/virtual-accounts/internal/config"
	"github.com/bscf-core/virtual-accounts/internal/events"
	"github.com/bscf-core/virtual-accounts/internal/ledger"
	"github.com/bscf-core/virtual-accounts/internal/middleware"
)

// Deps aggregates shared dependencies required to wire routes.
type Deps struct {
	Cfg       config.Config
	DB        *pgxpool.Pool
	Cache     *redis.Client
	Publisher events.Publisher
	Logger    *slog.Logger
}

// Setup configures middlewares and all application routes.
func Setup(app *fiber.App, d Deps) error {
	// Outside of dev, the in-memory fallbacks are not acceptable backends.
	if !isDev(d.Cfg.AppEnv) {
		if d.DB == nil {
			return fmt.Errorf("database is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
		if d.Cache == nil {
			return fmt.Errorf("redis is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
	}

	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(middleware.Audit(d.Logger))
	if d.Cache != nil {
		app.Use(middleware.Idempotency(d.Cache, d.Cfg.IdempotencyTTL, d.Logger))
	}

	RegisterHealthRoutes(app, d)

	var accountStore account.Store
	var ledgerStore ledger.Store
	if d.DB != nil {
		accountStore = account.NewPostgresStore(d.DB)
		ledgerStore = ledger.NewPostgresStore(d.DB)
	} else {
		// One shared in-memory store backs both views, mirroring how the
		// Postgres pair shares the database.
		mem := ledger.NewMemoryStore()
		accountStore = mem
		ledgerStore = mem
	}

	publisher := d.Publisher
	if publisher == nil {
		publisher = events.NewLoggerPublisher(d.Logger)
	}

	engine := ledger.NewEngine(ledgerStore)
	transactionHandler := ledger.NewHandler(engine, publisher, d.Logger)
	accountHandler := account.NewHandler(accountStore)

	api := app.Group("/api/v1")
	RegisterAccountRoutes(api, accountHandler)
	RegisterTransactionRoutes(api, transactionHandler)

	return nil
}

func isDev(env string) bool {
	switch strings.ToLower(env) {
	case "dev", "development", "local":
		return true
	default:
		return false
	}
}
