//POST /api/vault           # Save a credential (auth)
//GET  /api/vault           # List credentials, decrypted (auth)
//PUT  /api/vault/{id}      # Update a credential (auth)
//DELETE /api/vault/{id}    # Delete a credential (auth)
//POST /api/breaches/check  # Check an email against the breach oracle (auth)
//GET  /api/breaches        # Caller's breach exposure summary (auth)
//GET  /health              # Liveness (public)

package api

import (
	breachAPI "breachvault/internal/app/server/api/http/breach"
	healthAPI "breachvault/internal/app/server/api/http/health"
	"breachvault/internal/app/server/api/http/middleware"
	"breachvault/internal/app/server/api/http/middleware/auth"
	"breachvault/internal/app/server/api/http/middleware/logger"
	vaultAPI "breachvault/internal/app/server/api/http/vault"
	"breachvault/internal/app/server/config"
	"breachvault/internal/app/server/crypto"
	"breachvault/internal/domain/breach"
	"breachvault/internal/domain/exposure"
	"breachvault/internal/domain/identity"
	"breachvault/internal/domain/ingest"
	"breachvault/internal/domain/vault"
	"breachvault/internal/infrastructure/oracle"
	"breachvault/internal/infrastructure/storage/postgres"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"golang.org/x/exp/slog"
)

type Handlers struct {
	Health *healthAPI.Handler
	Vault  *vaultAPI.Handler
	Breach *breachAPI.Handler
}

// New builds the *chi.Mux with all operations registered through huma.
func New(cfg *config.Config, storage *postgres.Storage, wrapper *crypto.KeyWrapper, log *slog.Logger) *chi.Mux {
	mux := chi.NewMux()

	humaConfig := huma.DefaultConfig("Breachvault API", "1.0.0")
	humaConfig.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {Type: "http", Scheme: "bearer"},
	}

	API := humachi.New(mux, humaConfig)

	h := handlers(cfg, storage, wrapper, log)
	h.Health.SetupRoutes(API)
	h.Vault.SetupRoutes(API)
	h.Breach.SetupRoutes(API)

	return mux
}

func handlers(cfg *config.Config, storage *postgres.Storage, wrapper *crypto.KeyWrapper, log *slog.Logger) *Handlers {
	userRepo := postgres.NewUserRepository(storage, log)
	verifier := identity.NewService(userRepo, cfg.Auth.Secret, log)
	authMW := auth.New(verifier, log)
	loggerMW := logger.New(log)
	middlewares := middleware.NewContainer()

	middlewares.Add(loggerMW.Middleware())
	healthHandler := healthAPI.NewHandler(log, middlewares.GetAllAndClear())

	vaultRepo := postgres.NewVaultRepository(storage, log)
	vaultService := vault.NewService(vaultRepo, wrapper, log)
	middlewares.Add(authMW.Middleware())
	middlewares.Add(loggerMW.Middleware())
	vaultHandler := vaultAPI.NewHandler(vaultService, log, middlewares.GetAllAndClear())

	breachRepo := postgres.NewBreachRepository(storage, log)
	registry := breach.NewService(breachRepo, log)
	exposureRepo := postgres.NewExposureRepository(storage, log)
	ledger := exposure.NewService(exposureRepo, log)
	fetcher := oracle.NewClient(cfg.Oracle.URL, cfg.Oracle.Timeout, log)
	checker := ingest.NewChecker(fetcher, registry, ledger, log)
	middlewares.Add(authMW.Middleware())
	middlewares.Add(loggerMW.Middleware())
	breachHandler := breachAPI.NewHandler(checker, ledger, log, middlewares.GetAllAndClear())

	return &Handlers{
		Health: healthHandler,
		Vault:  vaultHandler,
		Breach: breachHandler,
	}
}
