package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	analytics "campusvote/contexts/election/analytics-service"
	pollregistry "campusvote/contexts/election/poll-registry"
	pollpostgres "campusvote/contexts/election/poll-registry/adapters/postgres"
	voteledger "campusvote/contexts/election/vote-ledger"
	ledgerpostgres "campusvote/contexts/election/vote-ledger/adapters/postgres"
	voterregistry "campusvote/contexts/election/voter-registry"
	registrypostgres "campusvote/contexts/election/voter-registry/adapters/postgres"
	authgate "campusvote/contexts/identity-access/auth-gate"
	authpostgres "campusvote/contexts/identity-access/auth-gate/adapters/postgres"
	"campusvote/internal/platform/config"
	"campusvote/internal/platform/db"
	"campusvote/internal/platform/httpserver"
	"campusvote/internal/platform/mailer"
	"campusvote/internal/platform/messaging"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

type APIApp struct {
	server   *httpserver.Server
	postgres *db.Postgres
	logger   *slog.Logger
}

// AdminApp exposes the wired modules to the admin CLI without an HTTP
// surface in between.
type AdminApp struct {
	Auth     authgate.Module
	Voters   voterregistry.Module
	Polls    pollregistry.Module
	Ledger   voteledger.Module
	postgres *db.Postgres
	logger   *slog.Logger
}

func BuildAPI() (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "api")
	modules, pg, err := buildModules(cfg, logger)
	if err != nil {
		return nil, err
	}

	server := httpserver.New(
		modules.auth,
		modules.voters,
		modules.polls,
		modules.ledger,
		modules.analytics,
		logger,
		normalizeAddr(cfg.HTTPPort),
	)
	return &APIApp{
		server:   server,
		postgres: pg,
		logger:   logger,
	}, nil
}

func BuildAdmin() (*AdminApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "admin")
	modules, pg, err := buildModules(cfg, logger)
	if err != nil {
		return nil, err
	}

	return &AdminApp{
		Auth:     modules.auth,
		Voters:   modules.voters,
		Polls:    modules.polls,
		Ledger:   modules.ledger,
		postgres: pg,
		logger:   logger,
	}, nil
}

type moduleSet struct {
	auth      authgate.Module
	voters    voterregistry.Module
	polls     pollregistry.Module
	ledger    voteledger.Module
	analytics analytics.Module
}

func buildModules(cfg config.Config, logger *slog.Logger) (moduleSet, *db.Postgres, error) {
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return moduleSet{}, nil, errors.New("POSTGRES_DSN is required")
	}
	if strings.TrimSpace(cfg.JWTSecret) == "" {
		return moduleSet{}, nil, errors.New("JWT_SECRET is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return moduleSet{}, nil, err
	}

	if err := registrypostgres.AutoMigrate(pg.DB); err != nil {
		return moduleSet{}, nil, err
	}
	if err := pollpostgres.AutoMigrate(pg.DB); err != nil {
		return moduleSet{}, nil, err
	}
	if err := ledgerpostgres.AutoMigrate(pg.DB); err != nil {
		return moduleSet{}, nil, err
	}
	if err := authpostgres.AutoMigrate(pg.DB); err != nil {
		return moduleSet{}, nil, err
	}

	voterRepo := registrypostgres.NewRepository(pg.DB, logger)
	pollRepo := pollpostgres.NewRepository(pg.DB, logger)
	voteRepo := ledgerpostgres.NewRepository(pg.DB, logger)
	adminRepo := authpostgres.NewRepository(pg.DB, logger)
	bus := messaging.NewBus(logger)
	if err := registerAuditLog(context.Background(), bus, logger); err != nil {
		return moduleSet{}, nil, err
	}

	smtp := mailer.SMTP{
		Host:   cfg.SMTPHost,
		Port:   cfg.SMTPPort,
		User:   cfg.SMTPUser,
		Pass:   cfg.SMTPPass,
		From:   cfg.SMTPFrom,
		Logger: logger,
	}

	votersModule := voterregistry.NewModule(voterregistry.Dependencies{
		Voters:      voterRepo,
		Votes:       ledgerCascader{votes: voteRepo},
		Mailer:      smtp,
		Clock:       registrypostgres.SystemClock{},
		IDGenerator: registrypostgres.UUIDGenerator{},
		LoginURL:    cfg.AppURL,
		Logger:      logger,
	})

	pollsModule := pollregistry.NewModule(pollregistry.Dependencies{
		Polls:       pollRepo,
		Voters:      registryDirectory{voters: voterRepo},
		Votes:       ledgerReader{votes: voteRepo},
		Clock:       pollpostgres.SystemClock{},
		IDGenerator: pollpostgres.UUIDGenerator{},
		Logger:      logger,
	})

	ledgerModule := voteledger.NewModule(voteledger.Dependencies{
		Votes:       voteRepo,
		Polls:       catalogueReader{polls: pollRepo},
		Voters:      registryMarker{voters: voterRepo},
		Publisher:   bus,
		Clock:       ledgerpostgres.SystemClock{},
		IDGenerator: ledgerpostgres.UUIDGenerator{},
		Logger:      logger,
	})

	authModule := authgate.NewModule(authgate.Dependencies{
		Admins:      adminRepo,
		Voters:      voterAccounts{voters: voterRepo},
		Secret:      []byte(cfg.JWTSecret),
		TokenTTL:    cfg.TokenTTL,
		Clock:       authpostgres.SystemClock{},
		IDGenerator: authpostgres.UUIDGenerator{},
		Logger:      logger,
	})

	sources := analyticsSources{
		voters: voterRepo,
		polls:  pollRepo,
		votes:  voteRepo,
		ledger: ledgerModule.Results,
	}
	analyticsModule := analytics.NewModule(analytics.Dependencies{
		Voters: sources,
		Polls:  sources,
		Votes:  sources,
		Ledger: sources,
		Logger: logger,
	})

	return moduleSet{
		auth:      authModule,
		voters:    votersModule,
		polls:     pollsModule,
		ledger:    ledgerModule,
		analytics: analyticsModule,
	}, pg, nil
}

func (a *APIApp) Run(_ context.Context) error {
	if a.logger != nil {
		a.logger.Info("api app started",
			"event", "bootstrap_api_started",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
	}
	return a.server.Start()
}

func (a *APIApp) Close() error {
	if a.postgres != nil {
		return a.postgres.Close()
	}
	return nil
}

func (a *AdminApp) Close() error {
	if a.postgres != nil {
		return a.postgres.Close()
	}
	return nil
}

func (a *AdminApp) Logger() *slog.Logger {
	return a.logger
}

// ResetData wipes every table the platform owns. Votes go first so the
// cascade order matches foreign-key reality even though the schema keeps
// references soft.
func (a *AdminApp) ResetData(ctx context.Context) error {
	for _, table := range []string{"votes", "polls", "voters", "admins"} {
		if err := a.postgres.DB.WithContext(ctx).Exec("DELETE FROM " + table).Error; err != nil {
			return err
		}
	}
	a.logger.Info("data reset",
		"event", "bootstrap_data_reset",
		"module", "internal/app/bootstrap",
		"layer", "platform",
	)
	return nil
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":8080"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}
