package app

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	semconv "go.opentelemetry.io/otel/semconv/v1.12.0"

	"github.com/gameswap/gameswap/external/fieldcatalog"
	"github.com/gameswap/gameswap/internal/config"
	"github.com/gameswap/gameswap/internal/domain/field"
	"github.com/gameswap/gameswap/internal/domain/league"
	"github.com/gameswap/gameswap/internal/domain/membership"
	"github.com/gameswap/gameswap/internal/domain/swap"
	"github.com/gameswap/gameswap/internal/domain/team"
	"github.com/gameswap/gameswap/internal/infrastructure/account/roster"
	"github.com/gameswap/gameswap/internal/infrastructure/repository/memory"
	"github.com/gameswap/gameswap/internal/infrastructure/repository/postgres"
	"github.com/gameswap/gameswap/internal/interfaces/httpapi"
	"github.com/gameswap/gameswap/internal/platform/id"
	"github.com/gameswap/gameswap/internal/platform/logging"
	"github.com/gameswap/gameswap/internal/platform/resilience"
	"github.com/gameswap/gameswap/internal/usecase"
)

type repositories struct {
	slots       swap.Repository
	leagues     league.Repository
	teams       team.Repository
	fields      field.Catalog
	memberships membership.Repository
	close       func() error
}

// NewHTTPServer wires repositories, services, and the router into a server.
// The returned cleanup closes the database handle when one was opened.
func NewHTTPServer(cfg config.Config, logger *slog.Logger) (*http.Server, func() error, error) {
	if logger == nil {
		logger = slog.Default()
	}

	repos, err := buildRepositories(cfg)
	if err != nil {
		return nil, nil, err
	}

	catalog := repos.fields
	if cfg.FieldCatalogEnabled {
		catalog = fieldcatalog.NewClient(fieldcatalog.ClientConfig{
			BaseURL:    cfg.FieldCatalogBaseURL,
			APIKey:     cfg.FieldCatalogAPIKey,
			Timeout:    cfg.FieldCatalogTimeout,
			MaxRetries: cfg.FieldCatalogMaxRetries,
			Logger:     logging.Default(),
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.FieldCatalogCircuitEnabled,
				FailureThreshold: cfg.FieldCatalogCircuitFailureCount,
				OpenTimeout:      cfg.FieldCatalogCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.FieldCatalogCircuitHalfOpenMaxReq,
			},
		})
	}

	idGen := id.NewRandomGenerator()
	authzSvc := usecase.NewAuthzService(repos.memberships, logger)
	slotSvc := usecase.NewSlotService(repos.slots, repos.leagues, repos.teams, catalog, authzSvc, idGen, logger)
	requestSvc := usecase.NewRequestService(repos.slots, repos.teams, authzSvc, idGen, logger).
		WithSweepWorkers(cfg.SweepWorkers)
	referenceSvc := usecase.NewReferenceService(repos.leagues, repos.teams, catalog, authzSvc)

	rosterClient := roster.NewClient(
		&http.Client{Timeout: cfg.RosterTimeout},
		cfg.RosterBaseURL,
		cfg.RosterIntrospectPath,
		logger,
	)

	handler := httpapi.NewHandler(slotSvc, requestSvc, referenceSvc, authzSvc, logger)
	router := httpapi.NewRouter(handler, rosterClient, logger, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		_ = repos.close()
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, repos.close, nil
}

func buildRepositories(cfg config.Config) (repositories, error) {
	if cfg.StorageDriver == config.StoragePostgres {
		db, err := openDB(cfg)
		if err != nil {
			return repositories{}, err
		}
		return repositories{
			slots:       postgres.NewSwapRepository(db),
			leagues:     postgres.NewLeagueRepository(db),
			teams:       postgres.NewTeamRepository(db),
			fields:      postgres.NewFieldRepository(db),
			memberships: postgres.NewMembershipRepository(db),
			close:       db.Close,
		}, nil
	}

	return repositories{
		slots:       memory.NewSwapRepository(),
		leagues:     memory.NewLeagueRepository(memory.SeedLeagues(), memory.SeedDivisions()),
		teams:       memory.NewTeamRepository(memory.SeedTeams()),
		fields:      memory.NewFieldRepository(memory.SeedFields()),
		memberships: memory.NewMembershipRepository(memory.SeedMemberships()),
		close:       func() error { return nil },
	}, nil
}

func openDB(cfg config.Config) (*sqlx.DB, error) {
	dsn := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)
	db, err := otelsqlx.Open("postgres", dsn,
		otelsql.WithAttributes(semconv.DBSystemPostgreSQL),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}
