package app

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/amateur-league/internal/config"
	"github.com/riskibarqy/amateur-league/internal/domain/billing"
	"github.com/riskibarqy/amateur-league/internal/domain/discipline"
	"github.com/riskibarqy/amateur-league/internal/domain/league"
	"github.com/riskibarqy/amateur-league/internal/domain/match"
	"github.com/riskibarqy/amateur-league/internal/domain/matchevent"
	"github.com/riskibarqy/amateur-league/internal/domain/player"
	"github.com/riskibarqy/amateur-league/internal/domain/team"
	"github.com/riskibarqy/amateur-league/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/amateur-league/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/amateur-league/internal/infrastructure/repository/postgres"
	basecache "github.com/riskibarqy/amateur-league/internal/platform/cache"
	"github.com/riskibarqy/amateur-league/internal/platform/logging"
)

type repositories struct {
	leagues    league.Repository
	seasons    league.SeasonRepository
	teams      team.Repository
	players    player.Repository
	matches    match.Repository
	events     matchevent.Repository
	billing    billing.Repository
	discipline discipline.Repository
}

func buildRepositories(ctx context.Context, cfg config.Config, logger *logging.Logger) (repositories, func() error, error) {
	var (
		repos   repositories
		closeFn = func() error { return nil }
	)

	switch cfg.StorageDriver {
	case config.StoragePostgres:
		db, err := openPostgres(ctx, cfg)
		if err != nil {
			return repositories{}, nil, err
		}
		if cfg.AppEnv == config.EnvDev {
			if err := postgres.BootstrapSeed(ctx, db); err != nil {
				_ = db.Close()
				return repositories{}, nil, fmt.Errorf("bootstrap seed: %w", err)
			}
		}
		repos = postgresRepositories(db)
		closeFn = db.Close
	default:
		repos = memoryRepositories()
	}

	if cfg.CacheEnabled {
		store := basecache.NewStore(cfg.CacheTTL)
		repos.leagues = cache.NewLeagueRepository(repos.leagues, store)
		repos.seasons = cache.NewSeasonRepository(repos.seasons, store)
		repos.teams = cache.NewTeamRepository(repos.teams, store)
		repos.players = cache.NewPlayerRepository(repos.players, store)
	}

	logger.Info("repositories ready", "storage", cfg.StorageDriver, "cache_enabled", cfg.CacheEnabled)
	return repos, closeFn, nil
}

func memoryRepositories() repositories {
	matches := memory.NewMatchRepository()
	return repositories{
		leagues:    memory.NewLeagueRepository(memory.SeedLeagues()),
		seasons:    memory.NewSeasonRepository(memory.SeedSeasons()),
		teams:      memory.NewTeamRepository(memory.SeedTeams()),
		players:    memory.NewPlayerRepository(memory.SeedPlayers()),
		matches:    matches,
		events:     matches.Events(),
		billing:    memory.NewBillingRepository(),
		discipline: memory.NewDisciplineRepository(),
	}
}

func postgresRepositories(db *sqlx.DB) repositories {
	return repositories{
		leagues:    postgres.NewLeagueRepository(db),
		seasons:    postgres.NewSeasonRepository(db),
		teams:      postgres.NewTeamRepository(db),
		players:    postgres.NewPlayerRepository(db),
		matches:    postgres.NewMatchRepository(db),
		events:     postgres.NewEventRepository(db),
		billing:    postgres.NewBillingRepository(db),
		discipline: postgres.NewDisciplineRepository(db),
	}
}
