package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/riskibarqy/amateur-league/internal/config"
	"github.com/riskibarqy/amateur-league/internal/domain/notification"
	"github.com/riskibarqy/amateur-league/internal/domain/suspension"
	"github.com/riskibarqy/amateur-league/internal/infrastructure/jobqueue"
	"github.com/riskibarqy/amateur-league/internal/infrastructure/notify"
	"github.com/riskibarqy/amateur-league/internal/interfaces/httpapi"
	idgen "github.com/riskibarqy/amateur-league/internal/platform/id"
	"github.com/riskibarqy/amateur-league/internal/platform/logging"
	"github.com/riskibarqy/amateur-league/internal/platform/resilience"
	"github.com/riskibarqy/amateur-league/internal/usecase"
)

// App is the assembled HTTP service and the resources it owns.
type App struct {
	Server  *http.Server
	closers []func() error
}

// Close releases the notice dispatcher and database handle.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	repos, closeRepos, err := buildRepositories(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	app := &App{closers: []func() error{closeRepos}}

	notifier, closeNotifier, err := buildNotifier(cfg, logger)
	if err != nil {
		_ = app.Close()
		return nil, err
	}
	app.closers = append(app.closers, closeNotifier)

	ids := idgen.NewUUIDGenerator()
	suspensionSvc := usecase.NewSuspensionService(
		repos.leagues,
		repos.seasons,
		repos.players,
		repos.events,
		suspension.NewPolicy(cfg.LeagueTimezone),
		logger,
	)
	matchSvc := usecase.NewMatchService(usecase.MatchRepositories{
		Leagues:    repos.leagues,
		Seasons:    repos.seasons,
		Teams:      repos.teams,
		Players:    repos.players,
		Matches:    repos.matches,
		Events:     repos.events,
		Billing:    repos.billing,
		Discipline: repos.discipline,
	}, suspensionSvc, notifier, ids, logger)

	handler := httpapi.NewHandler(httpapi.Services{
		Leagues:     usecase.NewLeagueService(repos.leagues, repos.teams, repos.players),
		Seasons:     usecase.NewSeasonService(repos.leagues, repos.seasons, repos.teams, repos.matches, repos.billing, ids, logger),
		Matches:     matchSvc,
		Suspensions: suspensionSvc,
		Standings:   usecase.NewLeagueStandingService(repos.leagues, repos.seasons, repos.teams, repos.matches),
		Leaderboard: usecase.NewLeaderboardService(repos.leagues, repos.seasons, repos.teams, repos.players, repos.events),
	}, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	app.Server = &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return app, nil
}

func buildNotifier(cfg config.Config, logger *logging.Logger) (notification.Notifier, func() error, error) {
	if !cfg.QStashEnabled {
		logger.Info("notifications disabled", "reason", "QSTASH_ENABLED=false")
		return notification.NewNopNotifier(), func() error { return nil }, nil
	}

	publisher := jobqueue.NewQStashPublisher(jobqueue.QStashPublisherConfig{
		BaseURL:          cfg.QStashBaseURL,
		Token:            cfg.QStashToken,
		TargetBaseURL:    cfg.QStashTargetBaseURL,
		Retries:          cfg.QStashRetries,
		InternalJobToken: cfg.InternalJobToken,
		Timeout:          cfg.QStashTimeout,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.QStashCircuitEnabled,
			FailureThreshold: cfg.QStashCircuitFailureCount,
			OpenTimeout:      cfg.QStashCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.QStashCircuitHalfOpenMaxReq,
		},
	}, logger)

	dispatcher, err := notify.NewDispatcher(notify.Config{
		Workers:        cfg.NotifyWorkers,
		PublishTimeout: cfg.NotifyTimeout,
	}, publisher, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("create notice dispatcher: %w", err)
	}

	return dispatcher, func() error {
		dispatcher.Close()
		return nil
	}, nil
}
