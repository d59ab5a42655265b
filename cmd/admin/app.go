package main

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/angelmondragon/weddingplanner-backend/internal/broadcast"
	"github.com/angelmondragon/weddingplanner-backend/internal/budget"
	"github.com/angelmondragon/weddingplanner-backend/internal/clients"
	"github.com/angelmondragon/weddingplanner-backend/internal/leads"
	"github.com/angelmondragon/weddingplanner-backend/internal/principals"
	"github.com/angelmondragon/weddingplanner-backend/internal/stats"
	"github.com/angelmondragon/weddingplanner-backend/internal/vendors"
	"github.com/angelmondragon/weddingplanner-backend/pkg/config"
	"github.com/angelmondragon/weddingplanner-backend/pkg/db"
	"github.com/angelmondragon/weddingplanner-backend/pkg/logger"
	"github.com/angelmondragon/weddingplanner-backend/pkg/metrics"
	"github.com/angelmondragon/weddingplanner-backend/pkg/redis"
	"github.com/angelmondragon/weddingplanner-backend/pkg/tenancy"
)

type app struct {
	registry   *prometheus.Registry
	clients    *clients.Service
	leads      *leads.Service
	principals *principals.Service
	pingers    map[string]db.Pinger
	closers    []func() error
}

func newApp(ctx context.Context, cfg *config.Config, logg *logger.Logger, dbClient *db.Client) (*app, error) {
	a := &app{
		registry: prometheus.NewRegistry(),
		pingers:  map[string]db.Pinger{"database": dbClient},
	}
	m := metrics.NewLifecycleMetrics(a.registry)

	var pub *redis.Client
	if cfg.Broadcast.Enabled {
		redisClient, err := redis.New(ctx, cfg.Redis, logg)
		if err != nil {
			return nil, fmt.Errorf("bootstrap redis: %w", err)
		}
		a.closers = append(a.closers, redisClient.Close)
		a.pingers["redis"] = redisClient
		pub = redisClient
	}
	var notifier broadcast.Notifier = broadcast.Noop{}
	if pub != nil {
		n, err := broadcast.New(cfg.Broadcast, pub, logg, m)
		if err != nil {
			return nil, fmt.Errorf("create notifier: %w", err)
		}
		notifier = n
	}

	guard, err := tenancy.NewGuard(dbClient, tenancy.NewBinder(dbClient.Dialect()), logg)
	if err != nil {
		return nil, fmt.Errorf("create tenant guard: %w", err)
	}

	orch, err := clients.NewOrchestrator(budget.DefaultCatalog(), vendors.NewLinker(), stats.NewRecalculator(), logg, m)
	if err != nil {
		return nil, fmt.Errorf("create orchestrator: %w", err)
	}
	a.clients, err = clients.NewService(clients.ServiceParams{
		Scope:        guard,
		Orchestrator: orch,
		Deleter:      clients.NewDeleter(),
		Notifier:     notifier,
		Metrics:      m,
		Logger:       logg,
	})
	if err != nil {
		return nil, fmt.Errorf("create client service: %w", err)
	}

	machine, err := leads.NewMachine(orch)
	if err != nil {
		return nil, fmt.Errorf("create pipeline machine: %w", err)
	}
	a.leads, err = leads.NewService(guard, machine, notifier, m, logg)
	if err != nil {
		return nil, fmt.Errorf("create lead service: %w", err)
	}

	resolver, err := principals.NewResolver(cfg.Tenancy, leads.Seeder{}, logg)
	if err != nil {
		return nil, fmt.Errorf("create principal resolver: %w", err)
	}
	a.principals, err = principals.NewService(guard, resolver, logg)
	if err != nil {
		return nil, fmt.Errorf("create principal service: %w", err)
	}
	return a, nil
}

// health pings every backing store and reports each one's state.
func (a *app) health(ctx context.Context) (map[string]string, error) {
	status := make(map[string]string, len(a.pingers))
	var failed bool
	for name, p := range a.pingers {
		if err := p.Ping(ctx); err != nil {
			status[name] = err.Error()
			failed = true
			continue
		}
		status[name] = "ok"
	}
	if _, ok := a.pingers["redis"]; !ok {
		status["redis"] = "disabled"
	}
	if failed {
		return status, fmt.Errorf("health check failed")
	}
	return status, nil
}

// writeMetrics dumps the run's lifecycle metrics for the node exporter textfile collector.
func (a *app) writeMetrics(path string) error {
	if path == "" {
		return nil
	}
	return prometheus.WriteToTextfile(path, a.registry)
}

func (a *app) close() error {
	var firstErr error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
