// Package app wires the rapport services together.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/alexanderramin/rapport/internal/api"
	"github.com/alexanderramin/rapport/internal/assistant"
	"github.com/alexanderramin/rapport/internal/config"
	"github.com/alexanderramin/rapport/internal/db"
	"github.com/alexanderramin/rapport/internal/domain"
	"github.com/alexanderramin/rapport/internal/remote"
	"github.com/alexanderramin/rapport/internal/repository"
	"github.com/alexanderramin/rapport/internal/seed"
	"github.com/alexanderramin/rapport/internal/service"
	"github.com/samber/do"
	"golang.org/x/sync/errgroup"
)

// Database owns the sqlite handle for the lifetime of the container.
type Database struct {
	*sql.DB
}

var (
	_ do.Shutdownable    = (*Database)(nil)
	_ do.Healthcheckable = (*Database)(nil)
)

func (d *Database) Shutdown() error {
	return d.Close()
}

func (d *Database) HealthCheck() error {
	return d.Ping()
}

// Container builds services lazily on first use.
type Container struct {
	di *do.Injector
}

// New registers every provider. Nothing is opened until a service is
// first requested.
func New(cfg *config.Config, logger *slog.Logger) *Container {
	di := do.New()
	do.ProvideValue(di, cfg)
	do.ProvideValue(di, logger)

	do.Provide(di, newDatabase)
	do.Provide(di, newPersonRepo)
	do.Provide(di, newUnitOfWork)
	do.Provide(di, newLocalEngine)
	do.Provide(di, newEngine)
	do.Provide(di, newHub)
	do.Provide(di, newEventSink)
	do.Provide(di, newContactService)
	do.Provide(di, newAssistantService)
	do.Provide(di, newServer)

	return &Container{di: di}
}

func newDatabase(i *do.Injector) (*Database, error) {
	cfg := do.MustInvoke[*config.Config](i)
	conn, err := db.OpenDB(cfg.DB.Path)
	if err != nil {
		return nil, err
	}
	do.MustInvoke[*slog.Logger](i).Debug("database opened", "path", cfg.DB.Path)
	return &Database{DB: conn}, nil
}

func newPersonRepo(i *do.Injector) (repository.PersonRepo, error) {
	database, err := do.Invoke[*Database](i)
	if err != nil {
		return nil, err
	}
	return repository.NewSQLitePersonRepo(database.DB), nil
}

func newUnitOfWork(i *do.Injector) (db.UnitOfWork, error) {
	database, err := do.Invoke[*Database](i)
	if err != nil {
		return nil, err
	}
	return db.NewSQLiteUnitOfWork(database.DB), nil
}

func newLocalEngine(_ *do.Injector) (*assistant.LocalEngine, error) {
	return assistant.NewLocalEngine(), nil
}

// newEngine picks the remote engine, backed by the local one, when a
// remote server is configured.
func newEngine(i *do.Injector) (assistant.Engine, error) {
	cfg := do.MustInvoke[*config.Config](i)
	local := do.MustInvoke[*assistant.LocalEngine](i)
	if !cfg.Remote.Enabled {
		return local, nil
	}
	logger := do.MustInvoke[*slog.Logger](i)
	return remote.New(cfg.Remote, local, remote.NewLogObserver(logger)), nil
}

func newHub(i *do.Injector) (*api.Hub, error) {
	return api.NewHub(do.MustInvoke[*slog.Logger](i)), nil
}

func newEventSink(i *do.Injector) (assistant.EventSink, error) {
	return assistant.MultiSink{
		do.MustInvoke[*api.Hub](i),
		service.LogSink{Logger: do.MustInvoke[*slog.Logger](i)},
	}, nil
}

func newContactService(i *do.Injector) (service.ContactService, error) {
	people, err := do.Invoke[repository.PersonRepo](i)
	if err != nil {
		return nil, err
	}
	return service.NewContactService(
		people,
		do.MustInvoke[db.UnitOfWork](i),
		do.MustInvoke[assistant.EventSink](i),
		service.NewSlogUseCaseObserver(do.MustInvoke[*slog.Logger](i)),
	), nil
}

func newAssistantService(i *do.Injector) (service.AssistantService, error) {
	people, err := do.Invoke[repository.PersonRepo](i)
	if err != nil {
		return nil, err
	}
	return service.NewAssistantService(
		people,
		do.MustInvoke[assistant.Engine](i),
		service.NewSlogUseCaseObserver(do.MustInvoke[*slog.Logger](i)),
	), nil
}

func newServer(i *do.Injector) (*api.Server, error) {
	contacts, err := do.Invoke[service.ContactService](i)
	if err != nil {
		return nil, err
	}
	return api.NewServer(
		do.MustInvoke[*config.Config](i).Server,
		contacts,
		do.MustInvoke[service.AssistantService](i),
		do.MustInvoke[assistant.Engine](i),
		do.MustInvoke[*api.Hub](i),
		do.MustInvoke[*slog.Logger](i),
	), nil
}

func (c *Container) Contacts() (service.ContactService, error) {
	return do.Invoke[service.ContactService](c.di)
}

func (c *Container) Assistant() (service.AssistantService, error) {
	return do.Invoke[service.AssistantService](c.di)
}

// Populate stores people in a single transaction.
func (c *Container) Populate(ctx context.Context, people []domain.Person) error {
	uow, err := do.Invoke[db.UnitOfWork](c.di)
	if err != nil {
		return err
	}
	return seed.Populate(ctx, uow, people)
}

// Serve runs the HTTP API and the event hub until ctx is done or either
// fails. A blank addr uses the configured address.
func (c *Container) Serve(ctx context.Context, addr string) error {
	srv, err := do.Invoke[*api.Server](c.di)
	if err != nil {
		return err
	}
	hub := do.MustInvoke[*api.Hub](c.di)
	if addr == "" {
		addr = do.MustInvoke[*config.Config](c.di).Server.Addr
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return hub.Run(ctx) })
	g.Go(func() error {
		if err := srv.ListenAndServe(ctx, addr); err != nil {
			return fmt.Errorf("serving %s: %w", addr, err)
		}
		return nil
	})
	return g.Wait()
}

// HealthCheck reports the health of every started service that supports it.
func (c *Container) HealthCheck() map[string]error {
	return c.di.HealthCheck()
}

// Shutdown stops started services in reverse order of creation.
func (c *Container) Shutdown() error {
	return c.di.Shutdown()
}
