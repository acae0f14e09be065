package infrastructure

import (
	"context"

	"gigtix/internal/config"
	"gigtix/internal/repository"
	"gigtix/internal/service"
	transportHTTP "gigtix/internal/transport/http"
	transportNATS "gigtix/internal/transport/nats"
)

// Bootstrap initialises all dependencies from config and wires up the
// application. Returns the App, a cleanup function, or an error.
func Bootstrap(ctx context.Context) (*App, func(), error) {
	cfg, err := config.New()
	if err != nil {
		return nil, nil, err
	}

	db, err := connectPostgres(cfg.DSN())
	if err != nil {
		return nil, nil, err
	}

	rdb, err := connectRedis(cfg.RedisAddr())
	if err != nil {
		db.Close()
		return nil, nil, err
	}

	var cleanupFns []func()
	cleanupFns = append(cleanupFns, func() {
		db.Close()
		_ = rdb.Close()
	})

	nc, err := connectNats(cfg.NatsAddr())
	if err != nil {
		return nil, runCleanup(cleanupFns), err
	}
	cleanupFns = append(cleanupFns, nc.Close)

	bus := transportNATS.NewBus(nc)
	repo := repository.NewTicketRepo(rdb, db, bus, cfg.PurchaseSubject)
	var svc service.TicketService = repo

	servers := []Server{
		transportHTTP.NewServer(cfg.ApiAddr(), svc),
	}

	return NewApp(servers), runCleanup(cleanupFns), nil
}

// runCleanup returns a single function that calls all cleanup functions in reverse order.
func runCleanup(fns []func()) func() {
	return func() {
		for i := len(fns) - 1; i >= 0; i-- {
			fns[i]()
		}
	}
}
