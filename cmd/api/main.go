package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	eventadp "tdr-registry/internal/adapter/event"
	httpadp "tdr-registry/internal/adapter/http"
	"tdr-registry/internal/adapter/middleware"
	"tdr-registry/internal/adapter/repository/mysql"
	"tdr-registry/internal/config"
	"tdr-registry/internal/infrastructure/cache"
	"tdr-registry/internal/infrastructure/db"
	"tdr-registry/internal/infrastructure/logger"
	"tdr-registry/internal/infrastructure/metrics"
	ucDrc "tdr-registry/internal/usecase/drc"
	ucIdentity "tdr-registry/internal/usecase/identity"
	ucPrincipal "tdr-registry/internal/usecase/principal"
	ucTransfer "tdr-registry/internal/usecase/transfer"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}

	log, err := logger.New(cfg.Log.Level, cfg.Log.Format, "tdr-registry")
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		return fmt.Errorf("open mysql: %w", err)
	}
	if err := db.Migrate(gdb); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	rdb, err := cache.OpenRedis(ctx, cache.Options{
		Addr:     cfg.Redis.Addr,
		DB:       cfg.Redis.DB,
		Password: cfg.Redis.Password,
	})
	if err != nil {
		return err
	}
	defer func() { _ = rdb.Close() }()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	tx := mysql.NewGormUoW(gdb)
	apps := mysql.NewApplicationReader(gdb)

	principals := ucPrincipal.NewUsecase(tx, log.Named("principal"))
	if err := principals.Seed(ctx, ucPrincipal.Seed{
		Owner:      cfg.Principals.Owner,
		Admin:      cfg.Principals.Admin,
		Manager:    cfg.Principals.Manager,
		TdrManager: cfg.Principals.TdrManager,
	}); err != nil {
		return fmt.Errorf("seed principals: %w", err)
	}
	drcs := ucDrc.NewUsecase(tx, log.Named("drc"), m)
	transfers := ucTransfer.NewUsecase(tx, ucTransfer.Options{
		Applications:            apps,
		RequireRegisteredBuyers: cfg.Transfer.RequireRegisteredBuyers,
	}, log.Named("transfer"), m)
	directory := ucIdentity.NewDirectory(tx, log.Named("identity"))

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = httpadp.NewValidator()
	e.Use(
		echomw.Recover(),
		echomw.RequestIDWithConfig(echomw.RequestIDConfig{Generator: uuid.NewString}),
		echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
			LogURI:       true,
			LogStatus:    true,
			LogMethod:    true,
			LogLatency:   true,
			LogRequestID: true,
			LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
				log.Info("request",
					zap.String("method", v.Method),
					zap.String("uri", v.URI),
					zap.Int("status", v.Status),
					zap.Duration("latency", v.Latency),
					zap.String("request_id", v.RequestID),
					zap.String("principal", middleware.AccountFrom(c)),
				)
				return nil
			},
		}),
		middleware.ResolvePrincipal(principals, log.Named("principal")),
		middleware.IdempotencyMiddleware(rdb, cfg.IdempotencyTTL(), log.Named("idempotency")),
	)

	httpadp.Register(e, httpadp.Handlers{
		Health:       httpadp.NewHandler(db.Pinger{DB: gdb}, cache.Pinger{Client: rdb}),
		Drc:          httpadp.NewDrcHandler(drcs, log),
		Transfer:     httpadp.NewTransferHandler(transfers, log),
		Identity:     httpadp.NewIdentityHandler(directory, log),
		Principal:    httpadp.NewPrincipalHandler(principals, log),
		Applications: httpadp.NewApplicationHandler(apps, log),
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})))

	relay := eventadp.NewRelay(
		mysql.NewOutboxRepository(gdb),
		eventadp.NewStreamPublisher(rdb, cfg.Events.Stream, cfg.Events.MaxLen),
		cfg.EventsInterval(), cfg.Events.Batch, log.Named("relay"), m,
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		addr := ":" + cfg.App.Port
		log.Info("listening", zap.String("addr", addr))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error { return relay.Run(gctx) })
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")
		sctx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
		defer cancel()
		return e.Shutdown(sctx)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	log.Info("stopped")
	return nil
}
