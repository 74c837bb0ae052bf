package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"

	"github.com/nikolayk812/storefront/internal/auth"
	"github.com/nikolayk812/storefront/internal/cache"
	"github.com/nikolayk812/storefront/internal/cart"
	"github.com/nikolayk812/storefront/internal/checkout"
	"github.com/nikolayk812/storefront/internal/config"
	h "github.com/nikolayk812/storefront/internal/http"
	"github.com/nikolayk812/storefront/internal/metrics"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/nikolayk812/storefront/internal/repository"
)

func main() {
	app := &cli.App{
		Name:  "storefront",
		Usage: "catalog, cart and checkout backend",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "env-file",
				Value: ".env",
				Usage: "optional dotenv file read before the environment",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run the HTTP API",
				Action: serve,
			},
			{
				Name:  "migrate",
				Usage: "apply or revert database migrations",
				Subcommands: []*cli.Command{
					{
						Name:   "up",
						Action: func(c *cli.Context) error { return migrate(c, true) },
					},
					{
						Name:   "down",
						Action: func(c *cli.Context) error { return migrate(c, false) },
					},
				},
			},
		},
		DefaultCommand: "serve",
	}

	if err := app.Run(os.Args); err != nil {
		logrus.WithError(err).Fatal("storefront exited")
	}
}

func migrate(c *cli.Context, up bool) error {
	cfg, err := config.Load(c.String("env-file"))
	if err != nil {
		return err
	}

	log := cfg.NewLogger()

	if err := repository.Migrate(cfg.DatabaseURL, up); err != nil {
		return fmt.Errorf("repository.Migrate: %w", err)
	}

	log.WithField("up", up).Info("migrations applied")
	return nil
}

func serve(c *cli.Context) error {
	cfg, err := config.Load(c.String("env-file"))
	if err != nil {
		return err
	}

	log := cfg.NewLogger()

	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := repository.Migrate(cfg.DatabaseURL, true); err != nil {
		return fmt.Errorf("repository.Migrate: %w", err)
	}

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("pgxpool.New: %w", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		return fmt.Errorf("pool.Ping: %w", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	var products port.ProductRepository = repository.NewProduct(pool)

	checkoutOpts := []checkout.Option{
		checkout.WithTimeout(cfg.CheckoutTimeout),
		checkout.WithLogger(log.WithField("component", "checkout")),
		checkout.WithMetrics(m),
	}
	if cfg.CartRestoreOnFailure {
		checkoutOpts = append(checkoutOpts, checkout.WithRestoreOnFailure())
	}

	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		defer client.Close()

		if err := client.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("redis ping: %w", err)
		}

		cached := cache.NewProducts(products, client, cfg.CacheTTL, log.WithField("component", "cache"))
		products = cached
		checkoutOpts = append(checkoutOpts, checkout.OnCommit(func(ctx context.Context, ids []int32) {
			cached.Invalidate(ctx, ids...)
		}))
	}

	store := cart.NewStore()
	tokens := auth.NewTokens(cfg.JWTSecret, cfg.TokenTTL)

	router := h.NewRouter(h.Deps{
		Log:             log,
		Metrics:         m,
		Tokens:          tokens,
		Products:        products,
		Categories:      repository.NewCategory(pool),
		Users:           auth.NewService(repository.NewUser(pool), tokens, cfg.BcryptCost),
		Cart:            cart.NewService(store, products, log.WithField("component", "cart")),
		Checkout:        checkout.New(store, repository.NewInventoryLedger(pool), checkoutOpts...),
		DB:              pool,
		RequestTimeout:  cfg.RequestTimeout,
		DefaultCurrency: cfg.Currency(),
	})

	apiServer := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	metricsServer := &http.Server{
		Addr:              cfg.MetricsAddr,
		Handler:           metrics.Handler(reg),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	for name, srv := range map[string]*http.Server{"api": apiServer, "metrics": metricsServer} {
		g.Go(func() error {
			log.WithFields(logrus.Fields{"server": name, "addr": srv.Addr}).Info("listening")
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("%s server: %w", name, err)
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), cfg.ShutdownTimeout)
		defer cancel()

		return errors.Join(apiServer.Shutdown(shutdownCtx), metricsServer.Shutdown(shutdownCtx))
	})

	return g.Wait()
}
