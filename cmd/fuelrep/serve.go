package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	goredis "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/mohammaddehghani/fuelrep"
	"github.com/mohammaddehghani/fuelrep/internal/config"
	"github.com/mohammaddehghani/fuelrep/internal/logging"
	"github.com/mohammaddehghani/fuelrep/pkg/adapters/memory"
	redisadapter "github.com/mohammaddehghani/fuelrep/pkg/adapters/redis"
	"github.com/mohammaddehghani/fuelrep/pkg/adapters/sqlite"
	"github.com/mohammaddehghani/fuelrep/pkg/adapters/telegram"
	"github.com/mohammaddehghani/fuelrep/pkg/conversation"
	"github.com/mohammaddehghani/fuelrep/pkg/domain"
	"github.com/mohammaddehghani/fuelrep/pkg/ports"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the webhook server",
	Long:  `Starts the bot in webhook mode: an HTTP server receiving Telegram updates, with health and metrics endpoints.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		level, err := logging.ParseLevel(cfg.LogLevel)
		if err != nil {
			return err
		}
		logger := logging.New(level)

		// Entry storage: SQLite file, or in-memory when no path is set.
		var entries ports.EntryStore
		if cfg.DatabasePath != "" {
			store, err := sqlite.New(cfg.DatabasePath)
			if err != nil {
				return fmt.Errorf("open entry store: %w", err)
			}
			defer store.Close()
			entries = store
			logger.Info("using sqlite entry store", "path", cfg.DatabasePath)
		} else {
			entries = memory.NewEntryStore()
			logger.Warn("using in-memory entry store, data is lost on restart")
		}

		// Session storage: Redis when configured, else in-process.
		var sessions ports.SessionStore
		var locker ports.DistributedLocker
		if cfg.RedisAddr != "" {
			client := goredis.NewClient(&goredis.Options{
				Addr:     cfg.RedisAddr,
				Password: cfg.RedisPassword,
				DB:       cfg.RedisDB,
			})
			defer client.Close()
			sessions = redisadapter.NewFromClient(client)
			locker = redisadapter.NewLocker(client, "fuelrep:lock:")
			logger.Info("using redis session store", "addr", cfg.RedisAddr)
		} else {
			sessions = memory.NewSessionStore()
		}

		catalog := conversation.DefaultCatalog()
		if cfg.MessagesFile != "" {
			catalog, err = conversation.LoadCatalog(cfg.MessagesFile)
			if err != nil {
				return fmt.Errorf("load message catalog: %w", err)
			}
			logger.Info("loaded message catalog", "path", cfg.MessagesFile)
		}

		registry := prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)

		client := telegram.NewClient(cfg.BotToken)
		bot := fuelrep.New(client,
			fuelrep.WithEntryStore(entries),
			fuelrep.WithSessionStore(sessions),
			fuelrep.WithLocker(locker),
			fuelrep.WithAllowlist(domain.NewAllowlist(cfg.AdminChatIDs...)),
			fuelrep.WithCatalog(catalog),
			fuelrep.WithLogger(logger),
			fuelrep.WithMetricsRegisterer(registry),
		)

		r := chi.NewRouter()
		r.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
		r.Mount("/", telegram.NewWebhookHandler(cfg.WebhookPath, bot, logger))

		srv := &http.Server{
			Addr:    cfg.ListenAddr,
			Handler: r,
		}

		serverErrors := make(chan error, 1)
		go func() {
			logger.Info("starting webhook server", "addr", cfg.ListenAddr, "path", cfg.WebhookPath)
			serverErrors <- srv.ListenAndServe()
		}()

		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			return fmt.Errorf("server error: %w", err)

		case sig := <-shutdown:
			logger.Info("shutting down", "signal", sig.String())

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				logger.Error("graceful shutdown did not complete", "err", err)
				if err := srv.Close(); err != nil {
					return fmt.Errorf("close server: %w", err)
				}
			}
			logger.Info("server stopped")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
