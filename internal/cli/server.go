package cli

import (
	"context"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"quiz-practice-service/internal/app"
	"quiz-practice-service/internal/config"
	infrafs "quiz-practice-service/internal/infra/fs"
	"quiz-practice-service/internal/infra/memory"
	infrapg "quiz-practice-service/internal/infra/postgres"
	infraredis "quiz-practice-service/internal/infra/redis"
	"quiz-practice-service/internal/pool"
	"quiz-practice-service/internal/session"
	"quiz-practice-service/internal/shuffle"
	transport "quiz-practice-service/internal/transport/http"
)

// NewServeCmd builds the CLI subcommand to start the server.
func NewServeCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the quiz practice server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return err
		}
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	// Question files come from Postgres when configured, otherwise from the
	// data directory on disk.
	var source pool.FileSource
	if cfg.Postgres.URL != "" {
		pgpool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
		defer pgpool.Close()
		source = infrapg.NewFileSource(pgpool)
	} else {
		dataDir := cfg.Data.Dir
		if dataDir == "" {
			dataDir = "data"
		}
		source = infrafs.NewSource(dataDir)
	}
	loader := pool.NewLoader(source)

	poolTTL := config.TTLDuration(cfg.Pool.TTL, 5*time.Minute)
	var pools app.PoolRepository
	if cfg.Redis.Addr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		redisTTL := config.TTLDuration(cfg.Redis.TTL, poolTTL)
		pools = infraredis.NewPoolRepository(redisClient, loader, redisTTL)
	} else {
		pools = memory.NewPoolRepository(loader, poolTTL)
	}

	sessionTimeout := config.TTLDuration(cfg.Session.Timeout, session.DefaultTimeout)
	sessions := session.NewManager(sessionTimeout)
	shuffler := shuffle.New(rand.NewSource(time.Now().UnixNano()))

	service := app.NewQuizService(pools, sessions, shuffler)
	handler := transport.NewHandler(service, source)
	wsHandler := transport.NewWSHandler(service)

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      handler.Router(wsHandler),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Printf("starting quiz practice service on :%s", finalPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("failed to start server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Println("shutting down server...")
	case <-ctx.Done():
		log.Println("context canceled, shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
