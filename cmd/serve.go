package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"loan-calculator/config"
	httpLayer "loan-calculator/http"
	"loan-calculator/repository"
	"loan-calculator/service"
)

const sweepInterval = 5 * time.Minute

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the calculator HTTP and websocket API",
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if flags.Changed("addr") {
				cfg.Addr, _ = flags.GetString("addr")
			}
			if flags.Changed("redis") {
				cfg.RedisAddr, _ = flags.GetString("redis")
			}
			if flags.Changed("rate-limit") {
				cfg.RateLimit, _ = flags.GetInt("rate-limit")
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return serve(cmd.Context(), cfg)
		},
	}

	cmd.Flags().String("addr", ":8080", "listen address")
	cmd.Flags().String("redis", "", "redis address for sessions and cache (empty: in memory)")
	cmd.Flags().Int("rate-limit", 120, "requests per client per rate window (0 disables)")
	return cmd
}

type backends struct {
	states repository.StateRepository
	cache  repository.CacheRepository
	close  func()
}

func newBackends(ctx context.Context, c config.Config) (backends, error) {
	if c.RedisAddr == "" {
		mem := repository.NewStateRepositoryMemory(c.SessionTTL)
		stop := make(chan struct{})
		go func() {
			ticker := time.NewTicker(sweepInterval)
			defer ticker.Stop()
			for {
				select {
				case <-ticker.C:
					if n := mem.Sweep(); n > 0 {
						logger.Debug("expired calculator sessions removed", "count", n)
					}
				case <-stop:
					return
				}
			}
		}()
		logger.Info("using in-memory sessions and cache")
		return backends{
			states: mem,
			cache:  repository.NewMemoryCache(),
			close:  func() { close(stop) },
		}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     c.RedisAddr,
		Password: c.RedisPassword,
		DB:       c.RedisDB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return backends{}, fmt.Errorf("connect redis %s: %w", c.RedisAddr, err)
	}
	logger.Info("using redis for sessions and cache", "addr", c.RedisAddr)
	return backends{
		states: repository.NewRedisStateRepository(client, c.SessionTTL),
		cache:  repository.NewRedisCache(client, c.CacheTTL),
		close: func() {
			if err := client.Close(); err != nil {
				logger.Warn("closing redis client", "error", err)
			}
		},
	}, nil
}

func serve(ctx context.Context, c config.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}

	b, err := newBackends(ctx, c)
	if err != nil {
		return err
	}
	defer b.close()

	loanService := service.NewLoanService(repository.NewLoanRepositoryMemory(c.HistoryLimit), b.cache, logger)
	termService := service.NewTermService(loanService)
	calculatorService := service.NewCalculatorService(b.states, logger)

	var limiter *httpLayer.RateLimiter
	if c.RateLimit > 0 {
		limiter = httpLayer.NewRateLimiter(c.RateLimit, c.RateWindow)
		defer limiter.Stop()
	}

	handler := httpLayer.NewRouter(httpLayer.Handlers{
		Loan:       httpLayer.NewLoanHandler(loanService),
		Term:       httpLayer.NewTermHandler(termService),
		Calculator: httpLayer.NewCalculatorHandler(calculatorService, termService),
		Socket:     httpLayer.NewCalculatorSocket(calculatorService, logger),
	}, limiter, logger)

	server := &http.Server{
		Addr:         c.Addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("calculator API listening", "addr", c.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-serverErr:
		return fmt.Errorf("start server: %w", err)
	case <-quit:
		logger.Info("shutting down server")
	case <-ctx.Done():
		logger.Info("context cancelled, shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	logger.Info("server exited")
	return nil
}
