package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/httplog/v3"
	"github.com/uchiyama0208/nightbase-sub008/internal/config"
	appHTTP "github.com/uchiyama0208/nightbase-sub008/internal/handler/http"
	"github.com/uchiyama0208/nightbase-sub008/internal/pkg/cache"
	"github.com/uchiyama0208/nightbase-sub008/internal/pkg/database"
	"github.com/uchiyama0208/nightbase-sub008/internal/pkg/jwt"
	"github.com/uchiyama0208/nightbase-sub008/internal/repository/postgresql"
	payrollService "github.com/uchiyama0208/nightbase-sub008/internal/service/payroll"
)

const usage = `usage:
  api                               run the HTTP server
  api migrate up|down [steps]|status
  api token <user_id> <store_id> [role]`

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error loading config:", err)
		os.Exit(1)
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	args := os.Args[1:]
	if len(args) == 0 {
		err = serve(cfg, logger)
	} else {
		switch args[0] {
		case "migrate":
			err = runMigrate(cfg, args[1:])
		case "token":
			err = issueToken(cfg, args[1:])
		default:
			err = fmt.Errorf("unknown command %q\n%s", args[0], usage)
		}
	}

	if err != nil {
		slog.Error("Command failed", "error", err)
		os.Exit(1)
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.App.LogLevel)); err != nil {
		level = slog.LevelInfo
	}

	logFormat := httplog.SchemaECS.Concise(cfg.App.Env != "production")
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "nightbase-payroll"),
		slog.String("env", cfg.App.Env),
	)
}

func serve(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolOptions{
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	var payrollCache cache.PayrollCache = cache.NoopPayrollCache{}
	if cfg.Redis.Addr != "" && cfg.Payroll.CacheTTL > 0 {
		redisCache := cache.NewRedisPayrollCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err := redisCache.Ping(ctx); err != nil {
			slog.Warn("Redis unavailable, payroll cache disabled", "addr", cfg.Redis.Addr, "error", err)
			_ = redisCache.Close()
		} else {
			defer redisCache.Close()
			payrollCache = redisCache
			slog.Info("Payroll cache enabled", "addr", cfg.Redis.Addr, "ttl", cfg.Payroll.CacheTTL)
		}
	}

	payrollRepo := postgresql.NewPayrollRepository(db)
	profileRepo := postgresql.NewProfileRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	orderRepo := postgresql.NewOrderRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	payrollSvc := payrollService.NewPayrollService(
		func(ctx context.Context, fn func(ctx context.Context) error) error {
			return postgresql.WithReadOnlySnapshot(ctx, db, fn)
		},
		payrollRepo,
		profileRepo,
		attendanceRepo,
		orderRepo,
		payrollCache,
		payrollService.Settings{
			Location:             cfg.Location(),
			DefaultDayChangeTime: cfg.Payroll.DayChangeTime,
			WindowDays:           cfg.Payroll.WindowDays,
			CacheTTL:             cfg.Payroll.CacheTTL,
		},
	)

	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc)

	router := appHTTP.NewRouter(JWTService, payrollHandler, appHTTP.RouterOptions{
		Logger:         logger,
		AllowedOrigins: cfg.App.CORSAllowedOrigins,
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Server running", "addr", server.Addr, "timezone", cfg.App.Timezone)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	slog.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func runMigrate(cfg *config.Config, args []string) error {
	if len(args) == 0 {
		return errors.New(usage)
	}

	dsn := cfg.DatabaseURL()
	switch args[0] {
	case "up":
		return database.MigrateUp(dsn)
	case "down":
		steps := 1
		if len(args) > 1 {
			n, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid steps value: %w", err)
			}
			steps = n
		}
		return database.MigrateDown(dsn, steps)
	case "status":
		version, dirty, err := database.MigrateStatus(dsn)
		if err != nil {
			return err
		}
		if version == 0 {
			slog.Info("No migrations have been applied yet")
			return nil
		}
		slog.Info("Current migration version", "version", version, "dirty", dirty)
		return nil
	default:
		return fmt.Errorf("unknown migrate command %q", args[0])
	}
}

// issueToken prints an access token for local development against the API.
func issueToken(cfg *config.Config, args []string) error {
	if len(args) < 2 {
		return errors.New(usage)
	}
	role := "admin"
	if len(args) > 2 {
		role = strings.TrimSpace(args[2])
	}

	token, expiresAt, err := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration).
		GenerateAccessToken(args[0], args[1], role)
	if err != nil {
		return fmt.Errorf("generate token: %w", err)
	}

	fmt.Println(token)
	slog.Info("Access token issued", "store_id", args[1], "expires_at", time.Unix(expiresAt, 0).Format(time.RFC3339))
	return nil
}
