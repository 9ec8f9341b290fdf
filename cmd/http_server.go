package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/lukmanhakim/user-portal/internal"
	"github.com/lukmanhakim/user-portal/internal/auth"
	"github.com/lukmanhakim/user-portal/internal/mail"
	"github.com/lukmanhakim/user-portal/internal/storage"
	"github.com/lukmanhakim/user-portal/internal/transport/rest"
	"github.com/lukmanhakim/user-portal/internal/user"
	userpostgres "github.com/lukmanhakim/user-portal/internal/user/postgres"
	"github.com/lukmanhakim/user-portal/pkg/logger"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config *internal.Config
	DB     *sqlx.DB
	Router *chi.Mux
	Logger *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      deps.Router,
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
		IdleTimeout:  deps.Config.Server.IdleTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("received signal, shutting down", "signal", sig.String())
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			deps.Logger.Error("database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			deps.Logger.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}

	deps.Logger.Info("server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	cfg, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(cfg.Observability.Logging.Format, cfg.Observability.Logging.Level)
	lg := logger.L()

	db, err := initDB(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gormDB, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: db.DB}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open gorm connection: %w", err)
	}

	sec := cfg.Security
	hasher := auth.NewBCryptHasher(sec.BCryptCost)
	attempts := auth.NewLoginAttemptCache(sec.MaxLoginAttempts, sec.AttemptCacheSize, sec.AttemptCacheTTL)
	codec := auth.NewTokenCodec([]byte(sec.TokenSecret), sec.TokenDuration, sec.TokenIssuer, sec.TokenAudience)

	userRepo := userpostgres.NewRepository(gormDB)
	images := storage.NewImageStore(cfg.Storage.UserFolder, lg)
	mailer := mail.NewLogMailer(lg)

	authService := auth.NewService(userRepo, hasher, attempts, codec, lg)
	userService := user.NewService(userRepo, hasher, mailer, images, cfg.Server.BaseURL, lg)

	authHandler := auth.NewHandler(authService)
	userHandler := user.NewHandler(userService, images)

	router := chi.NewRouter()
	rest.RegisterAllRoutes(router, db.DB, cfg.Server.AllowedOrigins, codec, authHandler, userHandler, lg)

	return &Dependencies{
		Config: cfg,
		DB:     db,
		Router: router,
		Logger: lg,
	}, nil
}

// initDB opens and verifies the database connection pool.
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	db, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}
