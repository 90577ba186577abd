package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	_ "taskflow/docs"
	"taskflow/internal/config"
	"taskflow/internal/handlers"
	"taskflow/internal/logger"
	"taskflow/internal/middleware"
	"taskflow/internal/pdf"
	"taskflow/internal/repositories"
	"taskflow/internal/routes"
	"taskflow/internal/services"
)

// Deps are the boundaries the router needs besides storage. Nil Mailer or
// Broadcaster disable those side effects.
type Deps struct {
	Mailer      services.Mailer
	Broadcaster services.Broadcaster
	Auth        services.AuthService
	Reports     pdf.Generator
	LoginURL    string
	Logger      *zap.Logger
}

// NewRouter wires services and handlers over store.
func NewRouter(store *repositories.Store, deps Deps, allowOrigins []string) *gin.Engine {
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}
	if deps.Auth == nil {
		deps.Auth = services.NewAuthService()
	}
	if deps.Reports == nil {
		deps.Reports = pdf.NewReportGenerator("")
	}

	// === Services ===
	activityService := services.NewActivityService(store.Activities, deps.Broadcaster, log)
	taskService := services.NewTaskService(store.Tasks, activityService, log)
	userService := services.NewUserService(store.Users, deps.Mailer, deps.Auth, deps.LoginURL, log)
	reportService := services.NewReportService(store, deps.Reports)

	// === Handlers ===
	taskHandler := handlers.NewTaskHandler(taskService, log)
	userHandler := handlers.NewUserHandler(userService, log)
	activityHandler := handlers.NewActivityHandler(activityService, log)
	reportHandler := handlers.NewReportHandler(reportService, log)

	// === Gin ===
	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.AccessLog(log))
	router.Use(middleware.Recovery(log))
	router.Use(cors.New(corsConfig(allowOrigins)))

	return routes.SetupRoutes(router, taskHandler, userHandler, activityHandler, reportHandler)
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders: []string{middleware.RequestIDHeader, "Content-Disposition"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}

// OpenStore picks the backend from the database URI scheme.
func OpenStore(ctx context.Context, cfg *config.Config) (*repositories.Store, error) {
	driver, err := cfg.StoreDriver()
	if err != nil {
		return nil, err
	}
	switch driver {
	case "postgres":
		return repositories.OpenPostgres(ctx, cfg.Database.URI)
	case "memory":
		return repositories.OpenMemory(), nil
	default:
		return repositories.OpenMongo(ctx, cfg.Database.URI)
	}
}

// Run starts the API server and blocks until SIGINT/SIGTERM.
func Run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logger.New(logger.Config{Level: cfg.Logger.Level, Encoding: cfg.Logger.Encoding})
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return Serve(ctx, cfg, log)
}

// Serve runs the server until ctx is cancelled, then shuts down gracefully.
func Serve(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	gin.SetMode(cfg.Server.GinMode)

	// === DB ===
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	store, err := OpenStore(connectCtx, cfg)
	cancel()
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := store.Close(closeCtx); err != nil {
			log.Warn("close store", zap.Error(err))
		}
	}()
	log.Info("store connected", zap.String("driver", mustDriver(cfg)))

	deps := Deps{
		Auth:     services.NewAuthService(),
		Reports:  pdf.NewReportGenerator(cfg.Reports.FontPath),
		LoginURL: cfg.Email.LoginURL,
		Logger:   log,
	}
	if cfg.EmailEnabled() {
		deps.Mailer = services.NewSMTPMailer(
			cfg.Email.SMTPHost,
			cfg.Email.SMTPPort,
			cfg.Email.SMTPUser,
			cfg.Email.SMTPPassword,
			cfg.Email.FromEmail,
		)
	} else {
		log.Info("email disabled: EMAIL_USER not set")
	}
	tg, err := services.NewTelegramService(cfg.Telegram.BotToken, cfg.Telegram.ChatID, log)
	switch {
	case err != nil:
		log.Warn("telegram disabled", zap.Error(err))
	case tg != nil:
		deps.Broadcaster = tg
		defer func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tg.Close(closeCtx); err != nil {
				log.Warn("telegram feed not drained", zap.Error(err))
			}
		}()
	}

	router := NewRouter(store, deps, cfg.Server.AllowOrigins)

	// === Run ===
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down", zap.Duration("timeout", cfg.Server.ShutdownTimeout))
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func mustDriver(cfg *config.Config) string {
	d, _ := cfg.StoreDriver()
	return d
}
