package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"

	_ "github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"

	"github.com/mycoscan/mycoscan-admin/pkg/auth"
	"github.com/mycoscan/mycoscan-admin/pkg/config"
	"github.com/mycoscan/mycoscan-admin/pkg/database"
	"github.com/mycoscan/mycoscan-admin/pkg/editor"
	"github.com/mycoscan/mycoscan-admin/pkg/handlers"
	"github.com/mycoscan/mycoscan-admin/pkg/media"
	"github.com/mycoscan/mycoscan-admin/pkg/middleware"
	"github.com/mycoscan/mycoscan-admin/pkg/repositories"
	"github.com/mycoscan/mycoscan-admin/pkg/retry"
	"github.com/mycoscan/mycoscan-admin/pkg/services"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	cfg, err := config.Load(Version)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := newLogger(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Configuration loaded",
		zap.String("environment", cfg.Env),
		zap.String("base_url", cfg.BaseURL),
		zap.String("database", cfg.Database.Database),
		zap.String("database_host", cfg.Database.Host),
		zap.String("migrations_path", cfg.MigrationsPath))

	ctx := context.Background()

	// Migrations run over database/sql; the pgx stdlib driver shares the
	// connection settings with the pool below.
	migrationDB, err := sql.Open("pgx", cfg.Database.ConnectionString())
	if err != nil {
		logger.Fatal("Failed to open migration connection", zap.Error(err))
	}
	// The database may still be coming up when the service starts.
	err = retry.Do(ctx, retry.DefaultConfig(), func() error {
		return database.RunMigrations(migrationDB, cfg.MigrationsPath, logger)
	})
	if err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}
	if err := migrationDB.Close(); err != nil {
		logger.Warn("Failed to close migration connection", zap.Error(err))
	}

	db, err := retry.DoWithResult(ctx, retry.DefaultConfig(), func() (*database.DB, error) {
		return database.NewConnection(ctx, &database.Config{
			URL:            cfg.Database.ConnectionString(),
			MaxConnections: cfg.Database.MaxConnections,
		})
	})
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	auth.InitSessionStore(cfg.Auth.SessionSecret, cfg.Auth.SessionTTLMinutes, cfg.Env != "local")

	docRepo := repositories.NewDocumentRepository(db)
	auditRepo := repositories.NewAuditRepository(db)
	statsRepo := repositories.NewStatsRepository(db)

	auditService := services.NewAuditService(auditRepo, logger)
	moderationService := services.NewModerationService(db, docRepo, auditRepo, logger)
	postService := services.NewPostService(docRepo, logger)
	dashboardService := services.NewDashboardService(statsRepo, logger)
	userService := services.NewUserService(docRepo, logger)

	editorManager := editor.NewManager(docRepo, editor.Definitions(), logger)

	var uploader media.Uploader
	if cfg.Cloudinary.CloudName != "" {
		uploader, err = media.NewClient(&media.Config{
			CloudName:    cfg.Cloudinary.CloudName,
			UploadPreset: cfg.Cloudinary.UploadPreset,
			MaxFiles:     cfg.Cloudinary.MaxFiles,
		}, logger)
		if err != nil {
			logger.Fatal("Failed to create media client", zap.Error(err))
		}
	}

	mux := http.NewServeMux()

	handlers.NewHealthHandler(cfg, logger).RegisterRoutes(mux)
	handlers.NewAuthHandler(cfg, logger).RegisterRoutes(mux)
	handlers.NewEditorHandler(editorManager, logger).RegisterRoutes(mux)
	handlers.NewUsersHandler(userService, logger).RegisterRoutes(mux)
	handlers.NewModerationHandler(moderationService, auditService, logger).RegisterRoutes(mux)
	handlers.NewPostsHandler(postService, logger).RegisterRoutes(mux)
	handlers.NewDashboardHandler(dashboardService, logger).RegisterRoutes(mux)
	handlers.NewFilesHandler(logger).RegisterRoutes(mux)
	if uploader != nil {
		handlers.NewUploadsHandler(uploader, logger).RegisterRoutes(mux)
	} else {
		logger.Warn("Cloudinary not configured; image uploads disabled")
	}

	// Serve static UI files from ui/dist
	fs := http.FileServer(http.Dir("./ui/dist"))
	mux.Handle("/", fs)

	handler := middleware.RequestLogger(logger)(mux)

	addr := cfg.BindAddr + ":" + cfg.Port
	logger.Info("Starting mycoscan-admin",
		zap.String("addr", addr),
		zap.String("version", cfg.Version))
	if err := http.ListenAndServe(addr, handler); err != nil {
		logger.Fatal("Server failed", zap.Error(err))
	}
}

// newLogger builds a production logger outside local development, where a
// human-readable development logger is friendlier.
func newLogger(env string) (*zap.Logger, error) {
	if env == "local" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
