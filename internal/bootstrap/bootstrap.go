package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	appControllers "github.com/yigit/estudiantes/internal/app/controllers"
	appMigrations "github.com/yigit/estudiantes/internal/app/migrations"
	appRepos "github.com/yigit/estudiantes/internal/app/repositories"
	appRoutes "github.com/yigit/estudiantes/internal/app/routes"
	"github.com/yigit/estudiantes/internal/app/views"
	"github.com/yigit/estudiantes/internal/config"
	"github.com/yigit/estudiantes/internal/db"
	appMiddleware "github.com/yigit/estudiantes/internal/middleware"
	"github.com/yigit/estudiantes/internal/pkg/logger"
	"github.com/yigit/estudiantes/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Students              appRepos.StudentRepository
	StudentViewController *appControllers.StudentViewController
	StudentAPIController  *appControllers.StudentAPIController
	HealthController      *appControllers.HealthController
	Logger                zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
// CONFIG_PATH overrides the default configs/config.yaml.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = filepath.Join("configs", "config.yaml")
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.ParseLevel(cfg.Logging.Level)
	lgr := logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: strings.ToLower(cfg.Logging.Format) == "text",
	})

	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase opens the configured store, makes sure the schema exists and
// optionally seeds the demo students.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (appRepos.StudentRepository, error) {
	store, err := openStore(cfg, lgr)
	if err != nil {
		return nil, err
	}

	if cfg.Seed.DemoData {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := seed.CreateDefaultData(ctx, store, lgr); err != nil {
			// Log the error but don't fail the startup
			lgr.Error().Err(err).Msg("Failed to create demo data, proceeding anyway...")
		}
	}

	return store, nil
}

func openStore(cfg *config.Config, lgr zerolog.Logger) (appRepos.StudentRepository, error) {
	lgr.Info().Str("driver", cfg.Database.Driver).Msg("Establishing database connection...")

	switch cfg.Database.Driver {
	case config.DriverSQLite:
		gdb, err := db.NewSQLiteDB(cfg)
		if err != nil {
			lgr.Error().Err(err).Msg("Failed to open sqlite database")
			return nil, err
		}
		store := appRepos.NewGormStudentRepository(gdb)
		if err := appMigrations.AutoMigrate(gdb); err != nil {
			store.Close()
			lgr.Error().Err(err).Msg("Schema setup failed")
			return nil, fmt.Errorf("schema setup failed: %w", err)
		}
		lgr.Info().Msg("SQLite store ready.")
		return store, nil

	default:
		database, err := db.NewPostgresDB(cfg)
		if err != nil {
			lgr.Error().Err(err).Msg("Failed to connect to database")
			return nil, err
		}
		lgr.Info().Msg("Database connection successfully established.")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := appMigrations.NewMigrator(database).Apply(ctx); err != nil {
			database.Close()
			lgr.Error().Err(err).Msg("Schema setup failed")
			return nil, fmt.Errorf("schema setup failed: %w", err)
		}
		lgr.Info().Msg("Schema ready.")
		return appRepos.NewPostgresStudentRepository(database.Pool), nil
	}
}

// BuildDependencies initializes the controllers around the store.
func BuildDependencies(store appRepos.StudentRepository, lgr zerolog.Logger) *Dependencies {
	return &Dependencies{
		Students:              store,
		StudentViewController: appControllers.NewStudentViewController(store),
		StudentAPIController:  appControllers.NewStudentAPIController(store),
		HealthController:      appControllers.NewHealthController(store),
		Logger:                lgr,
	}
}

// SetupRouter configures the Gin engine with middleware, templates and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) (*gin.Engine, error) {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	return NewRouter(deps)
}

// NewRouter builds the engine without touching the global gin mode.
func NewRouter(deps *Dependencies) (*gin.Engine, error) {
	tmpl, err := views.Templates()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	if err := appMiddleware.RegisterValidators(); err != nil {
		return nil, fmt.Errorf("failed to register validators: %w", err)
	}

	router := gin.New()
	// Control numbers are path-escaped in links; match on the raw path so an escaped '/' stays in :id.
	router.UseRawPath = true
	router.Use(
		gin.Recovery(),
		appMiddleware.RequestID(),
		appMiddleware.RequestLogger(deps.Logger),
		appMiddleware.SecurityHeaders(),
	)
	router.SetHTMLTemplate(tmpl)

	appRoutes.SetupSwagger(router)
	appRoutes.SetupRouter(router,
		deps.StudentViewController,
		deps.StudentAPIController,
		deps.HealthController,
	)

	return router, nil
}
