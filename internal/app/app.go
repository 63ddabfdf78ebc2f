package app

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/kevxviikw/noted/internal/config"
	"github.com/kevxviikw/noted/internal/db"
	"github.com/kevxviikw/noted/internal/repository"
	"github.com/kevxviikw/noted/internal/service"
)

type App struct {
	Cfg          *config.Config
	DB           *sqlx.DB
	AuthService  *service.AuthService
	GoalService  *service.GoalService
	MarkService  *service.MarkService
	StatsService *service.StatsService
}

func New(cfg *config.Config) (*App, error) {
	// Initialize database
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %v", err)
	}

	// Run database migrations
	err = db.RunMigrations(database.DB, cfg.DBDriver)
	if err != nil {
		return nil, fmt.Errorf("failed to run migrations: %v", err)
	}

	// Repositories
	goalRepository := repository.NewGoalRepository(database)
	markRepository := repository.NewMarkRepository(database)

	// Services
	authService := service.NewAuthService(cfg.APIToken, cfg.JWTSecret, cfg.JWTExpiry)
	goalService := service.NewGoalService(goalRepository)
	markService := service.NewMarkService(goalRepository, markRepository)
	statsService := service.NewStatsService(goalRepository, markRepository)

	return &App{
		Cfg:          cfg,
		DB:           database,
		AuthService:  authService,
		GoalService:  goalService,
		MarkService:  markService,
		StatsService: statsService,
	}, nil
}

func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}
