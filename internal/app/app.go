package app

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/meditactive/meditactive/internal/config"
	"github.com/meditactive/meditactive/internal/db"
	"github.com/meditactive/meditactive/internal/gateway"
	"github.com/meditactive/meditactive/internal/markdown"
	"github.com/meditactive/meditactive/internal/repository"
	"github.com/meditactive/meditactive/internal/service"
)

type App struct {
	Cfg               *config.Config
	DB                *sqlx.DB
	AuthService       *service.AuthService
	UserService       *service.UserService
	GoalService       *service.GoalService
	IntervalService   *service.IntervalService
	CompletionService *service.CompletionService
	DiaryService      *service.DiaryService
	MeditationService *service.MeditationService
	DonationService   *service.DonationService
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

	gw := gateway.New(database)

	// Repositories
	userRepository := repository.NewUserRepository(gw)
	goalRepository := repository.NewGoalRepository(gw)
	intervalRepository := repository.NewIntervalRepository(gw)
	diaryRepository := repository.NewDiaryRepository(gw)
	meditationRepository := repository.NewMeditationRepository(gw)
	donationRepository := repository.NewDonationRepository(gw)

	// Services
	authService := service.NewAuthService(userRepository, cfg)
	userService := service.NewUserService(userRepository, gw)
	goalService := service.NewGoalService(goalRepository)
	intervalService := service.NewIntervalService(intervalRepository, goalRepository, userRepository)
	completionService := service.NewCompletionService(gw)
	diaryService := service.NewDiaryService(diaryRepository, markdown.NewRenderer())
	meditationService := service.NewMeditationService(meditationRepository, gw)
	donationService := service.NewDonationService(donationRepository, gw)

	return &App{
		Cfg:               cfg,
		DB:                database,
		AuthService:       authService,
		UserService:       userService,
		GoalService:       goalService,
		IntervalService:   intervalService,
		CompletionService: completionService,
		DiaryService:      diaryService,
		MeditationService: meditationService,
		DonationService:   donationService,
	}, nil
}

func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}
