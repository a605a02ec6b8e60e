package main

import (
	"database/sql"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"motorsonline/internal/config"
	"motorsonline/internal/handlers"
	"motorsonline/internal/repositories"
	"motorsonline/internal/services"
	"motorsonline/internal/views"
	"motorsonline/utils"
)

type application struct {
	cfg      config.Config
	errorLog *log.Logger
	infoLog  *log.Logger
	db       *sql.DB

	userRepo *repositories.UserRepository

	userHandler      *handlers.UserHandler
	carHandler       *handlers.CarHandler
	contactHandler   *handlers.ContactHandler
	favoriteHandler  *handlers.CarFavoriteHandler
	referenceHandler *handlers.ReferenceHandler
	viewHandler      *handlers.ViewHandler
}

func initializeApp(cfg config.Config, db *sql.DB, rdb *redis.Client, errorLog, infoLog *log.Logger) *application {
	// Repositories
	userRepo := repositories.UserRepository{DB: db}
	carRepo := repositories.CarRepository{DB: db}
	contactRepo := repositories.ContactRepository{DB: db}
	favoriteRepo := repositories.CarFavoriteRepository{DB: db}
	referenceRepo := repositories.ReferenceRepository{DB: db}

	tokenManager, err := utils.NewManager(cfg.Auth.SigningKey)
	if err != nil {
		errorLog.Fatal(err)
	}
	handlers.SetSigningKey(cfg.Auth.SigningKey)

	// Services
	userService := &services.UserService{
		UserRepo:       &userRepo,
		TokenManager:   tokenManager,
		AccessTTL:      time.Duration(cfg.Auth.AccessTTLHours) * time.Hour,
		RefreshTTL:     time.Duration(cfg.Auth.RefreshTTLHours) * time.Hour,
		GoogleClientID: cfg.Auth.GoogleClientID,
	}
	carService := &services.CarService{CarRepo: &carRepo, ReferenceRepo: &referenceRepo}
	contactService := &services.ContactService{ContactRepo: &contactRepo}
	favoriteService := &services.CarFavoriteService{CarFavoriteRepo: &favoriteRepo}
	referenceService := &services.ReferenceService{ReferenceRepo: &referenceRepo}
	viewService := &services.ViewService{Counter: views.NewCounter(rdb)}

	// Photo storage
	var store handlers.PhotoStore
	switch cfg.Storage.Kind {
	case "s3":
		s3, err := utils.NewS3Storage(cfg.Storage.AccessKey, cfg.Storage.SecretKey, cfg.Storage.Bucket, cfg.Storage.Region, cfg.Storage.Endpoint)
		if err != nil {
			errorLog.Fatal(err)
		}
		store = &handlers.S3PhotoStore{Storage: s3, Folder: "cars"}
	default:
		store = &handlers.LocalPhotoStore{Dir: cfg.Storage.LocalDir}
	}

	// Handlers
	userHandler := &handlers.UserHandler{Service: userService}
	carHandler := &handlers.CarHandler{Service: carService, Store: store, ImageDir: cfg.Storage.LocalDir}
	contactHandler := &handlers.ContactHandler{Service: contactService}
	favoriteHandler := &handlers.CarFavoriteHandler{Service: favoriteService}
	referenceHandler := &handlers.ReferenceHandler{Service: referenceService}
	viewHandler := &handlers.ViewHandler{Service: viewService}

	return &application{
		cfg:              cfg,
		errorLog:         errorLog,
		infoLog:          infoLog,
		db:               db,
		userRepo:         &userRepo,
		userHandler:      userHandler,
		carHandler:       carHandler,
		contactHandler:   contactHandler,
		favoriteHandler:  favoriteHandler,
		referenceHandler: referenceHandler,
		viewHandler:      viewHandler,
	}
}
