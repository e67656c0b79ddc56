package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"

	"movie-catalog-service/internal/config"
	"movie-catalog-service/internal/database"
	"movie-catalog-service/internal/favorites"
	"movie-catalog-service/internal/feed"
	"movie-catalog-service/internal/handler"
	"movie-catalog-service/internal/repository"
	"movie-catalog-service/internal/service"
	"movie-catalog-service/internal/tmdb"
	"movie-catalog-service/internal/viewstate"
)

func main() {
	// Structured logging
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})))

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Connect to PostgreSQL (movie cache + local user)
	db, err := database.NewPostgres(cfg.DB)
	if err != nil {
		slog.Error("failed to connect to PostgreSQL", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Connect to Redis (favorite id set)
	rdb, err := database.NewRedis(cfg.Redis)
	if err != nil {
		slog.Error("failed to connect to Redis", "error", err)
		os.Exit(1)
	}
	defer rdb.Close()

	// Initialize TMDB client
	tmdbClient := tmdb.NewClient(cfg.TMDB.APIKey, cfg.TMDB.BaseURL, cfg.TMDB.Language)

	// Initialize layers
	movieRepo := repository.NewMovieRepository(db)
	userRepo := repository.NewUserRepository(db)
	favoriteStore := favorites.NewStore(rdb)
	movieFeed := feed.New(movieRepo, favoriteStore)
	movieSvc := service.NewMovieService(movieRepo, tmdbClient)
	userSvc := service.NewUserService(userRepo)

	// Presentation adapters, scoped to the process lifetime
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	listAdapter := viewstate.NewMovieListAdapter(movieFeed.Observe, movieSvc, favoriteStore)
	favoritesAdapter := viewstate.NewMovieListAdapter(movieFeed.ObserveFavorites, nil, favoriteStore)
	searchAdapter := viewstate.NewSearchAdapter(movieSvc, favoriteStore)
	detailAdapter := viewstate.NewDetailAdapter(movieSvc)
	sessionAdapter := viewstate.NewSessionAdapter(userSvc)

	go listAdapter.Run(ctx)
	go favoritesAdapter.Run(ctx)
	go sessionAdapter.Run(ctx)

	// Initial refresh so a cold cache fills without waiting for a trigger
	listAdapter.Refresh()

	movieH := handler.NewMovieHandler(listAdapter, favoritesAdapter, searchAdapter, detailAdapter, favoriteStore, movieSvc)
	userH := handler.NewUserHandler(userSvc, sessionAdapter)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Movie Catalog Service",
		ServerHeader: "Movie-Catalog-Service",
		ErrorHandler: func(c fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			slog.Error("unhandled error", "error", err, "status", code)
			return c.Status(code).JSON(handler.ErrorResponse{Error: err.Error()})
		},
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New())

	// Swagger docs
	swaggerYAML, err := os.ReadFile("docs/swagger.yaml")
	if err != nil {
		slog.Warn("swagger.yaml not found, swagger UI will be unavailable", "error", err)
	} else {
		handler.RegisterSwagger(app, swaggerYAML)
	}

	// API routes
	api := app.Group("/api/v1")
	api.Get("/health", movieH.Health)

	api.Get("/movies", movieH.ListMovies)
	api.Post("/movies/refresh", movieH.RefreshMovies)
	api.Get("/movies/favorites", movieH.FavoriteMovies)
	api.Get("/movies/search", movieH.SearchMovies)
	api.Get("/movies/cache", movieH.CacheStatus)
	api.Delete("/movies/cache", movieH.ClearCache)
	api.Get("/movies/:id", movieH.GetMovieDetail)
	api.Post("/movies/:id/favorite", movieH.ToggleFavorite)
	api.Delete("/movies/:id/favorite", movieH.RemoveFavorite)

	api.Post("/auth/register", userH.Register)
	api.Post("/auth/login", userH.Login)
	api.Get("/auth/session", userH.Session)
	api.Delete("/auth/session", userH.Logout)

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan
		slog.Info("shutting down movie catalog service...")
		cancel()
		_ = app.Shutdown()
	}()

	// Start server
	addr := ":" + cfg.Port
	slog.Info("starting movie catalog service", "addr", addr)
	if err := app.Listen(addr); err != nil {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}
