package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	_ "github.com/uptrace/bun/driver/sqliteshim"

	"gigboard/internal/artists"
	"gigboard/internal/artists/artist_api"
	artistdb "gigboard/internal/artists/db"
	"gigboard/internal/cache"
	"gigboard/internal/config"
	"gigboard/internal/database/migrations"
	"gigboard/internal/kafka"
	"gigboard/internal/logger"
	"gigboard/internal/shows"
	showdb "gigboard/internal/shows/db"
	"gigboard/internal/shows/show_api"
	"gigboard/internal/stats"
	"gigboard/internal/stats/stats_api"
	"gigboard/internal/utils"
	"gigboard/internal/venues"
	venuedb "gigboard/internal/venues/db"
	"gigboard/internal/venues/venue_api"
)

func openDatabase(ctx context.Context, cfg *config.Config, logger *logger.Logger) *bun.DB {
	sqldb, err := sql.Open("sqlite", cfg.Database.Path)
	if err != nil {
		logger.Fatal("DATABASE", fmt.Sprintf("Failed to open SQLite at %s: %v", cfg.Database.Path, err))
	}
	sqldb.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqldb.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqldb.SetConnMaxLifetime(cfg.Database.MaxLifetime)

	if err := sqldb.PingContext(ctx); err != nil {
		logger.Fatal("DATABASE", fmt.Sprintf("Failed to connect to SQLite: %v", err))
	}
	logger.Info("DATABASE", fmt.Sprintf("SQLite connection successful (%s)", cfg.Database.Path))

	bunDB := bun.NewDB(sqldb, sqlitedialect.New())

	if err := migrations.CreateTables(ctx, bunDB); err != nil {
		logger.Fatal("DATABASE", fmt.Sprintf("Failed to create tables: %v", err))
	}
	if cfg.Database.Seed {
		if err := migrations.Seed(ctx, bunDB); err != nil {
			logger.Fatal("DATABASE", fmt.Sprintf("Failed to seed demo data: %v", err))
		}
		logger.Info("DATABASE", "Demo data seeded")
	}

	return bunDB
}

func connectRedis(ctx context.Context, cfg *config.Config, logger *logger.Logger) *redis.Client {
	if !cfg.Redis.Enabled {
		logger.Info("REDIS", "Redis cache disabled by configuration")
		return nil
	}

	client := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("REDIS", fmt.Sprintf("Redis unreachable at %s, serving without cache: %v", cfg.Redis.Addr, err))
		_ = client.Close()
		return nil
	}
	logger.Info("REDIS", fmt.Sprintf("Redis connection successful to %s", cfg.Redis.Addr))
	return client
}

func main() {
	logger := logger.NewLogger()
	defer logger.Close()

	logger.Info("APP", "Starting Gigboard directory service")

	if err := godotenv.Load(); err != nil {
		logger.Warn("CONFIG", ".env file not found, using environment variables")
	} else {
		logger.Info("CONFIG", "Loaded environment variables from .env file")
	}
	cfg := config.Load()

	ctx := context.Background()

	bunDB := openDatabase(ctx, cfg, logger)
	defer bunDB.Close()

	redisClient := connectRedis(ctx, cfg, logger)
	if redisClient != nil {
		defer redisClient.Close()
	}

	var boardCache venues.Cache = cache.Noop{}
	if redisClient != nil {
		boardCache = cache.New(redisClient, cfg.Redis.CacheTTL)
	}

	var (
		venueEvents  venues.EventPublisher  = kafka.NoopPublisher{}
		artistEvents artists.EventPublisher = kafka.NoopPublisher{}
		showEvents   shows.EventPublisher   = kafka.NoopPublisher{}
	)
	if cfg.Kafka.Enabled {
		if err := kafka.EnsureTopicsExist(cfg.Kafka.Brokers, cfg.Kafka.Topics.All()); err != nil {
			logger.Warn("KAFKA", fmt.Sprintf("Topic setup failed, publishing without guarantees: %v", err))
		}
		producer := kafka.NewProducer(cfg.Kafka.Brokers)
		defer producer.Close()

		directory := kafka.NewDirectoryPublisher(producer, cfg.Kafka.Topics)
		venueEvents, artistEvents, showEvents = directory, directory, directory
		logger.Info("KAFKA", fmt.Sprintf("Change events publishing to %v", cfg.Kafka.Brokers))
	} else {
		logger.Info("KAFKA", "Kafka publishing disabled by configuration")
	}

	venueService := venues.NewVenueService(&venuedb.DB{Bun: bunDB}, boardCache, venueEvents)
	artistService := artists.NewArtistService(&artistdb.DB{Bun: bunDB}, boardCache, artistEvents)
	showService := shows.NewShowService(&showdb.DB{Bun: bunDB}, boardCache, showEvents, cfg.App.PublicBaseURL)
	statsService := stats.NewService(bunDB)

	venueHandler := &venue_api.Handler{VenueService: venueService, Logger: logger}
	artistHandler := &artist_api.Handler{ArtistService: artistService, Logger: logger}
	showHandler := &show_api.Handler{ShowService: showService, Logger: logger}
	statsHandler := stats_api.NewHandler(statsService, logger)

	logger.Info("HTTP", "Setting up router")
	r := chi.NewRouter()

	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(utils.SuccessResponse("Gigboard directory API", nil))
	})
	statsHandler.RegisterRoutes(r)

	r.Route("/venues", func(r chi.Router) {
		r.Get("/", venueHandler.ListVenues)
		r.Post("/search", venueHandler.SearchVenues)
		r.Get("/create", venueHandler.NewVenueForm)
		r.Post("/create", venueHandler.CreateVenue)
		r.Get("/{venueId}", venueHandler.GetVenue)
		r.Get("/{venueId}/edit", venueHandler.EditVenueForm)
		r.Post("/{venueId}/edit", venueHandler.UpdateVenue)
		r.Post("/{venueId}/delete", venueHandler.DeleteVenue)
	})
	logger.Info("ROUTER", "Venue routes registered under /venues")

	r.Route("/artists", func(r chi.Router) {
		r.Get("/", artistHandler.ListArtists)
		r.Post("/search", artistHandler.SearchArtists)
		r.Get("/create", artistHandler.NewArtistForm)
		r.Post("/create", artistHandler.CreateArtist)
		r.Get("/{artistId}", artistHandler.GetArtist)
		r.Get("/{artistId}/edit", artistHandler.EditArtistForm)
		r.Post("/{artistId}/edit", artistHandler.UpdateArtist)
		r.Post("/{artistId}/delete", artistHandler.DeleteArtist)
	})
	logger.Info("ROUTER", "Artist routes registered under /artists")

	r.Route("/shows", func(r chi.Router) {
		r.Get("/", showHandler.ListShows)
		r.Get("/create", showHandler.NewShowForm)
		r.Post("/create", showHandler.CreateShow)
		r.Get("/{showId}/qr", showHandler.ShowQR)
	})
	logger.Info("ROUTER", "Show routes registered under /shows")

	server := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Info("HTTP", fmt.Sprintf("Gigboard running on %s", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP", fmt.Sprintf("HTTP server error: %v", err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	logger.Info("APP", "Service started successfully, waiting for shutdown signal")
	<-stop

	logger.Info("APP", "Shutdown signal received, initiating graceful shutdown")
	ctxShutdown, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctxShutdown); err != nil {
		logger.Error("HTTP", fmt.Sprintf("Server shutdown failed: %v", err))
	} else {
		logger.Info("HTTP", "Gigboard shutdown complete")
	}
}
