package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/iliyamo/film-catalog/internal/config"
	"github.com/iliyamo/film-catalog/internal/database"
	"github.com/iliyamo/film-catalog/internal/handler"
	"github.com/iliyamo/film-catalog/internal/middleware"
	"github.com/iliyamo/film-catalog/internal/queue"
	"github.com/iliyamo/film-catalog/internal/repository"
	"github.com/iliyamo/film-catalog/internal/repository/memory"
	"github.com/iliyamo/film-catalog/internal/repository/mysql"
	"github.com/iliyamo/film-catalog/internal/router"
	"github.com/iliyamo/film-catalog/internal/service"
)

func main() {
	_ = godotenv.Load() // .env is optional; real env wins

	cfg := config.Load()

	var (
		films   repository.FilmRepository
		users   repository.UserRepository
		genres  repository.GenreRepository
		ratings repository.RatingRepository
	)

	switch cfg.Storage {
	case config.StorageMySQL:
		db, err := database.Open(&cfg)
		if err != nil {
			log.Fatalf("mysql connect: %v", err)
		}
		defer db.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if err := database.ApplySchema(ctx, db, "migrations/schema.sql"); err != nil {
			cancel()
			log.Fatalf("mysql schema: %v", err)
		}
		cancel()

		genreRepo := mysql.NewGenreRepo(db)
		films = mysql.NewFilmRepo(db, genreRepo)
		users = mysql.NewUserRepo(db)
		genres = genreRepo
		ratings = mysql.NewRatingRepo(db)
	default:
		filmRepo := memory.NewFilmRepo()
		films = filmRepo
		users = memory.NewUserRepo()
		genres = memory.NewGenreRepo(filmRepo)
		ratings = memory.NewRatingRepo()
	}

	filmSvc := service.NewFilmService(films, users, genres, ratings, cfg.PublishEvents)
	userSvc := service.NewUserService(users, films)

	if cfg.PublishEvents {
		go func() {
			if err := queue.StartActivityConsumer(); err != nil {
				log.Printf("activity consumer stopped: %v", err)
			}
		}()
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())
	e.Use(middleware.ResponseCache(config.LoadCacheConfig(), config.NewRedisClient()))

	router.RegisterRoutes(e,
		handler.NewFilmHandler(filmSvc),
		handler.NewUserHandler(userSvc),
		handler.NewCatalogHandler(genres, ratings),
	)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s storage=%s)", addr, cfg.Env, cfg.Storage)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
