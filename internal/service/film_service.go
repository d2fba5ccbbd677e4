// Package service orchestrates validation, catalog reference checks
// and storage calls for the HTTP handlers. Services are backend
// agnostic: they only see the repository contracts, so swapping the
// in-memory store for MySQL changes nothing here.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/iliyamo/film-catalog/internal/model"
	"github.com/iliyamo/film-catalog/internal/queue"
	"github.com/iliyamo/film-catalog/internal/repository"
	"github.com/iliyamo/film-catalog/internal/validate"
)

// FilmService wires film mutations through field validation and
// catalog reference resolution before they reach the store.
type FilmService struct {
	films   repository.FilmRepository
	users   repository.UserRepository
	genres  repository.GenreRepository
	ratings repository.RatingRepository
	publish bool // emit film.liked events when true
}

// NewFilmService constructs a FilmService over the given repositories.
// publishEvents controls whether successful likes emit a film.liked
// message to the broker.
func NewFilmService(
	films repository.FilmRepository,
	users repository.UserRepository,
	genres repository.GenreRepository,
	ratings repository.RatingRepository,
	publishEvents bool,
) *FilmService {
	return &FilmService{
		films:   films,
		users:   users,
		genres:  genres,
		ratings: ratings,
		publish: publishEvents,
	}
}

// resolveRefs verifies that every genre id and the mpa id on the film
// resolve to existing catalog rows, and replaces the references with
// fully named catalog values. A dangling reference is a not-found
// condition, not a validation one: the film's shape is fine, its
// referent is missing.
func (s *FilmService) resolveRefs(ctx context.Context, film *model.Film) error {
	if film.Mpa != nil {
		rating, err := s.ratings.GetByID(ctx, film.Mpa.ID)
		if err != nil {
			return fmt.Errorf("mpa rating %d: %w", film.Mpa.ID, err)
		}
		film.Mpa = &rating
	}
	for i, g := range film.Genres {
		genre, err := s.genres.GetByID(ctx, g.ID)
		if err != nil {
			return fmt.Errorf("genre %d: %w", g.ID, err)
		}
		film.Genres[i] = genre
	}
	return nil
}

// Create validates the film, resolves its catalog references and
// persists it, returning the hydrated record.
func (s *FilmService) Create(ctx context.Context, film *model.Film) (model.Film, error) {
	if err := validate.Film(film); err != nil {
		return model.Film{}, err
	}
	if err := s.resolveRefs(ctx, film); err != nil {
		return model.Film{}, err
	}
	return s.films.Create(ctx, film)
}

// Update validates and persists a full overwrite of the film,
// replacing its genre and like sets. Reference resolution runs before
// the store is touched, so an unknown genre id leaves the stored film
// unchanged.
func (s *FilmService) Update(ctx context.Context, film *model.Film) (model.Film, error) {
	if err := validate.Film(film); err != nil {
		return model.Film{}, err
	}
	if err := s.resolveRefs(ctx, film); err != nil {
		return model.Film{}, err
	}
	return s.films.Update(ctx, film)
}

// GetByID returns the hydrated film or a not-found error.
func (s *FilmService) GetByID(ctx context.Context, id uint64) (model.Film, error) {
	return s.films.GetByID(ctx, id)
}

// GetAll returns every film in the backend's natural order.
func (s *FilmService) GetAll(ctx context.Context) ([]model.Film, error) {
	return s.films.GetAll(ctx)
}

// Delete removes the film and its association rows.
func (s *FilmService) Delete(ctx context.Context, id uint64) (model.Film, error) {
	return s.films.Delete(ctx, id)
}

// AddLike records that a user likes a film. Both sides must exist;
// liking twice is a conflict. On success a film.liked event is
// published best-effort in the background: broker failures are logged
// by the publisher and never surface to the caller.
func (s *FilmService) AddLike(ctx context.Context, filmID, userID uint64) error {
	film, err := s.films.GetByID(ctx, filmID)
	if err != nil {
		return fmt.Errorf("film %d: %w", filmID, err)
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("user %d: %w", userID, err)
	}
	if err := s.films.AddLike(ctx, filmID, userID); err != nil {
		return err
	}

	if s.publish {
		ev := queue.FilmLikedEvent{
			FilmID:    film.ID,
			FilmName:  film.Name,
			UserID:    user.ID,
			UserLogin: user.Login,
			LikeCount: film.LikeCount() + 1,
			LikedAt:   time.Now().UTC().Format(time.RFC3339),
		}
		go func() { _ = queue.PublishFilmLiked(context.Background(), ev) }()
	}
	return nil
}

// RemoveLike deletes a like; removing one that does not exist is a
// not-found error, not a no-op.
func (s *FilmService) RemoveLike(ctx context.Context, filmID, userID uint64) error {
	if _, err := s.films.GetByID(ctx, filmID); err != nil {
		return fmt.Errorf("film %d: %w", filmID, err)
	}
	return s.films.RemoveLike(ctx, filmID, userID)
}

// GetPopular returns up to count films ordered by like count.
func (s *FilmService) GetPopular(ctx context.Context, count int) ([]model.Film, error) {
	return s.films.GetPopular(ctx, count)
}
