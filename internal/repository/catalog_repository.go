package repository

import (
	"context"

	"github.com/iliyamo/film-catalog/internal/model"
)

// GenreRepository is the read-only contract for the genre catalog.
type GenreRepository interface {
	// GetAll returns every genre ordered by id.
	GetAll(ctx context.Context) ([]model.Genre, error)
	// GetByID returns the genre or ErrNotFound.
	GetByID(ctx context.Context, id uint64) (model.Genre, error)
	// GetManyForFilms resolves the genre sets of several films in one
	// round trip, keyed by film id. Films without genres are simply
	// absent from the result.
	GetManyForFilms(ctx context.Context, filmIDs []uint64) (map[uint64][]model.Genre, error)
}

// RatingRepository is the read-only contract for the MPA catalog.
type RatingRepository interface {
	// GetAll returns every rating ordered by id.
	GetAll(ctx context.Context) ([]model.Rating, error)
	// GetByID returns the rating or ErrNotFound.
	GetByID(ctx context.Context, id uint64) (model.Rating, error)
}
