package repository

import (
	"context"

	"github.com/iliyamo/film-catalog/internal/model"
)

// FilmRepository is the storage contract for films and their owned
// associations (genre links and likes). Implementations must treat
// Update with replace semantics: the stored genre set and like set are
// fully replaced by the ones on the supplied film.
//
// Reference validation (genre and mpa ids resolving to catalog rows)
// happens before the repository is called; the in-memory backend does
// not re-check it, the MySQL backend additionally enforces it through
// foreign keys.
type FilmRepository interface {
	// Create assigns a new id and persists the film with its genre and
	// like associations. It returns the fully hydrated record.
	Create(ctx context.Context, film *model.Film) (model.Film, error)
	// Update overwrites the base fields and replaces the genre and like
	// sets. It returns ErrNotFound when the id does not exist.
	Update(ctx context.Context, film *model.Film) (model.Film, error)
	// GetByID returns the hydrated film or ErrNotFound.
	GetByID(ctx context.Context, id uint64) (model.Film, error)
	// GetAll returns every film in the backend's natural iteration
	// order (insertion order in memory, primary-key order in MySQL).
	GetAll(ctx context.Context) ([]model.Film, error)
	// Delete removes the film and all of its like and genre association
	// rows, returning the removed record or ErrNotFound.
	Delete(ctx context.Context, id uint64) (model.Film, error)
	// AddLike inserts a (film, user) like. It returns ErrNotFound when
	// the film is absent and ErrConflict when the like already exists.
	AddLike(ctx context.Context, filmID, userID uint64) error
	// RemoveLike deletes a (film, user) like. It returns ErrNotFound
	// when the like does not exist.
	RemoveLike(ctx context.Context, filmID, userID uint64) error
	// PurgeLikesBy removes every like placed by the given user. Used
	// when a user is deleted so no dangling references survive.
	PurgeLikesBy(ctx context.Context, userID uint64) error
	// GetPopular returns up to count films ordered by descending like
	// count, ties broken by natural iteration order. A non-positive
	// count yields an empty slice.
	GetPopular(ctx context.Context, count int) ([]model.Film, error)
}
