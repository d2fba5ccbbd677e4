// Package mysql implements the repository contracts on top of MySQL
// using database/sql. Every operation that touches more than one table
// runs inside a single transaction; a partially applied write is a bug,
// not a degraded state. Duplicate-key (1062) and foreign-key (1452)
// errors are translated into the shared repository sentinels.
package mysql

import (
	"context"
	"database/sql"

	"github.com/iliyamo/film-catalog/internal/model"
	"github.com/iliyamo/film-catalog/internal/repository"
)

// GenreRepo reads the immutable genre catalog from the genres table.
type GenreRepo struct {
	db *sql.DB
}

// NewGenreRepo constructs a GenreRepo bound to the given database.
func NewGenreRepo(db *sql.DB) *GenreRepo { return &GenreRepo{db: db} }

// GetAll returns every genre ordered by id.
func (r *GenreRepo) GetAll(ctx context.Context) ([]model.Genre, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id, name FROM genres ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Genre
	for rows.Next() {
		var g model.Genre
		if err := rows.Scan(&g.ID, &g.Name); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

// GetByID returns the genre or ErrNotFound.
func (r *GenreRepo) GetByID(ctx context.Context, id uint64) (model.Genre, error) {
	var g model.Genre
	err := r.db.QueryRowContext(ctx,
		"SELECT id, name FROM genres WHERE id=? LIMIT 1", id).Scan(&g.ID, &g.Name)
	if err == sql.ErrNoRows {
		return model.Genre{}, repository.ErrNotFound
	}
	if err != nil {
		return model.Genre{}, err
	}
	return g, nil
}

// GetManyForFilms loads the genre sets of several films with a single
// IN query instead of one query per film. The result keeps genres
// ordered by id within each film.
func (r *GenreRepo) GetManyForFilms(ctx context.Context, filmIDs []uint64) (map[uint64][]model.Genre, error) {
	out := make(map[uint64][]model.Genre, len(filmIDs))
	if len(filmIDs) == 0 {
		return out, nil
	}

	query := `SELECT fg.film_id, g.id, g.name FROM film_genres fg
		JOIN genres g ON g.id = fg.genre_id
		WHERE fg.film_id IN (`
	args := make([]interface{}, 0, len(filmIDs))
	for i, id := range filmIDs {
		if i > 0 {
			query += ","
		}
		query += "?"
		args = append(args, id)
	}
	query += ") ORDER BY fg.film_id, g.id"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var filmID uint64
		var g model.Genre
		if err := rows.Scan(&filmID, &g.ID, &g.Name); err != nil {
			return nil, err
		}
		out[filmID] = append(out[filmID], g)
	}
	return out, rows.Err()
}

// RatingRepo reads the immutable MPA catalog from the mpa_ratings table.
type RatingRepo struct {
	db *sql.DB
}

// NewRatingRepo constructs a RatingRepo bound to the given database.
func NewRatingRepo(db *sql.DB) *RatingRepo { return &RatingRepo{db: db} }

// GetAll returns every rating ordered by id.
func (r *RatingRepo) GetAll(ctx context.Context) ([]model.Rating, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id, name FROM mpa_ratings ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Rating
	for rows.Next() {
		var m model.Rating
		if err := rows.Scan(&m.ID, &m.Name); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// GetByID returns the rating or ErrNotFound.
func (r *RatingRepo) GetByID(ctx context.Context, id uint64) (model.Rating, error) {
	var m model.Rating
	err := r.db.QueryRowContext(ctx,
		"SELECT id, name FROM mpa_ratings WHERE id=? LIMIT 1", id).Scan(&m.ID, &m.Name)
	if err == sql.ErrNoRows {
		return model.Rating{}, repository.ErrNotFound
	}
	if err != nil {
		return model.Rating{}, err
	}
	return m, nil
}

var (
	_ repository.GenreRepository  = (*GenreRepo)(nil)
	_ repository.RatingRepository = (*RatingRepo)(nil)
)
