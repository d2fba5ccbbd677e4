package memory

import (
	"context"

	"github.com/iliyamo/film-catalog/internal/model"
	"github.com/iliyamo/film-catalog/internal/repository"
)

// defaultGenres and defaultRatings mirror the seed rows the MySQL
// schema inserts, so both backends expose the same catalog.
var defaultGenres = []model.Genre{
	{ID: 1, Name: "Comedy"},
	{ID: 2, Name: "Drama"},
	{ID: 3, Name: "Animation"},
	{ID: 4, Name: "Thriller"},
	{ID: 5, Name: "Documentary"},
	{ID: 6, Name: "Action"},
}

var defaultRatings = []model.Rating{
	{ID: 1, Name: "G"},
	{ID: 2, Name: "PG"},
	{ID: 3, Name: "PG-13"},
	{ID: 4, Name: "R"},
	{ID: 5, Name: "NC-17"},
}

// GenreRepo serves the immutable genre catalog from memory. Batch
// film lookups are answered from the film store's association index,
// which plays the role of the film_genres join table.
type GenreRepo struct {
	byID  map[uint64]model.Genre
	all   []model.Genre
	films *FilmRepo
}

// NewGenreRepo returns a genre catalog seeded with the default rows,
// bound to the film store that owns the genre associations.
func NewGenreRepo(films *FilmRepo) *GenreRepo {
	r := &GenreRepo{
		byID:  make(map[uint64]model.Genre, len(defaultGenres)),
		all:   append([]model.Genre(nil), defaultGenres...),
		films: films,
	}
	for _, g := range r.all {
		r.byID[g.ID] = g
	}
	return r
}

// GetAll returns every genre ordered by id.
func (r *GenreRepo) GetAll(ctx context.Context) ([]model.Genre, error) {
	return append([]model.Genre(nil), r.all...), nil
}

// GetByID returns the genre or ErrNotFound.
func (r *GenreRepo) GetByID(ctx context.Context, id uint64) (model.Genre, error) {
	g, ok := r.byID[id]
	if !ok {
		return model.Genre{}, repository.ErrNotFound
	}
	return g, nil
}

// GetManyForFilms resolves genre sets for several films at once from
// the film store's index.
func (r *GenreRepo) GetManyForFilms(ctx context.Context, filmIDs []uint64) (map[uint64][]model.Genre, error) {
	if len(filmIDs) == 0 {
		return map[uint64][]model.Genre{}, nil
	}
	return r.films.genresFor(filmIDs), nil
}

// RatingRepo serves the immutable MPA catalog from memory.
type RatingRepo struct {
	byID map[uint64]model.Rating
	all  []model.Rating
}

// NewRatingRepo returns an MPA catalog seeded with the default rows.
func NewRatingRepo() *RatingRepo {
	r := &RatingRepo{
		byID: make(map[uint64]model.Rating, len(defaultRatings)),
		all:  append([]model.Rating(nil), defaultRatings...),
	}
	for _, m := range r.all {
		r.byID[m.ID] = m
	}
	return r
}

// GetAll returns every rating ordered by id.
func (r *RatingRepo) GetAll(ctx context.Context) ([]model.Rating, error) {
	return append([]model.Rating(nil), r.all...), nil
}

// GetByID returns the rating or ErrNotFound.
func (r *RatingRepo) GetByID(ctx context.Context, id uint64) (model.Rating, error) {
	m, ok := r.byID[id]
	if !ok {
		return model.Rating{}, repository.ErrNotFound
	}
	return m, nil
}

var (
	_ repository.GenreRepository  = (*GenreRepo)(nil)
	_ repository.RatingRepository = (*RatingRepo)(nil)
)
