package mysql

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/iliyamo/film-catalog/internal/model"
	"github.com/iliyamo/film-catalog/internal/repository"
)

// FilmRepo provides film persistence on top of the films, film_genres
// and likes tables. Multi-table writes (create, update, delete) run in
// one transaction so association rows can never drift from the base
// row. Hydration of genre names goes through GenreRepo's batch lookup.
type FilmRepo struct {
	db     *sql.DB
	genres *GenreRepo
}

// NewFilmRepo constructs a FilmRepo bound to the given database and
// genre catalog.
func NewFilmRepo(db *sql.DB, genres *GenreRepo) *FilmRepo {
	return &FilmRepo{db: db, genres: genres}
}

// selectFilm is the base projection shared by all read paths. The MPA
// rating is resolved in the same query via a LEFT JOIN so unrated
// films come back with a NULL pair.
const selectFilm = `SELECT f.id, f.name, f.description, f.release_date, f.duration,
	f.mpa_rating_id, m.name
	FROM films f LEFT JOIN mpa_ratings m ON m.id = f.mpa_rating_id`

// scanFilm reads one row of the selectFilm projection.
func scanFilm(rows interface{ Scan(...interface{}) error }) (model.Film, error) {
	var (
		f        model.Film
		desc     sql.NullString
		release  time.Time
		mpaID    sql.NullInt64
		mpaName  sql.NullString
	)
	err := rows.Scan(&f.ID, &f.Name, &desc, &release, &f.Duration, &mpaID, &mpaName)
	if err != nil {
		return model.Film{}, err
	}
	f.Description = desc.String
	f.ReleaseDate = model.Date{Time: release}
	if mpaID.Valid && mpaName.Valid {
		f.Mpa = &model.Rating{ID: uint64(mpaID.Int64), Name: mpaName.String}
	}
	return f, nil
}

// mpaArg extracts the nullable mpa_rating_id insert/update argument.
func mpaArg(f *model.Film) interface{} {
	if f.Mpa == nil {
		return nil
	}
	return f.Mpa.ID
}

// Create inserts the base row plus genre and like association rows in a
// single transaction and returns the hydrated record.
func (r *FilmRepo) Create(ctx context.Context, film *model.Film) (model.Film, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return model.Film{}, err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		"INSERT INTO films (name, description, release_date, duration, mpa_rating_id) VALUES (?,?,?,?,?)",
		film.Name, film.Description, film.ReleaseDate.Time, film.Duration, mpaArg(film))
	if err != nil {
		return model.Film{}, translate(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Film{}, err
	}

	if err := insertGenres(ctx, tx, uint64(id), film.Genres); err != nil {
		return model.Film{}, translate(err)
	}
	if err := insertLikes(ctx, tx, uint64(id), film.Likes); err != nil {
		return model.Film{}, translate(err)
	}
	if err := tx.Commit(); err != nil {
		return model.Film{}, err
	}
	return r.GetByID(ctx, uint64(id))
}

// Update overwrites the base row and fully replaces both association
// sets within one transaction. Missing ids surface as ErrNotFound
// before anything is written.
func (r *FilmRepo) Update(ctx context.Context, film *model.Film) (model.Film, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return model.Film{}, err
	}
	defer func() { _ = tx.Rollback() }()

	// Existence check up front: MySQL reports zero affected rows for
	// no-op updates, so RowsAffected cannot distinguish missing ids.
	var exists uint64
	err = tx.QueryRowContext(ctx, "SELECT id FROM films WHERE id=? LIMIT 1", film.ID).Scan(&exists)
	if err == sql.ErrNoRows {
		return model.Film{}, repository.ErrNotFound
	}
	if err != nil {
		return model.Film{}, err
	}

	_, err = tx.ExecContext(ctx,
		"UPDATE films SET name=?, description=?, release_date=?, duration=?, mpa_rating_id=? WHERE id=?",
		film.Name, film.Description, film.ReleaseDate.Time, film.Duration, mpaArg(film), film.ID)
	if err != nil {
		return model.Film{}, translate(err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM film_genres WHERE film_id=?", film.ID); err != nil {
		return model.Film{}, err
	}
	if err := insertGenres(ctx, tx, film.ID, film.Genres); err != nil {
		return model.Film{}, translate(err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM likes WHERE film_id=?", film.ID); err != nil {
		return model.Film{}, err
	}
	if err := insertLikes(ctx, tx, film.ID, film.Likes); err != nil {
		return model.Film{}, translate(err)
	}
	if err := tx.Commit(); err != nil {
		return model.Film{}, err
	}
	return r.GetByID(ctx, film.ID)
}

// insertGenres bulk-inserts the genre association rows. Duplicate ids
// in the input are collapsed so the unique key never trips on caller
// input.
func insertGenres(ctx context.Context, tx *sql.Tx, filmID uint64, genres []model.Genre) error {
	seen := make(map[uint64]struct{}, len(genres))
	rows := make([]uint64, 0, len(genres))
	for _, g := range genres {
		if _, dup := seen[g.ID]; dup {
			continue
		}
		seen[g.ID] = struct{}{}
		rows = append(rows, g.ID)
	}
	if len(rows) == 0 {
		return nil
	}
	query := "INSERT INTO film_genres (film_id, genre_id) VALUES "
	args := make([]interface{}, 0, len(rows)*2)
	for i, gid := range rows {
		if i > 0 {
			query += ","
		}
		query += "(?,?)"
		args = append(args, filmID, gid)
	}
	_, err := tx.ExecContext(ctx, query, args...)
	return err
}

// insertLikes bulk-inserts like rows for update's replace semantics.
func insertLikes(ctx context.Context, tx *sql.Tx, filmID uint64, likes []uint64) error {
	if len(likes) == 0 {
		return nil
	}
	query := "INSERT INTO likes (film_id, user_id) VALUES "
	args := make([]interface{}, 0, len(likes)*2)
	for i, uid := range likes {
		if i > 0 {
			query += ","
		}
		query += "(?,?)"
		args = append(args, filmID, uid)
	}
	_, err := tx.ExecContext(ctx, query, args...)
	return err
}

// GetByID returns the hydrated film or ErrNotFound.
func (r *FilmRepo) GetByID(ctx context.Context, id uint64) (model.Film, error) {
	row := r.db.QueryRowContext(ctx, selectFilm+" WHERE f.id=? LIMIT 1", id)
	f, err := scanFilm(row)
	if err == sql.ErrNoRows {
		return model.Film{}, repository.ErrNotFound
	}
	if err != nil {
		return model.Film{}, err
	}
	films := []model.Film{f}
	if err := r.attach(ctx, films); err != nil {
		return model.Film{}, err
	}
	return films[0], nil
}

// GetAll returns every film in primary-key order.
func (r *FilmRepo) GetAll(ctx context.Context) ([]model.Film, error) {
	rows, err := r.db.QueryContext(ctx, selectFilm+" ORDER BY f.id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var films []model.Film
	for rows.Next() {
		f, err := scanFilm(rows)
		if err != nil {
			return nil, err
		}
		films = append(films, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.attach(ctx, films); err != nil {
		return nil, err
	}
	return films, nil
}

// attach hydrates genre sets and like sets for a batch of films using
// one query per association kind instead of one per film.
func (r *FilmRepo) attach(ctx context.Context, films []model.Film) error {
	if len(films) == 0 {
		return nil
	}
	ids := make([]uint64, len(films))
	for i := range films {
		ids[i] = films[i].ID
	}

	genres, err := r.genres.GetManyForFilms(ctx, ids)
	if err != nil {
		return err
	}

	query := "SELECT film_id, user_id FROM likes WHERE film_id IN ("
	args := make([]interface{}, 0, len(ids))
	for i, id := range ids {
		if i > 0 {
			query += ","
		}
		query += "?"
		args = append(args, id)
	}
	query += ") ORDER BY film_id, user_id"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	likes := make(map[uint64][]uint64, len(ids))
	for rows.Next() {
		var filmID, userID uint64
		if err := rows.Scan(&filmID, &userID); err != nil {
			return err
		}
		likes[filmID] = append(likes[filmID], userID)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for i := range films {
		films[i].Genres = genres[films[i].ID]
		films[i].Likes = likes[films[i].ID]
	}
	return nil
}

// Delete removes the film together with its association rows in one
// transaction and returns the removed record.
func (r *FilmRepo) Delete(ctx context.Context, id uint64) (model.Film, error) {
	removed, err := r.GetByID(ctx, id)
	if err != nil {
		return model.Film{}, err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return model.Film{}, err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM likes WHERE film_id=?", id); err != nil {
		return model.Film{}, err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM film_genres WHERE film_id=?", id); err != nil {
		return model.Film{}, err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM films WHERE id=?", id); err != nil {
		return model.Film{}, err
	}
	if err := tx.Commit(); err != nil {
		return model.Film{}, err
	}
	return removed, nil
}

// AddLike inserts a like row. The unique key turns duplicates into
// ErrConflict; the foreign keys turn a missing film or user into
// ErrNotFound.
func (r *FilmRepo) AddLike(ctx context.Context, filmID, userID uint64) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO likes (film_id, user_id) VALUES (?,?)", filmID, userID)
	return translate(err)
}

// RemoveLike deletes a like row, failing when it does not exist.
func (r *FilmRepo) RemoveLike(ctx context.Context, filmID, userID uint64) error {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM likes WHERE film_id=? AND user_id=?", filmID, userID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// PurgeLikesBy removes every like placed by the given user.
func (r *FilmRepo) PurgeLikesBy(ctx context.Context, userID uint64) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM likes WHERE user_id=?", userID)
	return err
}

// GetPopular orders films by like count with the primary key as the
// tie-break, which is this backend's natural iteration order.
func (r *FilmRepo) GetPopular(ctx context.Context, count int) ([]model.Film, error) {
	if count <= 0 {
		return []model.Film{}, nil
	}
	query := `SELECT f.id, f.name, f.description, f.release_date, f.duration,
	f.mpa_rating_id, m.name
	FROM films f LEFT JOIN mpa_ratings m ON m.id = f.mpa_rating_id
	LEFT JOIN likes l ON l.film_id = f.id
	GROUP BY f.id, m.name
	ORDER BY COUNT(l.user_id) DESC, f.id ASC
	LIMIT ?`

	rows, err := r.db.QueryContext(ctx, query, count)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var films []model.Film
	for rows.Next() {
		f, err := scanFilm(rows)
		if err != nil {
			return nil, err
		}
		films = append(films, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.attach(ctx, films); err != nil {
		return nil, err
	}
	return films, nil
}

// translate maps MySQL error codes onto the repository sentinels:
// 1062 (duplicate key) becomes ErrConflict, 1452 (foreign key) becomes
// ErrNotFound because the referenced row is what is missing.
func translate(err error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	if strings.Contains(msg, "1062") {
		return repository.ErrConflict
	}
	if strings.Contains(msg, "1452") {
		return repository.ErrNotFound
	}
	return err
}

var _ repository.FilmRepository = (*FilmRepo)(nil)
