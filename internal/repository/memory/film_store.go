package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/iliyamo/film-catalog/internal/model"
	"github.com/iliyamo/film-catalog/internal/repository"
)

// FilmRepo keeps films and their associations in process memory.
// Associations are held in store-owned indexes rather than on the film
// values themselves, so the values handed out are plain copies and all
// locking stays inside the store.  Iteration order is insertion order,
// which is also the tie-break order for GetPopular.
type FilmRepo struct {
	mu     sync.RWMutex
	seq    Sequence
	films  map[uint64]model.Film            // base fields only
	order  []uint64                         // insertion order of ids
	genres map[uint64][]model.Genre         // film id -> genre set
	likes  map[uint64]map[uint64]struct{}   // film id -> liking user ids
}

// NewFilmRepo returns an empty in-memory film store.
func NewFilmRepo() *FilmRepo {
	return &FilmRepo{
		films:  make(map[uint64]model.Film),
		genres: make(map[uint64][]model.Genre),
		likes:  make(map[uint64]map[uint64]struct{}),
	}
}

// hydrate assembles a full film value from the base record and the
// association indexes. Caller must hold at least the read lock.
func (r *FilmRepo) hydrate(id uint64) model.Film {
	f := r.films[id]
	f.Genres = append([]model.Genre(nil), r.genres[id]...)
	f.Likes = likeIDs(r.likes[id])
	return f
}

// likeIDs flattens a like set into a sorted slice for stable output.
func likeIDs(set map[uint64]struct{}) []uint64 {
	ids := make([]uint64, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// dedupeGenres drops duplicate genre ids, keeping the first occurrence
// so the caller-supplied iteration order stays stable.
func dedupeGenres(in []model.Genre) []model.Genre {
	out := make([]model.Genre, 0, len(in))
	seen := make(map[uint64]struct{}, len(in))
	for _, g := range in {
		if _, ok := seen[g.ID]; ok {
			continue
		}
		seen[g.ID] = struct{}{}
		out = append(out, g)
	}
	return out
}

// Create assigns a fresh id and stores the film together with its
// genre set and like set (normally empty at creation).
func (r *FilmRepo) Create(ctx context.Context, film *model.Film) (model.Film, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := r.seq.Next()
	base := *film
	base.ID = id
	base.Genres = nil
	base.Likes = nil

	r.films[id] = base
	r.order = append(r.order, id)
	r.genres[id] = dedupeGenres(film.Genres)
	set := make(map[uint64]struct{}, len(film.Likes))
	for _, uid := range film.Likes {
		set[uid] = struct{}{}
	}
	r.likes[id] = set

	return r.hydrate(id), nil
}

// Update overwrites the base fields and replaces both association sets
// with the supplied ones.
func (r *FilmRepo) Update(ctx context.Context, film *model.Film) (model.Film, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.films[film.ID]; !ok {
		return model.Film{}, repository.ErrNotFound
	}

	base := *film
	base.Genres = nil
	base.Likes = nil
	r.films[film.ID] = base

	r.genres[film.ID] = dedupeGenres(film.Genres)
	set := make(map[uint64]struct{}, len(film.Likes))
	for _, uid := range film.Likes {
		set[uid] = struct{}{}
	}
	r.likes[film.ID] = set

	return r.hydrate(film.ID), nil
}

// GetByID returns the hydrated film or ErrNotFound.
func (r *FilmRepo) GetByID(ctx context.Context, id uint64) (model.Film, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, ok := r.films[id]; !ok {
		return model.Film{}, repository.ErrNotFound
	}
	return r.hydrate(id), nil
}

// GetAll returns every film in insertion order.
func (r *FilmRepo) GetAll(ctx context.Context) ([]model.Film, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.Film, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.hydrate(id))
	}
	return out, nil
}

// Delete removes the film and purges its association indexes.
func (r *FilmRepo) Delete(ctx context.Context, id uint64) (model.Film, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.films[id]; !ok {
		return model.Film{}, repository.ErrNotFound
	}
	removed := r.hydrate(id)

	delete(r.films, id)
	delete(r.genres, id)
	delete(r.likes, id)
	for i, fid := range r.order {
		if fid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return removed, nil
}

// AddLike inserts a like. The film must exist; user existence is
// validated by the caller because this backend does not track users.
func (r *FilmRepo) AddLike(ctx context.Context, filmID, userID uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	set, ok := r.likes[filmID]
	if !ok {
		return repository.ErrNotFound
	}
	if _, dup := set[userID]; dup {
		return repository.ErrConflict
	}
	set[userID] = struct{}{}
	return nil
}

// RemoveLike deletes a like, failing when the pair is not present.
func (r *FilmRepo) RemoveLike(ctx context.Context, filmID, userID uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	set, ok := r.likes[filmID]
	if !ok {
		return repository.ErrNotFound
	}
	if _, present := set[userID]; !present {
		return repository.ErrNotFound
	}
	delete(set, userID)
	return nil
}

// PurgeLikesBy drops every like placed by userID across all films.
func (r *FilmRepo) PurgeLikesBy(ctx context.Context, userID uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, set := range r.likes {
		delete(set, userID)
	}
	return nil
}

// GetPopular orders films by descending like count. The sort is stable
// over insertion order, so equally liked films keep their relative
// positions. A non-positive count yields an empty slice.
func (r *FilmRepo) GetPopular(ctx context.Context, count int) ([]model.Film, error) {
	if count <= 0 {
		return []model.Film{}, nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.Film, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.hydrate(id))
	}
	sort.SliceStable(out, func(i, j int) bool {
		return len(out[i].Likes) > len(out[j].Likes)
	})
	if len(out) > count {
		out = out[:count]
	}
	return out, nil
}

// genresFor exposes the genre association index for batch catalog
// lookups. Films without genres are omitted from the result.
func (r *FilmRepo) genresFor(filmIDs []uint64) map[uint64][]model.Genre {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[uint64][]model.Genre, len(filmIDs))
	for _, id := range filmIDs {
		if gs := r.genres[id]; len(gs) > 0 {
			out[id] = append([]model.Genre(nil), gs...)
		}
	}
	return out
}

var _ repository.FilmRepository = (*FilmRepo)(nil)
