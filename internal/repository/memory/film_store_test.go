package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/film-catalog/internal/model"
	"github.com/iliyamo/film-catalog/internal/repository"
)

func sampleFilm(name string) *model.Film {
	return &model.Film{
		Name:        name,
		Description: "a film about " + name,
		ReleaseDate: model.NewDate(2000, time.March, 15),
		Duration:    120,
	}
}

func TestFilmRepoCreateAssignsSequentialIDs(t *testing.T) {
	repo := NewFilmRepo()
	ctx := context.Background()

	first, err := repo.Create(ctx, sampleFilm("first"))
	require.NoError(t, err)
	second, err := repo.Create(ctx, sampleFilm("second"))
	require.NoError(t, err)

	assert.Equal(t, uint64(1), first.ID)
	assert.Equal(t, uint64(2), second.ID)

	got, err := repo.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, first, got)
}

func TestFilmRepoGetByIDUnknown(t *testing.T) {
	repo := NewFilmRepo()

	_, err := repo.GetByID(context.Background(), 42)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestFilmRepoUpdateReplacesGenresAndLikes(t *testing.T) {
	repo := NewFilmRepo()
	ctx := context.Background()

	created, err := repo.Create(ctx, &model.Film{
		Name:        "original",
		ReleaseDate: model.NewDate(1999, time.May, 1),
		Duration:    90,
		Genres:      []model.Genre{{ID: 1, Name: "Comedy"}, {ID: 2, Name: "Drama"}},
		Likes:       []uint64{7, 8},
	})
	require.NoError(t, err)

	updated, err := repo.Update(ctx, &model.Film{
		ID:          created.ID,
		Name:        "renamed",
		ReleaseDate: created.ReleaseDate,
		Duration:    95,
		Genres:      []model.Genre{{ID: 3, Name: "Animation"}},
		Likes:       []uint64{9},
	})
	require.NoError(t, err)

	assert.Equal(t, "renamed", updated.Name)
	assert.Equal(t, []model.Genre{{ID: 3, Name: "Animation"}}, updated.Genres)
	assert.Equal(t, []uint64{9}, updated.Likes)

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, updated, got)
}

func TestFilmRepoUpdateUnknown(t *testing.T) {
	repo := NewFilmRepo()

	_, err := repo.Update(context.Background(), &model.Film{
		ID:          99,
		Name:        "ghost",
		ReleaseDate: model.NewDate(2001, time.January, 2),
		Duration:    10,
	})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestFilmRepoCreateDeduplicatesGenres(t *testing.T) {
	repo := NewFilmRepo()

	created, err := repo.Create(context.Background(), &model.Film{
		Name:        "dupes",
		ReleaseDate: model.NewDate(2010, time.June, 6),
		Duration:    100,
		Genres:      []model.Genre{{ID: 2, Name: "Drama"}, {ID: 2, Name: "Drama"}, {ID: 1, Name: "Comedy"}},
	})
	require.NoError(t, err)

	assert.Equal(t, []model.Genre{{ID: 2, Name: "Drama"}, {ID: 1, Name: "Comedy"}}, created.Genres)
}

func TestFilmRepoGetAllKeepsInsertionOrder(t *testing.T) {
	repo := NewFilmRepo()
	ctx := context.Background()

	for _, name := range []string{"a", "b", "c"} {
		_, err := repo.Create(ctx, sampleFilm(name))
		require.NoError(t, err)
	}

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "a", all[0].Name)
	assert.Equal(t, "b", all[1].Name)
	assert.Equal(t, "c", all[2].Name)
}

func TestFilmRepoDeleteReturnsRemovedFilm(t *testing.T) {
	repo := NewFilmRepo()
	ctx := context.Background()

	created, err := repo.Create(ctx, sampleFilm("doomed"))
	require.NoError(t, err)

	removed, err := repo.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, removed)

	_, err = repo.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = repo.Delete(ctx, created.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestFilmRepoLikes(t *testing.T) {
	repo := NewFilmRepo()
	ctx := context.Background()

	created, err := repo.Create(ctx, sampleFilm("liked"))
	require.NoError(t, err)

	require.NoError(t, repo.AddLike(ctx, created.ID, 5))
	assert.ErrorIs(t, repo.AddLike(ctx, created.ID, 5), repository.ErrConflict)
	assert.ErrorIs(t, repo.AddLike(ctx, 404, 5), repository.ErrNotFound)

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint64{5}, got.Likes)

	require.NoError(t, repo.RemoveLike(ctx, created.ID, 5))
	assert.ErrorIs(t, repo.RemoveLike(ctx, created.ID, 5), repository.ErrNotFound)
}

func TestFilmRepoPurgeLikesBy(t *testing.T) {
	repo := NewFilmRepo()
	ctx := context.Background()

	a, err := repo.Create(ctx, sampleFilm("a"))
	require.NoError(t, err)
	b, err := repo.Create(ctx, sampleFilm("b"))
	require.NoError(t, err)

	require.NoError(t, repo.AddLike(ctx, a.ID, 1))
	require.NoError(t, repo.AddLike(ctx, a.ID, 2))
	require.NoError(t, repo.AddLike(ctx, b.ID, 1))

	require.NoError(t, repo.PurgeLikesBy(ctx, 1))

	gotA, err := repo.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint64{2}, gotA.Likes)

	gotB, err := repo.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Empty(t, gotB.Likes)
}

func TestFilmRepoGetPopular(t *testing.T) {
	repo := NewFilmRepo()
	ctx := context.Background()

	quiet, err := repo.Create(ctx, sampleFilm("quiet"))
	require.NoError(t, err)
	hit, err := repo.Create(ctx, sampleFilm("hit"))
	require.NoError(t, err)
	middling, err := repo.Create(ctx, sampleFilm("middling"))
	require.NoError(t, err)

	for _, uid := range []uint64{1, 2, 3} {
		require.NoError(t, repo.AddLike(ctx, hit.ID, uid))
	}
	require.NoError(t, repo.AddLike(ctx, middling.ID, 1))

	top, err := repo.GetPopular(ctx, 10)
	require.NoError(t, err)
	require.Len(t, top, 3)
	assert.Equal(t, hit.ID, top[0].ID)
	assert.Equal(t, middling.ID, top[1].ID)
	assert.Equal(t, quiet.ID, top[2].ID)

	one, err := repo.GetPopular(ctx, 1)
	require.NoError(t, err)
	require.Len(t, one, 1)
	assert.Equal(t, hit.ID, one[0].ID)

	none, err := repo.GetPopular(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestFilmRepoGetPopularTieBreaksOnInsertionOrder(t *testing.T) {
	repo := NewFilmRepo()
	ctx := context.Background()

	first, err := repo.Create(ctx, sampleFilm("first"))
	require.NoError(t, err)
	second, err := repo.Create(ctx, sampleFilm("second"))
	require.NoError(t, err)

	require.NoError(t, repo.AddLike(ctx, first.ID, 1))
	require.NoError(t, repo.AddLike(ctx, second.ID, 2))

	top, err := repo.GetPopular(ctx, 2)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, first.ID, top[0].ID)
	assert.Equal(t, second.ID, top[1].ID)
}
