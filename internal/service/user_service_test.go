package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/film-catalog/internal/model"
	"github.com/iliyamo/film-catalog/internal/repository"
	"github.com/iliyamo/film-catalog/internal/repository/memory"
	"github.com/iliyamo/film-catalog/internal/validate"
)

func newUserService() (*UserService, *memory.FilmRepo) {
	films := memory.NewFilmRepo()
	return NewUserService(memory.NewUserRepo(), films), films
}

func testUser(login string) *model.User {
	return &model.User{
		Email: login + "@example.com",
		Login: login,
		Name:  login,
	}
}

func TestUserServiceCreateSubstitutesLoginForBlankName(t *testing.T) {
	svc, _ := newUserService()

	u := testUser("dolly")
	u.Name = ""

	created, err := svc.Create(context.Background(), u)
	require.NoError(t, err)
	assert.Equal(t, "dolly", created.Name)
}

func TestUserServiceCreateRejectsInvalidUser(t *testing.T) {
	svc, _ := newUserService()

	u := testUser("bad login")

	_, err := svc.Create(context.Background(), u)
	var verr *validate.Error
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "login", verr.Field)
}

func TestUserServiceUpdate(t *testing.T) {
	svc, _ := newUserService()
	ctx := context.Background()

	created, err := svc.Create(ctx, testUser("carl"))
	require.NoError(t, err)

	bd := model.NewDate(1970, time.August, 8)
	updated, err := svc.Update(ctx, &model.User{
		ID:       created.ID,
		Email:    "carl@new.example.com",
		Login:    "carl",
		Birthday: &bd,
	})
	require.NoError(t, err)
	assert.Equal(t, "carl@new.example.com", updated.Email)
	assert.Equal(t, "carl", updated.Name) // blank name falls back to login

	_, err = svc.Update(ctx, &model.User{ID: 999, Email: "x@y.z", Login: "x"})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUserServiceDeletePurgesLikes(t *testing.T) {
	svc, films := newUserService()
	ctx := context.Background()

	user, err := svc.Create(ctx, testUser("liker"))
	require.NoError(t, err)

	film, err := films.Create(ctx, &model.Film{
		Name:        "liked",
		ReleaseDate: model.NewDate(2015, time.May, 5),
		Duration:    100,
	})
	require.NoError(t, err)
	require.NoError(t, films.AddLike(ctx, film.ID, user.ID))

	removed, err := svc.Delete(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, removed.ID)

	got, err := films.GetByID(ctx, film.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Likes)

	_, err = svc.GetByID(ctx, user.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUserServiceFriendFlow(t *testing.T) {
	svc, _ := newUserService()
	ctx := context.Background()

	alice, err := svc.Create(ctx, testUser("alice"))
	require.NoError(t, err)
	bob, err := svc.Create(ctx, testUser("bob"))
	require.NoError(t, err)
	carol, err := svc.Create(ctx, testUser("carol"))
	require.NoError(t, err)

	require.NoError(t, svc.AddFriend(ctx, alice.ID, carol.ID))
	require.NoError(t, svc.AddFriend(ctx, bob.ID, carol.ID))

	common, err := svc.GetCommonFriends(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	require.Len(t, common, 1)
	assert.Equal(t, carol.ID, common[0].ID)

	require.NoError(t, svc.RemoveFriend(ctx, alice.ID, carol.ID))
	friends, err := svc.GetFriends(ctx, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, friends)

	assert.Equal(t, repository.PolicyDirected, svc.Policy())
}
