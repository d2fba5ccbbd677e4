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

func sampleUser(login string) *model.User {
	bd := model.NewDate(1990, time.April, 12)
	return &model.User{
		Email:    login + "@example.com",
		Login:    login,
		Name:     login,
		Birthday: &bd,
	}
}

func TestUserRepoCreateAndGet(t *testing.T) {
	repo := NewUserRepo()
	ctx := context.Background()

	created, err := repo.Create(ctx, sampleUser("alice"))
	require.NoError(t, err)
	assert.Equal(t, uint64(1), created.ID)

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	_, err = repo.GetByID(ctx, 77)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUserRepoUpdateKeepsFriendGraph(t *testing.T) {
	repo := NewUserRepo()
	ctx := context.Background()

	alice, err := repo.Create(ctx, sampleUser("alice"))
	require.NoError(t, err)
	bob, err := repo.Create(ctx, sampleUser("bob"))
	require.NoError(t, err)
	require.NoError(t, repo.AddFriend(ctx, alice.ID, bob.ID))

	updated, err := repo.Update(ctx, &model.User{
		ID:    alice.ID,
		Email: "new@example.com",
		Login: "alice2",
		Name:  "Alice",
	})
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", updated.Email)
	assert.Equal(t, []uint64{bob.ID}, updated.Friends)
}

func TestUserRepoDirectedFriendship(t *testing.T) {
	repo := NewUserRepo()
	ctx := context.Background()

	alice, err := repo.Create(ctx, sampleUser("alice"))
	require.NoError(t, err)
	bob, err := repo.Create(ctx, sampleUser("bob"))
	require.NoError(t, err)

	require.NoError(t, repo.AddFriend(ctx, alice.ID, bob.ID))

	aliceFriends, err := repo.GetFriends(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, aliceFriends, 1)
	assert.Equal(t, bob.ID, aliceFriends[0].ID)

	// Directed policy: no reverse edge until bob adds alice himself.
	bobFriends, err := repo.GetFriends(ctx, bob.ID)
	require.NoError(t, err)
	assert.Empty(t, bobFriends)
}

func TestUserRepoMutualFriendship(t *testing.T) {
	repo := NewUserRepoWithPolicy(repository.PolicyMutual)
	ctx := context.Background()

	alice, err := repo.Create(ctx, sampleUser("alice"))
	require.NoError(t, err)
	bob, err := repo.Create(ctx, sampleUser("bob"))
	require.NoError(t, err)

	require.NoError(t, repo.AddFriend(ctx, alice.ID, bob.ID))

	bobFriends, err := repo.GetFriends(ctx, bob.ID)
	require.NoError(t, err)
	require.Len(t, bobFriends, 1)
	assert.Equal(t, alice.ID, bobFriends[0].ID)

	require.NoError(t, repo.RemoveFriend(ctx, bob.ID, alice.ID))

	aliceFriends, err := repo.GetFriends(ctx, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, aliceFriends)
}

func TestUserRepoAddFriendErrors(t *testing.T) {
	repo := NewUserRepo()
	ctx := context.Background()

	alice, err := repo.Create(ctx, sampleUser("alice"))
	require.NoError(t, err)
	bob, err := repo.Create(ctx, sampleUser("bob"))
	require.NoError(t, err)

	assert.ErrorIs(t, repo.AddFriend(ctx, alice.ID, 404), repository.ErrNotFound)
	assert.ErrorIs(t, repo.AddFriend(ctx, 404, bob.ID), repository.ErrNotFound)

	require.NoError(t, repo.AddFriend(ctx, alice.ID, bob.ID))
	assert.ErrorIs(t, repo.AddFriend(ctx, alice.ID, bob.ID), repository.ErrConflict)
}

func TestUserRepoRemoveFriendMissingEdge(t *testing.T) {
	repo := NewUserRepo()
	ctx := context.Background()

	alice, err := repo.Create(ctx, sampleUser("alice"))
	require.NoError(t, err)
	bob, err := repo.Create(ctx, sampleUser("bob"))
	require.NoError(t, err)

	assert.ErrorIs(t, repo.RemoveFriend(ctx, alice.ID, bob.ID), repository.ErrNotFound)
}

func TestUserRepoGetCommonFriends(t *testing.T) {
	repo := NewUserRepo()
	ctx := context.Background()

	alice, err := repo.Create(ctx, sampleUser("alice"))
	require.NoError(t, err)
	bob, err := repo.Create(ctx, sampleUser("bob"))
	require.NoError(t, err)
	carol, err := repo.Create(ctx, sampleUser("carol"))
	require.NoError(t, err)
	dave, err := repo.Create(ctx, sampleUser("dave"))
	require.NoError(t, err)

	require.NoError(t, repo.AddFriend(ctx, alice.ID, carol.ID))
	require.NoError(t, repo.AddFriend(ctx, alice.ID, dave.ID))
	require.NoError(t, repo.AddFriend(ctx, bob.ID, carol.ID))

	common, err := repo.GetCommonFriends(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	require.Len(t, common, 1)
	assert.Equal(t, carol.ID, common[0].ID)

	none, err := repo.GetCommonFriends(ctx, carol.ID, dave.ID)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestUserRepoDeletePurgesInboundEdges(t *testing.T) {
	repo := NewUserRepo()
	ctx := context.Background()

	alice, err := repo.Create(ctx, sampleUser("alice"))
	require.NoError(t, err)
	bob, err := repo.Create(ctx, sampleUser("bob"))
	require.NoError(t, err)
	require.NoError(t, repo.AddFriend(ctx, alice.ID, bob.ID))

	removed, err := repo.Delete(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, bob.ID, removed.ID)

	aliceFriends, err := repo.GetFriends(ctx, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, aliceFriends)

	_, err = repo.Delete(ctx, bob.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
