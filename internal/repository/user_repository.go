package repository

import (
	"context"

	"github.com/iliyamo/film-catalog/internal/model"
)

// FriendshipPolicy tags how a backend stores friend edges. The project
// historically shipped both behaviors, so the policy is explicit
// instead of incidental: a backend declares exactly one and never mixes
// them.
type FriendshipPolicy string

const (
	// PolicyDirected stores one row per direction: AddFriend(a, b)
	// makes b visible in a's friend list only. This matches the MySQL
	// schema and is the canonical policy.
	PolicyDirected FriendshipPolicy = "directed"
	// PolicyMutual updates both sides on every edge mutation:
	// AddFriend(a, b) makes the users appear in each other's lists.
	// Only the in-memory backend supports it, kept for compatibility
	// with the earlier behavior.
	PolicyMutual FriendshipPolicy = "mutual"
)

// UserRepository is the storage contract for users and the friendship
// graph. Deleting a user must cascade: their likes and every friend
// edge referencing them, inbound or outbound, are removed as well.
type UserRepository interface {
	// Create assigns a new id and persists the user.
	Create(ctx context.Context, user *model.User) (model.User, error)
	// Update overwrites the user's base fields. It returns ErrNotFound
	// when the id does not exist.
	Update(ctx context.Context, user *model.User) (model.User, error)
	// GetByID returns the user with friends resolved, or ErrNotFound.
	GetByID(ctx context.Context, id uint64) (model.User, error)
	// GetAll returns every user in natural iteration order.
	GetAll(ctx context.Context) ([]model.User, error)
	// Delete removes the user and every friend edge referencing them,
	// returning the removed record or ErrNotFound.
	Delete(ctx context.Context, id uint64) (model.User, error)
	// AddFriend establishes an edge from userID to friendID. It returns
	// ErrNotFound when either user is absent and ErrConflict when the
	// edge already exists.
	AddFriend(ctx context.Context, userID, friendID uint64) error
	// RemoveFriend deletes the edge from userID to friendID. It returns
	// ErrNotFound when the edge does not exist.
	RemoveFriend(ctx context.Context, userID, friendID uint64) error
	// GetFriends resolves the outbound edges of userID to full user
	// records. It returns ErrNotFound when userID itself is absent.
	GetFriends(ctx context.Context, userID uint64) ([]model.User, error)
	// GetCommonFriends returns the users present in both friend lists.
	GetCommonFriends(ctx context.Context, userID, otherID uint64) ([]model.User, error)
	// Policy reports which friendship policy the backend implements.
	Policy() FriendshipPolicy
}
