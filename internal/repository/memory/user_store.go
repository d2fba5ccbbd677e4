package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/iliyamo/film-catalog/internal/model"
	"github.com/iliyamo/film-catalog/internal/repository"
)

// UserRepo keeps users and the friendship graph in process memory.
// Friend edges live in a store-owned adjacency index keyed by the
// follower id. The directionality of the graph is controlled by the
// FriendshipPolicy fixed at construction time; the store never mixes
// the two behaviors.
type UserRepo struct {
	mu      sync.RWMutex
	seq     Sequence
	users   map[uint64]model.User          // base fields only
	order   []uint64                       // insertion order of ids
	friends map[uint64]map[uint64]struct{} // follower id -> followed ids
	policy  repository.FriendshipPolicy
}

// NewUserRepo returns an empty in-memory user store using the
// canonical directed friendship policy.
func NewUserRepo() *UserRepo {
	return NewUserRepoWithPolicy(repository.PolicyDirected)
}

// NewUserRepoWithPolicy returns an empty store with an explicit
// friendship policy. PolicyMutual reproduces the historical behavior
// where both users appear in each other's friend lists.
func NewUserRepoWithPolicy(policy repository.FriendshipPolicy) *UserRepo {
	return &UserRepo{
		users:   make(map[uint64]model.User),
		friends: make(map[uint64]map[uint64]struct{}),
		policy:  policy,
	}
}

// Policy reports the friendship policy fixed at construction.
func (r *UserRepo) Policy() repository.FriendshipPolicy { return r.policy }

// hydrate assembles a full user value with the outbound friend ids
// resolved from the adjacency index. Caller must hold the read lock.
func (r *UserRepo) hydrate(id uint64) model.User {
	u := r.users[id]
	ids := make([]uint64, 0, len(r.friends[id]))
	for fid := range r.friends[id] {
		ids = append(ids, fid)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	u.Friends = ids
	return u
}

// Create assigns a fresh id and stores the user.
func (r *UserRepo) Create(ctx context.Context, user *model.User) (model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := r.seq.Next()
	base := *user
	base.ID = id
	base.Friends = nil

	r.users[id] = base
	r.order = append(r.order, id)
	r.friends[id] = make(map[uint64]struct{})

	return r.hydrate(id), nil
}

// Update overwrites the user's base fields, leaving the friendship
// graph untouched.
func (r *UserRepo) Update(ctx context.Context, user *model.User) (model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.ID]; !ok {
		return model.User{}, repository.ErrNotFound
	}
	base := *user
	base.Friends = nil
	r.users[user.ID] = base

	return r.hydrate(user.ID), nil
}

// GetByID returns the hydrated user or ErrNotFound.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, ok := r.users[id]; !ok {
		return model.User{}, repository.ErrNotFound
	}
	return r.hydrate(id), nil
}

// GetAll returns every user in insertion order.
func (r *UserRepo) GetAll(ctx context.Context) ([]model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.User, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.hydrate(id))
	}
	return out, nil
}

// Delete removes the user together with every friend edge referencing
// them, inbound or outbound, so no dangling ids survive.
func (r *UserRepo) Delete(ctx context.Context, id uint64) (model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[id]; !ok {
		return model.User{}, repository.ErrNotFound
	}
	removed := r.hydrate(id)

	delete(r.users, id)
	delete(r.friends, id)
	for _, set := range r.friends {
		delete(set, id)
	}
	for i, uid := range r.order {
		if uid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return removed, nil
}

// AddFriend establishes an edge from userID to friendID. Under the
// mutual policy the reverse edge is written in the same critical
// section so the two sides can never drift apart.
func (r *UserRepo) AddFriend(ctx context.Context, userID, friendID uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[userID]; !ok {
		return repository.ErrNotFound
	}
	if _, ok := r.users[friendID]; !ok {
		return repository.ErrNotFound
	}
	if _, dup := r.friends[userID][friendID]; dup {
		return repository.ErrConflict
	}
	r.friends[userID][friendID] = struct{}{}
	if r.policy == repository.PolicyMutual {
		r.friends[friendID][userID] = struct{}{}
	}
	return nil
}

// RemoveFriend deletes the edge from userID to friendID, failing when
// it does not exist. Under the mutual policy the reverse edge goes too.
func (r *UserRepo) RemoveFriend(ctx context.Context, userID, friendID uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	set, ok := r.friends[userID]
	if !ok {
		return repository.ErrNotFound
	}
	if _, present := set[friendID]; !present {
		return repository.ErrNotFound
	}
	delete(set, friendID)
	if r.policy == repository.PolicyMutual {
		delete(r.friends[friendID], userID)
	}
	return nil
}

// GetFriends resolves the outbound edges of userID to full records,
// ordered by user id.
func (r *UserRepo) GetFriends(ctx context.Context, userID uint64) ([]model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, ok := r.users[userID]; !ok {
		return nil, repository.ErrNotFound
	}
	ids := make([]uint64, 0, len(r.friends[userID]))
	for fid := range r.friends[userID] {
		ids = append(ids, fid)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]model.User, 0, len(ids))
	for _, fid := range ids {
		out = append(out, r.hydrate(fid))
	}
	return out, nil
}

// GetCommonFriends intersects the outbound friend sets of two users
// and resolves the result to full records, ordered by user id.
func (r *UserRepo) GetCommonFriends(ctx context.Context, userID, otherID uint64) ([]model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, ok := r.users[userID]; !ok {
		return nil, repository.ErrNotFound
	}
	if _, ok := r.users[otherID]; !ok {
		return nil, repository.ErrNotFound
	}

	ids := make([]uint64, 0)
	for fid := range r.friends[userID] {
		if _, shared := r.friends[otherID][fid]; shared {
			ids = append(ids, fid)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]model.User, 0, len(ids))
	for _, fid := range ids {
		out = append(out, r.hydrate(fid))
	}
	return out, nil
}

var _ repository.UserRepository = (*UserRepo)(nil)
