package service

import (
	"context"
	"fmt"

	"github.com/iliyamo/film-catalog/internal/model"
	"github.com/iliyamo/film-catalog/internal/repository"
	"github.com/iliyamo/film-catalog/internal/validate"
)

// UserService wires user mutations through validation and keeps the
// like relation consistent when users disappear.
type UserService struct {
	users repository.UserRepository
	films repository.FilmRepository
}

// NewUserService constructs a UserService. The film repository is
// needed so deleting a user can purge their likes as well.
func NewUserService(users repository.UserRepository, films repository.FilmRepository) *UserService {
	return &UserService{users: users, films: films}
}

// Create validates the user and persists it. A blank display name is
// substituted with the login before the write.
func (s *UserService) Create(ctx context.Context, user *model.User) (model.User, error) {
	if err := validate.User(user); err != nil {
		return model.User{}, err
	}
	validate.NormalizeUser(user)
	return s.users.Create(ctx, user)
}

// Update validates and overwrites the user's base fields. Blanking the
// name re-applies the login substitution, same as on create.
func (s *UserService) Update(ctx context.Context, user *model.User) (model.User, error) {
	if err := validate.User(user); err != nil {
		return model.User{}, err
	}
	validate.NormalizeUser(user)
	return s.users.Update(ctx, user)
}

// GetByID returns the user or a not-found error.
func (s *UserService) GetByID(ctx context.Context, id uint64) (model.User, error) {
	return s.users.GetByID(ctx, id)
}

// GetAll returns every user in the backend's natural order.
func (s *UserService) GetAll(ctx context.Context) ([]model.User, error) {
	return s.users.GetAll(ctx)
}

// Delete removes the user, their friend edges and every like they
// placed, so no film keeps a dangling reference to the removed id.
func (s *UserService) Delete(ctx context.Context, id uint64) (model.User, error) {
	removed, err := s.users.Delete(ctx, id)
	if err != nil {
		return model.User{}, err
	}
	if err := s.films.PurgeLikesBy(ctx, id); err != nil {
		return model.User{}, fmt.Errorf("purge likes of user %d: %w", id, err)
	}
	return removed, nil
}

// AddFriend establishes a friend edge; both users must exist and the
// edge must not already be present.
func (s *UserService) AddFriend(ctx context.Context, userID, friendID uint64) error {
	return s.users.AddFriend(ctx, userID, friendID)
}

// RemoveFriend deletes a friend edge; removing a missing edge is a
// not-found error.
func (s *UserService) RemoveFriend(ctx context.Context, userID, friendID uint64) error {
	return s.users.RemoveFriend(ctx, userID, friendID)
}

// GetFriends resolves the user's outbound friend edges.
func (s *UserService) GetFriends(ctx context.Context, userID uint64) ([]model.User, error) {
	return s.users.GetFriends(ctx, userID)
}

// GetCommonFriends intersects two users' friend lists.
func (s *UserService) GetCommonFriends(ctx context.Context, userID, otherID uint64) ([]model.User, error) {
	return s.users.GetCommonFriends(ctx, userID, otherID)
}

// Policy exposes which friendship policy the active backend uses.
func (s *UserService) Policy() repository.FriendshipPolicy {
	return s.users.Policy()
}
