package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/film-catalog/internal/model"
	"github.com/iliyamo/film-catalog/internal/service"
)

// UserHandler exposes the user and friendship endpoints.
type UserHandler struct {
	Users *service.UserService
}

// NewUserHandler constructs a UserHandler over the given service.
func NewUserHandler(users *service.UserService) *UserHandler {
	return &UserHandler{Users: users}
}

// List handles GET /users and returns every user.
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.Users.GetAll(c.Request().Context())
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, users)
}

// Create handles POST /users.
func (h *UserHandler) Create(c echo.Context) error {
	var user model.User
	if err := c.Bind(&user); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	created, err := h.Users.Create(c.Request().Context(), &user)
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusCreated, created)
}

// Update handles PUT /users. The user id travels in the body.
func (h *UserHandler) Update(c echo.Context) error {
	var user model.User
	if err := c.Bind(&user); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	updated, err := h.Users.Update(c.Request().Context(), &user)
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, updated)
}

// GetByID handles GET /users/:id.
func (h *UserHandler) GetByID(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}
	user, err := h.Users.GetByID(c.Request().Context(), id)
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

// Delete handles DELETE /users/:id and returns the removed record.
// The delete cascades: likes and friend edges referencing the user go
// with it.
func (h *UserHandler) Delete(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}
	removed, err := h.Users.Delete(c.Request().Context(), id)
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, removed)
}

// AddFriend handles PUT /users/:id/friends/:friendId.
func (h *UserHandler) AddFriend(c echo.Context) error {
	userID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}
	friendID, ok := pathID(c, "friendId")
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid friend id"})
	}
	if err := h.Users.AddFriend(c.Request().Context(), userID, friendID); err != nil {
		return httpError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// RemoveFriend handles DELETE /users/:id/friends/:friendId.
func (h *UserHandler) RemoveFriend(c echo.Context) error {
	userID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}
	friendID, ok := pathID(c, "friendId")
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid friend id"})
	}
	if err := h.Users.RemoveFriend(c.Request().Context(), userID, friendID); err != nil {
		return httpError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Friends handles GET /users/:id/friends.
func (h *UserHandler) Friends(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}
	friends, err := h.Users.GetFriends(c.Request().Context(), id)
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, friends)
}

// CommonFriends handles GET /users/:id/friends/common/:otherId.
func (h *UserHandler) CommonFriends(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}
	otherID, ok := pathID(c, "otherId")
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid other id"})
	}
	common, err := h.Users.GetCommonFriends(c.Request().Context(), id, otherID)
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, common)
}
