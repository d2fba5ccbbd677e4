package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/film-catalog/internal/model"
	"github.com/iliyamo/film-catalog/internal/service"
)

// defaultPopularCount is used when GET /films/popular carries no count
// query parameter.
const defaultPopularCount = 10

// FilmHandler exposes the film endpoints. All heavy lifting happens in
// the service; the handler only binds, parses ids and maps errors.
type FilmHandler struct {
	Films *service.FilmService
}

// NewFilmHandler constructs a FilmHandler over the given service.
func NewFilmHandler(films *service.FilmService) *FilmHandler {
	return &FilmHandler{Films: films}
}

// List handles GET /films and returns every film.
func (h *FilmHandler) List(c echo.Context) error {
	films, err := h.Films.GetAll(c.Request().Context())
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, films)
}

// Create handles POST /films and adds a new film to the catalog.
func (h *FilmHandler) Create(c echo.Context) error {
	var film model.Film
	if err := c.Bind(&film); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	created, err := h.Films.Create(c.Request().Context(), &film)
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusCreated, created)
}

// Update handles PUT /films. The film id travels in the body, matching
// the rest of the API's aggregate-style updates. The supplied genre
// and like sets fully replace the stored ones.
func (h *FilmHandler) Update(c echo.Context) error {
	var film model.Film
	if err := c.Bind(&film); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	updated, err := h.Films.Update(c.Request().Context(), &film)
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, updated)
}

// GetByID handles GET /films/:id.
func (h *FilmHandler) GetByID(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}
	film, err := h.Films.GetByID(c.Request().Context(), id)
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, film)
}

// Delete handles DELETE /films/:id and returns the removed record.
func (h *FilmHandler) Delete(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}
	removed, err := h.Films.Delete(c.Request().Context(), id)
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, removed)
}

// AddLike handles PUT /films/:id/like/:userId.
func (h *FilmHandler) AddLike(c echo.Context) error {
	filmID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}
	userID, ok := pathID(c, "userId")
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid user id"})
	}
	if err := h.Films.AddLike(c.Request().Context(), filmID, userID); err != nil {
		return httpError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// RemoveLike handles DELETE /films/:id/like/:userId.
func (h *FilmHandler) RemoveLike(c echo.Context) error {
	filmID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}
	userID, ok := pathID(c, "userId")
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid user id"})
	}
	if err := h.Films.RemoveLike(c.Request().Context(), filmID, userID); err != nil {
		return httpError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Popular handles GET /films/popular?count=N. A missing count defaults
// to 10; a non-positive count yields an empty list rather than an
// error.
func (h *FilmHandler) Popular(c echo.Context) error {
	count := defaultPopularCount
	if raw := c.QueryParam("count"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid count"})
		}
		count = n
	}
	films, err := h.Films.GetPopular(c.Request().Context(), count)
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, films)
}
