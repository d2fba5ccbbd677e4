package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/film-catalog/internal/repository"
)

// CatalogHandler exposes the read-only genre and MPA reference data.
// It talks to the repositories directly; there is nothing for a
// service layer to add on top of plain lookups.
type CatalogHandler struct {
	Genres  repository.GenreRepository
	Ratings repository.RatingRepository
}

// NewCatalogHandler constructs a CatalogHandler over the catalogs.
func NewCatalogHandler(genres repository.GenreRepository, ratings repository.RatingRepository) *CatalogHandler {
	return &CatalogHandler{Genres: genres, Ratings: ratings}
}

// ListGenres handles GET /genres.
func (h *CatalogHandler) ListGenres(c echo.Context) error {
	genres, err := h.Genres.GetAll(c.Request().Context())
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, genres)
}

// GetGenre handles GET /genres/:id.
func (h *CatalogHandler) GetGenre(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}
	genre, err := h.Genres.GetByID(c.Request().Context(), id)
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, genre)
}

// ListRatings handles GET /mpa.
func (h *CatalogHandler) ListRatings(c echo.Context) error {
	ratings, err := h.Ratings.GetAll(c.Request().Context())
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, ratings)
}

// GetRating handles GET /mpa/:id.
func (h *CatalogHandler) GetRating(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}
	rating, err := h.Ratings.GetByID(c.Request().Context(), id)
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, rating)
}
