package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/film-catalog/internal/repository"
	"github.com/iliyamo/film-catalog/internal/validate"
)

// httpError maps the core error taxonomy onto transport status codes:
// validation and conflict problems are the caller's to fix (400),
// missing referents are 404, anything else is an internal failure that
// gets logged and hidden behind a generic 500.
func httpError(c echo.Context, err error) error {
	var ve *validate.Error
	switch {
	case errors.As(err, &ve):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": ve.Error()})
	case errors.Is(err, repository.ErrConflict):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, repository.ErrNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
	default:
		log.Printf("internal error on %s %s: %v", c.Request().Method, c.Path(), err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}

// pathID parses a numeric path parameter, reporting ok=false when it
// is not a valid identifier.
func pathID(c echo.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	return id, err == nil
}
