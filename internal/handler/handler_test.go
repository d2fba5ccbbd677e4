package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/film-catalog/internal/handler"
	"github.com/iliyamo/film-catalog/internal/repository/memory"
	"github.com/iliyamo/film-catalog/internal/router"
	"github.com/iliyamo/film-catalog/internal/service"
)

// newServer wires the full API over the in-memory backend, the same
// way main does minus the middleware.
func newServer() *echo.Echo {
	films := memory.NewFilmRepo()
	users := memory.NewUserRepo()
	genres := memory.NewGenreRepo(films)
	ratings := memory.NewRatingRepo()

	filmSvc := service.NewFilmService(films, users, genres, ratings, false)
	userSvc := service.NewUserService(users, films)

	e := echo.New()
	router.RegisterRoutes(e,
		handler.NewFilmHandler(filmSvc),
		handler.NewUserHandler(userSvc),
		handler.NewCatalogHandler(genres, ratings),
	)
	return e
}

func do(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, into interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), into))
}
