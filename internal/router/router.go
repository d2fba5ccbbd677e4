package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/iliyamo/film-catalog/internal/handler" // import the handlers that implement the endpoints
)

// RegisterRoutes wires every endpoint of the catalog API onto the
// provided Echo instance. The route shapes mirror the resource layout:
// films own their like sub-resource, users own the friendship
// sub-resource, and the genre/mpa catalogs are read-only.
func RegisterRoutes(e *echo.Echo, f *handler.FilmHandler, u *handler.UserHandler, cat *handler.CatalogHandler) {
	// Health check for load balancers and monitoring.
	e.GET("/healthz", handler.Health)

	// Film endpoints. The static /films/popular route wins over the
	// parameterized /films/:id in echo's route matching.
	films := e.Group("/films")
	films.GET("", f.List)
	films.POST("", f.Create)
	films.PUT("", f.Update)
	films.GET("/popular", f.Popular)
	films.GET("/:id", f.GetByID)
	films.DELETE("/:id", f.Delete)
	films.PUT("/:id/like/:userId", f.AddLike)
	films.DELETE("/:id/like/:userId", f.RemoveLike)

	// User and friendship endpoints.
	users := e.Group("/users")
	users.GET("", u.List)
	users.POST("", u.Create)
	users.PUT("", u.Update)
	users.GET("/:id", u.GetByID)
	users.DELETE("/:id", u.Delete)
	users.PUT("/:id/friends/:friendId", u.AddFriend)
	users.DELETE("/:id/friends/:friendId", u.RemoveFriend)
	users.GET("/:id/friends", u.Friends)
	users.GET("/:id/friends/common/:otherId", u.CommonFriends)

	// Read-only reference data.
	e.GET("/genres", cat.ListGenres)
	e.GET("/genres/:id", cat.GetGenre)
	e.GET("/mpa", cat.ListRatings)
	e.GET("/mpa/:id", cat.GetRating)
}
