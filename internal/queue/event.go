// Package queue defines message payloads exchanged over the message broker.
package queue

// FilmLikedEvent is published after a like is successfully recorded.
// It contains enough information for downstream consumers to log or
// trigger analytics without querying the primary database.
type FilmLikedEvent struct {
	FilmID    uint64 `json:"film_id"`
	FilmName  string `json:"film_name"`
	UserID    uint64 `json:"user_id"`
	UserLogin string `json:"user_login"`
	LikeCount int    `json:"like_count"`
	LikedAt   string `json:"liked_at"`
}
