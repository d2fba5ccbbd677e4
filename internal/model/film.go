package model

// Film represents a catalogued movie together with its owned
// associations: the set of genres it belongs to and the set of users
// who liked it.  Genre membership is a set (unique by genre id) but
// iteration order is kept stable so repeated reads render the same
// JSON.  Likes hold non-owning references to user ids.
//
// Fields:
//  ID          – primary key identifier, assigned on create.
//  Name        – film title, never empty.
//  Description – optional synopsis, at most 200 characters.
//  ReleaseDate – premiere date, never before 1895-12-28.
//  Duration    – running time in minutes, strictly positive.
//  Mpa         – optional MPA rating reference, nil when unrated.
//  Genres      – genre references, unique by id.
//  Likes       – ids of users who liked the film.
type Film struct {
	ID          uint64   `json:"id"`          // films.id
	Name        string   `json:"name"`        // films.name
	Description string   `json:"description"` // films.description
	ReleaseDate Date     `json:"releaseDate"` // films.release_date
	Duration    int      `json:"duration"`    // films.duration (minutes)
	Mpa         *Rating  `json:"mpa"`         // films.mpa_rating_id, resolved
	Genres      []Genre  `json:"genres"`      // film_genres join, resolved
	Likes       []uint64 `json:"likes"`       // likes join
}

// LikeCount reports how many users liked the film.
func (f *Film) LikeCount() int { return len(f.Likes) }

// HasLike reports whether the given user already liked the film.
func (f *Film) HasLike(userID uint64) bool {
	for _, id := range f.Likes {
		if id == userID {
			return true
		}
	}
	return false
}

// HasGenre reports whether the film already carries the given genre id.
func (f *Film) HasGenre(genreID uint64) bool {
	for _, g := range f.Genres {
		if g.ID == genreID {
			return true
		}
	}
	return false
}
