package model

// Rating is an immutable reference row from the `mpa_ratings` catalog
// table (the MPA age classification: G, PG, PG-13, R, NC-17).
type Rating struct {
	ID   uint64 `json:"id"`   // mpa_ratings.id
	Name string `json:"name"` // mpa_ratings.name
}
