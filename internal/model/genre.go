package model

// Genre is an immutable reference row from the `genres` catalog table.
// Films reference genres by id; the name is resolved at read time.
type Genre struct {
	ID   uint64 `json:"id"`   // genres.id
	Name string `json:"name"` // genres.name
}
