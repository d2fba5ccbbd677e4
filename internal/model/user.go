package model

// User represents an account in the catalog as stored in the `users`
// table.  Friends holds non-owning references to other user ids; under
// the directed friendship policy the slice lists outbound edges only
// (the users this user follows), never inbound ones.
//
// Fields:
//  ID       – primary key identifier of the user.
//  Email    – email address, must contain '@'.
//  Login    – unique login, no whitespace allowed.
//  Name     – display name; defaults to Login when left blank.
//  Birthday – optional date of birth, never in the future.
//  Friends  – ids of users this user follows.
type User struct {
	ID       uint64   `json:"id"`       // users.id
	Email    string   `json:"email"`    // users.email
	Login    string   `json:"login"`    // users.login
	Name     string   `json:"name"`     // users.name
	Birthday *Date    `json:"birthday"` // users.birthday (nullable)
	Friends  []uint64 `json:"friends"`  // friends join, outbound edges
}

// HasFriend reports whether an outbound edge to friendID exists.
func (u *User) HasFriend(friendID uint64) bool {
	for _, id := range u.Friends {
		if id == friendID {
			return true
		}
	}
	return false
}
