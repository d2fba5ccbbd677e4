package validate

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/film-catalog/internal/model"
)

func validFilm() *model.Film {
	return &model.Film{
		Name:        "The Example",
		Description: "something happens",
		ReleaseDate: model.NewDate(2010, time.October, 10),
		Duration:    132,
	}
}

func TestFilm(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*model.Film)
		field   string
	}{
		{"valid", func(f *model.Film) {}, ""},
		{"blank name", func(f *model.Film) { f.Name = "   " }, "name"},
		{"description too long", func(f *model.Film) { f.Description = strings.Repeat("x", 201) }, "description"},
		{"description at limit", func(f *model.Film) { f.Description = strings.Repeat("я", 200) }, ""},
		{"zero duration", func(f *model.Film) { f.Duration = 0 }, "duration"},
		{"negative duration", func(f *model.Film) { f.Duration = -5 }, "duration"},
		{"missing release date", func(f *model.Film) { f.ReleaseDate = model.Date{} }, "releaseDate"},
		{"before first screening", func(f *model.Film) { f.ReleaseDate = model.NewDate(1895, time.December, 27) }, "releaseDate"},
		{"first screening day", func(f *model.Film) { f.ReleaseDate = model.NewDate(1895, time.December, 28) }, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := validFilm()
			tc.mutate(f)
			err := Film(f)
			if tc.field == "" {
				assert.NoError(t, err)
				return
			}
			var verr *Error
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.field, verr.Field)
		})
	}
}

func validUser() *model.User {
	bd := model.NewDate(1985, time.February, 20)
	return &model.User{
		Email:    "user@example.com",
		Login:    "user",
		Name:     "User",
		Birthday: &bd,
	}
}

func TestUser(t *testing.T) {
	future := model.NewDate(time.Now().Year()+1, time.January, 1)

	cases := []struct {
		name   string
		mutate func(*model.User)
		field  string
	}{
		{"valid", func(u *model.User) {}, ""},
		{"no birthday", func(u *model.User) { u.Birthday = nil }, ""},
		{"blank email", func(u *model.User) { u.Email = "" }, "email"},
		{"email without at", func(u *model.User) { u.Email = "user.example.com" }, "email"},
		{"blank login", func(u *model.User) { u.Login = "" }, "login"},
		{"login with space", func(u *model.User) { u.Login = "us er" }, "login"},
		{"login with tab", func(u *model.User) { u.Login = "us\ter" }, "login"},
		{"future birthday", func(u *model.User) { u.Birthday = &future }, "birthday"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			u := validUser()
			tc.mutate(u)
			err := User(u)
			if tc.field == "" {
				assert.NoError(t, err)
				return
			}
			var verr *Error
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.field, verr.Field)
		})
	}
}

func TestNormalizeUser(t *testing.T) {
	u := validUser()
	u.Name = "  "
	NormalizeUser(u)
	assert.Equal(t, "user", u.Name)

	kept := validUser()
	kept.Name = "Custom"
	NormalizeUser(kept)
	assert.Equal(t, "Custom", kept.Name)
}
