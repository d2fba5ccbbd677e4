package mysql

import (
	"context"
	"database/sql"

	"github.com/iliyamo/film-catalog/internal/model"
	"github.com/iliyamo/film-catalog/internal/repository"
)

// UserRepo provides user persistence on top of the users and friends
// tables. The friends table stores one row per direction, so this
// backend always implements the directed friendship policy.
type UserRepo struct {
	db *sql.DB
}

// NewUserRepo constructs a UserRepo bound to the given database.
func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{db: db} }

// Policy reports the directed policy; the schema admits no other.
func (r *UserRepo) Policy() repository.FriendshipPolicy { return repository.PolicyDirected }

// birthdayArg extracts the nullable birthday insert/update argument.
func birthdayArg(u *model.User) interface{} {
	if u.Birthday == nil {
		return nil
	}
	return u.Birthday.Time
}

// scanUser reads one row of the users projection.
func scanUser(rows interface{ Scan(...interface{}) error }) (model.User, error) {
	var (
		u        model.User
		birthday sql.NullTime
	)
	err := rows.Scan(&u.ID, &u.Email, &u.Login, &u.Name, &birthday)
	if err != nil {
		return model.User{}, err
	}
	if birthday.Valid {
		u.Birthday = &model.Date{Time: birthday.Time}
	}
	return u, nil
}

const selectUser = "SELECT id, email, login, name, birthday FROM users"

// Create inserts the user and returns the stored record.
func (r *UserRepo) Create(ctx context.Context, user *model.User) (model.User, error) {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO users (email, login, name, birthday) VALUES (?,?,?,?)",
		user.Email, user.Login, user.Name, birthdayArg(user))
	if err != nil {
		return model.User{}, translate(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.User{}, err
	}
	return r.GetByID(ctx, uint64(id))
}

// Update overwrites the user's base fields. The existence check runs
// first because MySQL reports zero affected rows for no-op updates.
func (r *UserRepo) Update(ctx context.Context, user *model.User) (model.User, error) {
	var exists uint64
	err := r.db.QueryRowContext(ctx,
		"SELECT id FROM users WHERE id=? LIMIT 1", user.ID).Scan(&exists)
	if err == sql.ErrNoRows {
		return model.User{}, repository.ErrNotFound
	}
	if err != nil {
		return model.User{}, err
	}

	_, err = r.db.ExecContext(ctx,
		"UPDATE users SET email=?, login=?, name=?, birthday=? WHERE id=?",
		user.Email, user.Login, user.Name, birthdayArg(user), user.ID)
	if err != nil {
		return model.User{}, translate(err)
	}
	return r.GetByID(ctx, user.ID)
}

// GetByID returns the user with outbound friend ids resolved, or
// ErrNotFound.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	row := r.db.QueryRowContext(ctx, selectUser+" WHERE id=? LIMIT 1", id)
	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return model.User{}, repository.ErrNotFound
	}
	if err != nil {
		return model.User{}, err
	}

	rows, err := r.db.QueryContext(ctx,
		"SELECT friend_id FROM friends WHERE user_id=? ORDER BY friend_id", id)
	if err != nil {
		return model.User{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var fid uint64
		if err := rows.Scan(&fid); err != nil {
			return model.User{}, err
		}
		u.Friends = append(u.Friends, fid)
	}
	return u, rows.Err()
}

// GetAll returns every user in primary-key order with friend ids
// attached through a single join query.
func (r *UserRepo) GetAll(ctx context.Context) ([]model.User, error) {
	rows, err := r.db.QueryContext(ctx, selectUser+" ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []model.User
	index := make(map[uint64]int)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		index[u.ID] = len(users)
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return users, nil
	}

	frows, err := r.db.QueryContext(ctx,
		"SELECT user_id, friend_id FROM friends ORDER BY user_id, friend_id")
	if err != nil {
		return nil, err
	}
	defer frows.Close()
	for frows.Next() {
		var uid, fid uint64
		if err := frows.Scan(&uid, &fid); err != nil {
			return nil, err
		}
		if i, ok := index[uid]; ok {
			users[i].Friends = append(users[i].Friends, fid)
		}
	}
	return users, frows.Err()
}

// Delete removes the user together with their likes and every friend
// edge referencing them, all inside one transaction.
func (r *UserRepo) Delete(ctx context.Context, id uint64) (model.User, error) {
	removed, err := r.GetByID(ctx, id)
	if err != nil {
		return model.User{}, err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return model.User{}, err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM likes WHERE user_id=?", id); err != nil {
		return model.User{}, err
	}
	if _, err := tx.ExecContext(ctx,
		"DELETE FROM friends WHERE user_id=? OR friend_id=?", id, id); err != nil {
		return model.User{}, err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM users WHERE id=?", id); err != nil {
		return model.User{}, err
	}
	if err := tx.Commit(); err != nil {
		return model.User{}, err
	}
	return removed, nil
}

// AddFriend inserts one directed edge. The unique key turns duplicate
// edges into ErrConflict; the foreign keys turn missing users into
// ErrNotFound.
func (r *UserRepo) AddFriend(ctx context.Context, userID, friendID uint64) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO friends (user_id, friend_id) VALUES (?,?)", userID, friendID)
	return translate(err)
}

// RemoveFriend deletes the directed edge, failing when it is absent.
func (r *UserRepo) RemoveFriend(ctx context.Context, userID, friendID uint64) error {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM friends WHERE user_id=? AND friend_id=?", userID, friendID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// GetFriends resolves the outbound edges of userID to full records.
func (r *UserRepo) GetFriends(ctx context.Context, userID uint64) ([]model.User, error) {
	if _, err := r.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx,
		selectUser+" WHERE id IN (SELECT friend_id FROM friends WHERE user_id=?) ORDER BY id",
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// GetCommonFriends intersects the outbound friend sets of two users.
func (r *UserRepo) GetCommonFriends(ctx context.Context, userID, otherID uint64) ([]model.User, error) {
	if _, err := r.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	if _, err := r.GetByID(ctx, otherID); err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx,
		selectUser+` WHERE id IN (
			SELECT f1.friend_id FROM friends f1
			JOIN friends f2 ON f2.friend_id = f1.friend_id
			WHERE f1.user_id=? AND f2.user_id=?) ORDER BY id`,
		userID, otherID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

var _ repository.UserRepository = (*UserRepo)(nil)
