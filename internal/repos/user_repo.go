package repos

import (
	"context"
	"database/sql"
	"errors"

	"bazaar/internal/domain"

	"github.com/jmoiron/sqlx"
)

const userColumns = `id, name, email, password_hash, last_login`

type UserRepo struct{ db *sqlx.DB }

func NewUserRepo(db *sqlx.DB) *UserRepo { return &UserRepo{db: db} }

func (r *UserRepo) getUser(ctx context.Context, query string, args ...any) (*domain.User, error) {
	var u domain.User
	err := r.db.GetContext(ctx, &u, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// FetchUserByID returns nil when the user does not exist.
func (r *UserRepo) FetchUserByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.getUser(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
}

func (r *UserRepo) ByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getUser(ctx, `SELECT `+userColumns+` FROM users WHERE LOWER(email) = LOWER(?)`, email)
}

// CreateUser inserts a user with an already hashed password. Test fixture
// helper; there is no sign-up route.
func (r *UserRepo) CreateUser(ctx context.Context, name, email, hash string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
	  INSERT INTO users(name, email, password_hash) VALUES(?, ?, ?)
	`, name, email, hash)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *UserRepo) TouchLogin(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `UPDATE users SET last_login = CURRENT_TIMESTAMP WHERE id = ?`, id)
	return err
}

func (r *UserRepo) BindSession(ctx context.Context, sid string, userID int64) error {
	_, err := r.db.ExecContext(ctx, `
	  INSERT INTO sessions(id, user_id, last_seen)
	  VALUES(?, ?, CURRENT_TIMESTAMP)
	  ON CONFLICT(id) DO UPDATE SET user_id = excluded.user_id, last_seen = CURRENT_TIMESTAMP
	`, sid, userID)
	return err
}

// SessionUser resolves the user bound to sid, or nil for an anonymous or
// unknown session.
func (r *UserRepo) SessionUser(ctx context.Context, sid string) (*domain.User, error) {
	return r.getUser(ctx, `
	  SELECT u.id, u.name, u.email, u.password_hash, u.last_login
	  FROM sessions s
	  JOIN users u ON u.id = s.user_id
	  WHERE s.id = ?
	`, sid)
}

func (r *UserRepo) UnbindSession(ctx context.Context, sid string) error {
	_, err := r.db.ExecContext(ctx, `
	  UPDATE sessions SET user_id = NULL, last_seen = CURRENT_TIMESTAMP WHERE id = ?
	`, sid)
	return err
}
