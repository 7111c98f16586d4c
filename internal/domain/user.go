package domain

import "database/sql"

type User struct {
	ID        int64        `db:"id" json:"id"`
	Name      string       `db:"name" json:"name"`
	Email     string       `db:"email" json:"-"`
	Hash      string       `db:"password_hash" json:"-"`
	LastLogin sql.NullTime `db:"last_login" json:"-"`
}
