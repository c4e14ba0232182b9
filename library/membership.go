package library

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/doug-martin/goqu/v9"
)

// CreateUser inserts an account row. Format validation of name, email and
// password is the caller's job (see validate.go); the store only enforces
// email uniqueness.
func (d *Database) CreateUser(name, email, password string, role Role) (int64, error) {
	res, err := d.addUserStmt.Exec(name, email, password, string(role))
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return 0, ErrDuplicateEmail
		}
		return 0, storageErr("create user", err)
	}
	return res.LastInsertId()
}

// FindUserIDByEmail resolves an email address to a user id.
func (d *Database) FindUserIDByEmail(email string) (int64, error) {
	var id int64
	err := d.db.Get(&id, `SELECT id FROM users WHERE email=?`, email)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrUserNotFound
	}
	if err != nil {
		return 0, storageErr("find user by email", err)
	}
	return id, nil
}

// GetUser fetches a single account.
func (d *Database) GetUser(id int64) (*User, error) {
	var u User
	err := d.db.Get(&u, `SELECT id,name,email,password,role FROM users WHERE id=?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, storageErr("get user", err)
	}
	return &u, nil
}

// ListUsers returns every account in insertion order.
func (d *Database) ListUsers() ([]*User, error) {
	query, args, err := qb.From("users").Order(goqu.C("id").Asc()).Prepared(true).ToSQL()
	if err != nil {
		return nil, storageErr("build user list query", err)
	}
	var users []*User
	if err := d.db.Select(&users, query, args...); err != nil {
		return nil, storageErr("list users", err)
	}
	return users, nil
}

// Authenticate checks credentials and returns the account id. Comparison
// is plaintext; that is the documented contract, not an oversight to fix
// here. Unknown emails and wrong passwords are indistinguishable to the
// caller.
func (d *Database) Authenticate(email, password string) (int64, error) {
	var u User
	err := d.db.Get(&u, `SELECT id,name,email,password,role FROM users WHERE email=?`, email)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrInvalidCredentials
	}
	if err != nil {
		return 0, storageErr("authenticate", err)
	}
	if u.Password != password {
		return 0, ErrInvalidCredentials
	}
	return u.ID, nil
}

// DeleteUser removes the account and every ledger entry that references
// it, in one transaction. Availability of the books involved is left
// untouched: the copies went out with the user.
func (d *Database) DeleteUser(userID int64) error {
	tx, err := d.db.Beginx()
	if err != nil {
		return storageErr("begin delete user", err)
	}
	defer tx.Rollback()

	// Ledger rows first, the FK would block the user delete otherwise.
	if _, err := tx.Exec(`DELETE FROM transactions WHERE user_id=?`, userID); err != nil {
		return storageErr("delete user loans", err)
	}

	res, err := tx.Exec(`DELETE FROM users WHERE id=?`, userID)
	if err != nil {
		return storageErr("delete user", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return storageErr("delete user", err)
	}
	if n == 0 {
		return ErrUserNotFound
	}
	return tx.Commit()
}
