package library

import (
	"fmt"
	"time"
)

// Role classifies an account. The stored strings match the original schema
// values, so existing databases keep working.
type Role string

const (
	RoleAdmin  Role = "admin"
	RolePatron Role = "user"
)

// ParseRole validates a role string at the boundary.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RolePatron:
		return Role(s), nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// User is a registered account. Passwords are stored and compared as
// plaintext; that is the documented contract of this system.
type User struct {
	ID       int64  `db:"id" json:"id"`
	Name     string `db:"name" json:"name"`
	Email    string `db:"email" json:"email"`
	Password string `db:"password" json:"-"`
	Role     Role   `db:"role" json:"role"`
}

// Book is a catalog entry. Availability counts the currently-lendable
// copies and never goes negative.
type Book struct {
	ID           int64  `db:"id" json:"id"`
	Title        string `db:"title" json:"title"`
	Author       string `db:"author" json:"author"`
	ISBN         string `db:"isbn" json:"isbn"`
	Genre        string `db:"genre" json:"genre"`
	Availability int    `db:"availability" json:"availability"`
}

// Transaction is an open loan. The ledger holds only active loans: a
// successful return deletes the row, no history is kept.
type Transaction struct {
	ID         int64     `db:"id" json:"id"`
	UserID     int64     `db:"user_id" json:"user_id"`
	BookID     int64     `db:"book_id" json:"book_id"`
	BorrowedAt time.Time `db:"borrowed_at" json:"borrowed_at"`
}

// TransactionRecord is one row of the loan report, joined against users
// and books.
type TransactionRecord struct {
	UserName      string    `db:"user_name" json:"user_name"`
	TransactionID int64     `db:"transaction_id" json:"transaction_id"`
	BookTitle     string    `db:"book_title" json:"book_title"`
	BorrowedAt    time.Time `db:"borrowed_at" json:"borrowed_at"`
}
