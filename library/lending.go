package library

import (
	"database/sql"
	"errors"
	"time"
)

// Late-return penalty: no charge within the grace period, a flat daily
// rate beyond it. Days are floored, so a loan returned 5 days and
// 23 hours in is still penalty-free.
const (
	GracePeriodDays   = 5
	PenaltyPerDayLate = 2
)

// Penalty computes the late fee for a loan opened at borrowedAt and
// returned at returnedAt. The fee is informational only; nothing is
// persisted.
func Penalty(borrowedAt, returnedAt time.Time) int {
	days := int(returnedAt.Sub(borrowedAt).Hours() / 24)
	if days <= GracePeriodDays {
		return 0
	}
	return (days - GracePeriodDays) * PenaltyPerDayLate
}

// Borrow opens a loan of the book identified by title+author for the
// user. The ledger insert and the availability decrement execute in one
// database transaction: either both persist or neither does.
//
// A pair (user, book) holds at most one open loan; borrowing the same
// book again before returning it fails with ErrAlreadyBorrowed.
func (d *Database) Borrow(userID int64, title, author string) error {
	tx, err := d.db.Beginx()
	if err != nil {
		return storageErr("begin borrow", err)
	}
	defer tx.Rollback()

	var bookID int64
	err = tx.QueryRow(`SELECT id FROM books WHERE title=? AND author=? ORDER BY id LIMIT 1`, title, author).Scan(&bookID)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrBookNotFound
	}
	if err != nil {
		return storageErr("resolve borrow target", err)
	}

	if _, err := findOpenLoan(tx, userID, bookID); err == nil {
		return ErrAlreadyBorrowed
	} else if !errors.Is(err, ErrNotBorrowed) {
		return err
	}

	if _, err := openLoan(tx, userID, bookID, time.Now().UTC()); err != nil {
		return err
	}

	if err := adjustAvailability(tx, bookID, -1); err != nil {
		if errors.Is(err, ErrNegativeAvailability) {
			return ErrNoCopiesAvailable
		}
		return err
	}

	return tx.Commit()
}

// Return closes the user's open loan of the book identified by
// title+author and reports the late penalty, zero within the grace
// period. The availability increment and the ledger delete execute in one
// database transaction.
func (d *Database) Return(userID int64, title, author string) (int, error) {
	tx, err := d.db.Beginx()
	if err != nil {
		return 0, storageErr("begin return", err)
	}
	defer tx.Rollback()

	// Resolve against the ledger, not the catalog: the target must be a
	// book this user actually holds.
	var bookID int64
	err = tx.QueryRow(`
        SELECT books.id
        FROM books
        JOIN transactions ON books.id = transactions.book_id
        WHERE transactions.user_id=? AND books.title=? AND books.author=?`,
		userID, title, author).Scan(&bookID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNotBorrowed
	}
	if err != nil {
		return 0, storageErr("resolve return target", err)
	}

	loan, err := findOpenLoan(tx, userID, bookID)
	if err != nil {
		return 0, err
	}

	penalty := Penalty(loan.BorrowedAt, time.Now().UTC())

	if err := adjustAvailability(tx, bookID, +1); err != nil {
		return 0, err
	}
	if err := closeLoan(tx, loan.ID); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, storageErr("commit return", err)
	}
	return penalty, nil
}
