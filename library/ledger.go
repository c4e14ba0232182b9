package library

import (
	"database/sql"
	"errors"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/jmoiron/sqlx"
)

// The ledger helpers are transaction-scoped: the lending engine opens one
// database transaction per logical operation and threads it through, so a
// ledger write and its availability adjustment commit or roll back as a
// unit.

func openLoan(tx *sqlx.Tx, userID, bookID int64, at time.Time) (int64, error) {
	res, err := tx.Exec(`INSERT INTO transactions(user_id,book_id,borrowed_at) VALUES(?,?,?)`,
		userID, bookID, at)
	if err != nil {
		return 0, storageErr("open loan", err)
	}
	return res.LastInsertId()
}

func findOpenLoan(tx *sqlx.Tx, userID, bookID int64) (*Transaction, error) {
	var t Transaction
	err := tx.Get(&t, `SELECT id,user_id,book_id,borrowed_at FROM transactions WHERE user_id=? AND book_id=?`,
		userID, bookID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotBorrowed
	}
	if err != nil {
		return nil, storageErr("find open loan", err)
	}
	return &t, nil
}

func closeLoan(tx *sqlx.Tx, transactionID int64) error {
	res, err := tx.Exec(`DELETE FROM transactions WHERE id=?`, transactionID)
	if err != nil {
		return storageErr("close loan", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return storageErr("close loan", err)
	}
	if n == 0 {
		return ErrNotBorrowed
	}
	return nil
}

// ListTransactions reports every open loan joined against membership and
// catalog: who holds which book since when.
func (d *Database) ListTransactions() ([]*TransactionRecord, error) {
	query, args, err := qb.From(goqu.T("transactions")).
		Join(goqu.T("users"), goqu.On(goqu.Ex{"users.id": goqu.I("transactions.user_id")})).
		Join(goqu.T("books"), goqu.On(goqu.Ex{"books.id": goqu.I("transactions.book_id")})).
		Select(
			goqu.I("users.name").As("user_name"),
			goqu.I("transactions.id").As("transaction_id"),
			goqu.I("books.title").As("book_title"),
			goqu.I("transactions.borrowed_at").As("borrowed_at"),
		).
		Order(goqu.I("transactions.id").Asc()).
		Prepared(true).ToSQL()
	if err != nil {
		return nil, storageErr("build transaction report query", err)
	}

	var records []*TransactionRecord
	if err := d.db.Select(&records, query, args...); err != nil {
		return nil, storageErr("list transactions", err)
	}
	return records, nil
}
