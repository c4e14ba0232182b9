package library

import (
	"database/sql"
	"errors"

	"github.com/doug-martin/goqu/v9"
	"github.com/jmoiron/sqlx"
)

// AddBook inserts a catalog row and returns its id. Duplicate
// (title, author, isbn) entries are permitted; each row is its own stock
// of copies.
func (d *Database) AddBook(b Book) (int64, error) {
	if b.Availability < 0 {
		return 0, ErrNegativeAvailability
	}
	res, err := d.addBookStmt.Exec(b.Title, b.Author, b.ISBN, b.Genre, b.Availability)
	if err != nil {
		return 0, storageErr("add book", err)
	}
	return res.LastInsertId()
}

// FindBookByTitle returns the first book with the given title.
func (d *Database) FindBookByTitle(title string) (*Book, error) {
	query, args, err := qb.From("books").
		Where(goqu.Ex{"title": title}).
		Order(goqu.C("id").Asc()).
		Limit(1).
		Prepared(true).ToSQL()
	if err != nil {
		return nil, storageErr("build find book query", err)
	}

	var b Book
	if err := d.db.Get(&b, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookNotFound
		}
		return nil, storageErr("find book by title", err)
	}
	return &b, nil
}

// FindBookIDByTitleAuthor resolves a title+author pair to a book id. The
// lending engine uses it to disambiguate borrow targets.
func (d *Database) FindBookIDByTitleAuthor(title, author string) (int64, error) {
	query, args, err := qb.From("books").
		Select("id").
		Where(goqu.Ex{"title": title, "author": author}).
		Order(goqu.C("id").Asc()).
		Limit(1).
		Prepared(true).ToSQL()
	if err != nil {
		return 0, storageErr("build find book id query", err)
	}

	var id int64
	if err := d.db.Get(&id, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrBookNotFound
		}
		return 0, storageErr("find book id", err)
	}
	return id, nil
}

// ListBooks returns every book in insertion order.
func (d *Database) ListBooks() ([]*Book, error) {
	return d.selectBooks(qb.From("books").Order(goqu.C("id").Asc()))
}

// ListAvailableBooks returns books with at least one lendable copy.
func (d *Database) ListAvailableBooks() ([]*Book, error) {
	return d.selectBooks(qb.From("books").
		Where(goqu.C("availability").Gt(0)).
		Order(goqu.C("id").Asc()))
}

func (d *Database) selectBooks(ds *goqu.SelectDataset) ([]*Book, error) {
	query, args, err := ds.Prepared(true).ToSQL()
	if err != nil {
		return nil, storageErr("build book list query", err)
	}
	var books []*Book
	if err := d.db.Select(&books, query, args...); err != nil {
		return nil, storageErr("list books", err)
	}
	return books, nil
}

// UpdateBook overwrites all mutable fields of the book in one statement.
func (d *Database) UpdateBook(id int64, b Book) error {
	if b.Availability < 0 {
		return ErrNegativeAvailability
	}
	res, err := d.db.Exec(`UPDATE books SET title=?, author=?, isbn=?, genre=?, availability=? WHERE id=?`,
		b.Title, b.Author, b.ISBN, b.Genre, b.Availability, id)
	if err != nil {
		return storageErr("update book", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return storageErr("update book", err)
	}
	if n == 0 {
		return ErrBookNotFound
	}
	return nil
}

// DeleteBook removes the book identified by title+author. Deletion is
// refused while open loans reference the book, so the ledger never holds
// rows pointing at a missing catalog entry.
func (d *Database) DeleteBook(title, author string) error {
	tx, err := d.db.Beginx()
	if err != nil {
		return storageErr("begin delete book", err)
	}
	defer tx.Rollback()

	var id int64
	err = tx.QueryRow(`SELECT id FROM books WHERE title=? AND author=? ORDER BY id LIMIT 1`, title, author).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrBookNotFound
	}
	if err != nil {
		return storageErr("delete book lookup", err)
	}

	var open int
	if err := tx.QueryRow(`SELECT COUNT(*) FROM transactions WHERE book_id=?`, id).Scan(&open); err != nil {
		return storageErr("delete book loan check", err)
	}
	if open > 0 {
		return ErrBookOnLoan
	}

	if _, err := tx.Exec(`DELETE FROM books WHERE id=?`, id); err != nil {
		return storageErr("delete book", err)
	}
	return tx.Commit()
}

// AdjustAvailability applies delta to the book's copy count, rejecting any
// decrement that would drive it below zero.
func (d *Database) AdjustAvailability(id int64, delta int) error {
	tx, err := d.db.Beginx()
	if err != nil {
		return storageErr("begin adjust availability", err)
	}
	defer tx.Rollback()

	if err := adjustAvailability(tx, id, delta); err != nil {
		return err
	}
	return tx.Commit()
}

// adjustAvailability is the transaction-scoped form used by the lending
// engine so the adjustment commits or rolls back with the ledger write.
func adjustAvailability(tx *sqlx.Tx, id int64, delta int) error {
	var avail int
	err := tx.QueryRow(`SELECT availability FROM books WHERE id=?`, id).Scan(&avail)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrBookNotFound
	}
	if err != nil {
		return storageErr("read availability", err)
	}
	if avail+delta < 0 {
		return ErrNegativeAvailability
	}
	if _, err := tx.Exec(`UPDATE books SET availability=availability+? WHERE id=?`, delta, id); err != nil {
		return storageErr("adjust availability", err)
	}
	return nil
}
