package library

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func tempDB(t *testing.T) *Database {
	t.Helper()
	dir := t.TempDir()
	db, err := NewDatabase(filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("new db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrationsAreIdempotent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.db")

	db, err := NewDatabase(path)
	require.NoError(t, err)
	_, err = db.AddBook(Book{Title: "Persisted", Author: "Someone", Availability: 1})
	require.NoError(t, err)
	require.NoError(t, db.Close())

	// Reopening must not recreate or clobber tables.
	db, err = NewDatabase(path)
	require.NoError(t, err)
	defer db.Close()

	books, err := db.ListBooks()
	require.NoError(t, err)
	require.Len(t, books, 1)
	require.Equal(t, "Persisted", books[0].Title)
}

func TestAddBookFindByTitleRoundTrip(t *testing.T) {
	db := tempDB(t)

	in := Book{
		Title:        "The Art of War",
		Author:       "Sun Tzu",
		ISBN:         "9781590302255",
		Genre:        "Philosophy",
		Availability: 2,
	}
	id, err := db.AddBook(in)
	require.NoError(t, err)

	got, err := db.FindBookByTitle("The Art of War")
	require.NoError(t, err)
	require.Equal(t, id, got.ID)
	require.Equal(t, in.Author, got.Author)
	require.Equal(t, in.ISBN, got.ISBN)
	require.Equal(t, in.Genre, got.Genre)
	require.Equal(t, in.Availability, got.Availability)
}

func TestFindBookByTitleMissing(t *testing.T) {
	db := tempDB(t)

	_, err := db.FindBookByTitle("No Such Book")
	require.ErrorIs(t, err, ErrBookNotFound)

	_, err = db.FindBookIDByTitleAuthor("No Such Book", "Nobody")
	require.ErrorIs(t, err, ErrBookNotFound)
}

func TestAddBookRejectsNegativeAvailability(t *testing.T) {
	db := tempDB(t)

	_, err := db.AddBook(Book{Title: "Broken", Author: "X", Availability: -1})
	require.ErrorIs(t, err, ErrNegativeAvailability)
}

func TestDuplicateBooksArePermitted(t *testing.T) {
	db := tempDB(t)

	first, err := db.AddBook(Book{Title: "Dune", Author: "Frank Herbert", Availability: 1})
	require.NoError(t, err)
	second, err := db.AddBook(Book{Title: "Dune", Author: "Frank Herbert", Availability: 1})
	require.NoError(t, err)
	require.NotEqual(t, first, second)

	// title+author lookup resolves deterministically to the oldest row.
	id, err := db.FindBookIDByTitleAuthor("Dune", "Frank Herbert")
	require.NoError(t, err)
	require.Equal(t, first, id)
}

func TestListBooksInsertionOrderAndIdempotence(t *testing.T) {
	db := tempDB(t)

	titles := []string{"First", "Second", "Third"}
	for _, title := range titles {
		_, err := db.AddBook(Book{Title: title, Author: "A", Availability: 1})
		require.NoError(t, err)
	}

	once, err := db.ListBooks()
	require.NoError(t, err)
	require.Len(t, once, len(titles))
	for i, b := range once {
		require.Equal(t, titles[i], b.Title)
	}

	twice, err := db.ListBooks()
	require.NoError(t, err)
	require.Equal(t, once, twice)
}

func TestListAvailableBooksFiltersZeroCopies(t *testing.T) {
	db := tempDB(t)

	_, err := db.AddBook(Book{Title: "Out of Stock", Author: "A", Availability: 0})
	require.NoError(t, err)
	_, err = db.AddBook(Book{Title: "In Stock", Author: "B", Availability: 3})
	require.NoError(t, err)

	books, err := db.ListAvailableBooks()
	require.NoError(t, err)
	require.Len(t, books, 1)
	require.Equal(t, "In Stock", books[0].Title)
}

func TestUpdateBookOverwritesAllFields(t *testing.T) {
	db := tempDB(t)

	id, err := db.AddBook(Book{Title: "Old", Author: "Old", ISBN: "0", Genre: "Old", Availability: 1})
	require.NoError(t, err)

	update := Book{Title: "New", Author: "NewAuthor", ISBN: "9999", Genre: "NewGenre", Availability: 7}
	require.NoError(t, db.UpdateBook(id, update))

	got, err := db.FindBookByTitle("New")
	require.NoError(t, err)
	require.Equal(t, update.Author, got.Author)
	require.Equal(t, update.ISBN, got.ISBN)
	require.Equal(t, update.Genre, got.Genre)
	require.Equal(t, update.Availability, got.Availability)

	require.ErrorIs(t, db.UpdateBook(9999, update), ErrBookNotFound)
}

func TestDeleteBook(t *testing.T) {
	db := tempDB(t)

	_, err := db.AddBook(Book{Title: "Ephemeral", Author: "Writer", Availability: 1})
	require.NoError(t, err)

	require.NoError(t, db.DeleteBook("Ephemeral", "Writer"))
	_, err = db.FindBookByTitle("Ephemeral")
	require.ErrorIs(t, err, ErrBookNotFound)

	require.ErrorIs(t, db.DeleteBook("Ephemeral", "Writer"), ErrBookNotFound)
}

func TestDeleteBookRefusedWhileOnLoan(t *testing.T) {
	db := tempDB(t)

	_, err := db.AddBook(Book{Title: "Wanted", Author: "Writer", Availability: 1})
	require.NoError(t, err)
	userID, err := db.CreateUser("Alice", "alice@gmail.com", "pw1!aa", RolePatron)
	require.NoError(t, err)

	require.NoError(t, db.Borrow(userID, "Wanted", "Writer"))
	require.ErrorIs(t, db.DeleteBook("Wanted", "Writer"), ErrBookOnLoan)

	// After the return the delete goes through.
	_, err = db.Return(userID, "Wanted", "Writer")
	require.NoError(t, err)
	require.NoError(t, db.DeleteBook("Wanted", "Writer"))
}

func TestAdjustAvailability(t *testing.T) {
	db := tempDB(t)

	id, err := db.AddBook(Book{Title: "Counted", Author: "A", Availability: 1})
	require.NoError(t, err)

	require.NoError(t, db.AdjustAvailability(id, -1))
	require.ErrorIs(t, db.AdjustAvailability(id, -1), ErrNegativeAvailability)
	require.NoError(t, db.AdjustAvailability(id, 3))

	got, err := db.FindBookByTitle("Counted")
	require.NoError(t, err)
	require.Equal(t, 3, got.Availability)

	require.ErrorIs(t, db.AdjustAvailability(9999, 1), ErrBookNotFound)
}
