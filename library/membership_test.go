package library

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCreateUserEnforcesEmailUniqueness(t *testing.T) {
	db := tempDB(t)

	id, err := db.CreateUser("Alice", "alice@gmail.com", "secret1!", RolePatron)
	require.NoError(t, err)

	found, err := db.FindUserIDByEmail("alice@gmail.com")
	require.NoError(t, err)
	require.Equal(t, id, found)

	_, err = db.CreateUser("Other", "alice@gmail.com", "other1!a", RolePatron)
	require.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestFindUserIDByEmailMissing(t *testing.T) {
	db := tempDB(t)

	_, err := db.FindUserIDByEmail("ghost@gmail.com")
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestAuthenticate(t *testing.T) {
	db := tempDB(t)

	id, err := db.CreateUser("Bob", "bob@gmail.com", "hunter2!", RolePatron)
	require.NoError(t, err)

	got, err := db.Authenticate("bob@gmail.com", "hunter2!")
	require.NoError(t, err)
	require.Equal(t, id, got)

	_, err = db.Authenticate("bob@gmail.com", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	// Unknown email reports the same failure as a wrong password.
	_, err = db.Authenticate("nobody@gmail.com", "hunter2!")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestGetUser(t *testing.T) {
	db := tempDB(t)

	id, err := db.CreateUser("Carol", "carol@gmail.com", "pw1!aa", RoleAdmin)
	require.NoError(t, err)

	u, err := db.GetUser(id)
	require.NoError(t, err)
	require.Equal(t, "Carol", u.Name)
	require.Equal(t, RoleAdmin, u.Role)

	_, err = db.GetUser(9999)
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestDeleteUserCascadesLedgerEntries(t *testing.T) {
	db := tempDB(t)

	userID, err := db.CreateUser("Dave", "dave@gmail.com", "pw1!aa", RolePatron)
	require.NoError(t, err)
	_, err = db.AddBook(Book{Title: "Held", Author: "A", Availability: 2})
	require.NoError(t, err)
	_, err = db.AddBook(Book{Title: "AlsoHeld", Author: "B", Availability: 2})
	require.NoError(t, err)

	require.NoError(t, db.Borrow(userID, "Held", "A"))
	require.NoError(t, db.Borrow(userID, "AlsoHeld", "B"))

	records, err := db.ListTransactions()
	require.NoError(t, err)
	require.Len(t, records, 2)

	require.NoError(t, db.DeleteUser(userID))

	// No orphan transactions referencing the deleted user.
	records, err = db.ListTransactions()
	require.NoError(t, err)
	require.Empty(t, records)

	_, err = db.GetUser(userID)
	require.ErrorIs(t, err, ErrUserNotFound)

	// Availability is deliberately not restored by the cascade.
	book, err := db.FindBookByTitle("Held")
	require.NoError(t, err)
	require.Equal(t, 1, book.Availability)
}

func TestDeleteUserMissing(t *testing.T) {
	db := tempDB(t)
	require.ErrorIs(t, db.DeleteUser(42), ErrUserNotFound)
}

func TestParseRole(t *testing.T) {
	r, err := ParseRole("admin")
	require.NoError(t, err)
	require.Equal(t, RoleAdmin, r)

	r, err = ParseRole("user")
	require.NoError(t, err)
	require.Equal(t, RolePatron, r)

	_, err = ParseRole("superuser")
	require.Error(t, err)
}
