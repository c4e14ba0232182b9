package library

import "fmt"

// Manager is a thin façade over the Database, keeping the shell code
// simple.
type Manager struct {
	db *Database
}

// NewManager opens (or creates) the SQLite database at dbPath.
func NewManager(dbPath string) (*Manager, error) {
	db, err := NewDatabase(dbPath)
	if err != nil {
		return nil, err
	}
	return &Manager{db: db}, nil
}

// Close closes the underlying database.
func (m *Manager) Close() error { return m.db.Close() }

// ------------------ Catalog helpers ------------------

func (m *Manager) AddBook(b Book) (int64, error) { return m.db.AddBook(b) }
func (m *Manager) FindBookByTitle(title string) (*Book, error) {
	return m.db.FindBookByTitle(title)
}
func (m *Manager) ListBooks() ([]*Book, error)          { return m.db.ListBooks() }
func (m *Manager) ListAvailableBooks() ([]*Book, error) { return m.db.ListAvailableBooks() }
func (m *Manager) UpdateBook(id int64, b Book) error    { return m.db.UpdateBook(id, b) }
func (m *Manager) DeleteBook(title, author string) error {
	return m.db.DeleteBook(title, author)
}

// ------------------ Membership helpers ------------------

func (m *Manager) CreateUser(name, email, password string, role Role) (int64, error) {
	return m.db.CreateUser(name, email, password, role)
}
func (m *Manager) FindUserIDByEmail(email string) (int64, error) {
	return m.db.FindUserIDByEmail(email)
}
func (m *Manager) GetUser(id int64) (*User, error) { return m.db.GetUser(id) }
func (m *Manager) Authenticate(email, password string) (int64, error) {
	return m.db.Authenticate(email, password)
}
func (m *Manager) DeleteUser(userID int64) error { return m.db.DeleteUser(userID) }

// ------------------ Circulation ------------------

func (m *Manager) Borrow(userID int64, title, author string) error {
	return m.db.Borrow(userID, title, author)
}

// Return closes the loan and yields the late penalty in currency units.
func (m *Manager) Return(userID int64, title, author string) (int, error) {
	return m.db.Return(userID, title, author)
}

func (m *Manager) ListTransactions() ([]*TransactionRecord, error) {
	return m.db.ListTransactions()
}

// ------------------ Utilities ------------------

// PrettyBook formats a book for lists.
func PrettyBook(b *Book) string {
	return fmt.Sprintf("%-5d %-30s %-25s %-15s %-15s %d", b.ID, b.Title, b.Author, b.ISBN, b.Genre, b.Availability)
}
