package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"library-catalog/library"
)

// The admin area is gated by a fixed password, matching the original
// single-operator setup. Patron accounts authenticate against the
// membership store.
const adminPassword = "admin"

var dbPath string

func main() {
	rootCmd := &cobra.Command{
		Use:   "librarian",
		Short: "Single-user library catalog manager",
		Long: `Interactive library catalog manager backed by a local SQLite file.

Running without a subcommand starts the menu-driven session with an admin
area (catalog management, reporting) and a patron area (borrow, return,
browse).`,
		SilenceUsage: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			mgr, err := library.NewManager(dbPath)
			if err != nil {
				return fmt.Errorf("open database: %w", err)
			}
			defer mgr.Close()
			runShell(mgr)
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "library.db", "path to the SQLite database file")
	rootCmd.AddCommand(newSeedCommand())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// readPassword reads a password with terminal echo disabled.
func readPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	bytePassword, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		return "", err
	}
	fmt.Println()
	return strings.TrimSpace(string(bytePassword)), nil
}

func prompt(sc *bufio.Scanner, label string) (string, bool) {
	fmt.Print(label)
	if !sc.Scan() {
		return "", false
	}
	return strings.TrimSpace(sc.Text()), true
}

func runShell(mgr *library.Manager) {
	sc := bufio.NewScanner(os.Stdin)

	for {
		fmt.Println("\nLibrary Catalog Manager:")
		fmt.Println("1. Admin")
		fmt.Println("2. Sign Up or Login")
		fmt.Println("3. Exit")

		choice, ok := prompt(sc, "Enter your choice: ")
		if !ok {
			return
		}

		switch choice {
		case "1":
			password, err := readPassword("Enter admin password: ")
			if err != nil {
				fmt.Printf("Error reading password: %v\n", err)
				continue
			}
			if password != adminPassword {
				fmt.Println("Incorrect admin password. Access denied.")
				continue
			}
			runAdminMenu(sc, mgr)
		case "2":
			runAuthMenu(sc, mgr)
		case "3":
			fmt.Println("Goodbye!")
			return
		default:
			fmt.Println("Invalid choice. Please try again.")
		}
	}
}

// ---------------------------------------------------------------------------
// Admin menu
// ---------------------------------------------------------------------------

func runAdminMenu(sc *bufio.Scanner, mgr *library.Manager) {
	for {
		fmt.Println("\nAdmin Menu:")
		fmt.Println("1. Add Book")
		fmt.Println("2. Delete Book")
		fmt.Println("3. Update Book")
		fmt.Println("4. List Books")
		fmt.Println("5. Available Books")
		fmt.Println("6. User Transactions")
		fmt.Println("7. Delete User")
		fmt.Println("8. Exit")

		choice, ok := prompt(sc, "Enter your choice: ")
		if !ok {
			return
		}

		switch choice {
		case "1":
			handleAddBook(sc, mgr)
		case "2":
			handleDeleteBook(sc, mgr)
		case "3":
			handleUpdateBook(sc, mgr)
		case "4":
			handleListBooks(mgr)
		case "5":
			handleAvailableBooks(mgr)
		case "6":
			handleListTransactions(mgr)
		case "7":
			handleDeleteUser(sc, mgr)
		case "8":
			return
		default:
			fmt.Println("Invalid choice. Please try again.")
		}
	}
}

func handleAddBook(sc *bufio.Scanner, mgr *library.Manager) {
	title, ok := prompt(sc, "Title: ")
	if !ok {
		return
	}
	author, ok := prompt(sc, "Author: ")
	if !ok {
		return
	}
	isbn, ok := prompt(sc, "ISBN: ")
	if !ok {
		return
	}
	genre, ok := prompt(sc, "Genre: ")
	if !ok {
		return
	}
	copiesStr, ok := prompt(sc, "Number of copies available: ")
	if !ok {
		return
	}
	copies, err := strconv.Atoi(copiesStr)
	if err != nil || copies < 0 {
		fmt.Printf("Invalid copy count: %s\n", copiesStr)
		return
	}

	id, err := mgr.AddBook(library.Book{
		Title:        title,
		Author:       author,
		ISBN:         isbn,
		Genre:        genre,
		Availability: copies,
	})
	if err != nil {
		fmt.Printf("Error adding book: %v\n", err)
		return
	}
	fmt.Printf("Added book '%s' with ID %d\n", title, id)
}

func handleDeleteBook(sc *bufio.Scanner, mgr *library.Manager) {
	title, ok := prompt(sc, "Title of the book to delete: ")
	if !ok {
		return
	}
	author, ok := prompt(sc, "Author of the book to delete: ")
	if !ok {
		return
	}

	switch err := mgr.DeleteBook(title, author); {
	case err == nil:
		fmt.Printf("Book '%s' by %s deleted successfully.\n", title, author)
	case errors.Is(err, library.ErrBookNotFound):
		fmt.Printf("Book '%s' by %s not found.\n", title, author)
	case errors.Is(err, library.ErrBookOnLoan):
		fmt.Println("Cannot delete: the book has open loans. Collect the returns first.")
	default:
		fmt.Printf("Error deleting book: %v\n", err)
	}
}

func handleUpdateBook(sc *bufio.Scanner, mgr *library.Manager) {
	title, ok := prompt(sc, "Title of the book to update: ")
	if !ok {
		return
	}

	book, err := mgr.FindBookByTitle(title)
	if err != nil {
		if errors.Is(err, library.ErrBookNotFound) {
			fmt.Printf("Book '%s' not found.\n", title)
		} else {
			fmt.Printf("Error: %v\n", err)
		}
		return
	}

	fmt.Println("Current Book Information:")
	fmt.Printf("Title: %s\nAuthor: %s\nISBN: %s\nGenre: %s\nAvailability: %d\n",
		book.Title, book.Author, book.ISBN, book.Genre, book.Availability)

	newTitle, ok := prompt(sc, "New title: ")
	if !ok {
		return
	}
	newAuthor, ok := prompt(sc, "New author: ")
	if !ok {
		return
	}
	newISBN, ok := prompt(sc, "New ISBN: ")
	if !ok {
		return
	}
	newGenre, ok := prompt(sc, "New genre: ")
	if !ok {
		return
	}
	availStr, ok := prompt(sc, "New availability: ")
	if !ok {
		return
	}
	avail, err := strconv.Atoi(availStr)
	if err != nil || avail < 0 {
		fmt.Printf("Invalid availability: %s\n", availStr)
		return
	}

	err = mgr.UpdateBook(book.ID, library.Book{
		Title:        newTitle,
		Author:       newAuthor,
		ISBN:         newISBN,
		Genre:        newGenre,
		Availability: avail,
	})
	if err != nil {
		fmt.Printf("Error updating book: %v\n", err)
		return
	}
	fmt.Println("Book updated successfully.")
}

func handleListBooks(mgr *library.Manager) {
	books, err := mgr.ListBooks()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	if len(books) == 0 {
		fmt.Println("No books in the catalog.")
		return
	}

	fmt.Printf("%-5s %-30s %-25s %-15s %-15s %s\n", "ID", "Title", "Author", "ISBN", "Genre", "Copies")
	fmt.Println(strings.Repeat("-", 100))
	for _, b := range books {
		fmt.Println(library.PrettyBook(b))
	}
}

func handleAvailableBooks(mgr *library.Manager) {
	books, err := mgr.ListAvailableBooks()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	if len(books) == 0 {
		fmt.Println("No available books.")
		return
	}

	fmt.Println("Available Books:")
	for _, b := range books {
		fmt.Printf("%d. %s by %s (%d copies)\n", b.ID, b.Title, b.Author, b.Availability)
	}
}

func handleListTransactions(mgr *library.Manager) {
	records, err := mgr.ListTransactions()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	if len(records) == 0 {
		fmt.Println("No transactions found.")
		return
	}

	fmt.Println("All User Transactions:")
	for _, r := range records {
		fmt.Printf("User: %s, Transaction ID: %d, Book: %s, Borrowed: %s\n",
			r.UserName, r.TransactionID, r.BookTitle, r.BorrowedAt.Format("2006-01-02 15:04:05"))
	}
}

func handleDeleteUser(sc *bufio.Scanner, mgr *library.Manager) {
	email, ok := prompt(sc, "Email of the user to delete: ")
	if !ok {
		return
	}

	userID, err := mgr.FindUserIDByEmail(email)
	if err != nil {
		if errors.Is(err, library.ErrUserNotFound) {
			fmt.Printf("User '%s' not found.\n", email)
		} else {
			fmt.Printf("Error: %v\n", err)
		}
		return
	}

	if err := mgr.DeleteUser(userID); err != nil {
		fmt.Printf("Error deleting user: %v\n", err)
		return
	}
	fmt.Printf("User '%s' deleted successfully.\n", email)
}

// ---------------------------------------------------------------------------
// Patron sign up / login
// ---------------------------------------------------------------------------

func runAuthMenu(sc *bufio.Scanner, mgr *library.Manager) {
	fmt.Println("1. Sign Up")
	fmt.Println("2. Login")
	fmt.Println("3. Back")

	choice, ok := prompt(sc, "Enter your choice: ")
	if !ok {
		return
	}

	switch choice {
	case "1":
		handleSignUp(sc, mgr)
	case "2":
		handleLogin(sc, mgr)
	case "3":
		return
	default:
		fmt.Println("Invalid choice. Please try again.")
	}
}

// promptValidated re-asks until the input passes the check, like the
// original signup flow.
func promptValidated(sc *bufio.Scanner, label string, check func(string) error) (string, bool) {
	for {
		value, ok := prompt(sc, label)
		if !ok {
			return "", false
		}
		if err := check(value); err != nil {
			fmt.Println(err)
			continue
		}
		return value, true
	}
}

func handleSignUp(sc *bufio.Scanner, mgr *library.Manager) {
	name, ok := promptValidated(sc, "Enter your name: ", library.ValidateName)
	if !ok {
		return
	}
	email, ok := promptValidated(sc, "Enter your email: ", library.ValidateEmail)
	if !ok {
		return
	}

	var password string
	for {
		var err error
		password, err = readPassword("Create a password: ")
		if err != nil {
			fmt.Printf("Error reading password: %v\n", err)
			return
		}
		if err := library.ValidatePassword(password); err != nil {
			fmt.Println(err)
			continue
		}
		break
	}

	userID, err := mgr.CreateUser(name, email, password, library.RolePatron)
	if err != nil {
		if errors.Is(err, library.ErrDuplicateEmail) {
			fmt.Println("An account with that email already exists.")
		} else {
			fmt.Printf("Error creating account: %v\n", err)
		}
		return
	}

	fmt.Println("Sign up successful.")
	runPatronMenu(sc, mgr, userID)
}

func handleLogin(sc *bufio.Scanner, mgr *library.Manager) {
	email, ok := prompt(sc, "Enter your email: ")
	if !ok {
		return
	}
	password, err := readPassword("Enter your password: ")
	if err != nil {
		fmt.Printf("Error reading password: %v\n", err)
		return
	}

	userID, err := mgr.Authenticate(email, password)
	if err != nil {
		if errors.Is(err, library.ErrInvalidCredentials) {
			fmt.Println("Invalid email or password. Please try again.")
		} else {
			fmt.Printf("Error: %v\n", err)
		}
		return
	}

	fmt.Println("Login successful.")
	runPatronMenu(sc, mgr, userID)
}

// ---------------------------------------------------------------------------
// Patron menu
// ---------------------------------------------------------------------------

func runPatronMenu(sc *bufio.Scanner, mgr *library.Manager, userID int64) {
	for {
		fmt.Println("\nUser Menu:")
		fmt.Println("1. Borrow a Book")
		fmt.Println("2. Return a Book")
		fmt.Println("3. List Books")
		fmt.Println("4. Find Book")
		fmt.Println("5. Exit")

		choice, ok := prompt(sc, "Enter your choice: ")
		if !ok {
			return
		}

		switch choice {
		case "1":
			handleBorrow(sc, mgr, userID)
		case "2":
			handleReturn(sc, mgr, userID)
		case "3":
			handleListBooks(mgr)
		case "4":
			handleFindBook(sc, mgr)
		case "5":
			fmt.Println("Exiting User Menu. Goodbye!")
			return
		default:
			fmt.Println("Invalid choice. Please try again.")
		}
	}
}

func handleBorrow(sc *bufio.Scanner, mgr *library.Manager, userID int64) {
	title, ok := prompt(sc, "Name of the book you want to borrow: ")
	if !ok {
		return
	}
	author, ok := prompt(sc, "Author of the book: ")
	if !ok {
		return
	}

	switch err := mgr.Borrow(userID, title, author); {
	case err == nil:
		fmt.Println("Book borrowed successfully")
	case errors.Is(err, library.ErrBookNotFound):
		fmt.Println("Book not found. Please check the name and author.")
	case errors.Is(err, library.ErrNoCopiesAvailable):
		fmt.Println("No copies of that book are currently available.")
	case errors.Is(err, library.ErrAlreadyBorrowed):
		fmt.Println("You already have that book on loan.")
	default:
		fmt.Printf("Error borrowing book: %v\n", err)
	}
}

func handleReturn(sc *bufio.Scanner, mgr *library.Manager, userID int64) {
	title, ok := prompt(sc, "Name of the book you want to return: ")
	if !ok {
		return
	}
	author, ok := prompt(sc, "Author of the book: ")
	if !ok {
		return
	}

	penalty, err := mgr.Return(userID, title, author)
	switch {
	case err == nil:
		if penalty > 0 {
			fmt.Printf("Book returned successfully. Penalty: $%d\n", penalty)
		} else {
			fmt.Println("Book returned successfully. No penalty.")
		}
	case errors.Is(err, library.ErrNotBorrowed):
		fmt.Println("You haven't borrowed this book.")
	default:
		fmt.Printf("Error returning book: %v\n", err)
	}
}

func handleFindBook(sc *bufio.Scanner, mgr *library.Manager) {
	title, ok := prompt(sc, "Title of the book you want to find: ")
	if !ok {
		return
	}

	book, err := mgr.FindBookByTitle(title)
	if err != nil {
		if errors.Is(err, library.ErrBookNotFound) {
			fmt.Printf("Book '%s' not found.\n", title)
		} else {
			fmt.Printf("Error: %v\n", err)
		}
		return
	}

	fmt.Println("Book found:")
	fmt.Printf("Title: %s\nAuthor: %s\nISBN: %s\nGenre: %s\nAvailability: %d\n",
		book.Title, book.Author, book.ISBN, book.Genre, book.Availability)
}
