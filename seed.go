package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"library-catalog/library"
)

// sample catalog loaded by the seed command.
var seedBooks = []library.Book{
	{Title: "1984", Author: "George Orwell", ISBN: "9780451524935", Genre: "Dystopian", Availability: 3},
	{Title: "Animal Farm", Author: "George Orwell", ISBN: "9780452284241", Genre: "Satire", Availability: 2},
	{Title: "The Fellowship of the Ring", Author: "J.R.R. Tolkien", ISBN: "9780547928210", Genre: "Fantasy", Availability: 4},
	{Title: "The Two Towers", Author: "J.R.R. Tolkien", ISBN: "9780547928203", Genre: "Fantasy", Availability: 4},
	{Title: "The Return of the King", Author: "J.R.R. Tolkien", ISBN: "9780547928197", Genre: "Fantasy", Availability: 4},
	{Title: "Romeo and Juliet", Author: "William Shakespeare", ISBN: "9780743477116", Genre: "Tragedy", Availability: 5},
	{Title: "The Art of War", Author: "Sun Tzu", ISBN: "9781590302255", Genre: "Philosophy", Availability: 2},
	{Title: "The Three Musketeers", Author: "Alexandre Dumas", ISBN: "9780140367470", Genre: "Adventure", Availability: 1},
}

func newSeedCommand() *cobra.Command {
	var fresh bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load a sample catalog and an admin account",
		RunE: func(_ *cobra.Command, _ []string) error {
			if fresh {
				fmt.Println("Removing existing database files...")
				for _, file := range []string{dbPath, dbPath + "-shm", dbPath + "-wal"} {
					if err := os.Remove(file); err != nil && !os.IsNotExist(err) {
						fmt.Printf("Warning: could not remove %s: %v\n", file, err)
					}
				}
			}

			mgr, err := library.NewManager(dbPath)
			if err != nil {
				return fmt.Errorf("open database: %w", err)
			}
			defer mgr.Close()

			for _, b := range seedBooks {
				id, err := mgr.AddBook(b)
				if err != nil {
					return fmt.Errorf("seed book %q: %w", b.Title, err)
				}
				fmt.Printf("Added book ID %d: %s by %s\n", id, b.Title, b.Author)
			}

			if _, err := mgr.CreateUser("Librarian", "librarian@gmail.com", "librarian#1", library.RoleAdmin); err != nil {
				if errors.Is(err, library.ErrDuplicateEmail) {
					fmt.Println("Admin account already present, skipping.")
				} else {
					return fmt.Errorf("seed admin account: %w", err)
				}
			} else {
				fmt.Println("Added admin account librarian@gmail.com")
			}

			fmt.Printf("Seeded %d books into %s\n", len(seedBooks), dbPath)
			return nil
		},
	}
	cmd.Flags().BoolVar(&fresh, "fresh", false, "delete the database file before seeding")
	return cmd
}
