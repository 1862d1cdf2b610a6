package cli

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/mrlokans/libtool/internal/controller"
	"github.com/mrlokans/libtool/internal/entities"
	"github.com/mrlokans/libtool/internal/view"
)

// BooksCommand lists the book catalog with optional filtering and sorting.
type BooksCommand struct {
	Search string
	Status string
	Sort   string
}

// NewBooksCommand creates a new BooksCommand
func NewBooksCommand() *BooksCommand {
	return &BooksCommand{}
}

// ParseFlags parses command line flags
func (cmd *BooksCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("books", flag.ExitOnError)

	fs.StringVar(&cmd.Search, "search", "", "Case-insensitive substring match over name and author")
	fs.StringVar(&cmd.Status, "status", "", "Filter by status: available or issued")
	fs.StringVar(&cmd.Sort, "sort", "default", "Sort order: default, count_asc or count_desc")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s books [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "List the book catalog.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	return fs.Parse(args)
}

// Run executes the command
func (cmd *BooksCommand) Run() error {
	order, err := view.ParseSortOrder(cmd.Sort)
	if err != nil {
		return err
	}

	s := newSession(false)
	ctx := context.Background()

	if err := s.ctrl.Reload(ctx, entities.KindBooks); err != nil {
		return err
	}

	books := view.FilterBooks(s.store.Books(), cmd.Search, entities.BookStatus(cmd.Status))
	s.renderer.Books(view.SortBooks(books, order))
	return nil
}

// BookSaveCommand creates a book or, when -id is given, updates it.
type BookSaveCommand struct {
	ID     int
	Name   string
	Author string
	Genre  string
	Count  string
}

// NewBookSaveCommand creates a new BookSaveCommand
func NewBookSaveCommand() *BookSaveCommand {
	return &BookSaveCommand{}
}

// ParseFlags parses command line flags
func (cmd *BookSaveCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("book-save", flag.ExitOnError)

	fs.IntVar(&cmd.ID, "id", 0, "Book id to update (omit to create)")
	fs.StringVar(&cmd.Name, "name", "", "Book name")
	fs.StringVar(&cmd.Author, "author", "", "Book author")
	fs.StringVar(&cmd.Genre, "genre", "", "Book genre")
	fs.StringVar(&cmd.Count, "count", "1", "Copy count")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s book-save [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Create a book, or update one when -id is given.\n")
		fmt.Fprintf(os.Stderr, "Flags left empty on update keep the stored value.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s book-save -name Dune -author Herbert -genre Sci-Fi -count 3\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s book-save -id 7 -count 5\n", os.Args[0])
	}

	return fs.Parse(args)
}

// Run executes the command
func (cmd *BookSaveCommand) Run() error {
	s := newSession(false)
	ctx := context.Background()

	var form controller.BookForm
	if cmd.ID != 0 {
		bound, err := s.ctrl.OpenForEdit(ctx, entities.KindBooks, cmd.ID)
		if err != nil {
			return err
		}
		form = bound.Book
		// Only override the fields the operator actually set.
		if cmd.Name != "" {
			form.Name = cmd.Name
		}
		if cmd.Author != "" {
			form.Author = cmd.Author
		}
		if cmd.Genre != "" {
			form.Genre = cmd.Genre
		}
		if cmd.Count != "" {
			form.Count = cmd.Count
		}
	} else {
		s.ctrl.OpenForCreate(entities.KindBooks)
		form = controller.BookForm{
			Name:   cmd.Name,
			Author: cmd.Author,
			Genre:  cmd.Genre,
			Count:  cmd.Count,
		}
	}

	return s.ctrl.SaveBook(ctx, form)
}

// BookDeleteCommand deletes a book after confirmation.
type BookDeleteCommand struct {
	ID  int
	Yes bool
}

// NewBookDeleteCommand creates a new BookDeleteCommand
func NewBookDeleteCommand() *BookDeleteCommand {
	return &BookDeleteCommand{}
}

// ParseFlags parses command line flags
func (cmd *BookDeleteCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("book-delete", flag.ExitOnError)

	fs.IntVar(&cmd.ID, "id", 0, "Book id to delete (required)")
	fs.BoolVar(&cmd.Yes, "yes", false, "Skip the confirmation prompt")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s book-delete -id <id> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Delete a book from the catalog.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if cmd.ID == 0 {
		return fmt.Errorf("-id is required")
	}
	return nil
}

// Run executes the command
func (cmd *BookDeleteCommand) Run() error {
	s := newSession(cmd.Yes)
	return s.ctrl.Delete(context.Background(), entities.KindBooks, cmd.ID)
}
