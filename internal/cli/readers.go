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

// ReadersCommand lists registered readers with optional filtering.
type ReadersCommand struct {
	Search string
	Status string
}

// NewReadersCommand creates a new ReadersCommand
func NewReadersCommand() *ReadersCommand {
	return &ReadersCommand{}
}

// ParseFlags parses command line flags
func (cmd *ReadersCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("readers", flag.ExitOnError)

	fs.StringVar(&cmd.Search, "search", "", "Case-insensitive substring match over the full name")
	fs.StringVar(&cmd.Status, "status", "", "Filter by status: active or inactive")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s readers [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "List registered readers.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	return fs.Parse(args)
}

// Run executes the command
func (cmd *ReadersCommand) Run() error {
	s := newSession(false)
	ctx := context.Background()

	if err := s.ctrl.Reload(ctx, entities.KindReaders); err != nil {
		return err
	}

	readers := view.FilterReaders(s.store.Readers(), cmd.Search, entities.ReaderStatus(cmd.Status))
	s.renderer.Readers(readers)
	return nil
}

// ReaderSaveCommand registers a reader or, when -id is given, updates one.
type ReaderSaveCommand struct {
	ID       int
	FullName string
	Phone    string
	Email    string
	Address  string
	Status   string
}

// NewReaderSaveCommand creates a new ReaderSaveCommand
func NewReaderSaveCommand() *ReaderSaveCommand {
	return &ReaderSaveCommand{}
}

// ParseFlags parses command line flags
func (cmd *ReaderSaveCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("reader-save", flag.ExitOnError)

	fs.IntVar(&cmd.ID, "id", 0, "Reader id to update (omit to create)")
	fs.StringVar(&cmd.FullName, "name", "", "Reader full name")
	fs.StringVar(&cmd.Phone, "phone", "", "Phone number")
	fs.StringVar(&cmd.Email, "email", "", "Email address")
	fs.StringVar(&cmd.Address, "address", "", "Postal address")
	fs.StringVar(&cmd.Status, "status", "", "Reader status: active or inactive")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s reader-save [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Register a reader, or update one when -id is given.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	return fs.Parse(args)
}

// Run executes the command
func (cmd *ReaderSaveCommand) Run() error {
	s := newSession(false)
	ctx := context.Background()

	var form controller.ReaderForm
	if cmd.ID != 0 {
		// Readers are edited from the cache, so load the collection first.
		if err := s.ctrl.Reload(ctx, entities.KindReaders); err != nil {
			return err
		}
		bound, err := s.ctrl.OpenForEdit(ctx, entities.KindReaders, cmd.ID)
		if err != nil {
			return err
		}
		form = bound.Reader
		if cmd.FullName != "" {
			form.FullName = cmd.FullName
		}
		if cmd.Phone != "" {
			form.Phone = cmd.Phone
		}
		if cmd.Email != "" {
			form.Email = cmd.Email
		}
		if cmd.Address != "" {
			form.Address = cmd.Address
		}
		if cmd.Status != "" {
			form.Status = cmd.Status
		}
	} else {
		s.ctrl.OpenForCreate(entities.KindReaders)
		form = controller.ReaderForm{
			FullName: cmd.FullName,
			Phone:    cmd.Phone,
			Email:    cmd.Email,
			Address:  cmd.Address,
			Status:   cmd.Status,
		}
	}

	return s.ctrl.SaveReader(ctx, form)
}

// ReaderDeleteCommand deletes a reader after confirmation.
type ReaderDeleteCommand struct {
	ID  int
	Yes bool
}

// NewReaderDeleteCommand creates a new ReaderDeleteCommand
func NewReaderDeleteCommand() *ReaderDeleteCommand {
	return &ReaderDeleteCommand{}
}

// ParseFlags parses command line flags
func (cmd *ReaderDeleteCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("reader-delete", flag.ExitOnError)

	fs.IntVar(&cmd.ID, "id", 0, "Reader id to delete (required)")
	fs.BoolVar(&cmd.Yes, "yes", false, "Skip the confirmation prompt")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s reader-delete -id <id> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Delete a reader.\n\n")
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
func (cmd *ReaderDeleteCommand) Run() error {
	s := newSession(cmd.Yes)
	return s.ctrl.Delete(context.Background(), entities.KindReaders, cmd.ID)
}
