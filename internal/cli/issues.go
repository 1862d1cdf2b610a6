package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/mrlokans/libtool/internal/controller"
	"github.com/mrlokans/libtool/internal/entities"
	"github.com/mrlokans/libtool/internal/view"
)

// defaultLoanPeriod is the planned return offset when none is given.
const defaultLoanPeriod = 14 * 24 * time.Hour

// IssuesCommand lists checkout records with optional status filtering.
type IssuesCommand struct {
	Status string
}

// NewIssuesCommand creates a new IssuesCommand
func NewIssuesCommand() *IssuesCommand {
	return &IssuesCommand{}
}

// ParseFlags parses command line flags
func (cmd *IssuesCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("issues", flag.ExitOnError)

	fs.StringVar(&cmd.Status, "status", "", "Filter by status: issued, returned or overdue")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s issues [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "List checkout records.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	return fs.Parse(args)
}

// Run executes the command
func (cmd *IssuesCommand) Run() error {
	s := newSession(false)
	ctx := context.Background()

	if err := s.ctrl.Reload(ctx, entities.KindIssues); err != nil {
		return err
	}

	issues := view.FilterIssues(s.store.Issues(), entities.IssueStatus(cmd.Status))
	s.renderer.Issues(issues)
	return nil
}

// IssueCommand checks a book out to a reader.
type IssueCommand struct {
	BookID     int
	ReaderID   int
	ReturnDate string
}

// NewIssueCommand creates a new IssueCommand
func NewIssueCommand() *IssueCommand {
	return &IssueCommand{}
}

// ParseFlags parses command line flags
func (cmd *IssueCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("issue", flag.ExitOnError)

	defaultReturn := time.Now().Add(defaultLoanPeriod).Format("2006-01-02")

	fs.IntVar(&cmd.BookID, "book", 0, "Book id to check out (required)")
	fs.IntVar(&cmd.ReaderID, "reader", 0, "Reader id (required)")
	fs.StringVar(&cmd.ReturnDate, "due", defaultReturn, "Planned return date (YYYY-MM-DD)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s issue -book <id> -reader <id> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Check a book out to a reader.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s issue -book 3 -reader 12\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s issue -book 3 -reader 12 -due 2026-10-01\n", os.Args[0])
	}

	return fs.Parse(args)
}

// Run executes the command
func (cmd *IssueCommand) Run() error {
	s := newSession(false)
	ctx := context.Background()

	// Availability preconditions are checked against the snapshot, so the
	// books and readers collections must be loaded first.
	if err := s.ctrl.Reload(ctx, entities.KindBooks, entities.KindReaders); err != nil {
		return err
	}

	return s.ctrl.CreateIssue(ctx, controller.IssueForm{
		BookID:            fmt.Sprintf("%d", cmd.BookID),
		ReaderID:          fmt.Sprintf("%d", cmd.ReaderID),
		PlannedReturnDate: cmd.ReturnDate,
	})
}

// ReturnCommand records the return of a checked-out book.
type ReturnCommand struct {
	IssueID int
	Yes     bool
}

// NewReturnCommand creates a new ReturnCommand
func NewReturnCommand() *ReturnCommand {
	return &ReturnCommand{}
}

// ParseFlags parses command line flags
func (cmd *ReturnCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("return", flag.ExitOnError)

	fs.IntVar(&cmd.IssueID, "issue", 0, "Checkout record id (required)")
	fs.BoolVar(&cmd.Yes, "yes", false, "Skip the confirmation prompt")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s return -issue <id> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Accept the return of a checked-out book.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if cmd.IssueID == 0 {
		return fmt.Errorf("-issue is required")
	}
	return nil
}

// Run executes the command
func (cmd *ReturnCommand) Run() error {
	s := newSession(cmd.Yes)
	ctx := context.Background()

	if err := s.ctrl.Reload(ctx, entities.KindIssues); err != nil {
		return err
	}
	return s.ctrl.Return(ctx, cmd.IssueID)
}

// OverdueCommand flags a checkout as overdue.
type OverdueCommand struct {
	IssueID int
	Yes     bool
}

// NewOverdueCommand creates a new OverdueCommand
func NewOverdueCommand() *OverdueCommand {
	return &OverdueCommand{}
}

// ParseFlags parses command line flags
func (cmd *OverdueCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("overdue", flag.ExitOnError)

	fs.IntVar(&cmd.IssueID, "issue", 0, "Checkout record id (required)")
	fs.BoolVar(&cmd.Yes, "yes", false, "Skip the confirmation prompt")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s overdue -issue <id> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Mark a checkout as overdue. The reader will be fined.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if cmd.IssueID == 0 {
		return fmt.Errorf("-issue is required")
	}
	return nil
}

// Run executes the command
func (cmd *OverdueCommand) Run() error {
	s := newSession(cmd.Yes)
	ctx := context.Background()

	if err := s.ctrl.Reload(ctx, entities.KindIssues); err != nil {
		return err
	}
	return s.ctrl.MarkOverdue(ctx, cmd.IssueID)
}
