package cli

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/mrlokans/libtool/internal/api"
	"github.com/mrlokans/libtool/internal/downloads"
)

// DownloadCommand fetches a binary document from the server: a book
// certificate, the library rules or the checkout spreadsheet export.
type DownloadCommand struct {
	What   string
	BookID int
	Dir    string
}

// NewDownloadCommand creates a new DownloadCommand
func NewDownloadCommand() *DownloadCommand {
	return &DownloadCommand{}
}

// ParseFlags parses command line flags
func (cmd *DownloadCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("download", flag.ExitOnError)

	fs.StringVar(&cmd.What, "what", "", "Document to fetch: certificate, rules or issues (required)")
	fs.IntVar(&cmd.BookID, "book", 0, "Book id (required for certificate)")
	fs.StringVar(&cmd.Dir, "dir", "", "Target directory (default: configured downloads dir)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s download -what <document> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Download a document from the server.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s download -what rules\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s download -what certificate -book 7\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s download -what issues -dir ./exports\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	switch cmd.What {
	case "certificate":
		if cmd.BookID == 0 {
			return fmt.Errorf("-book is required for certificate downloads")
		}
	case "rules", "issues":
	case "":
		return fmt.Errorf("-what is required")
	default:
		return fmt.Errorf("unknown document %q (expected certificate, rules or issues)", cmd.What)
	}
	return nil
}

// Run executes the command
func (cmd *DownloadCommand) Run() error {
	s := newSession(false)
	ctx := context.Background()

	dir := cmd.Dir
	if dir == "" {
		dir = s.cfg.Downloads.Dir
	}
	saver, err := downloads.NewSaver(dir)
	if err != nil {
		return err
	}

	var att *api.Attachment
	switch cmd.What {
	case "certificate":
		att, err = s.client.Certificate(ctx, cmd.BookID)
	case "rules":
		att, err = s.client.Rules(ctx)
	case "issues":
		att, err = s.client.ExportIssues(ctx)
	}
	if err != nil {
		return fmt.Errorf("download failed: %w", err)
	}

	path, err := saver.Save(att)
	if err != nil {
		return fmt.Errorf("save failed: %w", err)
	}

	fmt.Printf("Saved %s\n", path)
	return nil
}
