package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mrlokans/libtool/internal/cli"
)

// Version information - set at build time via ldflags
var (
	Version = "dev"
	Commit  = "unknown"
)

// runnable is the shape every subcommand shares.
type runnable interface {
	ParseFlags(args []string) error
	Run() error
}

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	if level, err := zerolog.ParseLevel(os.Getenv("LIBTOOL_LOG_LEVEL")); err == nil && level != zerolog.NoLevel {
		zerolog.SetGlobalLevel(level)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	commands := map[string]runnable{
		"books":         cli.NewBooksCommand(),
		"book-save":     cli.NewBookSaveCommand(),
		"book-delete":   cli.NewBookDeleteCommand(),
		"readers":       cli.NewReadersCommand(),
		"reader-save":   cli.NewReaderSaveCommand(),
		"reader-delete": cli.NewReaderDeleteCommand(),
		"issues":        cli.NewIssuesCommand(),
		"issue":         cli.NewIssueCommand(),
		"return":        cli.NewReturnCommand(),
		"overdue":       cli.NewOverdueCommand(),
		"reports":       cli.NewReportsCommand(),
		"health":        cli.NewHealthCommand(),
		"download":      cli.NewDownloadCommand(),
		"watch":         cli.NewWatchCommand(),
	}

	switch command {
	case "-h", "--help", "help":
		printUsage()

	case "version", "--version":
		fmt.Printf("libtool %s (%s)\n", Version, Commit)

	default:
		cmd, ok := commands[command]
		if !ok {
			fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
			printUsage()
			os.Exit(1)
		}
		if err := cmd.ParseFlags(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if err := cmd.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Usage: %s <command> [options]\n\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "Catalog:\n")
	fmt.Fprintf(os.Stderr, "  books          List books (filter, search, sort)\n")
	fmt.Fprintf(os.Stderr, "  book-save      Add a book, or update one with -id\n")
	fmt.Fprintf(os.Stderr, "  book-delete    Delete a book\n")
	fmt.Fprintf(os.Stderr, "\nReaders:\n")
	fmt.Fprintf(os.Stderr, "  readers        List readers\n")
	fmt.Fprintf(os.Stderr, "  reader-save    Register a reader, or update one with -id\n")
	fmt.Fprintf(os.Stderr, "  reader-delete  Delete a reader\n")
	fmt.Fprintf(os.Stderr, "\nCheckouts:\n")
	fmt.Fprintf(os.Stderr, "  issues         List checkout records\n")
	fmt.Fprintf(os.Stderr, "  issue          Check a book out to a reader\n")
	fmt.Fprintf(os.Stderr, "  return         Accept a return\n")
	fmt.Fprintf(os.Stderr, "  overdue        Mark a checkout as overdue\n")
	fmt.Fprintf(os.Stderr, "\nOther:\n")
	fmt.Fprintf(os.Stderr, "  reports        Show library statistics\n")
	fmt.Fprintf(os.Stderr, "  health         Check the server connection\n")
	fmt.Fprintf(os.Stderr, "  download       Fetch a certificate, the rules or the issues export\n")
	fmt.Fprintf(os.Stderr, "  watch          Keep the session refreshed on a schedule\n")
	fmt.Fprintf(os.Stderr, "\nUse '%s <command> -h' for help on a specific command.\n", os.Args[0])
}
