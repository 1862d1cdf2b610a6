package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
)

// ReportsCommand shows the statistics dashboard.
type ReportsCommand struct{}

// NewReportsCommand creates a new ReportsCommand
func NewReportsCommand() *ReportsCommand {
	return &ReportsCommand{}
}

// ParseFlags parses command line flags
func (cmd *ReportsCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("reports", flag.ExitOnError)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s reports\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Show library statistics: totals and the genre distribution.\n")
	}

	return fs.Parse(args)
}

// Run executes the command
func (cmd *ReportsCommand) Run() error {
	s := newSession(false)
	ctx := context.Background()

	if err := s.ctrl.LoadStats(ctx); err != nil {
		return err
	}

	stats := s.store.Stats()
	if stats == nil {
		return fmt.Errorf("no statistics available")
	}
	s.renderer.Stats(*stats)
	return nil
}

// HealthCommand probes the server health endpoint.
type HealthCommand struct{}

// NewHealthCommand creates a new HealthCommand
func NewHealthCommand() *HealthCommand {
	return &HealthCommand{}
}

// ParseFlags parses command line flags
func (cmd *HealthCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("health", flag.ExitOnError)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s health\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Check the server and its database connection.\n")
	}

	return fs.Parse(args)
}

// Run executes the command
func (cmd *HealthCommand) Run() error {
	s := newSession(false)

	health, err := s.client.HealthCheck(context.Background())
	if err != nil {
		return fmt.Errorf("server unreachable: %w", err)
	}

	fmt.Printf("Status:   %s\n", health.Status)
	fmt.Printf("Database: %s\n", health.Database)
	fmt.Printf("Books:    %d\n", health.BooksCount)
	return nil
}
