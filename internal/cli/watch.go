package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mrlokans/libtool/internal/refresher"
)

// WatchCommand keeps a session alive, refreshing it on the configured
// schedule until interrupted.
type WatchCommand struct {
	Schedule string
}

// NewWatchCommand creates a new WatchCommand
func NewWatchCommand() *WatchCommand {
	return &WatchCommand{}
}

// ParseFlags parses command line flags
func (cmd *WatchCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)

	fs.StringVar(&cmd.Schedule, "schedule", "", "Cron refresh schedule (default: configured schedule)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s watch [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Keep the session refreshed on a schedule until interrupted.\n")
		fmt.Fprintf(os.Stderr, "Each cycle sweeps for overdue checkouts and reloads all collections.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	return fs.Parse(args)
}

// Run executes the command
func (cmd *WatchCommand) Run() error {
	s := newSession(false)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	schedule := cmd.Schedule
	if schedule == "" {
		schedule = s.cfg.Refresh.Schedule
	}

	r := refresher.New(s.client, s.ctrl, schedule, true)

	// Populate the session before the first tick.
	r.RunOnce(ctx)

	if err := r.Start(ctx); err != nil {
		return err
	}
	defer r.Stop()

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	<-ch

	s.store.Clear()
	return nil
}
