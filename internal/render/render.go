// Package render is the terminal presentation layer: tables for the three
// collections, the statistics dashboard, notifications and confirmation
// prompts. It only reads controller output and never mutates the store.
package render

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/mrlokans/libtool/internal/controller"
	"github.com/mrlokans/libtool/internal/entities"
	"github.com/mrlokans/libtool/internal/reports"
)

// Renderer writes tables and notifications to out and reads confirmation
// answers from in.
type Renderer struct {
	out io.Writer
	in  io.Reader

	// AssumeYes skips confirmation prompts, for non-interactive use.
	AssumeYes bool
}

// New creates a renderer.
func New(out io.Writer, in io.Reader) *Renderer {
	return &Renderer{out: out, in: in}
}

// Notify implements controller.Notifier.
func (r *Renderer) Notify(level controller.Level, message string) {
	fmt.Fprintf(r.out, "[%s] %s\n", strings.ToUpper(string(level)), message)
}

// Confirm implements controller.Confirmer with a y/N prompt.
func (r *Renderer) Confirm(prompt string) bool {
	if r.AssumeYes {
		return true
	}

	fmt.Fprintf(r.out, "%s [y/N]: ", prompt)
	scanner := bufio.NewScanner(r.in)
	if !scanner.Scan() {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(scanner.Text()))
	return answer == "y" || answer == "yes"
}

// SetLoading implements controller.LoadingSink.
func (r *Renderer) SetLoading(kind entities.Kind, loading bool) {
	if loading {
		fmt.Fprintf(r.out, "Loading %s...\n", kind)
	}
}

// Books prints the book table.
func (r *Renderer) Books(books []entities.Book) {
	if len(books) == 0 {
		fmt.Fprintln(r.out, "No books found")
		return
	}

	w := tabwriter.NewWriter(r.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tAUTHOR\tGENRE\tCOUNT\tSTATUS")
	for _, b := range books {
		genre := b.Genre
		if genre == "" {
			genre = "-"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\t%s\n", b.ID, b.Name, b.Author, genre, b.Count, b.Status)
	}
	w.Flush()
}

// Readers prints the reader table.
func (r *Renderer) Readers(readers []entities.Reader) {
	if len(readers) == 0 {
		fmt.Fprintln(r.out, "No readers found")
		return
	}

	w := tabwriter.NewWriter(r.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tFULL NAME\tCONTACTS\tREGISTERED\tLOANS\tSTATUS")
	for _, rd := range readers {
		contacts := strings.TrimSpace(strings.Join(nonEmpty(rd.Phone, rd.Email), " "))
		if contacts == "" {
			contacts = "-"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\t%s\n",
			rd.ID, rd.FullName, contacts, rd.RegistrationDate, rd.BooksCount, rd.Status)
	}
	w.Flush()
}

// Issues prints the checkout table.
func (r *Renderer) Issues(issues []entities.Issue) {
	if len(issues) == 0 {
		fmt.Fprintln(r.out, "No checkouts found")
		return
	}

	w := tabwriter.NewWriter(r.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tBOOK\tREADER\tISSUED\tDUE\tRETURNED\tSTATUS")
	for _, i := range issues {
		returned := "-"
		if i.ActualReturnDate != nil {
			returned = i.ActualReturnDate.String()
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			i.ID, i.BookName, i.ReaderName, i.IssueDate, i.PlannedReturnDate, returned, i.Status)
	}
	w.Flush()
}

// Stats prints the statistics summary and the genre distribution.
func (r *Renderer) Stats(stats entities.Stats) {
	w := tabwriter.NewWriter(r.out, 0, 4, 2, ' ', 0)
	for _, row := range reports.Summary(stats) {
		fmt.Fprintf(w, "%s:\t%d\n", row.Label, row.Value)
	}
	w.Flush()

	breakdown := reports.GenreBreakdown(stats.Genres)
	if len(breakdown) == 0 {
		return
	}

	fmt.Fprintln(r.out, "\nGenres:")
	gw := tabwriter.NewWriter(r.out, 0, 4, 2, ' ', 0)
	for _, row := range breakdown {
		bar := strings.Repeat("#", row.Percent/5)
		fmt.Fprintf(gw, "%s\t%d\t%3d%%\t%s\n", row.Genre, row.Count, row.Percent, bar)
	}
	gw.Flush()
}

func nonEmpty(values ...string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
