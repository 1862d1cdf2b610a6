package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mrlokans/libtool/internal/controller"
	"github.com/mrlokans/libtool/internal/entities"
)

func TestNotify(t *testing.T) {
	var out bytes.Buffer
	r := New(&out, strings.NewReader(""))

	r.Notify(controller.LevelSuccess, "Record added")

	assert.Equal(t, "[SUCCESS] Record added\n", out.String())
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{name: "yes", input: "y\n", want: true},
		{name: "yes word", input: "Yes\n", want: true},
		{name: "no", input: "n\n", want: false},
		{name: "default is no", input: "\n", want: false},
		{name: "eof is no", input: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			r := New(&out, strings.NewReader(tt.input))

			got := r.Confirm("Delete this record?")

			assert.Equal(t, tt.want, got)
			assert.Contains(t, out.String(), "[y/N]")
		})
	}
}

func TestConfirmAssumeYesSkipsPrompt(t *testing.T) {
	var out bytes.Buffer
	r := New(&out, strings.NewReader(""))
	r.AssumeYes = true

	assert.True(t, r.Confirm("Delete this record?"))
	assert.Empty(t, out.String())
}

func TestBooksTable(t *testing.T) {
	var out bytes.Buffer
	r := New(&out, strings.NewReader(""))

	r.Books([]entities.Book{
		{ID: 1, Name: "Dune", Author: "Frank Herbert", Genre: "Sci-Fi", Count: 3, Status: entities.BookStatusAvailable},
		{ID: 2, Name: "Moby Dick", Author: "Herman Melville", Count: 0, Status: entities.BookStatusIssued},
	})

	got := out.String()
	assert.Contains(t, got, "NAME")
	assert.Contains(t, got, "Dune")
	assert.Contains(t, got, "available")
	assert.Contains(t, got, "-", "missing genre renders as a dash")
}

func TestBooksEmpty(t *testing.T) {
	var out bytes.Buffer
	r := New(&out, strings.NewReader(""))

	r.Books(nil)

	assert.Equal(t, "No books found\n", out.String())
}

func TestIssuesTableShowsReturnDate(t *testing.T) {
	var out bytes.Buffer
	r := New(&out, strings.NewReader(""))

	returned := entities.NewDate(2026, 9, 1)
	r.Issues([]entities.Issue{
		{ID: 1, BookName: "Dune", ReaderName: "Ada Lovelace", Status: entities.IssueStatusReturned, ActualReturnDate: &returned},
		{ID: 2, BookName: "Moby Dick", ReaderName: "Ada Lovelace", Status: entities.IssueStatusIssued},
	})

	got := out.String()
	assert.Contains(t, got, "2026-09-01")
	assert.Contains(t, got, "issued")
}

func TestStatsRendersGenreBars(t *testing.T) {
	var out bytes.Buffer
	r := New(&out, strings.NewReader(""))

	r.Stats(entities.Stats{
		Books:  entities.BookStats{Total: 4, Available: 2},
		Genres: map[string]int{"Sci-Fi": 3, "Classic": 1},
	})

	got := out.String()
	assert.Contains(t, got, "Total books")
	assert.Contains(t, got, "Genres:")
	assert.Contains(t, got, "Sci-Fi")
	assert.Contains(t, got, strings.Repeat("#", 15), "75% renders as a 15-step bar")
}
