// Package reports builds display models from the aggregate statistics
// report. Rendering (tables, charts) stays in the presentation layer.
package reports

import (
	"sort"

	"github.com/mrlokans/libtool/internal/entities"
)

// SummaryRow is one labeled figure in the overall statistics card.
type SummaryRow struct {
	Label string
	Value int
}

// GenreRow is one slice of the genre distribution.
type GenreRow struct {
	Genre   string
	Count   int
	Percent int
}

// Summary flattens the stats into the ordered rows the dashboard shows.
func Summary(stats entities.Stats) []SummaryRow {
	return []SummaryRow{
		{Label: "Total books", Value: stats.Books.Total},
		{Label: "Available books", Value: stats.Books.Available},
		{Label: "Total readers", Value: stats.Readers.Total},
		{Label: "Active readers", Value: stats.Readers.Active},
		{Label: "Total checkouts", Value: stats.Issues.Total},
		{Label: "Current checkouts", Value: stats.Issues.Current},
		{Label: "Overdue checkouts", Value: stats.Issues.Overdue},
	}
}

// GenreBreakdown orders the genre distribution by count (descending, names
// as tiebreaker) with each row's share as an integer percentage of the
// total. An empty map yields an empty slice.
func GenreBreakdown(genres map[string]int) []GenreRow {
	total := 0
	for _, count := range genres {
		total += count
	}

	rows := make([]GenreRow, 0, len(genres))
	for genre, count := range genres {
		row := GenreRow{Genre: genre, Count: count}
		if total > 0 {
			row.Percent = count * 100 / total
		}
		rows = append(rows, row)
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Count != rows[j].Count {
			return rows[i].Count > rows[j].Count
		}
		return rows[i].Genre < rows[j].Genre
	})
	return rows
}
