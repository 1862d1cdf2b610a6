package reports

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/libtool/internal/entities"
)

func TestSummaryRowOrder(t *testing.T) {
	stats := entities.Stats{
		Books:   entities.BookStats{Total: 10, Available: 7},
		Readers: entities.ReaderStats{Total: 4, Active: 3},
		Issues:  entities.IssueStats{Total: 6, Current: 2, Overdue: 1, Returned: 3},
	}

	rows := Summary(stats)
	require.Len(t, rows, 7)

	assert.Equal(t, SummaryRow{Label: "Total books", Value: 10}, rows[0])
	assert.Equal(t, SummaryRow{Label: "Available books", Value: 7}, rows[1])
	assert.Equal(t, SummaryRow{Label: "Current checkouts", Value: 2}, rows[5])
	assert.Equal(t, SummaryRow{Label: "Overdue checkouts", Value: 1}, rows[6])
}

func TestGenreBreakdown(t *testing.T) {
	rows := GenreBreakdown(map[string]int{
		"Sci-Fi":  5,
		"Classic": 3,
		"Poetry":  2,
	})

	require.Len(t, rows, 3)
	assert.Equal(t, GenreRow{Genre: "Sci-Fi", Count: 5, Percent: 50}, rows[0])
	assert.Equal(t, GenreRow{Genre: "Classic", Count: 3, Percent: 30}, rows[1])
	assert.Equal(t, GenreRow{Genre: "Poetry", Count: 2, Percent: 20}, rows[2])
}

func TestGenreBreakdownTiesSortByName(t *testing.T) {
	rows := GenreBreakdown(map[string]int{
		"Zoology": 2,
		"Art":     2,
		"History": 4,
	})

	require.Len(t, rows, 3)
	assert.Equal(t, "History", rows[0].Genre)
	assert.Equal(t, "Art", rows[1].Genre)
	assert.Equal(t, "Zoology", rows[2].Genre)
}

func TestGenreBreakdownTruncatesPercent(t *testing.T) {
	rows := GenreBreakdown(map[string]int{"A": 1, "B": 2})

	require.Len(t, rows, 2)
	assert.Equal(t, 66, rows[0].Percent)
	assert.Equal(t, 33, rows[1].Percent)
}

func TestGenreBreakdownEmpty(t *testing.T) {
	assert.Empty(t, GenreBreakdown(nil))
	assert.Empty(t, GenreBreakdown(map[string]int{}))
}
