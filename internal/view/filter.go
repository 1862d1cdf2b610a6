// Package view derives display sequences from cached collections. All
// functions are pure: they never mutate their inputs and always return fresh
// slices with stable ordering.
package view

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mrlokans/libtool/internal/entities"
)

// SortOrder selects the book list ordering.
type SortOrder string

const (
	SortDefault   SortOrder = "default"
	SortCountAsc  SortOrder = "count_asc"
	SortCountDesc SortOrder = "count_desc"
)

// ParseSortOrder validates a user-supplied sort order string.
func ParseSortOrder(s string) (SortOrder, error) {
	switch SortOrder(s) {
	case SortDefault, SortCountAsc, SortCountDesc:
		return SortOrder(s), nil
	case "":
		return SortDefault, nil
	default:
		return SortDefault, fmt.Errorf("unknown sort order %q", s)
	}
}

// FilterBooks returns the books matching a case-insensitive substring search
// over name and author, plus an optional exact status filter. Empty query and
// status match everything.
func FilterBooks(books []entities.Book, query string, status entities.BookStatus) []entities.Book {
	query = strings.ToLower(query)

	filtered := make([]entities.Book, 0, len(books))
	for _, book := range books {
		matchesSearch := query == "" ||
			strings.Contains(strings.ToLower(book.Name), query) ||
			strings.Contains(strings.ToLower(book.Author), query)
		matchesStatus := status == "" || book.Status == status

		if matchesSearch && matchesStatus {
			filtered = append(filtered, book)
		}
	}
	return filtered
}

// SortBooks orders books by copy count. SortDefault preserves the input
// order; ties under either count ordering keep their relative positions.
func SortBooks(books []entities.Book, order SortOrder) []entities.Book {
	sorted := append([]entities.Book(nil), books...)

	switch order {
	case SortCountAsc:
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Count < sorted[j].Count })
	case SortCountDesc:
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Count > sorted[j].Count })
	}
	return sorted
}

// FilterReaders returns the readers matching a case-insensitive substring
// search over the full name, plus an optional exact status filter.
func FilterReaders(readers []entities.Reader, query string, status entities.ReaderStatus) []entities.Reader {
	query = strings.ToLower(query)

	filtered := make([]entities.Reader, 0, len(readers))
	for _, reader := range readers {
		matchesSearch := query == "" || strings.Contains(strings.ToLower(reader.FullName), query)
		matchesStatus := status == "" || reader.Status == status

		if matchesSearch && matchesStatus {
			filtered = append(filtered, reader)
		}
	}
	return filtered
}

// FilterIssues returns the checkout records with the given status; an empty
// status matches everything.
func FilterIssues(issues []entities.Issue, status entities.IssueStatus) []entities.Issue {
	filtered := make([]entities.Issue, 0, len(issues))
	for _, issue := range issues {
		if status == "" || issue.Status == status {
			filtered = append(filtered, issue)
		}
	}
	return filtered
}
