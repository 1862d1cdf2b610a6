package entities

type BookStatus string

const (
	BookStatusAvailable BookStatus = "available"
	BookStatusIssued    BookStatus = "issued"
)

// Book is a catalog title. Count tracks remaining copies; Status is a single
// flag the server flips to "issued" when the last copy goes out and back to
// "available" on the first return. The model does not distinguish individual
// copies.
type Book struct {
	ID     int        `json:"id"`
	Name   string     `json:"name"`
	Author string     `json:"author"`
	Genre  string     `json:"genre,omitempty"`
	Count  int        `json:"count"`
	Status BookStatus `json:"status"`
}

// Available reports whether at least one copy can be checked out.
func (b Book) Available() bool {
	return b.Count > 0 && b.Status == BookStatusAvailable
}
