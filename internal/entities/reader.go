package entities

type ReaderStatus string

const (
	ReaderStatusActive   ReaderStatus = "active"
	ReaderStatusInactive ReaderStatus = "inactive"
)

// Reader is a registered library patron. BooksCount is the number of
// currently open checkouts, maintained by the server.
type Reader struct {
	ID               int          `json:"id"`
	FullName         string       `json:"full_name"`
	Phone            string       `json:"phone,omitempty"`
	Email            string       `json:"email,omitempty"`
	Address          string       `json:"address,omitempty"`
	RegistrationDate Date         `json:"registration_date"`
	BooksCount       int          `json:"books_count"`
	Status           ReaderStatus `json:"status"`
}

// Active reports whether the reader may check out books.
func (r Reader) Active() bool {
	return r.Status == ReaderStatusActive
}
