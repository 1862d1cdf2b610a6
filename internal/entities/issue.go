package entities

type IssueStatus string

const (
	IssueStatusIssued   IssueStatus = "issued"
	IssueStatusReturned IssueStatus = "returned"
	IssueStatusOverdue  IssueStatus = "overdue"
)

// Issue is a checkout record linking one book and one reader. It is created
// in status "issued" and only ever mutated by the return and mark-overdue
// transitions; ActualReturnDate is set exactly when the status becomes
// "returned".
type Issue struct {
	ID                int         `json:"id"`
	BookID            int         `json:"book_id"`
	ReaderID          int         `json:"reader_id"`
	IssueDate         Date        `json:"issue_date"`
	PlannedReturnDate Date        `json:"planned_return_date"`
	ActualReturnDate  *Date       `json:"actual_return_date,omitempty"`
	Status            IssueStatus `json:"status"`

	// Denormalized display names filled in by the server.
	BookName   string `json:"book_name,omitempty"`
	ReaderName string `json:"reader_name,omitempty"`
}

// Open reports whether the checkout is still outstanding.
func (i Issue) Open() bool {
	return i.Status == IssueStatusIssued || i.Status == IssueStatusOverdue
}
