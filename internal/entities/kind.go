package entities

import "fmt"

// Kind identifies one of the three catalog collections. It is a closed
// enumeration: every dispatch over entity kinds switches on these values
// instead of deriving behavior from strings.
type Kind int

const (
	KindBooks Kind = iota
	KindReaders
	KindIssues
)

// Kinds lists all collection kinds in canonical order.
var Kinds = []Kind{KindBooks, KindReaders, KindIssues}

func (k Kind) String() string {
	switch k {
	case KindBooks:
		return "books"
	case KindReaders:
		return "readers"
	case KindIssues:
		return "issues"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}