package entities

// Stats is the aggregate report shape served by /api/reports/stats.
type Stats struct {
	Books   BookStats      `json:"books"`
	Readers ReaderStats    `json:"readers"`
	Issues  IssueStats     `json:"issues"`
	Genres  map[string]int `json:"genres"`
}

type BookStats struct {
	Total     int `json:"total"`
	Available int `json:"available"`
}

type ReaderStats struct {
	Total  int `json:"total"`
	Active int `json:"active"`
}

type IssueStats struct {
	Total    int `json:"total"`
	Current  int `json:"current"`
	Overdue  int `json:"overdue"`
	Returned int `json:"returned"`
}
