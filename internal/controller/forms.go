package controller

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mrlokans/libtool/internal/api"
	"github.com/mrlokans/libtool/internal/entities"
)

// ValidationError reports a malformed or missing form field. It is raised
// before any network call; the form stays open so the operator can correct
// the field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// BookForm carries raw book form input. Fields hold the text as entered;
// Validate converts them into a typed payload.
type BookForm struct {
	Name   string
	Author string
	Genre  string
	Count  string
}

// Validate checks required fields and builds the request payload. Name and
// author must be non-empty; count must be a non-negative integer.
func (f BookForm) Validate() (api.BookPayload, error) {
	name := strings.TrimSpace(f.Name)
	author := strings.TrimSpace(f.Author)

	if name == "" {
		return api.BookPayload{}, &ValidationError{Field: "name", Message: "book name is required"}
	}
	if author == "" {
		return api.BookPayload{}, &ValidationError{Field: "author", Message: "book author is required"}
	}

	count, err := strconv.Atoi(strings.TrimSpace(f.Count))
	if err != nil {
		return api.BookPayload{}, &ValidationError{Field: "count", Message: "copy count must be an integer"}
	}
	if count < 0 {
		return api.BookPayload{}, &ValidationError{Field: "count", Message: "copy count must not be negative"}
	}

	return api.BookPayload{
		Name:   name,
		Author: author,
		Genre:  strings.TrimSpace(f.Genre),
		Count:  count,
	}, nil
}

// ReaderForm carries raw reader form input.
type ReaderForm struct {
	FullName string
	Phone    string
	Email    string
	Address  string
	Status   string
}

// Validate checks required fields and builds the request payload. Only the
// full name is mandatory; status defaults to active.
func (f ReaderForm) Validate() (api.ReaderPayload, error) {
	fullName := strings.TrimSpace(f.FullName)
	if fullName == "" {
		return api.ReaderPayload{}, &ValidationError{Field: "full_name", Message: "reader full name is required"}
	}

	status := entities.ReaderStatus(strings.TrimSpace(f.Status))
	switch status {
	case "":
		status = entities.ReaderStatusActive
	case entities.ReaderStatusActive, entities.ReaderStatusInactive:
	default:
		return api.ReaderPayload{}, &ValidationError{Field: "status", Message: fmt.Sprintf("unknown reader status %q", f.Status)}
	}

	return api.ReaderPayload{
		FullName: fullName,
		Phone:    strings.TrimSpace(f.Phone),
		Email:    strings.TrimSpace(f.Email),
		Address:  strings.TrimSpace(f.Address),
		Status:   status,
	}, nil
}

// IssueForm carries raw checkout form input: the selected book and reader
// ids plus the planned return date.
type IssueForm struct {
	BookID            string
	ReaderID          string
	PlannedReturnDate string
}

// Validate checks that a book, a reader and a planned return date were
// selected and builds the request payload.
func (f IssueForm) Validate() (api.IssuePayload, error) {
	bookID, err := strconv.Atoi(strings.TrimSpace(f.BookID))
	if err != nil || bookID <= 0 {
		return api.IssuePayload{}, &ValidationError{Field: "book_id", Message: "select a book"}
	}

	readerID, err := strconv.Atoi(strings.TrimSpace(f.ReaderID))
	if err != nil || readerID <= 0 {
		return api.IssuePayload{}, &ValidationError{Field: "reader_id", Message: "select a reader"}
	}

	if strings.TrimSpace(f.PlannedReturnDate) == "" {
		return api.IssuePayload{}, &ValidationError{Field: "planned_return_date", Message: "planned return date is required"}
	}
	returnDate, err := entities.ParseDate(strings.TrimSpace(f.PlannedReturnDate))
	if err != nil {
		return api.IssuePayload{}, &ValidationError{Field: "planned_return_date", Message: "planned return date must be YYYY-MM-DD"}
	}

	return api.IssuePayload{
		BookID:            bookID,
		ReaderID:          readerID,
		PlannedReturnDate: returnDate,
	}, nil
}
