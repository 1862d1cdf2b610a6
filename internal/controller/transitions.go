package controller

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/mrlokans/libtool/internal/api"
	"github.com/mrlokans/libtool/internal/entities"
)

// InvalidTransition reports an attempted illegal checkout state change. No
// mutation happens when it is raised.
type InvalidTransition struct {
	IssueID int
	From    entities.IssueStatus
	To      entities.IssueStatus
}

func (e *InvalidTransition) Error() string {
	return fmt.Sprintf("issue %d: cannot transition from %s to %s", e.IssueID, e.From, e.To)
}

// CreateIssue validates the checkout form, checks the availability
// preconditions against the current snapshot and creates the checkout
// record. On success the book, reader and issue collections are all reloaded
// before control returns, so the decremented copy count and incremented loan
// count are never rendered stale.
func (c *Controller) CreateIssue(ctx context.Context, form IssueForm) error {
	payload, err := form.Validate()
	if err != nil {
		c.notifier.Notify(LevelError, err.Error())
		return err
	}

	book, ok := c.store.Book(payload.BookID)
	if !ok {
		err := fmt.Errorf("book %d: %w", payload.BookID, api.ErrNotFound)
		c.notifier.Notify(LevelError, "Selected book not found")
		return err
	}
	if !book.Available() {
		err := &ValidationError{Field: "book_id", Message: fmt.Sprintf("%q has no available copies", book.Name)}
		c.notifier.Notify(LevelError, err.Error())
		return err
	}

	reader, ok := c.store.Reader(payload.ReaderID)
	if !ok {
		err := fmt.Errorf("reader %d: %w", payload.ReaderID, api.ErrNotFound)
		c.notifier.Notify(LevelError, "Selected reader not found")
		return err
	}
	if !reader.Active() {
		err := &ValidationError{Field: "reader_id", Message: fmt.Sprintf("%q is not an active reader", reader.FullName)}
		c.notifier.Notify(LevelError, err.Error())
		return err
	}

	if _, err := c.gateway.CreateIssue(ctx, payload); err != nil {
		log.Error().Err(err).Int("book_id", payload.BookID).Int("reader_id", payload.ReaderID).Msg("checkout failed")
		c.notifier.Notify(LevelError, fmt.Sprintf("Failed to issue book: %v", err))
		return err
	}

	c.CloseForm()
	if err := c.Reload(ctx, entities.KindBooks, entities.KindReaders, entities.KindIssues); err != nil {
		return err
	}

	c.notifier.Notify(LevelSuccess, "Book issued")
	return nil
}

// Return records the return of a checked-out book. Legal from issued or
// overdue; a second return fails with InvalidTransition and changes nothing.
// On success the book's copy count and the reader's loan count move back, so
// all three collections reload together.
func (c *Controller) Return(ctx context.Context, issueID int) error {
	issue, ok := c.store.Issue(issueID)
	if !ok {
		err := fmt.Errorf("issue %d: %w", issueID, api.ErrNotFound)
		c.notifier.Notify(LevelError, "Checkout record not found")
		return err
	}
	if !issue.Open() {
		err := &InvalidTransition{IssueID: issueID, From: issue.Status, To: entities.IssueStatusReturned}
		c.notifier.Notify(LevelError, err.Error())
		return err
	}

	if !c.confirm.Confirm(fmt.Sprintf("Accept the return of %q?", issue.BookName)) {
		return nil
	}

	if err := c.gateway.ReturnIssue(ctx, issueID); err != nil {
		log.Error().Err(err).Int("issue_id", issueID).Msg("return failed")
		c.notifier.Notify(LevelError, fmt.Sprintf("Failed to accept return: %v", err))
		return err
	}

	if err := c.Reload(ctx, entities.KindBooks, entities.KindReaders, entities.KindIssues); err != nil {
		return err
	}

	c.notifier.Notify(LevelSuccess, "Return accepted")
	return nil
}

// MarkOverdue flags a checkout as overdue. Legal only from issued. The
// confirmation prompt warns about the downstream penalty before anything is
// sent; on success the issue list and the statistics report refresh.
func (c *Controller) MarkOverdue(ctx context.Context, issueID int) error {
	issue, ok := c.store.Issue(issueID)
	if !ok {
		err := fmt.Errorf("issue %d: %w", issueID, api.ErrNotFound)
		c.notifier.Notify(LevelError, "Checkout record not found")
		return err
	}
	if issue.Status != entities.IssueStatusIssued {
		err := &InvalidTransition{IssueID: issueID, From: issue.Status, To: entities.IssueStatusOverdue}
		c.notifier.Notify(LevelError, err.Error())
		return err
	}

	if !c.confirm.Confirm("Mark this checkout as overdue? The reader will be fined.") {
		return nil
	}

	if err := c.gateway.MarkOverdue(ctx, issueID); err != nil {
		log.Error().Err(err).Int("issue_id", issueID).Msg("mark overdue failed")
		c.notifier.Notify(LevelError, fmt.Sprintf("Failed to mark overdue: %v", err))
		return err
	}

	if err := c.Reload(ctx, entities.KindIssues); err != nil {
		return err
	}
	if err := c.LoadStats(ctx); err != nil {
		return err
	}

	c.notifier.Notify(LevelWarning, "Checkout marked as overdue")
	return nil
}
