package controller

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/libtool/internal/api"
	"github.com/mrlokans/libtool/internal/entities"
	"github.com/mrlokans/libtool/internal/store"
)

// fakeGateway is an in-memory stand-in for the REST boundary. It reproduces
// the server's checkout side effects (copy counts, status flips, loan
// counts) so transition tests can observe them through reloads.
type fakeGateway struct {
	mu      sync.Mutex
	books   []entities.Book
	readers []entities.Reader
	issues  []entities.Issue
	nextID  int

	calls    []string
	failNext map[string]error
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{nextID: 100, failNext: map[string]error{}}
}

func (g *fakeGateway) record(method string) error {
	g.calls = append(g.calls, method)
	if err, ok := g.failNext[method]; ok {
		delete(g.failNext, method)
		return err
	}
	return nil
}

func (g *fakeGateway) callCount(method string) int {
	g.mu.Lock()
	defer g.mu.Unlock()

	n := 0
	for _, c := range g.calls {
		if c == method {
			n++
		}
	}
	return n
}

func (g *fakeGateway) ListBooks(context.Context) ([]entities.Book, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.record("ListBooks"); err != nil {
		return nil, err
	}
	return append([]entities.Book(nil), g.books...), nil
}

func (g *fakeGateway) GetBook(_ context.Context, id int) (*entities.Book, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.record("GetBook"); err != nil {
		return nil, err
	}
	for _, b := range g.books {
		if b.ID == id {
			book := b
			return &book, nil
		}
	}
	return nil, api.ErrNotFound
}

func (g *fakeGateway) CreateBook(_ context.Context, payload api.BookPayload) (*entities.Book, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.record("CreateBook"); err != nil {
		return nil, err
	}
	g.nextID++
	book := entities.Book{
		ID:     g.nextID,
		Name:   payload.Name,
		Author: payload.Author,
		Genre:  payload.Genre,
		Count:  payload.Count,
		Status: entities.BookStatusAvailable,
	}
	g.books = append(g.books, book)
	return &book, nil
}

func (g *fakeGateway) UpdateBook(_ context.Context, id int, payload api.BookPayload) (*entities.Book, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.record("UpdateBook"); err != nil {
		return nil, err
	}
	for i, b := range g.books {
		if b.ID == id {
			g.books[i].Name = payload.Name
			g.books[i].Author = payload.Author
			g.books[i].Genre = payload.Genre
			g.books[i].Count = payload.Count
			return &g.books[i], nil
		}
	}
	return nil, api.ErrNotFound
}

func (g *fakeGateway) DeleteBook(_ context.Context, id int) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.record("DeleteBook"); err != nil {
		return err
	}
	for i, b := range g.books {
		if b.ID == id {
			g.books = append(g.books[:i], g.books[i+1:]...)
			return nil
		}
	}
	return api.ErrNotFound
}

func (g *fakeGateway) ListReaders(context.Context) ([]entities.Reader, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.record("ListReaders"); err != nil {
		return nil, err
	}
	// The server recomputes loan counts from open checkouts on every list.
	out := make([]entities.Reader, len(g.readers))
	for i, r := range g.readers {
		r.BooksCount = 0
		for _, issue := range g.issues {
			if issue.ReaderID == r.ID && issue.Open() {
				r.BooksCount++
			}
		}
		out[i] = r
	}
	return out, nil
}

func (g *fakeGateway) CreateReader(_ context.Context, payload api.ReaderPayload) (*entities.Reader, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.record("CreateReader"); err != nil {
		return nil, err
	}
	g.nextID++
	reader := entities.Reader{
		ID:               g.nextID,
		FullName:         payload.FullName,
		Phone:            payload.Phone,
		Email:            payload.Email,
		Address:          payload.Address,
		RegistrationDate: entities.Today(),
		Status:           payload.Status,
	}
	g.readers = append(g.readers, reader)
	return &reader, nil
}

func (g *fakeGateway) UpdateReader(_ context.Context, id int, payload api.ReaderPayload) (*entities.Reader, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.record("UpdateReader"); err != nil {
		return nil, err
	}
	for i, r := range g.readers {
		if r.ID == id {
			g.readers[i].FullName = payload.FullName
			g.readers[i].Phone = payload.Phone
			g.readers[i].Email = payload.Email
			g.readers[i].Address = payload.Address
			g.readers[i].Status = payload.Status
			return &g.readers[i], nil
		}
	}
	return nil, api.ErrNotFound
}

func (g *fakeGateway) DeleteReader(_ context.Context, id int) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.record("DeleteReader"); err != nil {
		return err
	}
	for i, r := range g.readers {
		if r.ID == id {
			g.readers = append(g.readers[:i], g.readers[i+1:]...)
			return nil
		}
	}
	return api.ErrNotFound
}

func (g *fakeGateway) ListIssues(context.Context) ([]entities.Issue, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.record("ListIssues"); err != nil {
		return nil, err
	}
	return append([]entities.Issue(nil), g.issues...), nil
}

func (g *fakeGateway) CreateIssue(_ context.Context, payload api.IssuePayload) (*entities.Issue, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.record("CreateIssue"); err != nil {
		return nil, err
	}
	for i, b := range g.books {
		if b.ID == payload.BookID {
			if b.Count <= 0 {
				return nil, &api.TransportError{StatusCode: 500, Message: "book unavailable"}
			}
			g.books[i].Count--
			if g.books[i].Count == 0 {
				g.books[i].Status = entities.BookStatusIssued
			}

			g.nextID++
			issue := entities.Issue{
				ID:                g.nextID,
				BookID:            payload.BookID,
				ReaderID:          payload.ReaderID,
				IssueDate:         entities.Today(),
				PlannedReturnDate: payload.PlannedReturnDate,
				Status:            entities.IssueStatusIssued,
				BookName:          b.Name,
			}
			g.issues = append(g.issues, issue)
			return &issue, nil
		}
	}
	return nil, &api.TransportError{StatusCode: 500, Message: "book unavailable"}
}

func (g *fakeGateway) ReturnIssue(_ context.Context, id int) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.record("ReturnIssue"); err != nil {
		return err
	}
	for i, issue := range g.issues {
		if issue.ID == id {
			if issue.Status == entities.IssueStatusReturned {
				return api.ErrNotFound
			}
			now := entities.Today()
			g.issues[i].Status = entities.IssueStatusReturned
			g.issues[i].ActualReturnDate = &now

			for j, b := range g.books {
				if b.ID == issue.BookID {
					g.books[j].Count++
					g.books[j].Status = entities.BookStatusAvailable
				}
			}
			return nil
		}
	}
	return api.ErrNotFound
}

func (g *fakeGateway) MarkOverdue(_ context.Context, id int) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.record("MarkOverdue"); err != nil {
		return err
	}
	for i, issue := range g.issues {
		if issue.ID == id {
			if issue.Status != entities.IssueStatusIssued {
				return &api.TransportError{StatusCode: 400, Message: "cannot mark overdue"}
			}
			g.issues[i].Status = entities.IssueStatusOverdue
			return nil
		}
	}
	return api.ErrNotFound
}

func (g *fakeGateway) Stats(context.Context) (*entities.Stats, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.record("Stats"); err != nil {
		return nil, err
	}
	stats := &entities.Stats{Genres: map[string]int{}}
	stats.Books.Total = len(g.books)
	for _, b := range g.books {
		if b.Status == entities.BookStatusAvailable {
			stats.Books.Available++
		}
		genre := b.Genre
		if genre == "" {
			genre = "Uncategorized"
		}
		stats.Genres[genre]++
	}
	stats.Readers.Total = len(g.readers)
	for _, r := range g.readers {
		if r.Active() {
			stats.Readers.Active++
		}
	}
	stats.Issues.Total = len(g.issues)
	for _, i := range g.issues {
		switch i.Status {
		case entities.IssueStatusIssued:
			stats.Issues.Current++
		case entities.IssueStatusOverdue:
			stats.Issues.Overdue++
		case entities.IssueStatusReturned:
			stats.Issues.Returned++
		}
	}
	return stats, nil
}

// spyNotifier records notifications.
type spyNotifier struct {
	levels   []Level
	messages []string
}

func (n *spyNotifier) Notify(level Level, message string) {
	n.levels = append(n.levels, level)
	n.messages = append(n.messages, message)
}

func (n *spyNotifier) last() (Level, string) {
	if len(n.levels) == 0 {
		return "", ""
	}
	return n.levels[len(n.levels)-1], n.messages[len(n.messages)-1]
}

// scriptedConfirmer answers every prompt with a fixed result and records
// the prompts it saw.
type scriptedConfirmer struct {
	answer  bool
	prompts []string
}

func (c *scriptedConfirmer) Confirm(prompt string) bool {
	c.prompts = append(c.prompts, prompt)
	return c.answer
}

// recordingLoadingSink tracks the loading bracket per kind.
type recordingLoadingSink struct {
	events []string
}

func (s *recordingLoadingSink) SetLoading(kind entities.Kind, loading bool) {
	s.events = append(s.events, fmt.Sprintf("%s=%t", kind, loading))
}

func setup(t *testing.T) (*fakeGateway, *Controller, *spyNotifier, *scriptedConfirmer, *store.Store) {
	t.Helper()

	gateway := newFakeGateway()
	gateway.books = []entities.Book{
		{ID: 1, Name: "Dune", Author: "Herbert", Genre: "Sci-Fi", Count: 3, Status: entities.BookStatusAvailable},
		{ID: 2, Name: "Moby Dick", Author: "Melville", Genre: "Classic", Count: 1, Status: entities.BookStatusAvailable},
	}
	gateway.readers = []entities.Reader{
		{ID: 10, FullName: "Ada Lovelace", Status: entities.ReaderStatusActive},
		{ID: 11, FullName: "Charles Babbage", Status: entities.ReaderStatusInactive},
	}

	st := store.New()
	notifier := &spyNotifier{}
	confirm := &scriptedConfirmer{answer: true}
	ctrl := New(gateway, st, notifier, confirm, nil)

	require.NoError(t, ctrl.ReloadAll(context.Background()))
	return gateway, ctrl, notifier, confirm, st
}

func TestSaveBook_Create(t *testing.T) {
	gateway, ctrl, notifier, _, st := setup(t)

	ctrl.OpenForCreate(entities.KindBooks)
	err := ctrl.SaveBook(context.Background(), BookForm{
		Name:   "Solaris",
		Author: "Lem",
		Genre:  "Sci-Fi",
		Count:  "2",
	})
	require.NoError(t, err)

	assert.Equal(t, 1, gateway.callCount("CreateBook"))
	assert.Equal(t, 0, gateway.callCount("UpdateBook"))
	assert.Len(t, st.Books(), 3)
	assert.False(t, ctrl.FormOpen())

	level, _ := notifier.last()
	assert.Equal(t, LevelSuccess, level)
}

func TestSaveBook_UpdateWhenEditTargetBound(t *testing.T) {
	gateway, ctrl, _, _, st := setup(t)

	bound, err := ctrl.OpenForEdit(context.Background(), entities.KindBooks, 1)
	require.NoError(t, err)
	assert.Equal(t, "Dune", bound.Book.Name)
	assert.True(t, bound.ShowDelete)

	form := bound.Book
	form.Count = "7"
	require.NoError(t, ctrl.SaveBook(context.Background(), form))

	assert.Equal(t, 1, gateway.callCount("UpdateBook"))
	assert.Equal(t, 0, gateway.callCount("CreateBook"))

	book, ok := st.Book(1)
	require.True(t, ok)
	assert.Equal(t, 7, book.Count)
}

func TestSaveBook_ValidationNeverReachesNetwork(t *testing.T) {
	tests := []struct {
		name string
		form BookForm
	}{
		{name: "missing name", form: BookForm{Author: "Herbert", Count: "1"}},
		{name: "missing author", form: BookForm{Name: "Dune", Count: "1"}},
		{name: "non-numeric count", form: BookForm{Name: "Dune", Author: "Herbert", Count: "many"}},
		{name: "negative count", form: BookForm{Name: "Dune", Author: "Herbert", Count: "-1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gateway, ctrl, notifier, _, _ := setup(t)
			ctrl.OpenForCreate(entities.KindBooks)

			before := len(gateway.calls)
			err := ctrl.SaveBook(context.Background(), tt.form)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, before, len(gateway.calls), "validation failure must not call the gateway")
			assert.True(t, ctrl.FormOpen(), "form stays open after validation failure")

			level, _ := notifier.last()
			assert.Equal(t, LevelError, level)
		})
	}
}

func TestSaveBook_GatewayFailureLeavesFormOpen(t *testing.T) {
	gateway, ctrl, notifier, _, st := setup(t)
	gateway.failNext["CreateBook"] = &api.TransportError{StatusCode: 500, Message: "boom"}

	ctrl.OpenForCreate(entities.KindBooks)
	err := ctrl.SaveBook(context.Background(), BookForm{Name: "Solaris", Author: "Lem", Count: "2"})

	var terr *api.TransportError
	require.ErrorAs(t, err, &terr)
	assert.True(t, ctrl.FormOpen())
	assert.Len(t, st.Books(), 2, "failed save must not change the snapshot")

	level, _ := notifier.last()
	assert.Equal(t, LevelError, level)
}

func TestSaveReader_RequiresFullName(t *testing.T) {
	gateway, ctrl, _, _, _ := setup(t)
	ctrl.OpenForCreate(entities.KindReaders)

	err := ctrl.SaveReader(context.Background(), ReaderForm{Phone: "555-1234"})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "full_name", verr.Field)
	assert.Equal(t, 0, gateway.callCount("CreateReader"))
}

func TestOpenForEdit_BookFetchesFresh(t *testing.T) {
	gateway, ctrl, _, _, _ := setup(t)

	// Simulate another session changing the book after the initial load.
	gateway.books[0].Count = 42

	bound, err := ctrl.OpenForEdit(context.Background(), entities.KindBooks, 1)
	require.NoError(t, err)
	assert.Equal(t, "42", bound.Book.Count, "book edits must bind the fresh server state")
	assert.Equal(t, 1, gateway.callCount("GetBook"))
}

func TestOpenForEdit_ReaderComesFromCache(t *testing.T) {
	_, ctrl, _, _, _ := setup(t)

	bound, err := ctrl.OpenForEdit(context.Background(), entities.KindReaders, 10)
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", bound.Reader.FullName)

	kind, id, ok := ctrl.EditTarget()
	require.True(t, ok)
	assert.Equal(t, entities.KindReaders, kind)
	assert.Equal(t, 10, id)
}

func TestOpenForEdit_UnknownReader(t *testing.T) {
	_, ctrl, _, _, _ := setup(t)

	_, err := ctrl.OpenForEdit(context.Background(), entities.KindReaders, 999)
	assert.ErrorIs(t, err, api.ErrNotFound)
	assert.False(t, ctrl.FormOpen())
}

func TestOpenForEdit_IssuesRejected(t *testing.T) {
	_, ctrl, _, _, _ := setup(t)

	_, err := ctrl.OpenForEdit(context.Background(), entities.KindIssues, 1)
	assert.Error(t, err)
}

func TestOpenForCreate_ClearsEditTarget(t *testing.T) {
	_, ctrl, _, _, _ := setup(t)

	_, err := ctrl.OpenForEdit(context.Background(), entities.KindBooks, 1)
	require.NoError(t, err)

	view := ctrl.OpenForCreate(entities.KindBooks)
	assert.Zero(t, view.EditID)
	assert.False(t, view.ShowDelete)

	_, _, bound := ctrl.EditTarget()
	assert.False(t, bound)
}

func TestDelete_DeclinedConfirmationAborts(t *testing.T) {
	gateway, ctrl, _, confirm, st := setup(t)
	confirm.answer = false

	require.NoError(t, ctrl.Delete(context.Background(), entities.KindBooks, 1))

	assert.Equal(t, 0, gateway.callCount("DeleteBook"), "declined confirmation must not call the gateway")
	assert.Len(t, confirm.prompts, 1)
	assert.Len(t, st.Books(), 2)
}

func TestDelete_ConfirmedRemovesAndReloads(t *testing.T) {
	gateway, ctrl, notifier, _, st := setup(t)

	require.NoError(t, ctrl.Delete(context.Background(), entities.KindBooks, 1))

	assert.Equal(t, 1, gateway.callCount("DeleteBook"))
	assert.Len(t, st.Books(), 1)

	level, _ := notifier.last()
	assert.Equal(t, LevelSuccess, level)
}

func TestDelete_IssuesRejected(t *testing.T) {
	gateway, ctrl, _, _, _ := setup(t)

	err := ctrl.Delete(context.Background(), entities.KindIssues, 1)
	assert.Error(t, err)
	assert.Equal(t, 0, gateway.callCount("ListIssues")-1, "no reload after rejected delete")
}

func TestReload_FailurePreservesSnapshot(t *testing.T) {
	gateway, ctrl, _, _, st := setup(t)
	gateway.failNext["ListBooks"] = &api.TransportError{StatusCode: 503, Message: "unavailable"}

	err := ctrl.Reload(context.Background(), entities.KindBooks)
	require.Error(t, err)

	assert.Len(t, st.Books(), 2, "failed fetch must leave the previous snapshot intact")
}

func TestReload_LoadingBracketReleasesOnFailure(t *testing.T) {
	gateway := newFakeGateway()
	gateway.failNext["ListBooks"] = &api.TransportError{StatusCode: 503, Message: "unavailable"}

	sink := &recordingLoadingSink{}
	ctrl := New(gateway, store.New(), &spyNotifier{}, &scriptedConfirmer{}, sink)

	_ = ctrl.Reload(context.Background(), entities.KindBooks)

	assert.Equal(t, []string{"books=true", "books=false"}, sink.events)
}

func TestReload_MultipleKindsAllResolveBeforeReturn(t *testing.T) {
	gateway, ctrl, _, _, st := setup(t)

	gateway.books = append(gateway.books, entities.Book{ID: 3, Name: "Hyperion", Author: "Simmons", Count: 1, Status: entities.BookStatusAvailable})
	gateway.readers = append(gateway.readers, entities.Reader{ID: 12, FullName: "Grace Hopper", Status: entities.ReaderStatusActive})

	require.NoError(t, ctrl.Reload(context.Background(), entities.KindBooks, entities.KindReaders, entities.KindIssues))

	assert.Len(t, st.Books(), 3)
	assert.Len(t, st.Readers(), 3)
}
