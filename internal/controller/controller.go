// Package controller orchestrates the entity lifecycle: the generic
// open/fill/validate/save/delete pipeline shared by books, readers and
// checkouts, and the checkout state machine with its cross-entity side
// effects. Presentation concerns (notifications, confirmation prompts,
// loading indicators) are collaborator interfaces so the pipeline runs
// without a UI.
package controller

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/mrlokans/libtool/internal/api"
	"github.com/mrlokans/libtool/internal/entities"
	"github.com/mrlokans/libtool/internal/store"
)

// Gateway is the remote data boundary consumed by the controller. It is
// satisfied by *api.Client.
type Gateway interface {
	ListBooks(ctx context.Context) ([]entities.Book, error)
	GetBook(ctx context.Context, id int) (*entities.Book, error)
	CreateBook(ctx context.Context, payload api.BookPayload) (*entities.Book, error)
	UpdateBook(ctx context.Context, id int, payload api.BookPayload) (*entities.Book, error)
	DeleteBook(ctx context.Context, id int) error

	ListReaders(ctx context.Context) ([]entities.Reader, error)
	CreateReader(ctx context.Context, payload api.ReaderPayload) (*entities.Reader, error)
	UpdateReader(ctx context.Context, id int, payload api.ReaderPayload) (*entities.Reader, error)
	DeleteReader(ctx context.Context, id int) error

	ListIssues(ctx context.Context) ([]entities.Issue, error)
	CreateIssue(ctx context.Context, payload api.IssuePayload) (*entities.Issue, error)
	ReturnIssue(ctx context.Context, id int) error
	MarkOverdue(ctx context.Context, id int) error

	Stats(ctx context.Context) (*entities.Stats, error)
}

// Level classifies a notification for the presentation layer.
type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Notifier receives user-visible notifications.
type Notifier interface {
	Notify(level Level, message string)
}

// Confirmer gates destructive operations behind an explicit confirmation
// step: the controller requests confirmation with a prompt and proceeds only
// on a true result.
type Confirmer interface {
	Confirm(prompt string) bool
}

// LoadingSink is told when a collection starts and finishes loading so the
// presentation layer can show a busy indicator. The finish call is delivered
// even when the load fails.
type LoadingSink interface {
	SetLoading(kind entities.Kind, loading bool)
}

// NopLoadingSink discards loading notifications.
type NopLoadingSink struct{}

func (NopLoadingSink) SetLoading(entities.Kind, bool) {}

// entityOps bundles the four lifecycle handlers for one entity kind. The
// controller dispatches through this table keyed by the Kind enumeration;
// a nil handler means the operation is not supported for that kind.
type entityOps struct {
	load   func(ctx context.Context) error
	create func(ctx context.Context, payload any) error
	update func(ctx context.Context, id int, payload any) error
	remove func(ctx context.Context, id int) error
}

// FormView is the bound form state handed to the presentation layer when a
// modal opens. EditID is zero when creating; ShowDelete mirrors whether the
// delete affordance applies.
type FormView struct {
	Kind       entities.Kind
	EditID     int
	ShowDelete bool

	Book   BookForm
	Reader ReaderForm
	Issue  IssueForm
}

// Controller drives CRUD and checkout transitions against the gateway,
// keeping the session store as the only rendered state.
type Controller struct {
	gateway  Gateway
	store    *store.Store
	notifier Notifier
	confirm  Confirmer
	loading  LoadingSink

	ops map[entities.Kind]entityOps

	// Current form binding. Zero editID means the open form creates a new
	// entity; formOpen is cleared only by a successful save or an explicit
	// re-open.
	formKind entities.Kind
	editID   int
	formOpen bool
}

// New wires a controller. A nil loading sink is replaced with a no-op.
func New(gateway Gateway, st *store.Store, notifier Notifier, confirm Confirmer, loading LoadingSink) *Controller {
	if loading == nil {
		loading = NopLoadingSink{}
	}

	c := &Controller{
		gateway:  gateway,
		store:    st,
		notifier: notifier,
		confirm:  confirm,
		loading:  loading,
	}

	c.ops = map[entities.Kind]entityOps{
		entities.KindBooks: {
			load: func(ctx context.Context) error {
				books, err := gateway.ListBooks(ctx)
				if err != nil {
					return err
				}
				st.ReplaceBooks(books)
				return nil
			},
			create: func(ctx context.Context, payload any) error {
				_, err := gateway.CreateBook(ctx, payload.(api.BookPayload))
				return err
			},
			update: func(ctx context.Context, id int, payload any) error {
				_, err := gateway.UpdateBook(ctx, id, payload.(api.BookPayload))
				return err
			},
			remove: gateway.DeleteBook,
		},
		entities.KindReaders: {
			load: func(ctx context.Context) error {
				readers, err := gateway.ListReaders(ctx)
				if err != nil {
					return err
				}
				st.ReplaceReaders(readers)
				return nil
			},
			create: func(ctx context.Context, payload any) error {
				_, err := gateway.CreateReader(ctx, payload.(api.ReaderPayload))
				return err
			},
			update: func(ctx context.Context, id int, payload any) error {
				_, err := gateway.UpdateReader(ctx, id, payload.(api.ReaderPayload))
				return err
			},
			remove: gateway.DeleteReader,
		},
		entities.KindIssues: {
			load: func(ctx context.Context) error {
				issues, err := gateway.ListIssues(ctx)
				if err != nil {
					return err
				}
				st.ReplaceIssues(issues)
				return nil
			},
			create: func(ctx context.Context, payload any) error {
				_, err := gateway.CreateIssue(ctx, payload.(api.IssuePayload))
				return err
			},
			// Checkout records are immutable once created; only the state
			// machine transitions touch them.
		},
	}

	return c
}

// Store exposes the session store for rendering and filtering.
func (c *Controller) Store() *store.Store {
	return c.store
}

// FormOpen reports whether a form is currently bound.
func (c *Controller) FormOpen() bool {
	return c.formOpen
}

// EditTarget returns the entity currently bound for editing, if any.
func (c *Controller) EditTarget() (entities.Kind, int, bool) {
	if !c.formOpen || c.editID == 0 {
		return 0, 0, false
	}
	return c.formKind, c.editID, true
}

// OpenForCreate opens a blank form for the kind: no edit target, delete
// affordance hidden.
func (c *Controller) OpenForCreate(kind entities.Kind) FormView {
	c.formKind = kind
	c.editID = 0
	c.formOpen = true

	return FormView{Kind: kind}
}

// OpenForEdit loads the target entity, binds its fields into the form and
// records it as the edit target. Books are re-fetched from the server to
// guarantee freshness; readers come from the cache snapshot. Checkout
// records are never edited.
func (c *Controller) OpenForEdit(ctx context.Context, kind entities.Kind, id int) (FormView, error) {
	view := FormView{Kind: kind, EditID: id, ShowDelete: true}

	switch kind {
	case entities.KindBooks:
		book, err := c.gateway.GetBook(ctx, id)
		if err != nil {
			c.notifier.Notify(LevelError, fmt.Sprintf("Failed to load book: %v", err))
			return FormView{}, err
		}
		view.Book = BookForm{
			Name:   book.Name,
			Author: book.Author,
			Genre:  book.Genre,
			Count:  fmt.Sprintf("%d", book.Count),
		}

	case entities.KindReaders:
		reader, ok := c.store.Reader(id)
		if !ok {
			err := fmt.Errorf("reader %d: %w", id, api.ErrNotFound)
			c.notifier.Notify(LevelError, "Reader not found")
			return FormView{}, err
		}
		view.Reader = ReaderForm{
			FullName: reader.FullName,
			Phone:    reader.Phone,
			Email:    reader.Email,
			Address:  reader.Address,
			Status:   string(reader.Status),
		}

	default:
		return FormView{}, fmt.Errorf("%s cannot be edited", kind)
	}

	c.formKind = kind
	c.editID = id
	c.formOpen = true

	return view, nil
}

// CloseForm discards the current form binding without saving.
func (c *Controller) CloseForm() {
	c.formOpen = false
	c.editID = 0
}

// SaveBook validates the book form and creates or updates the entity,
// depending on whether an edit target is bound. Validation failures never
// reach the network; gateway failures leave the form open and the store
// untouched.
func (c *Controller) SaveBook(ctx context.Context, form BookForm) error {
	payload, err := form.Validate()
	if err != nil {
		c.notifier.Notify(LevelError, err.Error())
		return err
	}
	return c.save(ctx, entities.KindBooks, payload)
}

// SaveReader validates the reader form and creates or updates the entity.
func (c *Controller) SaveReader(ctx context.Context, form ReaderForm) error {
	payload, err := form.Validate()
	if err != nil {
		c.notifier.Notify(LevelError, err.Error())
		return err
	}
	return c.save(ctx, entities.KindReaders, payload)
}

// save runs the shared tail of the save pipeline: dispatch create or update
// through the operations table, close the form, reload the collection and
// notify.
func (c *Controller) save(ctx context.Context, kind entities.Kind, payload any) error {
	ops := c.ops[kind]

	var err error
	updating := c.formOpen && c.formKind == kind && c.editID != 0
	if updating {
		err = ops.update(ctx, c.editID, payload)
	} else {
		err = ops.create(ctx, payload)
	}
	if err != nil {
		log.Error().Err(err).Stringer("kind", kind).Msg("save failed")
		c.notifier.Notify(LevelError, fmt.Sprintf("Failed to save: %v", err))
		return err
	}

	c.CloseForm()
	if err := c.Reload(ctx, kind); err != nil {
		return err
	}

	if updating {
		c.notifier.Notify(LevelSuccess, "Record updated")
	} else {
		c.notifier.Notify(LevelSuccess, "Record added")
	}
	return nil
}

// Delete removes an entity after an explicit confirmation. A declined
// confirmation aborts before any network call; on success the collection is
// reloaded.
func (c *Controller) Delete(ctx context.Context, kind entities.Kind, id int) error {
	ops := c.ops[kind]
	if ops.remove == nil {
		return fmt.Errorf("%s cannot be deleted", kind)
	}

	if !c.confirm.Confirm(fmt.Sprintf("Delete this %s record?", kind)) {
		return nil
	}

	if err := ops.remove(ctx, id); err != nil {
		log.Error().Err(err).Stringer("kind", kind).Int("id", id).Msg("delete failed")
		c.notifier.Notify(LevelError, fmt.Sprintf("Failed to delete: %v", err))
		return err
	}

	c.CloseForm()
	if err := c.Reload(ctx, kind); err != nil {
		return err
	}

	c.notifier.Notify(LevelSuccess, "Record deleted")
	return nil
}

// Reload fetches the named collections and swaps them into the store. The
// fetches run concurrently and Reload returns only when all have resolved,
// so rendering never observes a half-updated set of collections. Each kind
// is bracketed by loading notifications that release even on failure; a
// failed fetch leaves that collection's previous snapshot in place.
func (c *Controller) Reload(ctx context.Context, kinds ...entities.Kind) error {
	var wg sync.WaitGroup
	errs := make([]error, len(kinds))

	for i, kind := range kinds {
		wg.Add(1)
		c.loading.SetLoading(kind, true)

		go func(i int, kind entities.Kind) {
			defer wg.Done()
			defer c.loading.SetLoading(kind, false)

			if err := c.ops[kind].load(ctx); err != nil {
				log.Warn().Err(err).Stringer("kind", kind).Msg("reload failed")
				errs[i] = fmt.Errorf("reload %s: %w", kind, err)
			}
		}(i, kind)
	}
	wg.Wait()

	if err := errors.Join(errs...); err != nil {
		c.notifier.Notify(LevelError, fmt.Sprintf("Failed to load data: %v", err))
		return err
	}
	return nil
}

// LoadStats refreshes the cached statistics report.
func (c *Controller) LoadStats(ctx context.Context) error {
	stats, err := c.gateway.Stats(ctx)
	if err != nil {
		c.notifier.Notify(LevelError, fmt.Sprintf("Failed to load reports: %v", err))
		return err
	}
	c.store.ReplaceStats(stats)
	return nil
}

// ReloadAll refreshes every collection plus the statistics report.
func (c *Controller) ReloadAll(ctx context.Context) error {
	if err := c.Reload(ctx, entities.Kinds...); err != nil {
		return err
	}
	return c.LoadStats(ctx)
}
