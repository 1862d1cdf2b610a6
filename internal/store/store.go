// Package store holds the in-memory cache of the three catalog collections
// for one client session. It is the single source of truth for rendering and
// filtering: collections are replaced wholesale on reload and never merged
// incrementally.
package store

import (
	"sync"

	"github.com/google/uuid"

	"github.com/mrlokans/libtool/internal/entities"
)

// Store caches the catalog collections loaded from the server. Only the
// lifecycle controller writes to it, via the Replace methods; readers always
// observe either the previous snapshot or the fully swapped new one.
type Store struct {
	mu        sync.RWMutex
	sessionID uuid.UUID

	books   []entities.Book
	readers []entities.Reader
	issues  []entities.Issue
	stats   *entities.Stats
}

// New creates an empty session store.
func New() *Store {
	return &Store{sessionID: uuid.New()}
}

// SessionID identifies this store instance in logs.
func (s *Store) SessionID() uuid.UUID {
	return s.sessionID
}

// ReplaceBooks atomically swaps the book collection.
func (s *Store) ReplaceBooks(books []entities.Book) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.books = books
}

// ReplaceReaders atomically swaps the reader collection.
func (s *Store) ReplaceReaders(readers []entities.Reader) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.readers = readers
}

// ReplaceIssues atomically swaps the checkout collection.
func (s *Store) ReplaceIssues(issues []entities.Issue) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.issues = issues
}

// ReplaceStats swaps the cached statistics report.
func (s *Store) ReplaceStats(stats *entities.Stats) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stats = stats
}

// Books returns a copy of the current book snapshot.
func (s *Store) Books() []entities.Book {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]entities.Book(nil), s.books...)
}

// Readers returns a copy of the current reader snapshot.
func (s *Store) Readers() []entities.Reader {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]entities.Reader(nil), s.readers...)
}

// Issues returns a copy of the current checkout snapshot.
func (s *Store) Issues() []entities.Issue {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]entities.Issue(nil), s.issues...)
}

// Stats returns the cached statistics report, or nil if none was loaded.
func (s *Store) Stats() *entities.Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.stats == nil {
		return nil
	}
	copied := *s.stats
	return &copied
}

// Book looks up a book in the current snapshot by id.
func (s *Store) Book(id int) (entities.Book, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, b := range s.books {
		if b.ID == id {
			return b, true
		}
	}
	return entities.Book{}, false
}

// Reader looks up a reader in the current snapshot by id.
func (s *Store) Reader(id int) (entities.Reader, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.readers {
		if r.ID == id {
			return r, true
		}
	}
	return entities.Reader{}, false
}

// Issue looks up a checkout record in the current snapshot by id.
func (s *Store) Issue(id int) (entities.Issue, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, i := range s.issues {
		if i.ID == id {
			return i, true
		}
	}
	return entities.Issue{}, false
}

// Clear drops all cached collections. Called on navigation away or session
// teardown; the next page visit re-fetches from the server.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.books = nil
	s.readers = nil
	s.issues = nil
	s.stats = nil
}
