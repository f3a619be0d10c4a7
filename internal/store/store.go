// Package store implements the single-document record store: the whole
// dataset lives in one JSON blob behind a Backend, re-read and rewritten on
// every mutation.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	errs "github.com/oggyb/lilita/internal/errors"
	"github.com/oggyb/lilita/internal/model"
)

// Backend is the raw document transport: fetch the current serialized
// document, or replace it wholesale.
type Backend interface {
	// Fetch returns the current document text. ok is false when no document
	// exists yet (which is not an error).
	Fetch(ctx context.Context) (content string, ok bool, err error)

	// Replace creates or overwrites the document.
	Replace(ctx context.Context, content string) error
}

// Options configures a Store.
type Options struct {
	// CharLimit is the serialized-size ceiling. Zero means the default 3800.
	CharLimit int

	// FailOpenReads makes Load treat any fetch or parse failure as an empty
	// store. When false, read failures surface as ErrBackendUnavailable.
	FailOpenReads bool

	Logger *slog.Logger
}

// Store provides per-user operations over the single document. Every
// operation is a full load-mutate-save cycle; a mutex serializes them so
// concurrent callers within this process cannot lose updates. Two processes
// sharing one channel can still race — the backend offers no compare-and-swap.
type Store struct {
	mu        sync.Mutex
	backend   Backend
	charLimit int
	failOpen  bool
	log       *slog.Logger
	now       func() time.Time
}

// New creates a Store over the given backend.
func New(backend Backend, opts Options) *Store {
	limit := opts.CharLimit
	if limit <= 0 {
		limit = 3800
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Store{
		backend:   backend,
		charLimit: limit,
		failOpen:  opts.FailOpenReads,
		log:       log,
		now:       time.Now,
	}
}

// Load fetches and parses the current document.
//
// Behavior:
//   - No document yet → fresh empty document.
//   - Fetch or parse failure with fail-open reads → fresh empty document
//     (logged; a transient outage looks identical to "no users yet").
//   - Fetch or parse failure with strict reads → ErrBackendUnavailable.
func (s *Store) Load(ctx context.Context) (*model.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

// Save serializes and persists the document.
//
// Behavior:
//   - Serialized form over the ceiling → ErrDocTooLarge, backend untouched,
//     previously persisted state unchanged.
//   - Backend write failure → ErrBackendUnavailable.
func (s *Store) Save(ctx context.Context, doc *model.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(ctx, doc)
}

// GetUser returns the record for the given ID, or ErrUserNotFound.
func (s *Store) GetUser(ctx context.Context, id int64) (*model.UserRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	rec, ok := doc.User(id)
	if !ok {
		return nil, errs.ErrUserNotFound
	}
	return rec, nil
}

// PutUser inserts or replaces one record via a full read-modify-write.
func (s *Store) PutUser(ctx context.Context, rec *model.UserRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load(ctx)
	if err != nil {
		return err
	}
	doc.SetUser(rec)
	return s.save(ctx, doc)
}

// DeleteUser removes a record entirely. Returns ErrUserNotFound when the key
// is absent, so callers can tell "nothing to do" from a failed write.
func (s *Store) DeleteUser(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load(ctx)
	if err != nil {
		return err
	}
	if !doc.RemoveUser(id) {
		return errs.ErrUserNotFound
	}
	return s.save(ctx, doc)
}

// Initialize creates the empty document shape, or refreshes meta when users
// already exist. Idempotent: never wipes a non-empty users map.
func (s *Store) Initialize(ctx context.Context, actorID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load(ctx)
	if err != nil {
		return err
	}

	ts := s.now().Unix()
	if len(doc.Users) > 0 {
		doc.Meta.LastInitBy = actorID
		doc.Meta.LastInitAt = ts
	} else {
		doc = model.NewDocument()
		doc.Meta.CreatedBy = actorID
		doc.Meta.CreatedAt = ts
	}
	return s.save(ctx, doc)
}

// --- unexported, called with s.mu held ---

func (s *Store) load(ctx context.Context) (*model.Document, error) {
	content, ok, err := s.backend.Fetch(ctx)
	if err != nil {
		if !s.failOpen {
			return nil, fmt.Errorf("%w: %w", errs.ErrBackendUnavailable, err)
		}
		s.log.Warn("document fetch failed, treating store as empty", "err", err)
		return model.NewDocument(), nil
	}
	if !ok {
		return model.NewDocument(), nil
	}

	doc := model.NewDocument()
	if err := json.Unmarshal([]byte(content), doc); err != nil {
		if !s.failOpen {
			return nil, fmt.Errorf("%w: parse pinned document: %w", errs.ErrBackendUnavailable, err)
		}
		s.log.Warn("pinned document does not parse, treating store as empty", "err", err)
		return model.NewDocument(), nil
	}
	if doc.Users == nil {
		doc.Users = map[string]*model.UserRecord{}
	}
	return doc, nil
}

func (s *Store) save(ctx context.Context, doc *model.Document) error {
	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}
	if len(b) > s.charLimit {
		s.log.Error("document over size ceiling, refusing save", "size", len(b), "limit", s.charLimit)
		return fmt.Errorf("%w: %d > %d", errs.ErrDocTooLarge, len(b), s.charLimit)
	}
	if err := s.backend.Replace(ctx, string(b)); err != nil {
		return fmt.Errorf("%w: %w", errs.ErrBackendUnavailable, err)
	}
	return nil
}
