package store_test

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/oggyb/lilita/internal/errors"
	"github.com/oggyb/lilita/internal/model"
	"github.com/oggyb/lilita/internal/store"
	"github.com/oggyb/lilita/internal/store/backend"
)

//
// Test helpers
//

func newStore(t *testing.T, opts store.Options) (*store.Store, *backend.Memory) {
	t.Helper()
	mem := backend.NewMemory()
	opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	return store.New(mem, opts), mem
}

// seedUser persists a minimal registered record through the store API.
func seedUser(t *testing.T, s *store.Store, id int64, name string) {
	t.Helper()
	rec := &model.UserRecord{
		TelegramID: id,
		Name:       name,
		Age:        25,
		Gender:     model.GenderMale,
		Interest:   model.InterestBoth,
		City:       "Paris",
		Bio:        "Hi.",
		Registered: true,
		Coins:      model.DefaultCoins,
		Likes:      []string{},
		LikedBy:    []string{},
		Matches:    []string{},
	}
	require.NoError(t, s.PutUser(context.Background(), rec))
}

//
// Tests
//

func TestLoadEmptyBackend(t *testing.T) {
	s, _ := newStore(t, store.Options{FailOpenReads: true})

	doc, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, doc.Users)
}

func TestPutAndGetUser(t *testing.T) {
	ctx := context.Background()
	s, _ := newStore(t, store.Options{FailOpenReads: true})

	seedUser(t, s, 42, "Alex")

	rec, err := s.GetUser(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, "Alex", rec.Name)
	assert.True(t, rec.Registered)

	_, err = s.GetUser(ctx, 43)
	assert.ErrorIs(t, err, errs.ErrUserNotFound)
}

// TestCapacityInvariant: a save that would exceed the ceiling is refused and
// the previously persisted document stays exactly as it was.
func TestCapacityInvariant(t *testing.T) {
	ctx := context.Background()
	s, mem := newStore(t, store.Options{CharLimit: 400, FailOpenReads: true})

	seedUser(t, s, 1, "Alex")
	before := mem.Content()
	require.NotEmpty(t, before)

	big := &model.UserRecord{TelegramID: 2, Name: "Bob", Age: 30,
		Gender: model.GenderMale, Interest: model.InterestBoth,
		City: "Lyon", Bio: strings.Repeat("x", 500), Registered: true}
	err := s.PutUser(ctx, big)
	require.ErrorIs(t, err, errs.ErrDocTooLarge)

	assert.Equal(t, before, mem.Content())

	// prior record still readable
	rec, err := s.GetUser(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Alex", rec.Name)
}

// TestInitializeIdempotent: a second initialize with users present leaves
// the users map alone and only refreshes meta.
func TestInitializeIdempotent(t *testing.T) {
	ctx := context.Background()
	s, _ := newStore(t, store.Options{FailOpenReads: true})

	require.NoError(t, s.Initialize(ctx, 100))
	seedUser(t, s, 1, "Alex")

	require.NoError(t, s.Initialize(ctx, 200))

	doc, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, doc.Users, 1)
	assert.Equal(t, int64(100), doc.Meta.CreatedBy)
	assert.Equal(t, int64(200), doc.Meta.LastInitBy)
	assert.NotZero(t, doc.Meta.LastInitAt)
}

// TestFailOpenVsStrictReads: the same backend outage reads as an empty store
// under the fail-open policy and as ErrBackendUnavailable under strict reads.
func TestFailOpenVsStrictReads(t *testing.T) {
	ctx := context.Background()

	failOpen, memOpen := newStore(t, store.Options{FailOpenReads: true})
	seedUser(t, failOpen, 1, "Alex")
	memOpen.FailReads = true

	doc, err := failOpen.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, doc.Users)

	strict, memStrict := newStore(t, store.Options{FailOpenReads: false})
	seedUser(t, strict, 1, "Alex")
	memStrict.FailReads = true

	_, err = strict.Load(ctx)
	assert.ErrorIs(t, err, errs.ErrBackendUnavailable)
}

func TestMalformedDocument(t *testing.T) {
	ctx := context.Background()

	s, mem := newStore(t, store.Options{FailOpenReads: true})
	mem.Seed("{not json")

	doc, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, doc.Users)

	strict, memStrict := newStore(t, store.Options{FailOpenReads: false})
	memStrict.Seed("{not json")
	_, err = strict.Load(ctx)
	assert.ErrorIs(t, err, errs.ErrBackendUnavailable)
}

func TestDeleteUser(t *testing.T) {
	ctx := context.Background()
	s, _ := newStore(t, store.Options{FailOpenReads: true})

	seedUser(t, s, 1, "Alex")

	require.NoError(t, s.DeleteUser(ctx, 1))
	_, err := s.GetUser(ctx, 1)
	assert.ErrorIs(t, err, errs.ErrUserNotFound)

	// absent key is not-found, not a write failure
	assert.ErrorIs(t, s.DeleteUser(ctx, 1), errs.ErrUserNotFound)
}

func TestWriteFailureSurfaces(t *testing.T) {
	ctx := context.Background()
	s, mem := newStore(t, store.Options{FailOpenReads: true})
	mem.FailWrites = true

	err := s.PutUser(ctx, &model.UserRecord{TelegramID: 1, Name: "Alex"})
	assert.ErrorIs(t, err, errs.ErrBackendUnavailable)
}
