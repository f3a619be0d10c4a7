package backend_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oggyb/lilita/internal/botapi"
	"github.com/oggyb/lilita/internal/store/backend"
)

// fakeChannel fakes the Telegram channel surface backing the store.
type fakeChannel struct {
	pinned   *botapi.PinnedMessage
	nextID   int
	edits    int
	sends    int
	pins     int
	chatErr  error
	editText string
}

func (f *fakeChannel) PinnedMessage(chatID int64) (*botapi.PinnedMessage, error) {
	if f.chatErr != nil {
		return nil, f.chatErr
	}
	return f.pinned, nil
}

func (f *fakeChannel) EditMessageText(chatID int64, messageID int, text string) error {
	f.edits++
	f.editText = text
	f.pinned.Text = text
	return nil
}

func (f *fakeChannel) SendMessage(chatID int64, text string) (int, error) {
	f.sends++
	f.nextID++
	return f.nextID, nil
}

func (f *fakeChannel) PinMessage(chatID int64, messageID int) error {
	f.pins++
	f.pinned = &botapi.PinnedMessage{MessageID: messageID}
	return nil
}

func TestFetchNoPin(t *testing.T) {
	ch := backend.NewChannel(&fakeChannel{}, -100)
	_, ok, err := ch.Fetch(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFetchPinned(t *testing.T) {
	fake := &fakeChannel{pinned: &botapi.PinnedMessage{MessageID: 7, Text: `{"users":{},"meta":{}}`}}
	ch := backend.NewChannel(fake, -100)

	content, ok, err := ch.Fetch(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)
	assert.JSONEq(t, `{"users":{},"meta":{}}`, content)
}

func TestFetchTransportError(t *testing.T) {
	fake := &fakeChannel{chatErr: errors.New("telegram down")}
	ch := backend.NewChannel(fake, -100)

	_, _, err := ch.Fetch(context.Background())
	assert.Error(t, err)
}

// Replace edits the existing pin in place; it only sends and pins a new
// message when nothing is pinned yet.
func TestReplaceEditsExistingPin(t *testing.T) {
	fake := &fakeChannel{pinned: &botapi.PinnedMessage{MessageID: 7, Text: "old"}}
	ch := backend.NewChannel(fake, -100)

	require.NoError(t, ch.Replace(context.Background(), "new"))
	assert.Equal(t, 1, fake.edits)
	assert.Zero(t, fake.sends)
	assert.Equal(t, "new", fake.editText)
}

func TestReplaceCreatesAndPins(t *testing.T) {
	fake := &fakeChannel{}
	ch := backend.NewChannel(fake, -100)

	require.NoError(t, ch.Replace(context.Background(), "doc"))
	assert.Equal(t, 1, fake.sends)
	assert.Equal(t, 1, fake.pins)
	require.NotNil(t, fake.pinned)
}
