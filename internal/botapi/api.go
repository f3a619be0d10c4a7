// Package botapi narrows the Telegram SDK down to the two seams the core
// needs: the channel operations backing the pinned-message store, and
// message delivery to end users. Services depend on these interfaces so
// tests can fake the platform.
package botapi

import "strings"

// PinnedMessage is the channel's current pinned message, as much of it as
// the store cares about.
type PinnedMessage struct {
	MessageID int
	Text      string
}

// ChannelAPI is the slice of the Telegram API used by the channel document
// backend.
type ChannelAPI interface {
	// PinnedMessage returns the pinned message of the chat, or nil when
	// nothing is pinned.
	PinnedMessage(chatID int64) (*PinnedMessage, error)

	// EditMessageText rewrites an existing message in place.
	EditMessageText(chatID int64, messageID int, text string) error

	// SendMessage posts a new message and returns its ID.
	SendMessage(chatID int64, text string) (int, error)

	// PinMessage pins a message without notifying channel members.
	PinMessage(chatID int64, messageID int) error
}

// Notifier delivers messages to individual users. Delivery failures are
// expected (blocked bot, deleted account) and must be tolerated by callers.
type Notifier interface {
	SendText(userID int64, text string) error
	SendPhoto(userID int64, photoRef, caption string) error
}

// IsURL distinguishes a decoy photo URL from a Telegram file_id reference.
func IsURL(ref string) bool {
	return strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://")
}
