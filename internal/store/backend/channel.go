// Package backend provides document backends for the store: the Telegram
// channel pinned message used in production, and an in-memory double for
// tests and dry runs.
package backend

import (
	"context"
	"fmt"
	"time"

	"github.com/oggyb/lilita/internal/botapi"
)

// pinDelay gives Telegram a moment between sending a fresh document message
// and pinning it.
const pinDelay = 500 * time.Millisecond

// Channel stores the document as the text of the pinned message in a
// Telegram channel. Fetch reads the pin, Replace edits it in place or, when
// nothing is pinned yet, sends a new message and pins it.
type Channel struct {
	api    botapi.ChannelAPI
	chatID int64
}

// NewChannel creates a channel backend for the given chat.
func NewChannel(api botapi.ChannelAPI, chatID int64) *Channel {
	return &Channel{api: api, chatID: chatID}
}

func (c *Channel) Fetch(ctx context.Context) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	pinned, err := c.api.PinnedMessage(c.chatID)
	if err != nil {
		return "", false, err
	}
	if pinned == nil || pinned.Text == "" {
		return "", false, nil
	}
	return pinned.Text, true, nil
}

func (c *Channel) Replace(ctx context.Context, content string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	pinned, err := c.api.PinnedMessage(c.chatID)
	if err != nil {
		return err
	}

	if pinned != nil {
		return c.api.EditMessageText(c.chatID, pinned.MessageID, content)
	}

	msgID, err := c.api.SendMessage(c.chatID, content)
	if err != nil {
		return err
	}
	time.Sleep(pinDelay)
	if err := c.api.PinMessage(c.chatID, msgID); err != nil {
		return fmt.Errorf("sent document message %d but pin failed: %w", msgID, err)
	}
	return nil
}
