package botapi

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Client adapts *tgbotapi.BotAPI to the ChannelAPI and Notifier seams.
type Client struct {
	bot *tgbotapi.BotAPI
}

// NewClient wraps an authorized Telegram bot client.
func NewClient(bot *tgbotapi.BotAPI) *Client {
	return &Client{bot: bot}
}

func (c *Client) PinnedMessage(chatID int64) (*PinnedMessage, error) {
	chat, err := c.bot.GetChat(tgbotapi.ChatInfoConfig{
		ChatConfig: tgbotapi.ChatConfig{ChatID: chatID},
	})
	if err != nil {
		return nil, fmt.Errorf("get chat %d: %w", chatID, err)
	}
	if chat.PinnedMessage == nil {
		return nil, nil
	}
	return &PinnedMessage{
		MessageID: chat.PinnedMessage.MessageID,
		Text:      chat.PinnedMessage.Text,
	}, nil
}

func (c *Client) EditMessageText(chatID int64, messageID int, text string) error {
	if _, err := c.bot.Send(tgbotapi.NewEditMessageText(chatID, messageID, text)); err != nil {
		return fmt.Errorf("edit message %d in %d: %w", messageID, chatID, err)
	}
	return nil
}

func (c *Client) SendMessage(chatID int64, text string) (int, error) {
	msg, err := c.bot.Send(tgbotapi.NewMessage(chatID, text))
	if err != nil {
		return 0, fmt.Errorf("send message to %d: %w", chatID, err)
	}
	return msg.MessageID, nil
}

func (c *Client) PinMessage(chatID int64, messageID int) error {
	pin := tgbotapi.PinChatMessageConfig{
		ChatID:              chatID,
		MessageID:           messageID,
		DisableNotification: true,
	}
	if _, err := c.bot.Request(pin); err != nil {
		return fmt.Errorf("pin message %d in %d: %w", messageID, chatID, err)
	}
	return nil
}

func (c *Client) SendText(userID int64, text string) error {
	_, err := c.bot.Send(tgbotapi.NewMessage(userID, text))
	return err
}

func (c *Client) SendPhoto(userID int64, photoRef, caption string) error {
	var file tgbotapi.RequestFileData
	if IsURL(photoRef) {
		file = tgbotapi.FileURL(photoRef)
	} else {
		file = tgbotapi.FileID(photoRef)
	}
	photo := tgbotapi.NewPhoto(userID, file)
	photo.Caption = caption
	_, err := c.bot.Send(photo)
	return err
}
