// Package keyboard builds the reply and inline keyboards the bot sends.
package keyboard

import tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

// MainMenu is the persistent reply keyboard shown after /start.
func MainMenu() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("/menu"),
			tgbotapi.NewKeyboardButton("/profile"),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("/profiles"),
			tgbotapi.NewKeyboardButton("/buy"),
		),
	)
	kb.ResizeKeyboard = true
	return kb
}

// InlineMainMenu is the /menu inline panel.
func InlineMainMenu() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("👤 Profile", "menu_profile"),
			tgbotapi.NewInlineKeyboardButtonData("👀 Browse", "menu_browse"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("💎 VIP", "menu_vip"),
			tgbotapi.NewInlineKeyboardButtonData("🛠️ Admin", "menu_admin"),
		),
	)
}

// ProfileButtons are the actions under a candidate card. VIP users get real
// like/skip verbs carrying the target ID; everyone else gets the cosmetic
// preview verbs plus an upgrade button.
func ProfileButtons(targetID int64, vip bool) tgbotapi.InlineKeyboardMarkup {
	if vip {
		return tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("❤️ Like", likeData(targetID)),
				tgbotapi.NewInlineKeyboardButtonData("❌ Skip", skipData(targetID)),
			),
		)
	}
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("❤️ Like (Preview)", "fake_like"),
			tgbotapi.NewInlineKeyboardButtonData("➡ Next", "fake_next"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🌟 Buy VIP", "buy_vip"),
		),
	)
}

// AdminPanel lists the admin quick actions.
func AdminPanel() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Broadcast", "admin_broadcast"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Grant VIP (by id)", "admin_grant_vip"),
		),
	)
}
