// Package bot dispatches Telegram updates to the core services: commands,
// registration inputs (photos and free text), and inline callback queries.
package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/oggyb/lilita/internal/bot/keyboard"
	"github.com/oggyb/lilita/internal/botapi"
	errs "github.com/oggyb/lilita/internal/errors"
	"github.com/oggyb/lilita/internal/service/admin"
	"github.com/oggyb/lilita/internal/service/browse"
	"github.com/oggyb/lilita/internal/service/registration"
)

// updateTimeout bounds the handling of one inbound update, store calls
// included.
const updateTimeout = 30 * time.Second

// Handler routes inbound updates. Updates are handled to completion one at
// a time; the services underneath are safe either way.
type Handler struct {
	bot    *tgbotapi.BotAPI
	reg    *registration.Service
	browse *browse.Service
	admin  *admin.Service
	log    *slog.Logger
}

// New wires the dispatcher.
func New(bot *tgbotapi.BotAPI, reg *registration.Service, br *browse.Service, adm *admin.Service, log *slog.Logger) *Handler {
	return &Handler{bot: bot, reg: reg, browse: br, admin: adm, log: log}
}

// Run long-polls updates until ctx is canceled.
func (h *Handler) Run(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := h.bot.GetUpdatesChan(u)
	for {
		select {
		case <-ctx.Done():
			h.bot.StopReceivingUpdates()
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			h.HandleUpdate(ctx, update)
		}
	}
}

// HandleUpdate dispatches a single update.
func (h *Handler) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	ctx, cancel := context.WithTimeout(ctx, updateTimeout)
	defer cancel()

	switch {
	case update.Message != nil:
		h.handleMessage(ctx, update.Message)
	case update.CallbackQuery != nil:
		h.handleCallback(ctx, update.CallbackQuery)
	}
}

func (h *Handler) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.From == nil {
		return
	}

	switch {
	case msg.IsCommand():
		h.handleCommand(ctx, msg)
	case len(msg.Photo) > 0:
		h.handlePhoto(ctx, msg)
	case msg.Text != "":
		h.handleText(ctx, msg)
	}
}

func (h *Handler) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	uid := msg.From.ID

	switch msg.Command() {
	case "start":
		h.cmdStart(ctx, msg)
	case "menu":
		h.cmdMenu(ctx, msg)
	case "profile":
		h.cmdProfile(ctx, uid)
	case "profiles":
		h.reply(uid, "Use /menu -> Browse (recommended).")
	case "buy":
		h.reply(uid, "VIP unlocks real profiles, likes and matches. Contact an admin to upgrade.")
	case "likes_you":
		h.cmdNameList(ctx, uid, "Liked you", h.browse.LikedBy)
	case "matches":
		h.cmdNameList(ctx, uid, "Your matches", h.browse.Matches)
	case "cancel":
		if h.reg.Cancel(uid) {
			h.reply(uid, "Registration canceled. /start to begin again.")
		} else {
			h.reply(uid, "Nothing to cancel.")
		}
	case "help":
		h.reply(uid, "Commands:\n/start\n/menu\n/profile\n/profiles\n/buy\n/likes_you\n/matches\n/cancel\n/help\nAdmins: /init_db /grant_vip /revoke_vip /broadcast /delete_user")
	case "init_db":
		h.cmdInitDB(ctx, uid)
	case "grant_vip":
		h.cmdSetVIP(ctx, msg, true)
	case "revoke_vip":
		h.cmdSetVIP(ctx, msg, false)
	case "broadcast":
		h.cmdBroadcast(ctx, msg)
	case "delete_user":
		h.cmdDeleteUser(ctx, msg)
	default:
		h.reply(uid, "Unknown command. Try /help.")
	}
}

func (h *Handler) cmdStart(ctx context.Context, msg *tgbotapi.Message) {
	uid := msg.From.ID

	step, err := h.reg.Begin(ctx, uid)
	if errors.Is(err, errs.ErrAlreadyRegistered) {
		rec, recErr := h.browse.Profile(ctx, uid)
		name := msg.From.FirstName
		if recErr == nil && rec.Name != "" {
			name = rec.Name
		}
		h.replyKb(uid, fmt.Sprintf("Welcome back, %s!\nUse /menu to browse.", name), keyboard.MainMenu())
		return
	}
	if err != nil {
		h.reply(uid, errs.UserMessage(err))
		return
	}
	h.replyKb(uid, "Welcome! "+registration.Prompt(step), keyboard.MainMenu())
}

func (h *Handler) handlePhoto(ctx context.Context, msg *tgbotapi.Message) {
	uid := msg.From.ID
	// Telegram sends several sizes, the last is the biggest
	fileID := msg.Photo[len(msg.Photo)-1].FileID

	res, err := h.reg.SubmitPhoto(ctx, uid, fileID)
	if err != nil {
		h.reply(uid, errs.UserMessage(err))
		return
	}
	switch res {
	case registration.PhotoAccepted:
		h.reply(uid, registration.Prompt(registration.StepName))
	case registration.PhotoUpdated:
		h.reply(uid, "Profile photo updated.")
	}
}

func (h *Handler) handleText(ctx context.Context, msg *tgbotapi.Message) {
	uid := msg.From.ID

	next, done, err := h.reg.SubmitText(ctx, uid, msg.Text)
	if errors.Is(err, errs.ErrNoSession) {
		h.replyKb(uid, "Use the menu or /start to register.", keyboard.MainMenu())
		return
	}
	if err != nil {
		h.reply(uid, errs.UserMessage(err))
		return
	}
	if done {
		h.replyKb(uid, "Registration complete! Use /menu to browse.", keyboard.MainMenu())
		return
	}
	h.reply(uid, registration.Prompt(next))
}

func (h *Handler) cmdMenu(ctx context.Context, msg *tgbotapi.Message) {
	uid := msg.From.ID
	rec, err := h.browse.Profile(ctx, uid)
	if err != nil || !rec.Registered {
		if step, ok := h.reg.StepOf(uid); ok {
			h.reply(uid, registration.Prompt(step))
			return
		}
		h.reply(uid, "Register first with /start.")
		return
	}
	h.replyKb(uid, "Main Menu", keyboard.InlineMainMenu())
}

func (h *Handler) cmdProfile(ctx context.Context, uid int64) {
	rec, err := h.browse.Profile(ctx, uid)
	if err != nil {
		h.reply(uid, "No profile found. /start to register.")
		return
	}
	caption := fmt.Sprintf("Name: %s\nAge: %d\nGender: %s\nCity: %s\nBio: %s\nVIP: %t\nCoins: %d",
		rec.Name, rec.Age, rec.Gender, rec.City, rec.Bio, rec.VIP, rec.Coins)
	h.sendPhotoOrText(uid, rec.PhotoFileID, caption, nil)
}

func (h *Handler) cmdNameList(ctx context.Context, uid int64, title string, list func(context.Context, int64) ([]string, error)) {
	names, err := list(ctx, uid)
	if err != nil {
		h.reply(uid, errs.UserMessage(err))
		return
	}
	if len(names) == 0 {
		h.reply(uid, title+": nobody yet.")
		return
	}
	h.reply(uid, title+":\n"+strings.Join(names, "\n"))
}

// --- admin commands ---

func (h *Handler) cmdInitDB(ctx context.Context, uid int64) {
	if err := h.admin.Init(ctx, uid); err != nil {
		h.reply(uid, errs.UserMessage(err))
		return
	}
	h.reply(uid, "DB initialized (preserved) ✅")
}

func (h *Handler) cmdSetVIP(ctx context.Context, msg *tgbotapi.Message, value bool) {
	uid := msg.From.ID
	target, ok := parseIDArg(msg.CommandArguments())
	if !ok {
		h.reply(uid, fmt.Sprintf("Usage: /%s <tgid>", msg.Command()))
		return
	}
	if err := h.admin.SetVIP(ctx, uid, target, value); err != nil {
		h.reply(uid, errs.UserMessage(err))
		return
	}
	if value {
		h.reply(uid, fmt.Sprintf("Granted VIP to %d", target))
	} else {
		h.reply(uid, fmt.Sprintf("Revoked VIP for %d", target))
	}
}

func (h *Handler) cmdBroadcast(ctx context.Context, msg *tgbotapi.Message) {
	uid := msg.From.ID
	text := strings.TrimSpace(msg.CommandArguments())
	if text == "" {
		h.reply(uid, "Usage: /broadcast <message>")
		return
	}
	sent, err := h.admin.Broadcast(ctx, uid, text)
	if err != nil {
		h.reply(uid, errs.UserMessage(err))
		return
	}
	h.reply(uid, fmt.Sprintf("Broadcast sent to %d users.", sent))
}

func (h *Handler) cmdDeleteUser(ctx context.Context, msg *tgbotapi.Message) {
	uid := msg.From.ID
	target, ok := parseIDArg(msg.CommandArguments())
	if !ok {
		h.reply(uid, "Usage: /delete_user <tgid>")
		return
	}
	if err := h.admin.Delete(ctx, uid, target); err != nil {
		h.reply(uid, errs.UserMessage(err))
		return
	}
	h.reply(uid, "Deleted.")
}

// --- callbacks ---

func (h *Handler) handleCallback(ctx context.Context, call *tgbotapi.CallbackQuery) {
	uid := call.From.ID
	data := call.Data

	switch {
	case data == "menu_profile":
		h.answerCallback(call.ID, "")
		h.cmdProfile(ctx, uid)

	case data == "menu_browse":
		h.answerCallback(call.ID, "")
		h.sendNextCandidate(ctx, uid)

	case data == "menu_vip" || data == "buy_vip":
		h.answerCallback(call.ID, "")
		h.reply(uid, "VIP unlocks real profiles, likes and matches. Contact an admin to upgrade.")

	case data == "menu_admin":
		if !h.admin.IsAdmin(uid) {
			h.answerCallback(call.ID, "Admin only.")
			return
		}
		h.answerCallback(call.ID, "")
		h.replyKb(uid, "Admin panel:", keyboard.AdminPanel())

	case data == "admin_grant_vip":
		h.answerCallback(call.ID, "")
		h.reply(uid, "Send: /grant_vip <tgid>")

	case data == "admin_broadcast":
		h.answerCallback(call.ID, "")
		h.reply(uid, "Send: /broadcast <message>")

	case data == "fake_like":
		h.answerCallback(call.ID, "Preview: someone liked you. Upgrade to VIP for real matches.")
		h.appendCaption(call, "❤️ They liked you! (preview)")

	case data == "fake_next":
		h.answerCallback(call.ID, "Next preview...")
		h.sendNextCandidate(ctx, uid)

	default:
		if target, ok := keyboard.ParseTarget(data, "like"); ok {
			h.handleLike(ctx, call, target)
			return
		}
		if target, ok := keyboard.ParseTarget(data, "skip"); ok {
			_ = h.browse.Skip(ctx, uid, target)
			h.answerCallback(call.ID, "Skipped.")
			h.sendNextCandidate(ctx, uid)
			return
		}
		h.answerCallback(call.ID, "")
	}
}

func (h *Handler) handleLike(ctx context.Context, call *tgbotapi.CallbackQuery, target int64) {
	uid := call.From.ID

	outcome, err := h.browse.Like(ctx, uid, target)
	if err != nil {
		h.answerCallback(call.ID, errs.UserMessage(err))
		return
	}
	if outcome == browse.OutcomeMatched {
		h.answerCallback(call.ID, "🎉 It's a MATCH!")
		h.appendCaption(call, "🎉 It's a MATCH!")
		return
	}
	h.answerCallback(call.ID, "Liked.")
	h.appendCaption(call, "✅ You liked this profile.")
}

func (h *Handler) sendNextCandidate(ctx context.Context, uid int64) {
	view, err := h.browse.Next(ctx, uid)
	if err != nil {
		h.reply(uid, errs.UserMessage(err))
		return
	}
	markup := keyboard.ProfileButtons(view.TargetID, view.Source == browse.SourceReal)
	h.sendPhotoOrText(uid, view.PhotoRef, view.Caption(), &markup)
}

// --- send helpers ---

func (h *Handler) reply(chatID int64, text string) {
	if _, err := h.bot.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		h.log.Warn("send failed", "chat", chatID, "err", err)
	}
}

func (h *Handler) replyKb(chatID int64, text string, markup any) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = markup
	if _, err := h.bot.Send(msg); err != nil {
		h.log.Warn("send failed", "chat", chatID, "err", err)
	}
}

// sendPhotoOrText sends a photo card, falling back to plain text when the
// photo reference does not resolve.
func (h *Handler) sendPhotoOrText(chatID int64, photoRef, caption string, markup *tgbotapi.InlineKeyboardMarkup) {
	if photoRef != "" {
		var file tgbotapi.RequestFileData
		if botapi.IsURL(photoRef) {
			file = tgbotapi.FileURL(photoRef)
		} else {
			file = tgbotapi.FileID(photoRef)
		}
		photo := tgbotapi.NewPhoto(chatID, file)
		photo.Caption = caption
		if markup != nil {
			photo.ReplyMarkup = *markup
		}
		if _, err := h.bot.Send(photo); err == nil {
			return
		}
	}
	if markup != nil {
		h.replyKb(chatID, caption, *markup)
		return
	}
	h.reply(chatID, caption)
}

func (h *Handler) answerCallback(id, text string) {
	if _, err := h.bot.Request(tgbotapi.NewCallback(id, text)); err != nil {
		h.log.Warn("answer callback failed", "err", err)
	}
}

func (h *Handler) appendCaption(call *tgbotapi.CallbackQuery, suffix string) {
	if call.Message == nil {
		return
	}
	edit := tgbotapi.NewEditMessageCaption(call.Message.Chat.ID, call.Message.MessageID,
		strings.TrimSpace(call.Message.Caption+"\n\n"+suffix))
	if _, err := h.bot.Send(edit); err != nil {
		h.log.Debug("caption edit failed", "err", err)
	}
}

func parseIDArg(args string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(args), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}
