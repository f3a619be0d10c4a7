package main

import (
	"context"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"

	"github.com/oggyb/lilita/internal/app"
	"github.com/oggyb/lilita/internal/bot"
	"github.com/oggyb/lilita/internal/botapi"
	"github.com/oggyb/lilita/internal/config"
	"github.com/oggyb/lilita/internal/logger"
	"github.com/oggyb/lilita/internal/service/admin"
	"github.com/oggyb/lilita/internal/service/browse"
	"github.com/oggyb/lilita/internal/service/registration"
	"github.com/oggyb/lilita/internal/store"
	"github.com/oggyb/lilita/internal/store/backend"
	"github.com/oggyb/lilita/internal/web"
)

func main() {
	if err := godotenv.Load(); err != nil {
		// not fatal, env vars may come from the platform
		logger.Info("no .env file found")
	}

	cfg := config.New()

	// Init logger (global singleton)
	logger.InitFromConfig(cfg)
	log := logger.L()

	if cfg.Bot.Token == "" || cfg.Store.ChannelID == 0 {
		log.Error("BOT_TOKEN and DB_CHANNEL_ID must be set")
		return
	}

	tg, err := tgbotapi.NewBotAPI(cfg.Bot.Token)
	if err != nil {
		log.Error("failed to authorize bot", "err", err)
		return
	}
	tg.Debug = cfg.Bot.Debug
	log.Info("authorized", "account", tg.Self.UserName)

	client := botapi.NewClient(tg)

	st := store.New(backend.NewChannel(client, cfg.Store.ChannelID), store.Options{
		CharLimit:     cfg.Store.CharLimit,
		FailOpenReads: !cfg.Store.StrictReads,
		Logger:        log,
	})

	appCtx := app.New(st, client, log)

	handler := bot.New(
		tg,
		registration.NewService(appCtx),
		browse.NewService(appCtx),
		admin.NewService(appCtx, cfg.Admin.IDs),
		log,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Web.WebhookURL != "" {
		runWebhook(ctx, cfg, tg, handler, log)
		return
	}
	runPolling(ctx, tg, handler, log)
}

func runPolling(ctx context.Context, tg *tgbotapi.BotAPI, handler *bot.Handler, log *slog.Logger) {
	// a leftover webhook blocks getUpdates
	if _, err := tg.Request(tgbotapi.DeleteWebhookConfig{}); err != nil {
		log.Error("failed to delete webhook", "err", err)
		return
	}
	log.Info("starting long-poll loop")
	handler.Run(ctx)
}

func runWebhook(ctx context.Context, cfg *config.Config, tg *tgbotapi.BotAPI, handler *bot.Handler, log *slog.Logger) {
	wh, err := tgbotapi.NewWebhook(cfg.Web.WebhookURL + "/" + cfg.Bot.Token)
	if err != nil {
		log.Error("invalid webhook url", "err", err)
		return
	}
	if _, err := tg.Request(wh); err != nil {
		log.Error("failed to set webhook", "err", err)
		return
	}

	router := web.NewRouter(cfg.Bot.Token, func(update tgbotapi.Update) {
		handler.HandleUpdate(ctx, update)
	}, log)

	srv := &http.Server{Addr: cfg.Web.ListenAddr, Handler: router}
	go func() {
		<-ctx.Done()
		_ = srv.Shutdown(context.Background())
	}()

	log.Info("starting webhook server", "addr", cfg.Web.ListenAddr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("webhook server failed", "err", err)
	}
}
