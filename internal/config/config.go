package config

import (
	"os"
	"strconv"
	"strings"
)

// DefaultCharLimit is the ceiling for the serialized document, kept safely
// under Telegram's 4096-character message limit.
const DefaultCharLimit = 3800

type Config struct {
	Log struct {
		Level     string
		Format    string
		Component string
		Source    bool
	}

	Bot struct {
		Token string
		Debug bool
	}

	Store struct {
		ChannelID   int64
		CharLimit   int
		StrictReads bool
	}

	Admin struct {
		IDs []int64
	}

	Web struct {
		ListenAddr string
		WebhookURL string
	}
}

func New() *Config {
	cfg := &Config{}

	// Logger
	cfg.Log.Level = getEnvDefault("LOG_LEVEL", "info")
	cfg.Log.Format = getEnvDefault("LOG_FORMAT", "text")
	cfg.Log.Component = getEnvDefault("LOG_COMPONENT", "bot")
	cfg.Log.Source = isTruthy(os.Getenv("LOG_SOURCE"))

	// Telegram bot
	cfg.Bot.Token = strings.TrimSpace(os.Getenv("BOT_TOKEN"))
	cfg.Bot.Debug = isTruthy(os.Getenv("BOT_DEBUG"))

	// Pinned-message store
	if id, err := strconv.ParseInt(getEnvDefault("DB_CHANNEL_ID", "0"), 10, 64); err == nil {
		cfg.Store.ChannelID = id
	}
	cfg.Store.CharLimit = DefaultCharLimit
	if limStr := getEnvDefault("STORE_CHAR_LIMIT", ""); limStr != "" {
		if lim, err := strconv.Atoi(limStr); err == nil && lim > 0 {
			cfg.Store.CharLimit = lim
		}
	}
	cfg.Store.StrictReads = isTruthy(os.Getenv("STORE_STRICT_READS"))

	// Admin allow-list
	cfg.Admin.IDs = parseIDList(os.Getenv("ADMIN_IDS"))

	// Webhook / health HTTP
	cfg.Web.ListenAddr = getEnvDefault("LISTEN_ADDR", ":8080")
	cfg.Web.WebhookURL = strings.TrimSpace(os.Getenv("WEBHOOK_URL"))

	return cfg
}

func getEnvDefault(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

func isTruthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "y", "on":
		return true
	}
	return false
}

// parseIDList splits a comma-separated list of numeric IDs, skipping
// anything that does not parse.
func parseIDList(v string) []int64 {
	var ids []int64
	for _, part := range strings.Split(v, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if id, err := strconv.ParseInt(part, 10, 64); err == nil {
			ids = append(ids, id)
		}
	}
	return ids
}
