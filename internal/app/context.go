package app

import (
	"log/slog"

	"github.com/oggyb/lilita/internal/botapi"
	"github.com/oggyb/lilita/internal/store"
)

// AppContext holds shared dependencies (Store, Notifier, Logger, etc.)
type AppContext struct {
	Store    *store.Store
	Notifier botapi.Notifier
	Logger   *slog.Logger
}

// New creates a new AppContext
func New(st *store.Store, notifier botapi.Notifier, logger *slog.Logger) *AppContext {
	return &AppContext{
		Store:    st,
		Notifier: notifier,
		Logger:   logger,
	}
}
