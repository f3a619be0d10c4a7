// Package web serves the webhook route and the health endpoints used by
// hosting platforms. In webhook mode Telegram POSTs updates to /<token>;
// long-polling deployments only use the health routes.
package web

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// NewRouter builds the HTTP surface. token keeps the webhook path secret,
// per Telegram's recommendation.
func NewRouter(token string, handle func(update tgbotapi.Update), log *slog.Logger) *chi.Mux {
	r := chi.NewRouter()

	health := func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}
	r.Get("/", health)
	r.Get("/healthz", health)

	if token != "" && handle != nil {
		r.Post("/"+token, func(w http.ResponseWriter, req *http.Request) {
			var update tgbotapi.Update
			if err := json.NewDecoder(req.Body).Decode(&update); err != nil {
				log.Warn("webhook body does not decode", "err", err)
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			handle(update)
			w.WriteHeader(http.StatusOK)
		})
	}

	return r
}
