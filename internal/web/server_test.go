package web_test

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/oggyb/lilita/internal/web"
)

func newRouter(t *testing.T, handle func(tgbotapi.Update)) http.Handler {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return web.NewRouter("test-token", handle, log)
}

func TestHealthEndpoints(t *testing.T) {
	r := newRouter(t, func(tgbotapi.Update) {})

	for _, path := range []string{"/", "/healthz"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
}

func TestWebhookDecodesUpdate(t *testing.T) {
	var got *tgbotapi.Update
	r := newRouter(t, func(u tgbotapi.Update) { got = &u })

	body := `{"update_id":7,"message":{"message_id":1,"text":"hi","chat":{"id":42},"from":{"id":42}}}`
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/test-token", strings.NewReader(body)))

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, got)
	assert.Equal(t, 7, got.UpdateID)
	require.NotNil(t, got.Message)
	assert.Equal(t, "hi", got.Message.Text)
}

func TestWebhookRejectsGarbage(t *testing.T) {
	r := newRouter(t, func(tgbotapi.Update) { t.Fatal("handler must not run") })

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/test-token", strings.NewReader("{nope")))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
