// Package admin implements the privileged operations: store initialization,
// VIP grants, record deletion and broadcasts. Every operation checks the
// static allow-list before touching anything.
package admin

import (
	"context"
	"fmt"

	"github.com/oggyb/lilita/internal/app"
	errs "github.com/oggyb/lilita/internal/errors"
)

// Service contains the admin business logic on top of the store.
type Service struct {
	appCtx *app.AppContext
	admins map[int64]struct{}
}

// NewService creates the admin service. adminIDs is the static allow-list
// from configuration.
func NewService(appCtx *app.AppContext, adminIDs []int64) *Service {
	admins := make(map[int64]struct{}, len(adminIDs))
	for _, id := range adminIDs {
		admins[id] = struct{}{}
	}
	return &Service{appCtx: appCtx, admins: admins}
}

// IsAdmin reports whether the actor holds administrative privilege.
func (s *Service) IsAdmin(actorID int64) bool {
	_, ok := s.admins[actorID]
	return ok
}

func (s *Service) authorize(actorID int64) error {
	if !s.IsAdmin(actorID) {
		return errs.ErrUnauthorized
	}
	return nil
}

// Init initializes the document store. Idempotent: with users present only
// meta is refreshed.
func (s *Service) Init(ctx context.Context, actorID int64) error {
	if err := s.authorize(actorID); err != nil {
		return err
	}
	if err := s.appCtx.Store.Initialize(ctx, actorID); err != nil {
		return err
	}
	s.appCtx.Logger.Info("store initialized", "actor", actorID)
	return nil
}

// SetVIP grants or revokes the target's VIP flag. ErrUserNotFound when the
// target has no record.
func (s *Service) SetVIP(ctx context.Context, actorID, targetID int64, value bool) error {
	if err := s.authorize(actorID); err != nil {
		return err
	}

	rec, err := s.appCtx.Store.GetUser(ctx, targetID)
	if err != nil {
		return err
	}
	rec.VIP = value
	if err := s.appCtx.Store.PutUser(ctx, rec); err != nil {
		return err
	}

	s.appCtx.Logger.Info("vip flag changed", "actor", actorID, "target", targetID, "vip", value)
	return nil
}

// Delete removes the target's record entirely. References to the target in
// other records' sets are left behind.
func (s *Service) Delete(ctx context.Context, actorID, targetID int64) error {
	if err := s.authorize(actorID); err != nil {
		return err
	}
	if err := s.appCtx.Store.DeleteUser(ctx, targetID); err != nil {
		return err
	}
	s.appCtx.Logger.Info("user record deleted", "actor", actorID, "target", targetID)
	return nil
}

// Broadcast sends a message to every user in the document, in ascending ID
// order. Individual delivery failures are skipped, not fatal; the count of
// successful deliveries is returned.
func (s *Service) Broadcast(ctx context.Context, actorID int64, text string) (int, error) {
	if err := s.authorize(actorID); err != nil {
		return 0, err
	}

	doc, err := s.appCtx.Store.Load(ctx)
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, id := range doc.SortedIDs() {
		if err := s.appCtx.Notifier.SendText(id, fmt.Sprintf("[Broadcast]\n\n%s", text)); err != nil {
			s.appCtx.Logger.Warn("broadcast delivery failed", "user", id, "err", err)
			continue
		}
		sent++
	}

	s.appCtx.Logger.Info("broadcast finished", "actor", actorID, "sent", sent, "total", len(doc.Users))
	return sent, nil
}
