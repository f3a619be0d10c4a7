// Package browse implements profile rotation and like/skip/match logic.
// VIP users rotate through real registered candidates; everyone else gets
// the fixed decoy pools. Traversal is round-robin over a per-user cursor
// persisted in the user's record.
package browse

import (
	"context"
	"errors"
	"fmt"

	"github.com/oggyb/lilita/internal/app"
	"github.com/oggyb/lilita/internal/decoy"
	errs "github.com/oggyb/lilita/internal/errors"
	"github.com/oggyb/lilita/internal/model"
)

// Source tells the caller which pool a view came from.
type Source string

const (
	SourceDecoy Source = "decoy"
	SourceReal  Source = "real"
)

// ProfileView is one candidate card ready for rendering. TargetID is zero
// for decoys, which carry no identity.
type ProfileView struct {
	Source   Source
	TargetID int64
	Name     string
	Age      int
	City     string
	Bio      string
	PhotoRef string
}

// Caption renders the card text the way the profile messages show it.
func (v *ProfileView) Caption() string {
	return fmt.Sprintf("%s, %d\n%s\n\n%s", v.Name, v.Age, v.City, v.Bio)
}

// Outcome is the result of a like.
type Outcome int

const (
	// OutcomeLiked: one-directional like recorded.
	OutcomeLiked Outcome = iota
	// OutcomeMatched: the target had already liked the requester; both
	// records now hold each other in matches.
	OutcomeMatched
)

// Service contains the browsing business logic on top of the store.
type Service struct {
	appCtx *app.AppContext
}

// NewService creates the browse service with dependencies from AppContext.
func NewService(appCtx *app.AppContext) *Service {
	return &Service{appCtx: appCtx}
}

// Next returns the requester's next candidate and advances their cursor.
//
// Behavior:
//   - VIP pool: every other registered user whose gender matches the
//     requester's interest, ordered by ascending user ID so traversal is
//     deterministic across loads.
//   - Non-VIP pool: the fixed decoy list filtered the same way.
//   - Cursor: idx = cursor mod pool size, then cursor = (idx+1) mod size,
//     persisted via PutUser.
//   - Empty pool → ErrNoCandidates, cursor untouched, nothing persisted.
func (s *Service) Next(ctx context.Context, userID int64) (*ProfileView, error) {
	doc, err := s.appCtx.Store.Load(ctx)
	if err != nil {
		return nil, err
	}
	rec, ok := doc.User(userID)
	if !ok || !rec.Registered {
		return nil, errs.ErrNotRegistered
	}

	if rec.VIP {
		return s.nextReal(ctx, doc, rec)
	}
	return s.nextDecoy(ctx, rec)
}

func (s *Service) nextReal(ctx context.Context, doc *model.Document, rec *model.UserRecord) (*ProfileView, error) {
	var pool []*model.UserRecord
	for _, id := range doc.SortedIDs() {
		if id == rec.TelegramID {
			continue
		}
		cand, _ := doc.User(id)
		if cand == nil || !cand.Registered {
			continue
		}
		if rec.Interest.Matches(cand.Gender) {
			pool = append(pool, cand)
		}
	}
	if len(pool) == 0 {
		return nil, errs.ErrNoCandidates
	}

	idx := rec.CurrentRealIndex % len(pool)
	target := pool[idx]
	rec.CurrentRealIndex = (idx + 1) % len(pool)
	if err := s.appCtx.Store.PutUser(ctx, rec); err != nil {
		return nil, err
	}

	return &ProfileView{
		Source:   SourceReal,
		TargetID: target.TelegramID,
		Name:     target.Name,
		Age:      target.Age,
		City:     target.City,
		Bio:      target.Bio,
		PhotoRef: target.PhotoFileID,
	}, nil
}

func (s *Service) nextDecoy(ctx context.Context, rec *model.UserRecord) (*ProfileView, error) {
	pool := decoy.PoolFor(rec.Interest)
	if len(pool) == 0 {
		return nil, errs.ErrNoCandidates
	}

	idx := rec.CurrentFakeIndex % len(pool)
	profile := pool[idx]
	rec.CurrentFakeIndex = (idx + 1) % len(pool)
	if err := s.appCtx.Store.PutUser(ctx, rec); err != nil {
		return nil, err
	}

	return &ProfileView{
		Source:   SourceDecoy,
		Name:     profile.Name,
		Age:      profile.Age,
		City:     profile.City,
		Bio:      profile.Bio,
		PhotoRef: profile.PhotoURL,
	}, nil
}

// Like records a like from a VIP requester on a real target.
//
// Behavior:
//   - Requester must exist, be registered and VIP; target must exist.
//   - likes/liked_by membership is idempotent.
//   - Mutual like → both matches sets gain each other, both parties are
//     notified (delivery failures tolerated).
//   - The two records are persisted by two independent PutUser calls; the
//     pair is not atomic.
func (s *Service) Like(ctx context.Context, userID, targetID int64) (Outcome, error) {
	if userID == targetID {
		return 0, errs.Invalid("target", "You cannot like yourself.")
	}

	me, err := s.appCtx.Store.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, errs.ErrUserNotFound) {
			return 0, errs.ErrNotRegistered
		}
		return 0, err
	}
	if !me.Registered {
		return 0, errs.ErrNotRegistered
	}
	if !me.VIP {
		return 0, errs.ErrVIPRequired
	}

	target, err := s.appCtx.Store.GetUser(ctx, targetID)
	if err != nil {
		return 0, err
	}

	me.AddLike(model.Key(targetID))
	target.AddLikedBy(model.Key(userID))

	mutual := target.HasLiked(model.Key(userID))
	if mutual {
		me.AddMatch(model.Key(targetID))
		target.AddMatch(model.Key(userID))
	}

	if err := s.appCtx.Store.PutUser(ctx, me); err != nil {
		return 0, err
	}
	if err := s.appCtx.Store.PutUser(ctx, target); err != nil {
		return 0, err
	}

	if mutual {
		s.notifyMatch(target.TelegramID, me.Name)
		s.notifyMatch(me.TelegramID, target.Name)
		return OutcomeMatched, nil
	}
	return OutcomeLiked, nil
}

func (s *Service) notifyMatch(userID int64, withName string) {
	if s.appCtx.Notifier == nil {
		return
	}
	if err := s.appCtx.Notifier.SendText(userID, fmt.Sprintf("🎉 You matched with %s!", withName)); err != nil {
		s.appCtx.Logger.Warn("match notification failed", "user", userID, "err", err)
	}
}

// Skip acknowledges without touching any record; the cursor already moved
// when the candidate was fetched.
func (s *Service) Skip(ctx context.Context, userID, targetID int64) error {
	s.appCtx.Logger.Debug("skip", "user", userID, "target", targetID)
	return nil
}

// LikedBy returns the display names of everyone who liked the user.
// VIP only. IDs that no longer resolve render as the raw ID.
func (s *Service) LikedBy(ctx context.Context, userID int64) ([]string, error) {
	return s.nameList(ctx, userID, func(rec *model.UserRecord) []string { return rec.LikedBy })
}

// Matches returns the display names of the user's mutual likes. VIP only.
func (s *Service) Matches(ctx context.Context, userID int64) ([]string, error) {
	return s.nameList(ctx, userID, func(rec *model.UserRecord) []string { return rec.Matches })
}

func (s *Service) nameList(ctx context.Context, userID int64, pick func(*model.UserRecord) []string) ([]string, error) {
	doc, err := s.appCtx.Store.Load(ctx)
	if err != nil {
		return nil, err
	}
	rec, ok := doc.User(userID)
	if !ok || !rec.Registered {
		return nil, errs.ErrNotRegistered
	}
	if !rec.VIP {
		return nil, errs.ErrVIPRequired
	}

	var names []string
	for _, id := range pick(rec) {
		if other, ok := doc.Users[id]; ok {
			names = append(names, other.Name)
		} else {
			names = append(names, id)
		}
	}
	return names, nil
}

// Profile returns the requester's own record for the profile card.
func (s *Service) Profile(ctx context.Context, userID int64) (*model.UserRecord, error) {
	return s.appCtx.Store.GetUser(ctx, userID)
}
