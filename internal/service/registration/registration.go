// Package registration drives the linear sign-up flow:
// photo → name → age → gender → interest → city → bio → finalize.
// Step state lives in an in-memory session store keyed by user ID; nothing
// is persisted until the final step assembles the complete record.
package registration

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/oggyb/lilita/internal/app"
	errs "github.com/oggyb/lilita/internal/errors"
	"github.com/oggyb/lilita/internal/model"
)

// Step identifies the input the flow expects next.
type Step string

const (
	StepPhoto    Step = "photo"
	StepName     Step = "name"
	StepAge      Step = "age"
	StepGender   Step = "gender"
	StepInterest Step = "interest"
	StepCity     Step = "city"
	StepBio      Step = "bio"
)

// BioMaxLen bounds the bio in runes.
const BioMaxLen = 200

// draft accumulates validated inputs until finalize.
type draft struct {
	photoFileID string
	name        string
	age         int
	gender      model.Gender
	interest    model.Interest
	city        string
}

type session struct {
	step  Step
	draft draft
}

// PhotoResult distinguishes the two photo paths.
type PhotoResult int

const (
	// PhotoAccepted: the registration flow consumed the photo and advanced.
	PhotoAccepted PhotoResult = iota
	// PhotoUpdated: a registered user replaced their profile photo outside
	// the flow.
	PhotoUpdated
)

// Service owns the registration sessions and finalizes records into the
// store. Sessions are created by Begin and destroyed on finalize or Cancel.
type Service struct {
	appCtx *app.AppContext

	mu       sync.Mutex
	sessions map[int64]*session

	validate *validator.Validate
	now      func() time.Time
}

// NewService creates the registration service with dependencies from AppContext.
func NewService(appCtx *app.AppContext) *Service {
	return &Service{
		appCtx:   appCtx,
		sessions: make(map[int64]*session),
		validate: validator.New(),
		now:      time.Now,
	}
}

// Begin starts a fresh session for an unregistered user.
//
// Behavior:
//   - Registered user → ErrAlreadyRegistered (caller greets instead).
//   - Otherwise a new session at StepPhoto replaces any stale one.
func (s *Service) Begin(ctx context.Context, userID int64) (Step, error) {
	rec, err := s.appCtx.Store.GetUser(ctx, userID)
	if err != nil && !errors.Is(err, errs.ErrUserNotFound) {
		return "", err
	}
	if err == nil && rec.Registered {
		return "", errs.ErrAlreadyRegistered
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[userID] = &session{step: StepPhoto}

	s.appCtx.Logger.Debug("registration started", "user", userID)
	return StepPhoto, nil
}

// SubmitPhoto feeds a photo into the flow.
//
// Behavior:
//   - Session at StepPhoto → photo stored in the draft, flow advances.
//   - Session at any other step → validation error, session unchanged.
//   - No session but a registered record → single-field photo update,
//     persisted immediately.
//   - No session, no record → ErrNoSession.
func (s *Service) SubmitPhoto(ctx context.Context, userID int64, fileID string) (PhotoResult, error) {
	s.mu.Lock()
	sess, ok := s.sessions[userID]
	if ok {
		if sess.step != StepPhoto {
			s.mu.Unlock()
			return 0, errs.Invalid("photo", "Not expecting a photo now.")
		}
		sess.draft.photoFileID = fileID
		sess.step = StepName
		s.mu.Unlock()
		return PhotoAccepted, nil
	}
	s.mu.Unlock()

	rec, err := s.appCtx.Store.GetUser(ctx, userID)
	if err == nil && rec.Registered {
		rec.PhotoFileID = fileID
		if err := s.appCtx.Store.PutUser(ctx, rec); err != nil {
			return 0, err
		}
		return PhotoUpdated, nil
	}
	return 0, errs.ErrNoSession
}

// SubmitText feeds a text input into the flow.
//
// Returns the step the flow expects next and done=true once the record has
// been finalized and persisted. Invalid input returns a ValidationError and
// leaves the session on the same step, so the caller re-prompts.
func (s *Service) SubmitText(ctx context.Context, userID int64, text string) (next Step, done bool, err error) {
	s.mu.Lock()
	sess, ok := s.sessions[userID]
	if !ok {
		s.mu.Unlock()
		return "", false, errs.ErrNoSession
	}

	text = strings.TrimSpace(text)

	switch sess.step {
	case StepPhoto:
		s.mu.Unlock()
		return StepPhoto, false, errs.Invalid("photo", "Upload a profile photo first.")

	case StepName:
		if text == "" {
			s.mu.Unlock()
			return StepName, false, errs.Invalid("name", "Send your full name.")
		}
		sess.draft.name = text
		sess.step = StepAge

	case StepAge:
		age, convErr := strconv.Atoi(text)
		if convErr != nil || age < 18 {
			s.mu.Unlock()
			return StepAge, false, errs.Invalid("age", "Enter a valid age (18+).")
		}
		sess.draft.age = age
		sess.step = StepGender

	case StepGender:
		gender, valid := model.ParseGender(text)
		if !valid {
			s.mu.Unlock()
			return StepGender, false, errs.Invalid("gender", "Type 'male' or 'female'.")
		}
		sess.draft.gender = gender
		sess.step = StepInterest

	case StepInterest:
		interest, valid := model.ParseInterest(text)
		if !valid {
			s.mu.Unlock()
			return StepInterest, false, errs.Invalid("interest", "Type 'male', 'female' or 'both'.")
		}
		sess.draft.interest = interest
		sess.step = StepCity

	case StepCity:
		if text == "" {
			s.mu.Unlock()
			return StepCity, false, errs.Invalid("city", "Enter your city.")
		}
		sess.draft.city = text
		sess.step = StepBio

	case StepBio:
		if text == "" {
			s.mu.Unlock()
			return StepBio, false, errs.Invalid("bio", "Send a short bio (one line).")
		}
		if utf8.RuneCountInString(text) > BioMaxLen {
			s.mu.Unlock()
			return StepBio, false, errs.Invalid("bio", "Bio too long, keep it under 200 characters.")
		}
		draft := sess.draft
		// Session is gone from here on, whatever the save outcome: a
		// persistence failure at finalize loses the entered data.
		delete(s.sessions, userID)
		s.mu.Unlock()
		return "", true, s.finalize(ctx, userID, draft, text)
	}

	next = sess.step
	s.mu.Unlock()
	return next, false, nil
}

// finalize assembles and persists the completed record.
func (s *Service) finalize(ctx context.Context, userID int64, d draft, bio string) error {
	rec := &model.UserRecord{
		TelegramID:  userID,
		PhotoFileID: d.photoFileID,
		Name:        d.name,
		Age:         d.age,
		Gender:      d.gender,
		Interest:    d.interest,
		City:        d.city,
		Bio:         bio,
		Registered:  true,
		VIP:         false,
		Coins:       model.DefaultCoins,
		Likes:       []string{},
		LikedBy:     []string{},
		Matches:     []string{},
		CreatedAt:   s.now().Unix(),
	}

	if err := s.validate.Struct(rec); err != nil {
		s.appCtx.Logger.Error("finalized record failed validation", "user", userID, "err", err)
		return errs.Invalid("profile", "Something went wrong with your answers. Use /start to retry.")
	}

	if err := s.appCtx.Store.PutUser(ctx, rec); err != nil {
		s.appCtx.Logger.Error("failed to persist finalized record", "user", userID, "err", err)
		return err
	}

	s.appCtx.Logger.Info("registration complete", "user", userID)
	return nil
}

// Cancel drops the user's session, reporting whether one existed.
func (s *Service) Cancel(userID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.sessions[userID]
	delete(s.sessions, userID)
	return ok
}

// StepOf returns the step the user's session is waiting on.
func (s *Service) StepOf(userID int64) (Step, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[userID]
	if !ok {
		return "", false
	}
	return sess.step, true
}

// Prompt returns the message asking for the given step's input.
func Prompt(step Step) string {
	switch step {
	case StepPhoto:
		return "Step 1: Upload your profile photo (mandatory)."
	case StepName:
		return "Photo saved. Step 2: Send your full name."
	case StepAge:
		return "Step 3: Enter your age (18+)."
	case StepGender:
		return "Step 4: Gender (male/female)."
	case StepInterest:
		return "Step 5: Who do you want to see? (male/female/both)"
	case StepCity:
		return "Step 6: Enter your city."
	case StepBio:
		return "Step 7: Send a short bio (one line)."
	}
	return ""
}
