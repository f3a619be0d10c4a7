package model

import "strings"

// Gender is a registrant's stated gender.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// Interest is who a registrant wants to see while browsing.
type Interest string

const (
	InterestMale   Interest = "male"
	InterestFemale Interest = "female"
	InterestBoth   Interest = "both"
)

// ParseGender normalizes a free-text gender token.
func ParseGender(s string) (Gender, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "male":
		return GenderMale, true
	case "female":
		return GenderFemale, true
	}
	return "", false
}

// ParseInterest normalizes a free-text interest token.
func ParseInterest(s string) (Interest, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "male":
		return InterestMale, true
	case "female":
		return InterestFemale, true
	case "both":
		return InterestBoth, true
	}
	return "", false
}

// Matches reports whether a candidate of the given gender fits this interest.
func (i Interest) Matches(g Gender) bool {
	return i == InterestBoth || string(i) == string(g)
}

// DefaultCoins is the balance every new registrant starts with. The field is
// reserved: nothing spends or earns coins yet.
const DefaultCoins = 20

// UserRecord is one registrant's persisted profile and relationship state.
//
// Relationship sets (Likes, LikedBy, Matches) hold decimal user IDs and are
// idempotent under AddLike/AddLikedBy/AddMatch. Matches is always a subset of
// Likes intersected with the reverse liked-by relation.
//
// The two cursor fields drive round-robin traversal of the decoy and real
// candidate pools; they persist across sessions.
type UserRecord struct {
	TelegramID  int64    `json:"telegram_id"`
	PhotoFileID string   `json:"photo_file_id"`
	Name        string   `json:"name" validate:"required"`
	Age         int      `json:"age" validate:"gte=18"`
	Gender      Gender   `json:"gender" validate:"oneof=male female"`
	Interest    Interest `json:"interest" validate:"oneof=male female both"`
	City        string   `json:"city" validate:"required"`
	Bio         string   `json:"bio" validate:"required,max=200"`

	Registered bool `json:"registered"`
	VIP        bool `json:"vip"`
	Coins      int  `json:"coins"`

	Likes   []string `json:"likes"`
	LikedBy []string `json:"liked_by"`
	Matches []string `json:"matches"`

	CurrentFakeIndex int `json:"current_fake_index"`
	CurrentRealIndex int `json:"current_real_index"`

	CreatedAt int64 `json:"created_at"`
}

// AddLike records that this user liked the given ID. No-op if already present.
func (u *UserRecord) AddLike(id string) {
	u.Likes = appendUnique(u.Likes, id)
}

// AddLikedBy records that the given ID liked this user. No-op if already present.
func (u *UserRecord) AddLikedBy(id string) {
	u.LikedBy = appendUnique(u.LikedBy, id)
}

// AddMatch records a mutual like with the given ID. No-op if already present.
func (u *UserRecord) AddMatch(id string) {
	u.Matches = appendUnique(u.Matches, id)
}

// HasLiked reports whether this user already liked the given ID.
func (u *UserRecord) HasLiked(id string) bool {
	return contains(u.Likes, id)
}

// HasMatch reports whether this user already matched with the given ID.
func (u *UserRecord) HasMatch(id string) bool {
	return contains(u.Matches, id)
}

func appendUnique(set []string, id string) []string {
	if contains(set, id) {
		return set
	}
	return append(set, id)
}

func contains(set []string, id string) bool {
	for _, v := range set {
		if v == id {
			return true
		}
	}
	return false
}
