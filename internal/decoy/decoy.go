// Package decoy holds the static filler profiles shown to non-VIP users.
// Decoys carry no identifier and never touch the document store.
package decoy

import "github.com/oggyb/lilita/internal/model"

// Profile is a single read-only decoy entry.
type Profile struct {
	Name     string
	Age      int
	City     string
	Bio      string
	PhotoURL string
}

var malePool = []Profile{
	{Name: "Rahul", Age: 24, City: "Delhi", Bio: "Coffee & coding.", PhotoURL: "https://picsum.photos/400?random=11"},
	{Name: "Aman", Age: 26, City: "Mumbai", Bio: "Traveler.", PhotoURL: "https://picsum.photos/400?random=12"},
	{Name: "Vishal", Age: 23, City: "Kolkata", Bio: "Food lover.", PhotoURL: "https://picsum.photos/400?random=13"},
}

var femalePool = []Profile{
	{Name: "Priya", Age: 22, City: "Delhi", Bio: "Bookworm.", PhotoURL: "https://picsum.photos/400?random=21"},
	{Name: "Anjali", Age: 24, City: "Pune", Bio: "Artist.", PhotoURL: "https://picsum.photos/400?random=22"},
	{Name: "Sana", Age: 23, City: "Bengaluru", Bio: "Coffee lover.", PhotoURL: "https://picsum.photos/400?random=23"},
}

// Male returns a copy of the male decoy pool.
func Male() []Profile {
	return append([]Profile(nil), malePool...)
}

// Female returns a copy of the female decoy pool.
func Female() []Profile {
	return append([]Profile(nil), femalePool...)
}

// PoolFor returns the decoy pool matching an interest. "both" concatenates
// the male pool followed by the female pool, in that fixed order.
func PoolFor(interest model.Interest) []Profile {
	switch interest {
	case model.InterestMale:
		return Male()
	case model.InterestFemale:
		return Female()
	default:
		return append(Male(), femalePool...)
	}
}
