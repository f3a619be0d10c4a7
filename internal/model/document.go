package model

import (
	"sort"
	"strconv"
)

// Meta holds store bookkeeping. Zero fields are omitted so a fresh document
// serializes as {"users": {}, "meta": {}}.
type Meta struct {
	CreatedBy  int64 `json:"created_by,omitempty"`
	CreatedAt  int64 `json:"created_at,omitempty"`
	LastInitBy int64 `json:"last_init_by,omitempty"`
	LastInitAt int64 `json:"last_init_at,omitempty"`
}

// Document is the entire persisted dataset: every user record plus meta,
// serialized as one JSON blob into the pinned channel message.
type Document struct {
	Users map[string]*UserRecord `json:"users"`
	Meta  Meta                   `json:"meta"`
}

// NewDocument returns an empty document with a non-nil users map.
func NewDocument() *Document {
	return &Document{Users: map[string]*UserRecord{}}
}

// Key converts a numeric user ID to its map key form.
func Key(id int64) string {
	return strconv.FormatInt(id, 10)
}

// User looks up a record by numeric ID.
func (d *Document) User(id int64) (*UserRecord, bool) {
	rec, ok := d.Users[Key(id)]
	return rec, ok
}

// SetUser inserts or replaces the record under its own TelegramID.
func (d *Document) SetUser(rec *UserRecord) {
	if d.Users == nil {
		d.Users = map[string]*UserRecord{}
	}
	d.Users[Key(rec.TelegramID)] = rec
}

// RemoveUser deletes the record for the given ID. Returns false when absent.
// Only the primary key is removed; references to the ID left in other
// records' relationship sets stay behind.
func (d *Document) RemoveUser(id int64) bool {
	key := Key(id)
	if _, ok := d.Users[key]; !ok {
		return false
	}
	delete(d.Users, key)
	return true
}

// SortedIDs returns every user ID ascending. Map iteration order is not
// stable, so anything user-visible walks the document through this.
func (d *Document) SortedIDs() []int64 {
	ids := make([]int64, 0, len(d.Users))
	for key := range d.Users {
		if id, err := strconv.ParseInt(key, 10, 64); err == nil {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
