package models

import "time"

// Identity holds the server-managed fields shared by every record.
type Identity struct {
	ID        int64     `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// RecordID returns the server-assigned identity.
func (i Identity) RecordID() int64 {
	return i.ID
}

// Stamp returns a copy of the server-managed fields.
func (i Identity) Stamp() Identity {
	return i
}

// SetIdentity overwrites the server-managed fields.
func (i *Identity) SetIdentity(id Identity) {
	*i = id
}

// Record is implemented by every content kind.
type Record interface {
	RecordID() int64
	// SortKey is the value lists are ordered by, descending.
	SortKey() string
}
