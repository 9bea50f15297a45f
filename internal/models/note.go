// Package models defines the domain types for Ansuz.
package models

import "time"

// NoteMetadata is a lightweight representation of a vault file returned by
// list operations. The path is relative to the vault root; its first segment
// is the owning user.
type NoteMetadata struct {
	Path      string    `json:"path"`
	Checksum  string    `json:"checksum"`
	UpdatedAt time.Time `json:"updated_at"`
}
