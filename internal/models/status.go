package models

import "time"

// TaskStatus is a named workflow state. Slug is a unique, human-stable
// alternate key ("draft", "published", ...).
type TaskStatus struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"createdAt"`
}
