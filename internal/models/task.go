package models

import "time"

// Task represents a fully-resolved task. StatusID always points at an
// existing task status; AssigneeID is optional.
type Task struct {
	ID         int64     `json:"id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	StatusID   int64     `json:"statusId"`
	StatusSlug string    `json:"status"`
	AssigneeID *int64    `json:"assigneeId,omitempty"`
	LabelIDs   []int64   `json:"labelIds"`
	CreatedAt  time.Time `json:"createdAt"`
}

// TaskFilter defines the available parameters for filtering tasks.
// A nil field contributes no restriction.
type TaskFilter struct {
	TitleCont  *string
	AssigneeID *int64
	StatusSlug *string
	LabelID    *int64
}

// TaskInput is a partially-specified inbound task payload. Pointer fields
// distinguish "absent" from "present but empty"; in particular LabelIDs as
// an empty non-nil slice clears the label set on update, while nil leaves
// it untouched.
type TaskInput struct {
	Title      *string
	Content    *string
	StatusID   *int64
	StatusSlug *string
	AssigneeID *int64
	LabelIDs   *[]int64
}
