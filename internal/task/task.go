package task

import "time"

type Status string

const (
	StatusWaiting  Status = "waiting"
	StatusReserved Status = "reserved"
	StatusDone     Status = "done"
)

// DefaultCategory is applied when a task is created without one.
const DefaultCategory = "general"

// Channel is the fan-out channel carrying the full task list.
const Channel = "tasks:update"

type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	DesiredDate string     `json:"desiredDate,omitempty"`
	DesiredTime string     `json:"desiredTime,omitempty"`
	Twin        string     `json:"twin,omitempty"`
	Status      Status     `json:"status"`
	ClaimedBy   *string    `json:"claimedBy,omitempty"`
	ClaimedAt   *time.Time `json:"claimedAt,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}
