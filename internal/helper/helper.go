package helper

import "time"

// Channel is the fan-out channel carrying the full helper roster.
const Channel = "helpers:update"

// Helper is a named volunteer identity, deduplicated by trimmed name.
type Helper struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	JoinedAt time.Time `json:"joinedAt"`
}
