package visit

import "time"

// Channel is the fan-out channel carrying the full visit list.
const Channel = "visits:update"

// Visit is a bookable time slot, single-occupancy.
type Visit struct {
	ID        string     `json:"id"`
	Date      string     `json:"date"`
	StartTime string     `json:"startTime"`
	EndTime   string     `json:"endTime"`
	BookedBy  *string    `json:"bookedBy,omitempty"`
	BookedAt  *time.Time `json:"bookedAt,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}
