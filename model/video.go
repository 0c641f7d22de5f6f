package model

import "time"

const (
	EventTypeJump  = "jump"
	EventTypeThrow = "throw"
	EventTypeRun   = "run"
)

var EventTypes = []string{EventTypeJump, EventTypeThrow, EventTypeRun}

// AttemptVideo is one recorded attempt inside a category. The video
// itself lives elsewhere; SourceURL just points at it. Result is kept
// as a string since the unit depends on the discipline (meters or
// seconds).
type AttemptVideo struct {
	ID              uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	CategoryID      uint   `gorm:"index;not null" json:"category_id"`
	EventType       string `gorm:"index;not null" json:"event_type"`
	SourceURL       string `gorm:"not null" json:"source_url"`
	Result          string `gorm:"not null" json:"result"`
	AttemptNumber   uint   `gorm:"not null" json:"attempt_number"`
	PlaceInProtocol *uint  `gorm:"column:place" json:"place_in_protocol,omitempty"`
	// AttemptTime is an optional HH:MM:SS wall-clock time of the attempt
	AttemptTime *string   `json:"time,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
