package model

import "time"

const (
	AttemptTypeTraining    = "training"
	AttemptTypeCompetition = "competition"
)

var AttemptTypes = []string{AttemptTypeTraining, AttemptTypeCompetition}

// AttemptCategory groups the videos of one training session or
// competition. Rank only makes sense for competitions and stays nil
// otherwise.
type AttemptCategory struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	AttemptType string    `gorm:"index;not null" json:"attempt_type"`
	Place       string    `gorm:"not null" json:"place"`
	Date        time.Time `gorm:"index;not null" json:"date"`
	Rank        *uint     `json:"rank,omitempty"`

	Videos []AttemptVideo `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE" json:"-"`

	// VideosCount is filled by list queries, not a column.
	VideosCount int64 `gorm:"->;-:migration" json:"videos_count"`
}
