package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Shapes stores the annotation payload as-is. The backend never looks
// inside individual shapes, it only guarantees the value is a JSON
// array.
type Shapes json.RawMessage

func (s Shapes) Value() (driver.Value, error) {
	if len(s) == 0 {
		return "[]", nil
	}
	return string(s), nil
}

func (s *Shapes) Scan(value interface{}) error {
	if value == nil {
		*s = Shapes("[]")
		return nil
	}

	str, ok := value.(string)
	if !ok {
		b, ok := value.([]byte)
		if !ok {
			return fmt.Errorf("failed to scan Shapes, %v", value)
		}

		str = string(b)
	}

	if str == "" {
		str = "[]"
	}

	*s = Shapes(str)
	return nil
}

func (s Shapes) MarshalJSON() ([]byte, error) {
	if len(s) == 0 {
		return []byte("[]"), nil
	}
	return []byte(s), nil
}

func (s *Shapes) UnmarshalJSON(b []byte) error {
	*s = Shapes(b)
	return nil
}

// VideoAnnotation holds the drawing overlay of one video. One row per
// video, upserted on save.
type VideoAnnotation struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"-"`
	VideoID   uint      `gorm:"uniqueIndex;not null" json:"video_id"`
	Shapes    Shapes    `gorm:"not null" json:"shapes"`
	UpdatedBy *string   `json:"updated_by,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}
