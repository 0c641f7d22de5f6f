package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Custom implementation of the map[string]string serializer

type DataMap map[string]string

// Value implements the driver.Valuer interface.
// This defines how the map is stored in the database.
func (m DataMap) Value() (driver.Value, error) {
	if len(m) == 0 {
		return "{}", nil
	}

	b, err := json.Marshal(m)
	if err != nil {
		return "", fmt.Errorf("failed to serialize DataMap, %w", err)
	}

	return string(b), nil
}

// Scan implements the sql.Scanner interface.
// This defines how the database value is converted back into go.
func (m *DataMap) Scan(value interface{}) error {
	if value == nil {
		*m = DataMap{}
		return nil
	}

	str, ok := value.(string)
	if !ok {
		b, ok := value.([]byte)
		if !ok {
			return fmt.Errorf("failed to scan DataMap, %v", value)
		}

		str = string(b)
	}

	if str == "" {
		*m = DataMap{}
		return nil
	}

	return json.Unmarshal([]byte(str), m)
}
