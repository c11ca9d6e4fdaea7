package models

import (
	"encoding/json"
	"fmt"
)

// Season is a pricing tier for a stay. Values are ordered by severity so the
// most severe tier touched by a stay can be selected by comparison.
type Season int

const (
	SeasonLean Season = iota
	SeasonHigh
	SeasonPeak
	SeasonSuperPeak
)

var seasonNames = [...]string{"LEAN", "HIGH", "PEAK", "SUPER_PEAK"}

// String returns the canonical season name.
func (s Season) String() string {
	if s < SeasonLean || s > SeasonSuperPeak {
		return fmt.Sprintf("Season(%d)", int(s))
	}
	return seasonNames[s]
}

// MarshalJSON renders the season by name.
func (s Season) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON parses a season name.
func (s *Season) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	for i, n := range seasonNames {
		if n == name {
			*s = Season(i)
			return nil
		}
	}
	return fmt.Errorf("unknown season: %s", name)
}
