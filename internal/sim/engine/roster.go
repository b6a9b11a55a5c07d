package engine

import (
	"encoding/json"
	"fmt"
	"os"
)

// LoadRosters reads the external roster input file: team names plus champion
// base stats, roles and hidden attributes. Roster data is boundary input and
// validated here so a bad file never reaches a running simulation.
func LoadRosters(path string) ([]Roster, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var rosters []Roster
	if err := json.Unmarshal(raw, &rosters); err != nil {
		return nil, fmt.Errorf("rosters: %w", err)
	}
	for _, r := range rosters {
		if r.Team == "" {
			return nil, fmt.Errorf("rosters: team with empty name")
		}
		if len(r.Champions) == 0 {
			return nil, fmt.Errorf("rosters: team %s has no champions", r.Team)
		}
		for _, c := range r.Champions {
			if c.Name == "" {
				return nil, fmt.Errorf("rosters: team %s: champion with empty name", r.Team)
			}
			if c.Health <= 0 {
				return nil, fmt.Errorf("rosters: %s/%s: health must be positive", r.Team, c.Name)
			}
			if c.Mechanics < 0 || c.Mechanics > 1 || c.GameSense < 0 || c.GameSense > 1 {
				return nil, fmt.Errorf("rosters: %s/%s: skill attributes must be in [0,1]", r.Team, c.Name)
			}
		}
	}
	return rosters, nil
}
