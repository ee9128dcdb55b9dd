package models

import "time"

// StageChange is a historical record of a region moving from one stage to another.
type StageChange struct {
	ID            int64     `json:"id" db:"id"`
	Region        string    `json:"region" db:"region"`                 // "capetown" or "eskom"
	Name          string    `json:"name" db:"name"`                     // display name reported by the API
	Stage         string    `json:"stage" db:"stage"`                   // new stage, "0" means suspended
	PreviousStage string    `json:"previous_stage" db:"previous_stage"` // empty for the first observation
	StageUpdated  time.Time `json:"stage_updated" db:"stage_updated"`   // when the operator announced it
	RecordedAt    time.Time `json:"recorded_at" db:"recorded_at"`
}

// UpcomingStage is a scheduled stage transition.
type UpcomingStage struct {
	Stage  int       `json:"stage"`
	Starts time.Time `json:"starts"`
}
