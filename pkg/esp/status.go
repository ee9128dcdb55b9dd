package esp

import (
	"context"
	"time"
)

// Region keys of the /status payload.
const (
	RegionCapeTown = "capetown"
	RegionEskom    = "eskom"
)

// Stage is an upcoming stage and when it starts.
type Stage struct {
	client *Client

	Stage               int       `json:"stage"`
	StageStartTimestamp time.Time `json:"stage_start_timestamp"`
}

// StageFromPayload builds a Stage. The stage may arrive as a number or a
// numeric string.
func StageFromPayload(c *Client, p StagePayload) (Stage, error) {
	stage, err := parseStage("stage", p.Stage)
	if err != nil {
		return Stage{}, err
	}
	start, err := parseTimestamp("stage_start_timestamp", p.StageStartTimestamp)
	if err != nil {
		return Stage{}, err
	}
	return Stage{client: c, Stage: stage, StageStartTimestamp: start}, nil
}

// StatusRegion is the load-shedding status announced by one grid operator.
type StatusRegion struct {
	client *Client

	Name         string    `json:"name"`
	NextStages   []Stage   `json:"next_stages"`
	Stage        string    `json:"stage"`
	StageUpdated time.Time `json:"stage_updated"`
}

// StatusRegionFromPayload builds a StatusRegion.
func StatusRegionFromPayload(c *Client, p StatusRegionPayload) (StatusRegion, error) {
	name, err := required("name", p.Name)
	if err != nil {
		return StatusRegion{}, err
	}
	rawStages, err := required("next_stages", p.NextStages)
	if err != nil {
		return StatusRegion{}, err
	}
	next := make([]Stage, 0, len(rawStages))
	for i, rs := range rawStages {
		stage, err := StageFromPayload(c, rs)
		if err != nil {
			return StatusRegion{}, nest(index("next_stages", i), err)
		}
		next = append(next, stage)
	}
	stage, err := required("stage", p.Stage)
	if err != nil {
		return StatusRegion{}, err
	}
	updated, err := parseTimestamp("stage_updated", p.StageUpdated)
	if err != nil {
		return StatusRegion{}, err
	}
	return StatusRegion{client: c, Name: name, NextStages: next, Stage: stage, StageUpdated: updated}, nil
}

// NestedStatus holds the status of both grid operators.
type NestedStatus struct {
	client *Client

	CapeTown StatusRegion `json:"capetown"`
	Eskom    StatusRegion `json:"eskom"`
}

// NestedStatusFromPayload builds a NestedStatus.
func NestedStatusFromPayload(c *Client, p NestedStatusPayload) (*NestedStatus, error) {
	rawCapeTown, err := required(RegionCapeTown, p.CapeTown)
	if err != nil {
		return nil, err
	}
	capeTown, err := StatusRegionFromPayload(c, rawCapeTown)
	if err != nil {
		return nil, nest(RegionCapeTown, err)
	}
	rawEskom, err := required(RegionEskom, p.Eskom)
	if err != nil {
		return nil, err
	}
	eskom, err := StatusRegionFromPayload(c, rawEskom)
	if err != nil {
		return nil, nest(RegionEskom, err)
	}
	return &NestedStatus{client: c, CapeTown: capeTown, Eskom: eskom}, nil
}

// Regions returns the regions keyed the way the API keys them.
func (s *NestedStatus) Regions() map[string]StatusRegion {
	return map[string]StatusRegion{
		RegionCapeTown: s.CapeTown,
		RegionEskom:    s.Eskom,
	}
}

// FetchStatus re-fetches the status through the client that built s.
func (s *NestedStatus) FetchStatus(ctx context.Context) (*NestedStatus, error) {
	return s.client.FetchStatus(ctx)
}

// Status is the /status envelope.
type Status struct {
	client *Client

	Status NestedStatus `json:"status"`
}

// StatusFromPayload builds a Status.
func StatusFromPayload(c *Client, p StatusPayload) (*Status, error) {
	raw, err := required("status", p.Status)
	if err != nil {
		return nil, err
	}
	nested, err := NestedStatusFromPayload(c, raw)
	if err != nil {
		return nil, nest("status", err)
	}
	return &Status{client: c, Status: *nested}, nil
}

// FetchStatus fetches the current status through the client that built s.
// Like Client.FetchStatus it returns the unwrapped NestedStatus.
func (s *Status) FetchStatus(ctx context.Context) (*NestedStatus, error) {
	return s.client.FetchStatus(ctx)
}

// FetchStatus returns the national and Cape Town load-shedding status,
// unwrapped from the "status" envelope.
func (c *Client) FetchStatus(ctx context.Context) (*NestedStatus, error) {
	var p StatusPayload
	if err := c.get(ctx, "/status", nil, &p); err != nil {
		return nil, err
	}
	status, err := StatusFromPayload(c, p)
	if err != nil {
		return nil, err
	}
	return &status.Status, nil
}
