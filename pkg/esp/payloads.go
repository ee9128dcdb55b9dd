package esp

import "encoding/json"

// Raw JSON shapes returned by the API. Scalar fields are pointers so that an
// absent key can be told apart from a zero value; the FromPayload constructors
// reject absent keys.

// NestedAllowancePayload is the "allowance" object of /api_allowance.
type NestedAllowancePayload struct {
	Count *int    `json:"count"`
	Limit *int    `json:"limit"`
	Type  *string `json:"type"`
}

// AllowancePayload is the body of /api_allowance.
type AllowancePayload struct {
	Allowance *NestedAllowancePayload `json:"allowance"`
}

// AreaEventPayload is one entry of an area's "events" list.
type AreaEventPayload struct {
	End   *string `json:"end"`
	Note  *string `json:"note"`
	Start *string `json:"start"`
}

// NestedAreaPayload is the "info" object of /area.
type NestedAreaPayload struct {
	Name   *string `json:"name"`
	Region *string `json:"region"`
}

// AreaScheduleDayPayload is one day of an area's schedule.
type AreaScheduleDayPayload struct {
	Date   *string     `json:"date"`
	Name   *string     `json:"name"`
	Stages *[][]string `json:"stages"`
}

// AreaSchedulePayload is the "schedule" object of /area.
type AreaSchedulePayload struct {
	Days   *[]AreaScheduleDayPayload `json:"days"`
	Source *string                   `json:"source"`
}

// AreaPayload is the body of /area.
type AreaPayload struct {
	Events   *[]AreaEventPayload  `json:"events"`
	Info     *NestedAreaPayload   `json:"info"`
	Schedule *AreaSchedulePayload `json:"schedule"`
}

// NestedAreaSearchPayload is one result row of /areas_search.
type NestedAreaSearchPayload struct {
	ID     *string `json:"id"`
	Name   *string `json:"name"`
	Region *string `json:"region"`
}

// AreaSearchPayload is the body of /areas_search.
type AreaSearchPayload struct {
	Areas *[]NestedAreaSearchPayload `json:"areas"`
}

// NestedNearbyAreaPayload is one result row of /areas_nearby.
type NestedNearbyAreaPayload struct {
	Count  *int    `json:"count"`
	ID     *string `json:"id"`
	Name   *string `json:"name"`
	Region *string `json:"region"`
}

// NearbyAreaPayload is the body of /areas_nearby.
type NearbyAreaPayload struct {
	Areas *[]NestedNearbyAreaPayload `json:"areas"`
}

// StagePayload is one upcoming stage. The API sends "stage" as a numeric
// string, sometimes as a number, so it is kept raw until decoding.
type StagePayload struct {
	Stage               json.RawMessage `json:"stage"`
	StageStartTimestamp *string         `json:"stage_start_timestamp"`
}

// StatusRegionPayload is the status of one grid operator.
type StatusRegionPayload struct {
	Name         *string         `json:"name"`
	NextStages   *[]StagePayload `json:"next_stages"`
	Stage        *string         `json:"stage"`
	StageUpdated *string         `json:"stage_updated"`
}

// NestedStatusPayload is the "status" object of /status.
type NestedStatusPayload struct {
	CapeTown *StatusRegionPayload `json:"capetown"`
	Eskom    *StatusRegionPayload `json:"eskom"`
}

// StatusPayload is the body of /status.
type StatusPayload struct {
	Status *NestedStatusPayload `json:"status"`
}

// NestedNearbyTopicPayload is one topic of /topics_nearby.
type NestedNearbyTopicPayload struct {
	Active    *string  `json:"active"`
	Body      *string  `json:"body"`
	Category  *string  `json:"category"`
	Distance  *float64 `json:"distance"`
	Followers *int     `json:"followers"`
	Timestamp *string  `json:"timestamp"`
}

// NearbyTopicPayload is the body of /topics_nearby.
type NearbyTopicPayload struct {
	Topics *[]NestedNearbyTopicPayload `json:"topics"`
}
