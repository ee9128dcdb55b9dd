package esp

import (
	"context"
	"fmt"
	"net/url"
	"time"
)

// AreaEvent is a scheduled outage in an area.
type AreaEvent struct {
	client *Client

	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Note  string    `json:"note"`
}

// AreaEventFromPayload builds an AreaEvent.
func AreaEventFromPayload(c *Client, p AreaEventPayload) (AreaEvent, error) {
	end, err := parseTimestamp("end", p.End)
	if err != nil {
		return AreaEvent{}, err
	}
	note, err := required("note", p.Note)
	if err != nil {
		return AreaEvent{}, err
	}
	start, err := parseTimestamp("start", p.Start)
	if err != nil {
		return AreaEvent{}, err
	}
	return AreaEvent{client: c, Start: start, End: end, Note: note}, nil
}

// NestedArea names an area and its region.
type NestedArea struct {
	client *Client

	Name   string `json:"name"`
	Region string `json:"region"`
}

// NestedAreaFromPayload builds a NestedArea.
func NestedAreaFromPayload(c *Client, p NestedAreaPayload) (NestedArea, error) {
	name, err := required("name", p.Name)
	if err != nil {
		return NestedArea{}, err
	}
	region, err := required("region", p.Region)
	if err != nil {
		return NestedArea{}, err
	}
	return NestedArea{client: c, Name: name, Region: region}, nil
}

// AreaScheduleDay is one calendar day of an area's schedule. Stages holds one
// list of outage windows per load-shedding stage, in the order the API sends.
type AreaScheduleDay struct {
	client *Client

	Date   time.Time  `json:"date"`
	Name   string     `json:"name"`
	Stages [][]string `json:"stages"`
}

// AreaScheduleDayFromPayload builds an AreaScheduleDay.
func AreaScheduleDayFromPayload(c *Client, p AreaScheduleDayPayload) (AreaScheduleDay, error) {
	date, err := parseDate("date", p.Date)
	if err != nil {
		return AreaScheduleDay{}, err
	}
	name, err := required("name", p.Name)
	if err != nil {
		return AreaScheduleDay{}, err
	}
	stages, err := required("stages", p.Stages)
	if err != nil {
		return AreaScheduleDay{}, err
	}
	return AreaScheduleDay{client: c, Date: date, Name: name, Stages: stages}, nil
}

// AreaSchedule is the upcoming schedule of an area.
type AreaSchedule struct {
	client *Client

	Days   []AreaScheduleDay `json:"days"`
	Source string            `json:"source"`
}

// AreaScheduleFromPayload builds an AreaSchedule.
func AreaScheduleFromPayload(c *Client, p AreaSchedulePayload) (AreaSchedule, error) {
	rawDays, err := required("days", p.Days)
	if err != nil {
		return AreaSchedule{}, err
	}
	days := make([]AreaScheduleDay, 0, len(rawDays))
	for i, rd := range rawDays {
		day, err := AreaScheduleDayFromPayload(c, rd)
		if err != nil {
			return AreaSchedule{}, nest(index("days", i), err)
		}
		days = append(days, day)
	}
	source, err := required("source", p.Source)
	if err != nil {
		return AreaSchedule{}, err
	}
	return AreaSchedule{client: c, Days: days, Source: source}, nil
}

// Area is the full detail of one area: events, identity and schedule.
type Area struct {
	client *Client

	Events   []AreaEvent  `json:"events"`
	Info     NestedArea   `json:"info"`
	Schedule AreaSchedule `json:"schedule"`
}

// AreaFromPayload builds an Area.
func AreaFromPayload(c *Client, p AreaPayload) (*Area, error) {
	rawEvents, err := required("events", p.Events)
	if err != nil {
		return nil, err
	}
	events := make([]AreaEvent, 0, len(rawEvents))
	for i, re := range rawEvents {
		event, err := AreaEventFromPayload(c, re)
		if err != nil {
			return nil, nest(index("events", i), err)
		}
		events = append(events, event)
	}

	rawInfo, err := required("info", p.Info)
	if err != nil {
		return nil, err
	}
	info, err := NestedAreaFromPayload(c, rawInfo)
	if err != nil {
		return nil, nest("info", err)
	}

	rawSchedule, err := required("schedule", p.Schedule)
	if err != nil {
		return nil, err
	}
	schedule, err := AreaScheduleFromPayload(c, rawSchedule)
	if err != nil {
		return nil, nest("schedule", err)
	}

	return &Area{client: c, Events: events, Info: info, Schedule: schedule}, nil
}

// FetchAreaInformation fetches the area with the given id through the client
// that built a.
func (a *Area) FetchAreaInformation(ctx context.Context, id string) (*Area, error) {
	return a.client.FetchAreaInformation(ctx, id)
}

// FetchAreaInformation returns events and schedule for the area id, as found
// via SearchAreas or FetchNearbyAreas.
func (c *Client) FetchAreaInformation(ctx context.Context, id string) (*Area, error) {
	if id == "" {
		return nil, fmt.Errorf("area id: %w", ErrMissingParameter)
	}
	q := url.Values{}
	q.Set("id", id)

	var p AreaPayload
	if err := c.get(ctx, "/area", q, &p); err != nil {
		return nil, err
	}
	return AreaFromPayload(c, p)
}
