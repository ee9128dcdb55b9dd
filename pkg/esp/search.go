package esp

import (
	"context"
	"fmt"
	"net/url"
)

// NestedAreaSearch is one area matching a text search.
type NestedAreaSearch struct {
	NestedArea

	ID string `json:"id"`
}

// NestedAreaSearchFromPayload builds a NestedAreaSearch.
func NestedAreaSearchFromPayload(c *Client, p NestedAreaSearchPayload) (NestedAreaSearch, error) {
	id, err := required("id", p.ID)
	if err != nil {
		return NestedAreaSearch{}, err
	}
	area, err := NestedAreaFromPayload(c, NestedAreaPayload{Name: p.Name, Region: p.Region})
	if err != nil {
		return NestedAreaSearch{}, err
	}
	return NestedAreaSearch{NestedArea: area, ID: id}, nil
}

// AreaSearch is the result of a text search, in API order.
type AreaSearch struct {
	client *Client

	Areas []NestedAreaSearch `json:"areas"`
}

// AreaSearchFromPayload builds an AreaSearch.
func AreaSearchFromPayload(c *Client, p AreaSearchPayload) (*AreaSearch, error) {
	raw, err := required("areas", p.Areas)
	if err != nil {
		return nil, err
	}
	areas := make([]NestedAreaSearch, 0, len(raw))
	for i, ra := range raw {
		area, err := NestedAreaSearchFromPayload(c, ra)
		if err != nil {
			return nil, nest(index("areas", i), err)
		}
		areas = append(areas, area)
	}
	return &AreaSearch{client: c, Areas: areas}, nil
}

// FetchAreas runs a new search through the client that built s.
func (s *AreaSearch) FetchAreas(ctx context.Context, text string) (*AreaSearch, error) {
	return s.client.SearchAreas(ctx, text)
}

// SearchAreas finds areas whose name matches text.
func (c *Client) SearchAreas(ctx context.Context, text string) (*AreaSearch, error) {
	if text == "" {
		return nil, fmt.Errorf("search text: %w", ErrMissingParameter)
	}
	q := url.Values{}
	q.Set("text", text)

	var p AreaSearchPayload
	if err := c.get(ctx, "/areas_search", q, &p); err != nil {
		return nil, err
	}
	return AreaSearchFromPayload(c, p)
}
