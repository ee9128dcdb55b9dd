package esp

import "context"

// NestedNearbyArea is one area close to a coordinate.
type NestedNearbyArea struct {
	client *Client

	Count  int    `json:"count"`
	ID     string `json:"id"`
	Name   string `json:"name"`
	Region string `json:"region"`
}

// NestedNearbyAreaFromPayload builds a NestedNearbyArea.
func NestedNearbyAreaFromPayload(c *Client, p NestedNearbyAreaPayload) (NestedNearbyArea, error) {
	count, err := required("count", p.Count)
	if err != nil {
		return NestedNearbyArea{}, err
	}
	id, err := required("id", p.ID)
	if err != nil {
		return NestedNearbyArea{}, err
	}
	name, err := required("name", p.Name)
	if err != nil {
		return NestedNearbyArea{}, err
	}
	region, err := required("region", p.Region)
	if err != nil {
		return NestedNearbyArea{}, err
	}
	return NestedNearbyArea{client: c, Count: count, ID: id, Name: name, Region: region}, nil
}

// NearbyArea lists areas around a coordinate, in API order.
type NearbyArea struct {
	client *Client

	Areas []NestedNearbyArea `json:"areas"`
}

// NearbyAreaFromPayload builds a NearbyArea.
func NearbyAreaFromPayload(c *Client, p NearbyAreaPayload) (*NearbyArea, error) {
	raw, err := required("areas", p.Areas)
	if err != nil {
		return nil, err
	}
	areas := make([]NestedNearbyArea, 0, len(raw))
	for i, ra := range raw {
		area, err := NestedNearbyAreaFromPayload(c, ra)
		if err != nil {
			return nil, nest(index("areas", i), err)
		}
		areas = append(areas, area)
	}
	return &NearbyArea{client: c, Areas: areas}, nil
}

// FetchNearbyAreas looks up areas around lat/lon through the client that
// built n.
func (n *NearbyArea) FetchNearbyAreas(ctx context.Context, lat, lon float64) (*NearbyArea, error) {
	return n.client.FetchNearbyAreas(ctx, lat, lon)
}

// FetchNearbyAreas returns the areas around lat/lon.
func (c *Client) FetchNearbyAreas(ctx context.Context, lat, lon float64) (*NearbyArea, error) {
	var p NearbyAreaPayload
	if err := c.get(ctx, "/areas_nearby", coordinates(lat, lon), &p); err != nil {
		return nil, err
	}
	return NearbyAreaFromPayload(c, p)
}
