package esp

import "context"

// NestedAllowance is the quota usage of the token.
type NestedAllowance struct {
	client *Client

	Count int    `json:"count"`
	Limit int    `json:"limit"`
	Kind  string `json:"type"`
}

// NestedAllowanceFromPayload builds a NestedAllowance.
func NestedAllowanceFromPayload(c *Client, p NestedAllowancePayload) (NestedAllowance, error) {
	count, err := required("count", p.Count)
	if err != nil {
		return NestedAllowance{}, err
	}
	limit, err := required("limit", p.Limit)
	if err != nil {
		return NestedAllowance{}, err
	}
	kind, err := required("type", p.Type)
	if err != nil {
		return NestedAllowance{}, err
	}
	return NestedAllowance{client: c, Count: count, Limit: limit, Kind: kind}, nil
}

// Allowance is the body of /api_allowance.
type Allowance struct {
	client *Client

	Allowance NestedAllowance `json:"allowance"`
}

// AllowanceFromPayload builds an Allowance.
func AllowanceFromPayload(c *Client, p AllowancePayload) (*Allowance, error) {
	nested, err := required("allowance", p.Allowance)
	if err != nil {
		return nil, err
	}
	allowance, err := NestedAllowanceFromPayload(c, nested)
	if err != nil {
		return nil, nest("allowance", err)
	}
	return &Allowance{client: c, Allowance: allowance}, nil
}

// FetchAllowance re-fetches the quota through the client that built a.
func (a *Allowance) FetchAllowance(ctx context.Context) (*Allowance, error) {
	return a.client.FetchAllowance(ctx)
}

// FetchAllowance returns the token's API quota usage.
func (c *Client) FetchAllowance(ctx context.Context) (*Allowance, error) {
	var p AllowancePayload
	if err := c.get(ctx, "/api_allowance", nil, &p); err != nil {
		return nil, err
	}
	return AllowanceFromPayload(c, p)
}
