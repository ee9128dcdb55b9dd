package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// DefaultBaseURL is the public Nominatim instance.
const DefaultBaseURL = "https://nominatim.openstreetmap.org"

// Result holds a geocoding result.
type Result struct {
	DisplayName string
	Latitude    float64
	Longitude   float64
}

type nominatimResult struct {
	Lat     string        `json:"lat"`
	Lon     string        `json:"lon"`
	Display string        `json:"display_name"`
	Address nominatimAddr `json:"address"`
}

type nominatimAddr struct {
	HouseNumber string `json:"house_number"`
	Road        string `json:"road"`
	Suburb      string `json:"suburb"`
	City        string `json:"city"`
	Town        string `json:"town"`
	Village     string `json:"village"`
	Province    string `json:"state"`
}

// Geocoder resolves South African addresses to coordinates.
type Geocoder struct {
	baseURL string
	http    *http.Client
}

// New returns a Geocoder for baseURL, or DefaultBaseURL when empty.
func New(baseURL string) *Geocoder {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Geocoder{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// Search queries Nominatim for the given address string.
// Returns nil (no error) if nothing was found.
func (g *Geocoder) Search(ctx context.Context, query string) (*Result, error) {
	q := url.Values{}
	q.Set("q", query)
	q.Set("format", "json")
	q.Set("limit", "1")
	q.Set("addressdetails", "1")
	q.Set("countrycodes", "za")
	q.Set("accept-language", "en")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"/search?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "esp-monitor/1.0")

	resp, err := g.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("nominatim request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("nominatim returned status %d", resp.StatusCode)
	}

	var results []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("decode nominatim response: %w", err)
	}

	if len(results) == 0 {
		return nil, nil
	}

	r := results[0]

	lat, err := strconv.ParseFloat(r.Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("parse lat: %w", err)
	}
	lon, err := strconv.ParseFloat(r.Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("parse lon: %w", err)
	}

	name := formatAddress(r.Address)
	if name == "" {
		name = r.Display
	}

	return &Result{
		DisplayName: name,
		Latitude:    lat,
		Longitude:   lon,
	}, nil
}

// formatAddress builds a short human-readable address from structured fields.
func formatAddress(a nominatimAddr) string {
	// Pick the settlement name: city > town > village.
	city := a.City
	if city == "" {
		city = a.Town
	}
	if city == "" {
		city = a.Village
	}

	var parts []string

	if a.Road != "" {
		street := a.Road
		if a.HouseNumber != "" {
			street = a.HouseNumber + " " + street
		}
		parts = append(parts, street)
	}
	if a.Suburb != "" && a.Suburb != city {
		parts = append(parts, a.Suburb)
	}
	if city != "" {
		parts = append(parts, city)
	}
	if a.Province != "" {
		parts = append(parts, a.Province)
	}

	return strings.Join(parts, ", ")
}
