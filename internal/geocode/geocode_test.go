package geocode

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nominatim(t *testing.T, status int, body string, seen *url.Values) *Geocoder {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if seen != nil {
			*seen = r.URL.Query()
		}
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return New(srv.URL + "/")
}

func TestSearch(t *testing.T) {
	var seen url.Values
	g := nominatim(t, http.StatusOK, `[{"lat": "-26.1076", "lon": "28.0567", "display_name": "long name",
		"address": {"house_number": "5", "road": "Rivonia Road", "suburb": "Sandown", "city": "Sandton", "state": "Gauteng"}}]`, &seen)

	res, err := g.Search(context.Background(), "5 Rivonia Road Sandton")
	require.NoError(t, err)
	require.NotNil(t, res)

	assert.Equal(t, "5 Rivonia Road, Sandown, Sandton, Gauteng", res.DisplayName)
	assert.InDelta(t, -26.1076, res.Latitude, 1e-9)
	assert.InDelta(t, 28.0567, res.Longitude, 1e-9)
	assert.Equal(t, "za", seen.Get("countrycodes"))
	assert.Equal(t, "5 Rivonia Road Sandton", seen.Get("q"))
}

func TestSearchFallsBackToDisplayName(t *testing.T) {
	g := nominatim(t, http.StatusOK, `[{"lat": "-33.9", "lon": "18.4", "display_name": "Table Mountain", "address": {}}]`, nil)

	res, err := g.Search(context.Background(), "table mountain")
	require.NoError(t, err)
	assert.Equal(t, "Table Mountain", res.DisplayName)
}

func TestSearchNoResults(t *testing.T) {
	g := nominatim(t, http.StatusOK, `[]`, nil)

	res, err := g.Search(context.Background(), "nowhere")
	require.NoError(t, err)
	assert.Nil(t, res)
}

func TestSearchErrors(t *testing.T) {
	_, err := nominatim(t, http.StatusTooManyRequests, ``, nil).Search(context.Background(), "x")
	assert.ErrorContains(t, err, "status 429")

	_, err = nominatim(t, http.StatusOK, `[{"lat": "north", "lon": "1"}]`, nil).Search(context.Background(), "x")
	assert.ErrorContains(t, err, "parse lat")
}
