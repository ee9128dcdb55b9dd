package esp

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAPI serves canned bodies per path and records what it saw.
type fakeAPI struct {
	bodies map[string]string
	hits   atomic.Int32

	mu      sync.Mutex
	lastReq *http.Request
}

func newFakeAPI(t *testing.T, bodies map[string]string) (*fakeAPI, *httptest.Server) {
	t.Helper()
	f := &fakeAPI{bodies: bodies}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.hits.Add(1)
		f.mu.Lock()
		f.lastReq = r.Clone(context.Background())
		f.mu.Unlock()

		body, ok := f.bodies[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error": "not found"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return f, srv
}

func (f *fakeAPI) last() *http.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastReq
}

func TestFetchAreaInformation(t *testing.T) {
	api, srv := newFakeAPI(t, map[string]string{"/area": areaBody})
	c := NewClient("abc", WithBaseURL(srv.URL))

	area, err := c.FetchAreaInformation(context.Background(), "capetown-1-A")
	require.NoError(t, err)

	assert.Empty(t, area.Events)
	assert.Equal(t, "Area A", area.Info.Name)
	assert.Equal(t, "Cape Town", area.Info.Region)
	assert.Equal(t, "eskom", area.Schedule.Source)
	assert.Empty(t, area.Schedule.Days)

	req := api.last()
	assert.Equal(t, http.MethodGet, req.Method)
	assert.Equal(t, "abc", req.Header.Get("Token"))
	assert.Equal(t, "capetown-1-A", req.URL.Query().Get("id"))
}

func TestFetchAreaInformationRequiresID(t *testing.T) {
	api, srv := newFakeAPI(t, map[string]string{"/area": areaBody})
	c := NewClient("abc", WithBaseURL(srv.URL))

	_, err := c.FetchAreaInformation(context.Background(), "")
	assert.ErrorIs(t, err, ErrMissingParameter)
	assert.Zero(t, api.hits.Load())
}

func TestFetchStatusUnwrapsEnvelope(t *testing.T) {
	_, srv := newFakeAPI(t, map[string]string{"/status": statusBody})
	c := NewClient("abc", WithBaseURL(srv.URL))

	status, err := c.FetchStatus(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Cape Town", status.CapeTown.Name)
	assert.Equal(t, "National", status.Eskom.Name)
	assert.Equal(t, "1", status.Eskom.Stage)
	require.Len(t, status.Eskom.NextStages, 2)
	assert.Equal(t, 2, status.Eskom.NextStages[0].Stage)
	assert.Equal(t, 0, status.Eskom.NextStages[1].Stage)
	assert.Equal(t, 2, status.CapeTown.NextStages[0].Stage)

	regions := status.Regions()
	assert.Equal(t, "National", regions[RegionEskom].Name)
	assert.Equal(t, "Cape Town", regions[RegionCapeTown].Name)
}

func TestFetchAllowanceDecodesEnvelope(t *testing.T) {
	_, srv := newFakeAPI(t, map[string]string{"/api_allowance": allowanceBody})
	c := NewClient("abc", WithBaseURL(srv.URL))

	allowance, err := c.FetchAllowance(context.Background())
	require.NoError(t, err)
	assert.Equal(t, NestedAllowance{client: c, Count: 3, Limit: 50, Kind: "daily"}, allowance.Allowance)
}

func TestFetchNearbyTopicsDecodesEnvelope(t *testing.T) {
	api, srv := newFakeAPI(t, map[string]string{"/topics_nearby": topicsBody})
	c := NewClient("abc", WithBaseURL(srv.URL))

	topics, err := c.FetchNearbyTopics(context.Background(), -26.0269658, 28.0137339)
	require.NoError(t, err)
	require.Len(t, topics.Topics, 2)
	assert.Equal(t, "Power out in Fourways", topics.Topics[0].Body)

	q := api.last().URL.Query()
	assert.Equal(t, "-26.0269658", q.Get("lat"))
	assert.Equal(t, "28.0137339", q.Get("lon"))
}

func TestFetchNearbyAreas(t *testing.T) {
	_, srv := newFakeAPI(t, map[string]string{"/areas_nearby": nearbyAreasBody})
	c := NewClient("abc", WithBaseURL(srv.URL))

	nearby, err := c.FetchNearbyAreas(context.Background(), -33.9, 18.4)
	require.NoError(t, err)
	require.Len(t, nearby.Areas, 3)
	assert.Equal(t, "A", nearby.Areas[0].Name)
	assert.Equal(t, "C", nearby.Areas[2].Name)
}

func TestSearchAreas(t *testing.T) {
	api, srv := newFakeAPI(t, map[string]string{"/areas_search": searchBody})
	c := NewClient("abc", WithBaseURL(srv.URL))

	search, err := c.SearchAreas(context.Background(), "fourways")
	require.NoError(t, err)
	require.Len(t, search.Areas, 2)
	assert.Equal(t, "fourways", api.last().URL.Query().Get("text"))

	_, err = c.SearchAreas(context.Background(), "")
	assert.ErrorIs(t, err, ErrMissingParameter)
}

func TestRecordsRefetchThroughOwningClient(t *testing.T) {
	api, srv := newFakeAPI(t, map[string]string{
		"/area":          areaBody,
		"/status":        statusBody,
		"/api_allowance": allowanceBody,
		"/areas_search":  searchBody,
		"/areas_nearby":  nearbyAreasBody,
		"/topics_nearby": topicsBody,
	})
	c := NewClient("abc", WithBaseURL(srv.URL))
	ctx := context.Background()

	area, err := c.FetchAreaInformation(ctx, "capetown-1-A")
	require.NoError(t, err)
	again, err := area.FetchAreaInformation(ctx, "capetown-1-B")
	require.NoError(t, err)
	assert.Equal(t, area.Info, again.Info)
	assert.Equal(t, "capetown-1-B", api.last().URL.Query().Get("id"))

	status, err := c.FetchStatus(ctx)
	require.NoError(t, err)
	_, err = status.FetchStatus(ctx)
	require.NoError(t, err)

	allowance, err := c.FetchAllowance(ctx)
	require.NoError(t, err)
	_, err = allowance.FetchAllowance(ctx)
	require.NoError(t, err)

	search, err := c.SearchAreas(ctx, "fourways")
	require.NoError(t, err)
	_, err = search.FetchAreas(ctx, "sandton")
	require.NoError(t, err)
	assert.Equal(t, "sandton", api.last().URL.Query().Get("text"))

	nearby, err := c.FetchNearbyAreas(ctx, 1, 2)
	require.NoError(t, err)
	_, err = nearby.FetchNearbyAreas(ctx, 3, 4)
	require.NoError(t, err)

	topics, err := c.FetchNearbyTopics(ctx, 1, 2)
	require.NoError(t, err)
	_, err = topics.FetchNearbyTopics(ctx, 3, 4)
	require.NoError(t, err)

	assert.EqualValues(t, 12, api.hits.Load())
}

func TestRequestTokenOverride(t *testing.T) {
	api, srv := newFakeAPI(t, map[string]string{"/status": statusBody})
	c := NewClient("abc", WithBaseURL(srv.URL))

	_, err := c.Request(context.Background(), http.MethodGet, "/status", nil, WithToken("xyz"))
	require.NoError(t, err)
	assert.Equal(t, "xyz", api.last().Header.Get("Token"))

	_, err = c.Request(context.Background(), http.MethodGet, "/status", nil, WithToken(""))
	require.NoError(t, err)
	assert.Equal(t, "abc", api.last().Header.Get("Token"))
}

func TestRequestWithoutToken(t *testing.T) {
	api, srv := newFakeAPI(t, map[string]string{"/status": statusBody})
	c := NewClient("", WithBaseURL(srv.URL))

	_, err := c.FetchStatus(context.Background())
	assert.ErrorIs(t, err, ErrAuthenticationMissing)
	assert.Zero(t, api.hits.Load())

	_, err = c.Request(context.Background(), http.MethodGet, "/status", nil, WithToken("xyz"))
	assert.NoError(t, err)
}

func TestRequestNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error": "Invalid token"}`))
	}))
	defer srv.Close()
	c := NewClient("bad", WithBaseURL(srv.URL))

	_, err := c.FetchStatus(context.Background())
	var re *ResponseError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, http.StatusForbidden, re.StatusCode)
	assert.Equal(t, "Invalid token", re.Message)
	assert.Equal(t, "/status", re.Path)
}

func TestRequestNonSuccessPlainBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream exploded", http.StatusBadGateway)
	}))
	defer srv.Close()
	c := NewClient("abc", WithBaseURL(srv.URL))

	_, err := c.Request(context.Background(), http.MethodGet, "/status", nil)
	var re *ResponseError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, http.StatusBadGateway, re.StatusCode)
	assert.Equal(t, "upstream exploded", re.Message)
}

func TestRequestInvalidJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>maintenance</html>`))
	}))
	defer srv.Close()
	c := NewClient("abc", WithBaseURL(srv.URL))

	_, err := c.FetchStatus(context.Background())
	assert.ErrorIs(t, err, ErrInvalidJSON)
	var re *ResponseError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, http.StatusOK, re.StatusCode)
}

func TestRequestTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()
	c := NewClient("abc", WithBaseURL(url))

	_, err := c.FetchStatus(context.Background())
	var te *TransportError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, "/status", te.Path)
}

func TestRequestCancelledContext(t *testing.T) {
	_, srv := newFakeAPI(t, map[string]string{"/status": statusBody})
	c := NewClient("abc", WithBaseURL(srv.URL))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.FetchStatus(ctx)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestDecodeFailureReturnsNoRecord(t *testing.T) {
	_, srv := newFakeAPI(t, map[string]string{"/area": `{"events": [], "info": {"name": "A"}, "schedule": {"days": [], "source": "eskom"}}`})
	c := NewClient("abc", WithBaseURL(srv.URL))

	area, err := c.FetchAreaInformation(context.Background(), "x")
	assert.Nil(t, area)
	var de *DecodeError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "info.region", de.Field)
}

func TestConcurrentFetchSharesSession(t *testing.T) {
	api, srv := newFakeAPI(t, map[string]string{"/status": statusBody, "/area": areaBody})
	c := NewClient("abc", WithBaseURL(srv.URL))

	var created atomic.Int32
	c.newSession = func() *http.Client {
		created.Add(1)
		return srv.Client()
	}

	const workers = 8
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			var err error
			if i%2 == 0 {
				_, err = c.FetchStatus(context.Background())
			} else {
				_, err = c.FetchAreaInformation(context.Background(), "capetown-1-A")
			}
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
	assert.EqualValues(t, 1, created.Load())
	assert.EqualValues(t, workers, api.hits.Load())
}

func TestWithHTTPClient(t *testing.T) {
	_, srv := newFakeAPI(t, map[string]string{"/status": statusBody})
	hc := srv.Client()
	c := NewClient("abc", WithBaseURL(srv.URL+"/"), WithHTTPClient(hc))

	_, err := c.FetchStatus(context.Background())
	require.NoError(t, err)
	assert.Same(t, hc, c.httpClient())
}
