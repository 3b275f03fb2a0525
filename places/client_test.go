package places

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/placescout/placescout/internal/errors"
)

const searchFixture = `{
	"status": "OK",
	"html_attributions": ["<a>X</a>"],
	"results": [
		{
			"id": "a1",
			"reference": "r1",
			"name": "Cafe X",
			"vicinity": "Main St",
			"geometry": {"location": {"lat": 1.0, "lng": 2.0}}
		}
	]
}`

const detailFixture = `{
	"status": "OK",
	"result": {
		"id": "a1",
		"reference": "r1",
		"name": "Cafe X",
		"vicinity": "Main St",
		"geometry": {"location": {"lat": 1.0, "lng": 2.0}},
		"formatted_address": "1 Main St, Springfield",
		"formatted_phone_number": "020 1234 5678",
		"international_phone_number": "+44 20 1234 5678",
		"website": "https://cafex.example.com",
		"url": "https://plus.google.com/cafex",
		"address_components": [
			{"long_name": "Main St", "short_name": "Main St", "types": ["route"]}
		],
		"html_attributions": ["<a>Detail source</a>"]
	}
}`

const geocodeFixture = `{
	"status": "OK",
	"results": [
		{"geometry": {"location": {"lat": 51.5, "lng": -0.1}}}
	]
}`

// testBackend runs one httptest server standing in for every endpoint and
// records the requests it saw.
type testBackend struct {
	server *httptest.Server

	geocodeBody string
	searchBody  string
	detailBody  string
	checkInBody string

	geocodeCalls int32
	searchCalls  int32
	detailCalls  int32
	checkInCalls int32

	lastSearchQuery  map[string]string
	lastDetailQuery  map[string]string
	lastCheckInQuery map[string]string
	lastCheckInBody  []byte
}

func newTestBackend(t *testing.T) *testBackend {
	t.Helper()
	b := &testBackend{
		geocodeBody: geocodeFixture,
		searchBody:  searchFixture,
		detailBody:  detailFixture,
		checkInBody: `{"status": "OK"}`,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/geocode/json", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&b.geocodeCalls, 1)
		io.WriteString(w, b.geocodeBody)
	})
	mux.HandleFunc("/search/json", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&b.searchCalls, 1)
		b.lastSearchQuery = flattenQuery(r)
		io.WriteString(w, b.searchBody)
	})
	mux.HandleFunc("/details/json", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&b.detailCalls, 1)
		b.lastDetailQuery = flattenQuery(r)
		io.WriteString(w, b.detailBody)
	})
	mux.HandleFunc("/check-in/json", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&b.checkInCalls, 1)
		b.lastCheckInQuery = flattenQuery(r)
		b.lastCheckInBody, _ = io.ReadAll(r.Body)
		io.WriteString(w, b.checkInBody)
	})

	b.server = httptest.NewServer(mux)
	t.Cleanup(b.server.Close)
	return b
}

func (b *testBackend) endpoints() Endpoints {
	return Endpoints{
		Geocode: b.server.URL + "/geocode/json",
		Search:  b.server.URL + "/search/json",
		Detail:  b.server.URL + "/details/json",
		CheckIn: b.server.URL + "/check-in/json?sensor=%s&key=%s",
	}
}

func (b *testBackend) client(cfg ClientConfig) *Client {
	cfg.Endpoints = b.endpoints()
	if cfg.APIKey == "" {
		cfg.APIKey = "test-key"
	}
	return NewClient(cfg)
}

func flattenQuery(r *http.Request) map[string]string {
	flat := make(map[string]string)
	for k, v := range r.URL.Query() {
		flat[k] = v[0]
	}
	return flat
}

func TestSearch_RadiusClamp(t *testing.T) {
	tests := []struct {
		name     string
		radius   int
		expected string
	}{
		{"Above maximum is clamped", 60000, "50000"},
		{"Maximum passes through", 50000, "50000"},
		{"Below maximum passes through", 1000, "1000"},
		{"Zero means default", 0, strconv.Itoa(DefaultSearchRadius)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := newTestBackend(t)
			client := backend.client(ClientConfig{})

			_, err := client.Search(SearchQuery{
				LatLng: &GeoLocation{Lat: 1.0, Lng: 2.0},
				Radius: tt.radius,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.expected, backend.lastSearchQuery["radius"])
		})
	}
}

func TestSearch_RequiresLocationOrLatLng(t *testing.T) {
	backend := newTestBackend(t)
	client := backend.client(ClientConfig{})

	_, err := client.Search(SearchQuery{Keyword: "coffee"})

	require.Error(t, err)
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeInvalidArgument))
	assert.Zero(t, backend.geocodeCalls, "no network call may precede precondition checks")
	assert.Zero(t, backend.searchCalls)
}

func TestSearch_CanonicalFixture(t *testing.T) {
	backend := newTestBackend(t)
	client := backend.client(ClientConfig{})

	result, err := client.Search(SearchQuery{LatLng: &GeoLocation{Lat: 1.0, Lng: 2.0}})
	require.NoError(t, err)

	require.Len(t, result.Places, 1)
	place := result.Places[0]
	assert.Equal(t, "Cafe X", place.Name)
	assert.Equal(t, "r1", place.Reference)
	assert.Equal(t, "a1", place.ID)
	assert.Equal(t, "Main St", place.Vicinity)
	assert.Equal(t, GeoLocation{Lat: 1.0, Lng: 2.0}, place.Location)
	assert.True(t, result.HasAttributions())
	assert.Equal(t, []string{"<a>X</a>"}, result.HTMLAttributions)
}

func TestSearch_PreservesResultOrder(t *testing.T) {
	backend := newTestBackend(t)
	backend.searchBody = `{
		"status": "OK",
		"html_attributions": [],
		"results": [
			{"id": "1", "reference": "ra", "name": "Alpha", "vicinity": "A St", "geometry": {"location": {"lat": 1, "lng": 1}}},
			{"id": "2", "reference": "rb", "name": "Beta", "vicinity": "B St", "geometry": {"location": {"lat": 2, "lng": 2}}},
			{"id": "3", "reference": "rc", "name": "Gamma", "vicinity": "C St", "geometry": {"location": {"lat": 3, "lng": 3}}}
		]
	}`
	client := backend.client(ClientConfig{})

	result, err := client.Search(SearchQuery{LatLng: &GeoLocation{Lat: 0, Lng: 0}})
	require.NoError(t, err)

	require.Len(t, result.Places, 3)
	assert.Equal(t, "Alpha", result.Places[0].Name)
	assert.Equal(t, "Beta", result.Places[1].Name)
	assert.Equal(t, "Gamma", result.Places[2].Name)
	assert.False(t, result.HasAttributions())
}

func TestSearch_BuildsRequestParams(t *testing.T) {
	backend := newTestBackend(t)
	client := backend.client(ClientConfig{APIKey: "k-123"})

	_, err := client.Search(SearchQuery{
		LatLng:  &GeoLocation{Lat: 51.5, Lng: -0.1},
		Keyword: "coffee",
		Name:    "Cafe",
		Types:   []string{"cafe", "restaurant"},
		Sensor:  true,
	})
	require.NoError(t, err)

	q := backend.lastSearchQuery
	assert.Equal(t, "51.5,-0.1", q["location"])
	assert.Equal(t, "coffee", q["keyword"])
	assert.Equal(t, "Cafe", q["name"])
	assert.Equal(t, "cafe|restaurant", q["types"])
	assert.Equal(t, "k-123", q["key"])
	assert.Equal(t, "true", q["sensor"])
}

func TestSearch_OmitsEmptyOptionalParams(t *testing.T) {
	backend := newTestBackend(t)
	client := backend.client(ClientConfig{})

	_, err := client.Search(SearchQuery{LatLng: &GeoLocation{Lat: 1, Lng: 2}})
	require.NoError(t, err)

	q := backend.lastSearchQuery
	_, hasTypes := q["types"]
	_, hasKeyword := q["keyword"]
	_, hasName := q["name"]
	assert.False(t, hasTypes)
	assert.False(t, hasKeyword)
	assert.False(t, hasName)
	assert.Equal(t, "false", q["sensor"])
}

func TestSearch_GeocodesFreeTextLocation(t *testing.T) {
	backend := newTestBackend(t)
	client := backend.client(ClientConfig{})

	result, err := client.Search(SearchQuery{Location: "London, England"})
	require.NoError(t, err)

	assert.EqualValues(t, 1, backend.geocodeCalls)
	assert.EqualValues(t, 1, backend.searchCalls)
	assert.Equal(t, "51.5,-0.1", backend.lastSearchQuery["location"])
	assert.Len(t, result.Places, 1)
}

func TestSearch_APIErrorStatus(t *testing.T) {
	backend := newTestBackend(t)
	backend.searchBody = `{"status": "REQUEST_DENIED", "html_attributions": [], "results": []}`
	client := backend.client(ClientConfig{})

	_, err := client.Search(SearchQuery{LatLng: &GeoLocation{Lat: 1, Lng: 2}})

	require.Error(t, err)
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeAPI))
	assert.Contains(t, err.Error(), "REQUEST_DENIED")
	assert.Contains(t, err.Error(), backend.server.URL)
}

func TestSearch_ZeroResultsIsNotAnError(t *testing.T) {
	backend := newTestBackend(t)
	backend.searchBody = `{"status": "ZERO_RESULTS", "html_attributions": [], "results": []}`
	client := backend.client(ClientConfig{})

	result, err := client.Search(SearchQuery{LatLng: &GeoLocation{Lat: 1, Lng: 2}})

	require.NoError(t, err)
	assert.Empty(t, result.Places)
}

func TestGeocode_Success(t *testing.T) {
	backend := newTestBackend(t)
	client := backend.client(ClientConfig{})

	loc, err := client.Geocode("London, England", false)

	require.NoError(t, err)
	assert.Equal(t, GeoLocation{Lat: 51.5, Lng: -0.1}, loc)
}

func TestGeocode_ZeroResultsEscalates(t *testing.T) {
	backend := newTestBackend(t)
	backend.geocodeBody = `{"status": "ZERO_RESULTS", "results": []}`
	client := backend.client(ClientConfig{})

	_, err := client.Geocode("Nowhereville", false)

	require.Error(t, err)
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeAPI))
	assert.Contains(t, err.Error(), "Nowhereville")
}

func TestGeocode_FailingStatus(t *testing.T) {
	backend := newTestBackend(t)
	backend.geocodeBody = `{"status": "OVER_QUERY_LIMIT", "results": []}`
	client := backend.client(ClientConfig{})

	_, err := client.Geocode("London", false)

	require.Error(t, err)
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeAPI))
	assert.Contains(t, err.Error(), "OVER_QUERY_LIMIT")
}

func TestCheckIn_PostsReference(t *testing.T) {
	backend := newTestBackend(t)
	client := backend.client(ClientConfig{APIKey: "k-9"})

	err := client.CheckIn("r1", true)
	require.NoError(t, err)

	assert.EqualValues(t, 1, backend.checkInCalls)
	assert.Equal(t, "true", backend.lastCheckInQuery["sensor"])
	assert.Equal(t, "k-9", backend.lastCheckInQuery["key"])

	var body checkInRequest
	require.NoError(t, json.Unmarshal(backend.lastCheckInBody, &body))
	assert.Equal(t, "r1", body.Reference)
}

func TestCheckIn_FailingStatus(t *testing.T) {
	backend := newTestBackend(t)
	backend.checkInBody = `{"status": "INVALID_REQUEST"}`
	client := backend.client(ClientConfig{})

	err := client.CheckIn("r1", false)

	require.Error(t, err)
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeAPI))
}

func TestGetPlace_ReturnsDetailedPlace(t *testing.T) {
	backend := newTestBackend(t)
	client := backend.client(ClientConfig{})

	place, err := client.GetPlace("r1", false)
	require.NoError(t, err)

	assert.True(t, place.Detailed())
	assert.Equal(t, "r1", backend.lastDetailQuery["reference"])

	website, err := place.Website()
	require.NoError(t, err)
	assert.Equal(t, "https://cafex.example.com", website)
}

func TestFetch_TransportErrorOnConnectionFailure(t *testing.T) {
	backend := newTestBackend(t)
	endpoints := backend.endpoints()
	backend.server.Close()

	client := NewClient(ClientConfig{APIKey: "k", Endpoints: endpoints})

	_, err := client.Geocode("London", false)

	require.Error(t, err)
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeTransport))
}

func TestFetch_TransportErrorOnInvalidJSON(t *testing.T) {
	backend := newTestBackend(t)
	backend.geocodeBody = `<html>not json</html>`
	client := backend.client(ClientConfig{})

	_, err := client.Geocode("London", false)

	require.Error(t, err)
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeTransport))
}

func TestValidateResponse(t *testing.T) {
	tests := []struct {
		status string
		ok     bool
	}{
		{StatusOK, true},
		{StatusZeroResults, true},
		{"REQUEST_DENIED", false},
		{"OVER_QUERY_LIMIT", false},
		{"INVALID_REQUEST", false},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			err := validateResponse("http://example.com/x", tt.status)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.status)
				assert.Contains(t, err.Error(), "http://example.com/x")
			}
		})
	}
}

func TestGeoLocation_String(t *testing.T) {
	assert.Equal(t, "51.5,-0.1", GeoLocation{Lat: 51.5, Lng: -0.1}.String())
	assert.Equal(t, "1,2", GeoLocation{Lat: 1, Lng: 2}.String())
}

func TestNewClient_Defaults(t *testing.T) {
	client := NewClient(ClientConfig{APIKey: "k", Sensor: true})

	assert.Equal(t, "k", client.APIKey())
	assert.True(t, client.Sensor())
	assert.Equal(t, DefaultEndpoints(), client.endpoints)
	assert.NotNil(t, client.httpClient)
}
