// Package places is a client for the Google Places and Geocoding web APIs.
// A Client issues searches, check-ins and detail lookups; search results
// come back as summary Place values that lazily promote themselves to the
// detailed state on request.
package places

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	apperrors "github.com/placescout/placescout/internal/errors"
)

// ClientConfig holds the settings a Client is constructed with.
type ClientConfig struct {
	// APIKey is the Google API key sent with every places request.
	APIKey string
	// Sensor is the default sensor flag, used for calls a Place issues
	// through its owning client (detail fetch, check-in).
	Sensor bool
	// Endpoints overrides the service URLs; zero value means production.
	Endpoints Endpoints
	// HTTPClient overrides the HTTP client; nil gets a 10s-timeout default.
	HTTPClient *http.Client
	// Logger overrides the logger; nil gets the logrus standard logger.
	Logger logrus.FieldLogger
}

// Client talks to the places service. It holds no per-call state and is safe
// to share across goroutines.
type Client struct {
	apiKey     string
	sensor     bool
	endpoints  Endpoints
	httpClient *http.Client
	log        logrus.FieldLogger
}

// NewClient creates a places client from the given configuration.
func NewClient(cfg ClientConfig) *Client {
	c := &Client{
		apiKey:     cfg.APIKey,
		sensor:     cfg.Sensor,
		endpoints:  cfg.Endpoints,
		httpClient: cfg.HTTPClient,
		log:        cfg.Logger,
	}
	if c.endpoints == (Endpoints{}) {
		c.endpoints = DefaultEndpoints()
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	if c.log == nil {
		c.log = logrus.StandardLogger()
	}
	return c
}

// APIKey returns the key the client was constructed with.
func (c *Client) APIKey() string {
	return c.apiKey
}

// Sensor returns the client's default sensor flag.
func (c *Client) Sensor() bool {
	return c.sensor
}

// Geocode resolves a human-readable location such as "London, England" to
// coordinates. A location the service cannot resolve is an error here, even
// though ZERO_RESULTS passes generic validation for other calls.
func (c *Client) Geocode(location string, sensor bool) (GeoLocation, error) {
	params := url.Values{}
	params.Set("address", location)
	params.Set("sensor", strconv.FormatBool(sensor))

	var resp geocodeResponse
	requestURL, err := c.fetch(c.endpoints.Geocode, params, nil, false, &resp)
	if err != nil {
		return GeoLocation{}, err
	}
	if err := validateResponse(requestURL, resp.Status); err != nil {
		return GeoLocation{}, err
	}
	if resp.Status == StatusZeroResults || len(resp.Results) == 0 {
		return GeoLocation{}, apperrors.NewGeocodeError(location)
	}

	loc := resp.Results[0].Geometry.Location
	c.log.WithFields(logrus.Fields{
		"operation": "geocode",
		"location":  location,
	}).Debug("location resolved")
	return loc, nil
}

// SearchQuery describes one search call. Exactly one of Location or LatLng
// must be set. A zero Radius means DefaultSearchRadius.
type SearchQuery struct {
	Location string
	LatLng   *GeoLocation
	Keyword  string
	Radius   int
	Sensor   bool
	Types    []string
	Name     string
}

// Search performs a places search around a location. A free-text Location is
// geocoded first, so such calls cost two round trips.
func (c *Client) Search(q SearchQuery) (*SearchResult, error) {
	if q.Location == "" && q.LatLng == nil {
		return nil, apperrors.NewInvalidArgumentError("one of Location or LatLng must be set")
	}

	latLng := GeoLocation{}
	if q.LatLng != nil {
		latLng = *q.LatLng
	} else {
		resolved, err := c.Geocode(q.Location, q.Sensor)
		if err != nil {
			return nil, err
		}
		latLng = resolved
	}

	radius := q.Radius
	if radius == 0 {
		radius = DefaultSearchRadius
	}
	if radius > MaximumSearchRadius {
		radius = MaximumSearchRadius
	}

	params := url.Values{}
	params.Set("location", latLng.String())
	params.Set("radius", strconv.Itoa(radius))
	if len(q.Types) > 0 {
		params.Set("types", strings.Join(q.Types, "|"))
	}
	if q.Keyword != "" {
		params.Set("keyword", q.Keyword)
	}
	if q.Name != "" {
		params.Set("name", q.Name)
	}
	params.Set("key", c.apiKey)
	params.Set("sensor", strconv.FormatBool(q.Sensor))

	var resp searchResponse
	requestURL, err := c.fetch(c.endpoints.Search, params, nil, false, &resp)
	if err != nil {
		return nil, err
	}
	if err := validateResponse(requestURL, resp.Status); err != nil {
		return nil, err
	}

	c.log.WithFields(logrus.Fields{
		"operation": "search",
		"results":   len(resp.Results),
	}).Debug("search completed")
	return newSearchResult(c, resp), nil
}

// CheckIn registers an anonymous check-in against the place identified by
// reference. Each call registers a separate check-in; the remote API offers
// no deduplication and neither does this client.
func (c *Client) CheckIn(reference string, sensor bool) error {
	body, err := json.Marshal(checkInRequest{Reference: reference})
	if err != nil {
		return apperrors.NewInternalError("encoding check-in request", err)
	}

	endpoint := fmt.Sprintf(c.endpoints.CheckIn, strconv.FormatBool(sensor), c.apiKey)
	var resp statusResponse
	requestURL, err := c.fetch(endpoint, nil, body, true, &resp)
	if err != nil {
		return err
	}
	return validateResponse(requestURL, resp.Status)
}

// GetPlace fetches full detail data for a reference and returns the place in
// its detailed state.
func (c *Client) GetPlace(reference string, sensor bool) (*Place, error) {
	data, err := c.fetchPlaceDetails(reference, sensor)
	if err != nil {
		return nil, err
	}
	return newPlace(c, data), nil
}

func (c *Client) fetchPlaceDetails(reference string, sensor bool) (placeData, error) {
	params := url.Values{}
	params.Set("reference", reference)
	params.Set("sensor", strconv.FormatBool(sensor))
	params.Set("key", c.apiKey)

	var resp detailResponse
	requestURL, err := c.fetch(c.endpoints.Detail, params, nil, false, &resp)
	if err != nil {
		return placeData{}, err
	}
	if err := validateResponse(requestURL, resp.Status); err != nil {
		return placeData{}, err
	}
	return resp.Result, nil
}
