package places

import "strconv"

// Response status values the remote API reports. Anything else is an error.
const (
	StatusOK          = "OK"
	StatusZeroResults = "ZERO_RESULTS"
)

const (
	// DefaultSearchRadius is used when a query does not set one, in meters.
	DefaultSearchRadius = 3200
	// MaximumSearchRadius is the largest radius the API accepts. Larger
	// values are clamped before transmission.
	MaximumSearchRadius = 50000
)

// GeoLocation is a latitude/longitude pair.
type GeoLocation struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// String renders the location in the "lat,lng" form the API expects.
func (g GeoLocation) String() string {
	return strconv.FormatFloat(g.Lat, 'f', -1, 64) + "," +
		strconv.FormatFloat(g.Lng, 'f', -1, 64)
}

// Endpoints holds the service URLs the client talks to. Overriding them
// points the client at a mock server in tests.
type Endpoints struct {
	Geocode string
	Search  string
	Detail  string
	// CheckIn is a format string taking the sensor flag and the API key,
	// which the check-in endpoint carries in the URL rather than the body.
	CheckIn string
}

// DefaultEndpoints returns the production Google API URLs.
func DefaultEndpoints() Endpoints {
	return Endpoints{
		Geocode: "https://maps.googleapis.com/maps/api/geocode/json",
		Search:  "https://maps.googleapis.com/maps/api/place/search/json",
		Detail:  "https://maps.googleapis.com/maps/api/place/details/json",
		CheckIn: "https://maps.googleapis.com/maps/api/place/check-in/json?sensor=%s&key=%s",
	}
}

// AddressComponent is one element of a detailed place's structured address.
type AddressComponent struct {
	LongName  string   `json:"long_name"`
	ShortName string   `json:"short_name"`
	Types     []string `json:"types"`
}

type geometry struct {
	Location GeoLocation `json:"location"`
}

// placeData is the wire shape shared by search result entries and the
// detail endpoint's result object. The detail-only fields stay zero for
// summary entries; AddressComponents doubles as the state discriminator.
type placeData struct {
	ID        string   `json:"id"`
	Reference string   `json:"reference"`
	Name      string   `json:"name"`
	Vicinity  string   `json:"vicinity"`
	Geometry  geometry `json:"geometry"`
	Rating    *float64 `json:"rating,omitempty"`
	Types     []string `json:"types,omitempty"`
	Icon      string   `json:"icon,omitempty"`

	FormattedAddress         string             `json:"formatted_address,omitempty"`
	FormattedPhoneNumber     string             `json:"formatted_phone_number,omitempty"`
	InternationalPhoneNumber string             `json:"international_phone_number,omitempty"`
	Website                  string             `json:"website,omitempty"`
	URL                      string             `json:"url,omitempty"`
	AddressComponents        []AddressComponent `json:"address_components,omitempty"`
	HTMLAttributions         []string           `json:"html_attributions,omitempty"`
}

type geocodeResponse struct {
	Status  string `json:"status"`
	Results []struct {
		Geometry geometry `json:"geometry"`
	} `json:"results"`
}

type searchResponse struct {
	Status           string      `json:"status"`
	HTMLAttributions []string    `json:"html_attributions"`
	Results          []placeData `json:"results"`
}

type detailResponse struct {
	Status string    `json:"status"`
	Result placeData `json:"result"`
}

type checkInRequest struct {
	Reference string `json:"reference"`
}

type statusResponse struct {
	Status string `json:"status"`
}
