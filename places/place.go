package places

import (
	apperrors "github.com/placescout/placescout/internal/errors"
)

// Place is one place from a search or detail response. Summary fields are
// always populated; detail fields become readable only after GetDetails has
// promoted the place, and reading them earlier returns an
// attribute_unavailable error. A place constructed from a detail response
// starts out promoted.
//
// The embedded client reference is an association, not ownership: it lets
// the place issue its own detail and check-in calls with the credentials
// that produced it.
type Place struct {
	client *Client

	// ID is the stable identifier for this place. It is valid across
	// sessions and correlates the same real-world place between searches,
	// but cannot be used to fetch data.
	ID string
	// Reference is the opaque token used to fetch detail data or check in.
	// The same place may yield a different reference in another search.
	Reference string
	Name      string
	Vicinity  string
	Location  GeoLocation
	// Rating is nil for places that have none.
	Rating *float64
	Types  []string
	Icon   string

	details *placeData
}

func newPlace(c *Client, data placeData) *Place {
	p := &Place{
		client:    c,
		ID:        data.ID,
		Reference: data.Reference,
		Name:      data.Name,
		Vicinity:  data.Vicinity,
		Location:  data.Geometry.Location,
		Rating:    data.Rating,
		Types:     data.Types,
		Icon:      data.Icon,
	}
	// Only a detail response carries address components; their presence
	// tells a detailed payload apart from a search summary.
	if data.AddressComponents != nil {
		p.details = &data
	}
	return p
}

// Detailed reports whether the place has been promoted to its detailed
// state.
func (p *Place) Detailed() bool {
	return p.details != nil
}

// GetDetails promotes the place to its detailed state with a single detail
// fetch through the owning client, using the client's default sensor flag.
// It is a no-op on an already detailed place.
func (p *Place) GetDetails() error {
	if p.details != nil {
		return nil
	}
	data, err := p.client.fetchPlaceDetails(p.Reference, p.client.sensor)
	if err != nil {
		return err
	}
	p.details = &data
	return nil
}

// CheckIn checks an anonymous user in to this place via the owning client.
// It does not change the place's state.
func (p *Place) CheckIn() error {
	return p.client.CheckIn(p.Reference, p.client.sensor)
}

func (p *Place) detail(attribute string) (*placeData, error) {
	if p.details == nil {
		return nil, apperrors.NewAttributeUnavailableError(attribute)
	}
	return p.details, nil
}

// FormattedAddress returns the human-readable address of this place.
func (p *Place) FormattedAddress() (string, error) {
	d, err := p.detail("formatted_address")
	if err != nil {
		return "", err
	}
	return d.FormattedAddress, nil
}

// LocalPhoneNumber returns the place's phone number in its local format.
func (p *Place) LocalPhoneNumber() (string, error) {
	d, err := p.detail("formatted_phone_number")
	if err != nil {
		return "", err
	}
	return d.FormattedPhoneNumber, nil
}

// InternationalPhoneNumber returns the place's phone number in international
// format.
func (p *Place) InternationalPhoneNumber() (string, error) {
	d, err := p.detail("international_phone_number")
	if err != nil {
		return "", err
	}
	return d.InternationalPhoneNumber, nil
}

// Website returns the authoritative website for this place.
func (p *Place) Website() (string, error) {
	d, err := p.detail("website")
	if err != nil {
		return "", err
	}
	return d.Website, nil
}

// URL returns the official place page URL. Applications must link to or
// embed this page wherever they show detailed results for the place.
func (p *Place) URL() (string, error) {
	d, err := p.detail("url")
	if err != nil {
		return "", err
	}
	return d.URL, nil
}

// AddressComponents returns the structured address of this place.
func (p *Place) AddressComponents() ([]AddressComponent, error) {
	d, err := p.detail("address_components")
	if err != nil {
		return nil, err
	}
	return d.AddressComponents, nil
}

// HTMLAttributions returns the attributions attached to the detail
// response. They must be displayed verbatim.
func (p *Place) HTMLAttributions() ([]string, error) {
	d, err := p.detail("html_attributions")
	if err != nil {
		return nil, err
	}
	return d.HTMLAttributions, nil
}

// HasAttributions reports whether the detail response carried any
// attributions. Unlike the other detail accessors it degrades gracefully,
// returning false for a place still in its summary state.
func (p *Place) HasAttributions() bool {
	if p.details == nil {
		return false
	}
	return len(p.details.HTMLAttributions) > 0
}
