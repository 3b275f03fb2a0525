package handlers

import "github.com/placescout/placescout/places"

type searchPayload struct {
	Places           []placePayload `json:"places"`
	HTMLAttributions []string       `json:"html_attributions"`
	HasAttributions  bool           `json:"has_attributions"`
}

type placePayload struct {
	ID        string             `json:"id"`
	Reference string             `json:"reference"`
	Name      string             `json:"name"`
	Vicinity  string             `json:"vicinity"`
	Location  places.GeoLocation `json:"location"`
	Rating    *float64           `json:"rating,omitempty"`
	Types     []string           `json:"types,omitempty"`
	Icon      string             `json:"icon,omitempty"`

	FormattedAddress         string                    `json:"formatted_address,omitempty"`
	LocalPhoneNumber         string                    `json:"local_phone_number,omitempty"`
	InternationalPhoneNumber string                    `json:"international_phone_number,omitempty"`
	Website                  string                    `json:"website,omitempty"`
	URL                      string                    `json:"url,omitempty"`
	AddressComponents        []places.AddressComponent `json:"address_components,omitempty"`
	HTMLAttributions         []string                  `json:"html_attributions,omitempty"`
}

func summaryPayload(place *places.Place) placePayload {
	return placePayload{
		ID:        place.ID,
		Reference: place.Reference,
		Name:      place.Name,
		Vicinity:  place.Vicinity,
		Location:  place.Location,
		Rating:    place.Rating,
		Types:     place.Types,
		Icon:      place.Icon,
	}
}

// detailPayload flattens a detailed place. The accessor errors are
// unreachable here since GetPlace always returns a detailed place.
func detailPayload(place *places.Place) placePayload {
	payload := summaryPayload(place)
	payload.FormattedAddress, _ = place.FormattedAddress()
	payload.LocalPhoneNumber, _ = place.LocalPhoneNumber()
	payload.InternationalPhoneNumber, _ = place.InternationalPhoneNumber()
	payload.Website, _ = place.Website()
	payload.URL, _ = place.URL()
	payload.AddressComponents, _ = place.AddressComponents()
	payload.HTMLAttributions, _ = place.HTMLAttributions()
	return payload
}
