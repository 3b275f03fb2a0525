package places

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/url"

	apperrors "github.com/placescout/placescout/internal/errors"
)

// fetch performs a single HTTP round trip and decodes the JSON body into v.
// GET requests carry params query-encoded on the URL; POST requests send
// body verbatim as JSON and use rawurl unchanged. The URL actually requested
// is returned either way so callers can report it in errors.
func (c *Client) fetch(rawurl string, params url.Values, body []byte, usePost bool, v interface{}) (string, error) {
	requestURL := rawurl
	if !usePost && len(params) > 0 {
		requestURL = rawurl + "?" + params.Encode()
	}

	var resp *http.Response
	var err error
	if usePost {
		resp, err = c.httpClient.Post(requestURL, "application/json", bytes.NewReader(body))
	} else {
		resp, err = c.httpClient.Get(requestURL)
	}
	if err != nil {
		return requestURL, apperrors.NewTransportError(requestURL, err)
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return requestURL, apperrors.NewTransportError(requestURL, err)
	}
	return requestURL, nil
}

// validateResponse checks the status field of a decoded response. OK and
// ZERO_RESULTS pass; everything else is a semantic failure from the remote
// service even though the HTTP round trip succeeded.
func validateResponse(url, status string) error {
	if status != StatusOK && status != StatusZeroResults {
		return apperrors.NewAPIError(url, status)
	}
	return nil
}
