package places

// SearchResult wraps one search response. Places preserves the order the API
// returned; HTMLAttributions must be displayed verbatim by consumers, per
// the API terms.
type SearchResult struct {
	Places           []*Place
	HTMLAttributions []string
}

func newSearchResult(c *Client, resp searchResponse) *SearchResult {
	result := &SearchResult{
		Places:           make([]*Place, 0, len(resp.Results)),
		HTMLAttributions: resp.HTMLAttributions,
	}
	for _, data := range resp.Results {
		result.Places = append(result.Places, newPlace(c, data))
	}
	return result
}

// HasAttributions reports whether the response carried any attributions.
func (r *SearchResult) HasAttributions() bool {
	return len(r.HTMLAttributions) > 0
}
