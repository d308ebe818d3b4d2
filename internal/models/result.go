package models

// SearchResponse is the response body for a search request.
type SearchResponse struct {
	Results []*SearchItem `json:"results"`
	Count   int           `json:"count"`
	Query   string        `json:"query"`
}

// TagCount is one entry of the tag cloud: a tag or technology name and the
// number of items carrying it.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}
