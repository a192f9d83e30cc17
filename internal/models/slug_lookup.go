package models

// SlugLookup is an aggregated count of public slug lookups by outcome
// (hit, miss, expired). Exposed through the metrics collector.
type SlugLookup struct {
	Slug    string `json:"slug"`
	Outcome string `json:"outcome"`
	Count   int64  `json:"count"`
}
