package model

import (
	"encoding/json"
)

// Rate is the value of one currency relative to the upstream base currency.
type Rate struct {
	Code  string  `json:"code"`
	Value float64 `json:"value"`
}

// RateSet holds every rate for a single calendar date. Once fetched for a
// date its content never changes. Values handed out by the cache are shared
// and must not be modified.
type RateSet struct {
	Data map[string]Rate `json:"data"`
}

func DecodeRateSet(b []byte) (*RateSet, error) {
	var set RateSet
	if err := json.Unmarshal(b, &set); err != nil {
		return nil, err
	}
	if set.Data == nil {
		return nil, ErrMissingData
	}
	return &set, nil
}
