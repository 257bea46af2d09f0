package model

import (
	"encoding/json"
	"errors"
)

// Currency describes one ISO currency as published by the upstream
// currencies endpoint.
type Currency struct {
	Symbol        string   `json:"symbol"`
	Name          string   `json:"name"`
	SymbolNative  string   `json:"symbol_native"`
	DecimalDigits int      `json:"decimal_digits"`
	Rounding      int      `json:"rounding"`
	Code          string   `json:"code"`
	NamePlural    string   `json:"name_plural"`
	Type          string   `json:"type"`
	Countries     []string `json:"countries"`
}

// CurrencyCatalog maps ISO codes to their descriptors. Values handed out by
// the cache are shared and must not be modified.
type CurrencyCatalog struct {
	Data map[string]Currency `json:"data"`
}

var ErrMissingData = errors.New(`payload has no "data" object`)

// DecodeCatalog parses a currencies payload. A payload without a data
// object is rejected.
func DecodeCatalog(b []byte) (*CurrencyCatalog, error) {
	var catalog CurrencyCatalog
	if err := json.Unmarshal(b, &catalog); err != nil {
		return nil, err
	}
	if catalog.Data == nil {
		return nil, ErrMissingData
	}
	return &catalog, nil
}
