package model

import (
	"errors"
	"io"
	"testing"
)

func TestDecodeCatalog(t *testing.T) {
	payload := []byte(`{"data":{"EUR":{"symbol":"€","name":"Euro","symbol_native":"€","decimal_digits":2,"rounding":0,"code":"EUR","name_plural":"Euros","type":"fiat","countries":["DE","FR"]}}}`)

	catalog, err := DecodeCatalog(payload)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	eur, ok := catalog.Data["EUR"]
	if !ok {
		t.Fatal("Expected EUR in catalog")
	}
	if eur.NamePlural != "Euros" || eur.Type != "fiat" || eur.DecimalDigits != 2 || len(eur.Countries) != 2 {
		t.Errorf("Unexpected descriptor: %+v", eur)
	}
}

func TestDecode_RejectsBadPayloads(t *testing.T) {
	testCases := []struct {
		name    string
		payload string
		wantErr error
	}{
		{name: "missing data", payload: `{"message":"Invalid authentication credentials"}`, wantErr: ErrMissingData},
		{name: "null data", payload: `{"data":null}`, wantErr: ErrMissingData},
		{name: "not json", payload: `<html>`},
		{name: "truncated", payload: `{"data":{"USD":`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := DecodeCatalog([]byte(tc.payload)); err == nil {
				t.Error("Expected catalog decode error, got nil")
			} else if tc.wantErr != nil && !errors.Is(err, tc.wantErr) {
				t.Errorf("Expected %v, got %v", tc.wantErr, err)
			}

			if _, err := DecodeRateSet([]byte(tc.payload)); err == nil {
				t.Error("Expected rate set decode error, got nil")
			} else if tc.wantErr != nil && !errors.Is(err, tc.wantErr) {
				t.Errorf("Expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestDecodeRateSet(t *testing.T) {
	set, err := DecodeRateSet([]byte(`{"data":{"INR":{"code":"INR","value":83.12}}}`))
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if r, ok := set.Data["INR"]; !ok || r.Value != 83.12 || r.Code != "INR" {
		t.Errorf("Expected INR 83.12, got %+v (found=%v)", r, ok)
	}
	if _, ok := set.Data["XYZ"]; ok {
		t.Error("Expected XYZ to be absent")
	}
}

func TestErrors_Unwrap(t *testing.T) {
	fetchErr := &FetchError{Op: "historical", URL: "http://x/historical", StatusCode: 500, Err: io.ErrUnexpectedEOF}
	if !errors.Is(fetchErr, io.ErrUnexpectedEOF) {
		t.Error("Expected FetchError to unwrap")
	}

	var wrapped error = &StorageError{Op: "read", Path: "/tmp/x", Err: fetchErr}
	var target *FetchError
	if !errors.As(wrapped, &target) || target.StatusCode != 500 {
		t.Error("Expected errors.As to find nested FetchError")
	}

	cfgErr := &ConfigError{Field: "CURRENCY_API_KEY", Err: errors.New("required")}
	if cfgErr.Error() != "config CURRENCY_API_KEY: required" {
		t.Errorf("Unexpected message: %s", cfgErr.Error())
	}
}
