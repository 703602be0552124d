package models

import (
	"fmt"
	"strconv"
	"strings"
)

// Attributes is a provider attribute bag. Values arrive as strings, numbers,
// booleans or nested arrays depending on the dataset.
type Attributes map[string]interface{}

// String returns the trimmed text form of key, or "" when absent.
func (a Attributes) String(key string) string {
	v, ok := a[key]
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		return strconv.FormatBool(t)
	default:
		return strings.TrimSpace(fmt.Sprint(t))
	}
}

// Float parses key as a number. Thousands separators and a leading "$" are tolerated.
func (a Attributes) Float(key string) (float64, bool) {
	v, ok := a[key]
	if !ok || v == nil {
		return 0, false
	}
	switch t := v.(type) {
	case float64:
		return t, true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	}
	s := strings.NewReplacer(",", "", "$", "").Replace(a.String(key))
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// Has reports whether key holds a non-empty value.
func (a Attributes) Has(key string) bool {
	v, ok := a[key]
	if !ok || v == nil {
		return false
	}
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t) != ""
	case []interface{}:
		return len(t) > 0
	case map[string]interface{}:
		return len(t) > 0
	}
	return true
}

// Objects returns key as a list of objects, skipping anything else.
func (a Attributes) Objects(key string) []Attributes {
	raw, ok := a[key].([]interface{})
	if !ok {
		return nil
	}
	out := make([]Attributes, 0, len(raw))
	for _, item := range raw {
		if m, ok := item.(map[string]interface{}); ok {
			out = append(out, Attributes(m))
		}
	}
	return out
}

// Object returns key as a nested bag, nil when it is not an object.
func (a Attributes) Object(key string) Attributes {
	if m, ok := a[key].(map[string]interface{}); ok {
		return Attributes(m)
	}
	return nil
}

type MatchedAddress struct {
	Street  string `json:"street,omitempty"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	Zipcode string `json:"zipcode,omitempty"`
}

type Principal struct {
	SmartyKey      string         `json:"smarty_key"`
	DataSetName    string         `json:"data_set_name,omitempty"`
	MatchedAddress MatchedAddress `json:"matched_address"`
	Attributes     Attributes     `json:"attributes"`
}

type Dataset struct {
	SmartyKey  string     `json:"smarty_key,omitempty"`
	Attributes Attributes `json:"attributes"`
}

// Dataset names attached to a parcel.
const (
	DatasetFinancial    = "property_financial"
	DatasetGeoReference = "geo_reference"
	DatasetGeoRef2020   = "geo_reference_2020"
	DatasetRisk         = "risk"
)

// ParcelRecord is the parcel provider's view of one property, keyed by SmartyKey.
type ParcelRecord struct {
	Principal Principal          `json:"principal"`
	SmartyKey string             `json:"smarty_key"`
	Datasets  map[string]Dataset `json:"datasets,omitempty"`
}

// Attrs returns the principal attribute bag; safe on nil.
func (p *ParcelRecord) Attrs() Attributes {
	if p == nil || p.Principal.Attributes == nil {
		return Attributes{}
	}
	return p.Principal.Attributes
}

// DatasetAttrs returns a secondary dataset's attributes when present.
func (p *ParcelRecord) DatasetAttrs(name string) (Attributes, bool) {
	if p == nil {
		return nil, false
	}
	ds, ok := p.Datasets[name]
	if !ok || ds.Attributes == nil {
		return nil, false
	}
	return ds.Attributes, true
}
