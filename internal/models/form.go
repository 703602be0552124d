package models

import "strings"

// FormData is the flat insurance-form projection keyed by form field name.
type FormData map[string]interface{}

// Set stores value unless it is empty. Empty strings, nil and empty
// slices/maps are dropped so absent data never reaches the form.
func (f FormData) Set(key string, value interface{}) {
	switch v := value.(type) {
	case nil:
		return
	case string:
		if strings.TrimSpace(v) == "" {
			return
		}
	case []string:
		if len(v) == 0 {
			return
		}
	case []map[string]interface{}:
		if len(v) == 0 {
			return
		}
	case map[string]interface{}:
		if len(v) == 0 {
			return
		}
	}
	f[key] = value
}

// String returns key as a string when it is one.
func (f FormData) String(key string) string {
	s, _ := f[key].(string)
	return s
}

// Field names read back by the validator, ownership resolver and orchestrator.
const (
	FieldCorporationName   = "corporationName"
	FieldOwnerFullName     = "ownerFullName"
	FieldDeedOwnerFullName = "deedOwnerFullName"
	FieldDeedOwnerLastName = "deedOwnerLastName"
	FieldOperationDesc     = "operationDescription"
)
