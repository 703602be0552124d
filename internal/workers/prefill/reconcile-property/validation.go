package reconcileproperty

import "cstore-prefill/internal/common/validation"

// Blank addresses pass the schema so they surface as ADDRESS_REQUIRED.
var inputSchema = validation.MustCompile("reconcile-property.input", `{
	"type": "object",
	"properties": {
		"address":   {"type": "string"},
		"requestId": {"type": "string"}
	},
	"required": ["address"]
}`)

var outputSchema = validation.MustCompile("reconcile-property.output", `{
	"type": "object",
	"required": ["prefill", "requestId"],
	"properties": {
		"requestId": {"type": "string", "minLength": 1},
		"prefill": {
			"type": "object",
			"required": ["success", "data", "message", "ownership", "fieldsCount"],
			"properties": {
				"success":     {"type": "boolean"},
				"data":        {"type": "object"},
				"message":     {"type": "string"},
				"fieldsCount": {"type": "integer", "minimum": 0},
				"validation": {
					"type": "object",
					"required": ["isValid", "confidence", "propertyType", "warnings", "info"],
					"properties": {
						"confidence":   {"enum": ["high", "medium", "low"]},
						"propertyType": {"enum": ["unknown", "gas_station", "vacant_land", "wrong_business_type", "office_building"]},
						"warnings":     {"type": "array", "items": {"type": "string"}},
						"info":         {"type": "array", "items": {"type": "string"}}
					}
				},
				"ownership": {
					"type": "object",
					"required": ["status"],
					"properties": {
						"status": {"enum": ["owner", "tenant", "unknown"]}
					}
				}
			}
		}
	}
}`)
