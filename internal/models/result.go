package models

// ReconcileResult is what a reconciliation hands back to callers.
type ReconcileResult struct {
	Success     bool               `json:"success"`
	Data        FormData           `json:"data"`
	Validation  *ValidationVerdict `json:"validation,omitempty"`
	Registry    *RegistryMatch     `json:"registry"`
	Ownership   OwnershipVerdict   `json:"ownership"`
	Message     string             `json:"message"`
	FieldsCount int                `json:"fieldsCount"`
}

// Messages used in results.
const (
	MessageAddressNotFound = "Address not found or invalid"
	MessageAutoFilledFmt   = "Auto-filled %d fields from property data"
)
