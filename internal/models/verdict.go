package models

type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

type PropertyType string

const (
	PropertyUnknown        PropertyType = "unknown"
	PropertyGasStation     PropertyType = "gas_station"
	PropertyVacantLand     PropertyType = "vacant_land"
	PropertyWrongBusiness  PropertyType = "wrong_business_type"
	PropertyOfficeBuilding PropertyType = "office_building"
)

// ValidationVerdict classifies a property from parcel and place data only.
type ValidationVerdict struct {
	IsValid      bool         `json:"isValid"`
	Confidence   Confidence   `json:"confidence"`
	PropertyType PropertyType `json:"propertyType"`
	Warnings     []string     `json:"warnings"`
	Info         []string     `json:"info"`
}

type OwnershipStatus string

const (
	OwnershipOwner   OwnershipStatus = "owner"
	OwnershipTenant  OwnershipStatus = "tenant"
	OwnershipUnknown OwnershipStatus = "unknown"
)

// OwnershipVerdict relates the applicant to the parcel's recorded owner.
type OwnershipVerdict struct {
	Status               OwnershipStatus `json:"status"`
	MatchedName          *string         `json:"matchedName"`
	RegistryBusinessName *string         `json:"registryBusinessName"`
}

// UnknownOwnership is the verdict when no comparison is possible.
func UnknownOwnership() OwnershipVerdict {
	return OwnershipVerdict{Status: OwnershipUnknown}
}
