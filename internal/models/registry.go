package models

// LicenseRecord is one tobacco/retail license row.
// MatchPriority is 1 for a full address pattern hit and 2 for a street-only hit.
type LicenseRecord struct {
	ID                string `json:"id"`
	ListFormatName    string `json:"list_format_name"`
	ListFormatAddress string `json:"list_format_address"`
	LicenseID         string `json:"license_id,omitempty"`
	LicenseType       string `json:"tbl_license_type,omitempty"`
	CreatedAt         string `json:"created_at,omitempty"`
	MatchPriority     int    `json:"match_priority"`
}

// BusinessRecord is one corporate registry row matched by business name.
type BusinessRecord struct {
	BusinessName                   string `json:"business_name"`
	BusinessStatus                 string `json:"business_status,omitempty"`
	BusinessType                   string `json:"business_type,omitempty"`
	NAICSCode                      string `json:"naics_code,omitempty"`
	NAICSSubCode                   string `json:"naics_sub_code,omitempty"`
	FormationDate                  string `json:"formation_date,omitempty"`
	RegisteredAgentName            string `json:"registered_agent_name,omitempty"`
	RegisteredAgentPhysicalAddress string `json:"registered_agent_physical_address,omitempty"`
	ControlNumber                  string `json:"control_number,omitempty"`
	MatchPriority                  int    `json:"match_priority"`
	YearsAtLocation                *int   `json:"yearsAtLocation"`
}

// RegistryMatch pairs the best license row with its corporate record, if any.
type RegistryMatch struct {
	License  *LicenseRecord  `json:"license"`
	Business *BusinessRecord `json:"business"`
}

// ComparisonName is the registry business name, falling back to the license name.
func (m *RegistryMatch) ComparisonName() string {
	if m == nil {
		return ""
	}
	if m.Business != nil && m.Business.BusinessName != "" {
		return m.Business.BusinessName
	}
	if m.License != nil {
		return m.License.ListFormatName
	}
	return ""
}
