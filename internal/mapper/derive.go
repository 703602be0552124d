package mapper

import (
	"math"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"cstore-prefill/internal/models"
)

// Applicant types offered by the intake form.
const (
	ApplicantLLC          = "llc"
	ApplicantCorporation  = "corporation"
	ApplicantPartnership  = "partnership"
	ApplicantJointVenture = "jointVenture"
	ApplicantIndividual   = "individual"
	ApplicantOther        = "other"
)

var (
	// Owner fields searched for a corporate owner, in order.
	ownerNameFields = []string{"deed_owner_full_name", "owner_full_name", "deed_owner_last_name"}

	corporateIndicators = []string{"LLC", "INC", "CORP", "CORPORATION", "COMPANY", "LP", "LTD"}

	// Words that mark an owner as some kind of organization when no
	// specific entity form is recognized.
	organizationWords = []string{
		"LLC", "INC", "CORP", "CORPORATION", "COMPANY", "CO", "LTD", "LP", "LLP",
		"TRUST", "ASSOCIATION", "CHURCH", "BANK", "PROPERTIES", "HOLDINGS", "GROUP",
		"PARTNERS", "ENTERPRISES", "INVESTMENTS",
	}

	amountPrinter = message.NewPrinter(language.English)
)

// nameWords splits an owner name into upper-case words. Dots are removed so
// "L.L.C." and "INC." compare as LLC and INC; hyphens separate words so
// "QUIKTRIP-LLC" carries an LLC word.
func nameWords(name string) []string {
	name = strings.ToUpper(name)
	name = strings.ReplaceAll(name, ".", "")
	name = strings.NewReplacer(",", " ", "&", " ", "/", " ", "-", " ").Replace(name)
	return strings.Fields(name)
}

func hasWord(words []string, want ...string) bool {
	for _, w := range words {
		for _, x := range want {
			if w == x {
				return true
			}
		}
	}
	return false
}

// CorporationName returns the first owner name containing a corporate
// indicator anywhere in it, or "". The match is a plain substring test, so
// "INCORPORATED" counts as INC.
func CorporationName(attrs models.Attributes) string {
	for _, field := range ownerNameFields {
		name := attrs.String(field)
		if name == "" {
			continue
		}
		if containsAny(strings.Join(nameWords(name), " "), corporateIndicators...) {
			return name
		}
	}
	return ""
}

// ApplicantType classifies the recorded owner's legal form. Entity forms
// are matched as whole words so "LP" inside "PHILLIPS" is not a partnership.
func ApplicantType(attrs models.Attributes) string {
	owner := attrs.String("deed_owner_full_name")
	if owner == "" {
		owner = attrs.String("owner_full_name")
	}
	words := nameWords(owner)
	upper := strings.Join(words, " ")

	switch {
	case hasWord(words, "LLC") || strings.Contains(upper, "LIMITED LIABILITY"):
		return ApplicantLLC
	case hasWord(words, "CORP", "CORPORATION", "INC", "INCORPORATED"):
		return ApplicantCorporation
	case hasWord(words, "PARTNERSHIP", "LP"):
		return ApplicantPartnership
	case strings.Contains(upper, "JOINT VENTURE"):
		return ApplicantJointVenture
	case ownerOccupied(attrs) || !hasWord(words, organizationWords...):
		return ApplicantIndividual
	}
	return ApplicantOther
}

func ownerOccupied(attrs models.Attributes) bool {
	status := strings.ToUpper(attrs.String("owner_occupancy_status"))
	return status == "Y" || status == "YES" || strings.Contains(status, "OWNER OCCUPIED")
}

// OperationFromLandUse describes the operation from land use and zoning
// keywords. It returns "" when nothing is recognized.
func OperationFromLandUse(attrs models.Attributes) string {
	landUse := attrs.String("land_use_standard")
	if landUse == "" {
		landUse = attrs.String("land_use_code")
	}
	landUse = strings.ToLower(landUse)
	zoning := strings.ToLower(attrs.String("zoning"))

	switch {
	case containsAny(landUse, "gas", "fuel", "service station") || containsAny(zoning, "gas", "fuel", "service"):
		return "Gas Station with Convenience Store"
	case containsAny(landUse, "retail", "commercial", "store"):
		return "Convenience Store"
	case containsAny(landUse, "restaurant", "food"):
		return "Food Service/Restaurant"
	case strings.Contains(landUse, "office"):
		return "Office"
	case containsAny(landUse, "warehouse", "industrial"):
		return "Warehouse/Industrial"
	case strings.Contains(zoning, "commercial"):
		return "Commercial Business"
	}
	return ""
}

// ConstructionType infers an ISO-style construction class, or "".
func ConstructionType(attrs models.Attributes) string {
	landUse := strings.ToLower(attrs.String("land_use_standard"))
	yearBuilt, hasYear := attrs.Float("year_built")

	switch {
	case containsAny(landUse, "frame", "wood"):
		return "Frame"
	case containsAny(landUse, "masonry", "brick", "block"):
		return "Masonry Non-Combustible"
	case containsAny(landUse, "steel", "metal"):
		return "Non-Combustible"
	case hasYear && yearBuilt > 1990 && strings.Contains(landUse, "commercial"):
		return "Non-Combustible"
	case hasYear && yearBuilt > 0 && yearBuilt < 1960:
		return "Frame"
	}
	return ""
}

// TotalSquareFootage prefers building_sqft, then gross_sqft, then the sum
// of the per-floor figures.
func TotalSquareFootage(attrs models.Attributes) (int, bool) {
	for _, key := range []string{"building_sqft", "gross_sqft"} {
		if v, ok := attrs.Float(key); ok && v != 0 {
			return int(v), true
		}
	}

	total := 0
	for _, key := range []string{"1st_floor_sqft", "2nd_floor_sqft", "upper_floors_sqft"} {
		if v, ok := attrs.Float(key); ok {
			total += int(v)
		}
	}
	if total > 0 {
		return total, true
	}
	return 0, false
}

// AdditionalInsured renders the mortgagee line, e.g.
// "FIRST BANK - Mortgagee ($250,000)". It returns "" unless both lender and
// a numeric amount exist. Cents are truncated: 250000.75 renders as $250,000.
func AdditionalInsured(attrs models.Attributes) string {
	lender := attrs.String("lender_name")
	amount, ok := attrs.Float("mortgage_amount")
	if lender == "" || !ok {
		return ""
	}
	return amountPrinter.Sprintf("%s - Mortgagee ($%d)", lender, int64(math.Trunc(amount)))
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
