// Package validator classifies a property as an operating fuel retailer or
// not, from parcel and place data only.
package validator

import (
	"fmt"
	"strings"

	"cstore-prefill/internal/models"
)

// minOperatingSqft is the building size at or below which a parcel is
// treated as possibly vacant.
const minOperatingSqft = 10

const (
	maxTypesListed      = 5
	maxNeighboursListed = 3
)

// facts is what the rules read, extracted once from the records.
type facts struct {
	sqft         float64
	landUse      string
	landUseGroup string
	place        *models.PlaceRecord
	gasStation   bool
}

func (f facts) vacantLandUse() bool {
	return strings.Contains(strings.ToLower(f.landUse), "vacant")
}

func (f facts) lowSqft() bool {
	return f.sqft <= minOperatingSqft
}

// rule inspects the facts and adjusts the verdict in place.
type rule struct {
	name  string
	apply func(f facts, v *models.ValidationVerdict)
}

// rules run in order; later rules may overwrite propertyType and
// confidence set by earlier ones while warnings accumulate.
var rules = []rule{
	{name: "low_square_footage", apply: lowSquareFootage},
	{name: "vacant_land_use", apply: vacantLandUse},
	{name: "business_presence", apply: businessPresence},
	{name: "vacant_without_station", apply: vacantWithoutStation},
	{name: "vacant_use_without_station", apply: vacantUseWithoutStation},
	{name: "office_building", apply: officeBuilding},
}

// Evaluate folds the rule list over a fresh verdict. Inputs are not modified.
func Evaluate(parcel *models.ParcelRecord, place *models.PlaceRecord) models.ValidationVerdict {
	f := extract(parcel, place)

	v := models.ValidationVerdict{
		IsValid:      true,
		Confidence:   models.ConfidenceHigh,
		PropertyType: models.PropertyUnknown,
		Warnings:     []string{},
		Info:         []string{},
	}
	for _, r := range rules {
		r.apply(f, &v)
	}
	return v
}

func extract(parcel *models.ParcelRecord, place *models.PlaceRecord) facts {
	attrs := parcel.Attrs()
	sqft, _ := attrs.Float("building_sqft")
	return facts{
		sqft:         sqft,
		landUse:      attrs.String("land_use_standard"),
		landUseGroup: attrs.String("land_use_group"),
		place:        place,
		gasStation:   place != nil && place.IsGasStation,
	}
}

func lowSquareFootage(f facts, v *models.ValidationVerdict) {
	if f.lowSqft() {
		v.Warnings = append(v.Warnings, "Very low square footage detected - this may be vacant land")
		v.Confidence = models.ConfidenceLow
	}
}

func vacantLandUse(f facts, v *models.ValidationVerdict) {
	if f.vacantLandUse() {
		v.Warnings = append(v.Warnings, "Property classified as VACANT - not an operating business")
		v.PropertyType = models.PropertyVacantLand
		v.Confidence = models.ConfidenceLow
		v.IsValid = false
	}
}

func businessPresence(f facts, v *models.ValidationVerdict) {
	switch {
	case f.place == nil:
		v.Warnings = append(v.Warnings, "Unable to verify business information via Google Maps")
		v.Confidence = models.ConfidenceLow

	case f.gasStation:
		v.PropertyType = models.PropertyGasStation
		v.Confidence = models.ConfidenceHigh
		if f.place.DataSource == models.PlaceSourceNearby {
			v.Info = append(v.Info, fmt.Sprintf(
				"Note: Using nearby gas station data (%s) instead of primary address business", businessName(f.place)))
		}

	case f.place.Business != nil:
		b := f.place.Business
		v.Warnings = append(v.Warnings,
			fmt.Sprintf("CRITICAL: Google Maps shows \"%s\" - NOT a gas station/convenience store!", businessName(f.place)),
			"Business types detected: "+strings.Join(firstN(b.Types, maxTypesListed), ", "))

		if nearby := f.place.AllBusinessesNearby; len(nearby) > 0 {
			names := make([]string, 0, maxNeighboursListed)
			for _, n := range nearby[:min(len(nearby), maxNeighboursListed)] {
				names = append(names, n.Name)
			}
			more := ""
			if len(nearby) > maxNeighboursListed {
				more = "..."
			}
			v.Warnings = append(v.Warnings, "Businesses at this location: "+strings.Join(names, ", ")+more)
		}

		use := f.landUseGroup
		if use == "" {
			use = f.landUse
		}
		if use == "" {
			use = "unknown type"
		}
		v.Warnings = append(v.Warnings, "Property land use: "+use)
		v.PropertyType = models.PropertyWrongBusiness
		v.Confidence = models.ConfidenceHigh
		v.IsValid = false

	default:
		v.Warnings = append(v.Warnings, "No business found at this location on Google Maps")
		v.Confidence = models.ConfidenceLow
	}
}

func vacantWithoutStation(f facts, v *models.ValidationVerdict) {
	if f.lowSqft() && !f.gasStation {
		v.IsValid = false
		v.Warnings = append(v.Warnings, "ALERT: This appears to be VACANT LAND, not a c-store or gas station")
		v.PropertyType = models.PropertyVacantLand
	}
}

func vacantUseWithoutStation(f facts, v *models.ValidationVerdict) {
	if f.vacantLandUse() && !f.gasStation {
		v.IsValid = false
		v.Warnings = append(v.Warnings, "ALERT: Property is classified as VACANT with no operating business")
	}
}

func officeBuilding(f facts, v *models.ValidationVerdict) {
	if f.landUseGroup == "commercial" && f.landUse == "office_building" && !f.gasStation {
		v.IsValid = false
		v.Warnings = append(v.Warnings, "WRONG PROPERTY TYPE: This is an OFFICE BUILDING, not a convenience store/gas station!")
		v.PropertyType = models.PropertyOfficeBuilding
		v.Confidence = models.ConfidenceHigh
	}
}

func businessName(p *models.PlaceRecord) string {
	if p.Business == nil || p.Business.Name == "" {
		return "Unknown"
	}
	return p.Business.Name
}

func firstN(s []string, n int) []string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
