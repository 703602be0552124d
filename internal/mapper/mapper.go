// Package mapper projects parcel and place records onto insurance form fields.
package mapper

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"cstore-prefill/internal/models"
)

// Options carries values the mapper cannot derive from the records.
type Options struct {
	// MapsAPIKey is embedded in the street-view URL.
	MapsAPIKey string
}

// building and owner fields copied under a form name
var namedFields = []struct{ field, attr string }{
	{models.FieldDeedOwnerFullName, "deed_owner_full_name"},
	{models.FieldDeedOwnerLastName, "deed_owner_last_name"},
	{models.FieldOwnerFullName, "owner_full_name"},
	{"ownerOccupancyStatus", "owner_occupancy_status"},
	{"ownershipType", "ownership_type"},
	{"companyFlag", "company_flag"},

	{"buildingSqft", "building_sqft"},
	{"assessedValue", "assessed_value"},
	{"elevationFeet", "elevation_feet"},
	{"exteriorWalls", "exterior_walls"},
	{"flooring", "flooring"},
	{"storiesNumber", "stories_number"},
	{"yearBuilt", "year_built"},
	{"numberOfBuildings", "number_of_buildings"},
	{"canopy", "canopy"},
	{"canopySqft", "canopy_sqft"},
	{"landUseGroup", "land_use_group"},
	{"landUseStandard", "land_use_standard"},
	{"legalDescription", "legal_description"},

	{"mortgageAmount", "mortgage_amount"},
	{"mortgageDueDate", "mortgage_due_date"},
	{"mortgageRecordingDate", "mortgage_recording_date"},
	{"mortgageTerm", "mortgage_term"},
	{"mortgageTermType", "mortgage_term_type"},
	{"mortgageType", "mortgage_type"},
	{"lenderName", "lender_name"},
	{"lenderLastName", "lender_last_name"},
	{"mortgageLenderCode", "mortgage_lender_code"},
}

// attributes copied verbatim under their provider name
var passThrough = []string{
	"assessed_improvement_value", "assessed_land_value", "market_value_year", "deed_sale_price", "deed_sale_date",
	"acres", "lot_sqft", "1st_floor_sqft", "2nd_floor_sqft",
	"bedrooms", "bathrooms_total", "bathrooms_partial", "garage", "garage_sqft",
	"construction_type", "roof_cover", "foundation",
	"air_conditioner", "heat", "heat_fuel_type", "sewer_type", "water_service_type",
	"fireplace", "fireplace_number", "pool", "pool_area",
	"parking_spaces", "loading_platform", "loading_platform_sqft", "overhead_door", "office_sqft",
	"security_alarm", "fire_sprinklers_flag", "fire_resistance_code", "sprinklers",
	"latitude", "longitude", "elevation_feet", "congressional_district", "census_tract", "census_block", "fips_code",
	"zoning", "legal_description", "parcel_number_formatted",
	"contact_house_number", "contact_street_name", "contact_suffix", "contact_unit_designator",
	"contact_mail_info_format", "contact_mailing_fips", "contact_crrt",
	"land_use_code", "topography_code", "view_description",
}

var riskRatings = []struct{ attr, label string }{
	{"CFLD_RISKR", "Flood Risk"},
	{"HWAV_RISKR", "Hurricane Risk"},
	{"LTNG_RISKR", "Lightning Risk"},
}

// tags too generic to describe a business
var genericTypes = map[string]bool{"point_of_interest": true, "establishment": true}

const streetViewURL = "https://www.google.com/maps/embed/v1/streetview"

// Map builds the form projection. Parcel data is the base layer and the
// place, when it names a business, overrides name, phone, hours and the
// operation description. address is the searched text; only the provider's
// standardized form is written to the form. Neither record is modified.
func Map(parcel *models.ParcelRecord, place *models.PlaceRecord, address string, opts Options) models.FormData {
	form := models.FormData{}
	attrs := parcel.Attrs()

	mapAddresses(form, parcel, attrs)

	for _, f := range namedFields {
		setAttr(form, f.field, attrs, f.attr)
	}
	form.Set(models.FieldCorporationName, CorporationName(attrs))
	form.Set(models.FieldOperationDesc, OperationFromLandUse(attrs))
	form.Set("applicantType", ApplicantType(attrs))
	form.Set("constructionType", ConstructionType(attrs))
	if sqft, ok := TotalSquareFootage(attrs); ok {
		form.Set("totalSquareFootage", sqft)
	}
	form.Set("additionalInsured", AdditionalInsured(attrs))

	for _, key := range passThrough {
		setAttr(form, key, attrs, key)
	}

	mapDatasets(form, parcel)

	if place != nil {
		mapBusiness(form, place.Business)
		mapLocation(form, place, opts)
	}
	return form
}

func setAttr(form models.FormData, field string, attrs models.Attributes, key string) {
	if attrs.Has(key) {
		v := attrs[key]
		if s, ok := v.(string); ok {
			v = strings.TrimSpace(s)
		}
		form.Set(field, v)
	}
}

func mapAddresses(form models.FormData, parcel *models.ParcelRecord, attrs models.Attributes) {
	if parcel != nil && parcel.Principal.MatchedAddress.Street != "" {
		m := parcel.Principal.MatchedAddress
		form.Set("matchedAddress", map[string]interface{}{
			"street":  m.Street,
			"city":    m.City,
			"state":   m.State,
			"zipcode": m.Zipcode,
		})
		form.Set("address", strings.TrimSpace(fmt.Sprintf("%s, %s, %s %s", m.Street, m.City, m.State, m.Zipcode)))
	}

	if !attrs.Has("contact_full_address") {
		return
	}
	mailing := map[string]interface{}{}
	for key, attr := range map[string]string{
		"fullAddress": "contact_full_address",
		"city":        "contact_city",
		"state":       "contact_state",
		"zipcode":     "contact_zip",
		"zip4":        "contact_zip4",
		"county":      "contact_mailing_county",
	} {
		if v := attrs.String(attr); v != "" {
			mailing[key] = v
		}
	}
	form.Set("mailingAddress", mailing)

	var parts []string
	for _, attr := range []string{"contact_full_address", "contact_city", "contact_state", "contact_zip"} {
		if v := attrs.String(attr); v != "" {
			parts = append(parts, v)
		}
	}
	form.Set("fullMailingAddress", strings.Join(parts, ", "))
}

func mapDatasets(form models.FormData, parcel *models.ParcelRecord) {
	geo, ok := parcel.DatasetAttrs(models.DatasetGeoReference)
	if !ok {
		geo, ok = parcel.DatasetAttrs(models.DatasetGeoRef2020)
	}
	if ok {
		ref := map[string]interface{}{}
		for key, v := range map[string]string{
			"place":       geo.Object("place").String("name"),
			"county":      geo.Object("census_county_division").String("name"),
			"metroArea":   geo.Object("core_based_stat_area").String("name"),
			"censusBlock": geo.Object("census_block").String("geoid"),
			"censusTract": geo.Object("census_tract").String("code"),
		} {
			if v != "" {
				ref[key] = v
			}
		}
		form.Set("geoReference", ref)
	}

	if fin, ok := parcel.DatasetAttrs(models.DatasetFinancial); ok {
		var history []map[string]interface{}
		for _, rec := range fin.Objects("financial_history") {
			entry := map[string]interface{}{}
			for key, attr := range map[string]string{
				"lenderName":      "lender_name",
				"mortgageAmount":  "mortgage_amount",
				"mortgageDueDate": "mortgage_due_date",
				"mortgageType":    "mortgage_type",
				"documentType":    "document_type_description",
				"recordingDate":   "mortgage_recording_date",
			} {
				if rec.Has(attr) {
					entry[key] = rec[attr]
				}
			}
			history = append(history, entry)
		}
		form.Set("financialHistory", history)
	}

	if risk, ok := parcel.DatasetAttrs(models.DatasetRisk); ok {
		var factors []string
		for _, r := range riskRatings {
			if rating := risk.String(r.attr); rating != "" && rating != "No Rating" {
				factors = append(factors, fmt.Sprintf("%s: %s", r.label, rating))
			}
		}
		form.Set("riskFactors", factors)
	}
}

func mapBusiness(form models.FormData, b *models.PlaceDetails) {
	if b == nil {
		return
	}

	form.Set("dba", b.Name)
	form.Set("businessName", b.Name)
	form.Set("contactNumber", b.FormattedPhoneNumber)
	form.Set("phoneNumber", b.FormattedPhoneNumber)

	hours, hasHours := 0, false
	if b.OpeningHours != nil {
		form.Set("hoursOfOperationFull", strings.Join(b.OpeningHours.WeekdayText, ", "))
		if hours, hasHours = OperatingHours(b.OpeningHours); hasHours {
			form.Set("hoursOfOperation", strconv.Itoa(hours))
		}
		if b.OpeningHours.OpenNow != nil {
			form.Set("currentlyOpen", *b.OpeningHours.OpenNow)
		}
	}

	overview := ""
	if b.EditorialSummary != nil {
		overview = strings.TrimSpace(b.EditorialSummary.Overview)
	}
	form.Set(models.FieldOperationDesc, operationDescription(b, overview, hours))
	form.Set("businessTypes", strings.Join(upperTypes(b.Types), ", "))
	form.Set("editorialSummary", overview)
	form.Set("website", b.Website)
	form.Set("businessStatus", b.BusinessStatus)
	if b.Rating != nil && *b.Rating != 0 {
		form.Set("googleRating", *b.Rating)
	}
	if b.UserRatingsTotal != nil && *b.UserRatingsTotal != 0 {
		form.Set("totalReviews", *b.UserRatingsTotal)
	}
}

// operationDescription phrases a fuel retailer as "C-Store with N hours
// operation" followed by its overview or its other category tags. Other
// businesses get their overview or their upper-cased tags.
func operationDescription(b *models.PlaceDetails, overview string, hours int) string {
	if !b.IsFuelRetailer() {
		if overview != "" {
			return overview
		}
		return strings.Join(upperTypes(b.Types), ", ")
	}

	desc := "C-Store"
	if hours > 0 {
		desc = fmt.Sprintf("C-Store with %d hours operation", hours)
	}
	if overview != "" {
		return desc + ". " + overview
	}
	if len(b.Types) > 1 {
		var others []string
		for _, t := range b.Types {
			if genericTypes[t] || t == models.TypeConvenienceStore || t == models.TypeGasStation {
				continue
			}
			others = append(others, strings.ReplaceAll(t, "_", " "))
		}
		if len(others) > 0 {
			desc += " with " + strings.Join(others, ", ")
		}
	}
	return desc
}

func upperTypes(types []string) []string {
	var out []string
	for _, t := range types {
		if genericTypes[t] {
			continue
		}
		out = append(out, strings.ToUpper(strings.ReplaceAll(t, "_", " ")))
	}
	return out
}

func mapLocation(form models.FormData, place *models.PlaceRecord, opts Options) {
	loc := place.Location
	form.Set("coordinates", map[string]interface{}{"lat": loc.Lat, "lng": loc.Lng})

	form.Set("mapEmbedUrl", fmt.Sprintf("%s?key=%s&location=%s,%s&heading=0&pitch=0&fov=100",
		streetViewURL, url.QueryEscape(opts.MapsAPIKey), formatCoord(loc.Lat), formatCoord(loc.Lng)))
}

func formatCoord(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
