package models

type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type PeriodPoint struct {
	Day  int    `json:"day"`
	Time string `json:"time"`
}

type OpeningPeriod struct {
	Open  *PeriodPoint `json:"open,omitempty"`
	Close *PeriodPoint `json:"close,omitempty"`
}

type OpeningHours struct {
	OpenNow     *bool           `json:"open_now,omitempty"`
	Periods     []OpeningPeriod `json:"periods,omitempty"`
	WeekdayText []string        `json:"weekday_text,omitempty"`
}

type EditorialSummary struct {
	Overview string `json:"overview,omitempty"`
}

// PlaceDetails mirrors the places provider's detail fields this engine reads.
type PlaceDetails struct {
	Name                 string            `json:"name,omitempty"`
	FormattedPhoneNumber string            `json:"formatted_phone_number,omitempty"`
	OpeningHours         *OpeningHours     `json:"opening_hours,omitempty"`
	Types                []string          `json:"types,omitempty"`
	BusinessStatus       string            `json:"business_status,omitempty"`
	Rating               *float64          `json:"rating,omitempty"`
	UserRatingsTotal     *int              `json:"user_ratings_total,omitempty"`
	Website              string            `json:"website,omitempty"`
	EditorialSummary     *EditorialSummary `json:"editorial_summary,omitempty"`
}

// Category tags that mark a fuel retailer.
const (
	TypeGasStation       = "gas_station"
	TypeConvenienceStore = "convenience_store"
)

// HasType reports whether any of types is among the place's tags.
func (d *PlaceDetails) HasType(types ...string) bool {
	if d == nil {
		return false
	}
	for _, have := range d.Types {
		for _, want := range types {
			if have == want {
				return true
			}
		}
	}
	return false
}

// IsFuelRetailer is true for gas station or convenience store tags.
func (d *PlaceDetails) IsFuelRetailer() bool {
	return d.HasType(TypeGasStation, TypeConvenienceStore)
}

// PlaceSource records which selection tier produced a place record.
type PlaceSource string

const (
	PlaceSourcePrimary PlaceSource = "primary_address"
	PlaceSourceNearby  PlaceSource = "nearby_gas_station"
)

type NearbyBusiness struct {
	Name    string   `json:"name"`
	Types   []string `json:"types"`
	PlaceID string   `json:"place_id"`
}

// PlaceRecord is the business presence chosen for an address.
type PlaceRecord struct {
	Location            LatLng           `json:"location"`
	PlaceID             string           `json:"placeId,omitempty"`
	Business            *PlaceDetails    `json:"business"`
	IsGasStation        bool             `json:"isGasStation"`
	DataSource          PlaceSource      `json:"dataSource"`
	AllBusinessesNearby []NearbyBusiness `json:"allBusinessesNearby"`
}
