// Package normalize canonicalizes addresses and business names for fuzzy matching.
package normalize

import "strings"

// streetSuffixes maps street type spellings onto their USPS abbreviation.
var streetSuffixes = map[string]string{
	"ROAD": "RD", "RD": "RD",
	"STREET": "ST", "ST": "ST",
	"AVENUE": "AVE", "AVE": "AVE",
	"DRIVE": "DR", "DR": "DR",
	"BOULEVARD": "BLVD", "BLVD": "BLVD",
	"HIGHWAY": "HWY", "HWY": "HWY",
	"COURT": "CT", "CT": "CT",
	"LANE": "LN", "LN": "LN",
	"PARKWAY": "PKWY", "PKWY": "PKWY",
	"TRACE": "TRCE", "TRCE": "TRCE",
	"TERRACE": "TER", "TER": "TER",
}

// addressStopWords carry no matching signal: country and state names, unit designators.
var addressStopWords = map[string]struct{}{
	"USA": {}, "UNITED": {}, "STATES": {},
	"APT": {}, "APARTMENT": {}, "SUITE": {}, "STE": {},
	"BLDG": {}, "FLOOR": {}, "FL": {}, "UNIT": {},
	"GA": {}, "GEORGIA": {},
	"SC": {}, "SOUTH": {}, "CAROLINA": {},
}

var addressSeparators = strings.NewReplacer(".", " ", ",", " ", "#", " ")

// streetPatternTokens is how many tokens after the street number the loose pattern keeps.
const streetPatternTokens = 2

// Tokens returns the canonical, ordered tokens of an address. The first token
// is treated as the street number by AddressPatterns.
func Tokens(address string) []string {
	fields := strings.Fields(addressSeparators.Replace(strings.ToUpper(address)))
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if canonical, ok := streetSuffixes[f]; ok {
			f = canonical
		}
		if _, stop := addressStopWords[f]; stop {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}

// AddressPatterns builds SQL LIKE patterns, most specific first: the full
// token pattern, then the street number with the next two tokens. An address
// with no usable tokens yields no patterns and must not be looked up.
func AddressPatterns(address string) []string {
	tokens := Tokens(address)
	if len(tokens) == 0 {
		return nil
	}

	patterns := []string{likePattern(tokens)}
	if len(tokens) > 1 {
		end := 1 + streetPatternTokens
		if end > len(tokens) {
			end = len(tokens)
		}
		patterns = append(patterns, likePattern(tokens[:end]))
	}
	return patterns
}

func likePattern(tokens []string) string {
	return "%" + strings.Join(tokens, "%") + "%"
}
