package normalize

import "strings"

// corporateSuffixes are stripped from the end of business names. Multi-word
// forms come first so "L L C" is not mistaken for a trailing name token.
var corporateSuffixes = []string{
	"L L C",
	"LLC",
	"INC",
	"CORP",
	"CORPORATION",
	"COMPANY",
	"CO",
	"LTD",
	"LP",
	"LLP",
	"LIMITED",
	"PLC",
	"PC",
	"GROUP",
	"HOLDINGS",
}

var namePunctuation = strings.NewReplacer(".", " ", ",", " ")

// BusinessName returns the comparable key for a business name: upper case,
// no periods or commas, single spaces, trailing corporate suffixes removed.
// A name made only of a suffix keeps it. BusinessName(BusinessName(x)) == BusinessName(x).
func BusinessName(name string) string {
	s := strings.Join(strings.Fields(namePunctuation.Replace(strings.ToUpper(name))), " ")
	for {
		stripped := stripCorporateSuffix(s)
		if stripped == s {
			return s
		}
		s = stripped
	}
}

func stripCorporateSuffix(s string) string {
	for _, suffix := range corporateSuffixes {
		if strings.HasSuffix(s, " "+suffix) {
			return strings.TrimSpace(strings.TrimSuffix(s, suffix))
		}
	}
	return s
}

// BusinessPatterns returns the full-name LIKE pattern and a partial pattern on
// the first two tokens. Short names give the same value twice.
func BusinessPatterns(name string) []string {
	tokens := strings.Fields(BusinessName(name))
	if len(tokens) == 0 {
		return nil
	}

	partial := tokens
	if len(partial) > 2 {
		partial = partial[:2]
	}
	return []string{likePattern(tokens), likePattern(partial)}
}
