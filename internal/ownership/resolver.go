// Package ownership decides whether the business at an address owns the
// parcel or leases it.
package ownership

import (
	"strings"

	"cstore-prefill/internal/models"
	"cstore-prefill/internal/normalize"
)

// Owner name fields compared against the registry, in priority order.
var candidateFields = []string{
	models.FieldCorporationName,
	models.FieldOwnerFullName,
	models.FieldDeedOwnerFullName,
	models.FieldDeedOwnerLastName,
}

// Options tunes name comparison.
type Options struct {
	// MinMatchLength is the shortest normalized name allowed to match by
	// containment. Exact matches are unaffected. Zero disables the guard.
	MinMatchLength int
}

// Resolve compares the parcel owner names in form with the registry's
// business name. It returns owner on the first candidate that equals,
// contains or is contained by the registry name, tenant when candidates
// exist but none match, and unknown otherwise.
func Resolve(form models.FormData, match *models.RegistryMatch, opts Options) models.OwnershipVerdict {
	registryName := match.ComparisonName()
	if registryName == "" {
		return models.UnknownOwnership()
	}

	var candidates []string
	for _, field := range candidateFields {
		if name := strings.TrimSpace(form.String(field)); name != "" {
			candidates = append(candidates, name)
		}
	}

	target := normalize.BusinessName(registryName)
	for _, name := range candidates {
		if sameBusiness(normalize.BusinessName(name), target, opts.MinMatchLength) {
			return models.OwnershipVerdict{
				Status:               models.OwnershipOwner,
				MatchedName:          &name,
				RegistryBusinessName: &registryName,
			}
		}
	}

	if len(candidates) == 0 {
		return models.OwnershipVerdict{Status: models.OwnershipUnknown, RegistryBusinessName: &registryName}
	}
	first := candidates[0]
	return models.OwnershipVerdict{
		Status:               models.OwnershipTenant,
		MatchedName:          &first,
		RegistryBusinessName: &registryName,
	}
}

func sameBusiness(a, b string, minLen int) bool {
	if a == "" || b == "" {
		return false
	}
	if a == b {
		return true
	}
	if !strings.Contains(a, b) && !strings.Contains(b, a) {
		return false
	}
	return min(len(a), len(b)) >= minLen
}
