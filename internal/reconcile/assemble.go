package reconcile

import (
	"fmt"

	"cstore-prefill/internal/mapper"
	"cstore-prefill/internal/models"
	"cstore-prefill/internal/ownership"
	"cstore-prefill/internal/validator"
)

// Options are the fusion settings shared by live and captured runs.
type Options struct {
	MapsAPIKey     string
	MinMatchLength int
}

// Captured holds the raw source records of one reconciliation. Assembling
// the same Captured twice yields the same result.
type Captured struct {
	Address  string                `json:"address"`
	Parcel   *models.ParcelRecord  `json:"parcel"`
	Place    *models.PlaceRecord   `json:"place"`
	Registry *models.RegistryMatch `json:"registry"`
}

// Assemble fuses captured records into a result without any I/O.
func Assemble(c Captured, opts Options) *models.ReconcileResult {
	if c.Parcel == nil {
		return &models.ReconcileResult{
			Success:   false,
			Data:      models.FormData{},
			Ownership: models.UnknownOwnership(),
			Message:   models.MessageAddressNotFound,
		}
	}

	verdict := validator.Evaluate(c.Parcel, c.Place)
	form := mapper.Map(c.Parcel, c.Place, c.Address, mapper.Options{MapsAPIKey: opts.MapsAPIKey})
	owner := ownership.Resolve(form, c.Registry, ownership.Options{MinMatchLength: opts.MinMatchLength})
	Enrich(form, c.Registry)

	return &models.ReconcileResult{
		Success:     true,
		Data:        form,
		Validation:  &verdict,
		Registry:    c.Registry,
		Ownership:   owner,
		Message:     fmt.Sprintf(models.MessageAutoFilledFmt, len(form)),
		FieldsCount: len(form),
	}
}

// Enrich copies registry facts onto the form.
func Enrich(form models.FormData, match *models.RegistryMatch) {
	if match == nil {
		return
	}
	if b := match.Business; b != nil {
		form.Set("registeredAgentName", b.RegisteredAgentName)
		form.Set("registeredAgentAddress", b.RegisteredAgentPhysicalAddress)
		form.Set("naicsCode", b.NAICSCode)
		form.Set("naicsSubCode", b.NAICSSubCode)
		if b.YearsAtLocation != nil {
			form.Set("yearsAtLocation", *b.YearsAtLocation)
		}
	}
	if match.License != nil {
		form.Set("registryBusinessName", match.License.ListFormatName)
	}
}
