package evaluateproperty

import (
	"cstore-prefill/internal/models"
	"cstore-prefill/internal/reconcile"
)

// Input is a captured reconciliation: the raw records plus the searched address.
type Input = reconcile.Captured

type Output struct {
	Success     bool                      `json:"success"`
	Data        models.FormData           `json:"data"`
	Validation  *models.ValidationVerdict `json:"validation,omitempty"`
	Ownership   models.OwnershipVerdict   `json:"ownership"`
	Message     string                    `json:"message"`
	FieldsCount int                       `json:"fieldsCount"`
}
