package reconcileproperty

import "cstore-prefill/internal/models"

type Input struct {
	Address   string `json:"address"`
	RequestID string `json:"requestId,omitempty"`
}

type Output struct {
	Prefill   *models.ReconcileResult `json:"prefill"`
	RequestID string                  `json:"requestId"`
}
