package matchregistry

import "cstore-prefill/internal/models"

type Input struct {
	Address string `json:"address"`
}

// Output carries a nil registry when nothing matched or the store is unavailable.
type Output struct {
	Registry *models.RegistryMatch `json:"registry"`
	Matched  bool                  `json:"matched"`
}
