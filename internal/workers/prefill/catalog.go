// Package prefill describes the prefill job workers registered with Zeebe.
package prefill

import (
	"cstore-prefill/internal/common/config"
	apperrors "cstore-prefill/internal/common/errors"

	ep "cstore-prefill/internal/workers/prefill/evaluate-property"
	mr "cstore-prefill/internal/workers/prefill/match-registry"
	rp "cstore-prefill/internal/workers/prefill/reconcile-property"
)

// Activity is one job type a BPMN service task can reference.
type Activity struct {
	TaskType      string   `json:"taskType"`
	DisplayName   string   `json:"displayName"`
	Description   string   `json:"description"`
	Enabled       bool     `json:"enabled"`
	MaxJobsActive int      `json:"maxJobsActive"`
	Timeout       string   `json:"timeout"`
	Retries       int      `json:"retries"`
	ErrorCodes    []string `json:"errorCodes"`
}

var activities = []Activity{
	{
		TaskType:    rp.TaskType,
		DisplayName: "Reconcile Property",
		Description: "Fetch parcel, place and registry data for an address and fuse them into prefill form data",
		ErrorCodes: codes(
			apperrors.ErrCodeAddressRequired,
			apperrors.ErrCodeInputParsing,
			apperrors.ErrCodeValidation,
			apperrors.ErrCodeOutputInvalid,
			apperrors.ErrCodeParcelProviderFailed,
			apperrors.ErrCodeParcelAuthFailed,
			apperrors.ErrCodeParcelTimeout,
		),
	},
	{
		TaskType:    mr.TaskType,
		DisplayName: "Match Registry",
		Description: "Look up the license and corporate registry records for an address",
		ErrorCodes:  codes(apperrors.ErrCodeInputParsing),
	},
	{
		TaskType:    ep.TaskType,
		DisplayName: "Evaluate Property",
		Description: "Fuse previously captured source records without calling any provider",
		ErrorCodes:  codes(apperrors.ErrCodeInputParsing),
	},
}

// Catalog returns every prefill activity with its effective worker settings.
func Catalog(cfg *config.Config) []Activity {
	out := make([]Activity, 0, len(activities))
	for _, a := range activities {
		wc := config.GetWorkerConfig(cfg, a.TaskType)
		a.Enabled = cfg.Camunda.Enabled && config.IsWorkerEnabled(cfg, a.TaskType)
		a.MaxJobsActive = wc.MaxJobsActive
		a.Timeout = config.GetDuration(wc.Timeout).String()
		a.Retries = wc.MaxRetries
		a.ErrorCodes = append([]string(nil), a.ErrorCodes...)
		out = append(out, a)
	}
	return out
}

func codes(cs ...apperrors.ErrorCode) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = string(c)
	}
	return out
}
