package evaluateproperty

import (
	"time"

	"cstore-prefill/internal/common/config"
	"cstore-prefill/internal/reconcile"
)

type Config struct {
	Timeout       time.Duration
	MaxJobsActive int
	Fusion        reconcile.Options
}

func NewConfig(wc config.WorkerConfig, fusion reconcile.Options) *Config {
	cfg := &Config{
		Timeout:       config.GetDuration(wc.Timeout),
		MaxJobsActive: wc.MaxJobsActive,
		Fusion:        fusion,
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	return cfg
}
