package matchregistry

import (
	"time"

	"cstore-prefill/internal/common/config"
)

type Config struct {
	Timeout       time.Duration
	MaxJobsActive int
}

func NewConfig(wc config.WorkerConfig) *Config {
	cfg := &Config{
		Timeout:       config.GetDuration(wc.Timeout),
		MaxJobsActive: wc.MaxJobsActive,
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	return cfg
}
