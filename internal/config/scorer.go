package config

import (
	"os"
	"strconv"
	"sync"
	"time"
)

type ScorerConfig struct {
	BaseURL     string
	CallbackURL string
	Timeout     time.Duration
	MaxInFlight int64
}

var (
	scorerConfig *ScorerConfig
	scorerOnce   sync.Once
)

func LoadScorerConfig() *ScorerConfig {
	scorerOnce.Do(func() {
		timeout := 30 * time.Second
		if v := os.Getenv("SCORER_TIMEOUT_SECONDS"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				timeout = time.Duration(n) * time.Second
			}
		}
		maxInFlight := int64(8)
		if v := os.Getenv("SCORER_MAX_IN_FLIGHT"); v != "" {
			if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
				maxInFlight = n
			}
		}
		scorerConfig = &ScorerConfig{
			BaseURL:     os.Getenv("SCORER_SERVICE_URL"),
			CallbackURL: os.Getenv("SCORER_WEBHOOK_URL"),
			Timeout:     timeout,
			MaxInFlight: maxInFlight,
		}
	})
	return scorerConfig
}
