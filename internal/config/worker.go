package config

import (
	"os"
	"strconv"
	"sync"
	"time"
)

type WorkerConfig struct {
	QueueSize     int
	Workers       int
	JobTTL        time.Duration
	SweepInterval time.Duration
}

var (
	workerConfig *WorkerConfig
	workerOnce   sync.Once
)

func LoadWorkerConfig() *WorkerConfig {
	workerOnce.Do(func() {
		workerConfig = &WorkerConfig{
			QueueSize:     envInt("TASK_QUEUE_SIZE", 64),
			Workers:       envInt("TASK_WORKERS", 4),
			JobTTL:        time.Duration(envInt("EVAL_JOB_TTL_MINUTES", 30)) * time.Minute,
			SweepInterval: time.Duration(envInt("EVAL_SWEEP_INTERVAL_SECONDS", 60)) * time.Second,
		}
	})
	return workerConfig
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}
