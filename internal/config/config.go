// Package config provides runtime configuration values for the service.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds configuration knobs for the HTTP server, the event
// dispatcher, and reporting.
type Config struct {
	HTTPAddr        string
	ShutdownTimeout time.Duration

	KafkaBroker    string
	KafkaTopic     string
	EventWorkers   int
	EventBuffer    int
	PublishTimeout time.Duration

	LowStockThreshold int64
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoienv(key string, def int) int {
	v := getenv(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func durenvs(key string, defSec int) time.Duration {
	sec := atoienv(key, defSec)
	return time.Duration(sec) * time.Second
}

// Load collects configuration from environment with defaults. An empty
// KAFKA_BROKER disables event publishing.
func Load() Config {
	return Config{
		HTTPAddr:          getenv("HTTP_ADDR", ":8080"),
		ShutdownTimeout:   durenvs("SHUTDOWN_TIMEOUT", 15),
		KafkaBroker:       getenv("KAFKA_BROKER", ""),
		KafkaTopic:        getenv("KAFKA_TOPIC", "salon-lifecycle-events"),
		EventWorkers:      atoienv("EVENT_WORKERS", 2),
		EventBuffer:       atoienv("EVENT_BUFFER", 128),
		PublishTimeout:    durenvs("PUBLISH_TIMEOUT", 5),
		LowStockThreshold: int64(atoienv("LOW_STOCK_THRESHOLD", 10)),
	}
}
