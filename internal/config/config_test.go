package config

import (
	"os"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HTTP_ADDR", "")
	t.Setenv("SHUTDOWN_TIMEOUT", "")
	t.Setenv("KAFKA_BROKER", "")
	t.Setenv("KAFKA_TOPIC", "")
	t.Setenv("EVENT_WORKERS", "")
	t.Setenv("EVENT_BUFFER", "")
	t.Setenv("PUBLISH_TIMEOUT", "")
	t.Setenv("LOW_STOCK_THRESHOLD", "")
	c := Load()
	if c.HTTPAddr != ":8080" {
		t.Fatalf("HTTPAddr default")
	}
	if c.ShutdownTimeout != 15*time.Second {
		t.Fatalf("ShutdownTimeout default")
	}
	if c.KafkaBroker != "" {
		t.Fatalf("KafkaBroker default")
	}
	if c.KafkaTopic != "salon-lifecycle-events" {
		t.Fatalf("KafkaTopic default")
	}
	if c.EventWorkers != 2 || c.EventBuffer != 128 {
		t.Fatalf("event dispatcher defaults")
	}
	if c.PublishTimeout != 5*time.Second {
		t.Fatalf("PublishTimeout default")
	}
	if c.LowStockThreshold != 10 {
		t.Fatalf("LowStockThreshold default")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("SHUTDOWN_TIMEOUT", "2")
	t.Setenv("KAFKA_BROKER", "kafka:9092")
	t.Setenv("KAFKA_TOPIC", "salon-events-test")
	t.Setenv("EVENT_WORKERS", "4")
	t.Setenv("EVENT_BUFFER", "16")
	t.Setenv("PUBLISH_TIMEOUT", "1")
	t.Setenv("LOW_STOCK_THRESHOLD", "3")
	c := Load()
	if c.HTTPAddr != ":9090" {
		t.Fatalf("HTTPAddr env")
	}
	if c.ShutdownTimeout != 2*time.Second {
		t.Fatalf("ShutdownTimeout env")
	}
	if c.KafkaBroker != "kafka:9092" || c.KafkaTopic != "salon-events-test" {
		t.Fatalf("kafka env")
	}
	if c.EventWorkers != 4 || c.EventBuffer != 16 {
		t.Fatalf("event dispatcher env")
	}
	if c.PublishTimeout != time.Second {
		t.Fatalf("PublishTimeout env")
	}
	if c.LowStockThreshold != 3 {
		t.Fatalf("LowStockThreshold env")
	}
	_ = os.Unsetenv("HTTP_ADDR")
}

func TestAtoienvIgnoresGarbage(t *testing.T) {
	t.Setenv("EVENT_WORKERS", "lots")
	c := Load()
	if c.EventWorkers != 2 {
		t.Fatalf("non-numeric env should fall back to default")
	}
}
