package telemetry

import (
	"context"
	"time"
)

// Collector records polled sensor readings on behalf of a consumer.
// The driver core never persists anything; recording is strictly a
// consumer-side concern.
type Collector interface {
	Record(ctx context.Context, snapshot *Snapshot) error
	Close() error
}

// Snapshot is one poll cycle's worth of channel readings.
type Snapshot struct {
	Timestamp time.Time
	Readings  []ChannelReading
}

// ChannelReading is one channel value at poll time, in micro-units
// (microwatts for power, microjoules for energy).
type ChannelReading struct {
	Category string
	Label    string
	Value    int64
}
