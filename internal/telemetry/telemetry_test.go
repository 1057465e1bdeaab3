package telemetry_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"codeberg.org/mutker/spbmctl/internal/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/mattn/go-sqlite3"
)

func TestNoopCollectorWhenDisabled(t *testing.T) {
	collector, err := telemetry.NewService(telemetry.Config{Enabled: false})
	require.NoError(t, err)

	err = collector.Record(context.Background(), &telemetry.Snapshot{Timestamp: time.Now()})
	require.NoError(t, err)
	require.NoError(t, collector.Close())
}

func TestInvalidConfig(t *testing.T) {
	_, err := telemetry.NewService(telemetry.Config{Enabled: true, DBPath: ""})
	require.Error(t, err)
}

func TestRecordAndReadBack(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "telemetry.db")

	collector, err := telemetry.NewService(telemetry.Config{Enabled: true, DBPath: dbPath})
	require.NoError(t, err)

	ts := time.Unix(1700000000, 0)
	snapshot := &telemetry.Snapshot{
		Timestamp: ts,
		Readings: []telemetry.ChannelReading{
			{Category: "power", Label: "sys_total", Value: 45000000},
			{Category: "power", Label: "soc_pkg", Value: 12000000},
			{Category: "energy", Label: "pkg", Value: 7000},
		},
	}
	require.NoError(t, collector.Record(context.Background(), snapshot))
	require.NoError(t, collector.Close())

	db, err := sql.Open("sqlite3", dbPath)
	require.NoError(t, err)
	defer db.Close()

	var value int64
	err = db.QueryRow(
		`SELECT value FROM readings WHERE timestamp = ? AND category = ? AND label = ?`,
		ts.Unix(), "power", "sys_total",
	).Scan(&value)
	require.NoError(t, err)
	assert.Equal(t, int64(45000000), value)

	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM readings`).Scan(&count))
	assert.Equal(t, 3, count)
}

func TestRecordSameTimestampUpserts(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "telemetry.db")

	collector, err := telemetry.NewService(telemetry.Config{Enabled: true, DBPath: dbPath})
	require.NoError(t, err)
	defer collector.Close()

	ts := time.Unix(1700000000, 0)
	first := &telemetry.Snapshot{
		Timestamp: ts,
		Readings:  []telemetry.ChannelReading{{Category: "power", Label: "sys_total", Value: 100}},
	}
	second := &telemetry.Snapshot{
		Timestamp: ts,
		Readings:  []telemetry.ChannelReading{{Category: "power", Label: "sys_total", Value: 200}},
	}

	require.NoError(t, collector.Record(context.Background(), first))
	require.NoError(t, collector.Record(context.Background(), second))

	db, err := sql.Open("sqlite3", dbPath)
	require.NoError(t, err)
	defer db.Close()

	var value int64
	require.NoError(t, db.QueryRow(`SELECT value FROM readings`).Scan(&value))
	assert.Equal(t, int64(200), value)
}

func TestRecordNilSnapshot(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "telemetry.db")

	collector, err := telemetry.NewService(telemetry.Config{Enabled: true, DBPath: dbPath})
	require.NoError(t, err)
	defer collector.Close()

	require.Error(t, collector.Record(context.Background(), nil))
}
