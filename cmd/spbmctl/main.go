package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"codeberg.org/mutker/spbmctl/internal/config"
	"codeberg.org/mutker/spbmctl/internal/hwmon"
	"codeberg.org/mutker/spbmctl/internal/logger"
	"codeberg.org/mutker/spbmctl/internal/platform"
	"codeberg.org/mutker/spbmctl/internal/spbm"
	"codeberg.org/mutker/spbmctl/internal/telemetry"
)

var (
	cfg     *config.Config
	binding *spbm.Binding
)

func init() {
	var err error
	cfg, err = config.Load()
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.Debug, cfg.Verbose, logger.IsService())
	logger.Debug().Msg("Config loaded")
}

func main() {
	bus := platform.NewSysfsBus(cfg.BusPath)
	dev, err := platform.FindByHID(bus, spbm.DeviceID)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to find telemetry device")
	}
	logger.Debug().Str("device", dev.Path).Msg("Found telemetry device")

	binding = spbm.NewBinding(dev, spbm.NewDevMemMapper(cfg.MemDevice), hwmon.NewLogRegistrar())
	if err := binding.Probe(); err != nil {
		logger.Fatal().Err(err).Msg("failed to probe telemetry device")
	}
	defer binding.Detach()

	collector, err := telemetry.NewService(telemetry.Config{
		Enabled: cfg.Telemetry,
		DBPath:  cfg.TelemetryDB,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize telemetry recording")
	}
	defer collector.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go handleSignals(cancel)

	if err := loop(ctx, collector); err != nil {
		logger.Error().Err(err).Msg("error in main loop")
	}
	logger.Info().Msg("Exiting...")
}

func loop(ctx context.Context, collector telemetry.Collector) error {
	interval := time.Duration(cfg.Interval) * time.Second
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	if cfg.Monitor {
		logger.Info().Msg("Monitor mode activated. Logging telemetry...")
	}

	// One immediate poll so a single-shot run reports without waiting
	// out the first interval.
	if err := poll(ctx, collector); err != nil {
		return err
	}
	if !cfg.Monitor && !cfg.Telemetry {
		return nil
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := poll(ctx, collector); err != nil {
				return err
			}
		}
	}
}

func poll(ctx context.Context, collector telemetry.Collector) error {
	power, err := binding.Snapshot(hwmon.Power)
	if err != nil {
		return err
	}
	energy, err := binding.Snapshot(hwmon.Energy)
	if err != nil {
		return err
	}

	logReadings(power, energy)

	snapshot := &telemetry.Snapshot{
		Timestamp: time.Now(),
		Readings:  make([]telemetry.ChannelReading, 0, len(power)+len(energy)),
	}
	for _, r := range power {
		snapshot.Readings = append(snapshot.Readings, telemetry.ChannelReading{
			Category: hwmon.Power.String(),
			Label:    r.Label,
			Value:    r.Value,
		})
	}
	for _, r := range energy {
		snapshot.Readings = append(snapshot.Readings, telemetry.ChannelReading{
			Category: hwmon.Energy.String(),
			Label:    r.Label,
			Value:    r.Value,
		})
	}

	return collector.Record(ctx, snapshot)
}

func logReadings(power, energy []spbm.Reading) {
	if cfg.Debug {
		event := logger.Debug()
		for _, r := range power {
			event.Int64("power_"+r.Label+"_uw", r.Value)
		}
		for _, r := range energy {
			event.Int64("energy_"+r.Label+"_uj", r.Value)
		}
		event.Msg("")
		return
	}

	if cfg.Verbose || cfg.Monitor {
		event := logger.Info()
		for _, r := range power {
			event.Int64(r.Label+"_uw", r.Value)
		}
		event.Msg("")
	}
}

func handleSignals(cancel context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	logger.Info().Msg("Received termination signal.")
	cancel()
}
