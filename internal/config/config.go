package config

import (
	"os"

	"codeberg.org/mutker/spbmctl/internal/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	DefaultInterval    = 1
	DefaultLogLevel    = "info"
	DefaultTelemetryDB = "/var/lib/spbmctl/telemetry.db"

	configName = "spbmctl"
	configType = "toml"
	configPath = "/etc"
	envPrefix  = "SPBMCTL"
)

type Config struct {
	// Interval between polls in seconds
	Interval int
	// BusPath overrides the firmware bus directory to enumerate
	BusPath string `mapstructure:"bus_path"`
	// MemDevice overrides the memory device the window is mapped from
	MemDevice string `mapstructure:"mem_device"`
	// Monitor keeps polling and logging channel values
	Monitor bool
	// Telemetry enables recording polled values to the database
	Telemetry bool
	// TelemetryDB is the path of the telemetry database
	TelemetryDB string `mapstructure:"database"`
	LogLevel    string `mapstructure:"log_level"`
	Debug       bool
	Verbose     bool
}

func Load() (*Config, error) {
	errFactory := errors.New()
	v := viper.New()

	v.SetDefault("interval", DefaultInterval)
	v.SetDefault("bus_path", "")
	v.SetDefault("mem_device", "")
	v.SetDefault("monitor", false)
	v.SetDefault("telemetry", false)
	v.SetDefault("database", DefaultTelemetryDB)
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("debug", false)
	v.SetDefault("verbose", false)

	flags := pflag.NewFlagSet(configName, pflag.ContinueOnError)
	flags.Int("interval", DefaultInterval, "Interval between polls in seconds")
	flags.String("bus-path", "", "Firmware bus directory to enumerate")
	flags.String("mem-device", "", "Memory device to map the telemetry window from")
	flags.Bool("monitor", false, "Keep polling and logging channel values")
	flags.Bool("telemetry", false, "Record polled values to the telemetry database")
	flags.String("database", DefaultTelemetryDB, "Path of the telemetry database")
	flags.String("log-level", DefaultLogLevel, "Log level (debug, info, warning, error)")
	flags.Bool("debug", false, "Enable debugging mode")
	flags.Bool("verbose", false, "Enable verbose logging")

	if err := flags.Parse(os.Args[1:]); err != nil {
		return nil, errFactory.Wrap(errors.ErrBindFlags, err)
	}

	// Config file: explicit override via environment, else the standard
	// location. A missing file is not an error.
	if path := os.Getenv(envPrefix + "_CONFIG"); path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType(configType)
		v.AddConfigPath(configPath)
	}
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			if !os.IsNotExist(err) {
				return nil, errFactory.Wrap(errors.ErrReadConfig, err)
			}
		}
	}

	// Flags set on the command line override file and environment.
	flags.Visit(func(f *pflag.Flag) {
		key := f.Name
		switch key {
		case "bus-path":
			key = "bus_path"
		case "mem-device":
			key = "mem_device"
		case "log-level":
			key = "log_level"
		}
		v.Set(key, f.Value.String())
	})

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, errFactory.Wrap(errors.ErrReadConfig, err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Config) Validate() error {
	errFactory := errors.New()

	if c.Interval <= 0 {
		return errFactory.WithData(errors.ErrInvalidInterval, c.Interval)
	}

	switch c.LogLevel {
	case "debug", "info", "warning", "error":
	default:
		return errFactory.WithData(errors.ErrInvalidLogLevel, c.LogLevel)
	}

	if c.Telemetry && c.TelemetryDB == "" {
		return errFactory.WithMessage(errors.ErrInvalidConfig, "telemetry enabled without database path")
	}

	return nil
}
