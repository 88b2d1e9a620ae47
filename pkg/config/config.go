// Package config loads cube controller settings from YAML.
//
// A configuration file selects the cube to connect to, tunes the session,
// chooses how logs are written and lists sensor settings to apply right
// after connecting:
//
//	device:
//	  address: "E4:7C:21:00:00:01"
//	  scan_timeout: 10s
//	  attempts: 3
//	session:
//	  queue_size: 64
//	  version_wait: 100ms
//	logging:
//	  level: info
//	  format: text
//	  protocol_log: /tmp/cube.clog
//	sensors:
//	  collision_threshold: 7
//	  id_notify:
//	    interval: 100ms
//	    condition: changed
//	  notify: [id, motion, button]
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/cubekit/cube-go/pkg/log"
	"github.com/cubekit/cube-go/pkg/service"
	"github.com/cubekit/cube-go/pkg/transport"
	"github.com/cubekit/cube-go/pkg/wire"
)

// ErrInvalidConfig is returned by Validate and Load for unusable settings.
var ErrInvalidConfig = errors.New("invalid config")

// Config is the root of a configuration file.
type Config struct {
	Device  DeviceConfig  `yaml:"device"`
	Session SessionConfig `yaml:"session"`
	Logging LoggingConfig `yaml:"logging"`
	Sensors SensorConfig  `yaml:"sensors"`
}

// DeviceConfig selects the cube.
type DeviceConfig struct {
	Address     string        `yaml:"address"`
	Name        string        `yaml:"name"`
	ScanTimeout time.Duration `yaml:"scan_timeout"`
	Attempts    int           `yaml:"attempts"`
}

// SessionConfig tunes the device session.
type SessionConfig struct {
	QueueSize   int           `yaml:"queue_size"`
	VersionWait time.Duration `yaml:"version_wait"`
}

// LoggingConfig selects operational and protocol logging.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level"`

	// Format is text or json.
	Format string `yaml:"format"`

	// ProtocolLog is a .clog file for protocol capture. Empty disables it.
	ProtocolLog string `yaml:"protocol_log"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Device: DeviceConfig{
			ScanTimeout: transport.DefaultScanTimeout,
			Attempts:    3,
		},
		Session: SessionConfig{
			QueueSize:   service.DefaultQueueSize,
			VersionWait: service.DefaultVersionWait,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads a YAML file over the defaults and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks ranges and enumerated values.
func (c *Config) Validate() error {
	var problems []string

	if c.Device.ScanTimeout < 0 {
		problems = append(problems, "device.scan_timeout must not be negative")
	}
	if c.Device.Attempts < 0 {
		problems = append(problems, "device.attempts must not be negative")
	}
	if c.Session.QueueSize < 0 {
		problems = append(problems, "session.queue_size must not be negative")
	}
	if c.Session.VersionWait < 0 {
		problems = append(problems, "session.version_wait must not be negative")
	}
	if _, err := ParseLevel(c.Logging.Level); err != nil {
		problems = append(problems, err.Error())
	}
	switch c.Logging.Format {
	case "", "text", "json":
	default:
		problems = append(problems, fmt.Sprintf("logging.format %q is not text or json", c.Logging.Format))
	}
	problems = append(problems, c.Sensors.validate()...)

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}

// ParseLevel maps a level name to an slog level. Empty means info.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("logging.level %q is not debug, info, warn or error", name)
}

// NewLogger builds the operational logger described by the config.
func (l LoggingConfig) NewLogger(w io.Writer) *slog.Logger {
	level, err := ParseLevel(l.Level)
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}

	if l.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// DialConfig maps the device section onto transport settings.
func (c *Config) DialConfig(logger *slog.Logger) transport.DialConfig {
	return transport.DialConfig{
		Address:     c.Device.Address,
		Name:        c.Device.Name,
		ScanTimeout: c.Device.ScanTimeout,
		Attempts:    c.Device.Attempts,
		Logger:      logger,
	}
}

// SessionConfig maps the session section onto service settings.
func (c *Config) SessionConfig(logger *slog.Logger, protocolLogger log.Logger) service.SessionConfig {
	name := c.Device.Name
	if name == "" {
		name = c.Device.Address
	}
	return service.SessionConfig{
		Logger:         logger,
		ProtocolLogger: protocolLogger,
		DeviceName:     name,
		QueueSize:      c.Session.QueueSize,
		VersionWait:    c.Session.VersionWait,
	}
}

// parseChannel is wire.ParseChannel with a config-style error.
func parseChannel(name string) (wire.Channel, error) {
	ch, ok := wire.ParseChannel(name)
	if !ok {
		return 0, fmt.Errorf("unknown channel %q", name)
	}
	return ch, nil
}
