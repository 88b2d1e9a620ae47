// Command cube-ctl connects to a cube over Bluetooth LE and drives it from
// the command line.
//
// Usage:
//
//	cube-ctl [flags]
//
// Flags:
//
//	-config string        Configuration file path (YAML)
//	-address string       Cube BLE address
//	-name string          Cube local name (used when no address is given)
//	-log-level string     Log level: debug, info, warn, error
//	-log-format string    Log format: text, json
//	-protocol-log string  Write a protocol capture (.clog) to this file
//	-interactive          Start the interactive shell (default true)
//	-watch string         Comma separated channels to print when not interactive
//	-battery-warn int     Warn when battery drops below this percent (default 20)
//
// Examples:
//
//	# Connect to the first cube found and open the shell
//	cube-ctl
//
//	# Connect to a known cube and capture the protocol
//	cube-ctl -address E4:7C:21:00:00:01 -protocol-log cube.clog
//
//	# Print position and button reports until interrupted
//	cube-ctl -interactive=false -watch id,button
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/chzyer/readline"
	"golang.org/x/sync/errgroup"

	"github.com/cubekit/cube-go/cmd/cube-ctl/interactive"
	"github.com/cubekit/cube-go/pkg/config"
	"github.com/cubekit/cube-go/pkg/inspect"
	"github.com/cubekit/cube-go/pkg/log"
	"github.com/cubekit/cube-go/pkg/service"
	"github.com/cubekit/cube-go/pkg/transport"
	"github.com/cubekit/cube-go/pkg/wire"
)

// Flags holds command line overrides of the configuration file.
type Flags struct {
	ConfigFile  string
	Address     string
	Name        string
	LogLevel    string
	LogFormat   string
	ProtocolLog string
	Interactive bool
	Watch       string
	BatteryWarn int
}

var flags Flags

const batteryInterval = time.Minute

func init() {
	flag.StringVar(&flags.ConfigFile, "config", "", "Configuration file path (YAML)")
	flag.StringVar(&flags.Address, "address", "", "Cube BLE address")
	flag.StringVar(&flags.Name, "name", "", "Cube local name (used when no address is given)")
	flag.StringVar(&flags.LogLevel, "log-level", "", "Log level: debug, info, warn, error")
	flag.StringVar(&flags.LogFormat, "log-format", "", "Log format: text, json")
	flag.StringVar(&flags.ProtocolLog, "protocol-log", "", "Write a protocol capture (.clog) to this file")
	flag.BoolVar(&flags.Interactive, "interactive", true, "Start the interactive shell")
	flag.StringVar(&flags.Watch, "watch", "", "Comma separated channels to print when not interactive")
	flag.IntVar(&flags.BatteryWarn, "battery-warn", 20, "Warn when battery drops below this percent")
}

func main() {
	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	var rl *readline.Instance
	logger := cfg.Logging.NewLogger(os.Stderr)
	if flags.Interactive {
		if rl, err = interactive.NewReadline(); err != nil {
			return err
		}
		defer rl.Close()
		// Log through readline to avoid interfering with the prompt
		logger = cfg.Logging.NewLogger(rl.Stdout())
	}

	protoLog, err := openProtocolLog(cfg.Logging.ProtocolLog, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := protoLog.Close(); err != nil {
			logger.Warn("close protocol log", "error", err)
		}
	}()
	var protoLogger log.Logger
	if protoLog.Len() > 0 {
		protoLogger = protoLog
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("connecting", "address", cfg.Device.Address, "name", cfg.Device.Name)
	peer, err := transport.Dial(ctx, cfg.DialConfig(logger))
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}

	session := service.NewDeviceSession(peer, cfg.SessionConfig(logger, protoLogger))
	defer func() {
		if err := session.Release(); err != nil && !errors.Is(err, transport.ErrNotConnected) {
			logger.Warn("release failed", "error", err)
		}
	}()
	logger.Info("connected", "session", session.SessionID())

	if err := cfg.ApplySensors(session); err != nil {
		return fmt.Errorf("apply sensor settings: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)

	if flags.Interactive {
		shell := interactive.New(rl, session)
		g.Go(func() error {
			err := shell.Run(gctx)
			stop()
			return err
		})
	} else {
		if err := watch(session, flags.Watch); err != nil {
			return err
		}
		g.Go(func() error {
			<-gctx.Done()
			return nil
		})
	}

	g.Go(func() error {
		monitorBattery(gctx, session, logger, flags.BatteryWarn)
		return nil
	})

	err = g.Wait()
	logger.Info("shutting down", "dropped", session.Dropped())
	return err
}

// loadConfig reads the configuration file, if any, and applies flag
// overrides on top.
func loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if flags.ConfigFile != "" {
		var err error
		if cfg, err = config.Load(flags.ConfigFile); err != nil {
			return nil, err
		}
	}

	if flags.Address != "" {
		cfg.Device.Address = flags.Address
	}
	if flags.Name != "" {
		cfg.Device.Name = flags.Name
	}
	if flags.LogLevel != "" {
		cfg.Logging.Level = flags.LogLevel
	}
	if flags.LogFormat != "" {
		cfg.Logging.Format = flags.LogFormat
	}
	if flags.ProtocolLog != "" {
		cfg.Logging.ProtocolLog = flags.ProtocolLog
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// openProtocolLog combines the .clog capture, if configured, with a mirror
// of decoded events into the operational log at debug level.
func openProtocolLog(path string, logger *slog.Logger) (*log.MultiLogger, error) {
	var capture, mirror log.Logger
	if path != "" {
		fl, err := log.NewFileLogger(path)
		if err != nil {
			return nil, fmt.Errorf("open protocol log: %w", err)
		}
		capture = fl
	}
	if logger.Enabled(context.Background(), slog.LevelDebug) {
		decoded := log.LayerWire
		mirror = log.NewFilteredLogger(log.NewSlogAdapter(logger), log.Filter{Layer: &decoded})
	}
	return log.NewMultiLogger(capture, mirror), nil
}

// watch prints every decoded event of the listed channels to stdout.
func watch(session *service.DeviceSession, list string) error {
	if list == "" {
		return nil
	}
	for _, name := range strings.Split(list, ",") {
		ch, ok := wire.ParseChannel(strings.TrimSpace(name))
		if !ok || !ch.IsNotifiable() {
			return fmt.Errorf("cannot watch %q", name)
		}
		session.Subscribe(ch, func(ev wire.Event) {
			fmt.Printf("%s [%s] %s\n", time.Now().Format(time.TimeOnly), ev.Channel(), inspect.FormatWire(ev))
		})
		if err := session.EnableNotification(ch, true); err != nil {
			return fmt.Errorf("enable %s notifications: %w", ch, err)
		}
	}
	return nil
}

// monitorBattery reads the battery level periodically and warns when it
// falls below threshold.
func monitorBattery(ctx context.Context, session *service.DeviceSession, logger *slog.Logger, threshold int) {
	ticker := time.NewTicker(batteryInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			level, err := session.Battery()
			if err != nil {
				logger.Debug("battery read failed", "error", err)
				continue
			}
			if int(level.Percent) < threshold {
				logger.Warn("battery low", "percent", level.Percent)
			}
		}
	}
}
