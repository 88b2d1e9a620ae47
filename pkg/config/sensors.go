package config

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/cubekit/cube-go/pkg/service"
	"github.com/cubekit/cube-go/pkg/wire"
)

// SensorConfig lists sensor settings applied after connecting.
// Unset fields leave the cube's current setting alone.
type SensorConfig struct {
	CollisionThreshold *int            `yaml:"collision_threshold"`
	LevelThreshold     *int            `yaml:"level_threshold"`
	DoubleTapTiming    *int            `yaml:"double_tap_timing"`
	IDNotify           *NotifySetting  `yaml:"id_notify"`
	IDMissedDelay      *time.Duration  `yaml:"id_missed_delay"`
	Magnetic           *MagneticConfig `yaml:"magnetic"`
	Tilt               *TiltConfig     `yaml:"tilt"`
	MotorSpeedNotify   *bool           `yaml:"motor_speed_notify"`

	// Notify lists channels whose notifications are enabled.
	Notify []string `yaml:"notify"`
}

// NotifySetting is an interval and condition pair.
type NotifySetting struct {
	Interval  time.Duration `yaml:"interval"`
	Condition string        `yaml:"condition"`
}

// MagneticConfig configures the magnetic sensor.
type MagneticConfig struct {
	Mode          string `yaml:"mode"`
	NotifySetting `yaml:",inline"`
}

// TiltConfig configures high precision tilt reports.
type TiltConfig struct {
	Format        string `yaml:"format"`
	NotifySetting `yaml:",inline"`
}

// SensorTarget receives sensor settings. *service.DeviceSession implements it.
type SensorTarget interface {
	SetCollisionThreshold(level int) error
	SetLevelThreshold(degrees int) error
	SetDoubleTapTiming(level int) error
	SetIDNotify(interval time.Duration, cond wire.NotifyCondition) error
	SetIDMissedNotify(delay time.Duration) error
	SetMagneticSensor(mode wire.MagneticMode, interval time.Duration, cond wire.NotifyCondition) error
	SetMotorSpeedNotify(enable bool) error
	SetHighPrecisionTilt(format wire.TiltFormat, interval time.Duration, cond wire.NotifyCondition) error
	EnableNotification(ch wire.Channel, enable bool) error
}

var _ SensorTarget = (*service.DeviceSession)(nil)

var conditions = map[string]wire.NotifyCondition{
	"":                 wire.NotifyChanged,
	"periodic":         wire.NotifyPeriodic,
	"changed":          wire.NotifyChanged,
	"changed_or_300ms": wire.NotifyChangedOr300ms,
}

var magneticModes = map[string]wire.MagneticMode{
	"disable": wire.MagneticModeDisable,
	"status":  wire.MagneticModeStatus,
	"force":   wire.MagneticModeForce,
}

var tiltFormats = map[string]wire.TiltFormat{
	"disable":    wire.TiltFormatDisable,
	"euler":      wire.TiltFormatEuler,
	"quaternion": wire.TiltFormatQuaternion,
}

func lookup[T any](table map[string]T, field, value string) (T, error) {
	v, ok := table[strings.ToLower(value)]
	if !ok {
		keys := lo.Without(lo.Keys(table), "")
		slices.Sort(keys)
		return v, fmt.Errorf("%s %q is not one of %s", field, value, strings.Join(keys, ", "))
	}
	return v, nil
}

func (s SensorConfig) validate() []string {
	var problems []string
	check := func(err error) {
		if err != nil {
			problems = append(problems, err.Error())
		}
	}

	if v := s.CollisionThreshold; v != nil && (*v < 1 || *v > wire.MaxCollisionThreshold) {
		problems = append(problems, fmt.Sprintf("sensors.collision_threshold %d out of range 1-%d", *v, wire.MaxCollisionThreshold))
	}
	if v := s.LevelThreshold; v != nil && (*v < 1 || *v > wire.MaxLevelThreshold) {
		problems = append(problems, fmt.Sprintf("sensors.level_threshold %d out of range 1-%d", *v, wire.MaxLevelThreshold))
	}
	if v := s.DoubleTapTiming; v != nil && (*v < 1 || *v > wire.MaxDoubleTapTiming) {
		problems = append(problems, fmt.Sprintf("sensors.double_tap_timing %d out of range 1-%d", *v, wire.MaxDoubleTapTiming))
	}
	if s.IDNotify != nil {
		_, err := lookup(conditions, "sensors.id_notify.condition", s.IDNotify.Condition)
		check(err)
	}
	if s.Magnetic != nil {
		_, err := lookup(magneticModes, "sensors.magnetic.mode", s.Magnetic.Mode)
		check(err)
		_, err = lookup(conditions, "sensors.magnetic.condition", s.Magnetic.Condition)
		check(err)
	}
	if s.Tilt != nil {
		_, err := lookup(tiltFormats, "sensors.tilt.format", s.Tilt.Format)
		check(err)
		_, err = lookup(conditions, "sensors.tilt.condition", s.Tilt.Condition)
		check(err)
	}
	for _, name := range s.Notify {
		ch, err := parseChannel(name)
		if err != nil {
			check(fmt.Errorf("sensors.notify: %w", err))
			continue
		}
		if !ch.IsNotifiable() {
			problems = append(problems, fmt.Sprintf("sensors.notify: %s does not notify", ch))
		}
	}
	return problems
}

// NotifyChannels returns the channels listed under sensors.notify, without
// duplicates. Call after Validate.
func (s SensorConfig) NotifyChannels() []wire.Channel {
	channels := lo.FilterMap(s.Notify, func(name string, _ int) (wire.Channel, bool) {
		return wire.ParseChannel(name)
	})
	return lo.Uniq(channels)
}

// ApplySensors issues every configured sensor setting to target, then
// enables the listed notifications. The sensor section is validated first:
// a bad value returns an error wrapping ErrInvalidConfig and nothing is
// sent. Otherwise it stops at the first error from target.
func (c *Config) ApplySensors(target SensorTarget) error {
	s := c.Sensors
	if problems := s.validate(); len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}

	if s.CollisionThreshold != nil {
		if err := target.SetCollisionThreshold(*s.CollisionThreshold); err != nil {
			return fmt.Errorf("collision threshold: %w", err)
		}
	}
	if s.LevelThreshold != nil {
		if err := target.SetLevelThreshold(*s.LevelThreshold); err != nil {
			return fmt.Errorf("level threshold: %w", err)
		}
	}
	if s.DoubleTapTiming != nil {
		if err := target.SetDoubleTapTiming(*s.DoubleTapTiming); err != nil {
			return fmt.Errorf("double tap timing: %w", err)
		}
	}
	if s.IDNotify != nil {
		cond, err := lookup(conditions, "sensors.id_notify.condition", s.IDNotify.Condition)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
		if err := target.SetIDNotify(s.IDNotify.Interval, cond); err != nil {
			return fmt.Errorf("id notify: %w", err)
		}
	}
	if s.IDMissedDelay != nil {
		if err := target.SetIDMissedNotify(*s.IDMissedDelay); err != nil {
			return fmt.Errorf("id missed notify: %w", err)
		}
	}
	if s.Magnetic != nil {
		mode, err := lookup(magneticModes, "sensors.magnetic.mode", s.Magnetic.Mode)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
		cond, err := lookup(conditions, "sensors.magnetic.condition", s.Magnetic.Condition)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
		if err := target.SetMagneticSensor(mode, s.Magnetic.Interval, cond); err != nil {
			return fmt.Errorf("magnetic sensor: %w", err)
		}
	}
	if s.Tilt != nil {
		format, err := lookup(tiltFormats, "sensors.tilt.format", s.Tilt.Format)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
		cond, err := lookup(conditions, "sensors.tilt.condition", s.Tilt.Condition)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
		if err := target.SetHighPrecisionTilt(format, s.Tilt.Interval, cond); err != nil {
			return fmt.Errorf("high precision tilt: %w", err)
		}
	}
	if s.MotorSpeedNotify != nil {
		if err := target.SetMotorSpeedNotify(*s.MotorSpeedNotify); err != nil {
			return fmt.Errorf("motor speed notify: %w", err)
		}
	}

	for _, ch := range s.NotifyChannels() {
		if err := target.EnableNotification(ch, true); err != nil {
			return fmt.Errorf("enable %s notifications: %w", ch, err)
		}
	}
	return nil
}
