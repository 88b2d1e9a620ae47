package service

import (
	"time"

	"github.com/cubekit/cube-go/pkg/wire"
)

// Motor, light and sound commands are written without response; only the
// protocol version request waits for an acknowledgement.

// SetMotor drives both wheels. Speeds are signed, the sign selecting the
// direction; zero duration runs until the next motor command.
func (s *DeviceSession) SetMotor(left, right int, d time.Duration) error {
	return s.write(wire.ChannelMotor, wire.EncodeMotor(left, right, d), false)
}

// SetMotorTarget moves the cube to one target position.
func (s *DeviceSession) SetMotorTarget(t wire.MotorTarget) error {
	return s.write(wire.ChannelMotor, wire.EncodeMotorTarget(t), false)
}

// SetMotorMultipleTargets moves the cube through a sequence of targets.
// At most four goals fit into one command.
func (s *DeviceSession) SetMotorMultipleTargets(t wire.MultiTarget) error {
	data, err := wire.EncodeMotorMultipleTargets(t)
	if err != nil {
		return err
	}
	return s.write(wire.ChannelMotor, data, false)
}

// SetMotorAcceleration drives the cube with acceleration control.
func (s *DeviceSession) SetMotorAcceleration(a wire.Acceleration) error {
	return s.write(wire.ChannelMotor, wire.EncodeMotorAcceleration(a), false)
}

// SetLight turns the indicator on.
func (s *DeviceSession) SetLight(l wire.Light) error {
	return s.write(wire.ChannelLight, wire.EncodeLight(l), false)
}

// SetLightOff turns the indicator off.
func (s *DeviceSession) SetLightOff() error {
	return s.write(wire.ChannelLight, wire.EncodeLightOff(), false)
}

// SetLightPattern plays a light sequence. A repeat of 0 loops forever.
func (s *DeviceSession) SetLightPattern(lights []wire.Light, repeat uint8) error {
	data, err := wire.EncodeLightPattern(lights, repeat)
	if err != nil {
		return err
	}
	return s.write(wire.ChannelLight, data, false)
}

// PlaySound plays a built-in sound effect.
func (s *DeviceSession) PlaySound(effect, volume uint8) error {
	return s.write(wire.ChannelSound, wire.EncodeSound(effect, volume), false)
}

// PlayNotes plays a MIDI note sequence. A repeat of 0 loops forever.
func (s *DeviceSession) PlayNotes(notes []wire.Note, repeat uint8) error {
	data, err := wire.EncodeSoundByNotes(notes, repeat)
	if err != nil {
		return err
	}
	return s.write(wire.ChannelSound, data, false)
}

// StopSound stops any playing sound.
func (s *DeviceSession) StopSound() error {
	return s.write(wire.ChannelSound, wire.EncodeSoundOff(), false)
}

// SetCollisionThreshold sets collision sensitivity (1-10).
func (s *DeviceSession) SetCollisionThreshold(level int) error {
	return s.write(wire.ChannelConfig, wire.EncodeConfigCollisionThreshold(level), false)
}

// SetLevelThreshold sets the tilt angle in degrees above which the cube
// reports it is not level.
func (s *DeviceSession) SetLevelThreshold(degrees int) error {
	return s.write(wire.ChannelConfig, wire.EncodeConfigLevelThreshold(degrees), false)
}

// SetDoubleTapTiming sets the double tap detection window (1-7).
func (s *DeviceSession) SetDoubleTapTiming(level int) error {
	return s.write(wire.ChannelConfig, wire.EncodeConfigDoubleTapTiming(level), false)
}

// SetIDNotify sets how often identification reports are sent.
func (s *DeviceSession) SetIDNotify(interval time.Duration, cond wire.NotifyCondition) error {
	return s.write(wire.ChannelConfig, wire.EncodeConfigIDNotify(interval, cond), false)
}

// SetIDMissedNotify sets the delay before an ID loss is reported.
func (s *DeviceSession) SetIDMissedNotify(delay time.Duration) error {
	return s.write(wire.ChannelConfig, wire.EncodeConfigIDMissedNotify(delay), false)
}

// SetMagneticSensor configures magnetic sensor reporting.
func (s *DeviceSession) SetMagneticSensor(mode wire.MagneticMode, interval time.Duration, cond wire.NotifyCondition) error {
	return s.write(wire.ChannelConfig, wire.EncodeConfigMagneticSensor(mode, interval, cond), false)
}

// SetMotorSpeedNotify enables or disables motor speed reports.
func (s *DeviceSession) SetMotorSpeedNotify(enable bool) error {
	return s.write(wire.ChannelConfig, wire.EncodeConfigMotorSpeedNotify(enable), false)
}

// SetHighPrecisionTilt configures high precision tilt reporting.
func (s *DeviceSession) SetHighPrecisionTilt(format wire.TiltFormat, interval time.Duration, cond wire.NotifyCondition) error {
	return s.write(wire.ChannelConfig, wire.EncodeConfigHighPrecisionTilt(format, interval, cond), false)
}
