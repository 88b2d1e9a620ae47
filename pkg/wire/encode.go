package wire

import "time"

// motorDirection returns the direction byte of a signed motor speed.
func motorDirection(v int) byte {
	if v >= 0 {
		return 1
	}
	return 2
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// EncodeMotor encodes a timed motor command. Speeds are signed; the sign
// selects the direction. |left| and |right| must not exceed 255; they are
// not clamped. A zero duration runs the motors until the next command.
func EncodeMotor(left, right int, d time.Duration) []byte {
	return []byte{
		motorTagTimed,
		1, motorDirection(left), byte(abs(left)),
		2, motorDirection(right), byte(abs(right)),
		durationByte(d, centiUnit),
	}
}

// appendGoal appends the six-byte x, y, angle-word encoding of a target.
func appendGoal(b []byte, t Target) []byte {
	b = appendInt16(b, t.X)
	b = appendInt16(b, t.Y)
	return appendUint16(b, PackAngle(t.Angle, t.Degrees))
}

// EncodeMotorTarget encodes a move-to-target command.
func EncodeMotorTarget(m MotorTarget) []byte {
	b := make([]byte, 0, 7+goalSize)
	b = append(b,
		motorTagTarget,
		clampByte(m.ControlID, 0xff),
		clampByte(m.Timeout, 0xff),
		clampByte(m.Movement, maxMovementKind),
		clampByte(m.MaxSpeed, 0xff),
		clampByte(m.SpeedChange, maxSpeedChangeKind),
		configReserved,
	)
	return appendGoal(b, m.Target)
}

// EncodeMotorMultipleTargets encodes a move-through-targets command.
// The goal list must fit MaxGoalBytes; otherwise a *PayloadTooLargeError
// is returned and nothing is encoded.
func EncodeMotorMultipleTargets(m MultiTarget) ([]byte, error) {
	if size := len(m.Goals) * goalSize; size > MaxGoalBytes {
		return nil, &PayloadTooLargeError{What: "goal list", Size: size, Limit: MaxGoalBytes}
	}

	b := make([]byte, 0, 8+len(m.Goals)*goalSize)
	b = append(b,
		motorTagMultipleTargets,
		clampByte(m.ControlID, 0xff),
		clampByte(m.Timeout, 0xff),
		clampByte(m.Movement, maxMovementKind),
		clampByte(m.MaxSpeed, 0xff),
		clampByte(m.SpeedChange, maxSpeedChangeKind),
		configReserved,
		clampByte(m.WriteMode, maxWriteMode),
	)
	for _, g := range m.Goals {
		b = appendGoal(b, g)
	}
	return b, nil
}

// EncodeMotorAcceleration encodes a motor command with acceleration.
func EncodeMotorAcceleration(a Acceleration) []byte {
	turn := a.TurnSpeed
	switch {
	case turn < 0:
		turn = 0
	case turn > 0xffff:
		turn = 0xffff
	}

	b := make([]byte, 0, 9)
	b = append(b,
		motorTagAcceleration,
		clampByte(a.TranslationSpeed, MaxTranslationSpeed),
		clampByte(a.TranslationAccel, 0xff),
	)
	b = appendUint16(b, uint16(turn))
	return append(b,
		clampByte(a.TurnDirection, DirectionBackward),
		clampByte(a.TravelDirection, DirectionBackward),
		clampByte(a.Priority, PriorityRotation),
		durationByte(a.Duration, centiUnit),
	)
}

// EncodeLight encodes a single indicator light step. A zero duration keeps
// the light on until the next light command.
func EncodeLight(l Light) []byte {
	return []byte{lightTagOn, durationByte(l.Duration, centiUnit), 1, 1, l.R, l.G, l.B}
}

// EncodeLightOff encodes the command that turns all lights off.
func EncodeLightOff() []byte {
	return []byte{lightTagOff}
}

// EncodeLightPattern encodes a sequence of light steps played repeat times
// (0 repeats forever).
func EncodeLightPattern(lights []Light, repeat uint8) ([]byte, error) {
	if len(lights) > 0xff {
		return nil, &PayloadTooLargeError{What: "light pattern", Size: len(lights), Limit: 0xff}
	}

	b := make([]byte, 0, 3+len(lights)*6)
	b = append(b, lightTagPattern, repeat, byte(len(lights)))
	for _, l := range lights {
		b = append(b, durationByte(l.Duration, centiUnit), 1, 1, l.R, l.G, l.B)
	}
	return b, nil
}

// EncodeSound encodes a built-in sound effect.
func EncodeSound(effect, volume uint8) []byte {
	return []byte{soundTagEffect, effect, volume}
}

// EncodeSoundOff encodes the command that stops sound playback.
func EncodeSoundOff() []byte {
	return []byte{soundTagOff}
}

// EncodeSoundByNotes encodes a note sequence played repeat times
// (0 repeats forever).
func EncodeSoundByNotes(notes []Note, repeat uint8) ([]byte, error) {
	if len(notes) > 0xff {
		return nil, &PayloadTooLargeError{What: "note sequence", Size: len(notes), Limit: 0xff}
	}

	b := make([]byte, 0, 3+len(notes)*3)
	b = append(b, soundTagNotes, repeat, byte(len(notes)))
	for _, n := range notes {
		b = append(b, durationByte(n.Duration, centiUnit), n.Number, n.Volume)
	}
	return b, nil
}

// EncodeConfigProtocolVersionRequest encodes the protocol version request.
// The response arrives on the config channel.
func EncodeConfigProtocolVersionRequest() []byte {
	return []byte{configTagProtocolVersion, configReserved}
}

// EncodeConfigLevelThreshold sets the tilt angle in degrees beyond which the
// cube is no longer level. Clamped to 45.
func EncodeConfigLevelThreshold(degrees int) []byte {
	return []byte{configTagLevelThreshold, configReserved, clampByte(degrees, MaxLevelThreshold)}
}

// EncodeConfigCollisionThreshold sets the collision detection sensitivity.
// Clamped to 10.
func EncodeConfigCollisionThreshold(level int) []byte {
	return []byte{configTagCollisionThreshold, configReserved, clampByte(level, MaxCollisionThreshold)}
}

// EncodeConfigDoubleTapTiming sets the double tap detection window.
// Clamped to 7.
func EncodeConfigDoubleTapTiming(level int) []byte {
	return []byte{configTagDoubleTapTiming, configReserved, clampByte(level, MaxDoubleTapTiming)}
}

// EncodeConfigIDNotify sets the identification notification interval
// (10 ms units) and condition.
func EncodeConfigIDNotify(interval time.Duration, cond NotifyCondition) []byte {
	return []byte{configTagIDNotify, configReserved, durationByte(interval, centiUnit), byte(cond)}
}

// EncodeConfigIDMissedNotify sets the delay (10 ms units) before an ID
// missed notification is sent.
func EncodeConfigIDMissedNotify(delay time.Duration) []byte {
	return []byte{configTagIDMissedNotify, configReserved, durationByte(delay, centiUnit)}
}

// EncodeConfigMagneticSensor configures the magnetic sensor. The interval
// is expressed in 20 ms units, unlike the other configuration intervals.
func EncodeConfigMagneticSensor(mode MagneticMode, interval time.Duration, cond NotifyCondition) []byte {
	return []byte{configTagMagneticSensor, configReserved, byte(mode), durationByte(interval, magneticUnit), byte(cond)}
}

// EncodeConfigMotorSpeedNotify enables or disables motor speed reports.
func EncodeConfigMotorSpeedNotify(enable bool) []byte {
	return []byte{configTagMotorSpeedNotify, configReserved, boolByte(enable)}
}

// EncodeConfigHighPrecisionTilt configures high-precision tilt reports
// with an interval in 10 ms units.
func EncodeConfigHighPrecisionTilt(format TiltFormat, interval time.Duration, cond NotifyCondition) []byte {
	return []byte{configTagHighPrecisionTilt, configReserved, byte(format), durationByte(interval, centiUnit), byte(cond)}
}
