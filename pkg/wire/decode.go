package wire

import "unicode/utf8"

// Identification tags.
const (
	tagPositionID       = 0x01
	tagStandardID       = 0x02
	tagPositionIDMissed = 0x03
	tagStandardIDMissed = 0x04
	tagInvalidIDMissed  = 0xff
)

// Motion tags.
const (
	tagMotion        = 0x01
	tagMagnetic      = 0x02
	tagTilt          = 0x03
	subtagTiltEuler  = 0x01
	subtagTiltQuater = 0x02
)

const (
	tagButton                  = 0x01
	tagProtocolVersionResponse = 0x81
)

// Fixed payload sizes.
const (
	positionIDSize     = 13
	standardIDSize     = 7
	motionShortSize    = 3
	motionSize         = 6
	magneticSize       = 6
	tiltEulerSize      = 8
	tiltQuaternionSize = 10
	buttonSize         = 2
	batterySize        = 1
	motorResultSize    = 3
	motorSpeedLongSize = 5
)

// DecodeIdentification decodes an identification channel payload.
func DecodeIdentification(data []byte) (Identification, error) {
	if len(data) == 0 {
		return nil, newMalformed(ChannelIdentification, data, "empty payload")
	}

	switch data[0] {
	case tagPositionID:
		if len(data) != positionIDSize {
			return nil, newMalformed(ChannelIdentification, data, "bad position ID length")
		}
		return PositionID{
			X:           readUint16(data, 1),
			Y:           readUint16(data, 3),
			Angle:       readUint16(data, 5),
			SensorX:     readUint16(data, 7),
			SensorY:     readUint16(data, 9),
			SensorAngle: readUint16(data, 11),
		}, nil
	case tagStandardID:
		if len(data) != standardIDSize {
			return nil, newMalformed(ChannelIdentification, data, "bad standard ID length")
		}
		return StandardID{
			Value: readUint32(data, 1),
			Angle: readUint16(data, 5),
		}, nil
	case tagPositionIDMissed:
		return MissedID{From: IDKindPosition}, nil
	case tagStandardIDMissed:
		return MissedID{From: IDKindStandard}, nil
	case tagInvalidIDMissed:
		return MissedID{From: IDKindInvalid}, nil
	}

	return nil, newMalformed(ChannelIdentification, data, "unknown tag")
}

// DecodeMotion decodes a motion channel payload.
//
// A three-byte motion report (older firmware) carries only the level and
// collision flags; the remaining fields are reported as false, Invalid and 0.
func DecodeMotion(data []byte) (MotionState, error) {
	if len(data) == 0 {
		return nil, newMalformed(ChannelMotion, data, "empty payload")
	}

	switch data[0] {
	case tagMotion:
		switch len(data) {
		case motionShortSize:
			return Motion{
				Level:       data[1] != 0,
				Collision:   data[2] != 0,
				Orientation: OrientationInvalid,
			}, nil
		case motionSize:
			orientation := Orientation(data[4])
			if !orientation.IsValid() {
				return nil, newMalformed(ChannelMotion, data, "unknown orientation")
			}
			return Motion{
				Level:       data[1] != 0,
				Collision:   data[2] != 0,
				DoubleTap:   data[3] != 0,
				Orientation: orientation,
				Shake:       data[5],
			}, nil
		}
	case tagMagnetic:
		if len(data) == magneticSize {
			return MagneticForce{
				Status:   data[1],
				Strength: data[2],
				X:        int8(data[3]),
				Y:        int8(data[4]),
				Z:        int8(data[5]),
			}, nil
		}
	case tagTilt:
		if len(data) < 2 {
			break
		}
		switch {
		case data[1] == subtagTiltEuler && len(data) == tiltEulerSize:
			return TiltEuler{
				Roll:  readInt16(data, 2),
				Pitch: readInt16(data, 4),
				Yaw:   readInt16(data, 6),
			}, nil
		case data[1] == subtagTiltQuater && len(data) == tiltQuaternionSize:
			return TiltQuaternion{
				W: readInt16(data, 2),
				X: readInt16(data, 4),
				Y: readInt16(data, 6),
				Z: readInt16(data, 8),
			}, nil
		}
	}

	return nil, newMalformed(ChannelMotion, data, "unknown tag or length")
}

// DecodeButton decodes a button channel payload.
func DecodeButton(data []byte) (ButtonState, error) {
	if len(data) != buttonSize || data[0] != tagButton {
		return ButtonState{}, newMalformed(ChannelButton, data, "unknown tag or length")
	}
	return ButtonState{Pressed: data[1] != 0}, nil
}

// DecodeBattery decodes a battery channel payload.
func DecodeBattery(data []byte) (BatteryLevel, error) {
	if len(data) != batterySize {
		return BatteryLevel{}, newMalformed(ChannelBattery, data, "bad length")
	}
	return BatteryLevel{Percent: data[0]}, nil
}

// DecodeMotor decodes a motor channel payload.
//
// Target responses are three bytes (kind, control ID, result). Speed
// reports are three bytes (kind, left, right); a five-byte variant with
// trailing bytes is accepted as well.
func DecodeMotor(data []byte) (MotorStatus, error) {
	if len(data) != motorResultSize && len(data) != motorSpeedLongSize {
		return nil, newMalformed(ChannelMotor, data, "bad length")
	}

	kind := MotorResponseKind(data[0])
	switch {
	case kind == MotorResponseSpeed:
		return SpeedReport{Left: data[1], Right: data[2]}, nil
	case len(data) == motorResultSize && (kind == MotorResponseTarget || kind == MotorResponseMultipleTargets):
		return TargetResult{
			Kind:      kind,
			ControlID: data[1],
			Result:    ResultCode(data[2]),
		}, nil
	}

	return nil, newMalformed(ChannelMotor, data, "unknown kind")
}

// DecodeProtocolVersionResponse decodes the config channel response to a
// protocol version request. The byte after the tag is reserved. A response
// that stops before the version string decodes to "".
func DecodeProtocolVersionResponse(data []byte) (string, error) {
	if len(data) == 0 || data[0] != tagProtocolVersionResponse {
		return "", newMalformed(ChannelConfig, data, "not a protocol version response")
	}
	version := data[min(len(data), 2):]
	if !utf8.Valid(version) {
		return "", newMalformed(ChannelConfig, data, "version is not UTF-8")
	}
	return string(version), nil
}
