package wire

// Event is a decoded notification or read result.
// Every decoded value, including RawEvent, reports the channel it came from.
type Event interface {
	Channel() Channel
}

// RawEvent carries a payload for which no decoder is bound to the channel.
type RawEvent struct {
	Source Channel
	Data   []byte
}

// Channel implements Event.
func (e RawEvent) Channel() Channel { return e.Source }

// ---------------------------------------------------------------------------
// Identification
// ---------------------------------------------------------------------------

// Identification is one of PositionID, StandardID or MissedID.
type Identification interface {
	Event
	isIdentification()
}

// PositionID reports the cube position on a mat.
// X, Y and Angle refer to the cube center; the Sensor fields refer to the
// optical sensor under the cube.
type PositionID struct {
	X           uint16
	Y           uint16
	Angle       uint16
	SensorX     uint16
	SensorY     uint16
	SensorAngle uint16
}

// StandardID reports a card or sticker under the cube.
type StandardID struct {
	Value uint32
	Angle uint16
}

// MissedID reports that the cube no longer reads an ID of the given kind.
type MissedID struct {
	From IDKind
}

func (PositionID) Channel() Channel { return ChannelIdentification }
func (StandardID) Channel() Channel { return ChannelIdentification }
func (MissedID) Channel() Channel   { return ChannelIdentification }

func (PositionID) isIdentification() {}
func (StandardID) isIdentification() {}
func (MissedID) isIdentification()   {}

// ---------------------------------------------------------------------------
// Motion
// ---------------------------------------------------------------------------

// MotionState is one of Motion, MagneticForce, TiltEuler or TiltQuaternion.
type MotionState interface {
	Event
	isMotionState()
}

// Motion is the motion detection report.
type Motion struct {
	Level       bool
	Collision   bool
	DoubleTap   bool
	Orientation Orientation
	Shake       uint8
}

// MagneticForce is the magnetic sensor report.
type MagneticForce struct {
	Status   uint8
	Strength uint8
	X        int8
	Y        int8
	Z        int8
}

// TiltEuler is the high-precision posture report in Euler angles (degrees).
type TiltEuler struct {
	Roll  int16
	Pitch int16
	Yaw   int16
}

// TiltQuaternion is the high-precision posture report as a quaternion.
type TiltQuaternion struct {
	W int16
	X int16
	Y int16
	Z int16
}

func (Motion) Channel() Channel         { return ChannelMotion }
func (MagneticForce) Channel() Channel  { return ChannelMotion }
func (TiltEuler) Channel() Channel      { return ChannelMotion }
func (TiltQuaternion) Channel() Channel { return ChannelMotion }

func (Motion) isMotionState()         {}
func (MagneticForce) isMotionState()  {}
func (TiltEuler) isMotionState()      {}
func (TiltQuaternion) isMotionState() {}

// ---------------------------------------------------------------------------
// Motor
// ---------------------------------------------------------------------------

// MotorStatus is one of TargetResult or SpeedReport.
type MotorStatus interface {
	Event
	isMotorStatus()
}

// TargetResult reports the outcome of a target-based motor command.
// ControlID echoes the ID given when the command was written.
type TargetResult struct {
	Kind      MotorResponseKind
	ControlID uint8
	Result    ResultCode
}

// SpeedReport reports the current speed of both motors.
type SpeedReport struct {
	Left  uint8
	Right uint8
}

func (TargetResult) Channel() Channel { return ChannelMotor }
func (SpeedReport) Channel() Channel  { return ChannelMotor }

func (TargetResult) isMotorStatus() {}
func (SpeedReport) isMotorStatus()  {}

// ---------------------------------------------------------------------------
// Button, battery
// ---------------------------------------------------------------------------

// ButtonState reports whether the button is pressed.
type ButtonState struct {
	Pressed bool
}

// BatteryLevel reports the remaining battery in percent.
type BatteryLevel struct {
	Percent uint8
}

func (ButtonState) Channel() Channel  { return ChannelButton }
func (BatteryLevel) Channel() Channel { return ChannelBattery }

// Compile-time interface satisfaction checks.
var (
	_ Identification = PositionID{}
	_ Identification = StandardID{}
	_ Identification = MissedID{}
	_ MotionState    = Motion{}
	_ MotionState    = MagneticForce{}
	_ MotionState    = TiltEuler{}
	_ MotionState    = TiltQuaternion{}
	_ MotorStatus    = TargetResult{}
	_ MotorStatus    = SpeedReport{}
	_ Event          = ButtonState{}
	_ Event          = BatteryLevel{}
	_ Event          = RawEvent{}
)
