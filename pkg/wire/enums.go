package wire

// IDKind identifies which kind of identification a report refers to.
type IDKind uint8

const (
	// IDKindInvalid is reported when the cube lost an ID of unknown kind.
	IDKindInvalid IDKind = 0

	// IDKindPosition refers to a position ID read from the mat.
	IDKindPosition IDKind = 1

	// IDKindStandard refers to a standard ID read from a card or sticker.
	IDKindStandard IDKind = 2
)

// String returns the ID kind name.
func (k IDKind) String() string {
	switch k {
	case IDKindInvalid:
		return "INVALID"
	case IDKindPosition:
		return "POSITION"
	case IDKindStandard:
		return "STANDARD"
	default:
		return "UNKNOWN"
	}
}

// Orientation is the face of the cube that points up.
type Orientation uint8

const (
	OrientationInvalid  Orientation = 0
	OrientationTopUp    Orientation = 1
	OrientationBottomUp Orientation = 2
	OrientationBackUp   Orientation = 3
	OrientationFrontUp  Orientation = 4
	OrientationRightUp  Orientation = 5
	OrientationLeftUp   Orientation = 6
)

// String returns the orientation name.
func (o Orientation) String() string {
	switch o {
	case OrientationInvalid:
		return "INVALID"
	case OrientationTopUp:
		return "TOP_UP"
	case OrientationBottomUp:
		return "BOTTOM_UP"
	case OrientationBackUp:
		return "BACK_UP"
	case OrientationFrontUp:
		return "FRONT_UP"
	case OrientationRightUp:
		return "RIGHT_UP"
	case OrientationLeftUp:
		return "LEFT_UP"
	default:
		return "UNKNOWN"
	}
}

// IsValid returns true if o is one of the seven defined orientations.
func (o Orientation) IsValid() bool {
	return o <= OrientationLeftUp
}

// AngleSpecKind selects how the cube rotates when it reaches a target.
// It occupies the top three bits of the packed angle word.
type AngleSpecKind uint8

const (
	// AngleAbsolute turns to an absolute angle in the shorter direction.
	AngleAbsolute AngleSpecKind = 0

	// AngleAbsolutePositive turns to an absolute angle in the positive direction.
	AngleAbsolutePositive AngleSpecKind = 1

	// AngleAbsoluteNegative turns to an absolute angle in the negative direction.
	AngleAbsoluteNegative AngleSpecKind = 2

	// AngleRelativePositive turns by a relative angle in the positive direction.
	AngleRelativePositive AngleSpecKind = 3

	// AngleRelativeNegative turns by a relative angle in the negative direction.
	AngleRelativeNegative AngleSpecKind = 4

	// AngleNoRotation keeps the heading; degrees are ignored.
	AngleNoRotation AngleSpecKind = 5

	// AngleSameAsMovement turns like the movement in the shorter direction.
	AngleSameAsMovement AngleSpecKind = 6
)

// String returns the angle spec kind name.
func (k AngleSpecKind) String() string {
	switch k {
	case AngleAbsolute:
		return "ABSOLUTE"
	case AngleAbsolutePositive:
		return "ABSOLUTE_POSITIVE"
	case AngleAbsoluteNegative:
		return "ABSOLUTE_NEGATIVE"
	case AngleRelativePositive:
		return "RELATIVE_POSITIVE"
	case AngleRelativeNegative:
		return "RELATIVE_NEGATIVE"
	case AngleNoRotation:
		return "NO_ROTATION"
	case AngleSameAsMovement:
		return "SAME_AS_MOVEMENT"
	default:
		return "UNKNOWN"
	}
}

// MovementKind selects how the cube travels towards a target.
type MovementKind uint8

const (
	// MovementRotateWhileMoving rotates while moving and may reverse.
	MovementRotateWhileMoving MovementKind = 0

	// MovementRotateWhileMovingForward rotates while moving, never reverses.
	MovementRotateWhileMovingForward MovementKind = 1

	// MovementRotateThenMove rotates in place before moving.
	MovementRotateThenMove MovementKind = 2
)

// maxMovementKind is the largest movement kind the firmware accepts.
const maxMovementKind = MovementRotateThenMove

// SpeedChangeKind selects the speed profile while moving towards a target.
type SpeedChangeKind uint8

const (
	SpeedConstant          SpeedChangeKind = 0
	SpeedAccelerate        SpeedChangeKind = 1
	SpeedDecelerate        SpeedChangeKind = 2
	SpeedAccelerateThenDec SpeedChangeKind = 3
)

const maxSpeedChangeKind = SpeedAccelerateThenDec

// WriteMode selects what happens to targets already queued on the cube.
type WriteMode uint8

const (
	// WriteOverwrite replaces queued targets.
	WriteOverwrite WriteMode = 0

	// WriteAppend appends to queued targets.
	WriteAppend WriteMode = 1
)

const maxWriteMode = WriteAppend

// NotifyCondition selects when a configurable sensor sends notifications.
type NotifyCondition uint8

const (
	// NotifyPeriodic notifies at every interval.
	NotifyPeriodic NotifyCondition = 0

	// NotifyChanged notifies only when the value changed.
	NotifyChanged NotifyCondition = 1

	// NotifyChangedOr300ms notifies on change, and at least every 300 ms.
	NotifyChangedOr300ms NotifyCondition = 0xff
)

// String returns the notify condition name.
func (c NotifyCondition) String() string {
	switch c {
	case NotifyPeriodic:
		return "PERIODIC"
	case NotifyChanged:
		return "CHANGED"
	case NotifyChangedOr300ms:
		return "CHANGED_OR_300MS"
	default:
		return "UNKNOWN"
	}
}

// MagneticMode selects what the magnetic sensor reports.
type MagneticMode uint8

const (
	MagneticModeDisable MagneticMode = 0
	MagneticModeStatus  MagneticMode = 1
	MagneticModeForce   MagneticMode = 2
)

// String returns the magnetic mode name.
func (m MagneticMode) String() string {
	switch m {
	case MagneticModeDisable:
		return "DISABLE"
	case MagneticModeStatus:
		return "STATUS"
	case MagneticModeForce:
		return "FORCE"
	default:
		return "UNKNOWN"
	}
}

// TiltFormat selects the representation of high-precision tilt reports.
type TiltFormat uint8

const (
	TiltFormatDisable    TiltFormat = 0
	TiltFormatEuler      TiltFormat = 1
	TiltFormatQuaternion TiltFormat = 2
)

// String returns the tilt format name.
func (f TiltFormat) String() string {
	switch f {
	case TiltFormatDisable:
		return "DISABLE"
	case TiltFormatEuler:
		return "EULER"
	case TiltFormatQuaternion:
		return "QUATERNION"
	default:
		return "UNKNOWN"
	}
}

// Direction selects forward/backward travel or positive/negative turning.
type Direction uint8

const (
	DirectionForward  Direction = 0
	DirectionBackward Direction = 1
)

// Priority selects which speed the cube keeps when both cannot be reached.
type Priority uint8

const (
	// PriorityTranslation keeps the translation speed.
	PriorityTranslation Priority = 0

	// PriorityRotation keeps the turn speed.
	PriorityRotation Priority = 1
)
