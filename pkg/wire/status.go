package wire

// ResultCode is the outcome of a target-based motor command, reported in a
// TargetResult notification.
type ResultCode uint8

const (
	// ResultSuccess indicates the cube reached the target.
	ResultSuccess ResultCode = 0

	// ResultTimeout indicates the target was not reached before the timeout.
	ResultTimeout ResultCode = 1

	// ResultIDMissed indicates the cube lost its position ID on the way.
	ResultIDMissed ResultCode = 2

	// ResultInvalidParams indicates an invalid combination of parameters.
	ResultInvalidParams ResultCode = 3

	// ResultInvalidState indicates the cube could not move, e.g. motors off.
	ResultInvalidState ResultCode = 4

	// ResultSuperseded indicates another motor command replaced this one.
	ResultSuperseded ResultCode = 5

	// ResultUnsupported indicates the firmware does not support the command.
	ResultUnsupported ResultCode = 6
)

// String returns the result code name.
func (r ResultCode) String() string {
	switch r {
	case ResultSuccess:
		return "SUCCESS"
	case ResultTimeout:
		return "TIMEOUT"
	case ResultIDMissed:
		return "ID_MISSED"
	case ResultInvalidParams:
		return "INVALID_PARAMS"
	case ResultInvalidState:
		return "INVALID_STATE"
	case ResultSuperseded:
		return "SUPERSEDED"
	case ResultUnsupported:
		return "UNSUPPORTED"
	default:
		return "UNKNOWN"
	}
}

// IsSuccess returns true if the result indicates the target was reached.
func (r ResultCode) IsSuccess() bool {
	return r == ResultSuccess
}

// MotorResponseKind is the tag byte of a motor channel notification.
type MotorResponseKind uint8

const (
	// MotorResponseTarget answers a single-target command.
	MotorResponseTarget MotorResponseKind = 0x83

	// MotorResponseMultipleTargets answers a multiple-targets command.
	MotorResponseMultipleTargets MotorResponseKind = 0x84

	// MotorResponseSpeed reports the current motor speeds.
	MotorResponseSpeed MotorResponseKind = 0xe0
)

// String returns the motor response kind name.
func (k MotorResponseKind) String() string {
	switch k {
	case MotorResponseTarget:
		return "TARGET"
	case MotorResponseMultipleTargets:
		return "MULTIPLE_TARGETS"
	case MotorResponseSpeed:
		return "SPEED"
	default:
		return "UNKNOWN"
	}
}
