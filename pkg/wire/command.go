package wire

import "time"

// Command tags, one set per channel.
const (
	motorTagTimed           = 0x02
	motorTagTarget          = 0x03
	motorTagMultipleTargets = 0x04
	motorTagAcceleration    = 0x05

	lightTagOff     = 0x01
	lightTagOn      = 0x03
	lightTagPattern = 0x04

	soundTagOff    = 0x01
	soundTagEffect = 0x02
	soundTagNotes  = 0x03

	configTagProtocolVersion    = 0x01
	configTagLevelThreshold     = 0x05
	configTagCollisionThreshold = 0x06
	configTagDoubleTapTiming    = 0x17
	configTagIDNotify           = 0x18
	configTagIDMissedNotify     = 0x19
	configTagMagneticSensor     = 0x1b
	configTagMotorSpeedNotify   = 0x1c
	configTagHighPrecisionTilt  = 0x1d
	configReserved              = 0x00
)

// Clamp ceilings accepted by the firmware.
const (
	MaxTranslationSpeed   = 115
	MaxLevelThreshold     = 45
	MaxCollisionThreshold = 10
	MaxDoubleTapTiming    = 7
	MaxGoalBytes          = 29
	goalSize              = 6
)

// NoteRest is the note number of a silent note.
const NoteRest = 128

// Target is a goal position with an optional final heading.
type Target struct {
	X       int16
	Y       int16
	Angle   AngleSpecKind
	Degrees uint16
}

// MotorTarget parameterizes a move-to-target command.
// ControlID, Timeout and MaxSpeed are clamped to 255, Movement to 2 and
// SpeedChange to 3.
type MotorTarget struct {
	ControlID   int
	Target      Target
	Timeout     int
	Movement    MovementKind
	MaxSpeed    int
	SpeedChange SpeedChangeKind
}

// MultiTarget parameterizes a move-through-targets command.
// Clamps are those of MotorTarget plus WriteMode to 1.
type MultiTarget struct {
	ControlID   int
	Goals       []Target
	WriteMode   WriteMode
	Timeout     int
	Movement    MovementKind
	MaxSpeed    int
	SpeedChange SpeedChangeKind
}

// Acceleration parameterizes a motor command with acceleration.
// TranslationSpeed is clamped to 115, TranslationAccel to 255, TurnSpeed to
// 65535, directions and priority to 1 and Duration to 2.55 s.
type Acceleration struct {
	TranslationSpeed int
	TranslationAccel int
	TurnSpeed        int
	TurnDirection    Direction
	TravelDirection  Direction
	Priority         Priority
	Duration         time.Duration
}

// Light is one step of an indicator light command.
type Light struct {
	R, G, B  uint8
	Duration time.Duration
}

// Note is one step of a note sequence. Number is a MIDI note number
// (0-127) or NoteRest.
type Note struct {
	Number   uint8
	Duration time.Duration
	Volume   uint8
}
