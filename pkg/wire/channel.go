package wire

import "strings"

// Channel identifies one logical GATT characteristic of the cube.
type Channel uint8

const (
	// ChannelIdentification carries position ID and standard ID reports.
	ChannelIdentification Channel = 1

	// ChannelMotor accepts motor commands and reports motor status.
	ChannelMotor Channel = 2

	// ChannelLight accepts indicator light commands.
	ChannelLight Channel = 3

	// ChannelSound accepts sound commands.
	ChannelSound Channel = 4

	// ChannelMotion reports motion, magnetic and posture sensor data.
	ChannelMotion Channel = 5

	// ChannelButton reports the button state.
	ChannelButton Channel = 6

	// ChannelBattery reports the battery level.
	ChannelBattery Channel = 7

	// ChannelConfig accepts configuration commands and reports responses.
	ChannelConfig Channel = 8
)

// Channels lists every channel in identifier order.
var Channels = []Channel{
	ChannelIdentification,
	ChannelMotor,
	ChannelLight,
	ChannelSound,
	ChannelMotion,
	ChannelButton,
	ChannelBattery,
	ChannelConfig,
}

// String returns the channel name.
func (c Channel) String() string {
	switch c {
	case ChannelIdentification:
		return "IDENTIFICATION"
	case ChannelMotor:
		return "MOTOR"
	case ChannelLight:
		return "LIGHT"
	case ChannelSound:
		return "SOUND"
	case ChannelMotion:
		return "MOTION"
	case ChannelButton:
		return "BUTTON"
	case ChannelBattery:
		return "BATTERY"
	case ChannelConfig:
		return "CONFIG"
	default:
		return "UNKNOWN"
	}
}

// IsValid returns true if c is one of the defined channels.
func (c Channel) IsValid() bool {
	return c >= ChannelIdentification && c <= ChannelConfig
}

// IsNotifiable returns true if the channel can deliver notifications.
// Light and Sound are write-only.
func (c Channel) IsNotifiable() bool {
	return c.IsValid() && c != ChannelLight && c != ChannelSound
}

// ParseChannel returns the channel with the given case-insensitive name.
// "id" is accepted as a short form of IDENTIFICATION.
func ParseChannel(name string) (Channel, bool) {
	if strings.EqualFold(name, "id") {
		return ChannelIdentification, true
	}
	for _, c := range Channels {
		if strings.EqualFold(c.String(), name) {
			return c, true
		}
	}
	return 0, false
}
