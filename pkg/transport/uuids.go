package transport

import (
	"strings"

	"github.com/google/uuid"

	"github.com/cubekit/cube-go/pkg/wire"
)

// ServiceUUID is the primary GATT service of the cube.
var ServiceUUID = uuid.MustParse("10B20100-5B3B-4571-9508-CF3EFCD7BBAE")

// characteristicUUIDs maps channels to their GATT characteristics. All
// characteristics share the service suffix and differ in the second group.
var characteristicUUIDs = map[wire.Channel]uuid.UUID{
	wire.ChannelIdentification: uuid.MustParse("10B20101-5B3B-4571-9508-CF3EFCD7BBAE"),
	wire.ChannelMotor:          uuid.MustParse("10B20102-5B3B-4571-9508-CF3EFCD7BBAE"),
	wire.ChannelLight:          uuid.MustParse("10B20103-5B3B-4571-9508-CF3EFCD7BBAE"),
	wire.ChannelSound:          uuid.MustParse("10B20104-5B3B-4571-9508-CF3EFCD7BBAE"),
	wire.ChannelMotion:         uuid.MustParse("10B20106-5B3B-4571-9508-CF3EFCD7BBAE"),
	wire.ChannelButton:         uuid.MustParse("10B20107-5B3B-4571-9508-CF3EFCD7BBAE"),
	wire.ChannelBattery:        uuid.MustParse("10B20108-5B3B-4571-9508-CF3EFCD7BBAE"),
	wire.ChannelConfig:         uuid.MustParse("10B201FF-5B3B-4571-9508-CF3EFCD7BBAE"),
}

// CharacteristicUUID returns the GATT characteristic for a channel.
func CharacteristicUUID(ch wire.Channel) (uuid.UUID, bool) {
	u, ok := characteristicUUIDs[ch]
	return u, ok
}

// ChannelForUUID returns the channel served by a characteristic.
// Matching is case-insensitive on the canonical string form.
func ChannelForUUID(s string) (wire.Channel, bool) {
	u, err := uuid.Parse(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	for ch, cu := range characteristicUUIDs {
		if cu == u {
			return ch, true
		}
	}
	return 0, false
}
