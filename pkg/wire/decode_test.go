package wire

import (
	"bytes"
	"errors"
	"testing"
)

func TestDecodeIdentification(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want Identification
	}{
		{
			name: "position",
			data: []byte{0x01, 0x2c, 0x01, 0xc8, 0x00, 0x5a, 0x00, 0x2d, 0x01, 0xc9, 0x00, 0x5b, 0x00},
			want: PositionID{X: 300, Y: 200, Angle: 90, SensorX: 301, SensorY: 201, SensorAngle: 91},
		},
		{
			name: "standard",
			data: []byte{0x02, 0x01, 0x00, 0x38, 0x00, 0x0f, 0x00},
			want: StandardID{Value: 0x00380001, Angle: 15},
		},
		{
			name: "position missed",
			data: []byte{0x03},
			want: MissedID{From: IDKindPosition},
		},
		{
			name: "standard missed",
			data: []byte{0x04},
			want: MissedID{From: IDKindStandard},
		},
		{
			name: "invalid missed",
			data: []byte{0xff},
			want: MissedID{From: IDKindInvalid},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeIdentification(tt.data)
			if err != nil {
				t.Fatalf("DecodeIdentification failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %#v, want %#v", got, tt.want)
			}
			if got.Channel() != ChannelIdentification {
				t.Errorf("Channel() = %s", got.Channel())
			}
		})
	}
}

func TestDecodeMotion(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want MotionState
	}{
		{
			name: "short motion",
			data: []byte{0x01, 0x01, 0x00},
			want: Motion{Level: true, Orientation: OrientationInvalid},
		},
		{
			name: "full motion",
			data: []byte{0x01, 0x00, 0x01, 0x01, 0x02, 0x03},
			want: Motion{Collision: true, DoubleTap: true, Orientation: OrientationBottomUp, Shake: 3},
		},
		{
			name: "magnetic force",
			data: []byte{0x02, 0x01, 0x0a, 0xfe, 0x05, 0x80},
			want: MagneticForce{Status: 1, Strength: 10, X: -2, Y: 5, Z: -128},
		},
		{
			name: "tilt euler",
			data: []byte{0x03, 0x01, 0x0a, 0x00, 0xf6, 0xff, 0x68, 0x01},
			want: TiltEuler{Roll: 10, Pitch: -10, Yaw: 360},
		},
		{
			name: "tilt quaternion",
			data: []byte{0x03, 0x02, 0x01, 0x00, 0xff, 0xff, 0x00, 0x80, 0xff, 0x7f},
			want: TiltQuaternion{W: 1, X: -1, Y: -32768, Z: 32767},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeMotion(tt.data)
			if err != nil {
				t.Fatalf("DecodeMotion failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestDecodeMotor(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want MotorStatus
	}{
		{
			name: "target result",
			data: []byte{0x83, 0x07, 0x00},
			want: TargetResult{Kind: MotorResponseTarget, ControlID: 7, Result: ResultSuccess},
		},
		{
			name: "multiple targets superseded",
			data: []byte{0x84, 0x02, 0x05},
			want: TargetResult{Kind: MotorResponseMultipleTargets, ControlID: 2, Result: ResultSuperseded},
		},
		{
			name: "speed report",
			data: []byte{0xe0, 0x14, 0x1e},
			want: SpeedReport{Left: 20, Right: 30},
		},
		{
			name: "long speed report",
			data: []byte{0xe0, 0x14, 0x1e, 0x00, 0x00},
			want: SpeedReport{Left: 20, Right: 30},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeMotor(tt.data)
			if err != nil {
				t.Fatalf("DecodeMotor failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestDecodeButtonAndBattery(t *testing.T) {
	button, err := DecodeButton([]byte{0x01, 0x80})
	if err != nil {
		t.Fatalf("DecodeButton failed: %v", err)
	}
	if !button.Pressed {
		t.Error("expected button pressed")
	}

	button, err = DecodeButton([]byte{0x01, 0x00})
	if err != nil {
		t.Fatalf("DecodeButton failed: %v", err)
	}
	if button.Pressed {
		t.Error("expected button released")
	}

	battery, err := DecodeBattery([]byte{80})
	if err != nil {
		t.Fatalf("DecodeBattery failed: %v", err)
	}
	if battery.Percent != 80 {
		t.Errorf("Percent = %d, want 80", battery.Percent)
	}
}

func TestDecodeProtocolVersionResponse(t *testing.T) {
	got, err := DecodeProtocolVersionResponse([]byte{0x81, 0x00, '2', '.', '4', '.', '0'})
	if err != nil {
		t.Fatalf("DecodeProtocolVersionResponse failed: %v", err)
	}
	if got != "2.4.0" {
		t.Errorf("got %q, want %q", got, "2.4.0")
	}
}

func TestDecodeProtocolVersionResponseTruncated(t *testing.T) {
	for _, data := range [][]byte{{0x81}, {0x81, 0x00}} {
		got, err := DecodeProtocolVersionResponse(data)
		if err != nil {
			t.Errorf("% x: unexpected error %v", data, err)
			continue
		}
		if got != "" {
			t.Errorf("% x: got %q, want empty", data, got)
		}
	}
}

func TestDecodeMalformed(t *testing.T) {
	tests := []struct {
		name    string
		channel Channel
		data    []byte
		decode  func([]byte) error
	}{
		{"id empty", ChannelIdentification, []byte{}, decodeErr(DecodeIdentification)},
		{"id unknown tag", ChannelIdentification, []byte{0x05}, decodeErr(DecodeIdentification)},
		{"id short position", ChannelIdentification, []byte{0x01, 0x00, 0x00}, decodeErr(DecodeIdentification)},
		{"id long standard", ChannelIdentification, []byte{0x02, 0, 0, 0, 0, 0, 0, 0}, decodeErr(DecodeIdentification)},
		{"motion empty", ChannelMotion, nil, decodeErr(DecodeMotion)},
		{"motion bad length", ChannelMotion, []byte{0x01, 0x00, 0x00, 0x00}, decodeErr(DecodeMotion)},
		{"motion bad orientation", ChannelMotion, []byte{0x01, 0x00, 0x00, 0x00, 0x07, 0x00}, decodeErr(DecodeMotion)},
		{"motion short magnetic", ChannelMotion, []byte{0x02, 0x01}, decodeErr(DecodeMotion)},
		{"motion tilt without subtag", ChannelMotion, []byte{0x03}, decodeErr(DecodeMotion)},
		{"motion tilt unknown subtag", ChannelMotion, []byte{0x03, 0x03, 0, 0, 0, 0, 0, 0}, decodeErr(DecodeMotion)},
		{"motion euler with quaternion length", ChannelMotion, []byte{0x03, 0x01, 0, 0, 0, 0, 0, 0, 0, 0}, decodeErr(DecodeMotion)},
		{"motion unknown tag", ChannelMotion, []byte{0x09, 0x00, 0x00}, decodeErr(DecodeMotion)},
		{"button unknown tag", ChannelButton, []byte{0x99, 0x01}, decodeErr(DecodeButton)},
		{"button short", ChannelButton, []byte{0x01}, decodeErr(DecodeButton)},
		{"battery empty", ChannelBattery, nil, decodeErr(DecodeBattery)},
		{"battery long", ChannelBattery, []byte{1, 2}, decodeErr(DecodeBattery)},
		{"motor long result", ChannelMotor, []byte{0x83, 0x01, 0x00, 0x00}, decodeErr(DecodeMotor)},
		{"motor five byte result", ChannelMotor, []byte{0x83, 0x01, 0x00, 0x00, 0x00}, decodeErr(DecodeMotor)},
		{"motor unknown kind", ChannelMotor, []byte{0x10, 0x01, 0x01}, decodeErr(DecodeMotor)},
		{"version wrong tag", ChannelConfig, []byte{0x82, 0x00, '2'}, decodeErr(DecodeProtocolVersionResponse)},
		{"version empty", ChannelConfig, []byte{}, decodeErr(DecodeProtocolVersionResponse)},
		{"version not utf8", ChannelConfig, []byte{0x81, 0x00, 0xff, 0xfe}, decodeErr(DecodeProtocolVersionResponse)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.decode(tt.data)
			if !errors.Is(err, ErrMalformedMessage) {
				t.Fatalf("expected ErrMalformedMessage, got %v", err)
			}

			var malformed *MalformedMessageError
			if !errors.As(err, &malformed) {
				t.Fatalf("expected *MalformedMessageError, got %T", err)
			}
			if malformed.Channel != tt.channel {
				t.Errorf("Channel = %s, want %s", malformed.Channel, tt.channel)
			}
			if !bytes.Equal(malformed.Data, tt.data) {
				t.Errorf("Data = % x, want % x", malformed.Data, tt.data)
			}
		})
	}
}

func TestMalformedMessageCopiesData(t *testing.T) {
	data := []byte{0x99, 0x01}
	_, err := DecodeButton(data)

	var malformed *MalformedMessageError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected *MalformedMessageError, got %T", err)
	}
	data[0] = 0x00
	if malformed.Data[0] != 0x99 {
		t.Error("error data aliases the input buffer")
	}
}

func decodeErr[T any](fn func([]byte) (T, error)) func([]byte) error {
	return func(data []byte) error {
		_, err := fn(data)
		return err
	}
}
