package wire

import "testing"

func TestPackAngle(t *testing.T) {
	tests := []struct {
		kind    AngleSpecKind
		degrees uint16
		want    uint16
	}{
		{AngleAbsolute, 0, 0x0000},
		{AngleAbsolute, 90, 0x005a},
		{AngleAbsolutePositive, 360, 0x2168},
		{AngleNoRotation, 0, 0xa000},
		{AngleSameAsMovement, 0x1fff, 0xdfff},
		// Degrees wider than 13 bits must not leak into the kind bits.
		{AngleAbsolute, 0x2001, 0x0001},
		{AngleRelativePositive, 0xffff, 0x7fff},
	}

	for _, tt := range tests {
		if got := PackAngle(tt.kind, tt.degrees); got != tt.want {
			t.Errorf("PackAngle(%s, %#x) = %#04x, want %#04x", tt.kind, tt.degrees, got, tt.want)
		}
	}
}

func TestUnpackAngle(t *testing.T) {
	for kind := AngleAbsolute; kind <= AngleSameAsMovement; kind++ {
		for _, deg := range []uint16{0, 1, 90, 359, 0x1fff} {
			gotKind, gotDeg := UnpackAngle(PackAngle(kind, deg))
			if gotKind != kind || gotDeg != deg {
				t.Errorf("UnpackAngle(PackAngle(%s, %d)) = %s, %d", kind, deg, gotKind, gotDeg)
			}
		}
	}
}
