package wire

// Packed angle word layout: the angle spec kind occupies bits 13-15 and the
// degrees occupy bits 0-12.
const (
	AngleKindShift   = 13
	AngleDegreesMask = 0x1FFF
	angleKindMask    = 0x7
)

// PackAngle packs an angle spec kind and degrees into one 16-bit word.
// Degrees above 0x1FFF are masked, not clamped.
func PackAngle(kind AngleSpecKind, degrees uint16) uint16 {
	return uint16(kind&angleKindMask)<<AngleKindShift | degrees&AngleDegreesMask
}

// UnpackAngle splits a packed angle word into its kind and degrees.
func UnpackAngle(word uint16) (AngleSpecKind, uint16) {
	return AngleSpecKind(word >> AngleKindShift), word & AngleDegreesMask
}
