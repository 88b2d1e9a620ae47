package interactive

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cubekit/cube-go/pkg/wire"
)

// parseInt parses a decimal integer argument.
func parseInt(name, s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%s: %q is not a number", name, s)
	}
	return n, nil
}

// parseByte parses an integer argument in 0-255.
func parseByte(name, s string) (uint8, error) {
	n, err := parseInt(name, s)
	if err != nil {
		return 0, err
	}
	if n < 0 || n > 255 {
		return 0, fmt.Errorf("%s: %d out of range 0-255", name, n)
	}
	return uint8(n), nil
}

// parseMillis parses a duration. Bare numbers are milliseconds; anything
// else goes through time.ParseDuration.
func parseMillis(name, s string) (time.Duration, error) {
	if n, err := strconv.Atoi(s); err == nil {
		return time.Duration(n) * time.Millisecond, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("%s: %q is not a duration", name, s)
	}
	return d, nil
}

// optional returns args[i] or def if the argument is missing.
func optional(args []string, i int, def string) string {
	if i < len(args) {
		return args[i]
	}
	return def
}

// parseOnOff parses on/off style switches.
func parseOnOff(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "on", "true", "1", "yes":
		return true, nil
	case "off", "false", "0", "no":
		return false, nil
	}
	return false, fmt.Errorf("%q is not on or off", s)
}

// parseChannel parses a channel name.
func parseChannel(s string) (wire.Channel, error) {
	ch, ok := wire.ParseChannel(s)
	if !ok {
		return 0, fmt.Errorf("unknown channel %q", s)
	}
	return ch, nil
}

// parseCondition parses a notify condition name.
func parseCondition(s string) (wire.NotifyCondition, error) {
	switch strings.ToLower(s) {
	case "periodic", "always":
		return wire.NotifyPeriodic, nil
	case "changed", "change":
		return wire.NotifyChanged, nil
	case "changed_or_300ms", "300ms":
		return wire.NotifyChangedOr300ms, nil
	}
	return 0, fmt.Errorf("condition %q is not periodic, changed or changed_or_300ms", s)
}

// parseMagneticMode parses a magnetic sensor mode name.
func parseMagneticMode(s string) (wire.MagneticMode, error) {
	switch strings.ToLower(s) {
	case "off", "disable":
		return wire.MagneticModeDisable, nil
	case "status":
		return wire.MagneticModeStatus, nil
	case "force":
		return wire.MagneticModeForce, nil
	}
	return 0, fmt.Errorf("magnetic mode %q is not off, status or force", s)
}

// parseTiltFormat parses a tilt format name.
func parseTiltFormat(s string) (wire.TiltFormat, error) {
	switch strings.ToLower(s) {
	case "off", "disable":
		return wire.TiltFormatDisable, nil
	case "euler":
		return wire.TiltFormatEuler, nil
	case "quaternion", "quat":
		return wire.TiltFormatQuaternion, nil
	}
	return 0, fmt.Errorf("tilt format %q is not off, euler or quaternion", s)
}

// parseTarget parses "x,y" or "x,y,degrees". Without degrees the cube
// keeps its heading.
func parseTarget(s string) (wire.Target, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 && len(parts) != 3 {
		return wire.Target{}, fmt.Errorf("target %q is not x,y[,degrees]", s)
	}

	var nums [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return wire.Target{}, fmt.Errorf("target %q is not x,y[,degrees]", s)
		}
		nums[i] = n
	}
	if nums[0] < 0 || nums[0] > 0xffff || nums[1] < 0 || nums[1] > 0xffff {
		return wire.Target{}, fmt.Errorf("target %q out of range", s)
	}

	t := wire.Target{
		X:     int16(uint16(nums[0])),
		Y:     int16(uint16(nums[1])),
		Angle: wire.AngleNoRotation,
	}
	if len(parts) == 3 {
		t.Angle = wire.AngleAbsolute
		t.Degrees = uint16(((nums[2] % 360) + 360) % 360)
	}
	return t, nil
}

// parseLight parses "r,g,b[,ms]".
func parseLight(s string) (wire.Light, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 && len(parts) != 4 {
		return wire.Light{}, fmt.Errorf("light %q is not r,g,b[,ms]", s)
	}

	var rgb [3]uint8
	for i := 0; i < 3; i++ {
		v, err := parseByte("light", strings.TrimSpace(parts[i]))
		if err != nil {
			return wire.Light{}, err
		}
		rgb[i] = v
	}

	l := wire.Light{R: rgb[0], G: rgb[1], B: rgb[2]}
	if len(parts) == 4 {
		d, err := parseMillis("light", strings.TrimSpace(parts[3]))
		if err != nil {
			return wire.Light{}, err
		}
		l.Duration = d
	}
	return l, nil
}

// parseNote parses "number:ms[:volume]". The number "rest" is NoteRest.
// Volume defaults to 255.
func parseNote(s string) (wire.Note, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return wire.Note{}, fmt.Errorf("note %q is not number:ms[:volume]", s)
	}

	n := wire.Note{Number: wire.NoteRest, Volume: 255}
	if !strings.EqualFold(parts[0], "rest") {
		num, err := parseByte("note", parts[0])
		if err != nil {
			return wire.Note{}, err
		}
		if num > wire.NoteRest {
			return wire.Note{}, fmt.Errorf("note: %d out of range 0-%d", num, wire.NoteRest)
		}
		n.Number = num
	}

	d, err := parseMillis("note", parts[1])
	if err != nil {
		return wire.Note{}, err
	}
	n.Duration = d

	if len(parts) == 3 {
		v, err := parseByte("note volume", parts[2])
		if err != nil {
			return wire.Note{}, err
		}
		n.Volume = v
	}
	return n, nil
}

// parseEach applies parse to every argument and stops at the first error.
func parseEach[T any](args []string, parse func(string) (T, error)) ([]T, error) {
	out := make([]T, 0, len(args))
	for _, a := range args {
		v, err := parse(a)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
