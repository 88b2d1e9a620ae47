package inspect

import (
	"encoding/hex"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/cubekit/cube-go/pkg/log"
	"github.com/cubekit/cube-go/pkg/version"
	"github.com/cubekit/cube-go/pkg/wire"
)

// TimestampFormat is used for every event header.
const TimestampFormat = "2006-01-02T15:04:05.000000Z"

// Formatter formats inspection output.
type Formatter struct {
	// ShowData includes captured frame bytes in event details.
	ShowData bool

	// ShowSession includes the shortened session ID in event headers.
	ShowSession bool

	// IndentWidth is the number of spaces per indent level.
	IndentWidth int
}

// NewFormatter creates a new Formatter with default settings.
func NewFormatter() *Formatter {
	return &Formatter{
		ShowData:    true,
		ShowSession: true,
		IndentWidth: 2,
	}
}

// Indent returns the content with indentation.
func (f *Formatter) Indent(depth int, content string) string {
	width := f.IndentWidth
	if width == 0 {
		width = 2
	}
	return strings.Repeat(" ", depth*width) + content
}

// FormatValue formats a scalar for display.
func (f *Formatter) FormatValue(value any) string {
	if value == nil {
		return "null"
	}

	switch v := value.(type) {
	case bool:
		if v {
			return "true"
		}
		return "false"
	case string:
		return fmt.Sprintf("%q", v)
	case []byte:
		return "0x" + hex.EncodeToString(v)
	case float32, float64:
		return fmt.Sprintf("%.2f", v)
	case map[string]any:
		return f.FormatFields(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// FormatFields renders a map as key=value pairs in key order.
func (f *Formatter) FormatFields(fields map[string]any) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + "=" + f.FormatValue(fields[k])
	}
	return strings.Join(parts, " ")
}

// FormatWire returns a one-line summary of a decoded event.
func FormatWire(ev wire.Event) string {
	switch e := ev.(type) {
	case wire.PositionID:
		return fmt.Sprintf("position x=%d y=%d angle=%d sensor=(%d,%d,%d)",
			e.X, e.Y, e.Angle, e.SensorX, e.SensorY, e.SensorAngle)
	case wire.StandardID:
		return fmt.Sprintf("standard id=%d angle=%d", e.Value, e.Angle)
	case wire.MissedID:
		return fmt.Sprintf("missed %s", e.From)
	case wire.Motion:
		return fmt.Sprintf("motion level=%t collision=%t double_tap=%t orientation=%s shake=%d",
			e.Level, e.Collision, e.DoubleTap, e.Orientation, e.Shake)
	case wire.MagneticForce:
		return fmt.Sprintf("magnetic status=%d strength=%d force=(%d,%d,%d)",
			e.Status, e.Strength, e.X, e.Y, e.Z)
	case wire.TiltEuler:
		return fmt.Sprintf("tilt roll=%d pitch=%d yaw=%d", e.Roll, e.Pitch, e.Yaw)
	case wire.TiltQuaternion:
		return fmt.Sprintf("tilt w=%d x=%d y=%d z=%d", e.W, e.X, e.Y, e.Z)
	case wire.TargetResult:
		return fmt.Sprintf("%s id=%d result=%s", e.Kind, e.ControlID, e.Result)
	case wire.SpeedReport:
		return fmt.Sprintf("speed left=%d right=%d", e.Left, e.Right)
	case wire.ButtonState:
		if e.Pressed {
			return "button pressed"
		}
		return "button released"
	case wire.BatteryLevel:
		return fmt.Sprintf("battery %d%%", e.Percent)
	case wire.RawEvent:
		return fmt.Sprintf("raw %s % x", e.Source, e.Data)
	case nil:
		return "<nil>"
	default:
		return fmt.Sprintf("%s %+v", ev.Channel(), ev)
	}
}

// FormatEvent writes a human-readable representation of a protocol log
// record to w, followed by a blank line.
func (f *Formatter) FormatEvent(w io.Writer, event log.Event) {
	ts := event.Timestamp.UTC().Format(TimestampFormat)
	if f.ShowSession {
		fmt.Fprintf(w, "%s [%s] %-3s %s %s\n", ts, ShortID(event.SessionID),
			event.Direction, event.Layer, EventLabel(event))
	} else {
		fmt.Fprintf(w, "%s %-3s %s %s\n", ts, event.Direction, event.Layer, EventLabel(event))
	}

	switch {
	case event.Frame != nil:
		f.formatFrame(w, event.Frame)
	case event.Decoded != nil:
		f.formatDecoded(w, event.Decoded)
	case event.StateChange != nil:
		f.formatStateChange(w, event.StateChange)
	case event.Error != nil:
		f.formatError(w, event.Error)
	}

	fmt.Fprintln(w)
}

// EventLabel names the kind of record, e.g. "Frame" or "PositionID".
func EventLabel(event log.Event) string {
	switch {
	case event.Frame != nil:
		return "Frame"
	case event.Decoded != nil:
		return event.Decoded.Kind
	case event.StateChange != nil:
		return "State"
	case event.Error != nil:
		return "Error"
	default:
		return "Unknown"
	}
}

func (f *Formatter) formatFrame(w io.Writer, frame *log.FrameEvent) {
	mode := ""
	if frame.WithResponse {
		mode = ", with response"
	}
	fmt.Fprintln(w, f.Indent(1, fmt.Sprintf("Channel: %s (%d bytes%s)", frame.Channel, frame.Size, mode)))
	if f.ShowData && len(frame.Data) > 0 {
		data := "Data: " + hex.EncodeToString(frame.Data)
		if frame.Truncated {
			data += " (truncated)"
		}
		fmt.Fprintln(w, f.Indent(1, data))
	}
}

func (f *Formatter) formatDecoded(w io.Writer, d *log.DecodedEvent) {
	fmt.Fprintln(w, f.Indent(1, "Channel: "+d.Channel.String()))
	switch p := d.Payload.(type) {
	case nil:
	case wire.Event:
		fmt.Fprintln(w, f.Indent(1, FormatWire(p)))
	default:
		fmt.Fprintln(w, f.Indent(1, f.FormatValue(p)))
	}
}

func (f *Formatter) formatStateChange(w io.Writer, sc *log.StateChangeEvent) {
	fmt.Fprintln(w, f.Indent(1, "Entity: "+sc.Entity.String()))
	if sc.OldState != "" {
		fmt.Fprintln(w, f.Indent(1, sc.OldState+" -> "+sc.NewState))
	} else {
		fmt.Fprintln(w, f.Indent(1, "-> "+sc.NewState))
	}
	if sc.Reason != "" {
		fmt.Fprintln(w, f.Indent(1, "Reason: "+sc.Reason))
	}
}

func (f *Formatter) formatError(w io.Writer, e *log.ErrorEventData) {
	fmt.Fprintln(w, f.Indent(1, "Layer: "+e.Layer.String()))
	if e.Channel != 0 {
		fmt.Fprintln(w, f.Indent(1, "Channel: "+e.Channel.String()))
	}
	fmt.Fprintln(w, f.Indent(1, "Message: "+e.Message))
	if e.Context != "" {
		fmt.Fprintln(w, f.Indent(1, "Context: "+e.Context))
	}
}

// FormatManifest writes the firmware version and the capabilities its
// manifest lists.
func (f *Formatter) FormatManifest(w io.Writer, v version.Version, m *version.Manifest) {
	fmt.Fprintf(w, "Firmware: %s (manifest %s)\n", v, m.Version)
	if m.Description != "" {
		fmt.Fprintln(w, f.Indent(1, m.Description))
	}
	if len(m.Capabilities) == 0 {
		fmt.Fprintln(w, f.Indent(1, "(no capabilities)"))
		return
	}
	for _, c := range m.Capabilities {
		fmt.Fprintln(w, f.Indent(1, string(c)))
	}
}

// ShortID returns the first 8 characters of a session ID.
func ShortID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}

// FormatDuration formats a duration with three decimals in the largest
// fitting unit.
func FormatDuration(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return fmt.Sprintf("%.3fus", float64(d.Nanoseconds())/1000)
	case d < time.Second:
		return fmt.Sprintf("%.3fms", float64(d.Microseconds())/1000)
	default:
		return fmt.Sprintf("%.3fs", d.Seconds())
	}
}
