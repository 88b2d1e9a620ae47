package interactive

import (
	"testing"
	"time"

	"github.com/cubekit/cube-go/pkg/wire"
)

func TestParseMillis(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Duration
		wantErr bool
	}{
		{"250", 250 * time.Millisecond, false},
		{"0", 0, false},
		{"1.5s", 1500 * time.Millisecond, false},
		{"soon", 0, true},
	}
	for _, tt := range tests {
		got, err := parseMillis("d", tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseMillis(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("parseMillis(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseTarget(t *testing.T) {
	got, err := parseTarget("300,200")
	if err != nil {
		t.Fatalf("parseTarget failed: %v", err)
	}
	if got.X != 300 || got.Y != 200 || got.Angle != wire.AngleNoRotation {
		t.Errorf("got %+v", got)
	}

	got, err = parseTarget("300,200,-90")
	if err != nil {
		t.Fatalf("parseTarget failed: %v", err)
	}
	if got.Angle != wire.AngleAbsolute || got.Degrees != 270 {
		t.Errorf("negative heading: got %+v", got)
	}

	for _, bad := range []string{"300", "1,2,3,4", "x,2", "-1,5", "70000,1"} {
		if _, err := parseTarget(bad); err == nil {
			t.Errorf("parseTarget(%q) accepted", bad)
		}
	}
}

func TestParseLight(t *testing.T) {
	got, err := parseLight("255,128,0,500")
	if err != nil {
		t.Fatalf("parseLight failed: %v", err)
	}
	want := wire.Light{R: 255, G: 128, B: 0, Duration: 500 * time.Millisecond}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}

	for _, bad := range []string{"1,2", "1,2,256", "a,b,c", "1,2,3,later"} {
		if _, err := parseLight(bad); err == nil {
			t.Errorf("parseLight(%q) accepted", bad)
		}
	}
}

func TestParseNote(t *testing.T) {
	tests := []struct {
		in   string
		want wire.Note
	}{
		{"60:500", wire.Note{Number: 60, Duration: 500 * time.Millisecond, Volume: 255}},
		{"rest:100", wire.Note{Number: wire.NoteRest, Duration: 100 * time.Millisecond, Volume: 255}},
		{"128:100:10", wire.Note{Number: 128, Duration: 100 * time.Millisecond, Volume: 10}},
	}
	for _, tt := range tests {
		got, err := parseNote(tt.in)
		if err != nil {
			t.Errorf("parseNote(%q) failed: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("parseNote(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}

	for _, bad := range []string{"60", "129:100", "60:100:300", "60:x"} {
		if _, err := parseNote(bad); err == nil {
			t.Errorf("parseNote(%q) accepted", bad)
		}
	}
}

func TestParseEnums(t *testing.T) {
	if c, err := parseCondition("CHANGED_OR_300MS"); err != nil || c != wire.NotifyChangedOr300ms {
		t.Errorf("parseCondition: got %v, %v", c, err)
	}
	if m, err := parseMagneticMode("off"); err != nil || m != wire.MagneticModeDisable {
		t.Errorf("parseMagneticMode: got %v, %v", m, err)
	}
	if f, err := parseTiltFormat("quat"); err != nil || f != wire.TiltFormatQuaternion {
		t.Errorf("parseTiltFormat: got %v, %v", f, err)
	}
	if on, err := parseOnOff("YES"); err != nil || !on {
		t.Errorf("parseOnOff: got %v, %v", on, err)
	}
	if _, err := parseByte("b", "-1"); err == nil {
		t.Error("parseByte accepted -1")
	}
}

func TestParseEach(t *testing.T) {
	got, err := parseEach([]string{"id", "motion"}, parseChannel)
	if err != nil {
		t.Fatalf("parseEach failed: %v", err)
	}
	if len(got) != 2 || got[0] != wire.ChannelIdentification || got[1] != wire.ChannelMotion {
		t.Errorf("got %v", got)
	}
	if _, err := parseEach([]string{"id", "radio"}, parseChannel); err == nil {
		t.Error("parseEach accepted unknown channel")
	}
}
