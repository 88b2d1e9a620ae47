package version

import "testing"

func TestAvailableManifests(t *testing.T) {
	versions, err := AvailableManifests()
	if err != nil {
		t.Fatalf("AvailableManifests() error: %v", err)
	}
	if len(versions) != 4 {
		t.Fatalf("got %d manifests, want 4", len(versions))
	}
	if versions[0] != MustParse(Minimum) {
		t.Errorf("oldest manifest = %s, want %s", versions[0], Minimum)
	}
	for i := 1; i < len(versions); i++ {
		if versions[i].Compare(versions[i-1]) <= 0 {
			t.Errorf("manifests not sorted: %v", versions)
		}
	}
}

func TestLoadManifest(t *testing.T) {
	m, err := LoadManifest("2.1.0")
	if err != nil {
		t.Fatalf("LoadManifest(2.1.0) error: %v", err)
	}
	if m.Version != "2.1.0" {
		t.Errorf("Version = %q", m.Version)
	}
	if m.Description == "" {
		t.Error("Description is empty")
	}
	if !m.Supports(CapMotorTarget) {
		t.Error("2.1.0 should support motor targets")
	}
	if m.Supports(CapMagneticSensor) {
		t.Error("2.1.0 should not support the magnetic sensor")
	}

	again, _ := LoadManifest("2.1.0")
	if again != m {
		t.Error("manifest not cached")
	}
}

func TestLoadManifestNotFound(t *testing.T) {
	if _, err := LoadManifest("9.9.9"); err == nil {
		t.Fatal("LoadManifest(9.9.9) should return error")
	}
}

func TestManifestsAreCumulative(t *testing.T) {
	versions, err := AvailableManifests()
	if err != nil {
		t.Fatal(err)
	}

	var prev *Manifest
	for _, v := range versions {
		m, err := LoadManifest(v.String())
		if err != nil {
			t.Fatalf("LoadManifest(%s): %v", v, err)
		}
		if prev != nil {
			for _, c := range prev.Capabilities {
				if !m.Supports(c) {
					t.Errorf("%s drops %s supported by %s", v, c, prev.Version)
				}
			}
		}
		prev = m
	}
}

func TestManifestFor(t *testing.T) {
	tests := []struct {
		firmware string
		want     string
	}{
		{"2.0.0", "2.0.0"},
		{"2.1.5", "2.1.0"},
		{"2.4.0", "2.3.0"},
	}
	for _, tt := range tests {
		m, err := ManifestFor(MustParse(tt.firmware))
		if err != nil {
			t.Errorf("ManifestFor(%s) error: %v", tt.firmware, err)
			continue
		}
		if m.Version != tt.want {
			t.Errorf("ManifestFor(%s) = %s, want %s", tt.firmware, m.Version, tt.want)
		}
	}

	if _, err := ManifestFor(MustParse("1.0.0")); err == nil {
		t.Error("ManifestFor(1.0.0) should fail")
	}
}

func TestUnsupported(t *testing.T) {
	missing, err := Unsupported(MustParse("2.1.0"), CapMotor, CapHighPrecisionTilt, CapMagneticSensor)
	if err != nil {
		t.Fatalf("Unsupported error: %v", err)
	}
	if len(missing) != 2 || missing[0] != CapHighPrecisionTilt || missing[1] != CapMagneticSensor {
		t.Errorf("missing = %v", missing)
	}

	missing, err = Unsupported(MustParse("2.4.0"), CapHighPrecisionTilt)
	if err != nil || len(missing) != 0 {
		t.Errorf("2.4.0: missing = %v, err = %v", missing, err)
	}
}
