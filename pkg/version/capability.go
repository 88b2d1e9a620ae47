package version

import (
	"embed"
	"fmt"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed manifests/*.yaml
var manifestFS embed.FS

// Capability names a group of cube commands or reports.
type Capability string

// Known capabilities.
const (
	CapMotor                Capability = "motor"
	CapMotorTarget          Capability = "motor_target"
	CapMotorMultipleTargets Capability = "motor_multiple_targets"
	CapMotorAcceleration    Capability = "motor_acceleration"
	CapMotorSpeedNotify     Capability = "motor_speed_notify"
	CapLight                Capability = "light"
	CapSound                Capability = "sound"
	CapIdentification       Capability = "identification"
	CapIDNotify             Capability = "id_notify"
	CapIDMissedNotify       Capability = "id_missed_notify"
	CapMotion               Capability = "motion"
	CapDoubleTap            Capability = "double_tap"
	CapCollisionThreshold   Capability = "collision_threshold"
	CapLevelThreshold       Capability = "level_threshold"
	CapMagneticSensor       Capability = "magnetic_sensor"
	CapMagneticForce        Capability = "magnetic_force"
	CapHighPrecisionTilt    Capability = "high_precision_tilt"
	CapButton               Capability = "button"
	CapBattery              Capability = "battery"
	CapProtocolVersion      Capability = "protocol_version"
)

// Manifest describes what a protocol version supports.
type Manifest struct {
	Version      string       `yaml:"version"`
	Description  string       `yaml:"description"`
	Capabilities []Capability `yaml:"capabilities"`
}

// Supports reports whether the manifest lists c.
func (m *Manifest) Supports(c Capability) bool {
	for _, have := range m.Capabilities {
		if have == c {
			return true
		}
	}
	return false
}

var (
	cacheMu sync.RWMutex
	cache   = make(map[string]*Manifest)
)

// LoadManifest loads the manifest for an exact version string (e.g. "2.1.0").
func LoadManifest(ver string) (*Manifest, error) {
	cacheMu.RLock()
	if m, ok := cache[ver]; ok {
		cacheMu.RUnlock()
		return m, nil
	}
	cacheMu.RUnlock()

	data, err := manifestFS.ReadFile("manifests/" + ver + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("manifest for version %q not found: %w", ver, err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest %q: %w", ver, err)
	}

	cacheMu.Lock()
	cache[ver] = &m
	cacheMu.Unlock()

	return &m, nil
}

// AvailableManifests returns the versions of all embedded manifests,
// oldest first.
func AvailableManifests() ([]Version, error) {
	entries, err := manifestFS.ReadDir("manifests")
	if err != nil {
		return nil, fmt.Errorf("reading manifests directory: %w", err)
	}

	var versions []Version
	for _, e := range entries {
		name := e.Name()
		if !strings.HasSuffix(name, ".yaml") {
			continue
		}
		v, err := Parse(strings.TrimSuffix(name, ".yaml"))
		if err != nil {
			return nil, fmt.Errorf("manifest %s: %w", name, err)
		}
		versions = append(versions, v)
	}
	sort.Slice(versions, func(i, j int) bool {
		return versions[i].Compare(versions[j]) < 0
	})
	return versions, nil
}

// ManifestFor returns the manifest of the newest known version that is not
// newer than v and shares its major version. Firmware newer than every
// manifest gets the newest one.
func ManifestFor(v Version) (*Manifest, error) {
	versions, err := AvailableManifests()
	if err != nil {
		return nil, err
	}

	var best *Version
	for i := range versions {
		if versions[i].Major == v.Major && v.AtLeast(versions[i]) {
			best = &versions[i]
		}
	}
	if best == nil {
		return nil, fmt.Errorf("no manifest for version %s", v)
	}
	return LoadManifest(best.String())
}

// Unsupported returns the capabilities in want that v lacks, in input order.
func Unsupported(v Version, want ...Capability) ([]Capability, error) {
	m, err := ManifestFor(v)
	if err != nil {
		return nil, err
	}

	var missing []Capability
	for _, c := range want {
		if !m.Supports(c) {
			missing = append(missing, c)
		}
	}
	return missing, nil
}
