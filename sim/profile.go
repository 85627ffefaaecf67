package sim

import (
	"embed"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed profiles/*.yaml
var builtinProfiles embed.FS

// Profile describes a simulated board
type Profile struct {
	Name         string `yaml:"name"`
	FrequencyHz  uint64 `yaml:"frequency_hz"`  // CNTFRQ_EL0
	CounterStart uint64 `yaml:"counter_start"` // CNTPCT_EL0 at power-on
	AutoStep     uint64 `yaml:"auto_step"`     // ticks added after each counter read
}

// ParseProfile decodes a YAML profile
func ParseProfile(data []byte) (Profile, error) {
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Profile{}, fmt.Errorf("parsing profile: %w", err)
	}
	if p.Name == "" {
		return Profile{}, fmt.Errorf("profile has no name")
	}
	if p.FrequencyHz == 0 {
		return Profile{}, fmt.Errorf("profile %s: frequency_hz must be set", p.Name)
	}
	return p, nil
}

// LoadProfile returns a built-in profile by name
func LoadProfile(name string) (Profile, error) {
	data, err := builtinProfiles.ReadFile("profiles/" + name + ".yaml")
	if err != nil {
		return Profile{}, fmt.Errorf("unknown profile %q (have %s)", name, strings.Join(ProfileNames(), ", "))
	}
	return ParseProfile(data)
}

// ProfileNames lists the built-in profiles
func ProfileNames() []string {
	entries, err := builtinProfiles.ReadDir("profiles")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".yaml"))
	}
	sort.Strings(names)
	return names
}
