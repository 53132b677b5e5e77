package options

import (
	"fmt"
	"os"

	"github.com/aretw0/synthmc/pkg/domain"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Profile holds default option values loaded from a YAML file.
type Profile struct {
	Top     string `mapstructure:"top" yaml:"top,omitempty"`
	AutoTop bool   `mapstructure:"auto_top" yaml:"auto_top,omitempty"`
	Flatten bool   `mapstructure:"flatten" yaml:"flatten,omitempty"`
	EncFile string `mapstructure:"encfile" yaml:"encfile,omitempty"`
	NoFSM   bool   `mapstructure:"nofsm" yaml:"nofsm,omitempty"`
	NoRDFF  bool   `mapstructure:"nordff" yaml:"nordff,omitempty"`
	NoShare bool   `mapstructure:"noshare" yaml:"noshare,omitempty"`
	Techlib string `mapstructure:"techlib" yaml:"techlib,omitempty"`
	Run     string `mapstructure:"run" yaml:"run,omitempty"`
}

// LoadProfile reads and decodes a profile file.
func LoadProfile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &domain.ConfigurationError{Option: "profile", Reason: "failed to read " + path, Err: err}
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, &domain.ConfigurationError{Option: "profile", Reason: "failed to parse " + path, Err: err}
	}
	return DecodeProfile(raw)
}

// DecodeProfile decodes a generic map (YAML or JSON shaped) into a Profile.
// Unknown keys are rejected.
func DecodeProfile(raw map[string]any) (*Profile, error) {
	var p Profile
	if len(raw) == 0 {
		return &p, nil
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &p,
		ErrorUnused:      true,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create profile decoder: %w", err)
	}
	if err := dec.Decode(raw); err != nil {
		return nil, &domain.ConfigurationError{Option: "profile", Reason: "invalid profile", Err: err}
	}
	return &p, nil
}

// Tokens renders the profile as option tokens.
func (p *Profile) Tokens() []string {
	if p == nil {
		return nil
	}
	var out []string
	if p.Top != "" {
		out = append(out, "-top", p.Top)
	}
	if p.AutoTop {
		out = append(out, "-auto-top")
	}
	if p.Flatten {
		out = append(out, "-flatten")
	}
	if p.EncFile != "" {
		out = append(out, "-encfile", p.EncFile)
	}
	if p.NoFSM {
		out = append(out, "-nofsm")
	}
	if p.NoRDFF {
		out = append(out, "-nordff")
	}
	if p.NoShare {
		out = append(out, "-noshare")
	}
	if p.Techlib != "" {
		out = append(out, "-techlib", p.Techlib)
	}
	if p.Run != "" {
		out = append(out, "-run", p.Run)
	}
	return out
}

// WithProfile prepends the profile tokens to args.
func WithProfile(p *Profile, args []string) []string {
	return append(p.Tokens(), args...)
}
