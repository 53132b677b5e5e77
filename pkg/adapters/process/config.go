package process

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ToolConfig routes one pass to an executable other than yosys.
type ToolConfig struct {
	Name        string            `yaml:"name" json:"name"`
	Command     string            `yaml:"command" json:"command"`
	Args        []string          `yaml:"args" json:"args"`
	Environment map[string]string `yaml:"env" json:"env"`
	Description string            `yaml:"description" json:"description"`
}

// ConfigFile represents the structure of tools.yaml
type ConfigFile struct {
	Yosys string       `yaml:"yosys" json:"yosys"`
	Tools []ToolConfig `yaml:"tools" json:"tools"`
}

// LoadConfig reads a tools file (YAML or JSON).
// A missing file yields an empty configuration.
func LoadConfig(path string) (*ConfigFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &ConfigFile{}, nil
		}
		return nil, fmt.Errorf("failed to read tools config: %w", err)
	}

	var cfg ConfigFile
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	} else {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}

	for i, tool := range cfg.Tools {
		if tool.Name == "" || tool.Command == "" {
			return nil, fmt.Errorf("tool %d in %s needs a name and a command", i, path)
		}
	}
	return &cfg, nil
}

// Registry indexes the configured tools by pass name.
func (c *ConfigFile) Registry() map[string]ToolConfig {
	out := make(map[string]ToolConfig, len(c.Tools))
	for _, tool := range c.Tools {
		out[tool.Name] = tool
	}
	return out
}
