package load

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultTag is the struct tag inspected for member annotations.
const DefaultTag = "db"

// DefaultRelTag is the struct tag inspected for relationship annotations.
const DefaultRelTag = "rel"

// Config configures the discovery front end.
type Config struct {
	// Patterns are the package patterns passed to the Go loader,
	// e.g. "./..." or "example.com/app/model".
	Patterns []string `yaml:"packages"`
	// Tag is the struct tag inspected for column annotations.
	// Defaults to "db".
	Tag string `yaml:"tag"`
	// RelTag is the struct tag inspected for relationship
	// annotations. Defaults to "rel".
	RelTag string `yaml:"rel_tag"`
	// BuildFlags are extra flags passed to the build system.
	BuildFlags []string `yaml:"build_flags"`
	// Dir is the directory the loader runs in. Defaults to the
	// working directory.
	Dir string `yaml:"dir"`
}

// defaults fills the zero-valued options.
func (c *Config) defaults() {
	if len(c.Patterns) == 0 {
		c.Patterns = []string{"./..."}
	}
	if c.Tag == "" {
		c.Tag = DefaultTag
	}
	if c.RelTag == "" {
		c.RelTag = DefaultRelTag
	}
}

// ConfigFromFile reads a YAML discovery configuration from path.
func ConfigFromFile(path string) (*Config, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	c := &Config{}
	if err := yaml.Unmarshal(buf, c); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	c.defaults()
	return c, nil
}
