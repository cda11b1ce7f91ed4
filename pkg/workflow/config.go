package workflow

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config carries the workflow settings that differ between installations:
// where artifacts land, which agents run by default, and how the external
// agent command is spelled.
type Config struct {
	// OutputDir is the root of the <ticker>/<date> artifact layout.
	OutputDir string `yaml:"output_dir"`

	// Agents overrides the default agent set.
	Agents []string `yaml:"agents"`

	// Concurrency bounds parallel agent invocations. 1 means sequential.
	Concurrency int `yaml:"concurrency"`

	// Timeout applies per agent invocation. Config files spell it as a Go
	// duration string ("120s", "2m").
	Timeout time.Duration `yaml:"timeout"`

	// Command is the agent-execution command with {agent}, {ticker}, {date},
	// and {output} placeholders.
	Command []string `yaml:"command"`
}

// DefaultConfig mirrors the upstream pipeline's conventions.
func DefaultConfig() Config {
	return Config{
		OutputDir:   "results",
		Agents:      DefaultAgents(),
		Concurrency: 1,
		Timeout:     120 * time.Second,
		Command: []string{
			"python", "-m", "cli.main", "agent", "run",
			"-a", "{agent}", "-t", "{ticker}", "-d", "{date}", "-o", "{output}",
		},
	}
}

// UnmarshalYAML decodes the config, accepting the timeout as a duration
// string ("120s") or as plain integer nanoseconds. Keys absent from the
// document keep whatever the receiver already holds, so decoding overlays
// rather than resets.
func (c *Config) UnmarshalYAML(value *yaml.Node) error {
	type rawConfig struct {
		OutputDir   string   `yaml:"output_dir"`
		Agents      []string `yaml:"agents"`
		Concurrency int      `yaml:"concurrency"`
		Timeout     string   `yaml:"timeout"`
		Command     []string `yaml:"command"`
	}
	raw := rawConfig{
		OutputDir:   c.OutputDir,
		Agents:      c.Agents,
		Concurrency: c.Concurrency,
		Command:     c.Command,
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}

	c.OutputDir = raw.OutputDir
	c.Agents = raw.Agents
	c.Concurrency = raw.Concurrency
	c.Command = raw.Command

	if raw.Timeout != "" {
		d, err := time.ParseDuration(raw.Timeout)
		if err != nil {
			n, numErr := strconv.ParseInt(raw.Timeout, 10, 64)
			if numErr != nil {
				return fmt.Errorf("invalid timeout %q: %w", raw.Timeout, err)
			}
			d = time.Duration(n)
		}
		c.Timeout = d
	}
	return nil
}

// LoadConfig reads a YAML config file and overlays it on the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("workflow: read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("workflow: parse config %s: %w", path, err)
	}

	if cfg.Concurrency < 1 {
		cfg.Concurrency = 1
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 120 * time.Second
	}
	return cfg, nil
}
