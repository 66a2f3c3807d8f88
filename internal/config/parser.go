package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"gopkg.in/yaml.v3"

	reporterrors "github.com/romanresh/test-runner-nunit-reporter/pkg/errors"
)

var yamlLineRegex = regexp.MustCompile(`line (\d+)`)

// ParseConfig loads a configuration file from disk on top of Default,
// validates it, and returns the resulting model.
func ParseConfig(path string) (*Config, error) {
	cfg, err := decodeFile(path)
	if err != nil {
		return nil, err
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func decodeFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, reporterrors.NewParseError(path, 0, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, reporterrors.NewParseError(path, extractLine(err), err)
	}
	return cfg, nil
}

// LoadOptions describes where configuration is read from. Every source is optional.
type LoadOptions struct {
	// Path is a YAML configuration file.
	Path string
	// EnvFile is a .env file whose variables apply when the process
	// environment does not set them.
	EnvFile string
	// Lookup reads the process environment. Defaults to os.LookupEnv.
	Lookup func(string) (string, bool)
	// Overrides runs last, typically applying command-line flags.
	Overrides func(*Config)
}

// Load builds the configuration from defaults, the YAML file, the .env file,
// the process environment and Overrides, in increasing precedence. Only the
// merged result is validated.
func Load(opts LoadOptions) (*Config, error) {
	cfg := Default()
	if opts.Path != "" {
		parsed, err := decodeFile(opts.Path)
		if err != nil {
			return nil, err
		}
		cfg = parsed
	}

	lookup := opts.Lookup
	if lookup == nil {
		lookup = os.LookupEnv
	}
	if opts.EnvFile != "" {
		fileLookup, err := envFileLookup(opts.EnvFile)
		if err != nil {
			return nil, err
		}
		lookup = layered(lookup, fileLookup)
	}

	ApplyEnv(cfg, lookup)
	if opts.Overrides != nil {
		opts.Overrides(cfg)
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ResolveOutputPath returns the absolute output path, resolving relative
// paths against RootDir (or the working directory when RootDir is empty).
func (c *Config) ResolveOutputPath() (string, error) {
	root, err := c.ResolveRootDir()
	if err != nil {
		return "", err
	}
	if filepath.IsAbs(c.OutputPath) {
		return filepath.Clean(c.OutputPath), nil
	}
	return filepath.Join(root, c.OutputPath), nil
}

// ResolveRootDir returns RootDir as an absolute path, defaulting to the working directory.
func (c *Config) ResolveRootDir() (string, error) {
	if c.RootDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("resolve working directory: %w", err)
		}
		return wd, nil
	}
	abs, err := filepath.Abs(c.RootDir)
	if err != nil {
		return "", fmt.Errorf("resolve root dir: %w", err)
	}
	return abs, nil
}

func extractLine(err error) int {
	if err == nil {
		return 0
	}

	matches := yamlLineRegex.FindStringSubmatch(err.Error())
	if len(matches) != 2 {
		return 0
	}

	var line int
	_, scanErr := fmt.Sscanf(matches[1], "%d", &line)
	if scanErr != nil {
		return 0
	}

	return line
}
