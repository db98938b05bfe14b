package config

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/sambabib/webcompat/pkg/compat"
)

// FileName is the config file looked up in the scanned project and its parents.
const FileName = ".webcompat.yaml"

// Config represents the configuration for the compatibility scanner
type Config struct {
	// Exclude patterns for files or directories, matched against the slash separated
	// path relative to the scan root and against each path segment
	Exclude []string `yaml:"exclude"`

	// Browser targets, e.g. chrome: "90"
	Targets compat.Targets `yaml:"targets"`

	// Batch sizes for concurrent processing
	Concurrency struct {
		Files  int `yaml:"files"`  // Default: 10
		Assets int `yaml:"assets"` // Default: 6
	} `yaml:"concurrency"`

	// HTTP settings for URL scans
	HTTP struct {
		Timeout   time.Duration `yaml:"timeout"` // Default: 30s
		UserAgent string        `yaml:"userAgent"`
	} `yaml:"http"`

	// Output configuration
	Output struct {
		Format string `yaml:"format"` // json, yaml, md
		File   string `yaml:"file"`   // Output file path (auto-named if empty)
	} `yaml:"output"`

	// Logging configuration
	Logging struct {
		Level  string `yaml:"level"`  // debug, info, warn, error
		Format string `yaml:"format"` // text or json
	} `yaml:"logging"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	config := &Config{
		Exclude: []string{},
		Targets: compat.Targets{},
	}

	config.Concurrency.Files = 10
	config.Concurrency.Assets = 6

	config.HTTP.Timeout = 30 * time.Second
	config.HTTP.UserAgent = "webcompat-scanner"

	config.Output.Format = "json"

	config.Logging.Level = "info"
	config.Logging.Format = "text"

	return config
}

// LoadConfig loads the configuration from the specified file path
// If no path is provided, it looks for .webcompat.yaml in the current directory
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if configPath == "" {
		configPath = FileName
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return config, nil
	}

	if err := readInto(configPath, config); err != nil {
		return nil, err
	}
	return config, nil
}

// FindAndLoadConfig searches for a config file in the project directory and its parents
func FindAndLoadConfig(projectPath string) (*Config, error) {
	config := DefaultConfig()

	currentDir, err := filepath.Abs(projectPath)
	if err != nil {
		currentDir = projectPath
	}
	for {
		configPath := filepath.Join(currentDir, FileName)
		if _, err := os.Stat(configPath); err == nil {
			if err := readInto(configPath, config); err != nil {
				return nil, err
			}
			return config, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			break
		}
		currentDir = parentDir
	}

	return config, nil
}

func readInto(configPath string, config *Config) error {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("error reading config file %s: %w", configPath, err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return fmt.Errorf("error parsing config file %s: %w", configPath, err)
	}

	return config.validate()
}

func (c *Config) validate() error {
	if c.Concurrency.Files <= 0 {
		return fmt.Errorf("concurrency.files must be positive, got %d", c.Concurrency.Files)
	}
	if c.Concurrency.Assets <= 0 {
		return fmt.Errorf("concurrency.assets must be positive, got %d", c.Concurrency.Assets)
	}
	for _, pattern := range c.Exclude {
		if _, err := path.Match(pattern, ""); err != nil {
			return fmt.Errorf("invalid exclude pattern %q: %w", pattern, err)
		}
	}
	return nil
}

// IsPathExcluded checks if a path relative to the scan root should be skipped
func (c *Config) IsPathExcluded(relPath string) bool {
	relPath = filepath.ToSlash(relPath)
	segments := strings.Split(relPath, "/")
	for _, pattern := range c.Exclude {
		if ok, _ := path.Match(pattern, relPath); ok {
			return true
		}
		for _, seg := range segments {
			if ok, _ := path.Match(pattern, seg); ok {
				return true
			}
		}
	}
	return false
}
