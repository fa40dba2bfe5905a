package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"pastefeed/pkg/feed"
)

// FileName is the manifest looked up in the working directory.
const FileName = ".pastefeed.yaml"

// IgnoreFileName is the exclusion file looked up under the root directory.
const IgnoreFileName = ".feedignore"

// Environment variables that override the manifest.
const (
	EnvRoot   = "PASTEFEED_ROOT"
	EnvOutput = "PASTEFEED_OUTPUT"
	EnvList   = "PASTEFEED_LIST"
)

// Config represents pastefeed configuration options
type Config struct {
	// Root is the directory relative paths are resolved against
	Root string `yaml:"root"`

	// Output is the file the joined feed is written to
	Output string `yaml:"output"`

	// List names the path list used when none is requested explicitly
	List string `yaml:"list"`

	// Budget is the downstream input size in characters
	Budget int `yaml:"budget"`

	// KeepMarkers are comment prefixes the minifier leaves in place
	KeepMarkers []string `yaml:"keep_markers"`

	// StripQuotes also strips whitespace around quote characters
	StripQuotes bool `yaml:"strip_quotes"`

	// WriteToFile writes the joined feed to Output
	WriteToFile bool `yaml:"write_to_file"`

	// PerFile prints each file's text separately
	PerFile bool `yaml:"per_file"`

	// Exclude holds gitignore-style patterns dropped from the selected list
	Exclude []string `yaml:"exclude"`

	// Lists maps a selection name to its ordered relative paths
	Lists map[string][]string `yaml:"lists"`
}

// DefaultConfig returns a Config with the built-in path lists
func DefaultConfig() *Config {
	return &Config{
		Root:        "./",
		Output:      feed.DefaultOutput,
		List:        "review",
		Budget:      feed.DefaultBudget,
		KeepMarkers: append([]string(nil), feed.DefaultKeepMarkers...),
		StripQuotes: true,
		WriteToFile: true,
		PerFile:     false,
		Lists: map[string][]string{
			"all": {
				"client/src/pages/Home.jsx",
				"client/src/pages/Register.jsx",
				"client/src/pages/Login.jsx",
				"client/src/pages/Reviews.jsx",
				"client/src/App.jsx",
				"server/models/Admin.js",
				"server/models/Reviews.js",
				"server/models/ReviewReply.js",
				"server/models/User.js",
				"server/models/ReviewVote.js",
				"server/models/ReplyVote.js",
				"server/routes/reviews.js",
				"server/routes/user.js",
				"server/routes/file.js",
				"server/index.js",
			},
			"review": {
				"client/src/pages/Reviews.jsx",
				"client/src/App.jsx",
				"server/models/Admin.js",
				"server/models/Reviews.js",
				"server/models/ReviewReply.js",
				"server/models/User.js",
				"server/models/ReviewVote.js",
				"server/models/ReplyVote.js",
				"server/routes/reviews.js",
				"server/routes/user.js",
				"server/tests/reviewVote.test.js",
				"server/index.js",
				"server/package.json",
			},
			"profile": {
				"client/src/pages/EditProfile.jsx",
				"client/src/App.jsx",
				"client/src/utils/errorHandler.js",
				"server/models/User.js",
				"server/routes/user.js",
				"server/middlewares/upload.js",
				"server/index.js",
			},
		},
	}
}

// LoadConfig loads configuration from the specified file path
// If the file doesn't exist, returns default configuration without error
// If the file exists but is malformed, returns an error
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Pointers tell an explicit false apart from an absent key
	type yamlConfig struct {
		Root        string              `yaml:"root"`
		Output      string              `yaml:"output"`
		List        string              `yaml:"list"`
		Budget      int                 `yaml:"budget"`
		KeepMarkers *[]string           `yaml:"keep_markers"`
		StripQuotes *bool               `yaml:"strip_quotes"`
		WriteToFile *bool               `yaml:"write_to_file"`
		PerFile     *bool               `yaml:"per_file"`
		Exclude     []string            `yaml:"exclude"`
		Lists       map[string][]string `yaml:"lists"`
	}

	var yamlCfg yamlConfig
	if err := yaml.Unmarshal(data, &yamlCfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if yamlCfg.Root != "" {
		cfg.Root = yamlCfg.Root
	}
	if yamlCfg.Output != "" {
		cfg.Output = yamlCfg.Output
	}
	if yamlCfg.List != "" {
		cfg.List = yamlCfg.List
	}
	if yamlCfg.Budget != 0 {
		cfg.Budget = yamlCfg.Budget
	}
	// An explicit empty list disables comment protection
	if yamlCfg.KeepMarkers != nil {
		cfg.KeepMarkers = *yamlCfg.KeepMarkers
	}
	if yamlCfg.StripQuotes != nil {
		cfg.StripQuotes = *yamlCfg.StripQuotes
	}
	if yamlCfg.WriteToFile != nil {
		cfg.WriteToFile = *yamlCfg.WriteToFile
	}
	if yamlCfg.PerFile != nil {
		cfg.PerFile = *yamlCfg.PerFile
	}
	cfg.Exclude = append(cfg.Exclude, yamlCfg.Exclude...)
	for name, paths := range yamlCfg.Lists {
		cfg.Lists[name] = paths
	}

	return cfg, nil
}

// LoadConfigFromDir loads configuration from .pastefeed.yaml in the specified directory
func LoadConfigFromDir(dir string) (*Config, error) {
	return LoadConfig(filepath.Join(dir, FileName))
}

// ApplyEnv loads a .env file from the working directory when present and
// applies the PASTEFEED_* overrides
func (c *Config) ApplyEnv() {
	_ = godotenv.Load()

	if v := strings.TrimSpace(os.Getenv(EnvRoot)); v != "" {
		c.Root = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvOutput)); v != "" {
		c.Output = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvList)); v != "" {
		c.List = v
	}
}

// ListNames returns the configured list names in sorted order
func (c *Config) ListNames() []string {
	names := make([]string, 0, len(c.Lists))
	for name := range c.Lists {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Select returns a copy of the named path list
func (c *Config) Select(name string) ([]string, error) {
	paths, ok := c.Lists[name]
	if !ok {
		return nil, fmt.Errorf("unknown path list %q, must be one of: %s", name, strings.Join(c.ListNames(), ", "))
	}
	return append([]string(nil), paths...), nil
}

// IgnoreFile returns the path of the exclusion file under Root
func (c *Config) IgnoreFile() string {
	return filepath.Join(c.Root, IgnoreFileName)
}

// MinifyOptions returns the minifier options this configuration selects
func (c *Config) MinifyOptions() feed.Options {
	return feed.Options{
		KeepMarkers: append([]string(nil), c.KeepMarkers...),
		StripQuotes: c.StripQuotes,
	}
}

// Arguments returns the feeder settings this configuration selects
func (c *Config) Arguments() feed.Arguments {
	return feed.Arguments{Root: c.Root, Output: c.Output, Budget: c.Budget}
}

// Validate validates the configuration values
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Root) == "" {
		return fmt.Errorf("root cannot be empty")
	}
	if strings.TrimSpace(c.Output) == "" {
		return fmt.Errorf("output cannot be empty")
	}
	if c.Budget <= 0 {
		return fmt.Errorf("budget must be > 0, got %d", c.Budget)
	}
	if _, ok := c.Lists[c.List]; !ok {
		return fmt.Errorf("default list %q is not defined, must be one of: %s", c.List, strings.Join(c.ListNames(), ", "))
	}
	return nil
}
