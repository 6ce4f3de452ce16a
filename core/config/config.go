package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/tristendillon/gsqa/core/logger"
	"gopkg.in/yaml.v3"
)

const FileName = "gsqa.yaml"

type Config struct {
	Events     Events     `yaml:"events"`
	Tests      Tests      `yaml:"tests"`
	Env        Env        `yaml:"env"`
	Manifest   Manifest   `yaml:"manifest"`
	Dependency Dependency `yaml:"dependency"`
}

type Events struct {
	Source    string   `yaml:"source" validate:"required"`
	Extension string   `yaml:"extension" validate:"required,startswith=."`
	Exclude   []string `yaml:"exclude"`
}

type Tests struct {
	Output    string `yaml:"output" validate:"required"`
	Extension string `yaml:"extension" validate:"required,startswith=."`
}

type Env struct {
	Base   string   `yaml:"base" validate:"required"`
	Target string   `yaml:"target" validate:"required,nefield=Base"`
	Allow  []string `yaml:"allow"`
}

type Manifest struct {
	Path string `yaml:"path" validate:"required"`
}

type Dependency struct {
	Manager string `yaml:"manager" validate:"required,oneof=pnpm npm"`
	Name    string `yaml:"name" validate:"required"`
}

var validate = validator.New()

func Default() *Config {
	return &Config{
		Events: Events{
			Source:    filepath.Join("src", "events"),
			Extension: ".yaml",
		},
		Tests: Tests{
			Output:    filepath.Join("test", "eventHandlers"),
			Extension: ".test.ts",
		},
		Env: Env{
			Base:   ".env",
			Target: ".test.env",
			Allow:  []string{"GS_TRANSPILE"},
		},
		Manifest: Manifest{
			Path: "package.json",
		},
		Dependency: Dependency{
			Manager: "pnpm",
			Name:    "@types/mocha",
		},
	}
}

// Load reads gsqa.yaml from the working directory.
func Load() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("cannot determine working dir: %w", err)
	}
	return LoadFrom(filepath.Join(wd, FileName))
}

// LoadFrom reads the config at filePath. A missing file yields the defaults;
// keys absent from the file keep their default values.
func LoadFrom(filePath string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(filePath)
	if os.IsNotExist(err) {
		logger.Debug("No config file found at %s, using default config", filePath)
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", filePath, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse yaml: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", filePath, err)
	}
	logger.Debug("Config file found: %s", filePath)
	logger.Debug("Config: %+v", *cfg)

	return cfg, nil
}

func (c *Config) Validate() error {
	return validate.Struct(c)
}
