package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v3"

	"github.com/rupor-github/gencfg"
)

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

type (
	// ScanConfig controls the browser-driven glyph scanning session.
	ScanConfig struct {
		SpiderLimit    int    `yaml:"spider_limit" validate:"gte=0"`
		PageTimeoutSec int    `yaml:"page_timeout_sec" validate:"gte=0"`
		CrawlOrder     string `yaml:"crawl_order" validate:"oneof=depthFirst breadthFirst"`
		Headless       bool   `yaml:"headless"`
		BrowserPath    string `yaml:"browser_path,omitempty" sanitize:"path_clean" validate:"omitempty,filepath"`
		UserAgent      string `yaml:"user_agent,omitempty"`
		CachePath      string `yaml:"cache_path,omitempty" sanitize:"path_clean,assure_dir_exists_for_file" validate:"omitempty,filepath"`
	}

	// SubsetConfig controls how subsetted fonts are produced and named.
	SubsetConfig struct {
		EnginePath         string `yaml:"engine_path,omitempty" sanitize:"path_clean" validate:"omitempty,filepath"`
		OutputNameTemplate string `yaml:"output_name_template" validate:"required"`
		OutputDir          string `yaml:"output_dir,omitempty" sanitize:"path_clean" validate:"omitempty,dirpath"`
		Whitelist          string `yaml:"whitelist,omitempty"`
	}

	Config struct {
		Version   int            `yaml:"version" validate:"eq=1"`
		Scan      ScanConfig     `yaml:"scan"`
		Subset    SubsetConfig   `yaml:"subset"`
		Logging   LoggingConfig  `yaml:"logging"`
		Reporting ReporterConfig `yaml:"reporting"`
	}
)

const (
	// NOTE: must match yaml field name above, alternative is to use struct
	// field name and reflection which I want to avoid for now
	OutputNameTemplateFieldName = "output_name_template"
)

// The output name template is expanded per font file at subsetting time, not
// at configuration load.
var requiredOptions = append([]func(*gencfg.ProcessingOptions){},
	gencfg.WithDoNotExpandField(OutputNameTemplateFieldName),
)

func unmarshalConfig(data []byte, cfg *Config, process bool) (*Config, error) {
	// We want to use only fields we defined so we cannot use yaml.Unmarshal
	// directly here
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	if process {
		// sanitize and validate what has been loaded
		if err := gencfg.Sanitize(cfg); err != nil {
			return nil, err
		}
		if err := gencfg.Validate(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// LoadConfiguration reads the configuration from the file at the given path,
// superimposes its values on top of expanded configuration template to provide
// sane defaults and performs validation.
func LoadConfiguration(path string, options ...func(*gencfg.ProcessingOptions)) (*Config, error) {
	haveFile := len(path) > 0

	data, err := gencfg.Process(ConfigTmpl, append(requiredOptions, options...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	cfg, err := unmarshalConfig(data, &Config{}, !haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	if !haveFile {
		return cfg, nil
	}

	// overwrite cfg values with values from the file
	data, err = os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err = unmarshalConfig(data, cfg, haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration file: %w", err)
	}
	return cfg, nil
}

// Prepare generates configuration file from template and returns it as a byte
// slice.
func Prepare() ([]byte, error) {
	return gencfg.Process(ConfigTmpl, requiredOptions...)
}

func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %v", err)
	}
	return data, nil
}
