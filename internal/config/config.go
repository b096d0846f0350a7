package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"
	"github.com/rohmanhakim/richtext-icons/internal/render"
	"github.com/rohmanhakim/richtext-icons/pkg/hashutil"
	"gopkg.in/yaml.v3"
)

var classPrefixPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_-]*$`)

type Config struct {
	//===============
	// Icons
	//===============
	// Directory holding one SVG file per icon
	iconDir string
	// Class shared by every icon placeholder, as in <i class="icon fa-star">
	classPrefix string
	// How icons are drawn: one of the mask-* names, their html-css-*
	// aliases, or inline-svg
	technology string
	// Selector of the rich-text wrapper whose font rules the base CSS resets
	wrapperSelector string

	//===============
	// Processing
	//===============
	// Run every sanitized SVG through the SVG minifier
	minify bool
	// Maximum number of icon files sanitized at once
	concurrency int

	//===============
	// Output
	//===============
	// Root directory in which to store the stylesheet and preview
	outputDir string
	// Stylesheet file name without the .css extension
	stylesheetName string
	// Hash used for the stylesheet version string
	hashAlgo hashutil.HashAlgo
	// Whether the program will simulate what it would do without
	// actually writing anything
	dryRun bool

	//===============
	// Watch
	//===============
	// Quiet period that ends a burst of file changes
	watchDebounce time.Duration
}

// configDTO is shared by the JSON, YAML and TOML readers. Durations are
// strings such as "250ms".
type configDTO struct {
	IconDir         string `json:"iconDir" yaml:"iconDir" toml:"iconDir"`
	ClassPrefix     string `json:"classPrefix,omitempty" yaml:"classPrefix,omitempty" toml:"classPrefix,omitempty"`
	Technology      string `json:"technology,omitempty" yaml:"technology,omitempty" toml:"technology,omitempty"`
	WrapperSelector string `json:"wrapperSelector,omitempty" yaml:"wrapperSelector,omitempty" toml:"wrapperSelector,omitempty"`
	Minify          bool   `json:"minify,omitempty" yaml:"minify,omitempty" toml:"minify,omitempty"`
	Concurrency     int    `json:"concurrency,omitempty" yaml:"concurrency,omitempty" toml:"concurrency,omitempty"`
	OutputDir       string `json:"outputDir,omitempty" yaml:"outputDir,omitempty" toml:"outputDir,omitempty"`
	StylesheetName  string `json:"stylesheetName,omitempty" yaml:"stylesheetName,omitempty" toml:"stylesheetName,omitempty"`
	HashAlgo        string `json:"hashAlgo,omitempty" yaml:"hashAlgo,omitempty" toml:"hashAlgo,omitempty"`
	DryRun          bool   `json:"dryRun,omitempty" yaml:"dryRun,omitempty" toml:"dryRun,omitempty"`
	WatchDebounce   string `json:"watchDebounce,omitempty" yaml:"watchDebounce,omitempty" toml:"watchDebounce,omitempty"`
}

func newConfigFromDTO(dto configDTO) (Config, error) {
	cfg := WithDefault(dto.IconDir)

	// Only override if a non-zero value is provided
	if dto.ClassPrefix != "" {
		cfg.classPrefix = dto.ClassPrefix
	}
	if dto.Technology != "" {
		cfg.technology = dto.Technology
	}
	if dto.WrapperSelector != "" {
		cfg.wrapperSelector = dto.WrapperSelector
	}
	if dto.Concurrency != 0 {
		cfg.concurrency = dto.Concurrency
	}
	if dto.OutputDir != "" {
		cfg.outputDir = dto.OutputDir
	}
	if dto.StylesheetName != "" {
		cfg.stylesheetName = dto.StylesheetName
	}
	if dto.HashAlgo != "" {
		cfg.hashAlgo = hashutil.HashAlgo(strings.ToLower(dto.HashAlgo))
	}
	if dto.WatchDebounce != "" {
		d, err := time.ParseDuration(dto.WatchDebounce)
		if err != nil {
			return Config{}, fmt.Errorf("%w: watchDebounce: %s", ErrInvalidConfig, err.Error())
		}
		cfg.watchDebounce = d
	}
	// Booleans are taken as-is since their zero value is the default
	cfg.minify = dto.Minify
	cfg.dryRun = dto.DryRun

	return cfg.Build()
}

// WithConfigFile reads a config file. The format follows the extension:
// .json, .yaml or .yml, and .toml. A leading ~ in path is expanded.
func WithConfigFile(path string) (Config, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %s", ErrFileDoesNotExist, err.Error())
	}
	_, err = os.Stat(expanded)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %s", ErrFileDoesNotExist, err.Error())
	}
	configContent, err := os.ReadFile(expanded)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %s", ErrReadConfigFail, err.Error())
	}

	cfgDTO := configDTO{}
	switch ext := strings.ToLower(filepath.Ext(expanded)); ext {
	case ".json":
		err = json.Unmarshal(configContent, &cfgDTO)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(configContent, &cfgDTO)
	case ".toml":
		err = toml.Unmarshal(configContent, &cfgDTO)
	default:
		return Config{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return Config{}, fmt.Errorf("%w: %s", ErrConfigParsingFail, err.Error())
	}

	return newConfigFromDTO(cfgDTO)
}

// WithDefault creates a new Config for the given icon directory and default
// values for all other fields. iconDir is mandatory; Build rejects an
// empty one.
func WithDefault(iconDir string) *Config {
	defaultConfig := Config{
		iconDir:         iconDir,
		classPrefix:     render.DefaultPrefix,
		technology:      "mask-inline",
		wrapperSelector: render.DefaultWrapperSelector,
		minify:          false,
		concurrency:     4,
		outputDir:       "output",
		stylesheetName:  "icons",
		hashAlgo:        hashutil.HashAlgoSHA256,
		dryRun:          false,
		watchDebounce:   200 * time.Millisecond,
	}
	return &defaultConfig
}

func (c *Config) WithIconDir(dir string) *Config {
	c.iconDir = dir
	return c
}

func (c *Config) WithClassPrefix(prefix string) *Config {
	c.classPrefix = prefix
	return c
}

func (c *Config) WithTechnology(technology string) *Config {
	c.technology = technology
	return c
}

func (c *Config) WithWrapperSelector(selector string) *Config {
	c.wrapperSelector = selector
	return c
}

func (c *Config) WithMinify(minify bool) *Config {
	c.minify = minify
	return c
}

func (c *Config) WithConcurrency(concurrency int) *Config {
	c.concurrency = concurrency
	return c
}

func (c *Config) WithOutputDir(outputDir string) *Config {
	c.outputDir = outputDir
	return c
}

func (c *Config) WithStylesheetName(name string) *Config {
	c.stylesheetName = name
	return c
}

func (c *Config) WithHashAlgo(algo hashutil.HashAlgo) *Config {
	c.hashAlgo = algo
	return c
}

func (c *Config) WithDryRun(dryRun bool) *Config {
	c.dryRun = dryRun
	return c
}

func (c *Config) WithWatchDebounce(debounce time.Duration) *Config {
	c.watchDebounce = debounce
	return c
}

func (c *Config) Build() (Config, error) {
	if strings.TrimSpace(c.iconDir) == "" {
		return Config{}, fmt.Errorf("%w: iconDir cannot be empty", ErrInvalidConfig)
	}
	if !classPrefixPattern.MatchString(c.classPrefix) {
		return Config{}, fmt.Errorf("%w: classPrefix %q is not a CSS class name", ErrInvalidConfig, c.classPrefix)
	}
	if !render.KnownTechnology(c.technology) {
		return Config{}, fmt.Errorf("%w: unknown technology %q", ErrInvalidConfig, c.technology)
	}
	if strings.TrimSpace(c.wrapperSelector) == "" {
		return Config{}, fmt.Errorf("%w: wrapperSelector cannot be empty", ErrInvalidConfig)
	}
	if c.concurrency < 1 {
		return Config{}, fmt.Errorf("%w: concurrency must be at least 1, got %d", ErrInvalidConfig, c.concurrency)
	}
	if c.stylesheetName == "" || strings.ContainsAny(c.stylesheetName, `/\`) {
		return Config{}, fmt.Errorf("%w: invalid stylesheetName %q", ErrInvalidConfig, c.stylesheetName)
	}
	if !hashutil.IsSupported(c.hashAlgo) {
		return Config{}, fmt.Errorf("%w: unsupported hashAlgo %q", ErrInvalidConfig, c.hashAlgo)
	}
	if c.watchDebounce < 0 {
		return Config{}, fmt.Errorf("%w: watchDebounce cannot be negative", ErrInvalidConfig)
	}

	var err error
	if c.iconDir, err = homedir.Expand(c.iconDir); err != nil {
		return Config{}, fmt.Errorf("%w: iconDir: %s", ErrInvalidConfig, err.Error())
	}
	if c.outputDir, err = homedir.Expand(c.outputDir); err != nil {
		return Config{}, fmt.Errorf("%w: outputDir: %s", ErrInvalidConfig, err.Error())
	}
	c.technology = strings.ToLower(strings.TrimSpace(c.technology))

	return *c, nil
}

func (c Config) IconDir() string {
	return c.iconDir
}

func (c Config) ClassPrefix() string {
	return c.classPrefix
}

// Technology returns the CSS technology. inline-svg maps to MaskInline,
// which is what its fallback stylesheet uses.
func (c Config) Technology() render.Technology {
	return render.ParseTechnology(c.technology)
}

// InlineSVG reports whether placeholders are replaced by inline <svg>
// markup instead of being drawn by CSS masks.
func (c Config) InlineSVG() bool {
	return c.technology == "inline-svg"
}

func (c Config) WrapperSelector() string {
	return c.wrapperSelector
}

func (c Config) Minify() bool {
	return c.minify
}

func (c Config) Concurrency() int {
	return c.concurrency
}

func (c Config) OutputDir() string {
	return c.outputDir
}

func (c Config) StylesheetName() string {
	return c.stylesheetName
}

func (c Config) HashAlgo() hashutil.HashAlgo {
	return c.hashAlgo
}

func (c Config) DryRun() bool {
	return c.dryRun
}

func (c Config) WatchDebounce() time.Duration {
	return c.watchDebounce
}

// Renderer returns the CSS renderer configured by c.
func (c Config) Renderer() render.Renderer {
	return render.NewRenderer(c.classPrefix).WithWrapperSelector(c.wrapperSelector)
}
