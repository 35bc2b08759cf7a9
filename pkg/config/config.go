// Package config loads the site configuration, the declarative settings the scoreboard is built with.
package config

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	// the configured time zone must not depend on the zoneinfo of the build machine
	_ "time/tzdata"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v2"
)

const DefaultFile = "site.yaml"

type Data struct {
	// Path of the games file, relative to the config file or the root of the source repository.
	Path string `yaml:"path" validate:"required"`

	// Source is the URL of a git repository to read the games file from. When empty, Path is read
	// from the local filesystem.
	Source string `yaml:"source" validate:"omitempty,url"`

	// Ref is the branch or tag to read from Source. Empty selects the highest semver tag, falling
	// back to main or master.
	Ref string `yaml:"ref"`

	Cache string `yaml:"cache" validate:"required"`
}

type Log struct {
	Level  string `yaml:"level"  validate:"oneof=debug info warn error"`
	Format string `yaml:"format" validate:"oneof=text json"`
}

type Config struct {
	Site   string `yaml:"site"   validate:"required,url"`
	Base   string `yaml:"base"   validate:"startswith=/,endswith=/"`
	OutDir string `yaml:"outDir" validate:"required"`

	Locale   string `yaml:"locale"   validate:"required"`
	Timezone string `yaml:"timezone" validate:"required"`

	TemplateDir string `yaml:"templateDir" validate:"required"`
	ContentDir  string `yaml:"contentDir"  validate:"required"`
	StaticDir   string `yaml:"staticDir"   validate:"required"`
	CodeStyle   string `yaml:"codeStyle"`

	Data Data `yaml:"data"`
	Log  Log  `yaml:"log"`

	// Dir is the directory the config was loaded from, relative paths are resolved against it.
	Dir string `yaml:"-"`
}

// Default returns a Config with every optional setting filled in.
func Default() *Config {
	return &Config{
		OutDir:      "dist",
		Locale:      "cs-CZ",
		Timezone:    "Europe/Prague",
		TemplateDir: "templates",
		ContentDir:  "content",
		StaticDir:   "static",
		CodeStyle:   "pygments",
		Data: Data{
			Path:  "games.yaml",
			Cache: "source-cache",
		},
		Log: Log{
			Level:  "info",
			Format: "text",
		},
		Dir: ".",
	}
}

// Load reads the config file at filePath, applies defaults and validates the result.
func Load(filePath string) (*Config, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("error opening config file %q: %w", filePath, err)
	}
	defer file.Close()

	ret, err := Decode(file)
	if err != nil {
		return nil, fmt.Errorf("error loading config file %q: %w", filePath, err)
	}

	ret.Dir = filepath.Dir(filePath)

	return ret, nil
}

// Decode reads a config from r, applies defaults and validates the result.
func Decode(r io.Reader) (*Config, error) {
	ret := Default()

	if err := yaml.NewDecoder(r).Decode(ret); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("error decoding config: %w", err)
	}

	if ret.Base == "" && ret.Site != "" {
		site, err := url.Parse(ret.Site)
		if err != nil {
			return nil, fmt.Errorf("error parsing site url %q: %w", ret.Site, err)
		}

		ret.Base = site.Path
	}

	ret.Base = normalizeBase(ret.Base)

	if err := validator.New().Struct(ret); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	if _, err := ret.LocaleTag(); err != nil {
		return nil, err
	}

	if _, err := ret.Location(); err != nil {
		return nil, err
	}

	return ret, nil
}

func normalizeBase(base string) string {
	if !strings.HasPrefix(base, "/") {
		base = "/" + base
	}

	if !strings.HasSuffix(base, "/") {
		base += "/"
	}

	return base
}

func (c *Config) LocaleTag() (language.Tag, error) {
	tag, err := language.Parse(c.Locale)
	if err != nil {
		return language.Und, fmt.Errorf("error parsing locale %q: %w", c.Locale, err)
	}

	return tag, nil
}

func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("error loading time zone %q: %w", c.Timezone, err)
	}

	return loc, nil
}

// Resolve makes p relative to the config file directory, absolute paths are returned unchanged.
func (c *Config) Resolve(p string) string {
	if filepath.IsAbs(p) || c.Dir == "" {
		return p
	}

	return filepath.Join(c.Dir, p)
}

// Path returns the site-absolute path of a page, prefixed with Base.
func (c *Config) Path(page string) string {
	return c.Base + strings.TrimPrefix(page, "/")
}

// URL returns the full URL of a page, built from the origin of Site and Path.
func (c *Config) URL(page string) string {
	site, err := url.Parse(c.Site)
	if err != nil {
		return c.Path(page)
	}

	return site.Scheme + "://" + site.Host + c.Path(page)
}
