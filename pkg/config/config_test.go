package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/swift502/MagChess/scoreboard/pkg/config"
)

func TestDecodeDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := config.Decode(strings.NewReader("site: https://swift502.github.io/MagChess/\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	checks := []struct {
		label    string
		actual   string
		expected string
	}{
		{"base from site path", cfg.Base, "/MagChess/"},
		{"outDir", cfg.OutDir, "dist"},
		{"locale", cfg.Locale, "cs-CZ"},
		{"timezone", cfg.Timezone, "Europe/Prague"},
		{"data path", cfg.Data.Path, "games.yaml"},
		{"log level", cfg.Log.Level, "info"},
		{"page path", cfg.Path("about.md/"), "/MagChess/about.md/"},
		{"page url", cfg.URL("/"), "https://swift502.github.io/MagChess/"},
	}

	for _, c := range checks {
		if c.actual != c.expected {
			t.Errorf("%v: %q (actual) did not match %q (expected)", c.label, c.actual, c.expected)
		}
	}
}

func TestDecodeBase(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		label    string
		config   string
		expected string
	}{
		{"site without path", "site: https://example.org", "/"},
		{"site path without trailing slash", "site: https://example.org/scores", "/scores/"},
		{"explicit base wins", "site: https://example.org/scores/\nbase: board", "/board/"},
	}

	for _, c := range testCases {
		testCase := c
		t.Run(testCase.label, func(t *testing.T) {
			t.Parallel()

			cfg, err := config.Decode(strings.NewReader(testCase.config))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if cfg.Base != testCase.expected {
				t.Errorf("%q (actual) did not match %q (expected)", cfg.Base, testCase.expected)
			}
		})
	}
}

func TestDecodeInvalid(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		label  string
		config string
	}{
		{"empty", ""},
		{"site not an url", "site: swift502"},
		{"unknown time zone", "site: https://example.org\ntimezone: Mars/Olympus_Mons"},
		{"broken locale", "site: https://example.org\nlocale: '!!'"},
		{"unknown log level", "site: https://example.org\nlog:\n  level: chatty"},
		{"empty outDir", "site: https://example.org\noutDir: ''"},
		{"malformed yaml", "site: [https://example.org"},
	}

	for _, c := range testCases {
		testCase := c
		t.Run(testCase.label, func(t *testing.T) {
			t.Parallel()

			if _, err := config.Decode(strings.NewReader(testCase.config)); err == nil {
				t.Errorf("expected an error for config %q", testCase.config)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	configPath := filepath.Join(dir, config.DefaultFile)

	contents := "site: https://swift502.github.io/MagChess/\noutDir: public\ntimezone: UTC\n"
	if err := os.WriteFile(configPath, []byte(contents), 0644); err != nil {
		t.Fatalf("error writing config: %v", err)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if actual := cfg.Resolve(cfg.OutDir); actual != filepath.Join(dir, "public") {
		t.Errorf("%q (actual) did not match %q (expected)", actual, filepath.Join(dir, "public"))
	}

	if actual := cfg.Resolve("/srv/www"); actual != "/srv/www" {
		t.Errorf("absolute path changed to %q", actual)
	}

	loc, err := cfg.Location()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if loc.String() != "UTC" {
		t.Errorf("%q (actual) did not match %q (expected)", loc.String(), "UTC")
	}

	if _, err := config.Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected an error for a missing config file")
	}
}
