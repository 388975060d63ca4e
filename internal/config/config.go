package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/brogergvhs/storyd/internal/extract"
)

// Config is one crawl profile. Selectors left empty fall back to the
// built-in site selectors.
type Config struct {
	Output   string `yaml:"output"`
	Series   bool   `yaml:"series"`
	Epub     bool   `yaml:"epub"`
	Headings bool   `yaml:"headings"`
	Debug    bool   `yaml:"debug"`

	UserAgent        string        `yaml:"user_agent"`
	Timeout          time.Duration `yaml:"timeout"`
	CloudflareBypass bool          `yaml:"cloudflare_bypass"`

	History   bool   `yaml:"history"`
	HistoryDB string `yaml:"history_db,omitempty"`
	Progress  bool   `yaml:"progress"`

	Selectors extract.Selectors `yaml:"selectors"`
}

// Options are the CLI overrides laid over the loaded profile. Zero values
// leave the profile untouched.
type Options struct {
	IgnoreConfig bool
	// Profile loads this label instead of the active one.
	Profile string

	Debug            bool
	Output           string
	Series           bool
	Epub             bool
	Headings         bool
	UserAgent        string
	Timeout          time.Duration
	CloudflareBypass bool
	NoProgress       bool
	NoHistory        bool
}

const DefaultTimeout = 30 * time.Second

func DefaultConfig() *Config {
	return &Config{
		Output:    ".",
		Timeout:   DefaultTimeout,
		History:   true,
		Progress:  true,
		Selectors: extract.DefaultSelectors(),
	}
}

// Validate checks what would otherwise only fail mid-crawl: every selector
// must compile and the timeout must not be negative.
func (c *Config) Validate() error {
	if c.Timeout < 0 {
		return fmt.Errorf("timeout %s is negative", c.Timeout)
	}
	if _, err := extract.New(c.Selectors.Merge(extract.DefaultSelectors())); err != nil {
		return fmt.Errorf("selectors: %w", err)
	}
	return nil
}

func SaveYAML(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// LoadFile reads a profile file over the defaults without validating it.
func LoadFile(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	c := DefaultConfig()
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, err
	}

	return c, nil
}

// LoadMerged resolves the profile to use, overlays opts and validates the
// result. The second return value describes where the settings came from.
func LoadMerged(opts Options) (*Config, string, error) {
	if opts.IgnoreConfig {
		return finish(DefaultConfig(), opts, "(ignored config)")
	}

	var (
		p   Profile
		err error
	)
	if opts.Profile != "" {
		p, err = Lookup(opts.Profile)
	} else {
		p, err = Active()
	}
	if errors.Is(err, ErrNoConfig) && opts.Profile == "" {
		return finish(DefaultConfig(), opts,
			"(default config in memory)\nRun `storyd config init` to create an actual config\n")
	}
	if err != nil {
		return nil, "", err
	}

	cfg, err := LoadFile(p.Path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load config %s: %w", p.Path, err)
	}

	return finish(cfg, opts, p.Path)
}

func finish(cfg *Config, opts Options, used string) (*Config, string, error) {
	mergeConfig(cfg, opts)
	normalizeDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, "", fmt.Errorf("config %s: %w", used, err)
	}

	return cfg, used, nil
}

func mergeConfig(c *Config, o Options) {
	if o.Output != "" {
		c.Output = o.Output
	}
	if o.Debug {
		c.Debug = true
	}
	if o.Series {
		c.Series = true
	}
	if o.Epub {
		c.Epub = true
	}
	if o.Headings {
		c.Headings = true
	}
	if o.UserAgent != "" {
		c.UserAgent = o.UserAgent
	}
	if o.Timeout != 0 {
		c.Timeout = o.Timeout
	}
	if o.CloudflareBypass {
		c.CloudflareBypass = true
	}
	if o.NoProgress {
		c.Progress = false
	}
	if o.NoHistory {
		c.History = false
	}
}

func normalizeDefaults(c *Config) {
	if c.Output == "" {
		c.Output = "."
	}
	if c.Timeout == 0 {
		c.Timeout = DefaultTimeout
	}
	if c.HistoryDB == "" {
		c.HistoryDB = filepath.Join(Root(), "history.db")
	}
	c.Selectors = c.Selectors.Merge(extract.DefaultSelectors())
}

// Overrides lists the selectors that differ from the built-in ones, by YAML key.
func (c *Config) Overrides() map[string]string {
	def := extract.DefaultSelectors()
	out := map[string]string{}

	pairs := []struct{ key, got, want string }{
		{"story_body", c.Selectors.StoryBody, def.StoryBody},
		{"next_page", c.Selectors.NextPage, def.NextPage},
		{"chapter_title", c.Selectors.ChapterTitle, def.ChapterTitle},
		{"series_link", c.Selectors.SeriesLink, def.SeriesLink},
		{"author_link", c.Selectors.AuthorLink, def.AuthorLink},
		{"author_name", c.Selectors.AuthorName, def.AuthorName},
		{"listing_row", c.Selectors.ListingRow, def.ListingRow},
		{"row_title", c.Selectors.RowTitle, def.RowTitle},
		{"row_description", c.Selectors.RowDescription, def.RowDescription},
		{"row_date", c.Selectors.RowDate, def.RowDate},
	}
	for _, p := range pairs {
		if p.got != "" && p.got != p.want {
			out[p.key] = p.got
		}
	}

	return out
}

func (c *Config) Print() {
	if c.Output != "" {
		fmt.Printf(" -output: %s\n", c.Output)
	}
	fmt.Printf(" -timeout: %s\n", c.Timeout)
	if c.Series {
		fmt.Printf(" -series: %t\n", c.Series)
	}
	if c.Epub {
		fmt.Printf(" -epub: %t\n", c.Epub)
	}
	if c.Headings {
		fmt.Printf(" -headings: %t\n", c.Headings)
	}
	if c.Debug {
		fmt.Printf(" -debug: %t\n", c.Debug)
	}
	if c.UserAgent != "" {
		fmt.Printf(" -user_agent: %s\n", c.UserAgent)
	}
	if c.CloudflareBypass {
		fmt.Printf(" -cloudflare_bypass: %t\n", c.CloudflareBypass)
	}
	if !c.Progress {
		fmt.Printf(" -progress: %t\n", c.Progress)
	}
	if c.History {
		fmt.Printf(" -history: %s\n", c.HistoryDB)
	}
	over := c.Overrides()
	keys := make([]string, 0, len(over))
	for k := range over {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Printf(" -selectors.%s: %s\n", k, over[k])
	}
}
