// Package config loads the YAML configuration shared by the command
// line tool and the server.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/saranrapjs/ixbrlparse/pkg/ixbrl"
	"github.com/saranrapjs/ixbrlparse/pkg/transform"
)

// AliasProvider prefixes the names of the providers carrying configured
// aliases, as in "config-first".
const AliasProvider = "config"

type Config struct {
	Mode      string  `yaml:"mode"`
	Strict    bool    `yaml:"strict"`
	NoContent string  `yaml:"nocontent"`
	Log       Log     `yaml:"log"`
	Aliases   []Alias `yaml:"aliases"`
	Database  string  `yaml:"database"`
	Edgar     Edgar   `yaml:"edgar"`
	Server    Server  `yaml:"server"`
}

type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Alias makes Name parse the way Target does.
type Alias struct {
	Name     string `yaml:"name"`
	Target   string `yaml:"target"`
	Priority string `yaml:"priority"`
}

type Edgar struct {
	UserAgent string `yaml:"user_agent"`
	RateLimit int    `yaml:"rate_limit"`
}

type Server struct {
	Addr      string `yaml:"addr"`
	CacheSize int    `yaml:"cache_size"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Mode:      "failfast",
		NoContent: "null",
		Log:       Log{Level: "info", Format: "console"},
		Database:  "ixbrl.db",
		Edgar:     Edgar{RateLimit: 10},
		Server:    Server{Addr: ":8080", CacheSize: 128},
	}
}

// Load reads path over the defaults. An empty path returns the
// defaults. PORT, when set, overrides the server address.
func Load(path string) (*Config, error) {
	c := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, c); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}
	if port := os.Getenv("PORT"); port != "" {
		c.Server.Addr = ":" + port
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks the enumerated settings.
func (c *Config) Validate() error {
	if _, err := ixbrl.ParseMode(c.Mode); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if _, err := c.noContent(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	for _, a := range c.Aliases {
		if a.Name == "" || a.Target == "" {
			return fmt.Errorf("invalid config: alias needs a name and a target")
		}
		if _, err := parsePriority(a.Priority); err != nil {
			return fmt.Errorf("invalid config: alias %s: %w", a.Name, err)
		}
	}
	return nil
}

func (c *Config) noContent() (transform.NoContentPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(c.NoContent)) {
	case "", "null":
		return transform.NoContentNull, nil
	case "zero":
		return transform.NoContentZero, nil
	}
	return 0, fmt.Errorf("unknown nocontent policy %q: want null or zero", c.NoContent)
}

func parsePriority(s string) (transform.Priority, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "first":
		return transform.TryFirst, nil
	case "", "default":
		return transform.Normal, nil
	case "last":
		return transform.TryLast, nil
	}
	return 0, fmt.Errorf("unknown priority %q: want first, default or last", s)
}

// aliasProviders turns the aliases into one provider per priority.
// Alias parsers are looked up in base, the registry built without them.
func (c *Config) aliasProviders(base *transform.Registry) ([]transform.Provider, error) {
	byPriority := make(map[transform.Priority]*transform.Provider)
	var providers []transform.Provider
	for _, a := range c.Aliases {
		p, err := base.Lookup(a.Target)
		if err != nil {
			return nil, fmt.Errorf("alias %s: %w", a.Name, err)
		}
		prio, _ := parsePriority(a.Priority)
		if byPriority[prio] == nil {
			byPriority[prio] = &transform.Provider{Name: AliasProvider + "-" + prio.String(), Priority: prio}
		}
		byPriority[prio].Entries = append(byPriority[prio].Entries, transform.Entry{
			Names:   []string{a.Name},
			Factory: func() transform.Parser { return p },
		})
	}
	for _, prio := range []transform.Priority{transform.TryFirst, transform.Normal, transform.TryLast} {
		if p := byPriority[prio]; p != nil {
			providers = append(providers, *p)
		}
	}
	return providers, nil
}

// Registry builds the format registry the configuration describes.
func (c *Config) Registry(opts transform.RegistryOpts) (*transform.Registry, error) {
	policy, err := c.noContent()
	if err != nil {
		return nil, err
	}
	opts.NoContent = policy
	opts.Strict = opts.Strict || c.Strict
	if len(c.Aliases) == 0 {
		return transform.NewRegistry(opts)
	}

	base, err := transform.NewRegistry(opts)
	if err != nil {
		return nil, err
	}
	aliases, err := c.aliasProviders(base)
	if err != nil {
		return nil, err
	}
	opts.Providers = append(opts.Providers, aliases...)
	return transform.NewRegistry(opts)
}

// ParseOptions returns the ixbrl options for the configured mode and
// registry.
func (c *Config) ParseOptions(r *transform.Registry) ([]ixbrl.Option, error) {
	mode, err := ixbrl.ParseMode(c.Mode)
	if err != nil {
		return nil, err
	}
	return []ixbrl.Option{ixbrl.WithMode(mode), ixbrl.WithRegistry(r)}, nil
}
