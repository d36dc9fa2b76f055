package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// EnvSecret names the required session-signing secret. The server
	// refuses to start without it; see site.New.
	EnvSecret = "HOMESITE_SECRET"

	// EnvLive enables the development live-reload script in rendered
	// pages. Default off.
	EnvLive = "HOMESITE_LIVE"
)

type Config struct {
	Server  Server  `yaml:"server"`
	Session Session `yaml:"session"`
	Repo    Repo    `yaml:"repo"`
	Site    Site    `yaml:"site"`

	// From the environment, never the config file.
	Secret string `yaml:"-"`
	Live   bool   `yaml:"-"`
}

type Server struct {
	Port      int    `yaml:"port"`
	StaticDir string `yaml:"static_dir"`

	// PublicPaths is the allow-list of paths exempt from the auth
	// gate. Patterns ending in "/" match by prefix, patterns starting
	// with "." match by file extension, everything else matches
	// exactly.
	PublicPaths []string `yaml:"public_paths"`
}

type Session struct {
	Lifetime Duration `yaml:"lifetime"`
}

type Repo struct {
	Path string `yaml:"path"`
}

type Site struct {
	TemplateDir string `yaml:"template_dir"`
	ContentDir  string `yaml:"content_dir"`
}

// Duration lets yaml configs say "12h" instead of nanoseconds.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}

	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("parsing duration %q: %w", s, err)
	}

	*d = Duration(v)
	return nil
}

func defaults() *Config {
	return &Config{
		Server: Server{
			Port:      8123,
			StaticDir: "web/static",
			PublicPaths: []string{
				"/login",
				"/live",
				"/favicon.ico",
				"/static/",
				".css",
				".js",
			},
		},
		Session: Session{
			Lifetime: Duration(12 * time.Hour),
		},
		Repo: Repo{
			Path: "config/users.json",
		},
		Site: Site{
			TemplateDir: "web/tmpl",
			ContentDir:  "content",
		},
	}
}

// New loads config from the yaml file at path, falling back to
// defaults when the file does not exist, then overlays the
// environment variables.
func New(path string) (*Config, error) {
	c := defaults()

	b, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(b, c); err != nil {
			return nil, fmt.Errorf("parsing config %v: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	c.Secret = os.Getenv(EnvSecret)

	if v := os.Getenv(EnvLive); v != "" {
		live, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("parsing %v: %w", EnvLive, err)
		}
		c.Live = live
	}

	return c, nil
}
