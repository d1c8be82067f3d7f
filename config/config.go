// Package config loads folio settings from defaults, an optional YAML file,
// a .env file and FOLIO_* environment variables, in increasing priority.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override.
const EnvPrefix = "FOLIO"

// Mail providers.
const (
	ProviderAPI     = "api"
	ProviderSMTP    = "smtp"
	ProviderDiscard = "discard"
)

type Config struct {
	Addr    string        `mapstructure:"addr"`
	BaseURL string        `mapstructure:"baseURL"`
	Site    SiteConfig    `mapstructure:"site"`
	Log     LogConfig     `mapstructure:"log"`
	DB      DBConfig      `mapstructure:"db"`
	Feed    FeedConfig    `mapstructure:"feed"`
	Contact ContactConfig `mapstructure:"contact"`
	Mail    MailConfig    `mapstructure:"mail"`
	SMTP    SMTPConfig    `mapstructure:"smtp"`
}

type SiteConfig struct {
	Title       string `mapstructure:"title"`
	Description string `mapstructure:"description"`
	Author      string `mapstructure:"author"`
	Language    string `mapstructure:"language"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// DBConfig locates the submission store. An empty path keeps it in memory.
type DBConfig struct {
	Path string `mapstructure:"path"`
}

type FeedConfig struct {
	MaxAge time.Duration `mapstructure:"maxAge"`
}

type ContactConfig struct {
	SubjectPrefix string        `mapstructure:"subjectPrefix"`
	DedupeWindow  time.Duration `mapstructure:"dedupeWindow"`
}

type MailConfig struct {
	Provider string        `mapstructure:"provider"`
	APIURL   string        `mapstructure:"apiURL"`
	APIKey   string        `mapstructure:"apiKey"`
	From     string        `mapstructure:"from"`
	To       []string      `mapstructure:"to"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

type SMTPConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("addr", ":8080")
	v.SetDefault("baseURL", "http://localhost:8080")
	v.SetDefault("site.title", "Folio")
	v.SetDefault("site.description", "Articles on design systems, component APIs and theming.")
	v.SetDefault("site.author", "")
	v.SetDefault("site.language", "en")
	v.SetDefault("log.level", "info")
	v.SetDefault("db.path", "data/submissions")
	v.SetDefault("feed.maxAge", time.Hour)
	v.SetDefault("contact.subjectPrefix", "Contact form")
	v.SetDefault("contact.dedupeWindow", 10*time.Minute)
	v.SetDefault("mail.provider", ProviderDiscard)
	v.SetDefault("mail.apiURL", "https://api.resend.com")
	v.SetDefault("mail.apiKey", "")
	v.SetDefault("mail.from", "")
	v.SetDefault("mail.to", []string{})
	v.SetDefault("mail.timeout", 10*time.Second)
	v.SetDefault("smtp.host", "")
	v.SetDefault("smtp.port", "587")
	v.SetDefault("smtp.user", "")
	v.SetDefault("smtp.password", "")
}

// LoadEnv loads environment variables from .env files in the working
// directory. Missing files are skipped.
func LoadEnv(logger *logrus.Logger, files ...string) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	loaded := make([]string, 0, len(files))
	for _, file := range files {
		if _, err := os.Stat(file); err != nil {
			continue
		}
		if err := godotenv.Load(file); err != nil {
			if logger != nil {
				logger.WithError(err).Warnf("Failed to load %s", file)
			}
			continue
		}
		loaded = append(loaded, file)
	}
	if logger == nil {
		return
	}
	if len(loaded) == 0 {
		logger.Debug("No local env files loaded; relying on process environment")
	} else {
		logger.Debugf("Loaded env files: %s", strings.Join(loaded, ", "))
	}
}

// Load reads configuration. cfgFile, when set, must exist; otherwise
// folio.yaml is looked up in the working directory and is optional.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("folio")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || cfgFile != "" {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}
	cfg.Mail.To = splitList(cfg.Mail.To)
	return &cfg, nil
}

// splitList flattens comma separated entries and drops blanks.
func splitList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// Validate reports every setting that is missing or malformed.
func (c *Config) Validate() error {
	var errs []error

	if c.Addr == "" {
		errs = append(errs, errors.New("addr is required"))
	}
	if u, err := url.Parse(c.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("baseURL %q must be an absolute URL", c.BaseURL))
	}
	if c.Feed.MaxAge < 0 {
		errs = append(errs, errors.New("feed.maxAge must not be negative"))
	}
	if c.Mail.Timeout <= 0 {
		errs = append(errs, errors.New("mail.timeout must be positive"))
	}

	switch c.Mail.Provider {
	case ProviderDiscard:
	case ProviderAPI:
		if c.Mail.APIKey == "" {
			errs = append(errs, errors.New("mail.apiKey is required for the api provider"))
		}
		errs = append(errs, c.requireAddressing()...)
	case ProviderSMTP:
		if c.SMTP.Host == "" {
			errs = append(errs, errors.New("smtp.host is required for the smtp provider"))
		}
		errs = append(errs, c.requireAddressing()...)
	default:
		errs = append(errs, fmt.Errorf("mail.provider %q must be one of api, smtp, discard", c.Mail.Provider))
	}

	return errors.Join(errs...)
}

func (c *Config) requireAddressing() []error {
	var errs []error
	if c.Mail.From == "" {
		errs = append(errs, errors.New("mail.from is required"))
	}
	if len(c.Mail.To) == 0 {
		errs = append(errs, errors.New("mail.to is required"))
	}
	return errs
}
