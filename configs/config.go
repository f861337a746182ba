package configs

import (
	"fmt"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	App struct {
		Name     string `koanf:"name"`
		HTTPAddr string `koanf:"http_addr"`
		LogFile  string `koanf:"log_file"`
	} `koanf:"app"`

	HTTP struct {
		ReadTimeout    time.Duration `koanf:"read_timeout"`
		WriteTimeout   time.Duration `koanf:"write_timeout"`
		IdleTimeout    time.Duration `koanf:"idle_timeout"`
		RequestTimeout time.Duration `koanf:"request_timeout"`
	} `koanf:"http"`

	Medusa struct {
		BaseURL string        `koanf:"base_url"`
		Timeout time.Duration `koanf:"timeout"`
	} `koanf:"medusa"`

	Pricing struct {
		BaseURL string        `koanf:"base_url"`
		Shop    string        `koanf:"shop"`
		Timeout time.Duration `koanf:"timeout"`
	} `koanf:"pricing"`

	Redis struct {
		Addr     string `koanf:"addr"`
		Password string `koanf:"password"`
		DB       int    `koanf:"db"`
	} `koanf:"redis"`

	Kafka struct {
		Brokers []string `koanf:"brokers"`
	} `koanf:"kafka"`

	Checkout struct {
		PathTemplate string `koanf:"path_template"`
	} `koanf:"checkout"`
}

// Load reads the YAML file at path (optional) and applies GM_* environment
// overrides, e.g. GM_MEDUSA_BASE_URL -> medusa.base_url.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %q: %w", path, err)
		}
	}

	// GM_MEDUSA_BASE_URL -> medusa.base_url: only the first underscore is a
	// section separator, the rest belong to the key.
	if err := k.Load(env.Provider("GM_", ".", func(s string) string {
		return strings.Replace(strings.ToLower(strings.TrimPrefix(s, "GM_")), "_", ".", 1)
	}), nil); err != nil {
		return nil, fmt.Errorf("load env config: %w", err)
	}

	cfg := defaults()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, nil
}

func defaults() *Config {
	cfg := &Config{}
	cfg.App.Name = "greenmile-bridge"
	cfg.App.HTTPAddr = ":8080"
	cfg.App.LogFile = "./logs/app.log"
	cfg.HTTP.ReadTimeout = 10 * time.Second
	cfg.HTTP.WriteTimeout = 10 * time.Second
	cfg.HTTP.IdleTimeout = 60 * time.Second
	cfg.HTTP.RequestTimeout = 30 * time.Second
	cfg.Medusa.BaseURL = "http://localhost:9000"
	cfg.Medusa.Timeout = 10 * time.Second
	cfg.Pricing.BaseURL = "http://localhost:8000"
	cfg.Pricing.Timeout = 5 * time.Second
	cfg.Redis.Addr = "localhost:6379"
	cfg.Kafka.Brokers = []string{"localhost:9092"}
	cfg.Checkout.PathTemplate = "/%s/checkout?step=address"
	return cfg
}
