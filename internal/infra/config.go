package infra

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"flowex/internal/domain"
)

// Config holds every application setting. LoadConfig reads the YAML file
// and then applies environment-variable overrides.
type Config struct {
	App struct {
		Name    string `yaml:"name"`
		Version string `yaml:"version"`
	} `yaml:"app"`

	Exchange struct {
		Instruments []string `yaml:"instruments"`
	} `yaml:"exchange"`

	Feed struct {
		InputPath  string `yaml:"input_path"`
		ReportPath string `yaml:"report_path"`
	} `yaml:"feed"`

	Storage struct {
		Path string `yaml:"path"` // empty selects the per-user default location
	} `yaml:"storage"`

	Server struct {
		Enabled    bool   `yaml:"enabled"`
		ListenAddr string `yaml:"listen_addr"`
	} `yaml:"server"`

	Logging struct {
		Level string `yaml:"level"`
	} `yaml:"logging"`
}

// LoadConfig reads and parses the configuration file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrConfigNotFound, path)
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	overrideWithEnv(&cfg)

	if len(cfg.Exchange.Instruments) == 0 {
		for _, instrument := range domain.Instruments() {
			cfg.Exchange.Instruments = append(cfg.Exchange.Instruments, string(instrument))
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Validate checks configuration validity.
func (c *Config) Validate() error {
	for _, symbol := range c.Exchange.Instruments {
		if _, ok := domain.ParseInstrument(symbol); !ok {
			return fmt.Errorf("%w: %s", domain.ErrUnknownInstrument, symbol)
		}
	}

	if c.Server.Enabled && c.Server.ListenAddr == "" {
		return domain.NewValidationError("server.listen_addr", "empty while server is enabled")
	}

	if c.Feed.InputPath == "" && !c.Server.Enabled {
		return domain.NewValidationError("feed.input_path", "nothing to do: no input file and server disabled")
	}

	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return domain.NewValidationError("logging.level", "unknown level "+c.Logging.Level)
	}

	return nil
}

// Instruments returns the configured tradable set as domain values.
func (c *Config) Instruments() []domain.Instrument {
	out := make([]domain.Instrument, 0, len(c.Exchange.Instruments))
	for _, symbol := range c.Exchange.Instruments {
		if instrument, ok := domain.ParseInstrument(symbol); ok {
			out = append(out, instrument)
		}
	}
	return out
}

// overrideWithEnv replaces settings with environment values when present.
func overrideWithEnv(cfg *Config) {
	if path := os.Getenv("FLOWEX_INPUT"); path != "" {
		cfg.Feed.InputPath = path
	}
	if path := os.Getenv("FLOWEX_REPORT"); path != "" {
		cfg.Feed.ReportPath = path
	}
	if path := os.Getenv("FLOWEX_DB_PATH"); path != "" {
		cfg.Storage.Path = path
	}
	if addr := os.Getenv("FLOWEX_LISTEN_ADDR"); addr != "" {
		cfg.Server.Enabled = true
		cfg.Server.ListenAddr = addr
	}
	if level := os.Getenv("FLOWEX_LOG_LEVEL"); level != "" {
		cfg.Logging.Level = level
	}
}
