package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/lex-tools/ledes-forge/pkg/models/domain"
)

// validate is the shared validator instance for config structs.
var validate = validator.New()

type Server struct {
	Host                   string `mapstructure:"host"`
	Port                   int    `mapstructure:"port" validate:"min=0,max=65535"`
	ShutdownTimeoutSeconds int    `mapstructure:"shutdown_timeout_seconds" validate:"min=0"`
}

// ShutdownTimeout converts the configured grace period into a duration.
func (s Server) ShutdownTimeout() time.Duration {
	return time.Duration(s.ShutdownTimeoutSeconds) * time.Second
}

type Output struct {
	Dir                string `mapstructure:"dir"`
	Format             string `mapstructure:"format"`
	IncludeBlockBilled bool   `mapstructure:"include_block_billed"`
	GeneratePDF        bool   `mapstructure:"generate_pdf"`
}

type SMTP struct {
	ProfilePath string `mapstructure:"profile_path"`
	Profile     string `mapstructure:"profile"`
}

type Config struct {
	Server Server `mapstructure:"server"`
	Output Output `mapstructure:"output"`
	SMTP   SMTP   `mapstructure:"smtp"`
}

// Default returns the configuration used when no config file is supplied.
func Default() *Config {
	return &Config{
		Server: Server{Port: 8080, ShutdownTimeoutSeconds: 10},
		Output: Output{
			Dir:                ".",
			Format:             string(domain.Format1998B),
			IncludeBlockBilled: true,
			GeneratePDF:        true,
		},
	}
}

func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse app config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	defaults := Default()
	v.SetDefault("server.host", defaults.Server.Host)
	v.SetDefault("server.port", defaults.Server.Port)
	v.SetDefault("server.shutdown_timeout_seconds", defaults.Server.ShutdownTimeoutSeconds)
	v.SetDefault("output.dir", defaults.Output.Dir)
	v.SetDefault("output.format", defaults.Output.Format)
	v.SetDefault("output.include_block_billed", defaults.Output.IncludeBlockBilled)
	v.SetDefault("output.generate_pdf", defaults.Output.GeneratePDF)
}

func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if c.Output.Format != "" {
		if _, err := domain.ParseFormat(c.Output.Format); err != nil {
			return err
		}
	}
	return nil
}
