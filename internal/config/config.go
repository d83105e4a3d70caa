// Package config loads application configuration and installs the global logger.
package config

import (
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	API    APIConfig    `yaml:"api" mapstructure:"api"`
	Output OutputConfig `yaml:"output" mapstructure:"output"`
	Server ServerConfig `yaml:"server" mapstructure:"server"`
	Log    LogConfig    `yaml:"log" mapstructure:"log"`
}

// APIConfig configures the MOENV open-data feed.
type APIConfig struct {
	BaseURL            string `yaml:"base_url" mapstructure:"base_url"`
	Key                string `yaml:"key" mapstructure:"key"`
	Limit              int    `yaml:"limit" mapstructure:"limit"`
	TimeoutSecs        int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	InsecureSkipVerify bool   `yaml:"insecure_skip_verify" mapstructure:"insecure_skip_verify"`
}

// Timeout returns the feed request timeout.
func (a APIConfig) Timeout() time.Duration {
	return time.Duration(a.TimeoutSecs) * time.Second
}

// OutputConfig configures artifact paths. An empty XLSXPath disables the workbook.
type OutputConfig struct {
	MapPath  string `yaml:"map_path" mapstructure:"map_path"`
	CSVPath  string `yaml:"csv_path" mapstructure:"csv_path"`
	XLSXPath string `yaml:"xlsx_path" mapstructure:"xlsx_path"`
}

// ServerConfig configures the artifact server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("AQIMON")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// The upstream portal documents the key as MOENV_API_KEY; accept both names.
	if err := v.BindEnv("api.key", "AQIMON_API_KEY", "MOENV_API_KEY"); err != nil {
		return nil, eris.Wrap(err, "config: bind api key env")
	}

	// Defaults
	v.SetDefault("api.base_url", "https://data.moenv.gov.tw/api/v2/aqx_p_432")
	v.SetDefault("api.limit", 100)
	v.SetDefault("api.timeout_secs", 30)
	v.SetDefault("api.insecure_skip_verify", false)
	v.SetDefault("output.map_path", "outputs/taiwan_aqi_map.html")
	v.SetDefault("output.csv_path", "outputs/aqi_data.csv")
	v.SetDefault("output.xlsx_path", "")
	v.SetDefault("server.port", 8080)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks settings that must hold before any network call is made.
func (c *Config) Validate() error {
	var problems []string
	if c.API.Key == "" {
		problems = append(problems, "api.key is required (set AQIMON_API_KEY or MOENV_API_KEY)")
	}
	if c.API.BaseURL == "" {
		problems = append(problems, "api.base_url is required")
	}
	if c.API.Limit <= 0 {
		problems = append(problems, "api.limit must be > 0")
	}
	if c.Output.MapPath == "" {
		problems = append(problems, "output.map_path is required")
	}
	if c.Output.CSVPath == "" {
		problems = append(problems, "output.csv_path is required")
	}
	if len(problems) > 0 {
		return eris.New("config: " + strings.Join(problems, "; "))
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
