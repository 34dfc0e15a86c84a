package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// FileName is the configuration file looked up in the config directory.
const FileName = "disbridge.cfg.json"

// DISConfig selects the dialect and the simulation address the bridge sends as.
type DISConfig struct {
	Dialect       string `json:"dialect" mapstructure:"dialect"`
	SiteID        uint16 `json:"siteId" mapstructure:"siteId"`
	ApplicationID uint16 `json:"applicationId" mapstructure:"applicationId"`
}

// JournalConfig holds the translated traffic journal settings
type JournalConfig struct {
	Enabled       bool          `json:"enabled" mapstructure:"enabled"`
	Type          string        `json:"type" mapstructure:"type" validate:"oneof=sqlite postgres"`
	Path          string        `json:"path" mapstructure:"path" validate:"required_if=Type sqlite"`
	FlushInterval time.Duration `json:"flushInterval" mapstructure:"flushInterval" validate:"gt=0"`
	BatchSize     int           `json:"batchSize" mapstructure:"batchSize" validate:"gte=1"`
}

// DBConfig holds postgres connection settings for the journal
type DBConfig struct {
	Host     string `json:"host" mapstructure:"host"`
	Port     string `json:"port" mapstructure:"port"`
	Username string `json:"username" mapstructure:"username"`
	Password string `json:"password" mapstructure:"password"`
	Database string `json:"database" mapstructure:"database"`
	SSLMode  string `json:"sslMode" mapstructure:"sslMode"`
}

// InfluxConfig holds InfluxDB connection settings for translation counters
type InfluxConfig struct {
	Enabled  bool   `json:"enabled" mapstructure:"enabled"`
	Host     string `json:"host" mapstructure:"host" validate:"required_if=Enabled true"`
	Port     string `json:"port" mapstructure:"port"`
	Protocol string `json:"protocol" mapstructure:"protocol" validate:"oneof=http https"`
	Token    string `json:"token" mapstructure:"token"`
	Org      string `json:"org" mapstructure:"org"`
	Bucket   string `json:"bucket" mapstructure:"bucket" validate:"required_if=Enabled true"`
}

// GraylogConfig holds GELF output settings
type GraylogConfig struct {
	Enabled bool   `json:"enabled" mapstructure:"enabled"`
	Address string `json:"address" mapstructure:"address" validate:"required_if=Enabled true"`
}

// Settings is the whole configuration.
type Settings struct {
	LogLevel string        `json:"logLevel" mapstructure:"logLevel" validate:"oneof=debug info warn warning error"`
	LogsDir  string        `json:"logsDir" mapstructure:"logsDir"`
	DIS      DISConfig     `json:"dis" mapstructure:"dis"`
	Journal  JournalConfig `json:"journal" mapstructure:"journal"`
	DB       DBConfig      `json:"db" mapstructure:"db"`
	Influx   InfluxConfig  `json:"influx" mapstructure:"influx"`
	Graylog  GraylogConfig `json:"graylog" mapstructure:"graylog"`
}

// SetDefaults registers the default value of every key.
func SetDefaults() {
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("logsDir", "./disbridge-logs")

	viper.SetDefault("dis.dialect", "")
	viper.SetDefault("dis.siteId", 1)
	viper.SetDefault("dis.applicationId", 1)

	viper.SetDefault("journal.enabled", false)
	viper.SetDefault("journal.type", "sqlite")
	viper.SetDefault("journal.path", "./disbridge-journal.db")
	viper.SetDefault("journal.flushInterval", "2s")
	viper.SetDefault("journal.batchSize", 500)

	viper.SetDefault("db.host", "localhost")
	viper.SetDefault("db.port", "5432")
	viper.SetDefault("db.username", "postgres")
	viper.SetDefault("db.password", "postgres")
	viper.SetDefault("db.database", "disbridge")
	viper.SetDefault("db.sslMode", "disable")

	viper.SetDefault("influx.enabled", false)
	viper.SetDefault("influx.host", "localhost")
	viper.SetDefault("influx.port", "8086")
	viper.SetDefault("influx.protocol", "http")
	viper.SetDefault("influx.token", "supersecrettoken")
	viper.SetDefault("influx.org", "disbridge")
	viper.SetDefault("influx.bucket", "dis")

	viper.SetDefault("graylog.enabled", false)
	viper.SetDefault("graylog.address", "localhost:12201")
}

// Load reads configuration from JSON file and sets default values.
// configDir is the directory containing the config file. Environment
// variables prefixed DISBRIDGE_ (for example DISBRIDGE_DIS_DIALECT) override
// file values.
func Load(configDir string) error {
	SetDefaults()

	viper.SetEnvPrefix("DISBRIDGE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetConfigName(FileName)
	viper.AddConfigPath(configDir)
	viper.SetConfigType("json")

	err := viper.ReadInConfig()
	if err != nil {
		return fmt.Errorf("error reading config file: %w", err)
	}

	return nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Get unmarshals the current configuration and validates it.
func Get() (Settings, error) {
	var s Settings
	if err := viper.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("error decoding config: %w", err)
	}
	if err := validate.Struct(s); err != nil {
		return Settings{}, fmt.Errorf("invalid config: %w", err)
	}
	return s, nil
}

// GetString returns a string config value.
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value.
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool returns a bool config value.
func GetBool(key string) bool {
	return viper.GetBool(key)
}
