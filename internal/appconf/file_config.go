package appconf

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// FileConfig mirrors the command-line flags in YAML form. Values in the file act as
// defaults and are overridden by flags given explicitly on the command line.
type FileConfig struct {
	Server ServerSection `yaml:"server"`
	Data   DataSection   `yaml:"data"`
	MQTT   MQTTSection   `yaml:"mqtt"`
}

type ServerSection struct {
	Port       int      `yaml:"port"`
	Env        string   `yaml:"env"`
	ApiKeys    []string `yaml:"api_keys"`
	RateLimit  int      `yaml:"rate_limit"`
	LogLevel   string   `yaml:"log_level"`
	AssetsHost string   `yaml:"assets_host"`
}

type DataSection struct {
	Source  string `yaml:"source"`
	DBPath  string `yaml:"db_path"`
	Store   string `yaml:"store"`
	Verbose bool   `yaml:"verbose"`
}

type MQTTSection struct {
	Enabled     bool   `yaml:"enabled"`
	Host        string `yaml:"host"`
	Port        int    `yaml:"port"`
	UseTLS      bool   `yaml:"use_tls"`
	Username    string `yaml:"username"`
	Password    string `yaml:"password"`
	TopicPrefix string `yaml:"topic_prefix"`
	QoS         int    `yaml:"qos"`
	Retain      bool   `yaml:"retain"`
}

// LoadFile reads and parses a YAML configuration file.
func LoadFile(path string) (FileConfig, error) {
	var cfg FileConfig

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks the values that cannot be caught by flag parsing later on.
func (c FileConfig) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	if c.Server.RateLimit < 0 {
		return fmt.Errorf("server.rate_limit must be non-negative")
	}
	switch c.Data.Store {
	case "", "memory", "sqlite":
	default:
		return fmt.Errorf("data.store must be memory or sqlite, got %q", c.Data.Store)
	}
	if c.MQTT.QoS < 0 || c.MQTT.QoS > 2 {
		return fmt.Errorf("mqtt.qos must be 0, 1 or 2")
	}
	if c.MQTT.Enabled && c.MQTT.Host == "" {
		return fmt.Errorf("mqtt.host is required when mqtt is enabled")
	}
	return nil
}

// FlagValues flattens the non-zero settings into flag name/value pairs. Booleans can
// only be switched on from the file.
func (c FileConfig) FlagValues() map[string]string {
	values := make(map[string]string)

	setString := func(name, value string) {
		if value != "" {
			values[name] = value
		}
	}
	setInt := func(name string, value int) {
		if value != 0 {
			values[name] = strconv.Itoa(value)
		}
	}
	setBool := func(name string, value bool) {
		if value {
			values[name] = "true"
		}
	}

	setInt("port", c.Server.Port)
	setString("env", c.Server.Env)
	setString("api-keys", strings.Join(c.Server.ApiKeys, ","))
	setInt("rate-limit", c.Server.RateLimit)
	setString("log-level", c.Server.LogLevel)
	setString("assets-host", c.Server.AssetsHost)

	setString("data", c.Data.Source)
	setString("db-path", c.Data.DBPath)
	setString("store", c.Data.Store)
	setBool("verbose", c.Data.Verbose)

	setBool("mqtt", c.MQTT.Enabled)
	setString("mqtt-host", c.MQTT.Host)
	setInt("mqtt-port", c.MQTT.Port)
	setBool("mqtt-tls", c.MQTT.UseTLS)
	setString("mqtt-username", c.MQTT.Username)
	setString("mqtt-password", c.MQTT.Password)
	setString("mqtt-topic-prefix", c.MQTT.TopicPrefix)
	setInt("mqtt-qos", c.MQTT.QoS)
	setBool("mqtt-retain", c.MQTT.Retain)

	return values
}
