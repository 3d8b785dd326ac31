package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/pflag"
	"launchdash.dev/internal/app"
	"launchdash.dev/internal/appconf"
	"launchdash.dev/internal/launches"
	"launchdash.dev/internal/mirror"
)

// options holds every command-line setting. A --config file fills in whatever the
// command line leaves unset.
type options struct {
	port       int
	env        string
	apiKeys    string
	rateLimit  int
	logLevel   string
	assetsHost string
	configFile string

	dataSource string
	dbPath     string
	store      string
	verbose    bool

	mqttEnabled     bool
	mqttHost        string
	mqttPort        int
	mqttTLS         bool
	mqttUsername    string
	mqttPassword    string
	mqttTopicPrefix string
	mqttQoS         int
	mqttRetain      bool
}

func newFlagSet(opts *options) *pflag.FlagSet {
	mqttDefaults := mirror.DefaultConfig()

	fs := pflag.NewFlagSet("launchdash", pflag.ContinueOnError)
	fs.SortFlags = false

	fs.IntVarP(&opts.port, "port", "p", 8050, "HTTP server port")
	fs.StringVar(&opts.env, "env", "development", "Environment (development|test|production)")
	fs.StringVar(&opts.apiKeys, "api-keys", "", "Comma separated API keys (empty disables authentication)")
	fs.IntVar(&opts.rateLimit, "rate-limit", 100, "Requests per second per client (0 disables limiting)")
	fs.StringVar(&opts.logLevel, "log-level", "info", "Log level (debug|info|warn|error)")
	fs.StringVar(&opts.assetsHost, "assets-host", "", "Base URL for the ECharts script (default: go-echarts asset CDN)")
	fs.StringVarP(&opts.configFile, "config", "c", "", "YAML configuration file")

	fs.StringVarP(&opts.dataSource, "data", "d", launches.DefaultSource, "Launch records CSV file path or http(s) URL")
	fs.StringVar(&opts.dbPath, "db-path", ":memory:", "SQLite database path for the launch mirror")
	fs.StringVar(&opts.store, "store", app.StoreMemory, "Query backend for the charts (memory|sqlite)")
	fs.BoolVarP(&opts.verbose, "verbose", "v", false, "Verbose data loading logs")

	fs.BoolVar(&opts.mqttEnabled, "mqtt", mqttDefaults.Enabled, "Publish computed figures to an MQTT broker")
	fs.StringVar(&opts.mqttHost, "mqtt-host", mqttDefaults.Host, "MQTT broker host")
	fs.IntVar(&opts.mqttPort, "mqtt-port", mqttDefaults.Port, "MQTT broker port")
	fs.BoolVar(&opts.mqttTLS, "mqtt-tls", mqttDefaults.UseTLS, "Connect to the broker over TLS")
	fs.StringVar(&opts.mqttUsername, "mqtt-username", "", "MQTT username")
	fs.StringVar(&opts.mqttPassword, "mqtt-password", "", "MQTT password")
	fs.StringVar(&opts.mqttTopicPrefix, "mqtt-topic-prefix", mqttDefaults.TopicPrefix, "MQTT topic prefix")
	fs.IntVar(&opts.mqttQoS, "mqtt-qos", int(mqttDefaults.QoS), "MQTT QoS level (0-2)")
	fs.BoolVar(&opts.mqttRetain, "mqtt-retain", mqttDefaults.Retain, "Publish figures as retained messages")

	return fs
}

// parseOptions parses args and then layers the --config file under them.
func parseOptions(args []string) (options, error) {
	var opts options
	fs := newFlagSet(&opts)

	if err := fs.Parse(args); err != nil {
		return opts, err
	}

	if opts.configFile != "" {
		fileConfig, err := appconf.LoadFile(opts.configFile)
		if err != nil {
			return opts, err
		}
		if err := applyFileValues(fs, fileConfig.FlagValues()); err != nil {
			return opts, err
		}
	}

	if err := opts.validate(); err != nil {
		return opts, err
	}
	return opts, nil
}

// applyFileValues sets each flag not given on the command line.
func applyFileValues(fs *pflag.FlagSet, values map[string]string) error {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if fs.Changed(name) {
			continue
		}
		if err := fs.Set(name, values[name]); err != nil {
			return fmt.Errorf("config value for %s: %w", name, err)
		}
	}
	return nil
}

func (opts options) validate() error {
	if opts.port < 0 || opts.port > 65535 {
		return fmt.Errorf("port out of range: %d", opts.port)
	}
	if opts.rateLimit < 0 {
		return fmt.Errorf("rate-limit must be non-negative")
	}
	if opts.mqttQoS < 0 || opts.mqttQoS > 2 {
		return fmt.Errorf("mqtt-qos must be 0, 1 or 2")
	}
	switch opts.store {
	case app.StoreMemory, app.StoreSQLite:
	default:
		return fmt.Errorf("store must be %s or %s, got %q", app.StoreMemory, app.StoreSQLite, opts.store)
	}
	return nil
}

func (opts options) appConfig() appconf.Config {
	return appconf.Config{
		Port:       opts.port,
		Env:        appconf.EnvFlagToEnvironment(opts.env),
		ApiKeys:    splitAPIKeys(opts.apiKeys),
		RateLimit:  opts.rateLimit,
		LogLevel:   opts.logLevel,
		AssetsHost: opts.assetsHost,
	}
}

func (opts options) launchConfig() launches.Config {
	return launches.Config{
		Source:   opts.dataSource,
		DataPath: opts.dbPath,
		Env:      appconf.EnvFlagToEnvironment(opts.env),
		Verbose:  opts.verbose,
	}
}

func (opts options) mirrorConfig() mirror.Config {
	return mirror.Config{
		Enabled:     opts.mqttEnabled,
		Host:        opts.mqttHost,
		Port:        opts.mqttPort,
		UseTLS:      opts.mqttTLS,
		Username:    opts.mqttUsername,
		Password:    opts.mqttPassword,
		TopicPrefix: opts.mqttTopicPrefix,
		QoS:         byte(opts.mqttQoS),
		Retain:      opts.mqttRetain,
	}
}

func splitAPIKeys(raw string) []string {
	var keys []string
	for _, key := range strings.Split(raw, ",") {
		if key = strings.TrimSpace(key); key != "" {
			keys = append(keys, key)
		}
	}
	return keys
}
