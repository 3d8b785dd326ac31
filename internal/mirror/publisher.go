package mirror

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"
	"launchdash.dev/internal/dashboard"
	"launchdash.dev/internal/logging"
	"launchdash.dev/internal/models"
)

var ErrNotConnected = errors.New("mqtt not connected")

// Config selects the broker figures are mirrored to.
type Config struct {
	Enabled     bool
	Host        string
	Port        int
	UseTLS      bool
	Username    string
	Password    string
	TopicPrefix string
	QoS         byte
	Retain      bool
}

// DefaultConfig leaves mirroring off.
func DefaultConfig() Config {
	return Config{
		Host:        "localhost",
		Port:        1883,
		TopicPrefix: "launchdash",
		Retain:      true,
	}
}

func (c Config) brokerURL() string {
	scheme := "tcp"
	if c.UseTLS {
		scheme = "tls"
	}
	return fmt.Sprintf("%s://%s:%d", scheme, c.Host, c.Port)
}

// FigureMessage is the JSON payload published for each computed figure.
type FigureMessage struct {
	Output      string        `json:"output"`
	Figure      models.Figure `json:"figure"`
	PublishedAt int64         `json:"publishedAt"`
}

// Publisher mirrors dashboard figures to an MQTT broker. A nil Publisher does nothing.
type Publisher struct {
	client mqtt.Client
	config Config
	logger *slog.Logger
}

// NewPublisher connects to the configured broker. It returns nil when mirroring is
// disabled. A failed initial connection is logged and retried in the background.
func NewPublisher(config Config, logger *slog.Logger) *Publisher {
	if !config.Enabled {
		return nil
	}
	if logger == nil {
		logger = slog.Default()
	}

	opts := mqtt.NewClientOptions()
	opts.AddBroker(config.brokerURL())
	opts.SetClientID("launchdash_" + uuid.NewString())
	if config.Username != "" {
		opts.SetUsername(config.Username)
	}
	if config.Password != "" {
		opts.SetPassword(config.Password)
	}

	opts.SetAutoReconnect(true)
	opts.SetConnectRetry(true)
	opts.SetConnectRetryInterval(10 * time.Second)
	opts.SetMaxReconnectInterval(60 * time.Second)
	opts.SetKeepAlive(60 * time.Second)
	opts.SetPingTimeout(10 * time.Second)
	opts.SetConnectTimeout(5 * time.Second)

	opts.SetOnConnectHandler(func(mqtt.Client) {
		logger.Info("mqtt connected", slog.String("broker", config.brokerURL()), slog.String("component", "mirror"))
	})
	opts.SetConnectionLostHandler(func(_ mqtt.Client, err error) {
		logging.LogError(logger, "mqtt connection lost", err, slog.String("component", "mirror"))
	})

	client := mqtt.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(5 * time.Second) {
		logger.Warn("mqtt connection timeout, retrying in background",
			slog.String("broker", config.brokerURL()),
			slog.String("component", "mirror"))
	} else if err := token.Error(); err != nil {
		logging.LogError(logger, "mqtt initial connection failed", err,
			slog.String("broker", config.brokerURL()),
			slog.String("component", "mirror"))
	}

	return newPublisher(client, config, logger)
}

func newPublisher(client mqtt.Client, config Config, logger *slog.Logger) *Publisher {
	return &Publisher{client: client, config: config, logger: logger}
}

// Topic returns the topic a figure for output is published to.
func (p *Publisher) Topic(output string) string {
	return fmt.Sprintf("%s/figures/%s", p.config.TopicPrefix, output)
}

// Publish sends one figure. Delivery is confirmed asynchronously and failures are logged.
func (p *Publisher) Publish(update dashboard.Update) error {
	if p == nil {
		return nil
	}
	if !p.client.IsConnected() {
		return ErrNotConnected
	}

	data, err := json.Marshal(FigureMessage{
		Output:      update.Output,
		Figure:      update.Figure,
		PublishedAt: time.Now().UnixMilli(),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal figure: %w", err)
	}

	topic := p.Topic(update.Output)
	token := p.client.Publish(topic, p.config.QoS, p.config.Retain, data)

	go func() {
		if token.Wait() && token.Error() != nil {
			logging.LogError(p.logger, "mqtt publish failed", token.Error(),
				slog.String("topic", topic),
				slog.String("component", "mirror"))
			return
		}
		p.logger.Debug("figure mirrored", slog.String("topic", topic), slog.String("component", "mirror"))
	}()

	return nil
}

// Observe is a dashboard.Observer.
func (p *Publisher) Observe(_ context.Context, update dashboard.Update) {
	if p == nil {
		return
	}
	if err := p.Publish(update); err != nil {
		p.logger.Debug("figure not mirrored",
			slog.String("output", update.Output),
			slog.String("error", err.Error()),
			slog.String("component", "mirror"))
	}
}

func (p *Publisher) IsConnected() bool {
	return p != nil && p.client != nil && p.client.IsConnected()
}

// Close disconnects from the broker, allowing in-flight work 250ms to finish.
func (p *Publisher) Close() {
	if p == nil || p.client == nil {
		return
	}
	if p.client.IsConnected() {
		p.client.Disconnect(250)
		p.logger.Info("mqtt disconnected", slog.String("component", "mirror"))
	}
}
