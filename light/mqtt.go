package light

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/caarlos0/env/v11"
	pahomqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/ayoisaiah/breathe/colortemp"
)

// Credentials are read from the environment so they never end up in the
// config file.
type Credentials struct {
	User     string `env:"BREATHE_MQTT_USER"`
	Password string `env:"BREATHE_MQTT_PASSWORD"`
	ClientID string `env:"BREATHE_MQTT_CLIENT_ID"`
}

// CredentialsFromEnv parses the BREATHE_MQTT_* variables.
func CredentialsFromEnv() (Credentials, error) {
	var c Credentials

	if err := env.Parse(&c); err != nil {
		return Credentials{}, errCredentials.Wrap(err)
	}

	return c, nil
}

// MQTTConfig describes the lamp's broker and topic.
type MQTTConfig struct {
	Credentials
	Broker      string
	Topic       string
	MinInterval time.Duration
}

// Publisher sends a payload to a topic.
type Publisher interface {
	Publish(topic string, qos byte, retained bool, payload []byte) error
}

// Client is a connection to an MQTT broker.
type Client interface {
	Publisher
	Connect(ctx context.Context) error
	Disconnect()
	IsConnected() bool
}

type mqttClient struct {
	client pahomqtt.Client
	logger *slog.Logger
	broker string
}

// NewClient creates a client for cfg.Broker. It does not connect.
func NewClient(cfg *MQTTConfig, logger *slog.Logger) Client {
	opts := pahomqtt.NewClientOptions()
	opts.AddBroker(cfg.Broker)

	if cfg.ClientID != "" {
		opts.SetClientID(cfg.ClientID)
	} else {
		opts.SetClientID("breathe-" + time.Now().Format("20060102150405"))
	}

	if cfg.User != "" {
		opts.SetUsername(cfg.User)
	}

	if cfg.Password != "" {
		opts.SetPassword(cfg.Password)
	}

	opts.SetCleanSession(true)
	opts.SetAutoReconnect(true)
	opts.SetConnectRetryInterval(5 * time.Second)
	opts.SetMaxReconnectInterval(30 * time.Second)

	opts.OnConnect = func(_ pahomqtt.Client) {
		logger.Info("connected to MQTT broker", slog.String("broker", cfg.Broker))
	}

	opts.OnConnectionLost = func(_ pahomqtt.Client, err error) {
		logger.Warn("MQTT connection lost", slog.Any("error", err))
	}

	return &mqttClient{
		client: pahomqtt.NewClient(opts),
		logger: logger,
		broker: cfg.Broker,
	}
}

func (m *mqttClient) Connect(ctx context.Context) error {
	token := m.client.Connect()

	select {
	case <-token.Done():
		if token.Error() != nil {
			return errConnect.Fmt(m.broker).Wrap(token.Error())
		}

		return nil
	case <-ctx.Done():
		return errConnect.Fmt(m.broker).Wrap(ctx.Err())
	}
}

func (m *mqttClient) Disconnect() {
	m.client.Disconnect(250)
}

// Publish queues the message and returns without waiting for the broker.
// Delivery failures are logged.
func (m *mqttClient) Publish(
	topic string,
	qos byte,
	retained bool,
	payload []byte,
) error {
	if !m.client.IsConnectionOpen() {
		return errNotConnected
	}

	token := m.client.Publish(topic, qos, retained, payload)

	go func() {
		<-token.Done()

		if err := token.Error(); err != nil {
			m.logger.Warn(
				"MQTT publish failed",
				slog.String("topic", topic),
				slog.Any("error", err),
			)
		}
	}()

	return nil
}

func (m *mqttClient) IsConnected() bool {
	return m.client.IsConnected()
}

// Color is the payload published for every update. It follows the JSON
// schema of common home automation lights.
type Color struct {
	State  string   `json:"state"`
	Color  RGBField `json:"color"`
	Hex    string   `json:"hex"`
	Kelvin int      `json:"color_temp_kelvin"`
}

type RGBField struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// NewColor builds the payload for c. Black switches the lamp off.
func NewColor(c colortemp.RGB) Color {
	state := "ON"
	if c == colortemp.Black {
		state = "OFF"
	}

	return Color{
		State:  state,
		Color:  RGBField{R: c.R, G: c.G, B: c.B},
		Hex:    c.Hex(),
		Kelvin: colortemp.RGBToKelvin(c),
	}
}

// MQTT publishes the light color to a lamp. Updates closer together than
// the minimum interval are dropped, except for black, which always goes
// out so a stopped session switches the lamp off.
type MQTT struct {
	pub         Publisher
	limiter     *RateLimiter
	logger      *slog.Logger
	topic       string
	minInterval time.Duration
	last        colortemp.RGB
	mu          sync.Mutex
	sent        bool
}

// NewMQTT returns a sink publishing to topic through pub.
func NewMQTT(
	pub Publisher,
	topic string,
	minInterval time.Duration,
	limiter *RateLimiter,
	logger *slog.Logger,
) *MQTT {
	if limiter == nil {
		limiter = NewRateLimiter(nil)
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &MQTT{
		pub:         pub,
		limiter:     limiter,
		logger:      logger,
		topic:       topic,
		minInterval: minInterval,
	}
}

func (m *MQTT) SetColor(c colortemp.RGB) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.sent && c == m.last {
		return
	}

	since, seen := m.limiter.SinceLast(m.topic)

	if c == colortemp.Black {
		m.limiter.Record(m.topic)
	} else if !m.limiter.Allow(m.topic, m.minInterval) {
		return
	}

	payload, err := json.Marshal(NewColor(c))
	if err != nil {
		return
	}

	if err := m.pub.Publish(m.topic, 0, true, payload); err != nil {
		m.logger.Debug("light update dropped", slog.Any("error", err))
		return
	}

	m.last = c
	m.sent = true

	attrs := []any{slog.String("topic", m.topic), slog.String("color", c.Hex())}
	if seen {
		attrs = append(attrs, slog.Duration("since_last", since))
	}

	m.logger.Debug("light published", attrs...)
}
