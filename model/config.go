package model

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// configPrefix is the environment prefix, so e.g. the unit duration
// is read from MORSED_UNIT.
const configPrefix = "morsed"

// Config holds the runtime settings of the transmitter daemon.
// Values come from the environment (and an optional .env file) and
// can be overridden with command line flags.
type Config struct {
	// Log level (zerolog name) and optional log file next to stderr.
	LogLevel string `envconfig:"LOG_LEVEL" default:"debug"`
	LogFile  string `envconfig:"LOG_FILE"`

	// Bridge selects the hardware behind the signal, as a comma
	// separated list of gpio, console, buzzer or auto.
	Bridge string `envconfig:"BRIDGE" default:"auto"`

	// Unit is the duration of a single dot.
	Unit time.Duration `envconfig:"UNIT" default:"200ms"`

	// GPIO pin numbers (BCM) for the signal LED and the status LED.
	SignalPin int  `envconfig:"SIGNAL_PIN" default:"17"`
	StatusPin int  `envconfig:"STATUS_PIN" default:"23"`
	ActiveLow bool `envconfig:"ACTIVE_LOW"`

	// ToneFrequency is the sidetone pitch of the buzzer bridge in Hz.
	ToneFrequency float64 `envconfig:"TONE_FREQUENCY" default:"784"`

	// Listen addresses of the operational surfaces.
	Host     string `envconfig:"HOST" default:"0.0.0.0"`
	HTTPPort int    `envconfig:"HTTP_PORT" default:"7180"`
	SSHPort  int    `envconfig:"SSH_PORT" default:"7122"`

	// MQTT inbound message source. Disabled when the broker is empty.
	MQTTBroker   string `envconfig:"MQTT_BROKER"`
	MQTTTopic    string `envconfig:"MQTT_TOPIC" default:"morsed/transmit"`
	MQTTClientID string `envconfig:"MQTT_CLIENT_ID" default:"morsed"`

	// QueueSize bounds the number of messages waiting for transmission.
	QueueSize int `envconfig:"QUEUE_SIZE" default:"16"`
}

// LoadConfig reads the daemon configuration from the environment,
// merging a .env file first when one exists in the working directory.
func LoadConfig() (Config, error) {
	// A missing .env file is not an error.
	_ = godotenv.Load()
	var c Config
	if err := envconfig.Process(configPrefix, &c); err != nil {
		return Config{}, maskAny(err)
	}
	return c, nil
}

// Validate the given configuration, returning nil on ok,
// or an error upon validation issues.
func (c Config) Validate() error {
	if c.Unit <= 0 {
		return InvalidArgument("Unit must be positive, got %s", c.Unit)
	}
	if c.QueueSize <= 0 {
		return InvalidArgument("Queue size must be positive, got %d", c.QueueSize)
	}
	if c.SignalPin < 0 || c.StatusPin < 0 {
		return InvalidArgument("Pin numbers cannot be negative")
	}
	if c.SignalPin == c.StatusPin {
		return InvalidArgument("Signal pin and status pin must differ, both are %d", c.SignalPin)
	}
	if c.ToneFrequency <= 0 {
		return InvalidArgument("Tone frequency must be positive, got %v", c.ToneFrequency)
	}
	if c.HTTPPort <= 0 || c.HTTPPort > 65535 {
		return InvalidArgument("Invalid HTTP port %d", c.HTTPPort)
	}
	if c.SSHPort <= 0 || c.SSHPort > 65535 {
		return InvalidArgument("Invalid SSH port %d", c.SSHPort)
	}
	return nil
}
