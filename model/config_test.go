package model

import (
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	req := require.New(t)
	c, err := LoadConfig()
	req.NoError(err)
	req.Equal("debug", c.LogLevel)
	req.Equal("auto", c.Bridge)
	req.Equal(200*time.Millisecond, c.Unit)
	req.Equal(17, c.SignalPin)
	req.Equal(23, c.StatusPin)
	req.False(c.ActiveLow)
	req.Equal(784.0, c.ToneFrequency)
	req.Equal(7180, c.HTTPPort)
	req.Equal(7122, c.SSHPort)
	req.Equal("morsed/transmit", c.MQTTTopic)
	req.Equal(16, c.QueueSize)
	req.NoError(c.Validate())
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	req := require.New(t)
	t.Setenv("MORSED_UNIT", "50ms")
	t.Setenv("MORSED_BRIDGE", "console,buzzer")
	t.Setenv("MORSED_QUEUE_SIZE", "4")
	t.Setenv("MORSED_ACTIVE_LOW", "true")
	c, err := LoadConfig()
	req.NoError(err)
	req.Equal(50*time.Millisecond, c.Unit)
	req.Equal("console,buzzer", c.Bridge)
	req.Equal(4, c.QueueSize)
	req.True(c.ActiveLow)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"defaults", func(*Config) {}, true},
		{"zero unit", func(c *Config) { c.Unit = 0 }, false},
		{"negative unit", func(c *Config) { c.Unit = -time.Second }, false},
		{"zero queue", func(c *Config) { c.QueueSize = 0 }, false},
		{"negative pin", func(c *Config) { c.SignalPin = -1 }, false},
		{"same pins", func(c *Config) { c.StatusPin = c.SignalPin }, false},
		{"zero tone", func(c *Config) { c.ToneFrequency = 0 }, false},
		{"bad http port", func(c *Config) { c.HTTPPort = 0 }, false},
		{"bad ssh port", func(c *Config) { c.SSHPort = 700000 }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := LoadConfig()
			require.NoError(t, err)
			tt.mutate(&c)
			err = c.Validate()
			if tt.ok {
				require.NoError(t, err)
			} else {
				require.Error(t, err)
				require.True(t, errors.Is(err, ValidationError))
			}
		})
	}
}
