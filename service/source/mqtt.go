// Copyright 2026 The morsed authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package source

import (
	"context"
	"strings"
	"time"

	mqttapi "github.com/eclipse/paho.mqtt.golang"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// MQTTConfig configures the MQTT message source.
type MQTTConfig struct {
	// BrokerAddress is the host:port of the MQTT broker.
	BrokerAddress string
	// Topic carrying message payloads.
	Topic string
	// ClientID presented to the broker.
	ClientID string
}

// mqttSource subscribes to a broker topic and submits every payload
// as a message to transmit.
type mqttSource struct {
	log  zerolog.Logger
	conf MQTTConfig
}

// NewMQTT creates a Source receiving lines from an MQTT topic.
func NewMQTT(conf MQTTConfig, log zerolog.Logger) Source {
	return &mqttSource{
		log:  log.With().Str("source", "mqtt").Logger(),
		conf: conf,
	}
}

// Name of the source.
func (s *mqttSource) Name() string {
	return "mqtt"
}

// Run connects to the broker and stays subscribed until ctx is done.
func (s *mqttSource) Run(ctx context.Context, submit SubmitFunc) error {
	// Prepare MQTT client options
	opts := mqttapi.NewClientOptions().
		AddBroker("tcp://" + s.conf.BrokerAddress).
		SetClientID(s.conf.ClientID)
	opts.SetKeepAlive(2 * time.Second)
	opts.SetPingTimeout(1 * time.Second)
	opts.SetOrderMatters(false)
	opts.SetAutoReconnect(true)
	opts.SetDefaultPublishHandler(func(c mqttapi.Client, m mqttapi.Message) {
		// Ignore messages when no subscription match
	})

	// Connect client
	client := mqttapi.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return errors.Wrapf(token.Error(), "Failed to connect to mqtt broker '%s'", s.conf.BrokerAddress)
	}
	defer client.Disconnect(250)

	onMessage := func(c mqttapi.Client, m mqttapi.Message) {
		line := strings.TrimSpace(string(m.Payload()))
		if line == "" {
			return
		}
		if err := submit(line); err != nil {
			s.log.Warn().Err(err).Str("topic", m.Topic()).Msg("Submit failed")
		}
	}
	if token := client.Subscribe(s.conf.Topic, 0, onMessage); token.Wait() && token.Error() != nil {
		return errors.Wrapf(token.Error(), "Failed to subscribe to '%s'", s.conf.Topic)
	}
	s.log.Info().Str("topic", s.conf.Topic).Msg("Listening for messages")

	<-ctx.Done()
	return nil
}
