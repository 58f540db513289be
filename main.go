// Copyright 2025 The morsed authors
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

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	terminate "github.com/pulcy/go-terminate"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"github.com/opticbeacon/morsed/environment"
	"github.com/opticbeacon/morsed/logging"
	"github.com/opticbeacon/morsed/model"
	"github.com/opticbeacon/morsed/morse"
	"github.com/opticbeacon/morsed/server"
	"github.com/opticbeacon/morsed/service"
	"github.com/opticbeacon/morsed/service/bridge"
	"github.com/opticbeacon/morsed/service/report"
	"github.com/opticbeacon/morsed/service/source"
	"github.com/opticbeacon/morsed/service/transmitter"
	"github.com/opticbeacon/morsed/ui"
)

const (
	projectName = "Morse Optical Transmitter"
)

var (
	projectVersion = "dev"
	projectBuild   = "dev"
	maskAny        = errors.WithStack
)

func main() {
	// Defaults come from the environment, flags override them
	conf, err := model.LoadConfig()
	if err != nil {
		Exitf("Failed to load configuration: %v\n", err)
	}

	pflag.StringVarP(&conf.LogLevel, "level", "l", conf.LogLevel, "Set log level")
	pflag.StringVar(&conf.LogFile, "log-file", conf.LogFile, "Log to this file in addition to stderr")
	pflag.StringVarP(&conf.Bridge, "bridge", "b", conf.Bridge, "Type of bridge to use (auto|gpio|console|buzzer), comma separated for more than one")
	pflag.DurationVarP(&conf.Unit, "unit", "u", conf.Unit, "Duration of a single morse unit (a dot)")
	pflag.IntVar(&conf.SignalPin, "signal-pin", conf.SignalPin, "GPIO pin (BCM) driving the signal led")
	pflag.IntVar(&conf.StatusPin, "status-pin", conf.StatusPin, "GPIO pin (BCM) driving the status led")
	pflag.BoolVar(&conf.ActiveLow, "active-low", conf.ActiveLow, "Drive the GPIO pins active low")
	pflag.Float64Var(&conf.ToneFrequency, "tone-frequency", conf.ToneFrequency, "Pitch of the buzzer tone in Hz")
	pflag.StringVar(&conf.Host, "host", conf.Host, "Host address the servers will listen on")
	pflag.IntVar(&conf.HTTPPort, "http-port", conf.HTTPPort, "Port the HTTP server will listen on")
	pflag.IntVar(&conf.SSHPort, "ssh-port", conf.SSHPort, "Port the SSH server will listen on")
	pflag.StringVar(&conf.MQTTBroker, "mqtt-broker", conf.MQTTBroker, "Address of the MQTT broker to receive messages from (empty to disable)")
	pflag.StringVar(&conf.MQTTTopic, "mqtt-topic", conf.MQTTTopic, "MQTT topic to subscribe to")
	pflag.IntVar(&conf.QueueSize, "queue-size", conf.QueueSize, "Maximum number of messages waiting for transmission")
	pflag.Parse()

	logger, err := buildLogger(conf)
	if err != nil {
		Exitf("Failed to initialize logger: %v\n", err)
	}

	if err := conf.Validate(); err != nil {
		Exitf("Invalid configuration: %v\n", err)
	}

	br, err := buildBridge(conf, logger)
	if err != nil {
		Exitf("Failed to initialize bridge: %v\n", err)
	}

	hub := report.NewHub()
	reporter := report.Multi(report.NewConsoleReporter(os.Stdout), hub)

	sources := []source.Source{
		source.NewConsole(os.Stdin, logger),
	}
	if conf.MQTTBroker != "" {
		sources = append(sources, source.NewMQTT(source.MQTTConfig{
			BrokerAddress: conf.MQTTBroker,
			Topic:         conf.MQTTTopic,
			ClientID:      conf.MQTTClientID,
		}, logger))
	}

	svc, err := service.NewService(service.Config{
		ProgramVersion: projectVersion,
		Timing:         morse.Timing{Unit: conf.Unit},
		QueueSize:      conf.QueueSize,
	}, service.Dependencies{
		Log:      logger,
		Bridge:   br,
		Clock:    transmitter.NewClock(),
		Reporter: reporter,
		Hub:      hub,
		Sources:  sources,
	})
	if err != nil {
		Exitf("Failed to initialize Service: %v\n", err)
	}

	httpServer, err := server.New(server.Config{
		Host:     conf.Host,
		HTTPPort: conf.HTTPPort,
		SSHPort:  conf.SSHPort,
	}, logger, ui.NewHandler(svc), svc)
	if err != nil {
		Exitf("Failed to initialize Server: %v\n", err)
	}

	// Prepare to shutdown in a controlled manor
	ctx, cancel := context.WithCancel(context.Background())
	t := terminate.NewTerminator(func(template string, args ...interface{}) {
		logger.Info().Msgf(template, args...)
	}, cancel)
	go t.ListenSignals()

	fmt.Printf("Starting %s (version %s build %s)\n", projectName, projectVersion, projectBuild)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return svc.Run(ctx) })
	g.Go(func() error { return httpServer.Run(ctx) })
	if err := g.Wait(); err != nil {
		Exitf("Service run failed: %#v", err)
	}
}

// buildLogger creates the root logger, writing to stderr and
// optionally to the configured log file.
func buildLogger(conf model.Config) (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(conf.LogLevel)
	if err != nil {
		return zerolog.Logger{}, maskAny(err)
	}
	var out io.Writer = zerolog.ConsoleWriter{Out: os.Stderr}
	if conf.LogFile != "" {
		logFile, err := os.OpenFile(conf.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return zerolog.Logger{}, maskAny(err)
		}
		out = logging.NewMultiWriter(out, logFile)
	}
	return zerolog.New(out).Level(level).With().Timestamp().Logger(), nil
}

// buildBridge creates the configured bridge.
// More than one type can be given, comma separated.
func buildBridge(conf model.Config, logger zerolog.Logger) (bridge.API, error) {
	var bridges []bridge.API
	for _, bridgeType := range strings.Split(conf.Bridge, ",") {
		if bridgeType = strings.TrimSpace(bridgeType); bridgeType == bridge.TypeAuto {
			bridgeType = environment.AutoDetectBridgeType(logger)
		}
		switch bridgeType {
		case bridge.TypeGPIO:
			b, err := bridge.NewGPIOBridge(conf.SignalPin, conf.StatusPin, conf.ActiveLow)
			if err != nil {
				return nil, maskAny(err)
			}
			bridges = append(bridges, b)
		case bridge.TypeConsole:
			bridges = append(bridges, bridge.NewConsoleBridge(logger))
		case bridge.TypeBuzzer:
			b, err := bridge.NewBuzzerBridge(logger, conf.ToneFrequency)
			if err != nil {
				return nil, maskAny(err)
			}
			bridges = append(bridges, b)
		default:
			return nil, maskAny(model.InvalidArgument("Unknown bridge type '%s' (auto|gpio|console|buzzer)", bridgeType))
		}
	}
	if len(bridges) == 1 {
		return bridges[0], nil
	}
	return bridge.NewMulti(bridges...), nil
}

// Print the given error message and exit with code 1
func Exitf(message string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, message, args...)
	os.Exit(1)
}
