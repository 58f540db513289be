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

package service

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/opticbeacon/morsed/model"
	"github.com/opticbeacon/morsed/morse"
	"github.com/opticbeacon/morsed/service/bridge"
	"github.com/opticbeacon/morsed/service/report"
	"github.com/opticbeacon/morsed/service/source"
	"github.com/opticbeacon/morsed/service/transmitter"
)

var (
	maskAny = errors.WithStack
)

// Service contains the API exposed by the transmitter daemon.
type Service interface {
	// Run the daemon until the given context is canceled.
	Run(ctx context.Context) error
	// Submit queues the given text for transmission.
	Submit(ctx context.Context, text, origin string) (Message, error)
	// Status returns a snapshot of the daemon state.
	Status() Status
	// Subscribe registers the given callback for transmission events.
	// The returned function cancels the subscription.
	Subscribe(cb func(report.Event)) context.CancelFunc
}

type Config struct {
	// ProgramVersion of the daemon
	ProgramVersion string
	// Timing used for all transmissions
	Timing morse.Timing
	// QueueSize is the maximum number of messages waiting for transmission
	QueueSize int
}

type Dependencies struct {
	Log      zerolog.Logger
	Bridge   bridge.API
	Clock    transmitter.Clock
	Reporter report.Reporter
	Hub      *report.Hub
	Sources  []source.Source
}

type service struct {
	Config
	Dependencies

	transmitter transmitter.Transmitter
	queue       chan Message

	mutex     sync.Mutex
	startedAt time.Time
	current   *Message
}

// NewService creates a Service instance and returns it.
func NewService(conf Config, deps Dependencies) (Service, error) {
	if conf.QueueSize <= 0 {
		return nil, maskAny(errors.Wrapf(model.ValidationError, "QueueSize must be positive, got %d", conf.QueueSize))
	}
	log := deps.Log
	deps.Log = log.With().Str("component", "service").Logger()
	tr, err := transmitter.New(transmitter.Config{
		Timing: conf.Timing,
	}, transmitter.Dependencies{
		Log:      log.With().Str("component", "transmitter").Logger(),
		Signal:   deps.Bridge,
		Clock:    deps.Clock,
		Reporter: deps.Reporter,
	})
	if err != nil {
		return nil, maskAny(err)
	}
	return &service{
		Config:       conf,
		Dependencies: deps,
		transmitter:  tr,
		queue:        make(chan Message, conf.QueueSize),
		startedAt:    time.Now(),
	}, nil
}

// Run the daemon until the given context is canceled.
func (s *service) Run(ctx context.Context) error {
	defer s.Bridge.Close()

	// Indicate startup
	s.Bridge.BlinkStatusLED(time.Millisecond * 250)
	s.Reporter.Ready()
	s.Log.Info().
		Str("version", s.ProgramVersion).
		Dur("unit", s.Timing.Unit).
		Msg("Transmitter ready")

	g, ctx := errgroup.WithContext(ctx)
	for _, src := range s.Sources {
		src := src
		g.Go(func() error {
			if err := src.Run(ctx, s.submitFrom(src.Name())); err != nil {
				return maskAny(err)
			}
			return nil
		})
	}
	g.Go(func() error {
		return s.runTransmitLoop(ctx)
	})
	return maskAny(g.Wait())
}

// runTransmitLoop plays queued messages one at a time until the given
// context is canceled.
func (s *service) runTransmitLoop(ctx context.Context) error {
	log := s.Log
	// Solid status led while idle
	s.Bridge.SetStatusLED(true)
	for {
		select {
		case <-ctx.Done():
			s.Bridge.SetStatusLED(false)
			return nil
		case msg := <-s.queue:
			queueLength.Set(float64(len(s.queue)))
			s.setCurrent(&msg)
			// Blink at unit rate while on the air
			s.Bridge.BlinkStatusLED(s.Timing.Unit)
			log.Info().
				Str("id", msg.ID).
				Str("origin", msg.Origin).
				Int("length", len(msg.Text)).
				Msg("Transmission started")
			start := time.Now()
			err := s.transmitter.Transmit(ctx, msg.Text)
			s.setCurrent(nil)
			transmissionSeconds.Observe(time.Since(start).Seconds())
			if err != nil {
				if ctx.Err() != nil {
					log.Info().
						Str("id", msg.ID).
						Msg("Transmission aborted by shutdown")
					s.Bridge.SetStatusLED(false)
					return nil
				}
				transmissionFailuresTotal.Inc()
				log.Error().Err(err).
					Str("id", msg.ID).
					Msg("Transmission failed")
			} else {
				log.Info().
					Str("id", msg.ID).
					Dur("duration", time.Since(start)).
					Msg("Transmission complete")
			}
			s.Bridge.SetStatusLED(true)
		}
	}
}

// setCurrent records the message currently on the air.
func (s *service) setCurrent(msg *Message) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.current = msg
}

// submitFrom adapts Submit for the given source origin.
func (s *service) submitFrom(origin string) source.SubmitFunc {
	return func(text string) error {
		_, err := s.Submit(context.Background(), text, origin)
		return err
	}
}
