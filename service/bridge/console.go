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

package bridge

import (
	"strconv"
	"time"

	"github.com/rs/zerolog"
)

// consoleBridge renders the signal in the log instead of on hardware,
// for development on machines without an LED attached.
type consoleBridge struct {
	log zerolog.Logger
}

// NewConsoleBridge creates a bridge that logs every state change.
func NewConsoleBridge(log zerolog.Logger) API {
	return &consoleBridge{
		log: log.With().Str("bridge", TypeConsole).Logger(),
	}
}

// SetSignal logs the signal state.
func (b *consoleBridge) SetSignal(on bool) error {
	signalWritesTotal.WithLabelValues(TypeConsole, strconv.FormatBool(on)).Inc()
	b.log.Debug().Bool("on", on).Msg("Set signal")
	return nil
}

// SetStatusLED logs the status led state.
func (b *consoleBridge) SetStatusLED(on bool) error {
	b.log.Debug().Bool("on", on).Msg("Set status led")
	return nil
}

// BlinkStatusLED logs the requested blink.
func (b *consoleBridge) BlinkStatusLED(delay time.Duration) error {
	b.log.Debug().Dur("delay", delay).Msg("Blink status led")
	return nil
}

// Close does nothing, there is no hardware to release.
func (b *consoleBridge) Close() error {
	return nil
}
