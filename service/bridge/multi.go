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
	"time"

	aerr "github.com/ewoutp/go-aggregate-error"
)

// NewMulti combines the given bridges into one, so the signal can
// drive e.g. a GPIO LED and a buzzer at the same time. Every bridge
// is always attempted; errors are aggregated.
func NewMulti(bridges ...API) API {
	return multiBridge(bridges)
}

type multiBridge []API

// SetSignal sets the signal on all bridges.
func (m multiBridge) SetSignal(on bool) error {
	var ae aerr.AggregateError
	for _, b := range m {
		ae.Add(b.SetSignal(on))
	}
	return ae.AsError()
}

// SetStatusLED sets the status led on all bridges.
func (m multiBridge) SetStatusLED(on bool) error {
	var ae aerr.AggregateError
	for _, b := range m {
		ae.Add(b.SetStatusLED(on))
	}
	return ae.AsError()
}

// BlinkStatusLED blinks the status led on all bridges.
func (m multiBridge) BlinkStatusLED(delay time.Duration) error {
	var ae aerr.AggregateError
	for _, b := range m {
		ae.Add(b.BlinkStatusLED(delay))
	}
	return ae.AsError()
}

// Close closes all bridges.
func (m multiBridge) Close() error {
	var ae aerr.AggregateError
	for _, b := range m {
		ae.Add(b.Close())
	}
	return ae.AsError()
}
