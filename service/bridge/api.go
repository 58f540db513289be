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
)

// Bridge type names, as used in configuration and autodetection.
const (
	TypeAuto    = "auto"
	TypeGPIO    = "gpio"
	TypeConsole = "console"
	TypeBuzzer  = "buzzer"
)

// API of the bridge, the hardware that renders the optical signal and
// the status LED of the transmitter.
type API interface {
	// SetSignal turns the transmission signal on or off.
	// Pulse timing is the caller's job; implementations switch
	// immediately and must not block.
	SetSignal(on bool) error
	// SetStatusLED turns the status led on/off, canceling a blink
	// in progress.
	SetStatusLED(on bool) error
	// BlinkStatusLED blinks the status led with the given delay
	// between on/off.
	BlinkStatusLED(delay time.Duration) error
	// Close releases the hardware, leaving all outputs off.
	Close() error
}
