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
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/ecc1/gpio"
	aerr "github.com/ewoutp/go-aggregate-error"
	"github.com/pkg/errors"
)

// outputLine is a single GPIO output with optional blinking.
type outputLine struct {
	sync.Mutex
	pin         gpio.OutputPin
	cancelBlink func()
}

// Set turns the line on/off, canceling a blink in progress.
func (l *outputLine) Set(on bool) error {
	l.Mutex.Lock()
	defer l.Mutex.Unlock()

	if cancel := l.cancelBlink; cancel != nil {
		l.cancelBlink = nil
		cancel()
	}
	if err := l.pin.Write(on); err != nil {
		return errors.Wrap(err, "Write failed")
	}
	return nil
}

// Blink the line with the given delay between flips.
func (l *outputLine) Blink(delay time.Duration) error {
	l.Mutex.Lock()
	defer l.Mutex.Unlock()

	if cancel := l.cancelBlink; cancel != nil {
		l.cancelBlink = nil
		cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	l.cancelBlink = cancel
	go func() {
		value := true
		for {
			l.Mutex.Lock()
			if ctx.Err() == nil {
				l.pin.Write(value)
				value = !value
			}
			l.Mutex.Unlock()
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return
			}
		}
	}()
	return nil
}

type gpioBridge struct {
	signal outputLine
	status outputLine
}

// NewGPIOBridge drives the signal LED and the status LED on the given
// GPIO pins (BCM numbering). Both pins start out low.
func NewGPIOBridge(signalPin, statusPin int, activeLow bool) (API, error) {
	initialValue := false
	signal, err := gpio.Output(signalPin, activeLow, initialValue)
	if err != nil {
		return nil, errors.Wrapf(err, "Output[signal pin %d] failed", signalPin)
	}
	status, err := gpio.Output(statusPin, activeLow, initialValue)
	if err != nil {
		return nil, errors.Wrapf(err, "Output[status pin %d] failed", statusPin)
	}
	return &gpioBridge{
		signal: outputLine{pin: signal},
		status: outputLine{pin: status},
	}, nil
}

// SetSignal turns the transmission signal on/off.
func (p *gpioBridge) SetSignal(on bool) error {
	signalWritesTotal.WithLabelValues(TypeGPIO, strconv.FormatBool(on)).Inc()
	if err := p.signal.Set(on); err != nil {
		bridgeErrorsTotal.WithLabelValues(TypeGPIO).Inc()
		return errors.Wrap(err, "Set[signal] failed")
	}
	return nil
}

// SetStatusLED turns the status led on/off.
func (p *gpioBridge) SetStatusLED(on bool) error {
	if err := p.status.Set(on); err != nil {
		bridgeErrorsTotal.WithLabelValues(TypeGPIO).Inc()
		return errors.Wrap(err, "Set[status] failed")
	}
	return nil
}

// BlinkStatusLED blinks the status led with the given delay between on/off.
func (p *gpioBridge) BlinkStatusLED(delay time.Duration) error {
	if err := p.status.Blink(delay); err != nil {
		bridgeErrorsTotal.WithLabelValues(TypeGPIO).Inc()
		return errors.Wrap(err, "Blink[status] failed")
	}
	return nil
}

// Close turns both outputs off.
func (p *gpioBridge) Close() error {
	var ae aerr.AggregateError
	ae.Add(p.signal.Set(false))
	ae.Add(p.status.Set(false))
	return ae.AsError()
}
