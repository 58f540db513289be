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

package transmitter

import (
	"context"
	"unicode"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/opticbeacon/morsed/morse"
	"github.com/opticbeacon/morsed/service/report"
)

var maskAny = errors.WithStack

// Signal is the binary output line driven during a transmission.
type Signal interface {
	SetSignal(on bool) error
}

// Config of the transmitter.
type Config struct {
	Timing morse.Timing
}

// Dependencies of the transmitter.
type Dependencies struct {
	Log      zerolog.Logger
	Signal   Signal
	Clock    Clock
	Reporter report.Reporter
}

// Transmitter encodes text lines into timed pulses on the signal line.
type Transmitter interface {
	// Transmit sends the given line and blocks until the trailing
	// gap of the last character has elapsed. Cancellation is honored
	// between characters only; the signal is left low and the
	// context error returned. An empty line does nothing.
	Transmit(ctx context.Context, line string) error
}

type transmitter struct {
	Config
	Dependencies
}

// New creates a Transmitter with the given timing.
func New(conf Config, deps Dependencies) (Transmitter, error) {
	if err := conf.Timing.Validate(); err != nil {
		return nil, maskAny(err)
	}
	return &transmitter{
		Config:       conf,
		Dependencies: deps,
	}, nil
}

// Transmit sends the given line character by character.
func (t *transmitter) Transmit(ctx context.Context, line string) error {
	if line == "" {
		return nil
	}
	transmissionsTotal.Inc()
	t.Reporter.TransmissionStarted(line)
	for _, char := range line {
		if err := ctx.Err(); err != nil {
			if serr := t.Signal.SetSignal(false); serr != nil {
				t.Log.Error().Err(serr).Msg("Failed to drop signal after cancellation")
			}
			t.Log.Debug().Str("line", line).Msg("Transmission canceled")
			return maskAny(err)
		}
		if char == ' ' {
			t.Clock.Sleep(t.Timing.WordGap())
			wordGapsTotal.Inc()
			t.Reporter.WordBoundary()
			continue
		}
		code := morse.Lookup(char)
		if code.IsEmpty() {
			skippedCharsTotal.Inc()
			t.Log.Debug().Str("char", string(char)).Msg("Skipping unsupported character")
			continue
		}
		t.Reporter.LetterSent(unicode.ToUpper(char), code)
		if err := t.sendLetter(code); err != nil {
			return maskAny(err)
		}
	}
	t.Reporter.TransmissionDone()
	return nil
}

// sendLetter emits all symbols of one letter followed by the letter gap.
func (t *transmitter) sendLetter(code morse.Code) error {
	for _, s := range code {
		if err := t.sendSymbol(s); err != nil {
			return maskAny(err)
		}
	}
	t.Clock.Sleep(t.Timing.LetterGap())
	lettersTotal.Inc()
	return nil
}

// sendSymbol emits a single pulse and the element gap that closes it.
// The pulse itself is never interrupted.
func (t *transmitter) sendSymbol(s morse.Symbol) error {
	if err := t.Signal.SetSignal(true); err != nil {
		return maskAny(err)
	}
	t.Clock.Sleep(t.Timing.SymbolDuration(s))
	if err := t.Signal.SetSignal(false); err != nil {
		return maskAny(err)
	}
	t.Clock.Sleep(t.Timing.ElementGap())
	pulsesTotal.WithLabelValues(symbolLabel(s)).Inc()
	return nil
}
