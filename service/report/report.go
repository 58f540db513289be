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

package report

import (
	"fmt"

	"github.com/opticbeacon/morsed/morse"
)

// EventKind tells what happened during a transmission.
type EventKind int

const (
	// KindReady is published once the transmitter accepts input.
	KindReady EventKind = iota
	// KindTransmissionStarted is published before the first pulse of a message.
	KindTransmissionStarted
	// KindLetterSent is published before the symbols of one character go out.
	KindLetterSent
	// KindWordBoundary is published when a space produced a word gap.
	KindWordBoundary
	// KindTransmissionDone is published after the last pulse of a message.
	KindTransmissionDone
)

// Event describes one observable step of a transmission.
type Event struct {
	Kind EventKind
	// Line is the full message, set for KindTransmissionStarted.
	Line string
	// Char and Code are set for KindLetterSent.
	Char rune
	Code morse.Code
}

// String renders the event as a single feed line.
func (e Event) String() string {
	switch e.Kind {
	case KindReady:
		return "ready"
	case KindTransmissionStarted:
		return fmt.Sprintf("transmitting %q", e.Line)
	case KindLetterSent:
		return fmt.Sprintf("%c  %s", e.Char, e.Code)
	case KindWordBoundary:
		return "/"
	case KindTransmissionDone:
		return "transmission complete"
	}
	return ""
}

// Reporter receives progress callbacks from the encoder while a
// message is on the air. Implementations must not block; the encoder
// calls them between timed pulses.
type Reporter interface {
	Ready()
	TransmissionStarted(line string)
	LetterSent(char rune, code morse.Code)
	WordBoundary()
	TransmissionDone()
}

// Multi fans every callback out to the given reporters, in order.
func Multi(reporters ...Reporter) Reporter {
	return multiReporter(reporters)
}

type multiReporter []Reporter

func (m multiReporter) Ready() {
	for _, r := range m {
		r.Ready()
	}
}

func (m multiReporter) TransmissionStarted(line string) {
	for _, r := range m {
		r.TransmissionStarted(line)
	}
}

func (m multiReporter) LetterSent(char rune, code morse.Code) {
	for _, r := range m {
		r.LetterSent(char, code)
	}
}

func (m multiReporter) WordBoundary() {
	for _, r := range m {
		r.WordBoundary()
	}
}

func (m multiReporter) TransmissionDone() {
	for _, r := range m {
		r.TransmissionDone()
	}
}
