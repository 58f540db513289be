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
	"github.com/opticbeacon/morsed/metrics"
	"github.com/opticbeacon/morsed/morse"
)

const (
	subSystem = "transmitter"
)

var (
	// Total number of transmissions started
	transmissionsTotal = metrics.MustRegisterCounter(subSystem,
		"transmissions_total",
		"Total number of transmissions started")
	// Total number of pulses emitted per symbol
	pulsesTotal = metrics.MustRegisterCounterVec(subSystem,
		"pulses_total",
		"Total number of pulses emitted per symbol",
		"symbol")
	// Total number of letters sent
	lettersTotal = metrics.MustRegisterCounter(subSystem,
		"letters_total",
		"Total number of letters sent")
	// Total number of word gaps emitted
	wordGapsTotal = metrics.MustRegisterCounter(subSystem,
		"word_gaps_total",
		"Total number of word gaps emitted")
	// Total number of characters skipped as unsupported
	skippedCharsTotal = metrics.MustRegisterCounter(subSystem,
		"skipped_characters_total",
		"Total number of characters skipped as unsupported")
)

func symbolLabel(s morse.Symbol) string {
	if s == morse.Dash {
		return "dash"
	}
	return "dot"
}
