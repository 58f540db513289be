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
	"time"
)

// Clock abstracts blocking waits, so transmissions can be tested
// without real delays.
type Clock interface {
	// Sleep blocks the caller for the given duration.
	Sleep(d time.Duration)
}

// NewClock returns the wall clock.
func NewClock() Clock {
	return wallClock{}
}

type wallClock struct{}

func (wallClock) Sleep(d time.Duration) {
	time.Sleep(d)
}
