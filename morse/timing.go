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

package morse

import (
	"time"

	"github.com/pkg/errors"

	"github.com/opticbeacon/morsed/model"
)

// DefaultUnit is the dot duration used when nothing else is configured.
const DefaultUnit = 200 * time.Millisecond

// Timing derives every duration of a transmission from a single unit,
// the length of a dot. A dash lasts three units, symbols within a
// letter are separated by one unit of silence, letters by three and a
// space adds six more units on top of the preceding gap.
type Timing struct {
	// Unit is the duration of a single dot.
	Unit time.Duration
}

// DefaultTiming returns a Timing with the default unit.
func DefaultTiming() Timing {
	return Timing{Unit: DefaultUnit}
}

// Validate the timing, returning nil on ok.
func (t Timing) Validate() error {
	if t.Unit <= 0 {
		return errors.Wrapf(model.ValidationError, "Unit must be positive, got %s", t.Unit)
	}
	return nil
}

// SymbolDuration returns how long the signal stays high for the given symbol.
func (t Timing) SymbolDuration(s Symbol) time.Duration {
	if s == Dash {
		return 3 * t.Unit
	}
	return t.Unit
}

// ElementGap returns the silence emitted after every symbol of a letter.
func (t Timing) ElementGap() time.Duration {
	return t.Unit
}

// LetterGap returns the additional silence after a completed letter.
// Together with the element gap that closed the last symbol the total
// inter letter silence is three units.
func (t Timing) LetterGap() time.Duration {
	return 2 * t.Unit
}

// WordGap returns the silence inserted for a space character. It is a
// flat addition: after a letter the effective inter word silence is
// nine units, which threshold based receivers read the same as the
// nominal seven.
func (t Timing) WordGap() time.Duration {
	return 6 * t.Unit
}
