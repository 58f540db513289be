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

// Package morse holds the symbol alphabet and the timing model of the
// transmitter.
package morse

// Symbol is a single Morse element, a short or a long mark.
type Symbol byte

const (
	Dot  Symbol = '.'
	Dash Symbol = '-'
)

// String renders the symbol in dot/dash notation.
func (s Symbol) String() string {
	if s == Dash {
		return "-"
	}
	return "."
}

// Code is the symbol sequence of a single character.
type Code []Symbol

// IsEmpty returns true when the code has no symbols, meaning the
// character it was looked up for cannot be transmitted.
func (c Code) IsEmpty() bool {
	return len(c) == 0
}

// String renders the code in dot/dash notation.
func (c Code) String() string {
	b := make([]byte, len(c))
	for i, s := range c {
		b[i] = byte(s)
	}
	return string(b)
}
