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
	"io"
	"sync"

	"github.com/opticbeacon/morsed/morse"
)

// ConsoleReporter writes transmission progress to the given writer in
// the classic serial monitor layout: a banner, one letter:code token
// per character and a slash between words.
type ConsoleReporter struct {
	mutex sync.Mutex
	out   io.Writer
}

// NewConsoleReporter creates a ConsoleReporter writing to out.
func NewConsoleReporter(out io.Writer) *ConsoleReporter {
	return &ConsoleReporter{
		out: out,
	}
}

// Ready prints the startup banner.
func (r *ConsoleReporter) Ready() {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	fmt.Fprintln(r.out, "--- Morse Code Transmitter Ready ---")
	fmt.Fprintln(r.out, "Type your message and press enter.")
}

// TransmissionStarted prints the message about to go on the air.
func (r *ConsoleReporter) TransmissionStarted(line string) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	fmt.Fprintf(r.out, "\nTransmitting: %s\n", line)
	fmt.Fprint(r.out, "Code: ")
}

// LetterSent prints the character and its code.
func (r *ConsoleReporter) LetterSent(char rune, code morse.Code) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	fmt.Fprintf(r.out, "%c:%s ", char, code)
}

// WordBoundary prints the word separator.
func (r *ConsoleReporter) WordBoundary() {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	fmt.Fprint(r.out, "/ ")
}

// TransmissionDone prints the completion banner.
func (r *ConsoleReporter) TransmissionDone() {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	fmt.Fprintln(r.out, "\n--- Transmission complete. Type a new message. ---")
}
