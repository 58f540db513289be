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

package logging

import (
	"io"
)

type multiWriter struct {
	writers []io.Writer
}

// NewMultiWriter combines the given writers into a single log output,
// so one zerolog instance can write to the console and a file at once.
func NewMultiWriter(writers ...io.Writer) io.Writer {
	return &multiWriter{
		writers: writers,
	}
}

// Write sends p to every writer. The first error is returned, but all
// writers are attempted so one failing output does not silence the rest.
func (l *multiWriter) Write(p []byte) (int, error) {
	var firstErr error
	for _, w := range l.writers {
		if _, err := w.Write(p); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return len(p), firstErr
}
