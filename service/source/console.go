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

package source

import (
	"bufio"
	"context"
	"io"
	"strings"

	"github.com/rs/zerolog"
)

// consoleSource reads lines from a reader (normally stdin): every non
// empty line, trimmed, is submitted for transmission.
type consoleSource struct {
	log zerolog.Logger
	r   io.Reader
}

// NewConsole creates a Source reading lines from r.
func NewConsole(r io.Reader, log zerolog.Logger) Source {
	return &consoleSource{
		log: log.With().Str("source", "console").Logger(),
		r:   r,
	}
}

// Name of the source.
func (s *consoleSource) Name() string {
	return "console"
}

// Run reads lines until EOF or cancellation. EOF is not an error; the
// daemon keeps serving its other sources.
func (s *consoleSource) Run(ctx context.Context, submit SubmitFunc) error {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(s.r)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		if err := scanner.Err(); err != nil {
			s.log.Warn().Err(err).Msg("Console input failed")
		}
	}()
	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				s.log.Debug().Msg("Console input closed")
				return nil
			}
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			if err := submit(line); err != nil {
				s.log.Warn().Err(err).Str("line", line).Msg("Submit failed")
			}
		}
	}
}
