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

package service

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/xid"

	"github.com/opticbeacon/morsed/service/report"
)

// Message is a single line of text queued for transmission.
type Message struct {
	ID          string    `json:"id"`
	Text        string    `json:"text"`
	Origin      string    `json:"origin"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// Status is a snapshot of the daemon state.
type Status struct {
	// State is StateIdle or StateTransmitting
	State string `json:"state"`
	// Current is the message on the air, if any
	Current *Message `json:"current,omitempty"`
	// QueueLength is the number of messages waiting for transmission
	QueueLength int `json:"queue_length"`
	// Unit is the configured dot duration
	Unit string `json:"unit"`
	// Version of the daemon
	Version string `json:"version"`
	// Uptime of the daemon in seconds
	Uptime int64 `json:"uptime"`
}

const (
	StateIdle         = "idle"
	StateTransmitting = "transmitting"
)

var (
	// ErrEmptyText is returned by Submit when the text is empty after trimming.
	ErrEmptyText = errors.New("text is empty")
	// ErrQueueFull is returned by Submit when the transmission queue is full.
	ErrQueueFull = errors.New("transmission queue is full")
)

// Submit queues the given text for transmission.
// Leading and trailing whitespace is trimmed first.
// Submit never blocks; when the queue is full ErrQueueFull is returned.
func (s *service) Submit(ctx context.Context, text, origin string) (Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		submitRejectionsTotal.WithLabelValues("empty").Inc()
		return Message{}, maskAny(ErrEmptyText)
	}
	msg := Message{
		ID:          xid.New().String(),
		Text:        text,
		Origin:      origin,
		SubmittedAt: time.Now(),
	}
	select {
	case s.queue <- msg:
		submitsTotal.WithLabelValues(origin).Inc()
		queueLength.Set(float64(len(s.queue)))
		s.Log.Debug().
			Str("id", msg.ID).
			Str("origin", origin).
			Msg("Message queued")
		return msg, nil
	default:
		submitRejectionsTotal.WithLabelValues("queue_full").Inc()
		return Message{}, maskAny(ErrQueueFull)
	}
}

// Status returns a snapshot of the daemon state.
func (s *service) Status() Status {
	s.mutex.Lock()
	current := s.current
	s.mutex.Unlock()

	result := Status{
		State:       StateIdle,
		QueueLength: len(s.queue),
		Unit:        s.Timing.Unit.String(),
		Version:     s.ProgramVersion,
		Uptime:      int64(time.Since(s.startedAt).Seconds()),
	}
	if current != nil {
		msg := *current
		result.Current = &msg
		result.State = StateTransmitting
	}
	return result
}

// Subscribe registers the given callback for transmission events.
func (s *service) Subscribe(cb func(report.Event)) context.CancelFunc {
	return s.Hub.Subscribe(cb)
}
