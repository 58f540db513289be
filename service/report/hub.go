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
	"context"
	"sync"

	"github.com/mattn/go-pubsub"

	"github.com/opticbeacon/morsed/morse"
)

// Hub distributes transmission events to any number of subscribers,
// such as attached SSH consoles. The Hub itself is a Reporter, so it
// can be combined with others through Multi. Delivery to subscribers
// may be asynchronous; callers must not rely on it completing before
// the publishing call returns.
type Hub struct {
	events *pubsub.PubSub

	// Subscribers are tracked by id, not by function value: pubsub
	// matches funcs by code pointer on removal, which cannot tell
	// apart closures created at the same call site.
	mutex       sync.Mutex
	subscribers map[uint64]func(Event)
	lastID      uint64
}

// NewHub creates an empty Hub.
func NewHub() *Hub {
	h := &Hub{
		events:      pubsub.New(),
		subscribers: make(map[uint64]func(Event)),
	}
	h.events.Sub(h.dispatch)
	return h
}

// dispatch hands one published event to every current subscriber.
func (h *Hub) dispatch(e Event) {
	h.mutex.Lock()
	cbs := make([]func(Event), 0, len(h.subscribers))
	for _, cb := range h.subscribers {
		cbs = append(cbs, cb)
	}
	h.mutex.Unlock()
	for _, cb := range cbs {
		cb(e)
	}
}

// Subscribe registers cb for every future event.
// The returned cancel function removes this subscription only; other
// subscribers keep receiving.
func (h *Hub) Subscribe(cb func(Event)) context.CancelFunc {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	h.lastID++
	id := h.lastID
	h.subscribers[id] = cb
	return func() {
		h.mutex.Lock()
		defer h.mutex.Unlock()
		delete(h.subscribers, id)
	}
}

// Ready publishes a KindReady event.
func (h *Hub) Ready() {
	h.events.Pub(Event{Kind: KindReady})
}

// TransmissionStarted publishes a KindTransmissionStarted event.
func (h *Hub) TransmissionStarted(line string) {
	h.events.Pub(Event{Kind: KindTransmissionStarted, Line: line})
}

// LetterSent publishes a KindLetterSent event.
func (h *Hub) LetterSent(char rune, code morse.Code) {
	h.events.Pub(Event{Kind: KindLetterSent, Char: char, Code: code})
}

// WordBoundary publishes a KindWordBoundary event.
func (h *Hub) WordBoundary() {
	h.events.Pub(Event{Kind: KindWordBoundary})
}

// TransmissionDone publishes a KindTransmissionDone event.
func (h *Hub) TransmissionDone() {
	h.events.Pub(Event{Kind: KindTransmissionDone})
}
