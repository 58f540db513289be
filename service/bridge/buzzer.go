// Copyright 2026 The morsed authors
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

package bridge

import (
	"strconv"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// buzzerBridge renders the signal as an audible sidetone through the
// default audio device. There is no status led; status calls are
// accepted and ignored.
type buzzerBridge struct {
	log    zerolog.Logger
	mutex  sync.Mutex
	player *oto.Player
}

// NewBuzzerBridge opens the audio device and prepares a continuous
// tone at the given frequency in Hz. The tone stays paused until the
// signal goes high.
func NewBuzzerBridge(log zerolog.Logger, frequency float64) (API, error) {
	op := &oto.NewContextOptions{
		SampleRate:   toneSampleRate,
		ChannelCount: toneChannelCount,
		Format:       oto.FormatSignedInt16LE,
		// Keep the buffer small so a pause takes effect well
		// within a single unit.
		BufferSize: 50 * time.Millisecond,
	}
	otoCtx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, errors.Wrap(err, "NewContext failed")
	}
	<-ready
	player := otoCtx.NewPlayer(newTone(frequency))
	log.Debug().Float64("frequency", frequency).Msg("audio sidetone ready")
	return &buzzerBridge{
		log:    log.With().Str("bridge", TypeBuzzer).Logger(),
		player: player,
	}, nil
}

// SetSignal starts or pauses the tone.
func (b *buzzerBridge) SetSignal(on bool) error {
	signalWritesTotal.WithLabelValues(TypeBuzzer, strconv.FormatBool(on)).Inc()
	b.mutex.Lock()
	defer b.mutex.Unlock()
	if on {
		b.player.Play()
	} else {
		b.player.Pause()
	}
	return nil
}

// SetStatusLED does nothing, a buzzer has no status led.
func (b *buzzerBridge) SetStatusLED(on bool) error {
	return nil
}

// BlinkStatusLED does nothing, a buzzer has no status led.
func (b *buzzerBridge) BlinkStatusLED(delay time.Duration) error {
	return nil
}

// Close silences and releases the audio player.
func (b *buzzerBridge) Close() error {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	if err := b.player.Close(); err != nil {
		bridgeErrorsTotal.WithLabelValues(TypeBuzzer).Inc()
		return errors.Wrap(err, "Close failed")
	}
	return nil
}
