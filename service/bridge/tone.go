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
	"math"
)

const (
	toneSampleRate   = 48000
	toneChannelCount = 2
	toneAmplitude    = 0.3
)

// tone is an endless sine wave at a fixed frequency, rendered as
// signed 16 bit little endian interleaved samples. Keying the signal
// is done by pausing the player, not by ending the stream, so Read
// never returns io.EOF.
type tone struct {
	frequency float64
	pos       int64
}

func newTone(frequency float64) *tone {
	return &tone{
		frequency: frequency,
	}
}

// Read fills buf with the next samples of the wave.
func (t *tone) Read(buf []byte) (int, error) {
	const bytesPerSample = 2 * toneChannelCount
	samples := len(buf) / bytesPerSample
	period := float64(toneSampleRate) / t.frequency
	for i := 0; i < samples; i++ {
		const max = 32767
		v := int16(math.Sin(2*math.Pi*float64(t.pos)/period) * toneAmplitude * max)
		for ch := 0; ch < toneChannelCount; ch++ {
			buf[i*bytesPerSample+2*ch] = byte(v)
			buf[i*bytesPerSample+2*ch+1] = byte(v >> 8)
		}
		t.pos++
	}
	return samples * bytesPerSample, nil
}
