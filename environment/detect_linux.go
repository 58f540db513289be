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

package environment

import (
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/sys/unix"
)

// AutoDetectBridgeType picks the default bridge type for this machine.
// ARM boards are assumed to have the LED wired to a GPIO pin,
// everything else gets the console bridge.
func AutoDetectBridgeType(log zerolog.Logger) string {
	var name unix.Utsname
	if err := unix.Uname(&name); err != nil {
		log.Debug().Err(err).Msg("uname failed, using console bridge")
		return "console"
	}
	machine := strings.TrimRight(string(name.Machine[:]), "\x00")
	log.Debug().Str("machine", machine).Msg("detecting bridge type")
	if strings.HasPrefix(machine, "arm") || strings.HasPrefix(machine, "aarch64") {
		return "gpio"
	}
	return "console"
}
