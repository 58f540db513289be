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

package bridge

import (
	"github.com/opticbeacon/morsed/metrics"
)

const (
	subSystem = "bridge"
)

var (
	// Total number of signal line writes per bridge type and state
	signalWritesTotal = metrics.MustRegisterCounterVec(subSystem,
		"signal_writes_total",
		"Total number of signal line writes per bridge type and state",
		"type", "on")
	// Total number of bridge errors per bridge type
	bridgeErrorsTotal = metrics.MustRegisterCounterVec(subSystem,
		"errors_total",
		"Total number of bridge errors per bridge type",
		"type")
)
