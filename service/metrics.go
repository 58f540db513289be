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
	"github.com/opticbeacon/morsed/metrics"
)

const (
	subSystem = "service"
)

var (
	// Total number of accepted submissions per origin
	submitsTotal = metrics.MustRegisterCounterVec(subSystem,
		"submits_total",
		"Total number of accepted submissions per origin",
		"origin")
	// Total number of rejected submissions per reason
	submitRejectionsTotal = metrics.MustRegisterCounterVec(subSystem,
		"submit_rejections_total",
		"Total number of rejected submissions per reason",
		"reason")
	// Number of messages waiting for transmission
	queueLength = metrics.MustRegisterGauge(subSystem,
		"queue_length",
		"Number of messages waiting for transmission")
	// Total number of failed transmissions
	transmissionFailuresTotal = metrics.MustRegisterCounter(subSystem,
		"transmission_failures_total",
		"Total number of failed transmissions")
	// Duration of transmissions in seconds
	transmissionSeconds = metrics.MustRegisterHistogram(subSystem,
		"transmission_duration_seconds",
		"Duration of transmissions in seconds",
		[]float64{0.5, 1, 2.5, 5, 10, 30, 60, 120})
)
