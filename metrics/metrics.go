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

// Package metrics creates prometheus collectors for all subsystems
// under a single namespace, registered on the default registerer.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "morsed"

// MustRegisterCounter creates and registers a counter.
// Panics on registration errors.
func MustRegisterCounter(subSystem, name, help string) prometheus.Counter {
	return promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subSystem,
		Name:      name,
		Help:      help,
	})
}

// MustRegisterCounterVec creates and registers a counter vector with
// the given label names.
// Panics on registration errors.
func MustRegisterCounterVec(subSystem, name, help string, labelNames ...string) *prometheus.CounterVec {
	return promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subSystem,
		Name:      name,
		Help:      help,
	}, labelNames)
}

// MustRegisterGauge creates and registers a gauge.
// Panics on registration errors.
func MustRegisterGauge(subSystem, name, help string) prometheus.Gauge {
	return promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subSystem,
		Name:      name,
		Help:      help,
	})
}

// MustRegisterHistogram creates and registers a histogram with the
// given buckets, or prometheus defaults when buckets is nil.
// Panics on registration errors.
func MustRegisterHistogram(subSystem, name, help string, buckets []float64) prometheus.Histogram {
	return promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: subSystem,
		Name:      name,
		Help:      help,
		Buckets:   buckets,
	})
}
