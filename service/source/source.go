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
	"context"
)

// SubmitFunc hands an inbound text line to the service.
type SubmitFunc func(text string) error

// Source is an inbound channel for messages to transmit.
type Source interface {
	// Name of the source, used as the message origin.
	Name() string
	// Run receives lines and submits them until ctx is canceled.
	Run(ctx context.Context, submit SubmitFunc) error
}
