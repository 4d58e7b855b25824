/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package gesture

import (
	"errors"
	"fmt"
	"log/slog"

	applog "gocomicframes/internal/log"
	"gocomicframes/internal/vector"
)

// StartFunc creates the routine for a gesture accepted with payload at p.
// Returning nil means the gesture completed immediately.
type StartFunc func(p vector.Pt, payload any) Routine

// Sequencer owns at most one active routine and drives it from pointer events.
// It is meant to be embedded by layers; it is not safe for concurrent use.
type Sequencer struct {
	start  StartFunc
	log    *slog.Logger
	active Routine
	err    error
}

// NewSequencer returns a sequencer that starts routines with start.
// A nil logger falls back to the application logger.
func NewSequencer(start StartFunc, logger *slog.Logger) *Sequencer {
	if logger == nil {
		logger = applog.WithComponent("gesture")
	}
	return &Sequencer{start: start, log: logger}
}

// Active reports whether a routine is waiting for more pointer events.
func (s *Sequencer) Active() bool { return s.active != nil }

// Err returns the failure of the most recent gesture, if any.
func (s *Sequencer) Err() error { return s.err }

// PointerDown begins a new gesture. A routine left over from an unfinished
// gesture is ended first.
func (s *Sequencer) PointerDown(p vector.Pt, payload any) {
	if s.active != nil {
		s.end("restart")
	}
	s.err = nil
	var r Routine
	err := s.guard("start", func() error {
		r = s.start(p, payload)
		return nil
	})
	if err != nil || r == nil {
		return
	}
	s.active = r
}

// PointerMove forwards p to the active routine.
func (s *Sequencer) PointerMove(p vector.Pt, _ any) {
	if s.active == nil {
		return
	}
	r := s.active
	err := s.guard("step", func() error { return r.Step(p) })
	if err != nil {
		s.active = nil
	}
}

// PointerUp ends the active routine and returns the sequencer to idle.
func (s *Sequencer) PointerUp(_ vector.Pt, _ any) {
	if s.active == nil {
		return
	}
	s.end("end")
}

func (s *Sequencer) end(op string) {
	r := s.active
	s.active = nil
	_ = s.guard(op, r.End)
}

// guard runs fn, converting a panic into an error. Failures other than ErrDone
// are logged and recorded.
func (s *Sequencer) guard(op string, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("gesture %s panicked: %v", op, r)
		}
		if err != nil && !errors.Is(err, ErrDone) {
			s.err = err
			s.log.Error("gesture failed", slog.String("op", op), slog.Any("err", err))
		}
	}()
	return fn()
}
