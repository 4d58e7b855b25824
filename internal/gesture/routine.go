/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package gesture turns a pointer-down .. pointer-move* .. pointer-up sequence
// into calls on a resumable Routine owned by exactly one layer at a time.
package gesture

import (
	"errors"

	"gocomicframes/internal/vector"
)

// ErrDone is returned by Routine.Step when the routine finished on its own.
// A finished routine is neither stepped nor ended again.
var ErrDone = errors.New("gesture: routine finished")

// Routine receives the pointer positions of one drag. Step is called for every
// move, End once on release unless Step already returned an error.
type Routine interface {
	Step(p vector.Pt) error
	End() error
}

type phase int

const (
	running phase = iota
	finished
)

type loop struct {
	step   func(vector.Pt) error
	finish func() error
	phase  phase
}

// Loop builds a Routine from a step function and an optional finish function.
// finish runs at most once: on End, or right after step reported ErrDone.
// Any other step error aborts the routine without calling finish.
func Loop(step func(vector.Pt) error, finish func() error) Routine {
	return &loop{step: step, finish: finish}
}

func (l *loop) Step(p vector.Pt) error {
	if l.phase == finished {
		return ErrDone
	}
	if l.step == nil {
		return nil
	}
	err := l.step(p)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrDone):
		if ferr := l.End(); ferr != nil {
			return ferr
		}
		return ErrDone
	default:
		l.phase = finished
		return err
	}
}

func (l *loop) End() error {
	if l.phase == finished {
		return nil
	}
	l.phase = finished
	if l.finish == nil {
		return nil
	}
	return l.finish()
}

// Done returns a routine that has already completed.
func Done() Routine { return &loop{phase: finished} }
