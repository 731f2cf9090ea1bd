// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package openre

import "github.com/emer/emergent/v2/etime"

// openre.Time is the externally owned tick counter passed into every pass.
// It is never implicit process state.
type Time struct {

	// current tick. Increases monotonically during a run.
	Tick Tick

	// current evaluation mode, e.g., Train, Test, etc.
	// Plasticity bookkeeping only runs in Train mode.
	Mode etime.Modes
}

// NewTime returns a new Time struct in Train mode
func NewTime() *Time {
	tm := &Time{}
	tm.Mode = etime.Train
	return tm
}

// Reset resets the tick counter back to zero, for the start of a new run
func (tm *Time) Reset() {
	tm.Tick = 0
}

// TickInc increments the tick counter
func (tm *Time) TickInc() {
	tm.Tick++
}

// Learning returns true if plasticity bookkeeping is active in the current mode
func (tm *Time) Learning() bool {
	return tm.Mode == etime.Train
}
