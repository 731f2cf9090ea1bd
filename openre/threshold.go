// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package openre

// SpikeAdapter adapts the threshold of a neuron that just spiked,
// given the ticks elapsed since its previous spike.
type SpikeAdapter interface {
	AdaptSpike(thr int32, diff Tick) int32
}

// QuietAdapter adapts the threshold of a live neuron at the end of its
// lifecycle step, given the ticks elapsed since its last spike.
type QuietAdapter interface {
	AdaptQuiet(thr int32, diff Tick) int32
}

// NoSpikeAdapt leaves the threshold unchanged on spike
type NoSpikeAdapt struct{}

func (NoSpikeAdapt) AdaptSpike(thr int32, diff Tick) int32 { return thr }

// NoQuietAdapt leaves the threshold unchanged during quiescence
type NoQuietAdapt struct{}

func (NoQuietAdapt) AdaptQuiet(thr int32, diff Tick) int32 { return thr }

// ThreshIncParams raise the threshold of neurons that re-fire quickly:
// a homeostatic penalty that grows the faster the neuron fires.
type ThreshIncParams struct {

	// enable threshold increase on rapid re-firing
	On bool

	// maximum increment, applied as Inc - ticks since previous spike
	Inc int32 `viewif:"On" def:"10" min:"1"`

	// re-firing within fewer than this many ticks is penalized
	Window Tick `viewif:"On" def:"10"`
}

func (ti *ThreshIncParams) Defaults() {
	ti.Inc = 10
	ti.Window = 10
}

func (ti *ThreshIncParams) Update() {
	if ti.Inc < 1 {
		ti.Inc = 1
	}
}

// AdaptSpike returns thr raised by Inc - diff when the previous spike was
// less than Window ticks ago and thr has headroom below MaxThreshold - Inc.
func (ti *ThreshIncParams) AdaptSpike(thr int32, diff Tick) int32 {
	if diff >= ti.Window || thr >= MaxThreshold-ti.Inc {
		return thr
	}
	if Tick(ti.Inc) <= diff {
		return thr
	}
	return thr + ti.Inc - int32(diff)
}

// ThreshDecParams lower the threshold of neurons that stay quiet, so
// thresholds relax back down during prolonged quiescence.
type ThreshDecParams struct {

	// enable threshold decrease during quiescence
	On bool

	// decrement per tick
	Dec int32 `viewif:"On" def:"1" min:"1"`

	// threshold never decreases at or below this value -- at least Dec
	Floor int32 `viewif:"On" def:"1"`

	// a neuron is quiet once more than this many ticks passed since its last spike
	Quiet Tick `viewif:"On" def:"100"`
}

func (td *ThreshDecParams) Defaults() {
	td.Dec = 1
	td.Floor = 1
	td.Quiet = 100
}

func (td *ThreshDecParams) Update() {
	if td.Dec < 1 {
		td.Dec = 1
	}
	if td.Floor < td.Dec {
		td.Floor = td.Dec
	}
}

// AdaptQuiet returns thr lowered by Dec when more than Quiet ticks
// passed since the last spike and thr is above Floor.
func (td *ThreshDecParams) AdaptQuiet(thr int32, diff Tick) int32 {
	if diff > td.Quiet && thr > td.Floor {
		return thr - td.Dec
	}
	return thr
}

// SpikeAdapter returns the policy selected by these params
func (ti *ThreshIncParams) SpikeAdapter() SpikeAdapter {
	if !ti.On {
		return NoSpikeAdapt{}
	}
	return ti
}

// QuietAdapter returns the policy selected by these params
func (td *ThreshDecParams) QuietAdapter() QuietAdapter {
	if !td.On {
		return NoQuietAdapt{}
	}
	return td
}
