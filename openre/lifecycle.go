// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package openre

// TickNeuron runs one lifecycle step of neuron ni at given tick.
// Only the worker owning ni may call it during a pass.
func (nt *Network) TickNeuron(ni Address, tick Tick) {
	ns := &nt.Neurons
	nf := &ns.Flags[ni]
	if nf.Has(NeurDead) {
		return
	}
	nf.ClearFlag(NeurSpiked)
	if nf.Has(NeurReceiver) {
		return
	}
	ly := nt.Layers[ns.Layer[ni]]
	lp := &ly.Params
	thr0 := ly.EffThreshold(ns, ni)
	thr := thr0
	lv := ns.Level[ni]
	spiked := false
	if lv >= thr {
		if ns.Vitality[ni] <= lp.SpikeCost {
			nf.SetFlag(NeurDead)
			ns.Vitality[ni] = lp.MaxVitality
			ns.Level[ni] = 0
			return
		}
		ns.Vitality[ni] -= lp.SpikeCost
		nf.SetFlag(NeurSpiked)
		lv -= thr
		thr = nt.spikeAdapt.AdaptSpike(thr, tick-ns.SpikeTick[ni])
		ns.SpikeTick[ni] = tick
		spiked = true
	} else if lv > 0 {
		lv -= lp.Relaxation
	}
	if lv < 0 {
		lv = 0
	}
	ns.Level[ni] = lv
	thr = nt.quietAdapt.AdaptQuiet(thr, tick-ns.SpikeTick[ni])
	if thr != thr0 {
		ns.Threshold[ni] = thr
	}
	// no regeneration on the tick of a spike: vitality 5 with SpikeCost 3
	// reads 2 after the spike and 3 one tick later
	if !spiked && ns.Vitality[ni] < lp.MaxVitality {
		ns.Vitality[ni]++
	}
}

// TickNeurons runs the lifecycle step over all neurons, in parallel
// across the worker threads.
func (nt *Network) TickNeurons(ltime *Time) {
	tick := ltime.Tick
	nt.ThrRangeFun(nt.Neurons.Len(), func(i int) {
		nt.TickNeuron(Address(i), tick)
	}, "TickNeurons")
}
