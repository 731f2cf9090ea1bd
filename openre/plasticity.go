// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package openre

import "sync/atomic"

// LearnParams control the timing-dependent synapse plasticity.
type LearnParams struct {

	// increment of the learn trace on each coincident spike pair
	LearnRate int32 `def:"10"`

	// learn trace level that triggers the one-time permanent boost,
	// which is also the amount added to the synapse level
	LearnThreshold int32 `def:"1000" min:"0"`

	// spike pairs closer than this many ticks are coincident. 0 disables learning.
	SpikeLearnThreshold Tick `def:"0"`
}

func (lp *LearnParams) Defaults() {
	lp.LearnRate = 10
	lp.LearnThreshold = 1000
	lp.SpikeLearnThreshold = 0
}

func (lp *LearnParams) Update() {
	if lp.LearnThreshold < 0 {
		lp.LearnThreshold = 0
	}
}

// LearnSyn applies the plasticity rule to synapse si, where diff is the
// interval between the spike ticks of the pass owner and the other end.
func (lp *LearnParams) LearnSyn(sy *Synapses, si Address, diff Tick) {
	lrn := sy.Learn[si]
	if diff < lp.SpikeLearnThreshold {
		lrn += lp.LearnRate
		if lrn > lp.LearnThreshold {
			sf := &sy.Flags[si]
			if !sf.Has(SynStrengthened) {
				sf.SetFlag(SynStrengthened)
				sy.Level[si] += lp.LearnThreshold
				lrn = 0
			} else {
				lrn = lp.LearnThreshold
			}
		}
	}
	if lrn != 0 {
		lrn--
	}
	sy.Learn[si] = lrn
}

// TickSynapsesNeuron propagates the spike of neuron ni along its outgoing
// synapses and updates the plasticity of its synapses. Does nothing unless
// ni spiked this tick.
//
// A synapse whose pre and post neurons both spiked is owned by the
// outgoing pass of the pre neuron: the incoming pass of the post neuron
// leaves it alone. The only cross-worker writes are therefore the atomic
// adds to the target levels.
func (nt *Network) TickSynapsesNeuron(ni Address, learn bool) {
	ns := &nt.Neurons
	nf := ns.Flags[ni]
	if !nf.IsLive() {
		return
	}
	sy := &nt.Synapses
	st := ns.SpikeTick[ni]
	inhib := nf.Has(NeurInhibitory)
	maxIter := nt.Traverse.MaxIter
	overrun := false

	it := 0
	for si := nt.PreIndex.Head(ni); !si.IsNull(); si = nt.PreIndex.Next(si) {
		if it >= maxIter {
			overrun = true
			break
		}
		it++
		if sy.Level[si] == 0 {
			continue
		}
		post := sy.Post[si]
		if ns.IsDead(post) {
			sy.Level[si] = 0
			continue
		}
		w := sy.Level[si] + sy.Learn[si]
		if inhib {
			w = -w
		}
		atomic.AddInt32(&ns.Level[post], w)
		if learn {
			nt.Learn.LearnSyn(sy, si, st-ns.SpikeTick[post])
		}
	}

	it = 0
	for si := nt.PostIndex.Head(ni); !si.IsNull(); si = nt.PostIndex.Next(si) {
		if it >= maxIter {
			overrun = true
			break
		}
		it++
		pre := sy.Pre[si]
		pf := ns.Flags[pre]
		if pf.IsLive() {
			continue
		}
		if sy.Level[si] == 0 {
			continue
		}
		if pf.Has(NeurDead) {
			sy.Level[si] = 0
			continue
		}
		if learn {
			nt.Learn.LearnSyn(sy, si, st-ns.SpikeTick[pre])
		}
	}

	if overrun {
		nt.Overruns[ni]++
		atomic.AddUint64(&nt.NOverruns, 1)
	}
}

// TickSynapses runs the plasticity step over all neurons, in parallel
// across the worker threads. Learning only happens in Train mode;
// level propagation and pruning happen in every mode.
func (nt *Network) TickSynapses(ltime *Time) {
	learn := ltime.Learning()
	nt.ThrRangeFun(nt.Neurons.Len(), func(i int) {
		nt.TickSynapsesNeuron(Address(i), learn)
	}, "TickSynapses")
}
