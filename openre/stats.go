// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package openre

import (
	"sync/atomic"

	"github.com/goki/ki/kit"
)

// StatFields are the fields of a per-layer statistics block
type StatFields int32

//go:generate stringer -type=StatFields

var KiT_StatFields = kit.Enums.AddEnum(StatFieldsN, false, nil)

const (
	// StatSpikes counts neurons whose last spike falls in the trailing window
	StatSpikes StatFields = iota

	// StatDead counts dead neurons
	StatDead

	// StatStrengthened counts synapses that received their permanent boost
	StatStrengthened

	// StatTiredness sums MaxVitality - Vitality over neurons
	StatTiredness

	// StatLearn sums the synapse learn traces
	StatLearn

	StatFieldsN
)

// StatParams control the statistics aggregation
type StatParams struct {

	// width in ticks of the trailing spike window: a spike at tick s is
	// counted at tick t when t - Window < s <= t
	Window Tick `def:"1000" min:"1"`

	// aggregation runs every Interval ticks
	Interval Tick `def:"1000" min:"1"`
}

func (sp *StatParams) Defaults() {
	sp.Window = 1000
	sp.Interval = 1000
}

func (sp *StatParams) Update() {
	if sp.Window < 1 {
		sp.Window = 1
	}
	if sp.Interval < 1 {
		sp.Interval = 1
	}
}

// IsStatTick returns true if the aggregation should run at given tick
func (sp *StatParams) IsStatTick(tick Tick) bool {
	return tick%sp.Interval == 0
}

// InitStats zeroes all layer stat blocks and the totals
func (nt *Network) InitStats() {
	vals := nt.LayStats.Values
	for i := range vals {
		vals[i] = 0
	}
	for i := range nt.Totals {
		nt.Totals[i] = 0
	}
}

// LayerStat returns the value of stat field f for layer li
func (nt *Network) LayerStat(li int, f StatFields) int64 {
	return nt.LayStats.Values[li*int(StatFieldsN)+int(f)]
}

// addStat atomically adds v to field f of the block of layer li
func (nt *Network) addStat(li int, f StatFields, v int64) {
	atomic.AddInt64(&nt.LayStats.Values[li*int(StatFieldsN)+int(f)], v)
}

// NeuronStat accumulates the contribution of neuron ni into its layer block.
// Receivers are not counted.
func (nt *Network) NeuronStat(ni Address, tick Tick) {
	ns := &nt.Neurons
	nf := ns.Flags[ni]
	if nf.Has(NeurReceiver) {
		return
	}
	li := int(ns.Layer[ni])
	if st := ns.SpikeTick[ni]; st > 0 && st <= tick && tick-st < nt.Stat.Window {
		nt.addStat(li, StatSpikes, 1)
	}
	if nf.Has(NeurDead) {
		nt.addStat(li, StatDead, 1)
	}
	mx := nt.Layers[li].Params.MaxVitality
	if vit := ns.Vitality[ni]; vit < mx {
		nt.addStat(li, StatTiredness, int64(mx-vit))
	}
}

// SynapseStat accumulates the contribution of synapse si into the block
// of the layer of its post neuron.
func (nt *Network) SynapseStat(si Address) {
	sy := &nt.Synapses
	li := int(nt.Neurons.Layer[sy.Post[si]])
	if sy.Flags[si].Has(SynStrengthened) {
		nt.addStat(li, StatStrengthened, 1)
	}
	if lrn := sy.Learn[si]; lrn != 0 {
		nt.addStat(li, StatLearn, int64(lrn))
	}
}

// UpdateStats resets and recomputes all layer stat blocks from the
// current state, then sums them into Totals.
func (nt *Network) UpdateStats(ltime *Time) {
	tick := ltime.Tick
	nt.InitStats()
	nt.ThrRangeFun(nt.Neurons.Len(), func(i int) {
		nt.NeuronStat(Address(i), tick)
	}, "NeuronStats")
	nt.ThrRangeFun(nt.Synapses.Len(), func(i int) {
		nt.SynapseStat(Address(i))
	}, "SynapseStats")
	for li := range nt.Layers {
		for f := StatFields(0); f < StatFieldsN; f++ {
			nt.Totals[f] += nt.LayerStat(li, f)
		}
	}
}
