// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package openre

import (
	"github.com/emer/etable/v2/minmax"
)

// LayerParams are the constants shared by all neurons of a layer.
type LayerParams struct {

	// level at or above which a neuron spikes, unless it has its own adaptive threshold
	Threshold int32 `def:"30000" min:"1"`

	// passive decay of level per tick when not spiking
	Relaxation int32 `def:"1000" min:"0"`

	// vitality consumed by each spike
	SpikeCost uint32 `def:"10"`

	// vitality ceiling, and the value vitality is reset to on death
	MaxVitality uint32 `def:"4294967295"`
}

func (lp *LayerParams) Defaults() {
	lp.Threshold = 30000
	lp.Relaxation = 1000
	lp.SpikeCost = 10
	lp.MaxVitality = MaxVitality
	lp.Update()
}

// Update must be called after any changes to parameters
func (lp *LayerParams) Update() {
	if lp.Threshold < 1 {
		lp.Threshold = 1
	}
	if lp.Relaxation < 0 {
		lp.Relaxation = 0
	}
}

// Layer is a named group of neurons occupying a contiguous address range
// and sharing one set of LayerParams and one statistics block.
type Layer struct {

	// name of the layer -- must be unique within the network
	Name string

	// index of this layer in the network -- stored per neuron
	Index int

	// layer constants
	Params LayerParams `view:"inline"`

	// neurons of this layer are inhibitory
	Inhibitory bool

	// neurons of this layer are receivers: spikes are injected externally
	Receiver bool

	// neurons of this layer are transmitters: spikes are read out externally
	Transmitter bool

	// address of the first neuron of the layer
	NeurSt Address `inactive:"+"`

	// number of neurons in the layer
	NNeurons int `inactive:"+"`

	// average and max number of outgoing synapses per neuron, computed at Build
	SendConnAvgMax minmax.AvgMax32 `inactive:"+" view:"inline"`

	// average and max number of incoming synapses per neuron, computed at Build
	RecvConnAvgMax minmax.AvgMax32 `inactive:"+" view:"inline"`
}

// NeurEd returns the address one past the last neuron of the layer
func (ly *Layer) NeurEd() Address {
	return ly.NeurSt + Address(ly.NNeurons)
}

// InitNeurons initializes the state of all neurons in the layer:
// zero level, full vitality, no override threshold, role flags from the layer.
func (ly *Layer) InitNeurons(ns *Neurons) {
	for ni := ly.NeurSt; ni < ly.NeurEd(); ni++ {
		ns.Level[ni] = 0
		ns.SpikeTick[ni] = 0
		ns.Layer[ni] = uint16(ly.Index)
		ns.Vitality[ni] = ly.Params.MaxVitality
		ns.Threshold[ni] = ly.Params.Threshold
		var nf NeurFlags
		if ly.Inhibitory {
			nf.SetFlag(NeurInhibitory)
		}
		if ly.Receiver {
			nf.SetFlag(NeurReceiver)
		}
		if ly.Transmitter {
			nf.SetFlag(NeurTransmitter)
		}
		ns.Flags[ni] = nf
	}
}

// EffThreshold returns the effective threshold of neuron in this layer:
// the neuron's own adaptive threshold if set, otherwise the layer threshold.
func (ly *Layer) EffThreshold(ns *Neurons, ni Address) int32 {
	if thr := ns.Threshold[ni]; thr != 0 {
		return thr
	}
	return ly.Params.Threshold
}

// CalcConnStats computes the SendConnAvgMax and RecvConnAvgMax degree
// statistics from the adjacency chains.
func (ly *Layer) CalcConnStats(pre, post *SynIndex, maxIter int) {
	ly.SendConnAvgMax.Init()
	ly.RecvConnAvgMax.Init()
	for ni := ly.NeurSt; ni < ly.NeurEd(); ni++ {
		ns, _ := pre.ChainLen(ni, maxIter)
		nr, _ := post.ChainLen(ni, maxIter)
		ly.SendConnAvgMax.UpdateVal(float32(ns), int32(ni-ly.NeurSt))
		ly.RecvConnAvgMax.UpdateVal(float32(nr), int32(ni-ly.NeurSt))
	}
	ly.SendConnAvgMax.CalcAvg()
	ly.RecvConnAvgMax.CalcAvg()
}
