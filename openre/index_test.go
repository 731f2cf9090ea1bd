// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package openre

import "testing"

// ChainOf returns the synapse addresses in the chain of neuron ni
func ChainOf(ix *SynIndex, ni Address) []uint32 {
	var ch []uint32
	for si := ix.Head(ni); !si.IsNull(); si = ix.Next(si) {
		ch = append(ch, uint32(si))
	}
	return ch
}

func TestIndexBuild(t *testing.T) {
	ix := &SynIndex{}
	// synapse -> owning neuron
	ix.Build(4, []Address{0, 1, 0, 2, 0})
	CmprInts(ChainOf(ix, 0), []uint32{4, 2, 0}, "chain of 0", t)
	CmprInts(ChainOf(ix, 1), []uint32{1}, "chain of 1", t)
	CmprInts(ChainOf(ix, 2), []uint32{3}, "chain of 2", t)
	if !ix.Head(3).IsNull() {
		t.Errorf("neuron without synapses has head: %v", ix.Head(3))
	}
	if n, ok := ix.ChainLen(0, 100); n != 3 || !ok {
		t.Errorf("ChainLen: got: %v %v, trg: 3 true", n, ok)
	}
	if err := ix.Validate(4, 5); err != nil {
		t.Error(err)
	}
	if err := ix.Validate(4, 6); err == nil {
		t.Errorf("Validate did not catch wrong synapse count")
	}
	ix.Value[1] = 7
	if err := ix.Validate(4, 5); err == nil {
		t.Errorf("Validate did not catch out of range link")
	}
}

func TestIndexCompact(t *testing.T) {
	ix := &SynIndex{}
	ix.Build(2, []Address{0, 0, 0, 0, 1})
	dead := map[Address]bool{3: true, 1: true, 4: true}
	nrm := ix.Compact(func(si Address) bool { return !dead[si] }, 100)
	if nrm != 3 {
		t.Errorf("removed: got: %v, trg: 3", nrm)
	}
	CmprInts(ChainOf(ix, 0), []uint32{2, 0}, "compacted chain of 0", t)
	if !ix.Head(1).IsNull() {
		t.Errorf("compacted chain of 1 not empty")
	}
}

func TestNetCompactIndex(t *testing.T) {
	nt := MakeFanNet(t, []int32{100, 0, 300, 0}, nil)
	if n, _ := nt.PreIndex.ChainLen(0, 100); n != 4 {
		t.Errorf("chain len before compaction: %v", n)
	}
	nrm := nt.CompactIndex()
	if nrm != 4 { // two links in each direction
		t.Errorf("removed: got: %v, trg: 4", nrm)
	}
	CmprInts(ChainOf(&nt.PreIndex, 0), []uint32{2, 0}, "compacted outgoing chain", t)
	if nt.Layers[0].SendConnAvgMax.Max != 2 {
		t.Errorf("send max after compaction: %v", nt.Layers[0].SendConnAvgMax.Max)
	}

	ns := &nt.Neurons
	SpikeNeuron(ns, 0, 1)
	nt.TickSynapsesNeuron(0, false)
	CmprInts(ns.Level, []int32{0, 100, 0, 300, 0}, "levels after compaction", t)
}
