// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package openre

import "fmt"

// TraverseParams bound the walk over any adjacency chain.
type TraverseParams struct {

	// maximum number of chain links visited per neuron per pass.
	// A longer chain indicates a corrupted or cyclic index: the walk
	// stops and an overrun is recorded for the neuron.
	MaxIter int `def:"1000000" min:"1"`
}

func (tp *TraverseParams) Defaults() {
	tp.MaxIter = 1000000
}

func (tp *TraverseParams) Update() {
	if tp.MaxIter < 1 {
		tp.MaxIter = 1
	}
}

// SynIndex is a set of singly-linked chains of synapses embedded in two
// flat arrays, one chain per neuron. Key holds the head synapse for each
// neuron and Value holds the next synapse for each synapse. Chains end
// with NullAddress.
type SynIndex struct {

	// head of the chain, per neuron
	Key []Address

	// next link of the chain, per synapse
	Value []Address
}

// Build constructs the chains for nNeurons neurons, where ends[si] is the
// neuron whose chain synapse si belongs to. Each synapse is prepended,
// so chains list synapses in reverse order of addition.
func (ix *SynIndex) Build(nNeurons int, ends []Address) {
	ix.Key = make([]Address, nNeurons)
	ix.Value = make([]Address, len(ends))
	for i := range ix.Key {
		ix.Key[i] = NullAddress
	}
	for si, ni := range ends {
		ix.Value[si] = ix.Key[ni]
		ix.Key[ni] = Address(si)
	}
}

// Head returns the first synapse of the chain of neuron ni
func (ix *SynIndex) Head(ni Address) Address {
	return ix.Key[ni]
}

// Next returns the synapse following si in its chain
func (ix *SynIndex) Next(si Address) Address {
	return ix.Value[si]
}

// ChainLen returns the number of links in the chain of neuron ni,
// visiting at most maxIter links. ok is false if the cap was hit.
func (ix *SynIndex) ChainLen(ni Address, maxIter int) (n int, ok bool) {
	si := ix.Key[ni]
	for ; !si.IsNull(); si = ix.Value[si] {
		if n >= maxIter {
			return n, false
		}
		n++
	}
	return n, true
}

// Validate checks the index against the neuron and synapse counts
func (ix *SynIndex) Validate(nNeurons, nSyns int) error {
	if len(ix.Key) != nNeurons {
		return fmt.Errorf("SynIndex: key size %d != number of neurons %d", len(ix.Key), nNeurons)
	}
	if len(ix.Value) != nSyns {
		return fmt.Errorf("SynIndex: value size %d != number of synapses %d", len(ix.Value), nSyns)
	}
	for ni, si := range ix.Key {
		if !si.IsNull() && int(si) >= nSyns {
			return fmt.Errorf("SynIndex: head of neuron %d = %d out of range", ni, si)
		}
	}
	for si, nx := range ix.Value {
		if !nx.IsNull() && int(nx) >= nSyns {
			return fmt.Errorf("SynIndex: link of synapse %d = %d out of range", si, nx)
		}
	}
	return nil
}

// Compact unlinks every synapse for which keep returns false, walking each
// chain at most maxIter links. Unlinked synapses keep their slots.
// Returns the number of synapses removed from chains.
func (ix *SynIndex) Compact(keep func(si Address) bool, maxIter int) int {
	nrm := 0
	for ni := range ix.Key {
		prev := NullAddress
		si := ix.Key[ni]
		for it := 0; !si.IsNull() && it < maxIter; it++ {
			nx := ix.Value[si]
			if keep(si) {
				prev = si
			} else {
				if prev.IsNull() {
					ix.Key[ni] = nx
				} else {
					ix.Value[prev] = nx
				}
				ix.Value[si] = NullAddress
				nrm++
			}
			si = nx
		}
	}
	return nrm
}
