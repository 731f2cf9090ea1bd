// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package openre

import (
	"fmt"

	"github.com/goki/mat32"
)

// Neurons holds all of the neuron-level state as flat parallel arrays,
// one slice per variable, indexed by neuron Address. This is the layout
// every per-tick pass works on: no pointers, only addresses.
type Neurons struct {

	// accumulated excitation level. Can be transiently negative from
	// inhibitory input before the lifecycle pass clamps it. This is the
	// only neuron variable written concurrently (atomic adds from the
	// plasticity pass).
	Level []int32

	// bit flags for binary state variables
	Flags []NeurFlags

	// tick of the last successful spike, 0 if never spiked
	SpikeTick []Tick

	// index of the layer that owns this neuron
	Layer []uint16

	// remaining energy, bounded by the layer MaxVitality
	Vitality []uint32

	// adaptive per-neuron threshold. 0 means no override: the layer
	// threshold is used.
	Threshold []int32
}

var NeuronVars = []string{"Level", "Flags", "SpikeTick", "Layer", "Vitality", "Threshold"}

var NeuronVarsMap map[string]int

func init() {
	NeuronVarsMap = make(map[string]int, len(NeuronVars))
	for i, v := range NeuronVars {
		NeuronVarsMap[v] = i
	}
}

// Len returns the number of neurons
func (ns *Neurons) Len() int {
	return len(ns.Level)
}

// Grow adds n zero-initialized neurons, returning the address of the first one
func (ns *Neurons) Grow(n int) Address {
	st := Address(len(ns.Level))
	ns.Level = append(ns.Level, make([]int32, n)...)
	ns.Flags = append(ns.Flags, make([]NeurFlags, n)...)
	ns.SpikeTick = append(ns.SpikeTick, make([]Tick, n)...)
	ns.Layer = append(ns.Layer, make([]uint16, n)...)
	ns.Vitality = append(ns.Vitality, make([]uint32, n)...)
	ns.Threshold = append(ns.Threshold, make([]int32, n)...)
	return st
}

// Validate checks that all variable slices have the same length
func (ns *Neurons) Validate() error {
	n := len(ns.Level)
	if len(ns.Flags) != n || len(ns.SpikeTick) != n || len(ns.Layer) != n || len(ns.Vitality) != n || len(ns.Threshold) != n {
		return fmt.Errorf("Neurons: mismatched buffer sizes: Level %d, Flags %d, SpikeTick %d, Layer %d, Vitality %d, Threshold %d",
			n, len(ns.Flags), len(ns.SpikeTick), len(ns.Layer), len(ns.Vitality), len(ns.Threshold))
	}
	if Address(n) >= NullAddress {
		return fmt.Errorf("Neurons: %d neurons exceeds address space", n)
	}
	return nil
}

// IsDead returns true if neuron is dead
func (ns *Neurons) IsDead(ni Address) bool {
	return ns.Flags[ni].Has(NeurDead)
}

// IsSpiked returns true if neuron spiked on the current tick
func (ns *Neurons) IsSpiked(ni Address) bool {
	return ns.Flags[ni].Has(NeurSpiked)
}

// NeuronVarIndexByName returns the index of the variable in NeuronVars, or error
func NeuronVarIndexByName(varNm string) (int, error) {
	i, ok := NeuronVarsMap[varNm]
	if !ok {
		return -1, fmt.Errorf("Neuron VarByName: variable name: %v not valid", varNm)
	}
	return i, nil
}

// VarByIndex returns variable using index (0 = first variable in NeuronVars list)
func (ns *Neurons) VarByIndex(ni Address, idx int) float32 {
	switch idx {
	case 0:
		return float32(ns.Level[ni])
	case 1:
		return float32(ns.Flags[ni])
	case 2:
		return float32(ns.SpikeTick[ni])
	case 3:
		return float32(ns.Layer[ni])
	case 4:
		return float32(ns.Vitality[ni])
	case 5:
		return float32(ns.Threshold[ni])
	}
	return mat32.NaN()
}

// VarByName returns variable by name, or error
func (ns *Neurons) VarByName(ni Address, varNm string) (float32, error) {
	i, err := NeuronVarIndexByName(varNm)
	if err != nil {
		return mat32.NaN(), err
	}
	if int(ni) >= ns.Len() {
		return mat32.NaN(), fmt.Errorf("Neuron VarByName: address %d out of range", ni)
	}
	return ns.VarByIndex(ni, i), nil
}
