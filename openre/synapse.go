// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package openre

import (
	"fmt"

	"github.com/goki/mat32"
)

// Synapses holds the synaptic connection state as flat parallel arrays
// indexed by synapse Address.
type Synapses struct {

	// signed weight. 0 means the synapse is dead: it is skipped by every
	// traversal but its slot is never reclaimed.
	Level []int32

	// source neuron address
	Pre []Address

	// target neuron address
	Post []Address

	// short-term plasticity accumulator, added to Level when transmitting
	Learn []int32

	// bit flags for binary state variables
	Flags []SynFlags
}

var SynapseVars = []string{"Level", "Pre", "Post", "Learn", "Flags"}

var SynapseVarsMap map[string]int

func init() {
	SynapseVarsMap = make(map[string]int, len(SynapseVars))
	for i, v := range SynapseVars {
		SynapseVarsMap[v] = i
	}
}

// Len returns the number of synapses
func (sy *Synapses) Len() int {
	return len(sy.Level)
}

// Add appends a new synapse and returns its address
func (sy *Synapses) Add(pre, post Address, level int32) Address {
	si := Address(len(sy.Level))
	sy.Level = append(sy.Level, level)
	sy.Pre = append(sy.Pre, pre)
	sy.Post = append(sy.Post, post)
	sy.Learn = append(sy.Learn, 0)
	sy.Flags = append(sy.Flags, 0)
	return si
}

// Validate checks buffer sizes and that every endpoint is a valid
// neuron address, given the number of neurons.
func (sy *Synapses) Validate(nNeurons int) error {
	n := len(sy.Level)
	if len(sy.Pre) != n || len(sy.Post) != n || len(sy.Learn) != n || len(sy.Flags) != n {
		return fmt.Errorf("Synapses: mismatched buffer sizes: Level %d, Pre %d, Post %d, Learn %d, Flags %d",
			n, len(sy.Pre), len(sy.Post), len(sy.Learn), len(sy.Flags))
	}
	if Address(n) >= NullAddress {
		return fmt.Errorf("Synapses: %d synapses exceeds address space", n)
	}
	for si := range sy.Level {
		if int(sy.Pre[si]) >= nNeurons || int(sy.Post[si]) >= nNeurons {
			return fmt.Errorf("Synapses: synapse %d connects %d -> %d, outside of %d neurons", si, sy.Pre[si], sy.Post[si], nNeurons)
		}
	}
	return nil
}

// IsDead returns true if the synapse has zero weight
func (sy *Synapses) IsDead(si Address) bool {
	return sy.Level[si] == 0
}

// SynapseVarIndexByName returns the index of the variable in SynapseVars, or error
func SynapseVarIndexByName(varNm string) (int, error) {
	i, ok := SynapseVarsMap[varNm]
	if !ok {
		return 0, fmt.Errorf("Synapse VarByName: variable name: %v not valid", varNm)
	}
	return i, nil
}

// VarByIndex returns variable using index (0 = first variable in SynapseVars list)
func (sy *Synapses) VarByIndex(si Address, idx int) float32 {
	switch idx {
	case 0:
		return float32(sy.Level[si])
	case 1:
		return float32(sy.Pre[si])
	case 2:
		return float32(sy.Post[si])
	case 3:
		return float32(sy.Learn[si])
	case 4:
		return float32(sy.Flags[si])
	}
	return mat32.NaN()
}

// VarByName returns variable by name, or error
func (sy *Synapses) VarByName(si Address, varNm string) (float32, error) {
	i, err := SynapseVarIndexByName(varNm)
	if err != nil {
		return mat32.NaN(), err
	}
	if int(si) >= sy.Len() {
		return mat32.NaN(), fmt.Errorf("Synapse VarByName: address %d out of range", si)
	}
	return sy.VarByIndex(si, i), nil
}
