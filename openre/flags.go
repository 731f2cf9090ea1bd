// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package openre

import (
	"github.com/goki/ki/bitflag"
	"github.com/goki/ki/kit"
)

// NeurFlags are bit-flags encoding relevant binary state for neurons.
// The constants are bit positions -- use Has, SetFlag, ClearFlag.
type NeurFlags int32

//go:generate stringer -type=NeurFlags

var KiT_NeurFlags = kit.Enums.AddEnum(NeurFlagsN, true, nil)

// The neuron flags
const (
	// NeurInhibitory means spikes from this neuron subtract the synapse
	// weight from the target level instead of adding it
	NeurInhibitory NeurFlags = iota

	// NeurSpiked is set when the neuron spiked on the current tick.
	// It is recomputed every tick by the lifecycle pass.
	NeurSpiked

	// NeurDead means the neuron exhausted its vitality. Terminal: a dead
	// neuron is never processed again.
	NeurDead

	// NeurTransmitter means the spike state of this neuron is read out
	// through a TransmitterIndex
	NeurTransmitter

	// NeurReceiver means the neuron never evaluates its own level: its
	// spikes are injected through a ReceiverIndex
	NeurReceiver

	NeurFlagsN
)

// Has returns true if given flag is set
func (nf NeurFlags) Has(flag NeurFlags) bool {
	return bitflag.Has32(int32(nf), int(flag))
}

// SetFlag sets given flag
func (nf *NeurFlags) SetFlag(flag NeurFlags) {
	bitflag.Set32((*int32)(nf), int(flag))
}

// ClearFlag clears given flag
func (nf *NeurFlags) ClearFlag(flag NeurFlags) {
	bitflag.Clear32((*int32)(nf), int(flag))
}

// IsLive returns true if the neuron spiked this tick and is not dead
func (nf NeurFlags) IsLive() bool {
	return nf.Has(NeurSpiked) && !nf.Has(NeurDead)
}

// SynFlags are bit-flags encoding binary state for synapses.
type SynFlags int32

//go:generate stringer -type=SynFlags

var KiT_SynFlags = kit.Enums.AddEnum(SynFlagsN, true, nil)

const (
	// SynStrengthened means the synapse has received its one-time
	// permanent weight boost
	SynStrengthened SynFlags = iota

	SynFlagsN
)

// Has returns true if given flag is set
func (sf SynFlags) Has(flag SynFlags) bool {
	return bitflag.Has32(int32(sf), int(flag))
}

// SetFlag sets given flag
func (sf *SynFlags) SetFlag(flag SynFlags) {
	bitflag.Set32((*int32)(sf), int(flag))
}
