// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package openre

import (
	"fmt"

	"golang.org/x/exp/constraints"
)

// TransmitterIndex maps a compact external index onto transmitter neurons
// and reads out their spike state each tick. Each entry can also carry a
// chain of remote (domain, address) targets that its spikes are delivered to.
type TransmitterIndex struct {

	// internal neuron address, per external index
	Address []Address

	// 1 if the mapped neuron spiked this tick and is not dead, else 0
	Spiked []uint8

	// head of the remote chain, per external index
	RemoteKey []Address

	// next link of the remote chain, per remote entry
	RemoteNext []Address

	// receiving domain of each remote entry
	RemoteDomain []uint32

	// receiver index address in the receiving domain of each remote entry
	RemoteAddress []Address
}

// Add maps neuron ni to the next external index, which is returned
func (ti *TransmitterIndex) Add(ni Address) int {
	ti.Address = append(ti.Address, ni)
	ti.Spiked = append(ti.Spiked, 0)
	ti.RemoteKey = append(ti.RemoteKey, NullAddress)
	return len(ti.Address) - 1
}

// AddRemote prepends a remote target to the chain of external index idx
func (ti *TransmitterIndex) AddRemote(idx int, domain uint32, addr Address) {
	ri := Address(len(ti.RemoteNext))
	ti.RemoteNext = append(ti.RemoteNext, ti.RemoteKey[idx])
	ti.RemoteDomain = append(ti.RemoteDomain, domain)
	ti.RemoteAddress = append(ti.RemoteAddress, addr)
	ti.RemoteKey[idx] = ri
}

// Remotes calls fun for each remote target of external index idx,
// visiting at most maxIter entries
func (ti *TransmitterIndex) Remotes(idx int, maxIter int, fun func(domain uint32, addr Address)) {
	it := 0
	for ri := ti.RemoteKey[idx]; !ri.IsNull() && it < maxIter; ri = ti.RemoteNext[ri] {
		fun(ti.RemoteDomain[ri], ti.RemoteAddress[ri])
		it++
	}
}

// Len returns the number of external indexes
func (ti *TransmitterIndex) Len() int {
	return len(ti.Address)
}

// Tick copies the spike state of the mapped neurons into Spiked
func (ti *TransmitterIndex) Tick(ns *Neurons) {
	for i, ni := range ti.Address {
		if ns.Flags[ni].IsLive() {
			ti.Spiked[i] = 1
		} else {
			ti.Spiked[i] = 0
		}
	}
}

// ReceiverIndex maps a compact external index onto receiver neurons and
// injects externally delivered spikes into them.
type ReceiverIndex struct {

	// internal neuron address, per external index
	Address []Address

	// nonzero if a spike was delivered for this tick. Cleared on delivery.
	Spiked []uint8
}

// Add maps neuron ni to the next external index, which is returned
func (ri *ReceiverIndex) Add(ni Address) int {
	ri.Address = append(ri.Address, ni)
	ri.Spiked = append(ri.Spiked, 0)
	return len(ri.Address) - 1
}

// Len returns the number of external indexes
func (ri *ReceiverIndex) Len() int {
	return len(ri.Address)
}

// Receive marks external index idx as spiked for the next injection
func (ri *ReceiverIndex) Receive(idx int) {
	ri.Spiked[idx] = 1
}

// Tick sets SPIKED on the mapped neurons that received a spike, and
// clears every external slot: delivery is single-shot.
func (ri *ReceiverIndex) Tick(ns *Neurons) {
	for i, ni := range ri.Address {
		if ri.Spiked[i] != 0 {
			ns.Flags[ni].SetFlag(NeurSpiked)
		}
		ri.Spiked[i] = 0
	}
}

// validateAddrs checks that every mapped address is a neuron of ns
func validateAddrs(nm string, addrs []Address, ns *Neurons) error {
	for i, ni := range addrs {
		if int(ni) >= ns.Len() {
			return fmt.Errorf("%s: index %d maps to neuron %d out of range", nm, i, ni)
		}
	}
	return nil
}

// validateIndex checks the mapped addresses against the neurons
func validateIndex(nm string, addrs []Address, ns *Neurons, role NeurFlags) error {
	if err := validateAddrs(nm, addrs, ns); err != nil {
		return err
	}
	for i, ni := range addrs {
		if !ns.Flags[ni].Has(role) {
			return fmt.Errorf("%s: index %d maps to neuron %d without flag %v", nm, i, ni, role)
		}
	}
	return nil
}

// Input adds externally supplied values of any integer width into the
// levels of a contiguous range of neurons starting at Start.
type Input[T constraints.Integer] struct {

	// address of the neuron receiving Data[0]
	Start Address

	// values added to the neuron levels
	Data []T

	// the input is applied on every tick up to and including Expire.
	// 0 means it is applied once and then dropped.
	Expire Tick
}

// Validate checks that the whole Data range maps onto neurons of ns
func (in *Input[T]) Validate(ns *Neurons) error {
	if int(in.Start)+len(in.Data) > ns.Len() {
		return fmt.Errorf("Input: neurons %d..%d out of range of %d neurons", in.Start, int(in.Start)+len(in.Data)-1, ns.Len())
	}
	return nil
}

// ApplyInput adds Data into the levels of the non-dead neurons and
// returns true once the input has expired and should be dropped.
func (in *Input[T]) ApplyInput(ns *Neurons, tick Tick) bool {
	for i, v := range in.Data {
		ni := in.Start + Address(i)
		if ns.Flags[ni].Has(NeurDead) {
			continue
		}
		ns.Level[ni] += int32(v)
	}
	return tick >= in.Expire
}

// Inputter is an Input of any width
type Inputter interface {
	Validate(ns *Neurons) error
	ApplyInput(ns *Neurons, tick Tick) bool
}

// OutputIndex converts the spikes of mapped neurons into a decaying
// "recency of spike" value: reset to Max on spike, decremented otherwise.
type OutputIndex[T constraints.Unsigned] struct {

	// internal neuron address, per output
	Address []Address

	// decaying spike recency, per output
	Data []T

	// value Data is reset to on spike
	Max T
}

// NewOutputIndex returns an output index over given neurons, with Max set
// to the largest value of T
func NewOutputIndex[T constraints.Unsigned](addrs []Address) *OutputIndex[T] {
	oi := &OutputIndex[T]{Address: addrs, Max: ^T(0)}
	oi.Data = make([]T, len(addrs))
	return oi
}

// Validate checks the mapped addresses against the neurons of ns
func (oi *OutputIndex[T]) Validate(ns *Neurons) error {
	if len(oi.Data) != len(oi.Address) {
		return fmt.Errorf("OutputIndex: %d values for %d addresses", len(oi.Data), len(oi.Address))
	}
	return validateAddrs("OutputIndex", oi.Address, ns)
}

// TickOutput updates Data from the current spike state
func (oi *OutputIndex[T]) TickOutput(ns *Neurons) {
	for i, ni := range oi.Address {
		if ns.Flags[ni].IsLive() {
			oi.Data[i] = oi.Max
		} else if oi.Data[i] > 0 {
			oi.Data[i]--
		}
	}
}

// Outputter is an OutputIndex of any width
type Outputter interface {
	Validate(ns *Neurons) error
	TickOutput(ns *Neurons)
}
