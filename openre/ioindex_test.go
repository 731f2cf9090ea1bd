// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package openre

import "testing"

func TestTransmitterIndex(t *testing.T) {
	ns := &Neurons{}
	ns.Grow(4)
	ti := &TransmitterIndex{}
	ti.Add(3)
	ti.Add(1)
	ti.Add(2)
	ns.Flags[3].SetFlag(NeurSpiked)
	ns.Flags[2].SetFlag(NeurSpiked)
	ns.Flags[2].SetFlag(NeurDead)
	ti.Tick(ns)
	CmprInts(ti.Spiked, []uint8{1, 0, 0}, "transmitter readout", t)

	ti.AddRemote(0, 1, 10)
	ti.AddRemote(0, 2, 20)
	var doms []uint32
	var addrs []uint32
	ti.Remotes(0, 100, func(d uint32, a Address) {
		doms = append(doms, d)
		addrs = append(addrs, uint32(a))
	})
	CmprInts(doms, []uint32{2, 1}, "remote domains", t)
	CmprInts(addrs, []uint32{20, 10}, "remote addresses", t)
	n := 0
	ti.Remotes(1, 100, func(d uint32, a Address) { n++ })
	if n != 0 {
		t.Errorf("remotes of index without remotes: %v", n)
	}
}

func TestReceiverIndex(t *testing.T) {
	ns := &Neurons{}
	ns.Grow(3)
	ri := &ReceiverIndex{}
	ri.Add(2)
	ri.Add(0)
	ri.Receive(0)
	ri.Tick(ns)
	if !ns.IsSpiked(2) || ns.IsSpiked(0) {
		t.Errorf("injection: flags: %v", ns.Flags)
	}
	CmprInts(ri.Spiked, []uint8{0, 0}, "cleared slots", t)

	ns.Flags[2].ClearFlag(NeurSpiked)
	ri.Tick(ns)
	if ns.IsSpiked(2) {
		t.Errorf("spike delivered twice")
	}
}

func TestInputExpire(t *testing.T) {
	ns := &Neurons{}
	ns.Grow(4)
	in := &Input[int8]{Start: 1, Data: []int8{5, -3, 7}, Expire: 3}
	for tick := Tick(1); tick <= 3; tick++ {
		exp := in.ApplyInput(ns, tick)
		if exp != (tick == 3) {
			t.Errorf("tick %d: expired: %v", tick, exp)
		}
	}
	CmprInts(ns.Level, []int32{0, 15, -9, 21}, "input levels", t)

	nt := NewNetwork("TestNet")
	nt.AddLayer("Input", 2)
	if err := nt.Build(); err != nil {
		t.Fatal(err)
	}
	if err := nt.AddInput(&Input[uint16]{Start: 0, Data: []uint16{1000, 2000}}); err != nil {
		t.Fatal(err)
	}
	nt.ApplyInputs(1)
	if len(nt.Inputs) != 0 {
		t.Errorf("single-shot input not dropped")
	}
	CmprInts(nt.Neurons.Level, []int32{1000, 2000}, "single-shot input", t)
}

func TestInputSkipsDead(t *testing.T) {
	ns := &Neurons{}
	ns.Grow(3)
	ns.Flags[1].SetFlag(NeurDead)
	in := &Input[int32]{Start: 0, Data: []int32{7, 7, 7}, Expire: 5}
	in.ApplyInput(ns, 1)
	in.ApplyInput(ns, 2)
	CmprInts(ns.Level, []int32{14, 0, 14}, "input levels with dead neuron", t)
}

func TestIOValidate(t *testing.T) {
	ns := &Neurons{}
	ns.Grow(4)
	if err := (&Input[int8]{Start: 2, Data: []int8{1, 1}}).Validate(ns); err != nil {
		t.Errorf("input at end of range: %v", err)
	}
	if err := (&Input[int8]{Start: 3, Data: []int8{1, 1}}).Validate(ns); err == nil {
		t.Errorf("no error for input past the last neuron")
	}
	if err := (&Input[int8]{Start: 9}).Validate(ns); err == nil {
		t.Errorf("no error for empty input starting out of range")
	}
	if err := NewOutputIndex[uint8]([]Address{0, 3}).Validate(ns); err != nil {
		t.Errorf("output in range: %v", err)
	}
	if err := NewOutputIndex[uint8]([]Address{0, 4}).Validate(ns); err == nil {
		t.Errorf("no error for output address out of range")
	}
	oi := NewOutputIndex[uint16]([]Address{0, 1})
	oi.Data = oi.Data[:1]
	if err := oi.Validate(ns); err == nil {
		t.Errorf("no error for output values shorter than addresses")
	}
}

func TestOutputIndex(t *testing.T) {
	ns := &Neurons{}
	ns.Grow(2)
	oi := NewOutputIndex[uint8]([]Address{1, 0})
	if oi.Max != 255 {
		t.Errorf("Max: got: %v, trg: 255", oi.Max)
	}
	ns.Flags[1].SetFlag(NeurSpiked)
	oi.TickOutput(ns)
	CmprInts(oi.Data, []uint8{255, 0}, "output on spike", t)
	ns.Flags[1].ClearFlag(NeurSpiked)
	oi.TickOutput(ns)
	oi.TickOutput(ns)
	CmprInts(oi.Data, []uint8{253, 0}, "decayed output", t)

	ns.Flags[1].SetFlag(NeurSpiked)
	ns.Flags[1].SetFlag(NeurDead)
	oi.TickOutput(ns)
	CmprInts(oi.Data, []uint8{252, 0}, "output of dead neuron", t)
}
