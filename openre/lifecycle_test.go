// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package openre

import (
	"math"
	"testing"
)

// CmprInts compares got and trg values, reporting each mismatch
func CmprInts[T ~int32 | ~uint32 | ~int64 | ~uint8](got, trg []T, msg string, t *testing.T) {
	t.Helper()
	if len(got) != len(trg) {
		t.Errorf("%v err: got len: %v, trg len: %v\n", msg, len(got), len(trg))
		return
	}
	for i := range got {
		if got[i] != trg[i] {
			t.Errorf("%v err: idx: %v, got: %v, trg: %v\n", msg, i, got[i], trg[i])
		}
	}
}

// MakeLayerNet returns a built network with a single layer of n neurons,
// with layer params set by lpfun if non-nil
func MakeLayerNet(t *testing.T, n int, lpfun func(lp *LayerParams)) (*Network, *Layer) {
	t.Helper()
	nt := NewNetwork("TestNet")
	ly := nt.AddLayer("Hidden", n)
	if lpfun != nil {
		lpfun(&ly.Params)
	}
	if err := nt.Build(); err != nil {
		t.Fatal(err)
	}
	return nt, ly
}

func scenarioParams(lp *LayerParams) {
	lp.Threshold = 10
	lp.Relaxation = 2
	lp.SpikeCost = 3
	lp.MaxVitality = 100
}

func TestSpikeScenario(t *testing.T) {
	nt, _ := MakeLayerNet(t, 1, scenarioParams)
	ns := &nt.Neurons
	ns.Level[0] = 10
	ns.Vitality[0] = 5

	nt.TickNeuron(0, 1)
	if !ns.IsSpiked(0) {
		t.Errorf("neuron did not spike")
	}
	CmprInts([]uint32{ns.Vitality[0], uint32(ns.SpikeTick[0])}, []uint32{2, 1}, "spike vitality, spike tick", t)
	CmprInts([]int32{ns.Level[0]}, []int32{0}, "spike level", t)

	nt.TickNeuron(0, 2)
	if ns.IsSpiked(0) {
		t.Errorf("SPIKED not cleared on quiet tick")
	}
	CmprInts([]int32{ns.Level[0]}, []int32{0}, "quiet level", t)
	CmprInts([]uint32{ns.Vitality[0], uint32(ns.SpikeTick[0])}, []uint32{3, 1}, "quiet vitality, spike tick", t)
}

func TestSpikeResidue(t *testing.T) {
	nt, _ := MakeLayerNet(t, 1, scenarioParams)
	ns := &nt.Neurons
	ns.Level[0] = 17
	nt.TickNeuron(0, 1)
	CmprInts([]int32{ns.Level[0]}, []int32{7}, "residue after spike", t)
	nt.TickNeuron(0, 2)
	CmprInts([]int32{ns.Level[0]}, []int32{5}, "relaxed residue", t)
}

func TestDeathScenario(t *testing.T) {
	nt, _ := MakeLayerNet(t, 2, scenarioParams)
	ns := &nt.Neurons
	ns.Level[0] = 12
	ns.Vitality[0] = 2
	ns.Level[1] = 10
	ns.Vitality[1] = 3 // equal to the cost is not enough

	for ni := Address(0); ni < 2; ni++ {
		nt.TickNeuron(ni, 1)
		if !ns.IsDead(ni) || ns.IsSpiked(ni) {
			t.Errorf("neuron %d: flags: %v, want dead and not spiked", ni, ns.Flags[ni])
		}
		if ns.Vitality[ni] != 100 || ns.Level[ni] != 0 {
			t.Errorf("neuron %d: vitality: %v level: %v, trg: 100, 0", ni, ns.Vitality[ni], ns.Level[ni])
		}
	}

	flags := ns.Flags[0]
	for tick := Tick(2); tick < 200; tick++ {
		nt.TickNeuron(0, tick)
		if ns.Flags[0] != flags || ns.Vitality[0] != 100 || ns.Level[0] != 0 {
			t.Errorf("dead neuron changed at tick %d: flags: %v vitality: %v level: %v", tick, ns.Flags[0], ns.Vitality[0], ns.Level[0])
		}
	}
}

func TestDeadIgnoresInput(t *testing.T) {
	nt, _ := MakeLayerNet(t, 1, scenarioParams)
	ns := &nt.Neurons
	ns.Level[0] = 10
	ns.Vitality[0] = 2
	ltime := NewTime()
	nt.Cycle(ltime)
	if !ns.IsDead(0) {
		t.Fatalf("neuron did not die, flags: %v", ns.Flags[0])
	}
	if err := nt.AddInput(&Input[int16]{Start: 0, Data: []int16{500}, Expire: 100}); err != nil {
		t.Fatal(err)
	}
	for c := 0; c < 3; c++ {
		nt.Cycle(ltime)
		CmprInts([]int32{ns.Level[0]}, []int32{0}, "dead level under input", t)
		CmprInts([]uint32{ns.Vitality[0]}, []uint32{100}, "dead vitality under input", t)
	}
	if len(nt.Inputs) != 1 {
		t.Errorf("input dropped before expiry")
	}
}

func TestLevelClamp(t *testing.T) {
	levels := []int32{math.MinInt32, -50000, -1, 0, 1, 999, 1000, 29999, 30000, 45000, 60001, math.MaxInt32}
	nt, _ := MakeLayerNet(t, len(levels), nil)
	ns := &nt.Neurons
	copy(ns.Level, levels)
	ltime := NewTime()
	ltime.TickInc()
	nt.TickNeurons(ltime)
	trg := []int32{0, 0, 0, 0, 0, 0, 0, 28999, 0, 15000, 30001, math.MaxInt32 - 30000}
	CmprInts(ns.Level, trg, "level after lifecycle", t)
	for i := range ns.Level {
		if ns.Level[i] < 0 {
			t.Errorf("negative level: idx: %v, level: %v", i, ns.Level[i])
		}
	}
}

func TestVitalityRecovery(t *testing.T) {
	nt, _ := MakeLayerNet(t, 2, scenarioParams)
	ns := &nt.Neurons
	ns.Vitality[0] = 98
	for tick := Tick(1); tick <= 5; tick++ {
		nt.TickNeuron(0, tick)
		nt.TickNeuron(1, tick)
	}
	CmprInts(ns.Vitality, []uint32{100, 100}, "recovered vitality", t)
}

func TestReceiverLifecycle(t *testing.T) {
	nt := NewNetwork("TestNet")
	ly := nt.AddLayer("Recv", 1)
	ly.Receiver = true
	nt.IndexReceivers(ly)
	if err := nt.Build(); err != nil {
		t.Fatal(err)
	}
	ns := &nt.Neurons
	ns.Level[0] = 1000000
	nt.TickNeuron(0, 1)
	if ns.IsSpiked(0) {
		t.Errorf("receiver spiked from its own level")
	}
	if ns.Level[0] != 1000000 {
		t.Errorf("receiver level changed: %v", ns.Level[0])
	}

	nt.Receivers.Receive(0)
	nt.Receivers.Tick(ns)
	if !ns.IsSpiked(0) {
		t.Errorf("receiver not spiked after injection")
	}
	nt.TickNeuron(0, 2)
	if ns.IsSpiked(0) {
		t.Errorf("receiver SPIKED not cleared on next tick")
	}
}

func TestThreshInc(t *testing.T) {
	nt := NewNetwork("TestNet")
	ly := nt.AddLayer("Hidden", 2)
	scenarioParams(&ly.Params)
	ly.Params.MaxVitality = 1000
	nt.ThreshInc.On = true
	if err := nt.Build(); err != nil {
		t.Fatal(err)
	}
	ns := &nt.Neurons
	ns.Vitality[0] = 1000

	ns.Level[0] = 10
	nt.TickNeuron(0, 1) // 1 tick since "0": + 10 - 1
	CmprInts([]int32{ns.Threshold[0]}, []int32{19}, "threshold after fast spike", t)

	ns.Level[0] = 19
	nt.TickNeuron(0, 5) // + 10 - 4
	CmprInts([]int32{ns.Threshold[0]}, []int32{25}, "threshold after second spike", t)

	ns.Level[0] = 25
	nt.TickNeuron(0, 100) // slow re-firing is not penalized
	CmprInts([]int32{ns.Threshold[0]}, []int32{25}, "threshold after slow spike", t)
	if ns.Level[0] != 0 || !ns.IsSpiked(0) {
		t.Errorf("slow spike: level: %v spiked: %v", ns.Level[0], ns.IsSpiked(0))
	}

	ns.Threshold[1] = MaxThreshold - 5
	ns.Level[1] = MaxThreshold - 5
	nt.TickNeuron(1, 1)
	if !ns.IsSpiked(1) {
		t.Errorf("neuron at max threshold did not spike")
	}
	CmprInts([]int32{ns.Threshold[1]}, []int32{MaxThreshold - 5}, "threshold without headroom", t)
}

func TestThreshIncOff(t *testing.T) {
	nt, _ := MakeLayerNet(t, 1, scenarioParams)
	ns := &nt.Neurons
	ns.Level[0] = 10
	nt.TickNeuron(0, 1)
	CmprInts([]int32{ns.Threshold[0]}, []int32{10}, "threshold with increase off", t)
}

func TestThreshDec(t *testing.T) {
	nt := NewNetwork("TestNet")
	ly := nt.AddLayer("Hidden", 2)
	ly.Params.Threshold = 50
	nt.ThreshDec.On = true
	if err := nt.Build(); err != nil {
		t.Fatal(err)
	}
	ns := &nt.Neurons
	ns.Threshold[1] = 1

	nt.TickNeuron(0, 100)
	CmprInts([]int32{ns.Threshold[0]}, []int32{50}, "threshold before quiet", t)
	nt.TickNeuron(0, 101)
	CmprInts([]int32{ns.Threshold[0]}, []int32{49}, "threshold after quiet", t)
	nt.TickNeuron(0, 102)
	CmprInts([]int32{ns.Threshold[0]}, []int32{48}, "threshold after quiet", t)

	nt.TickNeuron(1, 500)
	CmprInts([]int32{ns.Threshold[1]}, []int32{1}, "threshold at floor", t)
}

func TestThreshAdaptParams(t *testing.T) {
	ti := ThreshIncParams{}
	ti.Defaults()
	diffs := []Tick{0, 1, 9, 10, 11, 1000}
	got := make([]int32, len(diffs))
	for i, d := range diffs {
		got[i] = ti.AdaptSpike(100, d)
	}
	CmprInts(got, []int32{110, 109, 101, 100, 100, 100}, "AdaptSpike", t)

	td := ThreshDecParams{Dec: 5, Floor: 2, Quiet: 100}
	td.Update()
	if td.Floor != 5 {
		t.Errorf("Floor not raised to Dec: %v", td.Floor)
	}
	CmprInts([]int32{td.AdaptQuiet(100, 100), td.AdaptQuiet(100, 101), td.AdaptQuiet(5, 101), td.AdaptQuiet(6, 101)},
		[]int32{100, 95, 5, 1}, "AdaptQuiet", t)
}
