// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package openre provides the per-tick simulation engine of a spiking network.

All state lives in flat arrays indexed by Address: one slice per variable
for neurons (Neurons) and synapses (Synapses). Entities are never removed:
a neuron dies by getting the NeurDead flag, and a synapse dies when its
level is 0. The outgoing and incoming synapses of each neuron are linked
into chains through two SynIndex arrays, terminated by NullAddress.

Each Network.Cycle runs these passes, each over all neurons in parallel
across NThreads workers and each completed before the next starts:

  - ApplyInputs: numeric inputs are added into neuron levels.
  - TickNeurons: spike test, vitality, death, relaxation and threshold adaptation.
  - ReceiverIndex / TransmitterIndex: external spike injection and readout.
  - TickSynapses: spikes are propagated to target levels (atomic adds)
    and synapse learn traces are updated (Train mode only).
  - UpdateStats: per-layer statistics, every StatParams.Interval ticks.
  - TickOutputs: decaying spike-recency outputs.

The tick counter is owned by the caller through Time, so any harness can
drive synthetic ticks through the individual passes.
*/
package openre
