// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package openre is the overall repository for the openre per-tick spiking
network engine implemented in the Go language (golang).

This top-level of the repository has no functional code -- everything is organized
into the following sub-repositories:

* openre: the core engine: flat per-entity state arrays, the neuron lifecycle
step (leaky integration, vitality, death, adaptive thresholds), spike
propagation and timing-dependent plasticity over pointer-free synapse chains,
per-layer statistics, and the index multiplexers used for external I/O.

* examples: these actually compile into runnable programs and provide the starting
point for your own simulations.  examples/standalone builds a small random
network, drives it with input, and reports spikes, statistics and timing.
*/
package openre
