// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package openre

import "math"

// Address identifies a neuron or synapse slot in a flat entity array.
// Entities are never removed from the arrays, only flagged or zeroed.
type Address uint32

// NullAddress is the reserved out-of-range address meaning "no entity".
// It terminates every adjacency chain.
const NullAddress Address = math.MaxUint32

// IsNull returns true if this is the NullAddress sentinel
func (a Address) IsNull() bool {
	return a == NullAddress
}

// Tick is the discrete simulation time step counter.
// All tick differences are computed in unsigned arithmetic, so a
// "future" tick relative to the reference wraps to a very large value.
type Tick uint32

// MaxThreshold is the largest representable neuron threshold.
const MaxThreshold = math.MaxInt32

// MaxVitality is the largest representable vitality value.
const MaxVitality = math.MaxUint32

// MaxLayers is the number of layers addressable by the per-neuron
// layer index.
const MaxLayers = math.MaxUint16
