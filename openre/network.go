// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package openre

import (
	"fmt"
	"log"
	"strings"
	"sync"
	"sync/atomic"
	"unsafe"

	"github.com/c2h5oh/datasize"
	"github.com/emer/emergent/v2/timer"
	"github.com/emer/etable/v2/etensor"
	"github.com/goki/ki/kit"
	"github.com/goki/mat32"
)

// openre.Network holds all of the flat entity arrays of a spiking network,
// the adjacency chains over them, and the parameters and worker threads
// that run the per-tick passes.
type Network struct {

	// overall name of network -- helps discriminate if there are multiple
	Name string

	// list of layers, in neuron address order
	Layers []*Layer

	// map of name to layers -- layer names must be unique
	LayMap map[string]*Layer `view:"-"`

	// all neuron state, indexed by neuron address
	Neurons Neurons `view:"-"`

	// all synapse state, indexed by synapse address
	Synapses Synapses `view:"-"`

	// outgoing synapse chains: the synapses each neuron is the source of
	PreIndex SynIndex `view:"-"`

	// incoming synapse chains: the synapses each neuron is the target of
	PostIndex SynIndex `view:"-"`

	// synapse plasticity parameters
	Learn LearnParams `view:"inline"`

	// chain traversal bounds
	Traverse TraverseParams `view:"inline"`

	// statistics aggregation parameters
	Stat StatParams `view:"inline"`

	// threshold increase on rapid re-firing
	ThreshInc ThreshIncParams `view:"inline"`

	// threshold decrease during quiescence
	ThreshDec ThreshDecParams `view:"inline"`

	// readout of the spikes of transmitter neurons
	Transmitters TransmitterIndex `view:"-"`

	// injection of external spikes into receiver neurons
	Receivers ReceiverIndex `view:"-"`

	// pending numeric inputs, dropped once expired
	Inputs []Inputter `view:"-"`

	// numeric outputs updated at the end of each tick
	Outputs []Outputter `view:"-"`

	// per-layer statistics blocks: [layer][StatFieldsN]
	LayStats *etensor.Int64 `view:"-"`

	// sum of all layer statistics blocks
	Totals [StatFieldsN]int64 `inactive:"+"`

	// number of truncated chain traversals, per neuron
	Overruns []uint32 `view:"-"`

	// total number of truncated chain traversals
	NOverruns uint64 `inactive:"+"`

	// number of threads (go routines) to use for the per-tick passes
	NThreads int `def:"1" min:"1"`

	// if set, runtime.LockOSThread() is called on the compute threads, which can be faster on large networks on some architectures -- experimentation is recommended
	LockThreads bool

	// channels used by the worker threads
	ThrChans []ThrChan `view:"-"`

	// timers for each thread, so you can see how evenly the workload is being distributed
	ThrTimes []timer.Time `view:"-"`

	// timers for each major function (step of processing)
	FunTimes map[string]*timer.Time `view:"-"`

	// network-level wait group for synchronizing threaded pass calls
	WaitGp sync.WaitGroup `view:"-"`

	spikeAdapt   SpikeAdapter
	quietAdapt   QuietAdapter
	thrRunning   bool
	lastOverruns uint64
}

var KiT_Network = kit.Types.AddType(&Network{}, nil)

// NewNetwork returns a new Network with default parameters
func NewNetwork(name string) *Network {
	nt := &Network{}
	nt.Name = name
	nt.Defaults()
	return nt
}

// Defaults sets all the network parameters to their default values
func (nt *Network) Defaults() {
	nt.Learn.Defaults()
	nt.Traverse.Defaults()
	nt.Stat.Defaults()
	nt.ThreshInc.Defaults()
	nt.ThreshDec.Defaults()
	nt.NThreads = 1
	for _, ly := range nt.Layers {
		ly.Params.Defaults()
	}
}

// UpdateParams updates all the derived parameters if any have changed, for all layers
func (nt *Network) UpdateParams() {
	nt.Learn.Update()
	nt.Traverse.Update()
	nt.Stat.Update()
	nt.ThreshInc.Update()
	nt.ThreshDec.Update()
	for _, ly := range nt.Layers {
		ly.Params.Update()
	}
	nt.spikeAdapt = nt.ThreshInc.SpikeAdapter()
	nt.quietAdapt = nt.ThreshDec.QuietAdapter()
}

// AddLayer adds a new layer of n neurons with default parameters,
// occupying the next n neuron addresses.
func (nt *Network) AddLayer(name string, n int) *Layer {
	ly := &Layer{Name: name, Index: len(nt.Layers), NNeurons: n}
	ly.Params.Defaults()
	ly.NeurSt = nt.Neurons.Grow(n)
	nt.Layers = append(nt.Layers, ly)
	if nt.LayMap == nil {
		nt.LayMap = make(map[string]*Layer)
	}
	if _, has := nt.LayMap[name]; !has {
		nt.LayMap[name] = ly
	}
	return ly
}

// LayerByName returns a layer by looking it up by name in the layer map
// (nil if not found)
func (nt *Network) LayerByName(name string) *Layer {
	return nt.LayMap[name]
}

// LayerByNameTry returns a layer by looking it up by name -- emits a log
// error message if layer is not found
func (nt *Network) LayerByNameTry(name string) (*Layer, error) {
	ly := nt.LayerByName(name)
	if ly == nil {
		err := fmt.Errorf("Layer named: %v not found in Network: %v", name, nt.Name)
		log.Println(err)
		return nil, err
	}
	return ly, nil
}

// ConnectNeurons adds a synapse of given level from neuron pre to neuron
// post, returning its address. Chains are built by Build.
func (nt *Network) ConnectNeurons(pre, post Address, level int32) Address {
	return nt.Synapses.Add(pre, post, level)
}

// IndexTransmitters maps all neurons of layer ly onto the transmitter
// index and returns the external index of its first neuron.
func (nt *Network) IndexTransmitters(ly *Layer) int {
	st := nt.Transmitters.Len()
	for ni := ly.NeurSt; ni < ly.NeurEd(); ni++ {
		nt.Transmitters.Add(ni)
	}
	return st
}

// IndexReceivers maps all neurons of layer ly onto the receiver
// index and returns the external index of its first neuron.
func (nt *Network) IndexReceivers(ly *Layer) int {
	st := nt.Receivers.Len()
	for ni := ly.NeurSt; ni < ly.NeurEd(); ni++ {
		nt.Receivers.Add(ni)
	}
	return st
}

// Build validates the network structure, initializes the neuron state,
// constructs the adjacency chains and statistics blocks, and starts the
// worker threads. Configuration errors are logged and returned.
func (nt *Network) Build() error {
	nt.StopThreads()
	if err := nt.validate(); err != nil {
		log.Println(err)
		return err
	}
	nt.UpdateParams()
	nt.InitNeurons()
	if err := nt.validateRoles(); err != nil {
		log.Println(err)
		return err
	}
	nn := nt.Neurons.Len()
	nt.PreIndex.Build(nn, nt.Synapses.Pre)
	nt.PostIndex.Build(nn, nt.Synapses.Post)
	nt.LayStats = etensor.NewInt64([]int{len(nt.Layers), int(StatFieldsN)}, nil, []string{"Layer", "Stat"})
	nt.Overruns = make([]uint32, nn)
	nt.NOverruns = 0
	nt.lastOverruns = 0
	for _, ly := range nt.Layers {
		ly.CalcConnStats(&nt.PreIndex, &nt.PostIndex, nt.Traverse.MaxIter)
	}
	nt.BuildThreads()
	nt.StartThreads()
	return nil
}

func (nt *Network) validate() error {
	if len(nt.Layers) == 0 {
		return fmt.Errorf("Network %v: no layers", nt.Name)
	}
	if len(nt.Layers) > MaxLayers {
		return fmt.Errorf("Network %v: %d layers exceeds the maximum of %d", nt.Name, len(nt.Layers), MaxLayers)
	}
	names := make(map[string]bool, len(nt.Layers))
	for _, ly := range nt.Layers {
		if names[ly.Name] {
			return fmt.Errorf("Network %v: duplicate layer name: %v", nt.Name, ly.Name)
		}
		names[ly.Name] = true
	}
	if err := nt.Neurons.Validate(); err != nil {
		return err
	}
	return nt.Synapses.Validate(nt.Neurons.Len())
}

// validateRoles checks receivers against synapses and the I/O indexes
// against the neuron flags. Requires initialized neurons.
func (nt *Network) validateRoles() error {
	ns := &nt.Neurons
	for si, post := range nt.Synapses.Post {
		if ns.Flags[post].Has(NeurReceiver) {
			return fmt.Errorf("Network %v: synapse %d targets receiver neuron %d", nt.Name, si, post)
		}
	}
	if err := validateIndex("TransmitterIndex", nt.Transmitters.Address, ns, NeurTransmitter); err != nil {
		return err
	}
	if err := validateIndex("ReceiverIndex", nt.Receivers.Address, ns, NeurReceiver); err != nil {
		return err
	}
	for _, in := range nt.Inputs {
		if err := in.Validate(ns); err != nil {
			return err
		}
	}
	for _, out := range nt.Outputs {
		if err := out.Validate(ns); err != nil {
			return err
		}
	}
	return nil
}

// InitNeurons initializes the state of all neurons from their layers,
// and clears the traversal overrun counters
func (nt *Network) InitNeurons() {
	for _, ly := range nt.Layers {
		ly.InitNeurons(&nt.Neurons)
	}
	for i := range nt.Overruns {
		nt.Overruns[i] = 0
	}
}

// AddInput adds a numeric input applied at the start of each tick until it expires.
// Returns an error, and does not add it, if it maps outside of the neurons.
// Build checks all inputs again.
func (nt *Network) AddInput(in Inputter) error {
	if err := in.Validate(&nt.Neurons); err != nil {
		log.Println(err)
		return err
	}
	nt.Inputs = append(nt.Inputs, in)
	return nil
}

// AddOutput adds a numeric output updated at the end of each tick.
// Returns an error, and does not add it, if it maps outside of the neurons.
// Build checks all outputs again.
func (nt *Network) AddOutput(out Outputter) error {
	if err := out.Validate(&nt.Neurons); err != nil {
		log.Println(err)
		return err
	}
	nt.Outputs = append(nt.Outputs, out)
	return nil
}

// ApplyInputs adds all pending inputs into the neuron levels and drops
// the expired ones
func (nt *Network) ApplyInputs(tick Tick) {
	nt.FunTimerStart("ApplyInputs")
	kept := nt.Inputs[:0]
	for _, in := range nt.Inputs {
		if !in.ApplyInput(&nt.Neurons, tick) {
			kept = append(kept, in)
		}
	}
	for i := len(kept); i < len(nt.Inputs); i++ {
		nt.Inputs[i] = nil
	}
	nt.Inputs = kept
	nt.FunTimerStop("ApplyInputs")
}

// TickOutputs updates all numeric outputs from the current spike state
func (nt *Network) TickOutputs() {
	for _, out := range nt.Outputs {
		out.TickOutput(&nt.Neurons)
	}
}

// Cycle runs one complete tick: advances the tick counter, then runs each
// pass to completion before the next one starts.
func (nt *Network) Cycle(ltime *Time) {
	ltime.TickInc()
	tick := ltime.Tick
	nt.ApplyInputs(tick)
	nt.TickNeurons(ltime)
	nt.Receivers.Tick(&nt.Neurons)
	nt.Transmitters.Tick(&nt.Neurons)
	nt.TickSynapses(ltime)
	if nt.Stat.IsStatTick(tick) {
		nt.UpdateStats(ltime)
	}
	nt.TickOutputs()
	if n := atomic.LoadUint64(&nt.NOverruns); n != nt.lastOverruns {
		log.Printf("Network %v: %d synapse chain traversals truncated at %d links on tick %d\n", nt.Name, n-nt.lastOverruns, nt.Traverse.MaxIter, tick)
		nt.lastOverruns = n
	}
}

// CompactIndex unlinks all dead (level 0) synapses from both adjacency
// chains, so later traversals no longer visit them. Returns the number of
// links removed. Must not be called while a pass is running.
func (nt *Network) CompactIndex() int {
	alive := func(si Address) bool { return !nt.Synapses.IsDead(si) }
	nrm := nt.PreIndex.Compact(alive, nt.Traverse.MaxIter)
	nrm += nt.PostIndex.Compact(alive, nt.Traverse.MaxIter)
	for _, ly := range nt.Layers {
		ly.CalcConnStats(&nt.PreIndex, &nt.PostIndex, nt.Traverse.MaxIter)
	}
	return nrm
}

// NeuronVarByName returns variable by name for neuron ni, or error
func (nt *Network) NeuronVarByName(ni Address, varNm string) (float32, error) {
	return nt.Neurons.VarByName(ni, varNm)
}

// SynapseVarByName returns variable by name for synapse si, or error
func (nt *Network) SynapseVarByName(si Address, varNm string) (float32, error) {
	return nt.Synapses.VarByName(si, varNm)
}

//////////////////////////////////////////////////////////////////////////////////////
//  Misc Reports

// neuronRow and synapseRow hold one entry of each per-entity array,
// including the chain links, for memory reports
type neuronRow struct {
	Level     int32
	Flags     NeurFlags
	SpikeTick Tick
	Layer     uint16
	Vitality  uint32
	Threshold int32
	Overruns  uint32
	PreKey    Address
	PostKey   Address
}

type synapseRow struct {
	Level    int32
	Pre      Address
	Post     Address
	Learn    int32
	Flags    SynFlags
	PreNext  Address
	PostNext Address
}

// SizeReport returns a string reporting the size of each layer and its
// incoming synapses, and total memory footprint.
func (nt *Network) SizeReport() string {
	var b strings.Builder
	recv := make([]int, len(nt.Layers))
	for _, post := range nt.Synapses.Post {
		recv[nt.Neurons.Layer[post]]++
	}
	neur := 0
	neurMem := 0
	syn := 0
	synMem := 0
	for li, ly := range nt.Layers {
		nn := ly.NNeurons
		nmem := nn * int(unsafe.Sizeof(neuronRow{}))
		ns := recv[li]
		smem := ns * int(unsafe.Sizeof(synapseRow{}))
		neur += nn
		neurMem += nmem
		syn += ns
		synMem += smem
		fmt.Fprintf(&b, "%14s:\t Neurons: %d\t NeurMem: %v \t RecvSyns: %d\t SynMem: %v\n", ly.Name, nn, (datasize.ByteSize)(nmem).HumanReadable(), ns, (datasize.ByteSize)(smem).HumanReadable())
	}
	fmt.Fprintf(&b, "\n\n%14s:\t Neurons: %d\t NeurMem: %v \t Syns: %d \t SynMem: %v\n", nt.Name, neur, (datasize.ByteSize)(neurMem).HumanReadable(), syn, (datasize.ByteSize)(synMem).HumanReadable())
	return b.String()
}

// ConnReport returns a string reporting the average and max number of
// outgoing and incoming synapses per neuron for each layer
func (nt *Network) ConnReport() string {
	var b strings.Builder
	for _, ly := range nt.Layers {
		fmt.Fprintf(&b, "%14s:\t Send Avg: %7.2f\t Max: %4.0f\t Recv Avg: %7.2f\t Max: %4.0f\n", ly.Name,
			ly.SendConnAvgMax.Avg, ly.SendConnAvgMax.Max, ly.RecvConnAvgMax.Avg, ly.RecvConnAvgMax.Max)
	}
	return b.String()
}

// StatReport returns a string reporting the last aggregated statistics
// for each layer, with the spike and dead fractions per neuron, and the totals
func (nt *Network) StatReport() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%14s:", "Layer")
	for f := StatFields(0); f < StatFieldsN; f++ {
		fmt.Fprintf(&b, "\t%16s", f)
	}
	fmt.Fprintf(&b, "\t%8s\t%8s\n", "SpkFrac", "DeadFrac")
	for li, ly := range nt.Layers {
		fmt.Fprintf(&b, "%14s:", ly.Name)
		for f := StatFields(0); f < StatFieldsN; f++ {
			fmt.Fprintf(&b, "\t%16d", nt.LayerStat(li, f))
		}
		nn := mat32.Max(float32(ly.NNeurons), 1)
		fmt.Fprintf(&b, "\t%8.4f\t%8.4f\n", float32(nt.LayerStat(li, StatSpikes))/nn, float32(nt.LayerStat(li, StatDead))/nn)
	}
	fmt.Fprintf(&b, "%14s:", "Total")
	for f := StatFields(0); f < StatFieldsN; f++ {
		fmt.Fprintf(&b, "\t%16d", nt.Totals[f])
	}
	fmt.Fprintf(&b, "\n")
	return b.String()
}
