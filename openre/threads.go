// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package openre

import (
	"fmt"
	"runtime"
	"sort"

	"github.com/emer/emergent/v2/timer"
	"github.com/goki/ki/ints"
)

// RangeFun is a function applied to each entity index of a pass
type RangeFun func(i int)

// thrJob is one pass sent to a worker thread: the worker applies fun
// to its own slice of [0, n)
type thrJob struct {
	fun RangeFun
	n   int
}

// ThrChan is the channel a worker thread receives its jobs on
type ThrChan chan thrJob

//////////////////////////////////////////////////////////////////////////////////////
//  Threading infrastructure

// BuildThreads allocates the channels and timers for NThreads workers
func (nt *Network) BuildThreads() {
	if nt.NThreads < 1 {
		nt.NThreads = 1
	}
	nt.ThrChans = make([]ThrChan, nt.NThreads)
	nt.ThrTimes = make([]timer.Time, nt.NThreads)
	nt.FunTimes = make(map[string]*timer.Time)
	for th := 0; th < nt.NThreads; th++ {
		nt.ThrChans[th] = make(ThrChan)
	}
}

// StartThreads starts up the computation threads, which monitor the channels for work
func (nt *Network) StartThreads() {
	if nt.NThreads <= 1 {
		return
	}
	fmt.Printf("NThreads: %d\tgo max procs: %d\tnum cpu:%d\n", nt.NThreads, runtime.GOMAXPROCS(0), runtime.NumCPU())
	for th := 0; th < nt.NThreads; th++ {
		go nt.ThrWorker(th) // start the worker thread for this channel
	}
	nt.thrRunning = true
}

// StopThreads stops the computation threads
func (nt *Network) StopThreads() {
	if !nt.thrRunning {
		return
	}
	for th := range nt.ThrChans {
		close(nt.ThrChans[th])
	}
	nt.thrRunning = false
}

// ThrRange returns the slice [st, ed) of n entities handled by thread tt
func (nt *Network) ThrRange(tt, n int) (st, ed int) {
	per := (n + nt.NThreads - 1) / nt.NThreads
	st = ints.MinInt(tt*per, n)
	ed = ints.MinInt(st+per, n)
	return
}

// ThrWorker is the worker function run by the worker threads
func (nt *Network) ThrWorker(tt int) {
	if nt.LockThreads {
		runtime.LockOSThread()
	}
	for job := range nt.ThrChans[tt] {
		nt.ThrTimes[tt].Start()
		st, ed := nt.ThrRange(tt, job.n)
		for i := st; i < ed; i++ {
			job.fun(i)
		}
		nt.ThrTimes[tt].Stop()
		nt.WaitGp.Done()
	}
	if nt.LockThreads {
		runtime.UnlockOSThread()
	}
}

// ThrRangeFun calls fun for each index in [0, n), using threaded
// (go routine worker) computation if NThreads > 1 and otherwise just
// iterating in the current thread. Returns only once every index is done.
func (nt *Network) ThrRangeFun(n int, fun RangeFun, funame string) {
	nt.FunTimerStart(funame)
	if !nt.thrRunning {
		for i := 0; i < n; i++ {
			fun(i)
		}
	} else {
		job := thrJob{fun: fun, n: n}
		for th := 0; th < nt.NThreads; th++ {
			nt.WaitGp.Add(1)
			nt.ThrChans[th] <- job
		}
		nt.WaitGp.Wait()
	}
	nt.FunTimerStop(funame)
}

// TimerReport reports the amount of time spent in each function, and in each thread
func (nt *Network) TimerReport() {
	fmt.Printf("TimerReport: %v, NThreads: %v\n", nt.Name, nt.NThreads)
	fmt.Printf("\t%13s \t%7s\t%7s\n", "Function Name", "Secs", "Pct")
	nfn := len(nt.FunTimes)
	fnms := make([]string, 0, nfn)
	for k := range nt.FunTimes {
		fnms = append(fnms, k)
	}
	sort.Strings(fnms)
	pcts := make([]float64, nfn)
	tot := 0.0
	for i, fn := range fnms {
		pcts[i] = nt.FunTimes[fn].TotalSecs()
		tot += pcts[i]
	}
	for i, fn := range fnms {
		fmt.Printf("\t%13s \t%7.3f\t%7.1f\n", fn, pcts[i], 100*(pcts[i]/tot))
	}
	fmt.Printf("\t%13s \t%7.3f\n", "Total", tot)

	if nt.NThreads <= 1 {
		return
	}
	fmt.Printf("\n\tThr\tSecs\tPct\n")
	pcts = make([]float64, nt.NThreads)
	tot = 0.0
	for th := 0; th < nt.NThreads; th++ {
		pcts[th] = nt.ThrTimes[th].TotalSecs()
		tot += pcts[th]
	}
	for th := 0; th < nt.NThreads; th++ {
		fmt.Printf("\t%v \t%7.3f\t%7.1f\n", th, pcts[th], 100*(pcts[th]/tot))
	}
}

// ThrTimerReset resets the per-thread timers
func (nt *Network) ThrTimerReset() {
	for th := 0; th < nt.NThreads; th++ {
		nt.ThrTimes[th].Reset()
	}
}

// FunTimerStart starts function timer for given function name -- ensures creation of timer
func (nt *Network) FunTimerStart(fun string) {
	ft, ok := nt.FunTimes[fun]
	if !ok {
		ft = &timer.Time{}
		nt.FunTimes[fun] = ft
	}
	ft.Start()
}

// FunTimerStop stops function timer -- timer must already exist
func (nt *Network) FunTimerStop(fun string) {
	ft := nt.FunTimes[fun]
	ft.Stop()
}
