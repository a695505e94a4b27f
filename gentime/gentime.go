// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gentime times the generator's three named passes — neuron
// body emission, synapse body emission, and output file writes — and
// reports which one dominated a run, the detail a code generator's
// timing output needs that a bare stopwatch doesn't: knowing the total
// elapsed time is less useful to someone tuning netgen than knowing
// which of the three passes to look at first.
package gentime

import (
	"fmt"
	"time"

	"golang.org/x/exp/slices"
)

// Stats accumulates the total and per-call duration of one named
// generation pass.
type Stats struct {
	Label string
	St    time.Time
	Total time.Duration
	N     int
}

func (t *Stats) Reset() {
	t.St = time.Time{}
	t.Total = 0
	t.N = 0
}

func (t *Stats) Start() {
	t.St = time.Now()
}

func (t *Stats) ResetStart() {
	t.Reset()
	t.Start()
}

// Stop stops the timer, accumulates the interval, and returns it. A
// Stop with no matching Start is a no-op that returns zero rather than
// zeroing prior history, so a Stop that runs without a Start (e.g. on
// a pass that was skipped) doesn't erase an earlier run's numbers in a
// long-lived Passes value.
func (t *Stats) Stop() time.Duration {
	if t.St.IsZero() {
		return 0
	}
	iv := time.Since(t.St)
	t.Total += iv
	t.N++
	t.St = time.Time{}
	return iv
}

func (t *Stats) Avg() time.Duration {
	if t.N == 0 {
		return 0
	}
	return t.Total / time.Duration(t.N)
}

func (t *Stats) AvgSecs() float64 {
	return t.Avg().Seconds()
}

func (t *Stats) TotalSecs() float64 {
	return t.Total.Seconds()
}

func (t Stats) String() string {
	return fmt.Sprintf("%s %v", t.Label, t.Total)
}

// Passes holds one Stats per generation phase.
type Passes struct {
	Neuron  Stats
	Synapse Stats
	Write   Stats
}

// Report names each phase and its elapsed time, slowest first, so a
// CLI run's closing log line points straight at the pass worth
// investigating instead of an undifferentiated total.
func (p *Passes) Report() string {
	p.Neuron.Label, p.Synapse.Label, p.Write.Label = "neuron pass", "synapse pass", "file write"
	passes := []Stats{p.Neuron, p.Synapse, p.Write}
	slices.SortFunc(passes, func(a, b Stats) int {
		switch {
		case a.Total > b.Total:
			return -1
		case a.Total < b.Total:
			return 1
		default:
			return 0
		}
	})

	report := passes[0].String()
	for _, s := range passes[1:] {
		report += ", " + s.String()
	}
	return report
}
