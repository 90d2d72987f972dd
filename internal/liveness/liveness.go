// Copyright 2025-2026 Oliver Eikemeier. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

// Package liveness computes live variables per block of a control-flow graph.
//
// The analysis is the classic backward dataflow problem
//
//	out[b] = ⋃ in[s] for s in succ(b)
//	in[b]  = gen[b] ∪ (out[b] − kill[b])
//
// solved with a worklist until a fixed point is reached.
package liveness

import (
	"context"
	"errors"
	"fmt"
	"runtime/trace"

	"github.com/bits-and-blooms/bitset"

	"fillmore-labs.com/deadstore/internal/graph"
	"fillmore-labs.com/deadstore/internal/usage"
)

// ErrNotConverged is returned when the solver exceeds its iteration bound,
// which indicates an inconsistent graph or gen/kill computation.
var ErrNotConverged = errors.New("liveness analysis did not converge")

// Analysis is the liveness result for one control-flow graph.
type Analysis struct {
	graph      *graph.Graph
	vars       *Vars
	blocks     []LiveVars
	iterations int
}

// Analyze classifies the elements of g, summarizes each block and solves the liveness equations.
func Analyze(ctx context.Context, g *graph.Graph, c usage.Classifier) (*Analysis, error) {
	return analyze(ctx, g, c, nil)
}

// analyze is [Analyze] with a hook called for each change of an in set.
func analyze(ctx context.Context, g *graph.Graph, c usage.Classifier, observe func(block int, in *bitset.BitSet)) (*Analysis, error) {
	defer trace.StartRegion(ctx, "Liveness").End()

	a := &Analysis{graph: g, vars: newVars()}

	// Classify first, so the number of variables is known before allocating sets
	usages := make([][]usage.Map, len(g.Blocks))
	for i, b := range g.Blocks {
		usages[i] = make([]usage.Map, len(b.Elements))
		for j, e := range b.Elements {
			m := c.Classify(e)
			for v := range m.All() {
				a.vars.add(v)
			}

			usages[i][j] = m
		}
	}

	a.blocks = make([]LiveVars, len(g.Blocks))
	for i := range g.Blocks {
		a.blocks[i] = summarize(a.vars, usages[i])
	}

	if err := a.solve(a.limit(), observe); err != nil {
		return nil, err
	}

	return a, nil
}

// limit bounds the number of worklist steps. Each in set grows at most once per variable,
// and every growth queues the block's predecessors.
func (a *Analysis) limit() int {
	return len(a.graph.Blocks) + (a.vars.Len()+1)*(a.graph.Edges()+1)
}

// solve runs the worklist algorithm. The worklist is a stack, seeded so the exit block is processed first.
func (a *Analysis) solve(limit int, observe func(int, *bitset.BitSet)) error {
	blocks := a.graph.Blocks
	n := len(blocks)

	work := make([]int, 0, n)
	queued := bitset.New(uint(n))

	push := func(b int) {
		if queued.Test(uint(b)) {
			return
		}

		queued.Set(uint(b))
		work = append(work, b)
	}

	for b := range n {
		push(b)
	}

	for a.iterations = 0; len(work) > 0; a.iterations++ {
		if a.iterations >= limit {
			return fmt.Errorf("%w after %d iterations on %d blocks", ErrNotConverged, a.iterations, n)
		}

		b := work[len(work)-1]
		work = work[:len(work)-1]
		queued.Clear(uint(b))

		lv := &a.blocks[b]

		lv.out.ClearAll()
		for _, s := range blocks[b].Succs {
			lv.out.InPlaceUnion(a.blocks[s].in)
		}

		in := lv.out.Difference(lv.kill)
		in.InPlaceUnion(lv.gen)

		if in.Equal(lv.in) {
			continue
		}

		lv.in = in

		if observe != nil {
			observe(b, in)
		}

		for _, p := range blocks[b].Preds {
			push(p)
		}
	}

	return nil
}

// Graph returns the analyzed control-flow graph.
func (a *Analysis) Graph() *graph.Graph { return a.graph }

// Block returns the liveness information of block i.
func (a *Analysis) Block(i int) *LiveVars { return &a.blocks[i] }

// Vars returns the variables touched by the routine.
func (a *Analysis) Vars() *Vars { return a.vars }

// Iterations returns the number of worklist steps the solver took.
func (a *Analysis) Iterations() int { return a.iterations }
