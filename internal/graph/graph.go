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

// Package graph adapts [cfg.CFG] into a flat, indexed control-flow graph with
// explicit predecessor links and a single exit block.
package graph

import (
	"context"
	"go/ast"
	"runtime/trace"
	"slices"

	"golang.org/x/tools/go/cfg"
)

// Element is a program element of a [Block]: a statement, a [*ast.ValueSpec] or an expression.
type Element struct {
	Node ast.Node

	// Guarded marks a select communication clause. Its assignments only take
	// effect when the clause is chosen, which happens after the block.
	Guarded bool
}

// Block is a basic block. Successors and predecessors are indices into [Graph.Blocks].
type Block struct {
	Elements []Element
	Succs    []int
	Preds    []int
	Kind     cfg.BlockKind // [cfg.KindInvalid] for the exit block
	Live     bool          // Reachable from the entry block
}

// Graph is the control-flow graph of one routine.
//
// Blocks[0] is the entry block, Blocks[Exit] the only block without successors.
type Graph struct {
	Blocks []Block
	Exit   int
}

// New builds the control-flow graph of body. mayReturn reports whether a call can return,
// see [cfg.New]. New returns nil when body is nil.
func New(ctx context.Context, body *ast.BlockStmt, mayReturn func(*ast.CallExpr) bool) *Graph {
	if body == nil {
		return nil
	}

	defer trace.StartRegion(ctx, "Graph").End()

	c := cfg.New(body, mayReturn)
	guarded := commClauses(body)

	exit := len(c.Blocks)
	blocks := make([]Block, exit+1)

	for _, cb := range c.Blocks {
		b := &blocks[cb.Index]
		b.Kind, b.Live = cb.Kind, cb.Live

		b.Elements = make([]Element, len(cb.Nodes))
		for i, n := range cb.Nodes {
			_, g := guarded[n]
			b.Elements[i] = Element{Node: n, Guarded: g}
		}

		b.Succs = make([]int, 0, max(len(cb.Succs), 1))
		for _, s := range cb.Succs {
			if !slices.Contains(b.Succs, int(s.Index)) {
				b.Succs = append(b.Succs, int(s.Index))
			}
		}

		if len(b.Succs) == 0 {
			b.Succs = append(b.Succs, exit) // return, end of body or call that can't return
		}
	}

	blocks[exit].Live = true

	g := &Graph{Blocks: blocks, Exit: exit}
	g.LinkPredecessors()

	return g
}

// LinkPredecessors recomputes [Block.Preds] from [Block.Succs].
func (g *Graph) LinkPredecessors() {
	for i := range g.Blocks {
		g.Blocks[i].Preds = g.Blocks[i].Preds[:0]
	}

	for i, b := range g.Blocks {
		for _, s := range b.Succs {
			g.Blocks[s].Preds = append(g.Blocks[s].Preds, i)
		}
	}
}

// Edges returns the number of edges in g.
func (g *Graph) Edges() int {
	n := 0
	for _, b := range g.Blocks {
		n += len(b.Succs)
	}

	return n
}

// commClauses collects the communications of select statements in body,
// excluding nested function literals.
func commClauses(body *ast.BlockStmt) map[ast.Node]struct{} {
	comms := make(map[ast.Node]struct{})

	ast.Inspect(body, func(n ast.Node) bool {
		switch n := n.(type) {
		case *ast.FuncLit:
			return false

		case *ast.CommClause:
			if n.Comm != nil {
				comms[n.Comm] = struct{}{}
			}
		}

		return true
	})

	return comms
}
