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

package usage

import (
	"go/ast"
	"go/token"
	"go/types"

	"fillmore-labs.com/deadstore/internal/graph"
)

// Resolver maps identifiers to the variables taking part in the analysis.
type Resolver interface {
	// Resolve returns the variable denoted by id, or false when id is not tracked.
	Resolve(id *ast.Ident) (*types.Var, bool)

	// NamedResults returns the tracked named results, which a bare return reads.
	NamedResults() []*types.Var
}

// Classifier computes the usage [Map] of program elements.
type Classifier struct {
	Resolver
}

// shape is the syntactic category of an element relevant for classification.
type shape uint8

const (
	shapeOther      shape = iota // Everything else: identifiers are read
	shapeIdent                   // A bare variable reference
	shapeAssign                  // x = v, x := v, a, b = f()
	shapeOpAssign                // x += v
	shapeIncDec                  // x++, x--
	shapeValueSpec               // var x T = v
	shapeBareReturn              // return without results
)

func shapeOf(n ast.Node) shape {
	switch n := n.(type) {
	case *ast.Ident:
		return shapeIdent

	case *ast.AssignStmt:
		switch n.Tok {
		case token.ASSIGN, token.DEFINE:
			return shapeAssign

		default:
			return shapeOpAssign
		}

	case *ast.IncDecStmt:
		return shapeIncDec

	case *ast.ValueSpec:
		return shapeValueSpec

	case *ast.ReturnStmt:
		if len(n.Results) == 0 {
			return shapeBareReturn
		}
	}

	return shapeOther
}

// Classify returns the usage of every tracked variable occurring in e.
//
// Assignments of guarded elements are recorded as [ReadWrite], since the old
// value survives on paths where the assignment does not happen.
func (c Classifier) Classify(e graph.Element) Map {
	var m Map

	write := Write
	if e.Guarded {
		write = ReadWrite
	}

	switch n := e.Node; shapeOf(n) {
	case shapeIdent:
		c.reads(&m, n)

	case shapeAssign:
		n := n.(*ast.AssignStmt)
		for _, rhs := range n.Rhs {
			c.reads(&m, rhs)
		}

		for _, lhs := range n.Lhs {
			c.target(&m, lhs, write)
		}

	case shapeOpAssign:
		n := n.(*ast.AssignStmt)
		for _, rhs := range n.Rhs {
			c.reads(&m, rhs)
		}

		for _, lhs := range n.Lhs {
			c.target(&m, lhs, ReadWrite)
		}

	case shapeIncDec:
		c.target(&m, n.(*ast.IncDecStmt).X, ReadWrite)

	case shapeValueSpec:
		n := n.(*ast.ValueSpec)
		for _, value := range n.Values {
			c.reads(&m, value)
		}

		for _, id := range n.Names {
			c.target(&m, id, write)
		}

	case shapeBareReturn:
		for _, v := range c.NamedResults() {
			m.Record(v, Read)
		}

	default:
		c.reads(&m, n)
	}

	return m
}

// target records an assignment to lhs. Only plain identifiers are written,
// operands of selectors, index and star expressions are read.
func (c Classifier) target(m *Map, lhs ast.Expr, s State) {
	id, ok := ast.Unparen(lhs).(*ast.Ident)
	if !ok {
		c.reads(m, lhs)

		return
	}

	if v, ok := c.Resolve(id); ok {
		m.Record(v, s)
	}
}

// reads records every tracked identifier in n as read. Function literals are separate routines.
func (c Classifier) reads(m *Map, n ast.Node) {
	ast.Inspect(n, func(n ast.Node) bool {
		switch n := n.(type) {
		case *ast.FuncLit:
			return false

		case *ast.Ident:
			if v, ok := c.Resolve(n); ok {
				m.Record(v, Read)
			}
		}

		return true
	})
}
