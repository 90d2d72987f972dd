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

// Package symbol decides which variables of a routine take part in the liveness analysis.
package symbol

import (
	"go/ast"
	"go/token"
	"go/types"
)

// Table resolves identifiers of one routine to tracked local variables.
//
// A variable is tracked when the routine declares it and all of its accesses
// are visible as plain identifiers: it is never captured by a function literal,
// and its address is never taken, explicitly or implicitly.
// Named results are not tracked when the routine defers a call.
type Table struct {
	info    *types.Info
	tracked map[*types.Var]struct{}
	results []*types.Var
}

// New builds the table for the routine with the given receiver, signature and body.
// recv is nil for functions and function literals.
func New(info *types.Info, recv *ast.FieldList, typ *ast.FuncType, body *ast.BlockStmt) *Table {
	t := &Table{info: info, tracked: make(map[*types.Var]struct{})}

	t.declareFields(recv)

	if typ != nil {
		t.declareFields(typ.Params)
		t.results = t.declareFields(typ.Results)
	}

	if body != nil {
		t.declareBody(body)
		t.removeEscaping(body)

		if hasDefer(body) {
			// A deferred recover returns the results as they were when the panic occurred
			for _, v := range t.results {
				delete(t.tracked, v)
			}
		}
	}

	// Drop results that escaped
	results := t.results[:0]
	for _, v := range t.results {
		if _, ok := t.tracked[v]; ok {
			results = append(results, v)
		}
	}
	t.results = results

	return t
}

// Resolve returns the tracked variable denoted by id.
func (t *Table) Resolve(id *ast.Ident) (*types.Var, bool) {
	if id == nil || id.Name == "_" {
		return nil, false
	}

	v, ok := t.info.ObjectOf(id).(*types.Var)
	if !ok {
		return nil, false
	}

	if _, ok := t.tracked[v]; !ok {
		return nil, false
	}

	return v, true
}

// Tracked reports whether v takes part in the analysis.
func (t *Table) Tracked(v *types.Var) bool {
	_, ok := t.tracked[v]

	return ok
}

// NamedResults returns the tracked named results of the routine.
func (t *Table) NamedResults() []*types.Var {
	return t.results
}

// Len returns the number of tracked variables.
func (t *Table) Len() int {
	return len(t.tracked)
}

func (t *Table) declareFields(fields *ast.FieldList) []*types.Var {
	if fields == nil {
		return nil
	}

	var vars []*types.Var

	for _, field := range fields.List {
		for _, id := range field.Names {
			if v := t.declare(id); v != nil {
				vars = append(vars, v)
			}
		}
	}

	return vars
}

func (t *Table) declare(id *ast.Ident) *types.Var {
	if id.Name == "_" {
		return nil
	}

	v, ok := t.info.Defs[id].(*types.Var)
	if !ok || v.IsField() {
		return nil // type switch symbol, struct field or not a variable
	}

	t.tracked[v] = struct{}{}

	return v
}

// declareBody records the variables defined in body, excluding nested function literals.
func (t *Table) declareBody(body *ast.BlockStmt) {
	ast.Inspect(body, func(n ast.Node) bool {
		switch n := n.(type) {
		case *ast.FuncLit:
			return false

		case *ast.Ident:
			t.declare(n)
		}

		return true
	})
}

// hasDefer reports whether body defers a call, excluding nested function literals.
func hasDefer(body *ast.BlockStmt) bool {
	found := false

	ast.Inspect(body, func(n ast.Node) bool {
		switch n.(type) {
		case *ast.FuncLit:
			return false

		case *ast.DeferStmt:
			found = true
		}

		return !found
	})

	return found
}

// removeEscaping untracks variables whose value may be observed through other means than their identifier.
func (t *Table) removeEscaping(body *ast.BlockStmt) {
	var nested int // function literal depth

	var visit func(n ast.Node) bool
	visit = func(n ast.Node) bool {
		switch n := n.(type) {
		case *ast.FuncLit:
			nested++
			ast.Inspect(n.Body, visit)
			nested--

			return false

		case *ast.Ident:
			if nested > 0 {
				// Captured by a closure
				t.untrack(n)
			}

		case *ast.UnaryExpr:
			if n.Op == token.AND {
				t.untrack(rootIdent(n.X))
			}

		case *ast.SelectorExpr:
			if t.addressedReceiver(n) {
				t.untrack(rootIdent(n.X))
			}

		case *ast.SliceExpr:
			if typ := t.info.TypeOf(n.X); typ != nil {
				if _, ok := typ.Underlying().(*types.Array); ok {
					t.untrack(rootIdent(n.X))
				}
			}
		}

		return true
	}

	ast.Inspect(body, visit)
}

// addressedReceiver reports whether sel is a method call or value with pointer receiver
// on an addressable operand, which implicitly takes the operand's address.
func (t *Table) addressedReceiver(sel *ast.SelectorExpr) bool {
	s, ok := t.info.Selections[sel]
	if !ok || s.Kind() != types.MethodVal {
		return false
	}

	sig, ok := s.Obj().Type().(*types.Signature)
	if !ok || sig.Recv() == nil {
		return false
	}

	if _, ok := types.Unalias(sig.Recv().Type()).(*types.Pointer); !ok {
		return false
	}

	typ := t.info.TypeOf(sel.X)
	if typ == nil {
		return false
	}

	_, ptr := typ.Underlying().(*types.Pointer)

	return !ptr
}

func (t *Table) untrack(id *ast.Ident) {
	if id == nil {
		return
	}

	if v, ok := t.info.Uses[id].(*types.Var); ok {
		delete(t.tracked, v)
	}
}

// rootIdent returns the variable whose storage contains x: x for x, x.f, x[i] (arrays), (x).
func rootIdent(x ast.Expr) *ast.Ident {
	for {
		switch e := ast.Unparen(x).(type) {
		case *ast.Ident:
			return e

		case *ast.SelectorExpr:
			x = e.X

		case *ast.IndexExpr:
			x = e.X

		default:
			return nil
		}
	}
}
