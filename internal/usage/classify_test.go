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

package usage_test

import (
	"go/ast"
	"go/token"
	"go/types"
	"maps"
	"slices"
	"testing"

	"fillmore-labs.com/deadstore/internal/graph"
	"fillmore-labs.com/deadstore/internal/symbol"
	"fillmore-labs.com/deadstore/internal/testsource"
	. "fillmore-labs.com/deadstore/internal/usage"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := [...]struct {
		name    string
		src     string
		guarded bool
		want    map[string]State
	}{
		{"write", `x := 0; x = 1`, false, map[string]State{"x": Write}},
		{"define", `y := 0; x := y`, false, map[string]State{"x": Write, "y": Read}},
		{"self_assign", `x := 0; x = x + 1`, false, map[string]State{"x": ReadWrite}},
		{"op_assign", `x := 0; x += 2`, false, map[string]State{"x": ReadWrite}},
		{"increment", `x := 0; x++`, false, map[string]State{"x": ReadWrite}},
		{"decrement", `x := 0; x--`, false, map[string]State{"x": ReadWrite}},
		{"read", `x := 0; use(x)`, false, map[string]State{"x": Read}},
		{"blank", `x := 0; _ = x`, false, map[string]State{"x": Read}},
		{"declaration", `var x int`, false, map[string]State{"x": Write}},
		{"initialized_declaration", `y := 0; var x = y`, false, map[string]State{"x": Write, "y": Read}},
		{"swap", `a, b := 0, 0; a, b = b, a`, false, map[string]State{"a": ReadWrite, "b": ReadWrite}},
		{"multi_value", `a, b := 0, 0; a, b = value(), value()`, false, map[string]State{"a": Write, "b": Write}},
		{"index", `x := []int{0}; i := 0; x[i] = 1`, false, map[string]State{"x": Read, "i": Read}},
		{"index_op_assign", `x := []int{0}; x[0] += 1`, false, map[string]State{"x": Read}},
		{"field", `var x struct{ f int }; x.f = 1`, false, map[string]State{"x": Read}},
		{"star", `p := new(int); *p = 1`, false, map[string]State{"p": Read}},
		{"paren", `x := 0; (x) = 1`, false, map[string]State{"x": Write}},
		{"func_lit", `x := 0; y := func() int { return 1 }; x = y()`, false, map[string]State{"x": Write, "y": Read}},
		{"guarded", `x := 0; x = value()`, true, map[string]State{"x": ReadWrite}},
		{"condition", `x := 0; if x > 0 {}`, false, map[string]State{"x": Read}},
		{"untracked", `x := 0; p := &x; *p = 1`, false, map[string]State{"p": Read}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src := testsource.Parse(t, tt.src)
			c := Classifier{symbol.New(src.Info, nil, src.Func.Type, src.Func.Body)}

			m := c.Classify(graph.Element{Node: lastElement(t, src.Func.Body), Guarded: tt.guarded})

			got := make(map[string]State, m.Len())
			for v, s := range m.All() {
				got[v.Name()] = s
			}

			if !maps.Equal(got, tt.want) {
				t.Errorf("Classify() = %v, want %v", got, tt.want)
			}
		})
	}
}

// lastElement returns the element go/cfg would create for the last statement of body.
func lastElement(tb testing.TB, body *ast.BlockStmt) ast.Node {
	tb.Helper()

	switch stmt := body.List[len(body.List)-1].(type) {
	case *ast.DeclStmt:
		return stmt.Decl.(*ast.GenDecl).Specs[0]

	case *ast.IfStmt:
		return stmt.Cond

	default:
		return stmt
	}
}

func TestClassifyBareReturn(t *testing.T) {
	t.Parallel()

	src := testsource.ParseFunc(t, `func f() (a, b int, err error) {
	if cond() {
		return 1, 2, nil
	}
	return
}`)

	c := Classifier{symbol.New(src.Info, nil, src.Func.Type, src.Func.Body)}

	tests := [...]struct {
		name string
		stmt ast.Node
		want int
	}{
		{"results", src.Func.Body.List[0].(*ast.IfStmt).Body.List[0], 0},
		{"bare", src.Func.Body.List[1], 3},
	}

	for _, tt := range tests {
		m := c.Classify(graph.Element{Node: tt.stmt})

		if got := m.Len(); got != tt.want {
			t.Errorf("%s: Classify() touched %d variables, want %d", tt.name, got, tt.want)
		}

		for v, s := range m.All() {
			if s != Read {
				t.Errorf("%s: result %s is %s, want %s", tt.name, v.Name(), s, Read)
			}
		}
	}
}

func TestRecord(t *testing.T) {
	t.Parallel()

	x := newVar("x")

	tests := [...]struct {
		name   string
		states []State
		want   State
	}{
		{"none", nil, None},
		{"read", []State{Read}, Read},
		{"read_twice", []State{Read, Read}, Read},
		{"write_twice", []State{Write, Write}, Write},
		{"read_write", []State{Read, Write}, ReadWrite},
		{"write_read", []State{Write, Read}, ReadWrite},
		{"read_write_read", []State{ReadWrite, Read}, ReadWrite},
		{"ignore_none", []State{Write, None}, Write},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var m Map
			for _, s := range tt.states {
				m.Record(x, s)
			}

			if got := m.State(x); got != tt.want {
				t.Errorf("State() = %s, want %s", got, tt.want)
			}

			if got, want := m.Len(), min(len(tt.states), 1); tt.want != None && got != want {
				t.Errorf("Len() = %d, want %d", got, want)
			}
		})
	}
}

func TestRecordOrder(t *testing.T) {
	t.Parallel()

	a, b, c := newVar("a"), newVar("b"), newVar("c")

	var m Map
	m.Record(b, Write)
	m.Record(a, Read)
	m.Record(b, Read)
	m.Record(c, Write)

	var names []string
	for v := range m.All() {
		names = append(names, v.Name())
	}

	if got, want := names, []string{"b", "a", "c"}; !slices.Equal(got, want) {
		t.Errorf("All() = %v, want %v", got, want)
	}
}

func TestStateString(t *testing.T) {
	t.Parallel()

	for s, want := range map[State]string{None: "none", Read: "read", Write: "write", ReadWrite: "read-write", 7: "State(7)"} {
		if got := s.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", s, got, want)
		}
	}

	if !ReadWrite.Reads() || !ReadWrite.Writes() || Read.Writes() || Write.Reads() {
		t.Error("Unexpected read/write predicates")
	}
}

func newVar(name string) *types.Var {
	return types.NewVar(token.NoPos, nil, name, types.Typ[types.Int])
}
