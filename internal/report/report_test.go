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

package report_test

import (
	"go/ast"
	"slices"
	"testing"

	"golang.org/x/tools/go/analysis"

	"fillmore-labs.com/deadstore/internal/astutil"
	"fillmore-labs.com/deadstore/internal/config"
	"fillmore-labs.com/deadstore/internal/deadstore"
	. "fillmore-labs.com/deadstore/internal/report"
	"fillmore-labs.com/deadstore/internal/testsource"
)

func TestFindings(t *testing.T) {
	t.Parallel()

	src := testsource.ParseFunc(t, `func f() {
	var a int
	b := 1 //nolint:deadstore
	c := 2
	var d = 3
	use(a, b, c, d)
}`)

	body := src.Func.Body.List
	findings := []deadstore.Finding{
		{Node: body[0].(*ast.DeclStmt).Decl.(*ast.GenDecl).Specs[0], Var: src.Var(t, "a")},
		{Node: body[1], Var: src.Var(t, "b")},
		{Node: body[2], Var: src.Var(t, "c")},
		{Node: body[3].(*ast.DeclStmt).Decl.(*ast.GenDecl).Specs[0], Var: src.Var(t, "d")},
	}

	tests := []struct {
		name     string
		behavior config.Behavior
		want     []string
	}{
		{"default", config.DefaultBehavior(), []string{"c", "d"}},
		{"zero_decl", config.NewBitMask(config.ZeroValueDecl), []string{"a", "c", "d"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var got []string

			p := &analysis.Pass{
				Fset: src.Fset,
				Report: func(d analysis.Diagnostic) {
					for _, f := range findings {
						if f.Node.Pos() == d.Pos {
							got = append(got, f.Var.Name())

							if want := Message(f.Var.Name()); d.Message != want {
								t.Errorf("Message = %q, want %q", d.Message, want)
							}
						}
					}
				},
			}

			Findings(t.Context(), p, astutil.NewCurrentFile(src.Fset, src.File), findings, tt.behavior)

			if !slices.Equal(got, tt.want) {
				t.Errorf("Reported %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMessage(t *testing.T) {
	t.Parallel()

	if got, want := Message("x"), "Dead store: value assigned to 'x' is never read"; got != want {
		t.Errorf("Message() = %q, want %q", got, want)
	}
}
