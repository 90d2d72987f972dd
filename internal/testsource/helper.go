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

// Package testsource provides utilities for parsing and type-checking Go source in tests.
//
// It handles the boilerplate of wrapping statement fragments into a function,
// so tests of the liveness analysis can be written against a few lines of code.
package testsource

import (
	"go/ast"
	"go/importer"
	"go/parser"
	"go/token"
	"go/types"
	"strings"
	"testing"
)

const testpkg = "test"

// prelude declares helpers that test fragments may call.
const prelude = `

func use(...any) {}

func cond() bool { return false }

func value() int { return 0 }
`

// Source is a parsed and type-checked test function.
type Source struct {
	Fset *token.FileSet
	File *ast.File
	Func *ast.FuncDecl
	Pkg  *types.Package
	Info *types.Info
}

// Parse wraps src as the body of a parameterless function and type-checks it.
//
// The helpers use(...any), cond() bool and value() int are in scope.
func Parse(tb testing.TB, src string) Source {
	tb.Helper()

	return ParseFunc(tb, "func _() {\n"+src+"\n}")
}

// ParseFunc parses and type-checks a complete function declaration.
//
// The helpers of [Parse] are in scope.
func ParseFunc(tb testing.TB, fun string) Source {
	tb.Helper()

	const filename = "test.go"

	var src strings.Builder
	src.WriteString("package " + testpkg + "\n\n") // ignore error
	src.WriteString(fun)                           // ignore error
	src.WriteString(prelude)                       // ignore error

	fset := token.NewFileSet()

	f, err := parser.ParseFile(fset, filename, src.String(), parser.ParseComments|parser.SkipObjectResolution)
	if err != nil {
		tb.Fatalf("Failed to parse source %q: %v", fun, err)
	}

	pkg, info := check(tb, fset, f)

	fn := firstFuncDecl(f)
	if fn == nil {
		tb.Fatal("Can't find function")
	}

	return Source{Fset: fset, File: f, Func: fn, Pkg: pkg, Info: info}
}

func check(tb testing.TB, fset *token.FileSet, f *ast.File) (*types.Package, *types.Info) {
	tb.Helper()

	info := &types.Info{
		Types:      make(map[ast.Expr]types.TypeAndValue),
		Defs:       make(map[*ast.Ident]types.Object),
		Uses:       make(map[*ast.Ident]types.Object),
		Implicits:  make(map[ast.Node]types.Object),
		Selections: make(map[*ast.SelectorExpr]*types.Selection),
		Scopes:     make(map[ast.Node]*types.Scope),
	}

	var errs []error

	conf := types.Config{
		Importer: importer.Default(),
		Error: func(err error) {
			// Fragments may declare variables that are only written
			if terr, ok := err.(types.Error); ok && terr.Soft {
				return
			}

			errs = append(errs, err)
		},
	}

	pkg, _ := conf.Check(testpkg, fset, []*ast.File{f}, info)
	if len(errs) > 0 {
		tb.Fatalf("Failed to type check source: %v", errs)
	}

	return pkg, info
}

func firstFuncDecl(f *ast.File) *ast.FuncDecl {
	for _, decl := range f.Decls {
		if fn, ok := decl.(*ast.FuncDecl); ok {
			return fn
		}
	}

	return nil
}

// Var returns the first variable named name declared in fn.
func (s Source) Var(tb testing.TB, name string) *types.Var {
	tb.Helper()

	var v *types.Var

	ast.Inspect(s.Func, func(n ast.Node) bool {
		if v != nil {
			return false
		}

		if id, ok := n.(*ast.Ident); ok && id.Name == name {
			v, _ = s.Info.Defs[id].(*types.Var)
		}

		return true
	})

	if v == nil {
		tb.Fatalf("Variable %s not declared", name)
	}

	return v
}
