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

// Package tracker recognizes calls that never return to their caller.
package tracker

import (
	"go/ast"
	"go/types"
)

// noReturn lists known functions and methods that terminate the goroutine or the process.
var noReturn = func() map[FuncName]struct{} {
	table := [...]struct {
		path, receiver string
		names          []string
	}{
		{"log", "", []string{"Fatal", "Fatalf", "Fatalln", "Panic", "Panicf", "Panicln"}},
		{"log", "Logger", []string{"Fatal", "Fatalf", "Fatalln", "Panic", "Panicf", "Panicln"}},
		{"os", "", []string{"Exit"}},
		{"syscall", "", []string{"Exit"}},
		{"runtime", "", []string{"Goexit"}},
		{"testing", "common", []string{"Fatal", "Fatalf", "FailNow", "Skip", "Skipf", "SkipNow"}},
		{"testing", "TB", []string{"Fatal", "Fatalf", "FailNow", "Skip", "Skipf", "SkipNow"}},
		{"github.com/sirupsen/logrus", "", []string{"Exit", "Fatal", "Fatalf", "Fatalln", "Panic", "Panicf", "Panicln"}},
		{"github.com/sirupsen/logrus", "Entry", []string{"Fatal", "Fatalf", "Fatalln", "Panic", "Panicf", "Panicln"}},
		{"github.com/sirupsen/logrus", "Logger", []string{"Exit", "Fatal", "Fatalf", "Fatalln", "Panic", "Panicf", "Panicln"}},
		{"go.uber.org/zap", "Logger", []string{"Fatal", "Panic"}},
		{"go.uber.org/zap", "SugaredLogger", []string{"Fatal", "Fatalf", "Fatalln", "Fatalw", "Panic", "Panicf", "Panicln", "Panicw"}},
		{"k8s.io/klog", "", []string{"Exit", "ExitDepth", "Exitf", "Exitln", "Fatal", "FatalDepth", "Fatalf", "Fatalln"}},
		{"k8s.io/klog/v2", "", []string{"Exit", "ExitDepth", "Exitf", "Exitln", "Fatal", "FatalDepth", "Fatalf", "Fatalln"}},
	}

	m := make(map[FuncName]struct{})
	for _, e := range table {
		for _, name := range e.names {
			m[FuncName{Path: e.path, Receiver: e.receiver, Name: name}] = struct{}{}
		}
	}

	return m
}()

// MayReturn returns a predicate suitable for [cfg.New], reporting false for
// calls known to never return.
//
// [cfg.New]: https://pkg.go.dev/golang.org/x/tools/go/cfg#New
func MayReturn(info *types.Info) func(*ast.CallExpr) bool {
	return func(call *ast.CallExpr) bool { return !CantReturn(info, call) }
}

// CantReturn reports whether call invokes a function that never returns.
func CantReturn(info *types.Info, call *ast.CallExpr) bool {
	fun := ast.Unparen(call.Fun)

	for {
		switch e := fun.(type) {
		case *ast.IndexExpr: // f[T]
			fun = ast.Unparen(e.X)
			continue

		case *ast.IndexListExpr: // f[T, U]
			fun = ast.Unparen(e.X)
			continue

		case *ast.Ident:
			return isNoReturn(info.Uses[e])

		case *ast.SelectorExpr:
			return isNoReturn(info.Uses[e.Sel])
		}

		return false // func value, closure call, conversion
	}
}

func isNoReturn(obj types.Object) bool {
	switch obj := obj.(type) {
	case *types.Func:
		_, ok := noReturn[FuncNameOf(obj)]

		return ok

	case *types.Builtin:
		return obj == builtinPanic
	}

	return false
}

var builtinPanic = types.Universe.Lookup("panic").(*types.Builtin)
