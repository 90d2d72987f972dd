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

package tracker

import (
	"go/types"
	"strings"
)

// FuncName identifies a function or method independent of its [types.Func] object.
type FuncName struct {
	Path     string // Package path, empty for universe and interface methods
	Receiver string // Receiver type name without pointer, empty for functions
	Name     string
}

// FuncNameOf returns the [FuncName] of fun.
//
// Pointer receivers and aliases are resolved to the underlying named type,
// so (*T).M and (T).M share one name.
func FuncNameOf(fun *types.Func) FuncName {
	sig, ok := fun.Type().(*types.Signature)
	if !ok || sig.Recv() == nil {
		var path string
		if pkg := fun.Pkg(); pkg != nil {
			path = pkg.Path()
		}

		return FuncName{Path: path, Name: fun.Name()}
	}

	typ := types.Unalias(sig.Recv().Type())
	if ptr, ok := typ.(*types.Pointer); ok {
		typ = types.Unalias(ptr.Elem())
	}

	switch typ := typ.(type) {
	case *types.Named:
		obj := typ.Origin().Obj()

		var path string
		if pkg := obj.Pkg(); pkg != nil {
			path = pkg.Path()
		}

		return FuncName{Path: path, Receiver: obj.Name(), Name: fun.Name()}

	case *types.Interface:
		return FuncName{Receiver: "interface", Name: fun.Name()}

	default:
		return FuncName{Receiver: "<invalid>", Name: fun.Name()}
	}
}

// String formats the name like "(path.Receiver).Name" or "path.Name".
func (f FuncName) String() string {
	var b strings.Builder

	if f.Receiver != "" {
		b.WriteByte('(') // ignore error
	}

	if f.Path != "" {
		b.WriteString(f.Path) // ignore error
		b.WriteByte('.')      // ignore error
	}

	if f.Receiver != "" {
		b.WriteString(f.Receiver) // ignore error
		b.WriteString(").")       // ignore error
	}

	b.WriteString(f.Name) // ignore error

	return b.String()
}
