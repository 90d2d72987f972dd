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

package tracker_test

import (
	"go/token"
	"go/types"
	"testing"

	. "fillmore-labs.com/deadstore/internal/graph/tracker"
)

func TestFuncNameOf(t *testing.T) {
	t.Parallel()

	pkg := types.NewPackage("example.com/testpkg", "testpkg")

	named := types.NewNamed(types.NewTypeName(token.NoPos, pkg, "MyType", nil), types.NewStruct(nil, nil), nil)
	alias := types.NewAlias(types.NewTypeName(token.NoPos, pkg, "MyAlias", nil), types.NewPointer(named))

	method := func(recv types.Type) *types.Func {
		var param *types.Var
		if recv != nil {
			param = types.NewParam(token.NoPos, pkg, "", recv)
		}

		sig := types.NewSignatureType(param, nil, nil, nil, nil, false)

		return types.NewFunc(token.NoPos, pkg, "myFunc", sig)
	}

	tests := [...]struct {
		name string
		fun  *types.Func
		want string
	}{
		{"function", method(nil), "example.com/testpkg.myFunc"},
		{"value_receiver", method(named), "(example.com/testpkg.MyType).myFunc"},
		{"pointer_receiver", method(types.NewPointer(named)), "(example.com/testpkg.MyType).myFunc"},
		{"alias_receiver", method(alias), "(example.com/testpkg.MyType).myFunc"},
		{"invalid_receiver", method(types.NewStruct(nil, nil)), "(<invalid>).myFunc"},
		{
			"no_package",
			types.NewFunc(token.NoPos, nil, "myFunc", types.NewSignatureType(nil, nil, nil, nil, nil, false)),
			"myFunc",
		},
		{
			"universe_method",
			types.Universe.Lookup("error").Type().Underlying().(*types.Interface).Method(0),
			"(error).Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := FuncNameOf(tt.fun).String(); got != tt.want {
				t.Errorf("FuncNameOf() = %q, want %q", got, tt.want)
			}
		})
	}
}
