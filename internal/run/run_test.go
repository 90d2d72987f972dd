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

package run

import (
	"go/ast"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fillmore-labs.com/deadstore/internal/testsource"
)

func mayReturn(*ast.CallExpr) bool { return true }

func TestLivenessNoVars(t *testing.T) {
	t.Parallel()

	src := testsource.Parse(t, "use()")
	fn := src.Func

	a, err := Liveness(t.Context(), src.Info, mayReturn, fn.Recv, fn.Type, fn.Body)
	require.NoError(t, err)
	assert.Nil(t, a)
}

func TestLiveness(t *testing.T) {
	t.Parallel()

	src := testsource.Parse(t, "x := 1\nuse(x)")
	fn := src.Func

	a, err := Liveness(t.Context(), src.Info, mayReturn, fn.Recv, fn.Type, fn.Body)
	require.NoError(t, err)
	require.NotNil(t, a)
	assert.Equal(t, 1, a.Vars().Len())
}

func TestAnalyzeRoutine(t *testing.T) {
	t.Parallel()

	src := testsource.Parse(t, "x := 1\nx = 2\nuse(x)")
	fn := src.Func

	findings, err := analyzeRoutine(t.Context(), src.Info, mayReturn, routine{typ: fn.Type, body: fn.Body})
	require.NoError(t, err)
	require.Len(t, findings, 1)
	assert.Equal(t, "x", findings[0].Var.Name())
}

func TestDefaultOptions(t *testing.T) {
	t.Parallel()

	o := DefaultOptions()
	assert.Equal(t, 0, o.Concurrency)
}
