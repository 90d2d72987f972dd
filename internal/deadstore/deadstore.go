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

// Package deadstore finds assignments whose value is never read.
package deadstore

import (
	"go/ast"
	"go/types"

	"fillmore-labs.com/deadstore/internal/liveness"
	"fillmore-labs.com/deadstore/internal/usage"
)

// Finding is a store to Var at Node that no later element reads.
type Finding struct {
	Node  ast.Node
	Var   *types.Var
	Block int
}

// Detect walks every reachable block backwards from its live-out set and reports pure
// writes of variables that are not live at that point.
//
// Findings are ordered by block, then by element in reverse, then by first occurrence
// of the variable in the element.
func Detect(a *liveness.Analysis) []Finding {
	var findings []Finding

	for b, block := range a.Graph().Blocks {
		if !block.Live {
			continue
		}

		lv := a.Block(b)
		live := lv.Out().Clone()

		for i := lv.Len() - 1; i >= 0; i-- {
			for v, s := range lv.Usages(i).All() {
				if s != usage.Write {
					live.Add(v) // the old value is needed from here backwards

					continue
				}

				if !live.Contains(v) {
					findings = append(findings, Finding{Node: block.Elements[i].Node, Var: v, Block: b})
				}

				live.Remove(v)
			}
		}
	}

	return findings
}
