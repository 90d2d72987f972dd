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

package liveness

import (
	"github.com/bits-and-blooms/bitset"

	"fillmore-labs.com/deadstore/internal/usage"
)

// LiveVars holds the liveness information of one block.
type LiveVars struct {
	vars *Vars

	// gen holds the variables read in the block before any local overwrite (upward-exposed uses).
	gen *bitset.BitSet

	// kill holds the variables written in the block.
	kill *bitset.BitSet

	// in and out are the variables live at block entry and exit, updated by the solver.
	in, out *bitset.BitSet

	// usages holds the usage map of each element, parallel to the block's elements.
	usages []usage.Map
}

// summarize computes gen and kill of a block in a single forward pass over its elements.
func summarize(vars *Vars, usages []usage.Map) LiveVars {
	lv := LiveVars{
		vars:   vars,
		gen:    vars.newSet(),
		kill:   vars.newSet(),
		in:     vars.newSet(),
		out:    vars.newSet(),
		usages: usages,
	}

	// Variables completely overwritten earlier in this block
	locallyDefined := vars.newSet()

	for _, m := range usages {
		for v, s := range m.All() {
			i := vars.index[v]

			if s.Reads() && !locallyDefined.Test(i) {
				lv.gen.Set(i)
			}

			if s.Writes() {
				lv.kill.Set(i)

				if s == usage.Write {
					locallyDefined.Set(i)
				}
			}
		}
	}

	return lv
}

// Gen returns the variables used in the block before any local redefinition.
func (lv *LiveVars) Gen() Set { return Set{lv.gen, lv.vars} }

// Kill returns the variables written in the block.
func (lv *LiveVars) Kill() Set { return Set{lv.kill, lv.vars} }

// In returns the variables live at block entry.
func (lv *LiveVars) In() Set { return Set{lv.in, lv.vars} }

// Out returns the variables live at block exit.
func (lv *LiveVars) Out() Set { return Set{lv.out, lv.vars} }

// Usages returns the usage map of the i-th element of the block.
func (lv *LiveVars) Usages(i int) usage.Map { return lv.usages[i] }

// Len returns the number of elements of the block.
func (lv *LiveVars) Len() int { return len(lv.usages) }
