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
	"go/types"
	"iter"
	"slices"

	"github.com/bits-and-blooms/bitset"
)

// Vars assigns dense indices to the variables of one analysis run.
type Vars struct {
	index map[*types.Var]uint
	vars  []*types.Var
}

func newVars() *Vars {
	return &Vars{index: make(map[*types.Var]uint)}
}

// add returns the index of v, assigning the next free one on first sight.
func (vs *Vars) add(v *types.Var) uint {
	if i, ok := vs.index[v]; ok {
		return i
	}

	i := uint(len(vs.vars))
	vs.index[v] = i
	vs.vars = append(vs.vars, v)

	return i
}

// Len returns the number of indexed variables.
func (vs *Vars) Len() int {
	return len(vs.vars)
}

// newSet allocates an empty bitset large enough for all indexed variables.
// All sets of one run have the same length, so [bitset.BitSet.Equal] compares contents only.
func (vs *Vars) newSet() *bitset.BitSet {
	return bitset.New(uint(len(vs.vars)))
}

// Set is a read-only view of a set of variables.
type Set struct {
	bits *bitset.BitSet
	vars *Vars
}

// Contains reports whether v is in the set.
func (s Set) Contains(v *types.Var) bool {
	i, ok := s.vars.index[v]

	return ok && s.bits.Test(i)
}

// Len returns the number of variables in the set.
func (s Set) Len() int {
	return int(s.bits.Count())
}

// All iterates over the variables in index order.
func (s Set) All() iter.Seq[*types.Var] {
	return func(yield func(*types.Var) bool) {
		for i, ok := s.bits.NextSet(0); ok; i, ok = s.bits.NextSet(i + 1) {
			if !yield(s.vars.vars[i]) {
				return
			}
		}
	}
}

// Names returns the sorted variable names.
func (s Set) Names() []string {
	names := make([]string, 0, s.Len())
	for v := range s.All() {
		names = append(names, v.Name())
	}

	slices.Sort(names)

	return names
}

// Equal reports whether s and o contain the same variables.
func (s Set) Equal(o Set) bool {
	return s.bits.Equal(o.bits)
}

// Union returns the union of s and o as a new set.
func (s Set) Union(o Set) Set {
	return Set{bits: s.bits.Union(o.bits), vars: s.vars}
}

// Difference returns the variables of s not in o as a new set.
func (s Set) Difference(o Set) Set {
	return Set{bits: s.bits.Difference(o.bits), vars: s.vars}
}

// Clone returns a mutable copy of s.
func (s Set) Clone() Live {
	return Live{Set{bits: s.bits.Clone(), vars: s.vars}}
}

// Live is a mutable set of variables, used to step backwards through a block.
type Live struct {
	Set
}

// Add marks v as live. Variables unknown to the analysis are ignored.
func (l Live) Add(v *types.Var) {
	if i, ok := l.vars.index[v]; ok {
		l.bits.Set(i)
	}
}

// Remove marks v as dead.
func (l Live) Remove(v *types.Var) {
	if i, ok := l.vars.index[v]; ok {
		l.bits.Clear(i)
	}
}
