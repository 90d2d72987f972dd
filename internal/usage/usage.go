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

// Package usage classifies the variable occurrences of a program element as reads and writes.
package usage

import (
	"go/types"
	"iter"
)

// State describes how an element uses a variable.
//
// States form the lattice None < {Read, Write} < ReadWrite, where combining is bitwise or.
type State uint8

//go:generate go tool stringer -type State -linecomment
const (
	// None indicates the element does not touch the variable.
	None State = iota // none

	// Read indicates the element reads the variable's current value.
	Read // read

	// Write indicates the element overwrites the variable without reading it.
	Write // write

	// ReadWrite indicates the element reads and writes the variable, e.g. x++ or x = x + 1.
	ReadWrite // read-write
)

// Reads reports whether the element needs the value the variable had before.
func (s State) Reads() bool { return s&Read != 0 }

// Writes reports whether the element assigns the variable.
func (s State) Writes() bool { return s&Write != 0 }

// Map records the usage of each variable touched by one element.
type Map struct {
	order  []*types.Var // First occurrence order
	states map[*types.Var]State
}

// Record combines s into the state of v.
func (m *Map) Record(v *types.Var, s State) {
	if s == None {
		return
	}

	if m.states == nil {
		m.states = make(map[*types.Var]State)
	}

	old, ok := m.states[v]
	if !ok {
		m.order = append(m.order, v)
	}

	m.states[v] = old | s
}

// State returns the usage of v, [None] when v is untouched.
func (m Map) State(v *types.Var) State {
	return m.states[v]
}

// Len returns the number of distinct variables touched.
func (m Map) Len() int {
	return len(m.order)
}

// All iterates over the touched variables in order of their first occurrence.
func (m Map) All() iter.Seq2[*types.Var, State] {
	return func(yield func(*types.Var, State) bool) {
		for _, v := range m.order {
			if !yield(v, m.states[v]) {
				return
			}
		}
	}
}
