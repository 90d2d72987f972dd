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

// Package analyzer implements the deadstore static analysis pass.
//
// # Overview
//
// DeadStore reports assignments to local variables whose value is never read
// on any path before the variable is overwritten or the function returns.
//
// The analysis builds the control-flow graph of every function, computes live
// variables per basic block and walks each block backwards, flagging every pure
// write to a variable that is not live at that point.
//
// # Example
//
//	func process(data []byte) error {
//	    n := len(data) // Dead store: value assigned to 'n' is never read
//	    n = 2 * len(data)
//	    return write(data[:n])
//	}
//
// # Limitations
//
// Only variables whose every access is visible in the function are analyzed.
// Variables captured by function literals or whose address is taken,
// explicitly or through a pointer method call, are skipped.
// Compound assignments (x += 1) and increments read the previous value
// and are never reported.
//
// Declarations without initializer (var x T) are only reported with the
// -zero-decl flag.
//
// Diagnostics can be suppressed with a //nolint:deadstore comment on the line,
// on the function or on the file.
package analyzer
