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

// Package report turns dead store findings into analysis diagnostics.
package report

import (
	"context"
	"fmt"
	"go/ast"
	"runtime/trace"

	"golang.org/x/tools/go/analysis"

	"fillmore-labs.com/deadstore/internal/astutil"
	"fillmore-labs.com/deadstore/internal/config"
	"fillmore-labs.com/deadstore/internal/deadstore"
)

// Message formats the diagnostic message for a dead store to the named variable.
func Message(name string) string {
	return fmt.Sprintf("Dead store: value assigned to '%s' is never read", name)
}

// Findings emits a diagnostic for each finding of one routine, in order.
//
// Findings on lines with a nolint comment are skipped, as are zero value
// declarations (var x T) unless [config.ZeroValueDecl] is enabled.
func Findings(ctx context.Context, p *analysis.Pass, currentFile astutil.CurrentFile, findings []deadstore.Finding, behavior config.Behavior) {
	if len(findings) == 0 {
		return
	}

	defer trace.StartRegion(ctx, "Report").End()

	zeroValueDecl := behavior.Enabled(config.ZeroValueDecl)

	for _, f := range findings {
		if !zeroValueDecl && isZeroValueDecl(f.Node) {
			continue
		}

		if currentFile.NoLintComment(f.Node.Pos()) {
			continue
		}

		p.Report(analysis.Diagnostic{
			Pos:     f.Node.Pos(),
			End:     f.Node.End(),
			Message: Message(f.Var.Name()),
		})
	}
}

// isZeroValueDecl reports whether n declares variables without initializer.
func isZeroValueDecl(n ast.Node) bool {
	spec, ok := n.(*ast.ValueSpec)

	return ok && len(spec.Values) == 0
}
