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

// Package run drives the dead store analysis over the routines of a package.
package run

import (
	"context"
	"errors"
	"fmt"
	"go/ast"
	"go/types"
	"runtime"
	"runtime/trace"

	"golang.org/x/sync/errgroup"
	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"

	"fillmore-labs.com/deadstore/internal/astutil"
	"fillmore-labs.com/deadstore/internal/config"
	"fillmore-labs.com/deadstore/internal/deadstore"
	"fillmore-labs.com/deadstore/internal/graph"
	"fillmore-labs.com/deadstore/internal/graph/tracker"
	"fillmore-labs.com/deadstore/internal/liveness"
	"fillmore-labs.com/deadstore/internal/report"
	"fillmore-labs.com/deadstore/internal/symbol"
	"fillmore-labs.com/deadstore/internal/usage"
)

// ErrResultMissing is returned when a required analyzer result is missing.
// This typically indicates a configuration error where the analyzer's
// Requires field is not properly set.
var ErrResultMissing = errors.New("analyzer result missing")

// Run executes the deadstore analyzer's pipeline.
func (r *Options) Run(p *analysis.Pass) (any, error) {
	// Retrieves the [inspector.Inspector] from the pass results.
	in, ok := p.ResultOf[inspect.Analyzer].(*inspector.Inspector)
	if !ok {
		return nil, fmt.Errorf("deadstore: %s %w", inspect.Analyzer.Name, ErrResultMissing)
	}

	ctx := context.Background()

	ctx, task := trace.NewTask(ctx, "DeadStore")
	defer task.End()

	trace.Log(ctx, "package", p.Pkg.Path())

	// Stage 1: Collect the routines of all files
	routines := r.collect(p, in)

	// Stage 2: Analyze routines independently
	results := r.analyze(ctx, p.TypesInfo, routines)

	// Stage 3: Report in source order
	for i, rt := range routines {
		res := results[i]
		if res.err != nil {
			astutil.InternalError(p, rt.node.Node(in), "%v", res.err)

			continue
		}

		report.Findings(ctx, p, rt.file, res.findings, r.Behavior)
	}

	return nil, nil
}

// routine is a function declaration or literal with a body.
type routine struct {
	node astutil.NodeIndex
	file astutil.CurrentFile
	recv *ast.FieldList
	typ  *ast.FuncType
	body *ast.BlockStmt
}

type result struct {
	findings []deadstore.Finding
	err      error
}

// collect returns the routines to analyze, in source order.
func (r *Options) collect(p *analysis.Pass, in *inspector.Inspector) []routine {
	var routines []routine

	funcLits := r.Behavior.Enabled(config.FuncLits)

	filter := []ast.Node{(*ast.FuncDecl)(nil)}
	if funcLits {
		filter = append(filter, (*ast.FuncLit)(nil))
	}

	// Loop over all files
	for f := range in.Root().Children() {
		file := f.Node().(*ast.File)

		currentFile := astutil.NewCurrentFile(p.Fset, file)
		if !currentFile.Valid() {
			astutil.InternalError(p, file, "File %s without valid info", file.Name.Name)

			continue
		}

		// Skip generated files
		if currentFile.Generated() && !r.Behavior.Enabled(config.IncludeGenerated) {
			continue
		}

		// Skip files with nolint comment
		if astutil.DocHasNoLint(file.Doc) {
			continue
		}

		// Loop over all function declarations and literals in this file
		for c := range f.Preorder(filter...) {
			rt := routine{node: astutil.NodeIndexOf(c), file: currentFile}

			switch fun := c.Node().(type) {
			case *ast.FuncDecl:
				// Skip functions with nolint comment
				if astutil.DocHasNoLint(fun.Doc) {
					continue
				}

				rt.recv, rt.typ, rt.body = fun.Recv, fun.Type, fun.Body

			case *ast.FuncLit:
				if suppressed(c) {
					continue
				}

				rt.typ, rt.body = fun.Type, fun.Body
			}

			if rt.body == nil {
				continue
			}

			routines = append(routines, rt)
		}
	}

	return routines
}

// suppressed reports whether a function literal is inside a function declaration with a nolint comment.
func suppressed(c inspector.Cursor) bool {
	for d := range c.Enclosing((*ast.FuncDecl)(nil)) {
		if astutil.DocHasNoLint(d.Node().(*ast.FuncDecl).Doc) {
			return true
		}
	}

	return false
}

// analyze runs the analysis of all routines concurrently.
// Every routine gets its own graph, symbol table and liveness sets.
func (r *Options) analyze(ctx context.Context, info *types.Info, routines []routine) []result {
	defer trace.StartRegion(ctx, "Analyze").End()

	results := make([]result, len(routines))

	limit := r.Concurrency
	if limit < 1 {
		limit = runtime.GOMAXPROCS(0)
	}

	var g errgroup.Group
	g.SetLimit(limit)

	mayReturn := tracker.MayReturn(info)

	for i, rt := range routines {
		g.Go(func() error {
			findings, err := analyzeRoutine(ctx, info, mayReturn, rt)
			results[i] = result{findings: findings, err: err}

			return nil
		})
	}

	_ = g.Wait() // routines report errors through their result

	return results
}

// analyzeRoutine finds the dead stores of one routine.
func analyzeRoutine(ctx context.Context, info *types.Info, mayReturn func(*ast.CallExpr) bool, rt routine) ([]deadstore.Finding, error) {
	a, err := Liveness(ctx, info, mayReturn, rt.recv, rt.typ, rt.body)
	if a == nil || err != nil {
		return nil, err
	}

	return deadstore.Detect(a), nil
}

// Liveness builds the control-flow graph of a routine and solves its liveness equations.
// recv is nil for functions and function literals.
// Liveness returns nil when the routine has no body or no tracked variables.
func Liveness(ctx context.Context, info *types.Info, mayReturn func(*ast.CallExpr) bool, recv *ast.FieldList, typ *ast.FuncType, body *ast.BlockStmt) (*liveness.Analysis, error) {
	g := graph.New(ctx, body, mayReturn)
	if g == nil {
		return nil, nil
	}

	symbols := symbol.New(info, recv, typ, body)
	if symbols.Len() == 0 {
		return nil, nil // nothing to track
	}

	return liveness.Analyze(ctx, g, usage.Classifier{Resolver: symbols})
}
