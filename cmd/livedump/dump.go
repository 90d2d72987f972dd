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

package main

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"go/ast"
	"go/format"
	"go/types"
	"io"
	"regexp"
	"strings"

	log "github.com/sirupsen/logrus"
	"golang.org/x/tools/go/packages"

	"fillmore-labs.com/deadstore/internal/deadstore"
	"fillmore-labs.com/deadstore/internal/graph/tracker"
	"fillmore-labs.com/deadstore/internal/liveness"
	"fillmore-labs.com/deadstore/internal/report"
	"fillmore-labs.com/deadstore/internal/run"
)

type dumper struct {
	out      *bufio.Writer
	filter   *regexp.Regexp
	funcLits bool
}

func newDumper(w io.Writer, filter *regexp.Regexp, funcLits bool) *dumper {
	return &dumper{out: bufio.NewWriter(w), filter: filter, funcLits: funcLits}
}

func (d *dumper) dumpPackage(ctx context.Context, pkg *packages.Package) error {
	info := pkg.TypesInfo
	mayReturn := tracker.MayReturn(info)

	for _, file := range pkg.Syntax {
		for _, decl := range file.Decls {
			fun, ok := decl.(*ast.FuncDecl)
			if !ok || fun.Body == nil {
				continue
			}

			obj, ok := info.Defs[fun.Name].(*types.Func)
			if !ok {
				continue
			}

			name := tracker.FuncNameOf(obj).String()
			if !d.filter.MatchString(name) {
				log.WithField("func", name).Debug("Skipped")

				continue
			}

			if err := d.dumpRoutine(ctx, pkg, name, fun.Recv, fun.Type, fun.Body, mayReturn); err != nil {
				return err
			}

			if !d.funcLits {
				continue
			}

			i := 0
			ast.Inspect(fun.Body, func(n ast.Node) bool {
				lit, ok := n.(*ast.FuncLit)
				if !ok {
					return true
				}

				i++
				if err := d.dumpRoutine(ctx, pkg, fmt.Sprintf("%s.func%d", name, i), nil, lit.Type, lit.Body, mayReturn); err != nil {
					log.WithError(err).WithField("func", name).Error("Analysis of function literal failed")
				}

				return true
			})
		}
	}

	return nil
}

func (d *dumper) dumpRoutine(ctx context.Context, pkg *packages.Package, name string, recv *ast.FieldList, typ *ast.FuncType, body *ast.BlockStmt, mayReturn func(*ast.CallExpr) bool) error {
	a, err := run.Liveness(ctx, pkg.TypesInfo, mayReturn, recv, typ, body)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}

	fmt.Fprintf(d.out, "func %s\n", name)

	if a == nil {
		fmt.Fprintln(d.out, "  no tracked variables")

		return nil
	}

	log.WithFields(log.Fields{
		"func":       name,
		"blocks":     len(a.Graph().Blocks),
		"vars":       a.Vars().Len(),
		"iterations": a.Iterations(),
	}).Debug("Solved")

	d.dumpBlocks(pkg, a)

	for _, f := range deadstore.Detect(a) {
		fmt.Fprintf(d.out, "  %s: %s\n", pkg.Fset.Position(f.Node.Pos()), report.Message(f.Var.Name()))
	}

	return nil
}

func (d *dumper) dumpBlocks(pkg *packages.Package, a *liveness.Analysis) {
	g := a.Graph()

	for i, b := range g.Blocks {
		kind := b.Kind.String()
		if i == g.Exit {
			kind = "exit"
		}

		reachable := ""
		if !b.Live {
			reachable = " unreachable"
		}

		lv := a.Block(i)

		fmt.Fprintf(d.out, "  block %d (%s)%s succs=%v preds=%v\n", i, kind, reachable, b.Succs, b.Preds)
		fmt.Fprintf(d.out, "    gen:  %v\n", lv.Gen().Names())
		fmt.Fprintf(d.out, "    kill: %v\n", lv.Kill().Names())
		fmt.Fprintf(d.out, "    in:   %v\n", lv.In().Names())
		fmt.Fprintf(d.out, "    out:  %v\n", lv.Out().Names())

		for j, e := range b.Elements {
			var usages []string
			for v, s := range lv.Usages(j).All() {
				usages = append(usages, v.Name()+":"+s.String())
			}

			fmt.Fprintf(d.out, "    %-40s %s\n", nodeText(pkg, e.Node), strings.Join(usages, " "))
		}
	}
}

// nodeText returns the first line of the formatted node.
func nodeText(pkg *packages.Package, n ast.Node) string {
	var buf bytes.Buffer
	if err := format.Node(&buf, pkg.Fset, n); err != nil {
		return fmt.Sprintf("<%T>", n)
	}

	line, _, more := strings.Cut(buf.String(), "\n")
	if more {
		line += " ..."
	}

	return line
}
