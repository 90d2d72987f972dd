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

package analyzer

import (
	"log/slog"

	"fillmore-labs.com/deadstore/internal/config"
	"fillmore-labs.com/deadstore/internal/run"
)

// Option configures specific behavior of a [New] deadstore analyzer.
type Option interface {
	apply(r *run.Options)
	LogAttr() slog.Attr
}

// Options is a list of [Option] values that itself satisfies the [Option] interface.
type Options []Option

// LogValue implements [slog.LogValuer].
func (o Options) LogValue() slog.Value {
	as := make([]slog.Attr, 0, len(o))
	as = appendOptions(as, o)

	return slog.GroupValue(as...)
}

func appendOptions(as []slog.Attr, o Options) []slog.Attr {
	for _, opt := range o {
		switch opt := opt.(type) {
		case nil:
			as = append(as, slog.String("nil", "<nil>"))

		case Options:
			as = appendOptions(as, opt)

		default:
			as = append(as, opt.LogAttr())
		}
	}

	return as
}

func (o Options) apply(r *run.Options) {
	for _, opt := range o {
		if opt == nil {
			continue
		}

		opt.apply(r)
	}
}

// LogAttr is for logging with [slog.Logger.LogAttrs].
func (o Options) LogAttr() slog.Attr {
	return slog.Any("options", o)
}

// WithGenerated is an [Option] to configure diagnostics in generated files.
func WithGenerated(generated bool) Option { return generatedOption{generated: generated} }

type generatedOption struct{ generated bool }

func (o generatedOption) apply(r *run.Options) {
	r.Behavior.Set(config.IncludeGenerated, o.generated)
}

func (o generatedOption) LogAttr() slog.Attr {
	return slog.Bool("generated", o.generated)
}

// WithZeroValueDecl is an [Option] to report variable declarations without initializer
// whose zero value is never read.
func WithZeroValueDecl(zeroDecl bool) Option { return zeroDeclOption{zeroDecl: zeroDecl} }

type zeroDeclOption struct{ zeroDecl bool }

func (o zeroDeclOption) apply(r *run.Options) {
	r.Behavior.Set(config.ZeroValueDecl, o.zeroDecl)
}

func (o zeroDeclOption) LogAttr() slog.Attr {
	return slog.Bool("zero-decl", o.zeroDecl)
}

// WithFuncLits is an [Option] to configure whether function literals are analyzed.
func WithFuncLits(funcLits bool) Option { return funcLitsOption{funcLits: funcLits} }

type funcLitsOption struct{ funcLits bool }

func (o funcLitsOption) apply(r *run.Options) {
	r.Behavior.Set(config.FuncLits, o.funcLits)
}

func (o funcLitsOption) LogAttr() slog.Attr {
	return slog.Bool("funclits", o.funcLits)
}

// WithConcurrency is an [Option] to limit the number of functions analyzed in parallel.
// Values below 1 use [runtime.GOMAXPROCS].
func WithConcurrency(concurrency int) Option { return concurrencyOption{concurrency: concurrency} }

type concurrencyOption struct{ concurrency int }

func (o concurrencyOption) apply(r *run.Options) {
	r.Concurrency = o.concurrency
}

func (o concurrencyOption) LogAttr() slog.Attr {
	return slog.Int("concurrency", o.concurrency)
}
