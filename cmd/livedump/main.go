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

// Command livedump prints the control-flow graph, live variables and dead stores
// of the functions in the given packages.
//
// Usage:
//
//	livedump [-debug] [-func regexp] [-funclits=false] packages...
package main

import (
	"bufio"
	"context"
	"flag"
	"os"
	"regexp"

	log "github.com/sirupsen/logrus"
	"golang.org/x/tools/go/packages"

	"fillmore-labs.com/deadstore/internal/config"
)

type options struct {
	debug       bool
	funcPattern string
	funcLits    bool
}

// registerFlags binds the command line flags to o. Defaults follow the analyzer.
func registerFlags(fs *flag.FlagSet, o *options) {
	fs.BoolVar(&o.debug, "debug", false, "Prints log.Debug messages.")
	fs.StringVar(&o.funcPattern, "func", "", "Only dump functions whose qualified name matches this regular expression.")
	fs.BoolVar(&o.funcLits, "funclits", config.DefaultBehavior().Enabled(config.FuncLits), "Dump function literals as separate routines.")
}

func main() {
	var o options
	registerFlags(flag.CommandLine, &o)
	flag.Parse()

	log.SetFormatter(&log.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "15:04:05",
	})

	if o.debug {
		log.SetLevel(log.DebugLevel)
	}

	filter, err := regexp.Compile(o.funcPattern)
	if err != nil {
		log.WithError(err).Fatal("Invalid -func pattern")
	}

	args := flag.Args()
	if len(args) == 0 {
		args = []string{"."}
	}

	cfg := &packages.Config{
		Mode: packages.NeedName |
			packages.NeedFiles |
			packages.NeedSyntax |
			packages.NeedTypes |
			packages.NeedTypesInfo,
	}

	log.WithField("patterns", args).Debug("Loading packages")

	pkgs, err := packages.Load(cfg, args...)
	if err != nil {
		log.WithError(err).Fatal("Can't load packages")
	}

	if packages.PrintErrors(pkgs) > 0 {
		log.Fatal("Packages contain errors")
	}

	d := newDumper(os.Stdout, filter, o.funcLits)

	ctx := context.Background()
	for _, pkg := range pkgs {
		log.WithField("package", pkg.PkgPath).Debugf("Dumping %d files", len(pkg.Syntax))

		if err := d.dumpPackage(ctx, pkg); err != nil {
			log.WithError(err).WithField("package", pkg.PkgPath).Error("Analysis failed")
		}
	}

	flush(log.StandardLogger(), d.out)
}

// flush writes the buffered dump, exiting when the output fails.
func flush(logger *log.Logger, out *bufio.Writer) {
	if err := out.Flush(); err != nil {
		logger.WithError(err).Fatal("Can't write output")
	}
}
