// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// netgen generates CPU simulation-step code (a neuron-update and a
// synapse-update source file) for a spiking network described in a
// TOML network file, mirroring gosl's own flags-in, files-out shape.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/emer/netgen/codegen"
)

var (
	outDir    = flag.String("out", "generated", "output directory for generated code, relative to where netgen is invoked")
	precision = flag.String("precision", "single", "floating-point precision for generated state: single or double")
	keep      = flag.Bool("keep", false, "keep any partially-written output files after a fatal error, for debugging")
	config    = flag.String("config", "", "optional TOML options file overriding the above flags")
	strict    = flag.Bool("strict", false, "treat generation warnings as fatal errors")
)

func usage() {
	fmt.Fprintf(os.Stderr, "usage: netgen [flags] network.toml\n")
	flag.PrintDefaults()
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("netgen: ")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() != 1 {
		usage()
		os.Exit(2)
	}

	cfg := &codegen.Config{OutDir: *outDir, Precision: *precision, Keep: *keep, WarningsAsErrors: *strict}
	if *config != "" {
		fileCfg, err := codegen.LoadConfig(*config)
		if err != nil {
			log.Fatal(err)
		}
		cfg = fileCfg
	}

	net, err := loadNetwork(flag.Arg(0), cfg.PrecisionTag())
	if err != nil {
		log.Fatal(err)
	}
	for _, ng := range net.Neurons {
		ng.Flags.AutoRefractory.OrDefault(cfg.AutoRefractory)
	}

	res, err := codegen.Generate(net, cfg)
	if err != nil {
		if res != nil {
			reportDiagnostics(res)
		}
		log.Fatal(err)
	}

	res.Stats.Write.Start()
	if err := codegen.WriteFiles(cfg.OutDir, res.Files, cfg.Keep); err != nil {
		log.Fatal(err)
	}
	res.Stats.Write.Stop()

	reportDiagnostics(res)
	log.Printf("wrote %d file(s) to %s — %s", len(res.Files), cfg.OutDir, res.Stats.Report())
}

func reportDiagnostics(res *codegen.Result) {
	for _, e := range res.Diag.Entries() {
		fmt.Fprintln(os.Stderr, e.String())
	}
}
