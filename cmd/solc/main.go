// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Command solc compiles a single source file to SSA IR.
//
// Usage:
//
//	solc [flags] <source.sol>
//
// Flags:
//
//	-o <output>     Output file (default: stdout)
//	-emit <stage>   Emit intermediate output: tokens, ast, ir (default: ir)
//	-target <name>  Code generation target: evm, ewasm (default: evm)
//	-verify         Run the IR module verifier (default: true)
//	-version        Print version and exit
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/probechain/solc/codegen"
	"github.com/probechain/solc/ir"
	"github.com/probechain/solc/parser"
	"github.com/probechain/solc/scanner"
	"github.com/probechain/solc/token"
)

const version = "0.1.0"

func main() {
	var (
		output = flag.String("o", "", "Output file (default: stdout)")
		emit   = flag.String("emit", "ir", "Emit stage: tokens, ast, ir")
		target = flag.String("target", "evm", "Code generation target: evm, ewasm")
		verify = flag.Bool("verify", true, "Run the IR module verifier")
		ver    = flag.Bool("version", false, "Print version and exit")
	)
	flag.Parse()

	if *ver {
		fmt.Printf("solc %s\n", version)
		os.Exit(0)
	}

	if flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "usage: solc [flags] <source.sol>")
		os.Exit(1)
	}

	filename := flag.Arg(0)
	source, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	out := os.Stdout
	if *output != "" {
		f, err := os.Create(*output)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}

	switch *emit {
	case "tokens":
		emitTokens(out, filename, string(source))
	case "ast":
		emitAST(out, filename, string(source))
	case "ir":
		emitIR(out, filename, string(source), parseTarget(*target), *verify)
	default:
		fmt.Fprintf(os.Stderr, "unknown emit stage: %s\n", *emit)
		os.Exit(1)
	}
}

func parseTarget(name string) ir.Target {
	if name == "ewasm" {
		return ir.TargetEWASM
	}
	return ir.TargetEVM
}

func emitTokens(out *os.File, filename, source string) {
	s := scanner.New(filename, source)
	for {
		tok := s.Consume()
		fmt.Fprintf(out, "%s\t%s\t%q\n", tok.Pos, tok.Kind, tok.Literal)
		if tok.Kind == token.EOF {
			break
		}
	}
}

func emitAST(out *os.File, filename, source string) {
	unit, diags := parser.Parse(filename, source)
	for _, d := range diags.Diagnostics() {
		fmt.Fprintln(os.Stderr, d.String())
	}
	fmt.Fprintln(out, unit.String())
	if diags.HasErrors() {
		os.Exit(1)
	}
}

func emitIR(out *os.File, filename, source string, target ir.Target, doVerify bool) {
	unit, diags := parser.Parse(filename, source)
	for _, d := range diags.Diagnostics() {
		fmt.Fprintln(os.Stderr, d.String())
	}
	if diags.HasErrors() {
		os.Exit(1)
	}

	module, cgDiags := codegen.Compile(unit, target)
	for _, d := range cgDiags.Diagnostics() {
		fmt.Fprintln(os.Stderr, d.String())
	}
	if doVerify {
		for _, verr := range codegen.Verify(module) {
			fmt.Fprintln(os.Stderr, verr.Error())
		}
	}
	fmt.Fprint(out, module.String())
	if cgDiags.HasErrors() {
		os.Exit(1)
	}
}
