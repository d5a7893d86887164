// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package codegen

import (
	"testing"

	"github.com/probechain/solc/ir"
)

func TestVerifyAcceptsCompilerOutput(t *testing.T) {
	module := compileSource(t, simpleStorageSource)
	if errs := Verify(module); len(errs) != 0 {
		t.Fatalf("expected no verify errors from generated code, got %v", errs)
	}
}

func TestVerifyCatchesMissingTerminator(t *testing.T) {
	b := ir.NewBuilder("m", ir.TargetEVM)
	b.StartFunction("f", nil, ir.TypeVoid)
	b.NewBlock("entry")

	errs := Verify(b.Module())
	if len(errs) == 0 {
		t.Fatalf("expected a missing-terminator error")
	}
	if errs[0].Block != "entry" {
		t.Fatalf("expected the error to name block %q, got %q", "entry", errs[0].Block)
	}
}

func TestVerifyCatchesCallToUndeclaredExtern(t *testing.T) {
	b := ir.NewBuilder("m", ir.TargetEVM)
	b.StartFunction("f", nil, ir.TypeVoid)
	b.NewBlock("entry")
	b.EmitCallExtern("neverDeclared", nil, ir.TypeVoid)
	b.SetTerminator(&ir.TermRet{})

	errs := Verify(b.Module())
	found := false
	for _, e := range errs {
		if e.Message == `call to undeclared extern "neverDeclared"` {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected an undeclared-extern error, got %v", errs)
	}
}

func TestVerifyCatchesBranchOutsideFunction(t *testing.T) {
	b := ir.NewBuilder("m", ir.TargetEVM)
	b.StartFunction("other", nil, ir.TypeVoid)
	foreign := b.NewBlock("foreign.entry")
	b.SetTerminator(&ir.TermRet{})

	b.StartFunction("f", nil, ir.TypeVoid)
	b.NewBlock("entry")
	b.SetTerminator(&ir.TermBr{Target: foreign})

	errs := Verify(b.Module())
	found := false
	for _, e := range errs {
		if e.Function == "f" && e.Message == "branch to a block outside this function" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a cross-function branch error, got %v", errs)
	}
}

func TestVerifyCatchesFunctionWithNoBlocks(t *testing.T) {
	b := ir.NewBuilder("m", ir.TargetEVM)
	b.StartFunction("empty", nil, ir.TypeVoid)

	errs := Verify(b.Module())
	found := false
	for _, e := range errs {
		if e.Function == "empty" && e.Message == "function has no blocks" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a no-blocks error, got %v", errs)
	}
}
