// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package environment

import (
	"testing"

	"github.com/probechain/solc/ir"
)

func TestFunctionsCoversFixedInterface(t *testing.T) {
	fns := Functions(ir.TypeI256)
	want := []string{
		"callDataCopy", "finish", "revert",
		"log0", "log1", "log2", "log3", "log4",
		"getCallDataSize", "getCallValue", "getCaller", "getGasLeft",
		"returnDataCopy", "storageLoad", "storageStore",
		"getTxGasPrice", "getTxOrigin",
		"getBlockCoinbase", "getBlockDifficulty", "getBlockGasLimit",
		"getBlockNumber", "getBlockTimestamp", "getBlockHash",
		"keccak256", "sha256", "bswap256", "memcpy", "print32",
	}
	byName := make(map[string]bool, len(fns))
	for _, fn := range fns {
		byName[fn.Name] = true
	}
	for _, name := range want {
		if !byName[name] {
			t.Errorf("missing environment function %q", name)
		}
	}
	if len(fns) != len(want) {
		t.Errorf("got %d functions, want exactly %d (unexpected extras?)", len(fns), len(want))
	}
}

func TestDeclareAllRegistersEveryExtern(t *testing.T) {
	b := ir.NewBuilder("M", ir.TargetEVM)
	DeclareAll(b, ir.TypeI256)
	if got, want := len(b.Module().Externs), len(Functions(ir.TypeI256)); got != want {
		t.Fatalf("registered %d externs, want %d", got, want)
	}
}

func TestDeclareAllIsIdempotentWhenRepeated(t *testing.T) {
	b := ir.NewBuilder("M", ir.TargetEVM)
	DeclareAll(b, ir.TypeI256)
	DeclareAll(b, ir.TypeI256)
	if got, want := len(b.Module().Externs), len(Functions(ir.TypeI256)); got != want {
		t.Fatalf("registered %d externs after double declare, want %d", got, want)
	}
}
