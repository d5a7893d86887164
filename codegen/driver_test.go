// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package codegen

import (
	"strings"
	"testing"

	"github.com/probechain/solc/ast"
	"github.com/probechain/solc/ir"
	"github.com/probechain/solc/parser"
)

const simpleStorageSource = `
pragma solidity ^0.8.0;

contract SimpleStorage {
    uint256 stored;

    constructor() {
        stored = 0;
    }

    function set(uint256 x) public {
        stored = x;
    }

    function get() public view returns (uint256) {
        return stored;
    }
}
`

func compileSource(t *testing.T, source string) *ir.Module {
	t.Helper()
	unit, diags := parser.Parse("test.sol", source)
	if diags.HasErrors() {
		for _, d := range diags.Diagnostics() {
			t.Logf("parse diagnostic: %s", d.String())
		}
		t.Fatalf("unexpected parse errors")
	}
	module, cgDiags := Compile(unit, ir.TargetEVM)
	if cgDiags.HasErrors() {
		for _, d := range cgDiags.Diagnostics() {
			t.Logf("codegen diagnostic: %s", d.String())
		}
		t.Fatalf("unexpected codegen errors")
	}
	return module
}

func TestCompileEmitsConstructorDispatcherAndFunctions(t *testing.T) {
	module := compileSource(t, simpleStorageSource)

	var names []string
	for _, fn := range module.Functions {
		names = append(names, fn.Name)
	}
	want := []string{ast.ConstructorName, DispatcherEntryName, "set", "get"}
	for _, w := range want {
		found := false
		for _, n := range names {
			if n == w {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("expected function %q among emitted functions, got %v", w, names)
		}
	}
}

func TestCompileEmissionOrderIsConstructorThenDispatcherThenFunctions(t *testing.T) {
	module := compileSource(t, simpleStorageSource)
	if len(module.Functions) < 2 {
		t.Fatalf("expected at least constructor and dispatcher, got %d functions", len(module.Functions))
	}
	if module.Functions[0].Name != ast.ConstructorName {
		t.Fatalf("expected constructor first, got %s", module.Functions[0].Name)
	}
	if module.Functions[1].Name != DispatcherEntryName {
		t.Fatalf("expected dispatcher second, got %s", module.Functions[1].Name)
	}
}

func TestCompileWithoutConstructorSkipsIt(t *testing.T) {
	src := `
contract NoCtor {
    function get() public view returns (uint256) {
        return 1;
    }
}
`
	module := compileSource(t, src)
	if module.Functions[0].Name != DispatcherEntryName {
		t.Fatalf("expected dispatcher first when there is no constructor, got %s", module.Functions[0].Name)
	}
}

func findFunction(module *ir.Module, name string) *ir.Function {
	for _, fn := range module.Functions {
		if fn.Name == name {
			return fn
		}
	}
	return nil
}

func allInstructions(fn *ir.Function) []*ir.Instruction {
	var out []*ir.Instruction
	for _, bb := range fn.Blocks {
		out = append(out, bb.Instructions...)
	}
	return out
}

// TestSetParameterFlowsIntoStorageStore proves that set's formal parameter
// is the value that ends up byte-swapped and written to storage, rather
// than a hardcoded zero: it walks the bswap256 -> store -> storageStore
// operand chain and checks each link traces back to the same ir.Value the
// function was started with.
func TestSetParameterFlowsIntoStorageStore(t *testing.T) {
	module := compileSource(t, simpleStorageSource)

	set := findFunction(module, "set")
	if set == nil {
		t.Fatalf("expected a compiled function named %q", "set")
	}
	if len(set.Params) != 1 {
		t.Fatalf("expected set to have 1 formal parameter, got %d", len(set.Params))
	}
	param := set.Params[0]

	insts := allInstructions(set)

	var swapped ir.Value
	found := false
	for _, inst := range insts {
		if inst.Op == ir.OpBswap256 && len(inst.Operands) == 1 && inst.Operands[0] == param {
			swapped = inst.Result
			found = true
			break
		}
	}
	if !found {
		t.Fatalf("expected an OpBswap256 whose operand is the formal parameter %v, got instructions %v", param, insts)
	}

	var valAddr ir.Value
	found = false
	for _, inst := range insts {
		if inst.Op == ir.OpStore && len(inst.Operands) == 2 && inst.Operands[1] == swapped {
			valAddr = inst.Operands[0]
			found = true
			break
		}
	}
	if !found {
		t.Fatalf("expected an OpStore of the byte-swapped parameter, got instructions %v", insts)
	}

	found = false
	for _, inst := range insts {
		if inst.Op == ir.OpCallExtern && inst.Callee == "storageStore" && len(inst.Operands) == 2 && inst.Operands[1] == valAddr {
			found = true
			break
		}
	}
	if !found {
		t.Fatalf("expected storageStore to be called with the address holding the byte-swapped parameter, got instructions %v", insts)
	}
}

func TestModuleStringRendersDeclaredExterns(t *testing.T) {
	module := compileSource(t, simpleStorageSource)
	rendered := module.String()
	for _, want := range []string{"storageLoad", "storageStore", "getCallDataSize", "finish"} {
		if !strings.Contains(rendered, want) {
			t.Fatalf("expected rendered module to declare extern %q, got:\n%s", want, rendered)
		}
	}
}
