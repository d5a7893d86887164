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

	"github.com/probechain/solc/hashutil"
	"github.com/probechain/solc/ir"
)

// TestDispatcherSelectorsMatchCanonicalSignatures reconstructs the
// canonical set(uint256)/get() scenario and checks the emitted dispatcher
// compares against the exact selector constants hashutil computes for
// those two signatures, in declaration order.
func TestDispatcherSelectorsMatchCanonicalSignatures(t *testing.T) {
	module := compileSource(t, simpleStorageSource)

	var dispatcher *ir.Function
	for _, fn := range module.Functions {
		if fn.Name == DispatcherEntryName {
			dispatcher = fn
		}
	}
	if dispatcher == nil {
		t.Fatalf("dispatcher function %q not found", DispatcherEntryName)
	}

	wantSelectors := []uint32{
		hashutil.SelectorUint32("set(uint256)"),
		hashutil.SelectorUint32("get()"),
	}

	var gotSelectors []uint32
	for _, bb := range dispatcher.Blocks {
		for _, inst := range bb.Instructions {
			if inst.Op != ir.OpEq {
				continue
			}
			for _, operand := range inst.Operands {
				for _, cinst := range bb.Instructions {
					if cinst.Op == ir.OpConst && cinst.Result == operand {
						gotSelectors = append(gotSelectors, uint32(cinst.ConstVal))
					}
				}
			}
		}
	}

	for _, want := range wantSelectors {
		found := false
		for _, got := range gotSelectors {
			if got == want {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("expected dispatcher to compare against selector %#x, got %#x", want, gotSelectors)
		}
	}
}

func TestDispatcherHasFallbackAndDispatchBlocks(t *testing.T) {
	module := compileSource(t, simpleStorageSource)
	var dispatcher *ir.Function
	for _, fn := range module.Functions {
		if fn.Name == DispatcherEntryName {
			dispatcher = fn
		}
	}
	if dispatcher == nil {
		t.Fatalf("dispatcher function not found")
	}
	rendered := module.String()
	for _, want := range []string{"entry", "fallback", "dispatch"} {
		if !strings.Contains(rendered, want) {
			t.Fatalf("expected dispatcher block labelled %q in rendered module", want)
		}
	}
}

func TestDispatcherWithNoExternalFunctionsBranchesStraightToFallback(t *testing.T) {
	src := `
contract Empty {
    uint256 hidden;
}
`
	module := compileSource(t, src)
	var dispatcher *ir.Function
	for _, fn := range module.Functions {
		if fn.Name == DispatcherEntryName {
			dispatcher = fn
		}
	}
	if dispatcher == nil {
		t.Fatalf("dispatcher function not found")
	}
	var dispatchBB *ir.BasicBlock
	for _, bb := range dispatcher.Blocks {
		if bb.Label == "dispatch" {
			dispatchBB = bb
		}
	}
	if dispatchBB == nil {
		t.Fatalf("dispatch block not found")
	}
	br, ok := dispatchBB.Terminator.(*ir.TermBr)
	if !ok {
		t.Fatalf("expected dispatch block with no external functions to end in an unconditional branch, got %T", dispatchBB.Terminator)
	}
	if br.Target.Label != "fallback" {
		t.Fatalf("expected branch straight to fallback, got %s", br.Target.Label)
	}
}
