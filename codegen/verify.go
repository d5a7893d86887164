// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Module-shape verification over this package's SSA IR: every block must
// end in a terminator, every call must resolve to something the module
// actually declares, and every branch target must belong to the same
// function.
package codegen

import (
	"fmt"

	"github.com/probechain/solc/ir"
)

// VerifyError describes one module-shape violation.
type VerifyError struct {
	Function string
	Block    string
	Message  string
}

func (e *VerifyError) Error() string {
	return fmt.Sprintf("%s/%s: %s", e.Function, e.Block, e.Message)
}

// Verify checks m for the invariants the code generator is expected to
// uphold by construction; a non-empty result means codegen itself has a
// bug, not that the input contract was invalid.
func Verify(m *ir.Module) []VerifyError {
	var errs []VerifyError

	externNames := make(map[string]bool, len(m.Externs))
	for _, e := range m.Externs {
		externNames[e.Name] = true
	}
	funcNames := make(map[string]bool, len(m.Functions))
	for _, fn := range m.Functions {
		funcNames[fn.Name] = true
	}

	for _, fn := range m.Functions {
		blockNames := make(map[string]bool, len(fn.Blocks))
		for _, bb := range fn.Blocks {
			blockNames[bb.Label] = true
		}
		for _, bb := range fn.Blocks {
			if bb.Terminator == nil {
				errs = append(errs, VerifyError{fn.Name, bb.Label, "block has no terminator"})
			}
			for _, inst := range bb.Instructions {
				if inst.Op == ir.OpCallExtern && !externNames[inst.Callee] {
					errs = append(errs, VerifyError{fn.Name, bb.Label,
						fmt.Sprintf("call to undeclared extern %q", inst.Callee)})
				}
				if inst.Op == ir.OpCall && !funcNames[inst.Callee] {
					errs = append(errs, VerifyError{fn.Name, bb.Label,
						fmt.Sprintf("call to undeclared function %q", inst.Callee)})
				}
			}
			switch t := bb.Terminator.(type) {
			case *ir.TermBr:
				if t.Target != nil && !blockNames[t.Target.Label] {
					errs = append(errs, VerifyError{fn.Name, bb.Label, "branch to a block outside this function"})
				}
			case *ir.TermCondBr:
				if t.TrueTarget != nil && !blockNames[t.TrueTarget.Label] {
					errs = append(errs, VerifyError{fn.Name, bb.Label, "true-branch target outside this function"})
				}
				if t.FalseTarget != nil && !blockNames[t.FalseTarget.Label] {
					errs = append(errs, VerifyError{fn.Name, bb.Label, "false-branch target outside this function"})
				}
			}
		}
		if len(fn.Blocks) == 0 {
			errs = append(errs, VerifyError{fn.Name, "", "function has no blocks"})
		}
	}
	return errs
}
