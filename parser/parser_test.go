// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.

package parser

import (
	"testing"

	"github.com/probechain/solc/ast"
)

func mustParse(t *testing.T, source string) *ast.SourceUnit {
	t.Helper()
	unit, diags := Parse("test.sol", source)
	if diags.HasErrors() {
		for _, d := range diags.Diagnostics() {
			t.Logf("diagnostic: %s", d.String())
		}
		t.Fatalf("unexpected parse errors")
	}
	return unit
}

func firstContract(t *testing.T, unit *ast.SourceUnit) *ast.ContractDecl {
	t.Helper()
	for _, d := range unit.Declarations {
		if cd, ok := d.(*ast.ContractDecl); ok {
			return cd
		}
	}
	t.Fatalf("no contract declaration found")
	return nil
}

func TestParseSimpleStorageContract(t *testing.T) {
	unit := mustParse(t, `
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
`)
	cd := firstContract(t, unit)
	if cd.Name != "SimpleStorage" {
		t.Fatalf("expected contract name SimpleStorage, got %s", cd.Name)
	}
	if cd.Constructor == nil {
		t.Fatalf("expected a constructor")
	}
	fns := cd.ExternalFunctions()
	if len(fns) != 2 {
		t.Fatalf("expected 2 external functions, got %d", len(fns))
	}
	if fns[0].CanonicalSignature() != "set(uint256)" {
		t.Fatalf("expected set(uint256), got %s", fns[0].CanonicalSignature())
	}
	if fns[1].CanonicalSignature() != "get()" {
		t.Fatalf("expected get(), got %s", fns[1].CanonicalSignature())
	}
}

func TestParseEventDeclarationAndEmit(t *testing.T) {
	unit := mustParse(t, `
contract Token {
    event Transfer(address indexed from, address indexed to, uint256 value);

    function send(address from, address to, uint256 amount) public {
        emit Transfer(from, to, amount);
    }
}
`)
	cd := firstContract(t, unit)
	if len(cd.Events) != 1 {
		t.Fatalf("expected 1 event declaration, got %d", len(cd.Events))
	}
	ev := cd.Events[0]
	if len(ev.IndexedParams()) != 2 {
		t.Fatalf("expected 2 indexed params, got %d", len(ev.IndexedParams()))
	}
}

func TestParseIfWhileForStatements(t *testing.T) {
	unit := mustParse(t, `
contract Loops {
    function run(uint256 n) public pure returns (uint256) {
        uint256 total;
        for (uint256 i = 0; i < n; i++) {
            if (i % 2 == 0) {
                total += i;
            } else {
                continue;
            }
        }
        while (total > 1000) {
            total -= 1;
        }
        return total;
    }
}
`)
	cd := firstContract(t, unit)
	if len(cd.Members) != 1 {
		t.Fatalf("expected 1 member, got %d", len(cd.Members))
	}
}

func TestParseRecoversFromMissingSemicolon(t *testing.T) {
	_, diags := Parse("test.sol", `
contract Bad {
    function f() public {
        uint256 x
        uint256 y;
    }
}
`)
	if !diags.HasErrors() {
		t.Fatalf("expected a diagnostic for the missing semicolon")
	}
}

func TestParseConstantStateVariableIsMarkedConstant(t *testing.T) {
	unit := mustParse(t, `
contract WithConstant {
    uint256 constant MAX = 100;
    uint256 counter;
}
`)
	cd := firstContract(t, unit)
	vars := cd.StateVariables()
	if len(vars) != 2 {
		t.Fatalf("expected 2 state variables, got %d", len(vars))
	}
	if !vars[0].IsConstant {
		t.Fatalf("expected MAX to be marked constant")
	}
	if vars[1].IsConstant {
		t.Fatalf("expected counter to not be constant")
	}
}
